// Package services contains the client's application services. Each one
// calls the backend through client.Client and records the outcome in the
// shared store.Store, so the terminal UI renders from a single state.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Zhanerrke588595/it-events/internal/client/client"
	"github.com/Zhanerrke588595/it-events/internal/client/models"
	"github.com/Zhanerrke588595/it-events/internal/client/repositories/credentials"
	"github.com/Zhanerrke588595/it-events/internal/client/store"
	"github.com/Zhanerrke588595/it-events/internal/common"
	"github.com/Zhanerrke588595/it-events/internal/cryptox"
	"github.com/Zhanerrke588595/it-events/internal/logging"
)

const minPasswordLen = 6

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        []byte `json:"password" validate:"required"`
	ConfirmPassword []byte `json:"confirmPassword"`
	IsCompany       bool   `json:"isCompany"`
	CompanyName     string `json:"companyName"`
}

// ProfileInput is the profile edit form.
type ProfileInput struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	CompanyName string `json:"companyName"`
}

// AuthService manages the session.
//
// Contract:
//   - Register: create an account and sign in.
//   - Login: sign in with email and password.
//   - RestoreSession: re-establish the stored session on start-up.
//   - Logout: drop the session; never fails.
//   - UpdateProfile: change name, email or company of the signed-in user.
//   - Ping: check backend liveness.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	RestoreSession(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context)
	UpdateProfile(ctx context.Context, in ProfileInput) (*models.User, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	creds  credentials.Repository
	store  *store.Store
	log    logging.Logger

	now          func() time.Time
	hashPassword func([]byte) (string, error)
}

// NewAuthService constructs an AuthService over the given backend client,
// credential storage and store.
func NewAuthService(c client.Client, creds credentials.Repository, st *store.Store, log logging.Logger) AuthService {
	return &authService{
		client:       c,
		creds:        creds,
		store:        st,
		log:          log,
		now:          time.Now,
		hashPassword: cryptox.HashPassword,
	}
}

func (a *authService) fail(err error) error {
	a.store.Dispatch(store.SessionFailed{Err: err})
	return err
}

func validateRegistration(in RegisterInput) error {
	if err := validateInput(in); err != nil {
		return err
	}
	if in.ConfirmPassword != nil && string(in.Password) != string(in.ConfirmPassword) {
		return common.NewValidationError("Passwords do not match")
	}
	if len(in.Password) < minPasswordLen {
		return common.NewValidationError(fmt.Sprintf("Password must be at least %d characters", minPasswordLen))
	}
	return nil
}

// normalizeEmail is the form emails are stored and looked up in.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register rejects an email that is already taken, stores the new user
// with a hashed password and signs them in. Company accounts start
// unverified.
func (a *authService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	a.store.Dispatch(store.SessionLoading{})

	in.Email = normalizeEmail(in.Email)
	if err := validateRegistration(in); err != nil {
		return nil, a.fail(err)
	}

	existing, err := a.client.FindUsersByEmail(ctx, in.Email)
	if err != nil {
		return nil, a.fail(fmt.Errorf("lookup email: %w", err))
	}
	if len(existing) > 0 {
		return nil, a.fail(common.ErrDuplicateUser)
	}

	hash, err := a.hashPassword(in.Password)
	if err != nil {
		return nil, a.fail(fmt.Errorf("hash password: %w", err))
	}

	role := models.RoleUser
	if in.IsCompany {
		role = models.RoleCompany
	}
	u := models.User{
		Name:       strings.TrimSpace(in.Name),
		Email:      in.Email,
		Password:   hash,
		Role:       role,
		IsVerified: false,
		CreatedAt:  a.now().UTC(),
	}
	if in.IsCompany {
		u.CompanyName = strings.TrimSpace(in.CompanyName)
	}

	created, err := a.client.CreateUser(ctx, u)
	if err != nil {
		return nil, a.fail(fmt.Errorf("create user: %w", err))
	}

	if err := a.establish(ctx, *created); err != nil {
		return nil, a.fail(err)
	}
	return created, nil
}

// Login signs in an existing user.
func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	a.store.Dispatch(store.SessionLoading{})

	email = normalizeEmail(email)
	if email == "" || len(password) == 0 {
		return nil, a.fail(common.NewValidationError("", "email", "password"))
	}

	users, err := a.client.FindUsersByEmail(ctx, email)
	if err != nil {
		return nil, a.fail(fmt.Errorf("lookup email: %w", err))
	}
	if len(users) == 0 {
		return nil, a.fail(common.WithMessage(common.ErrNotFound, "User not found"))
	}
	u := users[0]

	ok, err := cryptox.VerifyPassword(password, u.Password)
	if err != nil {
		a.log.Warn(ctx, "stored password is not a valid hash", "user_id", u.ID, "error", err)
	}
	if !ok {
		return nil, a.fail(common.ErrInvalidCredential)
	}

	if err := a.establish(ctx, u); err != nil {
		return nil, a.fail(err)
	}
	return &u, nil
}

// establish mints a token, persists it with the user id and marks the
// session authenticated.
func (a *authService) establish(ctx context.Context, u models.User) error {
	suffix, err := common.MakeRandHexString(16)
	if err != nil {
		return fmt.Errorf("mint token: %w", err)
	}
	token := fmt.Sprintf("token_%s_%s", u.ID, suffix)

	if err := a.creds.Save(ctx, credentials.Credentials{Token: token, UserID: u.ID}); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}

	a.store.Dispatch(store.SessionEstablished{User: u})
	a.log.Info(ctx, "signed in", "user_id", u.ID, "role", u.Role)
	return nil
}

// RestoreSession re-fetches the stored user. Without stored credentials it
// returns (nil, nil). Any failure removes the stored credentials and
// leaves the session unauthenticated.
func (a *authService) RestoreSession(ctx context.Context) (*models.User, error) {
	a.store.Dispatch(store.SessionLoading{})

	c, err := a.creds.Load(ctx)
	if err == nil && !c.Complete() {
		a.dropSession(ctx)
		return nil, nil
	}
	if err != nil {
		a.dropSession(ctx)
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	u, err := a.client.GetUser(ctx, c.UserID)
	if err != nil {
		a.dropSession(ctx)
		return nil, fmt.Errorf("restore session: %w", err)
	}

	a.store.Dispatch(store.SessionEstablished{User: *u})
	return u, nil
}

func (a *authService) dropSession(ctx context.Context) {
	if err := a.creds.Clear(ctx); err != nil {
		a.log.Warn(ctx, "failed to clear stored credentials", "error", err)
	}
	a.store.Dispatch(store.SessionCleared{})
}

func (a *authService) Logout(ctx context.Context) {
	a.dropSession(ctx)
}

// UpdateProfile saves the signed-in user with the new name, email and
// company. A new email must not belong to another account.
func (a *authService) UpdateProfile(ctx context.Context, in ProfileInput) (*models.User, error) {
	cur := a.store.State().Session.User
	if cur == nil {
		return nil, common.ErrUnauthorized
	}
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	if in.Email != normalizeEmail(cur.Email) {
		users, err := a.client.FindUsersByEmail(ctx, in.Email)
		if err != nil {
			return nil, fmt.Errorf("lookup email: %w", err)
		}
		for _, u := range users {
			if u.ID != cur.ID {
				return nil, common.ErrDuplicateUser
			}
		}
	}

	next := *cur
	next.Name = strings.TrimSpace(in.Name)
	next.Email = in.Email
	next.CompanyName = strings.TrimSpace(in.CompanyName)

	saved, err := a.client.UpdateUser(ctx, cur.ID, next)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	a.store.Dispatch(store.UserUpdated{User: *saved})
	return saved, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// currentUser returns the signed-in user or common.ErrUnauthorized.
func currentUser(st *store.Store) (*models.User, error) {
	u := st.State().Session.User
	if u == nil {
		return nil, common.ErrUnauthorized
	}
	return u, nil
}

// requireAdmin returns the signed-in admin or an auth error.
func requireAdmin(st *store.Store) (*models.User, error) {
	u, err := currentUser(st)
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin() {
		return nil, common.ErrForbidden
	}
	return u, nil
}
