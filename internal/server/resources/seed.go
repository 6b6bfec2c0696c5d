package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Zhanerrke588595/it-events/internal/cryptox"
)

// hashPassword is a seam for tests.
var hashPassword = cryptox.HashPassword

type adminUser struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Password   string    `json:"password"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SeedAdmin creates a verified admin account with the given credentials
// unless a user with that email already exists. It reports whether an
// account was created. An empty password skips seeding.
func SeedAdmin(ctx context.Context, svc Service, email, password string, now time.Time) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false, nil
	}

	existing, err := svc.List(ctx, "users", map[string]string{"email": email})
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	hash, err := hashPassword([]byte(password))
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}

	body, err := json.Marshal(adminUser{
		Name:       "Administrator",
		Email:      email,
		Password:   hash,
		Role:       "admin",
		IsVerified: true,
		CreatedAt:  now.UTC(),
	})
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}

	if _, err := svc.Create(ctx, "users", body); err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return true, nil
}
