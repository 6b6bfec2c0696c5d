package cli

import (
	"context"

	"github.com/Zhanerrke588595/it-events/internal/client/models"
	"github.com/Zhanerrke588595/it-events/internal/client/services"
	"github.com/Zhanerrke588595/it-events/internal/common"
)

// Register prompts for the sign-up form and creates an account. Company
// accounts also give a company name.
func (a *App) Register(ctx context.Context, _ []string) error {
	var in services.RegisterInput
	var err error

	if in.Name, err = getSimpleText(a.reader, "Enter name", a.out); err != nil {
		return err
	}
	if in.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}

	if in.Password, err = getPassword("Enter password", a.out); err != nil {
		return err
	}
	defer common.WipeByteArray(in.Password)

	if in.ConfirmPassword, err = getPassword("Confirm password", a.out); err != nil {
		return err
	}
	defer common.WipeByteArray(in.ConfirmPassword)

	if in.IsCompany, err = confirm(a.reader, "Register as a company?", a.out); err != nil {
		return err
	}
	if in.IsCompany {
		if in.CompanyName, err = getSimpleText(a.reader, "Enter company name", a.out); err != nil {
			return err
		}
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if _, err := a.auth.Register(ctx, in); err != nil {
		return err
	}
	a.notes.Success("Registration successful!")
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if _, err := a.auth.Login(ctx, email, password); err != nil {
		return err
	}
	a.notes.Success("Login successful!")
	return nil
}

// Logout drops the session. It does not fail.
func (a *App) Logout(ctx context.Context, _ []string) error {
	a.auth.Logout(ctx)
	a.events.ClearCurrent()
	a.notes.Success("Logged out successfully")
	return nil
}

func (a *App) Profile(_ context.Context, _ []string) error {
	u := a.store.State().Session.User
	if u == nil {
		return common.ErrUnauthorized
	}
	a.printf("Name:     %s\n", u.Name)
	a.printf("Email:    %s\n", u.Email)
	a.printf("Role:     %s\n", u.Role)
	if u.CompanyName != "" {
		a.printf("Company:  %s\n", u.CompanyName)
	}
	a.printf("Verified: %s\n", yesNo(u.IsVerified))
	a.printf("Member since %s\n", u.CreatedAt.Format("2006-01-02"))
	return nil
}

// EditProfile prompts for new profile values; an empty answer keeps the
// current one.
func (a *App) EditProfile(ctx context.Context, _ []string) error {
	u := a.store.State().Session.User
	if u == nil {
		return common.ErrUnauthorized
	}

	in := services.ProfileInput{}
	var err error
	if in.Name, err = getDefault(a.reader, "Name", u.Name, a.out); err != nil {
		return err
	}
	if in.Email, err = getDefault(a.reader, "Email", u.Email, a.out); err != nil {
		return err
	}
	in.CompanyName = u.CompanyName
	if u.Role == models.RoleCompany {
		if in.CompanyName, err = getDefault(a.reader, "Company", u.CompanyName, a.out); err != nil {
			return err
		}
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if _, err := a.auth.UpdateProfile(ctx, in); err != nil {
		return err
	}
	a.notes.Success("Profile updated successfully!")
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
