package cli

import (
	"context"
	"fmt"

	"github.com/krishimitre/krishimitre/internal/client/api"
	"github.com/krishimitre/krishimitre/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates against the backend.
//
// On success the session manager holds the token and user and has already
// persisted both. On failure the previous session state is untouched, so a
// failed re-login does not log the user out. The password byte slice is
// wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		a.printError(err)
		return err
	}

	if name := a.displayName(); name != "" {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", name)
	} else {
		fmt.Fprintln(a.out, "Logged in.")
	}
	return nil
}

// Signup collects the registration form and creates an account. Name, email
// and password are required by the server; the remaining profile fields may
// be left empty.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	location, err := getSimpleText(a.reader, "Enter location (optional)", a.out)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone number (optional)", a.out)
	if err != nil {
		return err
	}
	farmSize, err := getSimpleText(a.reader, "Enter farm size (optional)", a.out)
	if err != nil {
		return err
	}

	req := api.SignupRequest{
		Name:        name,
		Email:       email,
		Password:    string(password),
		Location:    location,
		PhoneNumber: phone,
		FarmSize:    farmSize,
	}
	if err := a.session.Signup(ctx, req); err != nil {
		a.printError(err)
		return err
	}

	fmt.Fprintf(a.out, "Account created. Welcome, %s!\n", a.displayName())
	return nil
}

// Logout drops the session from memory and from disk. Safe to call when
// already logged out.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.printError(err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
