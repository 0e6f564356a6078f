package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/steptrack/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a name, email and password and attempts to create a
// new account. On success the session is active immediately; no separate
// login is needed.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	res, err := a.authService.Register(ctx, name, email, password)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			log.Printf("This email is already registered")
		} else {
			log.Printf("Registration unsuccessful: %s", err.Error())
		}
		return err
	}

	a.user = &res.User
	fmt.Println("Success!")
	return nil
}

// Login prompts for credentials and tries to authenticate. On success the
// session is persisted, surviving client restarts.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	res, err := a.authService.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			log.Printf("Invalid email or password")
		} else {
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	a.user = &res.User
	log.Printf("Login successful")
	return nil
}

// Logout stops the automatic counter if it is running and drops the
// persisted session.
func (a *App) Logout(ctx context.Context) error {
	a.stopCounterIfRunning()

	if err := a.authService.Logout(ctx); err != nil {
		log.Printf("Logout error: %s", err.Error())
		return err
	}
	a.user = nil
	return nil
}
