package cli

import (
	"context"
	"fmt"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for name, email and password and attempts to
// create a new account.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", os.Stdout)
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

	res := a.authService.Register(ctx, name, email, password)
	if res.Error {
		fmt.Println(res.Message)
		return nil
	}
	fmt.Println(res.Message)
	a.open(ctx, "#/login")
	return nil
}

// Login prompts for credentials and authenticates. On success the session
// record persists, so the guard lets protected pages render, and the user
// lands on the home page.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	res := a.authService.Login(ctx, email, password)
	if res.Error {
		fmt.Println(res.Message)
		return nil
	}

	fmt.Printf("Welcome, %s!\n", res.Value.Name)
	a.open(ctx, "#/home")
	return nil
}
