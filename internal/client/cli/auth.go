package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/sujeetunbeatable/liorea-cli/internal/client/api"
	"github.com/sujeetunbeatable/liorea-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for a username and password and attempts to
// create a new account via the AuthService.
//
// On success it prints "Success!" and tells the user to log in; mirroring the
// web client, signup does not establish an identity. The password byte slice
// is securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Signup(ctx, userName, password); err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Success! Now log in with your new account.")
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
//
// On success the name becomes the active identity: it is persisted locally,
// the heartbeat and roster loops start, and the chat and notification feeds
// are brought up. A rejected attempt prints the server's message; an
// unreachable worker is reported as such. The password is securely wiped
// before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, userName, password); err != nil {
		switch {
		case errors.Is(err, api.ErrUnavailable):
			log.Printf("Worker unavailable, try again later")
		default:
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	if err := a.session.SetIdentity(ctx, userName); err != nil {
		log.Printf("Could not activate identity: %s", err.Error())
		return err
	}
	a.startBackground(ctx)

	log.Printf("Login successful")
	return nil
}

// Logout flushes pending minutes, sends the departure notice, clears the
// persisted identity, and stops the chat and notification feeds.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.SetIdentity(ctx, ""); err != nil {
		return err
	}
	a.chat.Stop()
	a.notify.Stop()
	fmt.Println("Logged out.")
	return nil
}
