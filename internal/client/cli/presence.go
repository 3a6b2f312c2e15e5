package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/sujeetunbeatable/liorea-cli/internal/client/session"
)

// Join starts study accrual. The first minute counts immediately, so even a
// very short session is recorded.
func (a *App) Join(ctx context.Context) error {
	if err := a.session.SetStudying(ctx, true); err != nil {
		if errors.Is(err, session.ErrNoIdentity) {
			log.Println("Log in first")
		} else {
			log.Println(err.Error())
		}
		return err
	}
	fmt.Println("Studying. Minutes accrue while you stay joined.")
	return nil
}

// Leave stops study accrual and flushes any unsaved minutes.
func (a *App) Leave(ctx context.Context) error {
	if err := a.session.SetStudying(ctx, false); err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Printf("Paused. Total today so far: %s\n", formatMinutes(a.session.SelfTotalMinutes()))
	return nil
}

// Who prints the online roster as last polled.
func (a *App) Who(ctx context.Context) error {
	roster := a.session.Roster()
	if len(roster) == 0 {
		fmt.Println("Nobody online (or no roster yet)")
		return nil
	}
	for _, u := range roster {
		line := fmt.Sprintf("%-20s %s", u.Username, u.Status)
		if u.StatusText != "" {
			line += "  " + u.StatusText
		}
		fmt.Println(line)
	}
	return nil
}

// Top prints the leaderboard, most study time first. The local user's row
// never shows less than what was accrued this run.
func (a *App) Top(ctx context.Context) error {
	board := a.session.Leaderboard()
	if len(board) == 0 {
		fmt.Println("Nobody online (or no roster yet)")
		return nil
	}
	for i, u := range board {
		fmt.Printf("%2d. %-20s %s\n", i+1, u.Username, formatMinutes(u.TotalStudyMinutes))
	}
	return nil
}

// Status sets the short status message shown next to the name in the roster.
// An empty text clears it.
func (a *App) Status(ctx context.Context, text string) error {
	if err := a.session.SetStatus(ctx, text); err != nil {
		if errors.Is(err, session.ErrNoIdentity) {
			log.Println("Log in first")
		} else {
			log.Println(err.Error())
		}
		return err
	}
	fmt.Println("Status updated.")
	return nil
}

// Rename changes the display name, remotely first so a refused rename leaves
// the local identity untouched.
func (a *App) Rename(ctx context.Context, newName string) error {
	if err := a.session.Rename(ctx, newName); err != nil {
		if errors.Is(err, session.ErrNoIdentity) {
			log.Println("Log in first")
		} else {
			log.Printf("Rename failed: %s", err.Error())
		}
		return err
	}
	fmt.Printf("You are now %s\n", newName)
	return nil
}

// formatMinutes renders whole study minutes as "1h05m" past the hour mark.
func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}
