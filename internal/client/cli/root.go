package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

// getStatus renders the prompt suffix: the identity, whether accrual is
// running, and the unread notification count.
func (a *App) getStatus() string {
	name := a.session.Identity()
	if name == "" {
		return ""
	}
	s := name
	if a.session.IsStudying() {
		s += " studying"
	}
	if unread := a.notify.UnreadCount(); unread > 0 {
		s += fmt.Sprintf(" %d!", unread)
	}
	return fmt.Sprintf("(%s)", s)
}

// Root restores a persisted identity, starts the background feeds if one was
// found, and runs the REPL until the user exits.
func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to the study workspace CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	name, err := a.session.Restore(ctx)
	if err != nil {
		log.Printf("could not restore identity: %s", err.Error())
	}
	if name != "" {
		log.Printf("Welcome back, %s", name)
		a.startBackground(ctx)
	}

	runREPL(ctx, a, a.getStatus, scanner)
}
