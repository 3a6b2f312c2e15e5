package cli

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Say sends a chat message to the room.
func (a *App) Say(ctx context.Context, message string) error {
	if err := a.chat.Send(ctx, message); err != nil {
		log.Printf("Could not send: %s", err.Error())
		return err
	}
	return nil
}

// Chat prints the room history as last polled, plus who is typing.
func (a *App) Chat(ctx context.Context) error {
	if err := a.chat.Refresh(ctx); err != nil {
		log.Println(err.Error())
	}

	messages := a.chat.Messages()
	if len(messages) == 0 {
		fmt.Println("No messages yet")
	}
	for _, m := range messages {
		fmt.Printf("<%s> %s\n", m.Username, m.Message)
	}

	if typing := a.chat.TypingUsers(); len(typing) > 0 {
		fmt.Printf("typing: %s\n", strings.Join(typing, ", "))
	}
	return nil
}

// Notices prints notifications newest first and marks them all read.
func (a *App) Notices(ctx context.Context) error {
	notifications := a.notify.Notifications()
	if len(notifications) == 0 {
		fmt.Println("No notifications")
		return nil
	}

	for _, n := range notifications {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, n.Message)
	}

	if err := a.notify.MarkAllRead(ctx); err != nil {
		log.Printf("Could not persist read state: %s", err.Error())
		return err
	}
	return nil
}
