package cli

import (
	"context"
	"fmt"
	"log"
	"time"
)

// nowFn is a test seam for the elapsed-time calculation.
var nowFn = time.Now

// Timer prints how long the shared global timer has been running.
func (a *App) Timer(ctx context.Context) error {
	start, err := a.timer.TimerStart(ctx)
	if err != nil {
		log.Printf("Could not fetch timer: %s", err.Error())
		return err
	}

	elapsed := nowFn().Sub(start).Round(time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	fmt.Printf("Global timer running for %s\n", elapsed)
	return nil
}

// TimerReset restarts the shared global timer for everyone in the room.
func (a *App) TimerReset(ctx context.Context) error {
	if err := a.timer.TimerReset(ctx); err != nil {
		log.Printf("Could not reset timer: %s", err.Error())
		return err
	}
	fmt.Println("Timer reset.")
	return nil
}
