package config

import (
	"flag"
	"os"

	"github.com/sujeetunbeatable/liorea-cli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-w string   base URL of the presence worker API (default from Config)
//	-n string   websocket URL of the notification feed (default from Config)
//	-d string   sqlite DSN for local client state (default from Config)
//	-r string   chat room id (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-w", "-n", "-d", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.WorkerURL, "w", cfg.WorkerURL, "base URL of the presence worker API")
	fs.StringVar(&cfg.NotifyURL, "n", cfg.NotifyURL, "websocket URL of the notification feed")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "sqlite DSN for local client state")
	fs.StringVar(&cfg.ChatRoom, "r", cfg.ChatRoom, "chat room id")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
