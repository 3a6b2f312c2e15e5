// Package cli provides the interactive workspace command-line client.
//
// It wires configuration, local storage, the remote worker API, the presence
// session, chat, and notifications into an interactive REPL. Typical flow:
// restore or prompt for an identity, start the background presence loops, and
// execute user commands.
//
// Key features:
//   - Login / Register / Logout against the worker auth API
//   - Join / Leave the study room with automatic minute accrual
//   - Who / Top: online roster and study-time leaderboard
//   - Status / Rename: profile mutations
//   - Say / Chat: room chat
//   - Notices: broadcast notifications with local read tracking
//   - Timer: the shared global timer
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
