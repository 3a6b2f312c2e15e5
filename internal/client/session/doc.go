// Package session implements the client-side presence and study-time engine.
//
// # Overview
//
// A Session holds the local identity and the "is studying" flag, and owns the
// three periodic loops glueing the client to the remote service:
//
//   - the heartbeat loop, a liveness signal independent of study state;
//   - the study accrual loop, which turns wall-clock studying time into
//     whole-minute batches flushed through a durable outbox;
//   - the roster poller, which replaces the local view of who is online with
//     the latest remote snapshot.
//
// # Lifecycle
//
// Setting a non-empty identity persists it locally and (re)starts the
// heartbeat and roster loops. Setting the empty identity is a logout: pending
// minutes are flushed, a best-effort departure notice is sent, local identity
// state is cleared, and every loop stops. SetStudying toggles the accrual
// loop; turning it off forces a final flush so only the sub-tick remainder is
// ever dropped.
//
// # Concurrency
//
// Loops run as goroutines with their own tickers. Session state is guarded by
// one mutex; the unsaved-minutes counter is only ever mutated by accrual tick
// and flush logic. Loop failures are logged and swallowed: a slow or failed
// request in one loop never stalls another, and a stale response after logout
// is discarded rather than applied.
package session
