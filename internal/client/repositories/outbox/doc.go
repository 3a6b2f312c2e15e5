// Package outbox provides the durable buffer between the study accrual loop
// and the remote service.
//
// # Overview
//
// When a batch of study minutes is ready to flush, it is first written here,
// then sent. A row is deleted only after the remote service confirmed the
// flush, so a transient network failure parks the batch instead of losing it;
// the next flush opportunity (a later tick, the final flush, or the next
// accrual start) drains what is left, oldest first.
//
// # Data Model
//
// Each row is one batch: the identity it belongs to, the whole-minute amount
// (always > 0), and a creation timestamp used for ordering.
//
// Key Types
//
//   - type Repository        — interface used by the session engine
//   - type SQLiteRepository  — SQLite implementation over dbx.DBTX
//
// Typical Usage
//
//	repo := outbox.NewSQLiteRepository(db)
//	_ = repo.Enqueue(ctx, "alice", 5)
//	batches, _ := repo.Pending(ctx, "alice")
package outbox
