package outbox

import "context"

// Batch is one durably buffered study-minute flush.
type Batch struct {
	ID        int64
	Username  string
	Minutes   int
	CreatedAt int64
}

// Repository describes the operations the accrual loop needs.
type Repository interface {
	// Enqueue stores a batch of minutes for the given identity.
	Enqueue(ctx context.Context, username string, minutes int) error

	// Pending returns unconfirmed batches for the identity, oldest first.
	Pending(ctx context.Context, username string) ([]Batch, error)

	// Delete removes a batch after the remote service confirmed it.
	Delete(ctx context.Context, id int64) error
}
