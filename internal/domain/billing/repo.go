package billing

import "context"

// BillRepository persists bills. Create refuses an existing id with apperr
// InvalidData; GetByID returns apperr NotFound for unknown ids. List orders
// by billed time, then id.
type BillRepository interface {
	Create(ctx context.Context, b *Bill) error
	GetByID(ctx context.Context, id string) (*Bill, error)
	List(ctx context.Context, f Filter) ([]*Bill, error)
}
