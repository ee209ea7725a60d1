package billing

import (
	"context"
	"sort"

	"github.com/meditrack/meditrack/internal/platform/apperr"
	"github.com/meditrack/meditrack/internal/platform/kvstore"
)

const BillBucket = "bills"

type billRepoBolt struct {
	store *kvstore.Store
}

func NewBillRepoBolt(store *kvstore.Store) BillRepository {
	return &billRepoBolt{store: store}
}

func (r *billRepoBolt) Create(ctx context.Context, b *Bill) error {
	ok, err := r.store.Insert(ctx, BillBucket, b.ID, b)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.InvalidData("id", "Bill already exists: "+b.ID)
	}
	return nil
}

func (r *billRepoBolt) GetByID(ctx context.Context, id string) (*Bill, error) {
	var b Bill
	found, err := r.store.Get(ctx, BillBucket, id, &b)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("Bill", id)
	}
	return &b, nil
}

func (r *billRepoBolt) List(ctx context.Context, f Filter) ([]*Bill, error) {
	items, err := kvstore.List(ctx, r.store, BillBucket, f.Match)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].BilledAt.Equal(items[j].BilledAt) {
			return items[i].BilledAt.Before(items[j].BilledAt)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}
