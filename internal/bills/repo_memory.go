package bills

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo for development and tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	bills map[string][]Record
}

// NewMemoryRepo creates an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{bills: make(map[string][]Record)}
}

func (r *MemoryRepo) Put(ctx context.Context, record Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bills[record.OwnerID] = append(r.bills[record.OwnerID], record)
	// Keep newest first, matching the DynamoDB query order.
	sort.Slice(r.bills[record.OwnerID], func(i, j int) bool {
		return r.bills[record.OwnerID][i].BillID > r.bills[record.OwnerID][j].BillID
	})
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, ownerID string, opts ListOptions) (ListPage, error) {
	if err := ctx.Err(); err != nil {
		return ListPage{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := int(opts.Limit)
	if limit <= 0 {
		limit = defaultListLimit
	}

	startBillID := ""
	if opts.PageToken != "" {
		decoded, err := decodePageToken(opts.PageToken)
		if err != nil {
			return ListPage{}, err
		}
		startBillID = decoded
	}

	var page ListPage
	started := startBillID == ""
	for _, record := range r.bills[ownerID] {
		if !started {
			if record.BillID == startBillID {
				started = true
			}
			continue
		}
		if opts.UtilityCategory != "" && record.UtilityCategory != opts.UtilityCategory {
			continue
		}
		if len(page.Bills) == limit {
			page.NextPageToken = encodePageToken(page.Bills[limit-1].BillID)
			return page, nil
		}
		page.Bills = append(page.Bills, record)
	}
	return page, nil
}

func (r *MemoryRepo) Get(ctx context.Context, ownerID, billID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, record := range r.bills[ownerID] {
		if record.BillID == billID {
			return record, nil
		}
	}
	return Record{}, ErrNotFound
}

func (r *MemoryRepo) Delete(ctx context.Context, ownerID, billID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	records := r.bills[ownerID]
	for i, record := range records {
		if record.BillID == billID {
			r.bills[ownerID] = append(records[:i], records[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

var _ Repo = (*MemoryRepo)(nil)
