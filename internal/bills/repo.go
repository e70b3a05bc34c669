package bills

import (
	"context"
	"errors"
)

// ErrNotFound indicates a bill that does not exist for the given owner.
var ErrNotFound = errors.New("bill not found")

// PersistenceError wraps a record-store rejection (throttling, validation,
// connectivity). The pipeline propagates it without retrying.
type PersistenceError struct {
	Op      string
	OwnerID string
	BillID  string
	Err     error
}

func (e PersistenceError) Error() string {
	msg := "bill store " + e.Op + " owner=" + e.OwnerID
	if e.BillID != "" {
		msg += " bill=" + e.BillID
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e PersistenceError) Unwrap() error { return e.Err }

// ListOptions narrows and pages a bill listing.
type ListOptions struct {
	UtilityCategory string
	Limit           int32
	PageToken       string
}

// ListPage is one page of bills, newest first.
type ListPage struct {
	Bills         []Record
	NextPageToken string
}

// Repo abstracts the bill record store.
type Repo interface {
	Put(ctx context.Context, record Record) error
	List(ctx context.Context, ownerID string, opts ListOptions) (ListPage, error)
	Get(ctx context.Context, ownerID, billID string) (Record, error)
	Delete(ctx context.Context, ownerID, billID string) error
}
