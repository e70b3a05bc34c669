package bills

import (
	"context"
	"errors"
	"strings"

	"utilitycompare-backend/internal/shared/storage/object"
	"utilitycompare-backend/internal/shared/telemetry"
)

// ErrInvalidInput indicates missing or malformed request parameters.
var ErrInvalidInput = errors.New("invalid input")

// Service contains the read/delete logic behind the bills API.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
}

// List returns one page of the owner's bills.
func (s *Service) List(ctx context.Context, ownerID string, opts ListOptions) (ListPage, error) {
	if strings.TrimSpace(ownerID) == "" {
		return ListPage{}, ErrInvalidInput
	}
	if opts.Limit < 0 {
		opts.Limit = 0
	}
	if opts.Limit > defaultListLimit {
		opts.Limit = defaultListLimit
	}
	return s.Repo.List(ctx, ownerID, opts)
}

// Get returns one bill owned by ownerID.
func (s *Service) Get(ctx context.Context, ownerID, billID string) (Record, error) {
	if strings.TrimSpace(ownerID) == "" || strings.TrimSpace(billID) == "" {
		return Record{}, ErrInvalidInput
	}
	return s.Repo.Get(ctx, ownerID, billID)
}

// Delete removes one bill record and, best effort, its source document.
func (s *Service) Delete(ctx context.Context, ownerID, billID string) error {
	if strings.TrimSpace(ownerID) == "" || strings.TrimSpace(billID) == "" {
		return ErrInvalidInput
	}

	record, err := s.Repo.Get(ctx, ownerID, billID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, ownerID, billID); err != nil {
		return err
	}

	if s.Store != nil && record.ObjectKey != "" {
		if err := s.Store.Delete(ctx, "", record.ObjectKey); err != nil {
			telemetry.Warn("bills.delete.object_cleanup_failed", map[string]any{
				"owner_id": ownerID,
				"bill_id":  billID,
				"s3_key":   record.ObjectKey,
				"error":    err.Error(),
			})
		}
	}
	return nil
}
