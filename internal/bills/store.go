package bills

import (
	"context"
	"time"
)

// Store derives a bill's identity from its object key and persists the
// extracted record. It writes exactly one complete record per call; on any
// failure nothing is written.
type Store struct {
	Repo Repo

	// Overridable for tests.
	Now   func() time.Time
	NewID func() string
}

// NewStore builds a Store over the given repo.
func NewStore(repo Repo) *Store {
	return &Store{Repo: repo, Now: time.Now, NewID: NewBillID}
}

// Store persists one completed bill record for the given object key.
func (s *Store) Store(ctx context.Context, objectKey string, fields ExtractedFields, rawText string) (Record, error) {
	parts, err := ParseObjectKey(objectKey)
	if err != nil {
		return Record{}, err
	}

	now := s.Now
	if now == nil {
		now = time.Now
	}
	newID := s.NewID
	if newID == nil {
		newID = NewBillID
	}

	record := Record{
		OwnerID:          parts.OwnerID,
		BillID:           newID(),
		ObjectKey:        objectKey,
		FileName:         parts.FileName,
		UploadTimestamp:  now().UTC().Format(time.RFC3339),
		UtilityCategory:  parts.UtilityCategory,
		ExtractedData:    fields,
		RawText:          rawText,
		ProcessingStatus: StatusCompleted,
	}

	if err := s.Repo.Put(ctx, record); err != nil {
		return Record{}, err
	}
	return record, nil
}
