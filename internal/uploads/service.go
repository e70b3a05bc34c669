package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"utilitycompare-backend/internal/shared/storage/object"
	"utilitycompare-backend/internal/shared/util"
)

// ErrInvalidInput indicates a missing or unacceptable upload parameter.
var ErrInvalidInput = errors.New("invalid input")

var utilityCategories = map[string]bool{
	"electricity": true,
	"gas":         true,
	"water":       true,
	"internet":    true,
	"phone":       true,
}

// UploadedBill describes a stored bill document awaiting processing.
type UploadedBill struct {
	Key      string
	Location string
	Size     int64
}

// Service stores uploaded bill PDFs under the key layout the processing
// pipeline derives identity from.
type Service struct {
	Store object.ObjectStore
}

// NewService constructs a Service.
func NewService(store object.ObjectStore) *Service {
	return &Service{Store: store}
}

// Upload validates the parameters and writes the document at
// users/{userID}/bills/{utilityType}/{fileName}. The sanitized file name
// must end in .pdf or the processor would silently skip the object.
func (s *Service) Upload(ctx context.Context, userID, utilityType, fileName, contentType string, r io.Reader) (UploadedBill, error) {
	if strings.TrimSpace(userID) == "" {
		return UploadedBill{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	utilityType = strings.ToLower(strings.TrimSpace(utilityType))
	if !utilityCategories[utilityType] {
		return UploadedBill{}, fmt.Errorf("%w: unknown utility type %q", ErrInvalidInput, utilityType)
	}

	clean, err := util.SanitizeFileName(fileName)
	if err != nil {
		return UploadedBill{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	if !strings.HasSuffix(strings.ToLower(clean), ".pdf") {
		return UploadedBill{}, fmt.Errorf("%w: only PDF files are accepted", ErrInvalidInput)
	}

	if contentType == "" {
		contentType = "application/pdf"
	}

	key := "users/" + userID + "/bills/" + utilityType + "/" + clean
	location, size, err := s.Store.Put(ctx, key, contentType, r)
	if err != nil {
		return UploadedBill{}, fmt.Errorf("store upload key=%s: %w", key, err)
	}
	return UploadedBill{Key: key, Location: location, Size: size}, nil
}
