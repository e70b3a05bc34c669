package uploads

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"utilitycompare-backend/internal/bills"
)

type fakeStore struct {
	lastKey         string
	lastContentType string
	lastBody        string
	err             error
}

func (s *fakeStore) Put(ctx context.Context, key, contentType string, r io.Reader) (string, int64, error) {
	if s.err != nil {
		return "", 0, s.err
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", 0, err
	}
	s.lastKey = key
	s.lastContentType = contentType
	s.lastBody = string(body)
	return "https://bucket.s3.eu-west-1.amazonaws.com/" + key, int64(len(body)), nil
}

func (s *fakeStore) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeStore) Delete(ctx context.Context, bucket, key string) error {
	return errors.New("not implemented")
}

func TestUploadBuildsPipelineKey(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	bill, err := svc.Upload(context.Background(), "u-1", "Electricity", "March Bill (final).pdf", "application/pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if store.lastKey != "users/u-1/bills/electricity/March_Bill__final_.pdf" {
		t.Fatalf("key = %q", store.lastKey)
	}
	if bill.Size != int64(len("%PDF-1.4")) {
		t.Fatalf("size = %d", bill.Size)
	}

	// The key the upload writes must round-trip through the processor's
	// identity parser.
	parts, err := bills.ParseObjectKey(bill.Key)
	if err != nil {
		t.Fatalf("upload key does not parse: %v", err)
	}
	if parts.OwnerID != "u-1" || parts.UtilityCategory != "electricity" {
		t.Fatalf("parsed parts = %+v", parts)
	}
}

func TestUploadRejectsBadInput(t *testing.T) {
	svc := NewService(&fakeStore{})

	tests := []struct {
		name        string
		userID      string
		utilityType string
		fileName    string
	}{
		{"missing user", "", "gas", "a.pdf"},
		{"unknown utility type", "u-1", "crypto", "a.pdf"},
		{"empty utility type", "u-1", "", "a.pdf"},
		{"non-pdf file", "u-1", "gas", "bill.docx"},
		{"traversal name", "u-1", "gas", "../../etc/passwd.pdf"},
		{"empty name", "u-1", "gas", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Upload(context.Background(), tc.userID, tc.utilityType, tc.fileName, "", strings.NewReader("x"))
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestUploadDefaultContentType(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	if _, err := svc.Upload(context.Background(), "u-1", "water", "q1.pdf", "", strings.NewReader("x")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if store.lastContentType != "application/pdf" {
		t.Fatalf("content type = %q", store.lastContentType)
	}
}
