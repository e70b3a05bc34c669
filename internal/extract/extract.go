package extract

import (
	"bytes"
	"context"
	"io"

	"github.com/ledongthuc/pdf"

	"utilitycompare-backend/internal/shared/storage/object"
)

// FetchError indicates the stored document could not be retrieved.
type FetchError struct {
	Bucket string
	Key    string
	Err    error
}

func (e FetchError) Error() string {
	return "fetch object bucket=" + e.Bucket + " key=" + e.Key + ": " + e.Err.Error()
}

func (e FetchError) Unwrap() error { return e.Err }

// ParseError indicates the retrieved bytes could not be decoded as a PDF.
type ParseError struct {
	Key string
	Err error
}

func (e ParseError) Error() string {
	return "parse pdf key=" + e.Key + ": " + e.Err.Error()
}

func (e ParseError) Unwrap() error { return e.Err }

// Extractor pulls plain text out of stored PDF documents.
type Extractor struct {
	Store object.ObjectStore
}

// Text fetches one object and returns its concatenated page text. An empty
// result is not an error; scanned image-only bills legitimately yield no
// text. Retrieval and decode failures are reported as distinct error types
// and neither is retried here.
func (x *Extractor) Text(ctx context.Context, bucket, key string) (string, error) {
	data, err := x.Store.Fetch(ctx, bucket, key)
	if err != nil {
		return "", FetchError{Bucket: bucket, Key: key, Err: err}
	}

	text, err := extractPDF(data)
	if err != nil {
		return "", ParseError{Key: key, Err: err}
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
