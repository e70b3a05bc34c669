package billproc

import (
	"context"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"utilitycompare-backend/internal/bills"
	"utilitycompare-backend/internal/shared/metrics"
	"utilitycompare-backend/internal/shared/telemetry"
)

// TextExtractor pulls plain text from a stored PDF.
type TextExtractor interface {
	Text(ctx context.Context, bucket, key string) (string, error)
}

// Interpreter turns raw bill text into structured fields.
type Interpreter interface {
	Interpret(ctx context.Context, text string) (bills.ExtractedFields, error)
}

// RecordWriter persists one completed bill record per processed object.
type RecordWriter interface {
	Store(ctx context.Context, objectKey string, fields bills.ExtractedFields, rawText string) (bills.Record, error)
}

// Pipeline runs the extract, interpret, store sequence for object-created
// events. Each collaborator is an explicit handle so tests can substitute
// any stage.
type Pipeline struct {
	Extractor   TextExtractor
	Interpreter Interpreter
	Records     RecordWriter
}

// ShouldProcess reports whether one event record is in scope: an
// object-created event whose key names a PDF. The eventName may or may not
// carry the "s3:" prefix depending on how the notification was delivered.
func ShouldProcess(eventName, key string) bool {
	name := strings.TrimPrefix(eventName, "s3:")
	if !strings.HasPrefix(name, "ObjectCreated") {
		return false
	}
	return strings.HasSuffix(strings.ToLower(key), ".pdf")
}

// HandleEvent processes the records of one notification batch in order.
// The first failure aborts the batch and is returned; records after it are
// not attempted. Out-of-scope records are skipped, never failed.
func (p *Pipeline) HandleEvent(ctx context.Context, event events.S3Event) error {
	for _, record := range event.Records {
		bucket := record.S3.Bucket.Name
		key := record.S3.Object.Key

		metrics.IncBillEventReceived()

		if !ShouldProcess(record.EventName, key) {
			metrics.IncBillEventSkipped()
			telemetry.Info("billproc.skip", map[string]any{
				"event_name": record.EventName,
				"bucket":     bucket,
				"key":        key,
			})
			continue
		}

		if err := p.processOne(ctx, bucket, key); err != nil {
			metrics.IncBillEventFailed()
			telemetry.Error("billproc.failed", map[string]any{
				"bucket": bucket,
				"key":    key,
				"error":  err.Error(),
			})
			return err
		}
		metrics.IncBillEventCompleted()
	}
	return nil
}

// processOne runs the three stages strictly in sequence. A failed stage
// short-circuits; nothing is written unless all three succeed.
func (p *Pipeline) processOne(ctx context.Context, bucket, key string) error {
	start := metrics.NowMillis()

	text, err := p.Extractor.Text(ctx, bucket, key)
	if err != nil {
		return err
	}
	telemetry.Info("billproc.extracted", map[string]any{
		"bucket": bucket,
		"key":    key,
		"chars":  len(text),
	})

	fields, err := p.Interpreter.Interpret(ctx, text)
	if err != nil {
		return err
	}

	record, err := p.Records.Store(ctx, key, fields, text)
	if err != nil {
		return err
	}

	metrics.ObserveBillProcessingDurationMs(metrics.NowMillis() - start)
	telemetry.Info("billproc.completed", map[string]any{
		"bucket":   bucket,
		"key":      key,
		"owner_id": record.OwnerID,
		"bill_id":  record.BillID,
	})
	return nil
}
