package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	billEventsReceivedTotal  atomic.Uint64
	billEventsSkippedTotal   atomic.Uint64
	billEventsCompletedTotal atomic.Uint64
	billEventsFailedTotal    atomic.Uint64

	billProcessingDuration = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 30000, 60000, 120000})
)

// IncBillEventReceived increments the received counter.
func IncBillEventReceived() {
	billEventsReceivedTotal.Add(1)
}

// IncBillEventSkipped increments the skipped counter (filtered events).
func IncBillEventSkipped() {
	billEventsSkippedTotal.Add(1)
}

// IncBillEventCompleted increments the completed counter.
func IncBillEventCompleted() {
	billEventsCompletedTotal.Add(1)
}

// IncBillEventFailed increments the failed counter.
func IncBillEventFailed() {
	billEventsFailedTotal.Add(1)
}

// ObserveBillProcessingDurationMs records one event's processing duration in milliseconds.
func ObserveBillProcessingDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	billProcessingDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "bill_events_received_total", "Total bill notification events received", billEventsReceivedTotal.Load())
	writeCounter(&buf, "bill_events_skipped_total", "Total bill notification events skipped by filtering", billEventsSkippedTotal.Load())
	writeCounter(&buf, "bill_events_completed_total", "Total bill events processed to a stored record", billEventsCompletedTotal.Load())
	writeCounter(&buf, "bill_events_failed_total", "Total bill events that failed processing", billEventsFailedTotal.Load())
	writeHistogram(&buf, "bill_processing_duration_ms", "Bill event processing duration in milliseconds", billProcessingDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
