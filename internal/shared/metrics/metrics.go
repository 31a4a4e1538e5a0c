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
	renderStartedTotal   atomic.Uint64
	renderCompletedTotal atomic.Uint64
	renderFailedTotal    atomic.Uint64
	archiveFailedTotal   atomic.Uint64

	renderDuration = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 20000, 30000, 60000})
)

// IncRenderStarted counts a PDF render attempt.
func IncRenderStarted() {
	renderStartedTotal.Add(1)
}

// IncRenderCompleted counts a PDF render that produced a document.
func IncRenderCompleted() {
	renderCompletedTotal.Add(1)
}

// IncRenderFailed counts a PDF render that failed or timed out.
func IncRenderFailed() {
	renderFailedTotal.Add(1)
}

// IncArchiveFailed counts a generated PDF that could not be archived.
func IncArchiveFailed() {
	archiveFailedTotal.Add(1)
}

// ObserveRenderDuration records how long a render took.
func ObserveRenderDuration(d time.Duration) {
	value := float64(d) / float64(time.Millisecond)
	if value < 0 {
		value = 0
	}
	renderDuration.Observe(value)
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
	writeCounter(&buf, "resume_render_started_total", "Total PDF renders started", renderStartedTotal.Load())
	writeCounter(&buf, "resume_render_completed_total", "Total PDF renders completed", renderCompletedTotal.Load())
	writeCounter(&buf, "resume_render_failed_total", "Total PDF renders failed", renderFailedTotal.Load())
	writeCounter(&buf, "resume_archive_failed_total", "Total generated PDFs not archived", archiveFailedTotal.Load())
	writeHistogram(&buf, "resume_render_duration_ms", "PDF render duration in milliseconds", renderDuration.Snapshot())
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
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
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
