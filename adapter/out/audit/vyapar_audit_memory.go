// Package audit implements the append-only in-memory audit recorder with a
// structured audit trail stream.
package audit

import (
	"io"
	"math"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"vyapar_server/core/domain"
)

// recentWindow is how many classifications the dashboard echoes back.
const recentWindow = 10

// MemoryRecorder keeps audit records in memory and mirrors every append to
// a zerolog audit stream. Records are immutable once appended; overrides
// are themselves appended records.
type MemoryRecorder struct {
	mu              sync.RWMutex
	classifications []domain.ClassificationRecord
	matches         []domain.MatchRecord
	overrides       []domain.OverrideRecord
	trail           zerolog.Logger
}

// NewMemoryRecorder creates a recorder streaming its trail to w.
// Pass nil to stream to stdout.
func NewMemoryRecorder(w io.Writer) *MemoryRecorder {
	if w == nil {
		w = os.Stdout
	}
	trail := zerolog.New(w).With().
		Timestamp().
		Str("stream", "audit").
		Logger()
	return &MemoryRecorder{trail: trail}
}

// RecordClassification appends a classification record and returns its id.
func (r *MemoryRecorder) RecordClassification(rec domain.ClassificationRecord) string {
	rec.ID = newRecordID()
	rec.Timestamp = now()

	r.mu.Lock()
	r.classifications = append(r.classifications, rec)
	r.mu.Unlock()

	r.trail.Info().
		Str("kind", "classification").
		Str("id", rec.ID).
		Str("category", rec.Category).
		Float64("confidence", rec.Confidence).
		Str("band", string(rec.Band)).
		Str("hsn", rec.HSN).
		Float64("processing_time_ms", rec.ProcessingTimeMs).
		Msg("classification recorded")

	return rec.ID
}

// RecordMatch appends a match record and returns its id.
func (r *MemoryRecorder) RecordMatch(rec domain.MatchRecord) string {
	rec.ID = newRecordID()
	rec.Timestamp = now()

	r.mu.Lock()
	r.matches = append(r.matches, rec)
	r.mu.Unlock()

	r.trail.Info().
		Str("kind", "match").
		Str("id", rec.ID).
		Str("category", rec.Category).
		Str("top_platform", rec.TopPlatform).
		Float64("top_score", rec.TopScore).
		Msg("match recorded")

	return rec.ID
}

// RecordOverride appends an override record and returns its audit id.
func (r *MemoryRecorder) RecordOverride(rec domain.OverrideRecord) string {
	rec.AuditID = newRecordID()
	rec.Timestamp = now()

	r.mu.Lock()
	r.overrides = append(r.overrides, rec)
	r.mu.Unlock()

	r.trail.Info().
		Str("kind", "override").
		Str("audit_id", rec.AuditID).
		Str("record_id", rec.RecordID).
		Str("field", rec.Field).
		Str("old_value", rec.OldValue).
		Str("new_value", rec.NewValue).
		Str("admin_id", rec.AdminID).
		Msg("override recorded")

	return rec.AuditID
}

// Dashboard aggregates the classification log.
func (r *MemoryRecorder) Dashboard() domain.DashboardMetrics {
	r.mu.RLock()
	defer r.mu.RUnlock()

	metrics := domain.DashboardMetrics{
		BandDistribution: map[domain.ConfidenceBand]int{
			domain.BandGreen:  0,
			domain.BandYellow: 0,
			domain.BandRed:    0,
		},
		RecentClassifications: []domain.ClassificationRecord{},
	}

	total := len(r.classifications)
	if total == 0 {
		return metrics
	}

	var sumConfidence, sumTime float64
	for _, c := range r.classifications {
		metrics.BandDistribution[c.Band]++
		sumConfidence += c.Confidence
		sumTime += c.ProcessingTimeMs
	}

	metrics.TotalOnboarded = total
	metrics.AvgConfidence = math.Round(sumConfidence/float64(total)*1000) / 1000
	metrics.AvgProcessingTimeMs = math.Round(sumTime/float64(total)*10) / 10

	// Most recent first.
	start := total - recentWindow
	if start < 0 {
		start = 0
	}
	for i := total - 1; i >= start; i-- {
		metrics.RecentClassifications = append(metrics.RecentClassifications, r.classifications[i])
	}

	return metrics
}

// Overrides returns a copy of the override log.
func (r *MemoryRecorder) Overrides() []domain.OverrideRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.OverrideRecord(nil), r.overrides...)
}

// newRecordID is a short uuid prefix, long enough for a demo-scale log.
func newRecordID() string {
	return uuid.NewString()[:8]
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
