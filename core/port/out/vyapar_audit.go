package out

import "vyapar_server/core/domain"

// AuditRecorder is the append-only audit/metrics log. Each append is atomic
// per call; records are never mutated after the fact except through an
// explicit override, which itself appends to the audit trail.
type AuditRecorder interface {
	RecordClassification(rec domain.ClassificationRecord) string
	RecordMatch(rec domain.MatchRecord) string
	RecordOverride(rec domain.OverrideRecord) string
	Dashboard() domain.DashboardMetrics
}
