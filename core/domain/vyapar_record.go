package domain

// ClassificationRecord is one audit entry for a classification request.
type ClassificationRecord struct {
	ID               string         `json:"id"`
	Timestamp        string         `json:"timestamp"`
	Text             string         `json:"text"`
	Category         string         `json:"category"`
	Confidence       float64        `json:"confidence"`
	Band             ConfidenceBand `json:"band"`
	HSN              string         `json:"hsn"`
	ProcessingTimeMs float64        `json:"processing_time_ms"`
}

// MatchRecord is one audit entry for a recommendation request.
type MatchRecord struct {
	ID          string  `json:"id"`
	Timestamp   string  `json:"timestamp"`
	Category    string  `json:"category"`
	Location    string  `json:"location"`
	TopPlatform string  `json:"top_platform"`
	TopScore    float64 `json:"top_score"`
}

// OverrideRecord is one audit entry for a manual admin correction.
type OverrideRecord struct {
	AuditID   string `json:"audit_id"`
	Timestamp string `json:"timestamp"`
	RecordID  string `json:"record_id"`
	Field     string `json:"field"`
	OldValue  string `json:"old_value"`
	NewValue  string `json:"new_value"`
	Reason    string `json:"reason"`
	AdminID   string `json:"admin_id"`
}

// DashboardMetrics aggregates the audit log for the admin dashboard.
type DashboardMetrics struct {
	TotalOnboarded        int                    `json:"total_onboarded"`
	AvgConfidence         float64                `json:"avg_confidence"`
	AvgProcessingTimeMs   float64                `json:"avg_processing_time_ms"`
	BandDistribution      map[ConfidenceBand]int `json:"band_distribution"`
	RecentClassifications []ClassificationRecord `json:"recent_classifications"`
}
