package domain

// PlatformDocument is the on-disk shape of the platform seed file.
type PlatformDocument struct {
	Platforms []PlatformProfile `json:"platforms"`
}

// PlatformProfile is a static per-platform record loaded at startup.
// Read-only after load.
type PlatformProfile struct {
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Embedding      []float64              `json:"embedding,omitempty"`
	Domains        []string               `json:"domains"`
	Geography      PlatformGeography      `json:"geography"`
	Capacity       PlatformCapacity       `json:"capacity"`
	History        PlatformHistory        `json:"history"`
	Specialization PlatformSpecialization `json:"specialization"`
}

type PlatformGeography struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type PlatformCapacity struct {
	LoadRatio float64 `json:"load_ratio"`
}

type PlatformHistory struct {
	SuccessRate float64 `json:"success_rate"`
}

type PlatformSpecialization struct {
	B2BRatio float64 `json:"b2b_ratio"`
	B2CRatio float64 `json:"b2c_ratio"`
}
