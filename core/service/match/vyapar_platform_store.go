package match

import (
	"os"

	gojson "github.com/goccy/go-json"

	"vyapar_server/core/domain"
)

// Seed coordinates and ratios applied when a platform record omits a field.
const (
	defaultLat         = 28.6
	defaultLon         = 77.2
	defaultLoadRatio   = 0.5
	defaultSuccessRate = 0.5
	defaultSpecRatio   = 0.5
)

// LoadPlatforms reads the platform seed file. Both a raw array and a
// {"platforms": [...]} wrapper are accepted. A missing or malformed file
// yields an empty slice; recommendations then come back empty rather than
// failing the process.
func LoadPlatforms(path string) []domain.PlatformProfile {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var doc domain.PlatformDocument
	if err := gojson.Unmarshal(raw, &doc); err != nil {
		var list []domain.PlatformProfile
		if err2 := gojson.Unmarshal(raw, &list); err2 != nil {
			return nil
		}
		doc.Platforms = list
	}

	for i := range doc.Platforms {
		normalizePlatform(&doc.Platforms[i])
	}
	return doc.Platforms
}

// normalizePlatform fills absent numeric fields with neutral seed values.
// Absent fields decode to zero, which would skew scores.
func normalizePlatform(p *domain.PlatformProfile) {
	if p.Geography.Lat == 0 && p.Geography.Lon == 0 {
		p.Geography.Lat = defaultLat
		p.Geography.Lon = defaultLon
	}
	if p.Capacity.LoadRatio == 0 {
		p.Capacity.LoadRatio = defaultLoadRatio
	}
	if p.History.SuccessRate == 0 {
		p.History.SuccessRate = defaultSuccessRate
	}
	if p.Specialization.B2BRatio == 0 && p.Specialization.B2CRatio == 0 {
		p.Specialization.B2BRatio = defaultSpecRatio
		p.Specialization.B2CRatio = defaultSpecRatio
	}
}
