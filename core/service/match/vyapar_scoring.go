package match

import (
	"math"
	"strings"

	"vyapar_server/core/domain"
)

const earthRadiusKm = 6371

// haversine returns the great-circle distance between two points in km.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dlat := radians(lat2 - lat1)
	dlon := radians(lon2 - lon1)
	a := math.Pow(math.Sin(dlat/2), 2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Pow(math.Sin(dlon/2), 2)
	return earthRadiusKm * 2 * math.Asin(math.Sqrt(a))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// cosineSimilarity returns the cosine of the angle between two vectors.
// Degenerate inputs score a neutral 0.5 rather than failing the factor.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0.5
	}
	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0.5
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// domainScoreFromSimilarity maps cosine similarity [-1, 1] into [0.3, 0.95].
func domainScoreFromSimilarity(sim float64) float64 {
	return math.Max(0.3, math.Min(0.95, 0.3+(sim+1)*0.325))
}

// domainFallbackScore scores domain affinity from the platform's declared
// domain list when no embedding comparison is possible. An exact L1 match
// scores higher the earlier the domain appears in the list.
func domainFallbackScore(productCategory string, domains []string) float64 {
	l1 := productCategory
	if idx := strings.Index(productCategory, " > "); idx >= 0 {
		l1 = productCategory[:idx]
	}

	for i, d := range domains {
		if d == l1 {
			return 0.85 + 0.1/float64(i+1)
		}
	}

	l1Lower := strings.ToLower(l1)
	for _, d := range domains {
		dLower := strings.ToLower(d)
		if strings.Contains(dLower, l1Lower) || strings.Contains(l1Lower, dLower) {
			return 0.65
		}
	}

	return 0.3
}

// geographyScore decays linearly with distance, floored at 0.3 so remote
// merchants still see national platforms.
func geographyScore(lat, lon float64, geo domain.PlatformGeography) float64 {
	dist := haversine(lat, lon, geo.Lat, geo.Lon)
	return math.Max(0.3, 1.0-dist/2000)
}

// capacityScore penalizes loaded platforms, floored at 0.3.
func capacityScore(cap domain.PlatformCapacity) float64 {
	return math.Max(0.3, 1.0-cap.LoadRatio*0.5)
}

func historyScore(h domain.PlatformHistory) float64 {
	return h.SuccessRate
}

// specializationScore favors platforms aligned with the merchant's business
// type, with a 0.3 uplift capped at 1.0.
func specializationScore(businessType string, spec domain.PlatformSpecialization) float64 {
	ratio := spec.B2CRatio
	if businessType == "B2B" {
		ratio = spec.B2BRatio
	}
	return math.Min(1.0, ratio+0.3)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
