package catalog

import "strings"

// hinglishMarkers are common Romanized Hindi function words and verb forms.
// Entries with trailing spaces guard against matching inside English words.
var hinglishMarkers = []string{
	"hoon", "hain", "hai", "karta", "karti", "karte",
	"banata", "banati", "banate", "main", "mein", "hum",
	"aur", "ke liye", "ka ", "ki ", "ko ", "wala", "wali",
}

// guessLanguage is the offline language heuristic used when the remote
// detector is unavailable. Any Devanagari character means Hindi; otherwise
// two or more distinct Hinglish markers mean Romanized Hindi; everything
// else is treated as English.
func guessLanguage(text string) string {
	for _, r := range text {
		if r >= 0x0900 && r <= 0x097F {
			return "hi"
		}
	}

	lower := strings.ToLower(text)
	markers := 0
	for _, m := range hinglishMarkers {
		if strings.Contains(lower, m) {
			markers++
			if markers >= 2 {
				return "hi"
			}
		}
	}

	return "en"
}
