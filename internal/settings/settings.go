// Package settings holds the client-local job search preferences and their
// normalization rules.
package settings

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Key is the storage key of the settings document.
const Key = "jobsearch_settings"

// Bounds of the recommendations list size.
const (
	MinRecommendationsLimit = 10
	MaxRecommendationsLimit = 200
)

// Scoring modes.
const (
	ScoringBalanced     = "Balanced"
	ScoringConservative = "Conservative"
	ScoringStartup      = "Startup"
	ScoringEnterprise   = "Enterprise"
)

// ScoringModes lists the accepted scoring modes in display order.
func ScoringModes() []string {
	return []string{ScoringBalanced, ScoringConservative, ScoringStartup, ScoringEnterprise}
}

// Settings are the persisted preferences.
type Settings struct {
	RecommendationsLimit          int    `json:"recommendationsLimit" validate:"min=10,max=200"`
	HideReject                    bool   `json:"hideReject"`
	AutoRecomputeAfterProfileSave bool   `json:"autoRecomputeAfterProfileSave"`
	ScoringMode                   string `json:"scoringMode" validate:"oneof=Balanced Conservative Startup Enterprise"`
}

// Defaults returns the settings used when nothing valid is stored.
func Defaults() Settings {
	return Settings{
		RecommendationsLimit:          50,
		HideReject:                    true,
		AutoRecomputeAfterProfileSave: false,
		ScoringMode:                   ScoringBalanced,
	}
}

var validate = validator.New()

// Validate checks every field against its domain.
func (s Settings) Validate() error {
	return validate.Struct(s)
}

// NormalizeSettings replaces each invalid field with its default, clamping the
// limit into range. Valid fields are kept unchanged.
func NormalizeSettings(s Settings) Settings {
	d := Defaults()
	out := s
	out.RecommendationsLimit = clampLimit(s.RecommendationsLimit)
	if validate.Var(s.ScoringMode, "oneof=Balanced Conservative Startup Enterprise") != nil {
		out.ScoringMode = d.ScoringMode
	}
	return out
}

// Normalize decodes a stored document field by field. Anything that is not a
// JSON object yields the defaults; a bad field never rejects the others.
func Normalize(raw []byte) Settings {
	out := Defaults()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return out
	}

	if v, ok := fields["recommendationsLimit"]; ok {
		if n, ok := parseLimit(v); ok {
			out.RecommendationsLimit = clampLimit(n)
		}
	}
	if v, ok := fields["hideReject"]; ok {
		if b, ok := parseBool(v); ok {
			out.HideReject = b
		}
	}
	if v, ok := fields["autoRecomputeAfterProfileSave"]; ok {
		if b, ok := parseBool(v); ok {
			out.AutoRecomputeAfterProfileSave = b
		}
	}
	if v, ok := fields["scoringMode"]; ok {
		var mode string
		if json.Unmarshal(v, &mode) == nil {
			out.ScoringMode = mode
		}
	}

	return NormalizeSettings(out)
}

func clampLimit(n int) int {
	return max(MinRecommendationsLimit, min(MaxRecommendationsLimit, n))
}

func parseBool(raw json.RawMessage) (bool, bool) {
	switch strings.TrimSpace(string(raw)) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// parseLimit accepts a JSON number (truncated) or a string starting with an
// integer, such as "75" or " 120 items". null is unparsable.
func parseLimit(raw json.RawMessage) (int, bool) {
	if strings.TrimSpace(string(raw)) == "null" {
		return 0, false
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		if math.IsNaN(num) || math.IsInf(num, 0) {
			return 0, false
		}
		return clampFloat(num), true
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return 0, false
	}
	return leadingInt(str)
}

func clampFloat(f float64) int {
	switch {
	case f > MaxRecommendationsLimit:
		return MaxRecommendationsLimit
	case f < MinRecommendationsLimit:
		return MinRecommendationsLimit
	default:
		return int(f)
	}
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// out of int range; the sign decides which bound wins
		if s[0] == '-' {
			return MinRecommendationsLimit, true
		}
		return MaxRecommendationsLimit, true
	}
	return n, true
}
