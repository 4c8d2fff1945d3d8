//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
)

// Verdict categories assigned by the matcher.
const (
	VerdictReject = "reject"
	VerdictWeak   = "weak"
	VerdictStrong = "strong"
)

// Recommendation is a ranked vacancy for a profile
type Recommendation struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	CompanyName *string `json:"company_name"`
	Location    *string `json:"location"`
	URL         *string `json:"url"`
	FinalScore  float64 `json:"final_score"`
	Verdict     string  `json:"verdict"`
}

// HasVerdict compares verdicts case-insensitively.
func (r Recommendation) HasVerdict(verdict string) bool {
	return strings.EqualFold(strings.TrimSpace(r.Verdict), verdict)
}

// RecommendationsResponse is the ranked list for a profile.
type RecommendationsResponse struct {
	ProfileID int              `json:"profile_id"`
	Items     []Recommendation `json:"items"`
}

// Tailoring explains how a profile matches a vacancy. Explanation is an
// open-ended document whose layout has changed between backend versions, so it
// is kept raw and read with fallback paths.
type Tailoring struct {
	ProfileID   int             `json:"profile_id"`
	VacancyID   int             `json:"vacancy_id"`
	Explanation json.RawMessage `json:"explanation"`
	Evidence    json.RawMessage `json:"evidence"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON keeps a copy of the full payload for raw display.
func (t *Tailoring) UnmarshalJSON(data []byte) error {
	type alias Tailoring
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*t = Tailoring(a)
	t.Raw = append(json.RawMessage(nil), data...)
	return nil
}
