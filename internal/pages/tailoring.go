package pages

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/jonathan/jobsearch-console/internal/types"
)

// EvidenceItem is one piece of supporting evidence for a match.
type EvidenceItem struct {
	Text       string
	Confidence *float64
}

// TailoringView is the display form of a tailoring explanation. Older and
// newer backend layouts are both read.
type TailoringView struct {
	Score             *float64
	Verdict           string
	KeywordsToAdd     []string
	MissingMustHave   []string
	MissingNiceToHave []string
	CoverLetterPoints []string
	Evidence          []EvidenceItem
	// Raw is the indented payload, shown when there are no known sections.
	Raw string
}

// HasSections reports whether any known section has content.
func (v TailoringView) HasSections() bool {
	return v.Score != nil ||
		v.Verdict != "" ||
		len(v.KeywordsToAdd) > 0 ||
		len(v.MissingMustHave) > 0 ||
		len(v.MissingNiceToHave) > 0 ||
		len(v.CoverLetterPoints) > 0 ||
		len(v.Evidence) > 0
}

// firstOf returns the first path that resolves to a non-null value.
func firstOf(doc []byte, paths ...string) gjson.Result {
	for _, path := range paths {
		if r := gjson.GetBytes(doc, path); r.Exists() && r.Type != gjson.Null {
			return r
		}
	}
	return gjson.Result{}
}

func stringList(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}
	var out []string
	for _, item := range r.Array() {
		out = append(out, item.String())
	}
	return out
}

// NewTailoringView extracts the displayable sections of t.
func NewTailoringView(t *types.Tailoring) TailoringView {
	if t == nil {
		return TailoringView{}
	}

	doc := t.Raw
	if len(doc) == 0 {
		doc, _ = json.Marshal(t)
	}

	var v TailoringView
	if score := firstOf(doc, "explanation.final.score", "explanation.final_score"); score.Type == gjson.Number {
		f := score.Float()
		v.Score = &f
	}
	v.Verdict = firstOf(doc, "explanation.final.verdict", "explanation.verdict").String()
	v.KeywordsToAdd = stringList(gjson.GetBytes(doc, "explanation.keywords_to_add"))
	v.MissingMustHave = stringList(gjson.GetBytes(doc, "explanation.missing_must_have"))
	v.MissingNiceToHave = stringList(gjson.GetBytes(doc, "explanation.missing_nice_to_have"))
	v.CoverLetterPoints = stringList(gjson.GetBytes(doc, "explanation.cover_letter_points"))

	evidence := gjson.GetBytes(doc, "evidence")
	if !evidence.IsArray() {
		evidence = gjson.GetBytes(doc, "explanation.evidence")
	}
	if evidence.IsArray() {
		for _, item := range evidence.Array() {
			v.Evidence = append(v.Evidence, evidenceItem(item))
		}
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, doc, "", "  "); err == nil {
		v.Raw = pretty.String()
	} else {
		v.Raw = string(doc)
	}
	return v
}

func evidenceItem(item gjson.Result) EvidenceItem {
	if !item.IsObject() {
		return EvidenceItem{Text: item.String()}
	}

	e := EvidenceItem{Text: firstOf([]byte(item.Raw), "text", "evidence_text").String()}
	if e.Text == "" {
		e.Text = item.Raw
	}
	if c := item.Get("confidence"); c.Type == gjson.Number {
		f := c.Float()
		e.Confidence = &f
	}
	return e
}
