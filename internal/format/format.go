// Package format turns raw backend values into display strings.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/jobsearch-console/internal/types"
)

// Placeholder is shown for absent numeric values.
const Placeholder = "—"

// SafeText returns the trimmed value, or fallback when it is nil or blank.
func SafeText(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	text := strings.TrimSpace(*value)
	if text == "" {
		return fallback
	}
	return text
}

// SalaryLabels customize Salary output.
type SalaryLabels struct {
	Empty     string
	From      string
	To        string
	Thousands string // digit group separator; empty disables grouping
}

// DefaultSalaryLabels returns the English labels without digit grouping.
func DefaultSalaryLabels() SalaryLabels {
	return SalaryLabels{Empty: "Salary not specified", From: "from", To: "up to"}
}

// SalaryRange is any subset of a salary bound pair plus currency.
type SalaryRange struct {
	From     *int
	To       *int
	Currency *string
}

// VacancySalary extracts the salary range of v.
func VacancySalary(v types.Vacancy) SalaryRange {
	return SalaryRange{From: v.SalaryFrom, To: v.SalaryTo, Currency: v.Currency}
}

// Salary renders a salary range as "from 1000 USD", "up to 2000",
// "1000 - 2000 EUR" or the empty label.
func Salary(r SalaryRange, labels SalaryLabels) string {
	if r.From == nil && r.To == nil {
		return labels.Empty
	}

	currency := ""
	if r.Currency != nil && *r.Currency != "" {
		currency = " " + *r.Currency
	}

	switch {
	case r.From != nil && r.To != nil:
		return fmt.Sprintf("%s - %s%s", group(*r.From, labels.Thousands), group(*r.To, labels.Thousands), currency)
	case r.From != nil:
		return fmt.Sprintf("%s %s%s", labels.From, group(*r.From, labels.Thousands), currency)
	default:
		return fmt.Sprintf("%s %s%s", labels.To, group(*r.To, labels.Thousands), currency)
	}
}

func group(n int, sep string) string {
	digits := strconv.Itoa(n)
	if sep == "" {
		return digits
	}

	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(d)
	}
	return sign + b.String()
}

// Confidence renders a score with two decimals, or the placeholder.
func Confidence(score *float64) string {
	if score == nil {
		return Placeholder
	}
	return strconv.FormatFloat(*score, 'f', 2, 64)
}

// Locale selects month names and clock style for DateTime.
type Locale string

const (
	LocaleRU Locale = "ru-RU"
	LocaleEN Locale = "en-US"
)

var ruMonths = [...]string{"янв.", "февр.", "мар.", "апр.", "мая", "июн.", "июл.", "авг.", "сент.", "окт.", "нояб.", "дек."}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp accepts the ISO-8601 forms the backend emits. Values
// without an offset are read as UTC.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateTime renders an ISO timestamp as a short date and time in loc.
// Empty or unparsable input yields "", false.
func DateTime(value string, locale Locale, loc *time.Location) (string, bool) {
	t, ok := ParseTimestamp(value)
	if !ok {
		return "", false
	}
	return Time(t, locale, loc), true
}

// Time renders t as a short date and time in loc (time.Local when nil).
func Time(t time.Time, locale Locale, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)

	if locale == LocaleEN {
		return t.Format("Jan 02, 2006, 03:04 PM")
	}
	return fmt.Sprintf("%02d %s %d г., %s", t.Day(), ruMonths[t.Month()-1], t.Year(), t.Format("15:04"))
}
