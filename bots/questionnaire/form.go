package questionnaire

import (
	"strconv"
	"strings"

	"github.com/LizardKing131313/tg-bots/core/flow"
)

// Field names double as state keys and locale key suffixes
// (form.ask.<name>, hint.<name>).
const (
	FieldName = "name"
	FieldAge  = "age"
	FieldCity = "city"
)

// Form is the questionnaire flow: name and age are required, city may be
// skipped. Declaration order defines the step numbering shown to the user.
var Form = flow.MustNew("form",
	flow.StepDef{Name: FieldName},
	flow.StepDef{Name: FieldAge},
	flow.StepDef{Name: FieldCity, CanSkip: true},
)

const (
	minAge = 1
	maxAge = 120
)

// ParseAge validates age input. Only decimal digits are accepted after
// trimming, and the value must fall within the inclusive 1..120 range.
func ParseAge(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < minAge || n > maxAge {
		return 0, false
	}
	return n, true
}
