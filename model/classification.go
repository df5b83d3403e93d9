// model/classification.go
package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Classification is the contract type an account is renewed under.
// The zero value is not a valid classification.
type Classification int

const (
	ClassificationIntern    Classification = 1
	ClassificationAppointed Classification = 2
	ClassificationPermanent Classification = 3
)

// Classifications lists every supported classification in display order.
func Classifications() []Classification {
	return []Classification{ClassificationIntern, ClassificationAppointed, ClassificationPermanent}
}

func (c Classification) String() string {
	switch c {
	case ClassificationIntern:
		return "intern"
	case ClassificationAppointed:
		return "appointed"
	case ClassificationPermanent:
		return "permanent"
	default:
		return fmt.Sprintf("classification(%d)", int(c))
	}
}

// Valid reports whether c belongs to the closed set.
func (c Classification) Valid() bool {
	switch c {
	case ClassificationIntern, ClassificationAppointed, ClassificationPermanent:
		return true
	}
	return false
}

// ParseClassification accepts the classification names (case-insensitive) and
// their numeric codes.
func ParseClassification(s string) (Classification, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(v); err == nil {
		c := Classification(n)
		if c.Valid() {
			return c, nil
		}
		return 0, fmt.Errorf("unknown classification %q", s)
	}
	for _, c := range Classifications() {
		if c.String() == v {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown classification %q", s)
}

func (c Classification) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Classification) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("classification must be a string or number: %w", err)
		}
		s = strconv.Itoa(n)
	}
	parsed, err := ParseClassification(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
