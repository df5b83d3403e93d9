package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// Expiration is an optional account expiration instant. The zero value means
// the account never expires; it never stands for "unknown".
type Expiration struct {
	at  time.Time
	set bool
}

// Never returns an Expiration with no expiration enforced.
func Never() Expiration {
	return Expiration{}
}

// ExpiresAt returns an Expiration set to t.
func ExpiresAt(t time.Time) Expiration {
	return Expiration{at: t, set: true}
}

// ExpirationFromPtr converts a nullable time into an Expiration.
func ExpirationFromPtr(t *time.Time) Expiration {
	if t == nil {
		return Never()
	}
	return ExpiresAt(*t)
}

// Time returns the expiration instant and whether one is set.
func (e Expiration) Time() (time.Time, bool) {
	return e.at, e.set
}

func (e Expiration) IsNever() bool {
	return !e.set
}

// Ptr returns the expiration as a nullable time.
func (e Expiration) Ptr() *time.Time {
	if !e.set {
		return nil
	}
	t := e.at
	return &t
}

// Equal reports whether both values are never, or both are set to the same instant.
func (e Expiration) Equal(o Expiration) bool {
	if e.set != o.set {
		return false
	}
	return !e.set || e.at.Equal(o.at)
}

func (e Expiration) String() string {
	if !e.set {
		return "never"
	}
	return e.at.Format(time.RFC3339)
}

func (e Expiration) MarshalJSON() ([]byte, error) {
	if !e.set {
		return []byte("null"), nil
	}
	return json.Marshal(e.at.Format(time.RFC3339))
}

func (e *Expiration) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*e = Never()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	*e = ExpiresAt(t)
	return nil
}
