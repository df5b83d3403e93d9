package helper_util

import (
	"fmt"
	"time"

	"github.com/pmb-ti/accountrenewal/model"
)

// ParseExpiration converts a stored, possibly null, timestamp into an
// Expiration. nil means the account never expires.
func ParseExpiration(value interface{}) (model.Expiration, error) {
	if value == nil {
		return model.Never(), nil
	}

	switch v := value.(type) {
	case time.Time:
		return model.ExpiresAt(v), nil
	case string:
		if v == "" {
			return model.Never(), nil
		}
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return model.Never(), err
		}
		return model.ExpiresAt(t), nil
	default:
		return model.Never(), fmt.Errorf("unsupported type for expiration parsing: %T", value)
	}
}

// FormatExpiration is the inverse of ParseExpiration: nil for never,
// RFC3339 with nanoseconds otherwise.
func FormatExpiration(e model.Expiration) interface{} {
	t, ok := e.Time()
	if !ok {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}
