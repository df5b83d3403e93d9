package renewal

import (
	"fmt"
	"time"

	echo_errors "github.com/pmb-ti/accountrenewal/errors"
	"github.com/pmb-ti/accountrenewal/model"
)

const (
	internTermMonths   = 6
	appointedTermYears = 1
)

// ComputeTargetExpiration returns the expiration a renewal under c grants when
// performed at ref. Permanent contracts never expire.
func ComputeTargetExpiration(c model.Classification, ref time.Time) (model.Expiration, error) {
	switch c {
	case model.ClassificationIntern:
		return model.ExpiresAt(addMonthsClamped(ref, internTermMonths)), nil
	case model.ClassificationAppointed:
		return model.ExpiresAt(addMonthsClamped(ref, 12*appointedTermYears)), nil
	case model.ClassificationPermanent:
		return model.Never(), nil
	default:
		return model.Never(), fmt.Errorf("%w: %d", echo_errors.ErrInvalidClassification, int(c))
	}
}

// addMonthsClamped adds n months to t, clamping the day to the end of the
// target month instead of overflowing into the next one (time.AddDate
// normalizes Aug 31 + 6 months to Mar 3).
func addMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()

	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(first.Year(), first.Month(), t.Location()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}

func daysIn(y int, m time.Month, loc *time.Location) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, loc).Day()
}
