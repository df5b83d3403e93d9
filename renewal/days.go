package renewal

import "time"

// DaysRemaining counts whole calendar days from now's date to the expiration's
// date, both read in now's location. Time of day is ignored, so an account
// expiring later today has 0 days remaining and one that expired yesterday -1.
//
// The engine and the status display both use this function so they cannot
// disagree at the boundaries.
func DaysRemaining(expiration, now time.Time) int {
	exp := expiration.In(now.Location())
	return civilDay(exp) - civilDay(now)
}

// civilDay maps a date to a day number independent of its location's UTC offset.
func civilDay(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
