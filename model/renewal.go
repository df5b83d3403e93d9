// model/renewal.go
package model

// Verdict is the result of one renewal evaluation.
type Verdict struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason"`
	// DaysRemaining is nil when the rule that decided did not need the day count.
	DaysRemaining       *int       `json:"days_remaining,omitempty"`
	SuggestedExpiration Expiration `json:"suggested_expiration"`
}

type OutcomeKind string

const (
	OutcomeSuccess         OutcomeKind = "success"
	OutcomeValidationError OutcomeKind = "validation_error"
	OutcomeAccountNotFound OutcomeKind = "account_not_found"
	OutcomeDirectoryFault  OutcomeKind = "directory_fault"
	OutcomeRenewalRefused  OutcomeKind = "renewal_refused"
)

// OutcomeReport is what a renewal run returns to its caller.
type OutcomeReport struct {
	Success           bool        `json:"success"`
	Kind              OutcomeKind `json:"kind"`
	Message           string      `json:"message"`
	AppliedExpiration Expiration  `json:"applied_expiration"`
}

// Failed builds a failure report.
func Failed(kind OutcomeKind, message string) *OutcomeReport {
	return &OutcomeReport{Success: false, Kind: kind, Message: message}
}

// Succeeded builds a success report.
func Succeeded(message string, applied Expiration) *OutcomeReport {
	return &OutcomeReport{Success: true, Kind: OutcomeSuccess, Message: message, AppliedExpiration: applied}
}

type ExpirationState string

const (
	StateNoExpiration ExpirationState = "no_expiration"
	StateExpired      ExpirationState = "expired"
	StateActive       ExpirationState = "active"
)

type ExpirationWarning string

const (
	WarningNone            ExpirationWarning = ""
	WarningMoreThan30Days  ExpirationWarning = "more_than_30_days"
	WarningCloseToExpiring ExpirationWarning = "close_to_expiring"
)

// ExpirationStatus is the informational status shown next to an account.
// It never blocks a renewal.
type ExpirationStatus struct {
	State         ExpirationState   `json:"state"`
	DaysRemaining *int              `json:"days_remaining,omitempty"`
	Warning       ExpirationWarning `json:"warning,omitempty"`
}
