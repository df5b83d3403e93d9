package renewal

import (
	"time"

	"github.com/pmb-ti/accountrenewal/model"
)

// closeToExpiringDays marks accounts worth flagging to the operator.
const closeToExpiringDays = 5

// DescribeExpiration reports the informational expiration status of an
// account. It uses the same day count as Evaluate.
func DescribeExpiration(current model.Expiration, now time.Time) model.ExpirationStatus {
	expiresAt, ok := current.Time()
	if !ok {
		return model.ExpirationStatus{State: model.StateNoExpiration}
	}

	days := DaysRemaining(expiresAt, now)
	status := model.ExpirationStatus{DaysRemaining: &days}
	if days < 0 {
		status.State = model.StateExpired
		return status
	}

	status.State = model.StateActive
	switch {
	case days > RenewalWindowDays:
		status.Warning = model.WarningMoreThan30Days
	case days <= closeToExpiringDays:
		status.Warning = model.WarningCloseToExpiring
	}
	return status
}
