package renewal

import (
	"fmt"
	"time"

	"github.com/pmb-ti/accountrenewal/model"
)

// RenewalWindowDays is the largest number of remaining days for which an
// account with a fixed-term contract may be renewed.
const RenewalWindowDays = 30

// Evaluate decides whether an account whose current expiration is current may
// be renewed under classification c at time now. The first matching rule wins:
// permanent contracts, accounts without expiration and expired accounts are
// always eligible; otherwise the account must be within RenewalWindowDays of
// expiring. The suggested expiration is filled in on every branch, refused
// ones included.
//
// An invalid classification is returned as an error wrapping
// errors.ErrInvalidClassification.
func Evaluate(current model.Expiration, c model.Classification, now time.Time) (model.Verdict, error) {
	suggested, err := ComputeTargetExpiration(c, now)
	if err != nil {
		return model.Verdict{}, err
	}
	v := model.Verdict{SuggestedExpiration: suggested}

	if c == model.ClassificationPermanent {
		v.Eligible = true
		v.Reason = "permanent contract allows unrestricted renewal"
		return v, nil
	}

	expiresAt, ok := current.Time()
	if !ok {
		v.Eligible = true
		v.Reason = "account has no expiration; renewal permitted"
		return v, nil
	}

	days := DaysRemaining(expiresAt, now)
	v.DaysRemaining = &days

	switch {
	case days < 0:
		v.Eligible = true
		v.Reason = "account already expired; renewal required and permitted"
	case days > RenewalWindowDays:
		v.Eligible = false
		v.Reason = fmt.Sprintf("account still has %s of validity; renewal not recommended", dayCount(days))
	default:
		v.Eligible = true
		v.Reason = fmt.Sprintf("account expires in %s; renewal permitted", dayCount(days))
	}
	return v, nil
}

func dayCount(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
