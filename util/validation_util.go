// util/validation_util.go

package util

import (
	"fmt"
	"strings"

	echo_errors "github.com/pmb-ti/accountrenewal/errors"
)

// MsgLoginRequired is reported when a renewal is requested without a login.
const MsgLoginRequired = "login required"

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

// NormalizeLogin trims the login and rejects it when nothing is left.
func (v *ValidationUtil) NormalizeLogin(login string) (string, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return "", fmt.Errorf("%w: %s", echo_errors.ErrValidation, MsgLoginRequired)
	}
	return login, nil
}
