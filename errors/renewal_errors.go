// errors/renewal_errors.go
package errors

import "errors"

var (
	ErrValidation            = errors.New("validation error")
	ErrInvalidClassification = errors.New("invalid classification")
	ErrAccountNotFound       = errors.New("account not found")
	ErrDirectoryFault        = errors.New("directory fault")
	ErrRenewalRefused        = errors.New("renewal refused")
	ErrUnsupportedDomain     = errors.New("unsupported domain")
)

var ErrInternalServer = errors.New("internal server error")
