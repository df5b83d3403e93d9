// model/account.go
package model

// Account is a read-only snapshot of a directory account taken at decision time.
// Changes are never made on the snapshot; they go to the directory as updates.
type Account struct {
	Login             string     `json:"login"` // sAMAccountName
	DisplayName       string     `json:"display_name"`
	UserPrincipalName string     `json:"user_principal_name,omitempty"`
	Expiration        Expiration `json:"expiration"`
	Enabled           bool       `json:"enabled"`
}

// AccountView is an account snapshot together with its expiration status.
type AccountView struct {
	Domain  Domain           `json:"domain"`
	Account Account          `json:"account"`
	Status  ExpirationStatus `json:"status"`
}
