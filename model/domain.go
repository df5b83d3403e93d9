package model

import "strings"

// DomainID identifies a directory domain, e.g. "saude".
type DomainID string

// UnknownDomainLabel is rendered for domains missing from configuration.
const UnknownDomainLabel = "unknown"

type Domain struct {
	ID    DomainID `json:"id"`
	Label string   `json:"label"` // e.g. "saude.pmb"
}

// NormalizeDomainID lower-cases and trims a caller supplied domain identifier.
func NormalizeDomainID(s string) DomainID {
	return DomainID(strings.ToLower(strings.TrimSpace(s)))
}
