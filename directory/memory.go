package directory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	echo_errors "github.com/pmb-ti/accountrenewal/errors"
	"github.com/pmb-ti/accountrenewal/model"
)

// MemoryDirectory is an in-process directory. Logins are matched
// case-insensitively, as sAMAccountName is in Active Directory.
type MemoryDirectory struct {
	mu       sync.RWMutex
	domains  map[model.DomainID]bool
	accounts map[memoryKey]model.Account

	// FindErr and UpdateErr, when set, are returned by the next calls as
	// directory faults.
	FindErr   error
	UpdateErr error
}

type memoryKey struct {
	domain model.DomainID
	login  string
}

func key(domain model.DomainID, login string) memoryKey {
	return memoryKey{domain: domain, login: strings.ToLower(login)}
}

// NewMemoryDirectory creates a directory serving the given domains.
func NewMemoryDirectory(domains ...model.DomainID) *MemoryDirectory {
	d := &MemoryDirectory{
		domains:  make(map[model.DomainID]bool),
		accounts: make(map[memoryKey]model.Account),
	}
	for _, id := range domains {
		d.domains[id] = true
	}
	return d
}

// Put stores or replaces an account.
func (d *MemoryDirectory) Put(domain model.DomainID, account model.Account) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.domains[domain] = true
	d.accounts[key(domain, account.Login)] = account
}

// Delete removes an account.
func (d *MemoryDirectory) Delete(domain model.DomainID, login string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.accounts, key(domain, login))
}

func (d *MemoryDirectory) FindAccount(_ context.Context, login string, domain model.DomainID) (*model.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.FindErr != nil {
		return nil, fault("lookup", domain, d.FindErr)
	}
	if !d.domains[domain] {
		return nil, fault("lookup", domain, echo_errors.ErrUnsupportedDomain)
	}
	account, ok := d.accounts[key(domain, login)]
	if !ok {
		return nil, nil
	}
	return &account, nil
}

func (d *MemoryDirectory) UpdateExpiration(_ context.Context, login string, domain model.DomainID, expiration model.Expiration) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.UpdateErr != nil {
		return fault("update", domain, d.UpdateErr)
	}
	if !d.domains[domain] {
		return fault("update", domain, echo_errors.ErrUnsupportedDomain)
	}
	k := key(domain, login)
	account, ok := d.accounts[k]
	if !ok {
		return fmt.Errorf("%w: %s in %s", echo_errors.ErrAccountNotFound, login, domain)
	}
	account.Expiration = expiration
	d.accounts[k] = account
	return nil
}

func (d *MemoryDirectory) Ping(_ context.Context, domain model.DomainID) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.domains[domain] {
		return fault("ping", domain, echo_errors.ErrUnsupportedDomain)
	}
	return nil
}
