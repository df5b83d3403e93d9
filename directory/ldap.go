package directory

import (
	"context"
	"crypto/tls"
	"fmt"
	"math"
	"net"
	"strconv"
	"time"

	"github.com/go-ldap/ldap/v3"
	"go.uber.org/zap"

	echo_errors "github.com/pmb-ti/accountrenewal/errors"
	logger "github.com/pmb-ti/accountrenewal/logging"
	"github.com/pmb-ti/accountrenewal/model"
)

const (
	attrLogin              = "sAMAccountName"
	attrDisplayName        = "displayName"
	attrUserPrincipalName  = "userPrincipalName"
	attrAccountExpires     = "accountExpires"
	attrUserAccountControl = "userAccountControl"

	// uacAccountDisable is the ACCOUNTDISABLE flag of userAccountControl.
	uacAccountDisable = 0x2

	// fileTimeUnixEpoch is 1970-01-01 expressed in 100ns ticks since 1601-01-01.
	fileTimeUnixEpoch = 116444736000000000
	fileTimeNever     = math.MaxInt64
)

var accountAttributes = []string{
	attrLogin, attrDisplayName, attrUserPrincipalName, attrAccountExpires, attrUserAccountControl,
}

// LDAPDomain holds the connection settings of one Active Directory domain.
type LDAPDomain struct {
	URL                string
	BaseDN             string
	BindUser           string
	BindPassword       string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// ldapConn is the subset of *ldap.Conn used here.
type ldapConn interface {
	Bind(username, password string) error
	Search(req *ldap.SearchRequest) (*ldap.SearchResult, error)
	Modify(req *ldap.ModifyRequest) error
}

type dialFunc func(ctx context.Context, cfg LDAPDomain) (ldapConn, func(), error)

// LDAPDirectory talks to Active Directory domains over LDAP. A connection is
// opened and bound per operation.
type LDAPDirectory struct {
	domains map[model.DomainID]LDAPDomain
	dial    dialFunc
}

func NewLDAPDirectory(domains map[model.DomainID]LDAPDomain) *LDAPDirectory {
	return &LDAPDirectory{domains: domains, dial: dialLDAP}
}

func dialLDAP(ctx context.Context, cfg LDAPDomain) (ldapConn, func(), error) {
	dialer := &net.Dialer{Timeout: cfg.Timeout}
	if deadline, ok := ctx.Deadline(); ok {
		dialer.Deadline = deadline
	}

	conn, err := ldap.DialURL(cfg.URL,
		ldap.DialWithDialer(dialer),
		ldap.DialWithTLSConfig(&tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify}),
	)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Timeout > 0 {
		conn.SetTimeout(cfg.Timeout)
	}
	return conn, func() { conn.Close() }, nil
}

func (d *LDAPDirectory) connect(ctx context.Context, domain model.DomainID) (ldapConn, LDAPDomain, func(), error) {
	cfg, ok := d.domains[domain]
	if !ok {
		return nil, cfg, nil, echo_errors.ErrUnsupportedDomain
	}

	conn, closeConn, err := d.dial(ctx, cfg)
	if err != nil {
		return nil, cfg, nil, fmt.Errorf("connect to %s: %w", cfg.URL, err)
	}
	if cfg.BindUser != "" {
		if err := conn.Bind(cfg.BindUser, cfg.BindPassword); err != nil {
			closeConn()
			return nil, cfg, nil, fmt.Errorf("bind as %s: %w", cfg.BindUser, err)
		}
	}
	return conn, cfg, closeConn, nil
}

func (d *LDAPDirectory) search(conn ldapConn, cfg LDAPDomain, login string) (*ldap.Entry, error) {
	filter := fmt.Sprintf("(&(objectCategory=person)(objectClass=user)(%s=%s))", attrLogin, ldap.EscapeFilter(login))
	req := ldap.NewSearchRequest(
		cfg.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases,
		0, int(cfg.Timeout/time.Second), false,
		filter,
		accountAttributes,
		nil,
	)

	res, err := conn.Search(req)
	if err != nil {
		return nil, err
	}
	if len(res.Entries) == 0 {
		return nil, nil
	}
	return res.Entries[0], nil
}

func (d *LDAPDirectory) FindAccount(ctx context.Context, login string, domain model.DomainID) (*model.Account, error) {
	start := time.Now()
	conn, cfg, closeConn, err := d.connect(ctx, domain)
	if err != nil {
		return nil, fault("lookup", domain, err)
	}
	defer closeConn()

	entry, err := d.search(conn, cfg, login)
	if err != nil {
		logger.Error("LDAP account search failed", zap.String("login", login), zap.String("domain", string(domain)), zap.Error(err))
		return nil, fault("lookup", domain, err)
	}
	if entry == nil {
		logger.Debug("LDAP account not found",
			zap.String("login", login),
			zap.String("domain", string(domain)),
			zap.Duration("duration", time.Since(start)))
		return nil, nil
	}

	account, err := accountFromEntry(entry)
	if err != nil {
		return nil, fault("lookup", domain, err)
	}
	logger.Debug("LDAP account found",
		zap.String("login", login),
		zap.String("dn", entry.DN),
		zap.Duration("duration", time.Since(start)))
	return account, nil
}

func (d *LDAPDirectory) UpdateExpiration(ctx context.Context, login string, domain model.DomainID, expiration model.Expiration) error {
	conn, cfg, closeConn, err := d.connect(ctx, domain)
	if err != nil {
		return fault("update", domain, err)
	}
	defer closeConn()

	entry, err := d.search(conn, cfg, login)
	if err != nil {
		return fault("update", domain, err)
	}
	if entry == nil {
		return fmt.Errorf("%w: %s in %s", echo_errors.ErrAccountNotFound, login, domain)
	}

	req := ldap.NewModifyRequest(entry.DN, nil)
	req.Replace(attrAccountExpires, []string{formatAccountExpires(expiration)})
	if err := conn.Modify(req); err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultNoSuchObject) {
			return fmt.Errorf("%w: %s in %s", echo_errors.ErrAccountNotFound, login, domain)
		}
		logger.Error("LDAP expiration update failed", zap.String("dn", entry.DN), zap.Error(err))
		return fault("update", domain, err)
	}

	logger.Info("LDAP account expiration updated",
		zap.String("dn", entry.DN),
		zap.Stringer("expiration", expiration))
	return nil
}

// Ping opens and binds a connection to the domain.
func (d *LDAPDirectory) Ping(ctx context.Context, domain model.DomainID) error {
	_, _, closeConn, err := d.connect(ctx, domain)
	if err != nil {
		return fault("ping", domain, err)
	}
	closeConn()
	return nil
}

func accountFromEntry(entry *ldap.Entry) (*model.Account, error) {
	expiration, err := parseAccountExpires(entry.GetAttributeValue(attrAccountExpires))
	if err != nil {
		return nil, err
	}
	enabled, err := parseEnabled(entry.GetAttributeValue(attrUserAccountControl))
	if err != nil {
		return nil, err
	}
	return &model.Account{
		Login:             entry.GetAttributeValue(attrLogin),
		DisplayName:       entry.GetAttributeValue(attrDisplayName),
		UserPrincipalName: entry.GetAttributeValue(attrUserPrincipalName),
		Expiration:        expiration,
		Enabled:           enabled,
	}, nil
}

// parseAccountExpires decodes the accountExpires FILETIME. Missing values,
// 0 and MaxInt64 all mean the account never expires.
func parseAccountExpires(raw string) (model.Expiration, error) {
	if raw == "" {
		return model.Never(), nil
	}
	ft, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return model.Never(), fmt.Errorf("invalid %s %q: %w", attrAccountExpires, raw, err)
	}
	if ft <= 0 || ft == fileTimeNever {
		return model.Never(), nil
	}
	ticks := ft - fileTimeUnixEpoch
	return model.ExpiresAt(time.Unix(ticks/1e7, (ticks%1e7)*100).UTC()), nil
}

func formatAccountExpires(e model.Expiration) string {
	t, ok := e.Time()
	if !ok {
		return strconv.FormatInt(fileTimeNever, 10)
	}
	ft := t.Unix()*1e7 + int64(t.Nanosecond()/100) + fileTimeUnixEpoch
	return strconv.FormatInt(ft, 10)
}

// parseEnabled reads the ACCOUNTDISABLE flag. Accounts without
// userAccountControl are treated as enabled.
func parseEnabled(raw string) (bool, error) {
	if raw == "" {
		return true, nil
	}
	uac, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return true, fmt.Errorf("invalid %s %q: %w", attrUserAccountControl, raw, err)
	}
	return uac&uacAccountDisable == 0, nil
}
