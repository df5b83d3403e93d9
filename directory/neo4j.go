package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	echo_errors "github.com/pmb-ti/accountrenewal/errors"
	logger "github.com/pmb-ti/accountrenewal/logging"
	"github.com/pmb-ti/accountrenewal/model"
	helper_util "github.com/pmb-ti/accountrenewal/util/helper"
)

// Neo4jDirectory serves accounts from a graph mirror of the directory, one
// (:Account) node per login and domain. Nodes are matched on loginKey, the
// lower-cased login, so that lookups are case-insensitive like
// sAMAccountName.
type Neo4jDirectory struct {
	Driver   neo4j.DriverWithContext
	Database string
}

func NewNeo4jDirectory(driver neo4j.DriverWithContext, database string) *Neo4jDirectory {
	return &Neo4jDirectory{Driver: driver, Database: database}
}

// EnsureUniqueConstraint makes (domain, loginKey) unique among Account nodes.
func (d *Neo4jDirectory) EnsureUniqueConstraint(ctx context.Context) error {
	logger.Info("Ensuring unique constraint on Account login")
	session := d.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `
        CREATE CONSTRAINT unique_account_login IF NOT EXISTS
        FOR (a:Account) REQUIRE (a.domain, a.loginKey) IS UNIQUE
        `
		_, err := tx.Run(ctx, query, nil)
		return nil, err
	})
	if err != nil {
		logger.Error("Failed to ensure unique constraint on Account login", zap.Error(err))
		return err
	}
	return nil
}

func (d *Neo4jDirectory) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return d.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: mode, DatabaseName: d.Database})
}

func (d *Neo4jDirectory) FindAccount(ctx context.Context, login string, domain model.DomainID) (*model.Account, error) {
	start := time.Now()
	session := d.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `
        MATCH (a:Account {domain: $domain, loginKey: $loginKey})
        RETURN a
        `
		res, err := tx.Run(ctx, query, accountParams(login, domain))
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			node, ok := res.Record().Values[0].(neo4j.Node)
			if !ok {
				return nil, fmt.Errorf("unexpected record value %T", res.Record().Values[0])
			}
			return accountFromProps(node.Props)
		}
		return nil, res.Err()
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to find account",
			zap.Error(err),
			zap.String("login", login),
			zap.String("domain", string(domain)),
			zap.Duration("duration", duration))
		return nil, fault("lookup", domain, err)
	}

	account, _ := result.(*model.Account)
	logger.Debug("Account lookup finished",
		zap.String("login", login),
		zap.Bool("found", account != nil),
		zap.Duration("duration", duration))
	return account, nil
}

func (d *Neo4jDirectory) UpdateExpiration(ctx context.Context, login string, domain model.DomainID, expiration model.Expiration) error {
	start := time.Now()
	session := d.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `
        MATCH (a:Account {domain: $domain, loginKey: $loginKey})
        SET a.expiresAt = $expiresAt, a.updatedAt = $updatedAt
        RETURN a.login AS login
        `
		params := accountParams(login, domain)
		params["expiresAt"] = helper_util.FormatExpiration(expiration)
		params["updatedAt"] = time.Now().UTC().Format(time.RFC3339Nano)
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			if err := res.Err(); err != nil {
				return nil, err
			}
			return nil, echo_errors.ErrAccountNotFound
		}
		return nil, nil
	})

	duration := time.Since(start)
	if err != nil {
		if errors.Is(err, echo_errors.ErrAccountNotFound) {
			return fmt.Errorf("%w: %s in %s", echo_errors.ErrAccountNotFound, login, domain)
		}
		logger.Error("Failed to update account expiration",
			zap.Error(err),
			zap.String("login", login),
			zap.Duration("duration", duration))
		return fault("update", domain, err)
	}

	logger.Info("Account expiration updated",
		zap.String("login", login),
		zap.String("domain", string(domain)),
		zap.Stringer("expiration", expiration),
		zap.Duration("duration", duration))
	return nil
}

// Ping verifies the graph database is reachable. All domains live in it.
func (d *Neo4jDirectory) Ping(ctx context.Context, domain model.DomainID) error {
	if err := d.Driver.VerifyConnectivity(ctx); err != nil {
		return fault("ping", domain, err)
	}
	return nil
}

// loginKey is the value stored in the loginKey property of an Account node.
func loginKey(login string) string {
	return strings.ToLower(login)
}

func accountParams(login string, domain model.DomainID) map[string]interface{} {
	return map[string]interface{}{"domain": string(domain), "loginKey": loginKey(login)}
}

func accountFromProps(props map[string]interface{}) (*model.Account, error) {
	expiration, err := helper_util.ParseExpiration(props["expiresAt"])
	if err != nil {
		return nil, fmt.Errorf("account %v: %w", props["login"], err)
	}

	account := &model.Account{Enabled: true, Expiration: expiration}
	account.Login, _ = props["login"].(string)
	account.DisplayName, _ = props["displayName"].(string)
	account.UserPrincipalName, _ = props["upn"].(string)
	if enabled, ok := props["enabled"].(bool); ok {
		account.Enabled = enabled
	}
	return account, nil
}
