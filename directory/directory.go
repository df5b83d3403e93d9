// Package directory holds the bindings to the account directory that the
// renewal service reads from and writes to.
package directory

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	echo_errors "github.com/pmb-ti/accountrenewal/errors"
	logger "github.com/pmb-ti/accountrenewal/logging"
	"github.com/pmb-ti/accountrenewal/model"
)

// Service is the directory capability the renewal service depends on.
type Service interface {
	// FindAccount returns nil, nil when no account matches login in domain.
	// Connectivity or service failures wrap errors.ErrDirectoryFault.
	FindAccount(ctx context.Context, login string, domain model.DomainID) (*model.Account, error)
	// UpdateExpiration sets the account expiration, or removes it for
	// model.Never(). It wraps errors.ErrAccountNotFound when the account is
	// gone and errors.ErrDirectoryFault on connectivity or service failures.
	UpdateExpiration(ctx context.Context, login string, domain model.DomainID, expiration model.Expiration) error
}

// Pinger is implemented by bindings that can check a domain is reachable.
type Pinger interface {
	Ping(ctx context.Context, domain model.DomainID) error
}

func fault(op string, domain model.DomainID, err error) error {
	return fmt.Errorf("%w: %s %s: %w", echo_errors.ErrDirectoryFault, op, domain, err)
}

// VerifyConnectivity pings every domain concurrently and returns the first failure.
// Bindings that are not Pingers are considered reachable.
func VerifyConnectivity(ctx context.Context, svc Service, domains []model.Domain) error {
	p, ok := svc.(Pinger)
	if !ok {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, d := range domains {
		d := d
		g.Go(func() error {
			if err := p.Ping(ctx, d.ID); err != nil {
				logger.Error("Directory domain unreachable", zap.String("domain", d.Label), zap.Error(err))
				return fmt.Errorf("domain %s: %w", d.Label, err)
			}
			logger.Info("Directory domain reachable", zap.String("domain", d.Label))
			return nil
		})
	}
	return g.Wait()
}
