// service/renewal_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pmb-ti/accountrenewal/directory"
	echo_errors "github.com/pmb-ti/accountrenewal/errors"
	logger "github.com/pmb-ti/accountrenewal/logging"
	"github.com/pmb-ti/accountrenewal/model"
	"github.com/pmb-ti/accountrenewal/renewal"
	"github.com/pmb-ti/accountrenewal/util"
)

// MsgRenewalSucceeded is the confirmation returned by a successful renewal.
const MsgRenewalSucceeded = "renewal completed successfully"

// IRenewalService defines the interface for account renewal operations
type IRenewalService interface {
	// Execute runs one renewal. Every failure is reported in the returned
	// OutcomeReport; the error is only set for an invalid classification.
	Execute(ctx context.Context, login string, domain model.DomainID, classification model.Classification) (*model.OutcomeReport, error)
	// Lookup returns an account and its expiration status without changing it.
	Lookup(ctx context.Context, login string, domain model.DomainID) (*model.AccountView, error)
}

// RenewalService sequences validate, lookup, decide and apply for one
// account. It performs at most one lookup and one update per call and never
// retries.
type RenewalService struct {
	directory      directory.Service
	validationUtil *util.ValidationUtil
	eventBus       *util.EventBus
	domainLabel    func(model.DomainID) string
	now            func() time.Time
}

var _ IRenewalService = &RenewalService{}

type Option func(*RenewalService)

// WithClock replaces time.Now as the source of the reference time.
func WithClock(now func() time.Time) Option {
	return func(s *RenewalService) { s.now = now }
}

// WithEventBus publishes renewal.succeeded and renewal.failed events on bus.
func WithEventBus(bus *util.EventBus) Option {
	return func(s *RenewalService) { s.eventBus = bus }
}

// WithDomainLabels sets how domain identifiers are rendered in messages.
func WithDomainLabels(label func(model.DomainID) string) Option {
	return func(s *RenewalService) { s.domainLabel = label }
}

// NewRenewalService creates a new instance of RenewalService
func NewRenewalService(dir directory.Service, validationUtil *util.ValidationUtil, opts ...Option) *RenewalService {
	s := &RenewalService{
		directory:      dir,
		validationUtil: validationUtil,
		domainLabel:    func(model.DomainID) string { return model.UnknownDomainLabel },
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RenewalService) Execute(ctx context.Context, login string, domainID model.DomainID, classification model.Classification) (*model.OutcomeReport, error) {
	domain := model.Domain{ID: domainID, Label: s.domainLabel(domainID)}
	log := logger.WithContext(
		zap.String("request_id", util.RequestIDFromContext(ctx)),
		zap.String("login", login),
		zap.String("domain", domain.Label),
		zap.Stringer("classification", classification),
	)
	start := time.Now()

	login, report := s.validate(login)
	if report != nil {
		return s.finish(ctx, log, login, domain, classification, report, start), nil
	}

	account, report := s.lookup(ctx, log, login, domain)
	if report != nil {
		return s.finish(ctx, log, login, domain, classification, report, start), nil
	}

	verdict, report, err := s.decide(log, account, classification)
	if err != nil {
		log.Error("Renewal aborted: invalid classification", zap.Error(err))
		return nil, err
	}
	if report != nil {
		return s.finish(ctx, log, login, domain, classification, report, start), nil
	}

	report = s.apply(ctx, log, login, domain, verdict)
	return s.finish(ctx, log, login, domain, classification, report, start), nil
}

func (s *RenewalService) validate(login string) (string, *model.OutcomeReport) {
	normalized, err := s.validationUtil.NormalizeLogin(login)
	if err != nil {
		return login, model.Failed(model.OutcomeValidationError, util.MsgLoginRequired)
	}
	return normalized, nil
}

func (s *RenewalService) lookup(ctx context.Context, log *zap.Logger, login string, domain model.Domain) (*model.Account, *model.OutcomeReport) {
	account, err := s.directory.FindAccount(ctx, login, domain.ID)
	if err != nil {
		log.Error("Directory lookup failed", zap.Error(err))
		return nil, model.Failed(model.OutcomeDirectoryFault,
			fmt.Sprintf("error looking up account in directory: %v", err))
	}
	if account == nil {
		return nil, model.Failed(model.OutcomeAccountNotFound, notFoundMessage(login, domain))
	}
	log.Debug("Account found",
		zap.String("displayName", account.DisplayName),
		zap.Stringer("expiration", account.Expiration),
		zap.Bool("enabled", account.Enabled))
	return account, nil
}

func (s *RenewalService) decide(log *zap.Logger, account *model.Account, classification model.Classification) (model.Verdict, *model.OutcomeReport, error) {
	verdict, err := renewal.Evaluate(account.Expiration, classification, s.now())
	if err != nil {
		return verdict, nil, err
	}
	log.Debug("Renewal evaluated",
		zap.Bool("eligible", verdict.Eligible),
		zap.String("reason", verdict.Reason),
		zap.Stringer("suggested", verdict.SuggestedExpiration))
	if !verdict.Eligible {
		return verdict, model.Failed(model.OutcomeRenewalRefused, verdict.Reason), nil
	}
	return verdict, nil, nil
}

func (s *RenewalService) apply(ctx context.Context, log *zap.Logger, login string, domain model.Domain, verdict model.Verdict) *model.OutcomeReport {
	if err := s.directory.UpdateExpiration(ctx, login, domain.ID, verdict.SuggestedExpiration); err != nil {
		log.Error("Directory update failed", zap.Error(err))
		kind := model.OutcomeDirectoryFault
		if errors.Is(err, echo_errors.ErrAccountNotFound) {
			kind = model.OutcomeAccountNotFound
		}
		return model.Failed(kind, fmt.Sprintf("error renewing account in directory: %v", err))
	}
	return model.Succeeded(MsgRenewalSucceeded, verdict.SuggestedExpiration)
}

func (s *RenewalService) finish(ctx context.Context, log *zap.Logger, login string, domain model.Domain, classification model.Classification, report *model.OutcomeReport, start time.Time) *model.OutcomeReport {
	duration := time.Since(start)
	eventType := util.EventRenewalSucceeded
	if report.Success {
		log.Info("Account renewed",
			zap.Stringer("expiration", report.AppliedExpiration),
			zap.Duration("duration", duration))
	} else {
		eventType = util.EventRenewalFailed
		log.Warn("Account renewal failed",
			zap.String("kind", string(report.Kind)),
			zap.String("message", report.Message),
			zap.Duration("duration", duration))
	}

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, eventType, util.RenewalEvent{
			RequestID:      util.RequestIDFromContext(ctx),
			Login:          login,
			Domain:         domain,
			Classification: classification,
			Report:         *report,
		})
	}
	return report
}

// Lookup validates the login, reads the account and describes its
// expiration status relative to now.
func (s *RenewalService) Lookup(ctx context.Context, login string, domainID model.DomainID) (*model.AccountView, error) {
	domain := model.Domain{ID: domainID, Label: s.domainLabel(domainID)}

	login, err := s.validationUtil.NormalizeLogin(login)
	if err != nil {
		return nil, err
	}

	account, err := s.directory.FindAccount(ctx, login, domainID)
	if err != nil {
		logger.Error("Directory lookup failed",
			zap.String("request_id", util.RequestIDFromContext(ctx)),
			zap.String("login", login),
			zap.String("domain", domain.Label),
			zap.Error(err))
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: %s", echo_errors.ErrAccountNotFound, notFoundMessage(login, domain))
	}

	return &model.AccountView{
		Domain:  domain,
		Account: *account,
		Status:  renewal.DescribeExpiration(account.Expiration, s.now()),
	}, nil
}

func notFoundMessage(login string, domain model.Domain) string {
	return fmt.Sprintf("account '%s' not found in domain '%s'", login, domain.Label)
}
