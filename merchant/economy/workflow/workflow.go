// Package workflow runs deposits and withdrawals from claim to sent offer. Every
// permanent problem ends as a FailureError written once onto the trade row.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/skinmerchant/merchant/database/models"
	"github.com/ellavondegurechaff/skinmerchant/merchant/database/repositories"
	"github.com/ellavondegurechaff/skinmerchant/merchant/economy/bridge"
	"github.com/ellavondegurechaff/skinmerchant/merchant/economy/claim"
	"github.com/ellavondegurechaff/skinmerchant/merchant/economy/utils"
	"github.com/ellavondegurechaff/skinmerchant/merchant/logger"
	"github.com/ellavondegurechaff/skinmerchant/merchant/platform"
	"github.com/google/uuid"
)

// FailureError is a permanent, user-visible failure of one transaction.
type FailureError struct {
	Message string
}

func (e *FailureError) Error() string {
	return e.Message
}

func failf(format string, args ...any) *FailureError {
	return &FailureError{Message: fmt.Sprintf(format, args...)}
}

type Claimer interface {
	ClaimDeposit(ctx context.Context, id int64) (*models.TradeDeposit, error)
	ClaimWithdrawal(ctx context.Context, id int64) (*models.TradeWithdrawal, error)
	ClaimForRejection(ctx context.Context, id int64) (*models.TradeWithdrawal, error)
}

// Sourcer supplies items a withdrawal needs from the merchant's inventory or the
// marketplace.
type Sourcer interface {
	Inventory(ctx context.Context) ([]platform.Item, error)
	PurchaseAndImport(ctx context.Context, names []string) ([]platform.Item, error)
	RecoverUnconsumed(ctx context.Context, names []string) error
	Reservations() *bridge.Reservations
}

type Refresher interface {
	Refresh(ctx context.Context) error
}

type Config struct {
	SteamID            string
	ContextID          string
	MaxWithdrawalItems int
	// Retry bounds the attempts to persist an offer that was already sent.
	Retry utils.RetryPolicy
}

type Service struct {
	claims  Claimer
	users   repositories.UserRepository
	trades  repositories.TradeRepository
	trading platform.Client
	session Refresher
	sourcer Sourcer
	cfg     Config
}

func New(
	claims Claimer,
	users repositories.UserRepository,
	trades repositories.TradeRepository,
	trading platform.Client,
	session Refresher,
	sourcer Sourcer,
	cfg Config,
) *Service {
	if cfg.MaxWithdrawalItems <= 0 {
		cfg.MaxWithdrawalItems = utils.MaxWithdrawalItems
	}
	if cfg.Retry.Attempts <= 0 {
		cfg.Retry = utils.DefaultRetryPolicy()
	}
	return &Service{
		claims:  claims,
		users:   users,
		trades:  trades,
		trading: trading,
		session: session,
		sourcer: sourcer,
		cfg:     cfg,
	}
}

type runKey struct{}

func runAttr(ctx context.Context) slog.Attr {
	id, _ := ctx.Value(runKey{}).(string)
	return slog.String("run_id", id)
}

// RunDeposit processes one deposit and logs its outcome. It never panics.
func (s *Service) RunDeposit(ctx context.Context, id int64) {
	s.run(ctx, models.KindDeposit, id, s.ProcessDeposit)
}

// RunWithdrawal processes one withdrawal and logs its outcome. It never panics.
func (s *Service) RunWithdrawal(ctx context.Context, id int64) {
	s.run(ctx, models.KindWithdrawal, id, s.ProcessWithdrawal)
}

func (s *Service) run(ctx context.Context, kind models.TradeKind, id int64, process func(context.Context, int64) error) {
	ctx = context.WithValue(ctx, runKey{}, uuid.NewString())
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.LogError("Workflow panicked", fmt.Errorf("%v", r),
				slog.String("kind", string(kind)),
				slog.Int64("trade_id", id),
				runAttr(ctx))
			_ = s.recordFailure(context.WithoutCancel(ctx), kind, id, &FailureError{Message: MsgInternal})
		}
	}()

	err := process(ctx, id)

	var failure *FailureError
	switch {
	case err == nil:
		logger.LogTrade("Workflow finished", string(kind), id, runAttr(ctx), slog.Duration("took", time.Since(start)))
	case errors.As(err, &failure):
		slog.Warn("Workflow failed permanently",
			slog.String("type", "trade"),
			slog.String("kind", string(kind)),
			slog.Int64("trade_id", id),
			slog.String("reason", failure.Message),
			runAttr(ctx))
	default:
		logger.LogError("Workflow error", err,
			slog.String("kind", string(kind)),
			slog.Int64("trade_id", id),
			runAttr(ctx))
	}
}

// settle records err on a claimed trade. Anything that is not already a FailureError
// is recorded with a generic message so the row never stays claimed forever.
func (s *Service) settle(ctx context.Context, kind models.TradeKind, id int64, err error) error {
	if err == nil {
		return nil
	}

	var failure *FailureError
	if !errors.As(err, &failure) {
		logger.LogError("Unexpected workflow error", err,
			slog.String("kind", string(kind)),
			slog.Int64("trade_id", id),
			runAttr(ctx))
		failure = &FailureError{Message: MsgInternal}
	}

	if rerr := s.recordFailure(ctx, kind, id, failure); rerr != nil {
		return errors.Join(failure, rerr)
	}
	return failure
}

func (s *Service) recordFailure(ctx context.Context, kind models.TradeKind, id int64, failure *FailureError) error {
	err := s.trades.MarkFailed(ctx, kind, id, failure.Message)
	if errors.Is(err, repositories.ErrNoTransition) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to record failure: %w", err)
	}
	return nil
}

// persistOffer writes a sent offer onto its trade row. The offer is already out, so
// the write is retried and does not stop with ctx. A row that moved on meanwhile is
// left alone.
func (s *Service) persistOffer(ctx context.Context, kind models.TradeKind, id int64, offerID string, write func(ctx context.Context) error) error {
	_, err := utils.Retry(context.WithoutCancel(ctx), s.cfg.Retry, func(ctx context.Context, _ int) (struct{}, error) {
		err := write(ctx)
		if errors.Is(err, repositories.ErrNoTransition) {
			return struct{}{}, nil
		}
		return struct{}{}, err
	})
	if err != nil {
		logger.LogError("Failed to persist sent offer", err,
			slog.String("kind", string(kind)),
			slog.Int64("trade_id", id),
			slog.String("offer_id", offerID),
			runAttr(ctx))
		return &FailureError{Message: MsgInternal}
	}
	return nil
}

// counterparty creates the offer and vets the other side. Partner details are
// retried once after a session refresh.
func (s *Service) counterparty(ctx context.Context, tradeLink string) (*platform.Offer, error) {
	offer, err := s.trading.CreateOffer(ctx, tradeLink)
	if err != nil {
		return nil, failf(MsgInvalidTradeURL)
	}

	them, err := withRefresh(ctx, s.session, func(ctx context.Context) (platform.Party, error) {
		_, them, err := s.trading.PartnerDetails(ctx, offer)
		return them, err
	})
	if err != nil {
		slog.Warn("Partner details unavailable",
			slog.String("type", "trade"),
			slog.Any("error", err),
			runAttr(ctx))
		return nil, failf(MsgPartnerDetails)
	}

	if them.Probation {
		return nil, failf(MsgProbation)
	}
	if them.EscrowDays > 0 {
		return nil, failf(MsgEscrow, them.EscrowDays)
	}
	return offer, nil
}

// withRefresh runs fn, and on failure refreshes the session and runs it once more.
func withRefresh[T any](ctx context.Context, session Refresher, fn func(ctx context.Context) (T, error)) (T, error) {
	res, err := fn(ctx)
	if err == nil {
		return res, nil
	}
	if rerr := session.Refresh(ctx); rerr != nil {
		var zero T
		return zero, errors.Join(err, rerr)
	}
	return fn(ctx)
}

func tradeLink(user *models.User, err error) (string, error) {
	if repositories.IsNotFound(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return user.TradeLink(), nil
}

func isAlreadyClaimed(err error) bool {
	return errors.Is(err, claim.ErrAlreadyClaimed)
}
