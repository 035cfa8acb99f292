// Package sweeper runs periodic maintenance: expired freezes are only
// logically inactive until this clears the flag.
package sweeper

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/baitolink/backend/internal/score"
)

type Sweeper struct {
	logger *zap.Logger
	pg     *pgxpool.Pool
	ledger *score.Ledger
	cron   *cron.Cron
}

func New(logger *zap.Logger, pg *pgxpool.Pool, ledger *score.Ledger) *Sweeper {
	return &Sweeper{logger: logger, pg: pg, ledger: ledger, cron: cron.New()}
}

// Start schedules the unfreeze sweep with a cron spec (e.g. "@every 10m").
func (s *Sweeper) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.sweepOnce); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Sweeper) sweepOnce() {
	n, err := s.ledger.UnfreezeExpired(context.Background(), s.pg)
	if err != nil {
		s.logger.Error("unfreeze sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("unfroze expired accounts", zap.Int64("count", n))
	}
}
