package settlement

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Ledger is the slice of the wallet service the sweeper needs.
type Ledger interface {
	SettlePending(ctx context.Context, cutoff time.Time) (int, error)
}

// Sweeper periodically completes pending withdrawals older than the
// configured delay.
type Sweeper struct {
	ledger Ledger
	delay  time.Duration
	logger *slog.Logger
	cron   *cron.Cron
}

// NewSweeper builds a sweeper that settles withdrawals once they are older
// than delay.
func NewSweeper(ledger Ledger, delay time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		ledger: ledger,
		delay:  delay,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start schedules the sweep on the given cron spec and begins running it in
// the background.
func (s *Sweeper) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("settlement sweeper started", "spec", spec, "delay", s.delay.String())
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("settlement sweeper stopped")
}

// Sweep settles pending withdrawals created before now minus the delay. It is
// exported so operators can trigger it out of schedule.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC().Add(-s.delay)
	return s.ledger.SettlePending(ctx, cutoff)
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	settled, err := s.Sweep(ctx)
	if err != nil {
		s.logger.Error("settlement sweep failed", "error", err)
		return
	}
	if settled > 0 {
		s.logger.Info("settled pending withdrawals", "count", settled)
	}
}
