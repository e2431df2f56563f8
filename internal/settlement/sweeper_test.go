package settlement

import (
	"context"
	"testing"
	"time"

	"github.com/trunorth/platform/internal/logging"
	"github.com/trunorth/platform/internal/wallet"
)

func TestSweepSettlesMaturedWithdrawals(t *testing.T) {
	ctx := context.Background()
	svc := wallet.NewService(wallet.NewMemoryRepository(), "NGN", nil)

	if _, err := svc.GetOrCreate(ctx, "alice"); err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	if _, _, err := svc.Deposit(ctx, "alice", wallet.DepositInput{Amount: 5_000}); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, _, err := svc.Withdraw(ctx, "alice", 2_000, wallet.BankDetails{BankAccount: "GTBank"}); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	// Fresh withdrawals stay pending under a long delay.
	sweeper := NewSweeper(svc, time.Hour, logging.Discard())
	settled, err := sweeper.Sweep(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if settled != 0 {
		t.Fatalf("expected nothing settled, got %d", settled)
	}

	// A zero delay matures them immediately.
	sweeper = NewSweeper(svc, -time.Second, logging.Discard())
	settled, err = sweeper.Sweep(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if settled != 1 {
		t.Fatalf("expected 1 settled, got %d", settled)
	}

	txs, err := svc.Transactions(ctx, "alice")
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if txs[0].Status != wallet.StatusCompleted {
		t.Fatalf("expected completed withdrawal, got %s", txs[0].Status)
	}
}

func TestSweeperStartStop(t *testing.T) {
	svc := wallet.NewService(wallet.NewMemoryRepository(), "NGN", nil)
	sweeper := NewSweeper(svc, time.Minute, logging.Discard())

	if err := sweeper.Start("@every 1h"); err != nil {
		t.Fatalf("start: %v", err)
	}
	sweeper.Stop()

	if err := NewSweeper(svc, time.Minute, logging.Discard()).Start("not a spec"); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
}
