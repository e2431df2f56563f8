package wallet

import (
	"context"
	"errors"
	"testing"
	"time"
)

func setupService(t *testing.T) (*Service, context.Context) {
	t.Helper()
	return NewService(NewMemoryRepository(), "NGN", nil), context.Background()
}

func fund(t *testing.T, svc *Service, ctx context.Context, userID string, amount int64) Wallet {
	t.Helper()
	if _, err := svc.GetOrCreate(ctx, userID); err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	_, w, err := svc.Deposit(ctx, userID, DepositInput{Amount: amount, PaymentMethod: "card"})
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	return w
}

func TestDepositIncrementsBalance(t *testing.T) {
	svc, ctx := setupService(t)

	if _, err := svc.GetOrCreate(ctx, "alice"); err != nil {
		t.Fatalf("create wallet: %v", err)
	}

	tx, w, err := svc.Deposit(ctx, "alice", DepositInput{Amount: 5_000, PaymentMethod: "card"})
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if w.Balance != 5_000 {
		t.Fatalf("expected balance 5000, got %d", w.Balance)
	}
	if tx.Type != TypeDeposit || tx.Status != StatusCompleted || tx.Amount != 5_000 {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
}

func TestDepositRejectsNonPositiveAmount(t *testing.T) {
	svc, ctx := setupService(t)
	fund(t, svc, ctx, "alice", 1_000)

	for _, amount := range []int64{0, -100} {
		if _, _, err := svc.Deposit(ctx, "alice", DepositInput{Amount: amount}); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %d: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestWithdrawRecordsPendingDebit(t *testing.T) {
	svc, ctx := setupService(t)
	fund(t, svc, ctx, "alice", 5_000)

	tx, w, err := svc.Withdraw(ctx, "alice", 2_000, BankDetails{BankAccount: "GTBank", AccountNumber: "0123456789"})
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if w.Balance != 3_000 {
		t.Fatalf("expected balance 3000, got %d", w.Balance)
	}
	if tx.Status != StatusPending {
		t.Fatalf("expected pending withdrawal, got %s", tx.Status)
	}
	if tx.Amount != -2_000 {
		t.Fatalf("expected amount -2000, got %d", tx.Amount)
	}
}

func TestWithdrawInsufficientFundsLeavesWalletUnchanged(t *testing.T) {
	svc, ctx := setupService(t)
	fund(t, svc, ctx, "alice", 5_000)

	if _, _, err := svc.Withdraw(ctx, "alice", 2_000, BankDetails{BankAccount: "GTBank"}); err != nil {
		t.Fatalf("first withdraw: %v", err)
	}

	_, _, err := svc.Withdraw(ctx, "alice", 4_000, BankDetails{BankAccount: "GTBank"})
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	w, err := svc.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	if w.Balance != 3_000 {
		t.Fatalf("failed withdrawal must not change balance: got %d", w.Balance)
	}

	txs, err := svc.Transactions(ctx, "alice")
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	// deposit + one successful withdrawal only
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
}

func TestTransferMovesFundsAtomically(t *testing.T) {
	svc, ctx := setupService(t)
	fund(t, svc, ctx, "alice", 5_000)
	fund(t, svc, ctx, "bob", 1_000)

	tx, senderWallet, err := svc.Transfer(ctx, "alice", TransferInput{RecipientID: "bob", Amount: 2_000})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if senderWallet.Balance != 3_000 {
		t.Fatalf("expected sender balance 3000, got %d", senderWallet.Balance)
	}
	if tx.Type != TypeTransferOut || tx.Amount != -2_000 {
		t.Fatalf("unexpected sender transaction: %+v", tx)
	}

	recipient, err := svc.Get(ctx, "bob")
	if err != nil {
		t.Fatalf("get recipient: %v", err)
	}
	if recipient.Balance != 3_000 {
		t.Fatalf("expected recipient balance 3000, got %d", recipient.Balance)
	}

	recipientTxs, err := svc.Transactions(ctx, "bob")
	if err != nil {
		t.Fatalf("recipient transactions: %v", err)
	}
	if recipientTxs[0].Type != TypeTransferIn || recipientTxs[0].Amount != 2_000 {
		t.Fatalf("unexpected recipient transaction: %+v", recipientTxs[0])
	}
}

func TestTransferInsufficientFundsChangesNeitherWallet(t *testing.T) {
	svc, ctx := setupService(t)
	fund(t, svc, ctx, "alice", 1_000)
	fund(t, svc, ctx, "bob", 500)

	_, _, err := svc.Transfer(ctx, "alice", TransferInput{RecipientID: "bob", Amount: 2_000})
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	alice, _ := svc.Get(ctx, "alice")
	bob, _ := svc.Get(ctx, "bob")
	if alice.Balance != 1_000 || bob.Balance != 500 {
		t.Fatalf("failed transfer must not change balances: %d / %d", alice.Balance, bob.Balance)
	}
}

func TestTransferToUnknownRecipientFails(t *testing.T) {
	svc, ctx := setupService(t)
	fund(t, svc, ctx, "alice", 1_000)

	_, _, err := svc.Transfer(ctx, "alice", TransferInput{RecipientID: "nobody", Amount: 100})
	if !errors.Is(err, ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}
}

func TestTransferToSelfRejected(t *testing.T) {
	svc, ctx := setupService(t)
	fund(t, svc, ctx, "alice", 1_000)

	_, _, err := svc.Transfer(ctx, "alice", TransferInput{RecipientID: "alice", Amount: 100})
	if !errors.Is(err, ErrSelfTransfer) {
		t.Fatalf("expected ErrSelfTransfer, got %v", err)
	}

	w, err := svc.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	if w.Balance != 1_000 {
		t.Fatalf("expected balance unchanged at 1000, got %d", w.Balance)
	}
	txs, err := svc.Transactions(ctx, "alice")
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected only the funding deposit on the ledger, got %d transactions", len(txs))
	}
}

func TestApplyTransferRejectsSameWallet(t *testing.T) {
	out := Transaction{ID: "t-out", WalletID: "w-1", Type: TypeTransferOut, Amount: -100, Status: StatusCompleted, CreatedAt: time.Now()}
	in := Transaction{ID: "t-in", WalletID: "w-1", Type: TypeTransferIn, Amount: 100, Status: StatusCompleted, CreatedAt: time.Now()}

	repo := NewPostgresRepository(nil)
	if _, err := repo.ApplyTransfer(context.Background(), out, in); !errors.Is(err, ErrSelfTransfer) {
		t.Fatalf("expected ErrSelfTransfer, got %v", err)
	}
}

func TestFrozenWalletRejectsDebitsAndCredits(t *testing.T) {
	svc, ctx := setupService(t)
	fund(t, svc, ctx, "alice", 5_000)
	fund(t, svc, ctx, "bob", 1_000)

	if _, err := svc.SetFrozen(ctx, "alice", true); err != nil {
		t.Fatalf("freeze: %v", err)
	}

	if _, _, err := svc.Deposit(ctx, "alice", DepositInput{Amount: 100}); !errors.Is(err, ErrWalletFrozen) {
		t.Fatalf("deposit on frozen wallet: expected ErrWalletFrozen, got %v", err)
	}
	if _, _, err := svc.Withdraw(ctx, "alice", 100, BankDetails{}); !errors.Is(err, ErrWalletFrozen) {
		t.Fatalf("withdraw on frozen wallet: expected ErrWalletFrozen, got %v", err)
	}
	if _, _, err := svc.Transfer(ctx, "alice", TransferInput{RecipientID: "bob", Amount: 100}); !errors.Is(err, ErrWalletFrozen) {
		t.Fatalf("transfer from frozen wallet: expected ErrWalletFrozen, got %v", err)
	}
	// frozen recipient blocks the whole transfer
	if _, _, err := svc.Transfer(ctx, "bob", TransferInput{RecipientID: "alice", Amount: 100}); !errors.Is(err, ErrWalletFrozen) {
		t.Fatalf("transfer to frozen wallet: expected ErrWalletFrozen, got %v", err)
	}

	bob, _ := svc.Get(ctx, "bob")
	if bob.Balance != 1_000 {
		t.Fatalf("blocked transfer must not debit sender: got %d", bob.Balance)
	}

	if _, err := svc.SetFrozen(ctx, "alice", false); err != nil {
		t.Fatalf("unfreeze: %v", err)
	}
	if _, _, err := svc.Deposit(ctx, "alice", DepositInput{Amount: 100}); err != nil {
		t.Fatalf("deposit after unfreeze: %v", err)
	}
}

func TestDuplicateDepositsBothApply(t *testing.T) {
	svc, ctx := setupService(t)
	fund(t, svc, ctx, "alice", 1_000)

	// Two identical deposits without an idempotency key are two deposits.
	if _, _, err := svc.Deposit(ctx, "alice", DepositInput{Amount: 1_000}); err != nil {
		t.Fatalf("second deposit: %v", err)
	}

	w, _ := svc.Get(ctx, "alice")
	if w.Balance != 2_000 {
		t.Fatalf("expected balance 2000, got %d", w.Balance)
	}
}

func TestTransactionsNewestFirst(t *testing.T) {
	svc, ctx := setupService(t)
	fund(t, svc, ctx, "alice", 1_000)

	if _, _, err := svc.Deposit(ctx, "alice", DepositInput{Amount: 2_000}); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, _, err := svc.Withdraw(ctx, "alice", 500, BankDetails{BankAccount: "GTBank"}); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	txs, err := svc.Transactions(ctx, "alice")
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}
	if txs[0].Type != TypeWithdrawal || txs[1].Amount != 2_000 || txs[2].Amount != 1_000 {
		t.Fatalf("expected newest first, got %s / %d / %d", txs[0].Type, txs[1].Amount, txs[2].Amount)
	}
}

func TestPayDebitsWallet(t *testing.T) {
	svc, ctx := setupService(t)
	fund(t, svc, ctx, "alice", 5_000)

	tx, w, err := svc.Pay(ctx, "alice", PayInput{Amount: 1_500, ServiceType: "event_ticket", ServiceID: "evt-1"})
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if w.Balance != 3_500 {
		t.Fatalf("expected balance 3500, got %d", w.Balance)
	}
	if tx.Type != TypePayment || tx.Status != StatusCompleted || tx.Amount != -1_500 {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
	if tx.Metadata["serviceType"] != "event_ticket" {
		t.Fatalf("expected service metadata, got %v", tx.Metadata)
	}
}

func TestSettlePendingCompletesOldWithdrawals(t *testing.T) {
	svc, ctx := setupService(t)
	fund(t, svc, ctx, "alice", 5_000)

	if _, _, err := svc.Withdraw(ctx, "alice", 2_000, BankDetails{BankAccount: "GTBank"}); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	// Nothing is old enough yet.
	settled, err := svc.SettlePending(ctx, time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if settled != 0 {
		t.Fatalf("expected no settlements, got %d", settled)
	}

	settled, err = svc.SettlePending(ctx, time.Now().UTC().Add(time.Second))
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if settled != 1 {
		t.Fatalf("expected 1 settlement, got %d", settled)
	}

	txs, _ := svc.Transactions(ctx, "alice")
	if txs[0].Type != TypeWithdrawal || txs[0].Status != StatusCompleted {
		t.Fatalf("expected completed withdrawal, got %+v", txs[0])
	}
}
