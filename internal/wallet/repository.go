package wallet

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrWalletNotFound indicates the user has no wallet record.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrWalletFrozen indicates a balance-mutating operation hit a frozen wallet.
	ErrWalletFrozen = errors.New("wallet is frozen")

	// ErrInsufficientBalance indicates the wallet cannot cover a debit.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Repository persists wallets and their transaction log. Implementations must
// make Apply and ApplyTransfer atomic: the frozen and balance checks, the
// balance mutation, and the transaction append happen as one unit, and a
// failed call leaves no partial state behind.
type Repository interface {
	CreateWallet(ctx context.Context, w Wallet) error
	WalletByUser(ctx context.Context, userID string) (Wallet, error)
	SetFrozen(ctx context.Context, userID string, frozen bool) (Wallet, error)

	// Transactions returns the wallet's transactions most-recent-first,
	// capped at limit.
	Transactions(ctx context.Context, walletID string, limit int) ([]Transaction, error)

	// Apply adjusts the wallet balance by tx.Amount and appends tx. It fails
	// with ErrWalletFrozen when the wallet is frozen and with
	// ErrInsufficientBalance when a debit would take the balance negative.
	Apply(ctx context.Context, walletID string, tx Transaction) (Wallet, error)

	// ApplyTransfer debits the sender, credits the recipient, and appends both
	// legs in a single atomic unit.
	ApplyTransfer(ctx context.Context, outTx, inTx Transaction) (sender Wallet, err error)

	// SettlePending moves pending withdrawal transactions created before the
	// cutoff to completed, returning how many settled.
	SettlePending(ctx context.Context, cutoff time.Time) (int, error)
}
