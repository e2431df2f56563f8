package wallet

import "time"

// Transaction types.
const (
	TypeDeposit     = "deposit"
	TypeWithdrawal  = "withdrawal"
	TypeTransferIn  = "transfer_in"
	TypeTransferOut = "transfer_out"
	TypePayment     = "payment"
	TypeRefund      = "refund"
)

// Transaction statuses. Withdrawals are recorded pending and moved to
// completed by the settlement sweeper; every other operation settles
// immediately.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Wallet is a per-user balance record. Balances are integer minor units of
// the configured currency.
type Wallet struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Balance   int64     `json:"balance"`
	Currency  string    `json:"currency"`
	Frozen    bool      `json:"isFrozen"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Transaction records a balance-affecting event. The amount is signed:
// credits are positive, debits negative.
type Transaction struct {
	ID          string            `json:"id"`
	WalletID    string            `json:"walletId"`
	Type        string            `json:"type"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Status      string            `json:"status"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// BankDetails identifies the payout destination of a withdrawal.
type BankDetails struct {
	BankAccount   string
	AccountName   string
	AccountNumber string
}
