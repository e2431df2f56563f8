package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/trunorth/platform/internal/notification"
)

// ErrInvalidAmount indicates a zero or negative operation amount.
var ErrInvalidAmount = errors.New("amount must be positive")

// ErrSelfTransfer indicates a transfer whose sender and recipient are the
// same user.
var ErrSelfTransfer = errors.New("cannot transfer to your own wallet")

const transactionListLimit = 50

// Service exposes the wallet ledger operations.
type Service struct {
	repo     Repository
	currency string
	notifier notification.Notifier
}

// NewService builds a wallet service. The currency applies to every wallet
// the service creates.
func NewService(repo Repository, currency string, notifier notification.Notifier) *Service {
	return &Service{repo: repo, currency: currency, notifier: notifier}
}

// GetOrCreate returns the user's wallet, creating an empty one on first access.
func (s *Service) GetOrCreate(ctx context.Context, userID string) (Wallet, error) {
	w, err := s.repo.WalletByUser(ctx, userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, ErrWalletNotFound) {
		return Wallet{}, err
	}

	now := time.Now().UTC()
	w = Wallet{
		ID:        uuid.New().String(),
		UserID:    userID,
		Balance:   0,
		Currency:  s.currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateWallet(ctx, w); err != nil {
		return Wallet{}, err
	}
	return w, nil
}

// Get returns the user's wallet or ErrWalletNotFound.
func (s *Service) Get(ctx context.Context, userID string) (Wallet, error) {
	return s.repo.WalletByUser(ctx, userID)
}

// Transactions lists the user's transaction history, most recent first.
func (s *Service) Transactions(ctx context.Context, userID string) ([]Transaction, error) {
	w, err := s.repo.WalletByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.Transactions(ctx, w.ID, transactionListLimit)
}

// DepositInput captures a wallet top-up request.
type DepositInput struct {
	Amount        int64
	PaymentMethod string
	Description   string
}

// Deposit credits the wallet and records a completed transaction.
func (s *Service) Deposit(ctx context.Context, userID string, input DepositInput) (Transaction, Wallet, error) {
	if input.Amount <= 0 {
		return Transaction{}, Wallet{}, ErrInvalidAmount
	}
	w, err := s.repo.WalletByUser(ctx, userID)
	if err != nil {
		return Transaction{}, Wallet{}, err
	}

	desc := input.Description
	if desc == "" {
		desc = "Wallet deposit"
	}
	tx := s.newTransaction(w.ID, TypeDeposit, input.Amount, StatusCompleted, desc,
		map[string]string{"paymentMethod": input.PaymentMethod})

	w, err = s.repo.Apply(ctx, w.ID, tx)
	if err != nil {
		return Transaction{}, Wallet{}, err
	}
	return tx, w, nil
}

// Withdraw debits the wallet and records a pending withdrawal; settlement
// completes it later.
func (s *Service) Withdraw(ctx context.Context, userID string, amount int64, bank BankDetails) (Transaction, Wallet, error) {
	if amount <= 0 {
		return Transaction{}, Wallet{}, ErrInvalidAmount
	}
	w, err := s.repo.WalletByUser(ctx, userID)
	if err != nil {
		return Transaction{}, Wallet{}, err
	}

	tx := s.newTransaction(w.ID, TypeWithdrawal, -amount, StatusPending,
		fmt.Sprintf("Withdrawal to %s", bank.BankAccount),
		map[string]string{
			"bankAccount":   bank.BankAccount,
			"accountName":   bank.AccountName,
			"accountNumber": bank.AccountNumber,
		})

	w, err = s.repo.Apply(ctx, w.ID, tx)
	if err != nil {
		return Transaction{}, Wallet{}, err
	}
	return tx, w, nil
}

// TransferInput captures a wallet-to-wallet transfer.
type TransferInput struct {
	RecipientID string
	Amount      int64
	Description string
}

// Transfer moves funds between two users' wallets atomically: either both the
// sender debit and the recipient credit apply, or neither does.
func (s *Service) Transfer(ctx context.Context, userID string, input TransferInput) (Transaction, Wallet, error) {
	if input.Amount <= 0 {
		return Transaction{}, Wallet{}, ErrInvalidAmount
	}
	if input.RecipientID == userID {
		return Transaction{}, Wallet{}, ErrSelfTransfer
	}
	sender, err := s.repo.WalletByUser(ctx, userID)
	if err != nil {
		return Transaction{}, Wallet{}, err
	}
	recipient, err := s.repo.WalletByUser(ctx, input.RecipientID)
	if err != nil {
		return Transaction{}, Wallet{}, err
	}

	outDesc := input.Description
	if outDesc == "" {
		outDesc = "Transfer to user"
	}
	inDesc := input.Description
	if inDesc == "" {
		inDesc = "Transfer from user"
	}

	outTx := s.newTransaction(sender.ID, TypeTransferOut, -input.Amount, StatusCompleted, outDesc,
		map[string]string{"recipientId": input.RecipientID})
	inTx := s.newTransaction(recipient.ID, TypeTransferIn, input.Amount, StatusCompleted, inDesc,
		map[string]string{"senderId": userID})

	senderWallet, err := s.repo.ApplyTransfer(ctx, outTx, inTx)
	if err != nil {
		return Transaction{}, Wallet{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindTransfer,
			Destination: input.RecipientID,
			Body:        fmt.Sprintf("You received %d %s", input.Amount, s.currency),
		})
	}

	return outTx, senderWallet, nil
}

// PayInput captures an in-app service payment.
type PayInput struct {
	Amount      int64
	Description string
	ServiceType string
	ServiceID   string
}

// Pay debits the wallet for an in-app purchase and records a completed payment.
func (s *Service) Pay(ctx context.Context, userID string, input PayInput) (Transaction, Wallet, error) {
	if input.Amount <= 0 {
		return Transaction{}, Wallet{}, ErrInvalidAmount
	}
	w, err := s.repo.WalletByUser(ctx, userID)
	if err != nil {
		return Transaction{}, Wallet{}, err
	}

	desc := input.Description
	if desc == "" {
		desc = "Payment"
	}
	tx := s.newTransaction(w.ID, TypePayment, -input.Amount, StatusCompleted, desc,
		map[string]string{"serviceType": input.ServiceType, "serviceId": input.ServiceID})

	w, err = s.repo.Apply(ctx, w.ID, tx)
	if err != nil {
		return Transaction{}, Wallet{}, err
	}
	return tx, w, nil
}

// SetFrozen toggles the frozen flag on a user's wallet.
func (s *Service) SetFrozen(ctx context.Context, userID string, frozen bool) (Wallet, error) {
	return s.repo.SetFrozen(ctx, userID, frozen)
}

// SettlePending completes pending withdrawals created before the cutoff.
func (s *Service) SettlePending(ctx context.Context, cutoff time.Time) (int, error) {
	return s.repo.SettlePending(ctx, cutoff)
}

func (s *Service) newTransaction(walletID, txType string, amount int64, status, description string, metadata map[string]string) Transaction {
	return Transaction{
		ID:          uuid.New().String(),
		WalletID:    walletID,
		Type:        txType,
		Amount:      amount,
		Currency:    s.currency,
		Status:      status,
		Description: description,
		Metadata:    metadata,
		CreatedAt:   time.Now().UTC(),
	}
}
