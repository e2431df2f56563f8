package wallet

import (
	"context"
	"sync"
	"time"
)

type memoryRepository struct {
	mu      sync.RWMutex
	wallets map[string]Wallet // keyed by wallet id
	byUser  map[string]string // user id -> wallet id
	txByID  map[string]*Transaction
	txOrder []string // insertion order of transaction ids
}

// NewMemoryRepository constructs a concurrency-safe in-memory repository for
// development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		wallets: make(map[string]Wallet),
		byUser:  make(map[string]string),
		txByID:  make(map[string]*Transaction),
	}
}

func (r *memoryRepository) CreateWallet(_ context.Context, w Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wallets[w.ID] = w
	r.byUser[w.UserID] = w.ID
	return nil
}

func (r *memoryRepository) WalletByUser(_ context.Context, userID string) (Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.walletByUserLocked(userID)
}

func (r *memoryRepository) walletByUserLocked(userID string) (Wallet, error) {
	id, ok := r.byUser[userID]
	if !ok {
		return Wallet{}, ErrWalletNotFound
	}
	return r.wallets[id], nil
}

func (r *memoryRepository) SetFrozen(_ context.Context, userID string, frozen bool) (Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, err := r.walletByUserLocked(userID)
	if err != nil {
		return Wallet{}, err
	}
	w.Frozen = frozen
	w.UpdatedAt = time.Now().UTC()
	r.wallets[w.ID] = w
	return w, nil
}

func (r *memoryRepository) Transactions(_ context.Context, walletID string, limit int) ([]Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	// Walk insertion order backwards so the newest entries come first.
	out := make([]Transaction, 0, limit)
	for i := len(r.txOrder) - 1; i >= 0 && len(out) < limit; i-- {
		tx := r.txByID[r.txOrder[i]]
		if tx.WalletID == walletID {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (r *memoryRepository) Apply(_ context.Context, walletID string, tx Transaction) (Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.applyLocked(walletID, tx)
}

func (r *memoryRepository) applyLocked(walletID string, tx Transaction) (Wallet, error) {
	w, ok := r.wallets[walletID]
	if !ok {
		return Wallet{}, ErrWalletNotFound
	}
	if w.Frozen {
		return Wallet{}, ErrWalletFrozen
	}
	if w.Balance+tx.Amount < 0 {
		return Wallet{}, ErrInsufficientBalance
	}
	w.Balance += tx.Amount
	w.UpdatedAt = time.Now().UTC()
	r.wallets[walletID] = w
	r.txByID[tx.ID] = &tx
	r.txOrder = append(r.txOrder, tx.ID)
	return w, nil
}

func (r *memoryRepository) ApplyTransfer(_ context.Context, outTx, inTx Transaction) (Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sender, ok := r.wallets[outTx.WalletID]
	if !ok {
		return Wallet{}, ErrWalletNotFound
	}
	recipient, ok := r.wallets[inTx.WalletID]
	if !ok {
		return Wallet{}, ErrWalletNotFound
	}
	if sender.Frozen || recipient.Frozen {
		return Wallet{}, ErrWalletFrozen
	}
	if sender.Balance+outTx.Amount < 0 {
		return Wallet{}, ErrInsufficientBalance
	}

	// All checks passed; both legs apply under the same lock so no caller can
	// observe a debited sender without the credited recipient.
	sender, _ = r.applyLocked(outTx.WalletID, outTx)
	if _, err := r.applyLocked(inTx.WalletID, inTx); err != nil {
		return Wallet{}, err
	}
	return sender, nil
}

func (r *memoryRepository) SettlePending(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	settled := 0
	for _, tx := range r.txByID {
		if tx.Type == TypeWithdrawal && tx.Status == StatusPending && tx.CreatedAt.Before(cutoff) {
			tx.Status = StatusCompleted
			settled++
		}
	}
	return settled, nil
}
