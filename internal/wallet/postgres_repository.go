package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores wallets and transactions in PostgreSQL. Balance
// mutations run inside a database transaction with the wallet row locked, so
// the frozen/sufficiency checks and the ledger append are atomic.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateWallet inserts a wallet record.
func (r *PostgresRepository) CreateWallet(ctx context.Context, w Wallet) error {
	walletID, err := uuid.Parse(w.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO wallets (id, user_id, balance, currency, frozen, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		walletID, w.UserID, w.Balance, w.Currency, w.Frozen, w.CreatedAt.UTC(), w.UpdatedAt.UTC())
	return err
}

// WalletByUser fetches the wallet owned by the given user.
func (r *PostgresRepository) WalletByUser(ctx context.Context, userID string) (Wallet, error) {
	row := r.db.QueryRow(ctx, `SELECT id, user_id, balance, currency, frozen, created_at, updated_at
        FROM wallets WHERE user_id = $1`, userID)
	return scanWallet(row)
}

// SetFrozen toggles the frozen flag.
func (r *PostgresRepository) SetFrozen(ctx context.Context, userID string, frozen bool) (Wallet, error) {
	row := r.db.QueryRow(ctx, `UPDATE wallets SET frozen = $1, updated_at = $2 WHERE user_id = $3
        RETURNING id, user_id, balance, currency, frozen, created_at, updated_at`,
		frozen, time.Now().UTC(), userID)
	return scanWallet(row)
}

// Transactions lists the wallet's transactions most-recent-first.
func (r *PostgresRepository) Transactions(ctx context.Context, walletID string, limit int) ([]Transaction, error) {
	rows, err := r.db.Query(ctx, `SELECT id, wallet_id, type, amount, currency, status, description, metadata, created_at
        FROM transactions WHERE wallet_id = $1 ORDER BY created_at DESC LIMIT $2`, walletID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

// Apply adjusts the balance and appends the transaction atomically.
func (r *PostgresRepository) Apply(ctx context.Context, walletID string, tx Transaction) (Wallet, error) {
	dbTx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Wallet{}, err
	}
	defer dbTx.Rollback(ctx) // nolint:errcheck

	w, err := lockWallet(ctx, dbTx, walletID)
	if err != nil {
		return Wallet{}, err
	}
	if w.Frozen {
		return Wallet{}, ErrWalletFrozen
	}
	if w.Balance+tx.Amount < 0 {
		return Wallet{}, ErrInsufficientBalance
	}

	w, err = mutate(ctx, dbTx, w, tx)
	if err != nil {
		return Wallet{}, err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return Wallet{}, err
	}
	return w, nil
}

// ApplyTransfer debits the sender and credits the recipient in one database
// transaction. Wallet rows are locked in id order to avoid deadlocks between
// concurrent opposing transfers.
func (r *PostgresRepository) ApplyTransfer(ctx context.Context, outTx, inTx Transaction) (Wallet, error) {
	if outTx.WalletID == inTx.WalletID {
		// Both legs would mutate the same row from stale snapshots and the
		// second write would discard the first.
		return Wallet{}, ErrSelfTransfer
	}
	dbTx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Wallet{}, err
	}
	defer dbTx.Rollback(ctx) // nolint:errcheck

	first, second := outTx.WalletID, inTx.WalletID
	if second < first {
		first, second = second, first
	}
	locked := make(map[string]Wallet, 2)
	for _, id := range []string{first, second} {
		w, err := lockWallet(ctx, dbTx, id)
		if err != nil {
			return Wallet{}, err
		}
		locked[id] = w
	}

	sender, recipient := locked[outTx.WalletID], locked[inTx.WalletID]
	if sender.Frozen || recipient.Frozen {
		return Wallet{}, ErrWalletFrozen
	}
	if sender.Balance+outTx.Amount < 0 {
		return Wallet{}, ErrInsufficientBalance
	}

	sender, err = mutate(ctx, dbTx, sender, outTx)
	if err != nil {
		return Wallet{}, err
	}
	if _, err = mutate(ctx, dbTx, recipient, inTx); err != nil {
		return Wallet{}, err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return Wallet{}, err
	}
	return sender, nil
}

// SettlePending completes pending withdrawals created before the cutoff.
func (r *PostgresRepository) SettlePending(ctx context.Context, cutoff time.Time) (int, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE transactions SET status = $1
        WHERE type = $2 AND status = $3 AND created_at < $4`,
		StatusCompleted, TypeWithdrawal, StatusPending, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return int(cmd.RowsAffected()), nil
}

func lockWallet(ctx context.Context, dbTx pgx.Tx, walletID string) (Wallet, error) {
	row := dbTx.QueryRow(ctx, `SELECT id, user_id, balance, currency, frozen, created_at, updated_at
        FROM wallets WHERE id = $1 FOR UPDATE`, walletID)
	return scanWallet(row)
}

func mutate(ctx context.Context, dbTx pgx.Tx, w Wallet, tx Transaction) (Wallet, error) {
	w.Balance += tx.Amount
	w.UpdatedAt = time.Now().UTC()
	if _, err := dbTx.Exec(ctx, `UPDATE wallets SET balance = $1, updated_at = $2 WHERE id = $3`,
		w.Balance, w.UpdatedAt, w.ID); err != nil {
		return Wallet{}, err
	}

	meta, err := json.Marshal(tx.Metadata)
	if err != nil {
		return Wallet{}, err
	}
	if _, err := dbTx.Exec(ctx, `INSERT INTO transactions (id, wallet_id, type, amount, currency, status, description, metadata, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		tx.ID, tx.WalletID, tx.Type, tx.Amount, tx.Currency, tx.Status, tx.Description, meta, tx.CreatedAt.UTC()); err != nil {
		return Wallet{}, err
	}
	return w, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWallet(row rowScanner) (Wallet, error) {
	var (
		id        uuid.UUID
		w         Wallet
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&id, &w.UserID, &w.Balance, &w.Currency, &w.Frozen, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wallet{}, ErrWalletNotFound
		}
		return Wallet{}, err
	}
	w.ID = id.String()
	w.CreatedAt = createdAt.UTC()
	w.UpdatedAt = updatedAt.UTC()
	return w, nil
}

func scanTransaction(row rowScanner) (Transaction, error) {
	var (
		id        uuid.UUID
		walletID  uuid.UUID
		tx        Transaction
		meta      []byte
		createdAt time.Time
	)
	if err := row.Scan(&id, &walletID, &tx.Type, &tx.Amount, &tx.Currency, &tx.Status, &tx.Description, &meta, &createdAt); err != nil {
		return Transaction{}, err
	}
	tx.ID = id.String()
	tx.WalletID = walletID.String()
	tx.CreatedAt = createdAt.UTC()
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &tx.Metadata); err != nil {
			return Transaction{}, err
		}
	}
	return tx, nil
}
