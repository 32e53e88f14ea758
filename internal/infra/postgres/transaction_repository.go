package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clever-bank/ledger/internal/domain"
	"github.com/clever-bank/ledger/internal/gateway"
	"github.com/clever-bank/ledger/internal/infra/postgres/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	db      *pgxpool.Pool
	queries *db.Queries
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		db:      pool,
		queries: db.New(pool),
	}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	date := tx.Date
	if date.IsZero() {
		date = time.Now()
	}
	row, err := r.queries.CreateTransaction(ctx, db.CreateTransactionParams{
		Date:        timestamptz(date),
		Money:       tx.Amount,
		IDType:      pgtype.Int4{Int32: int32(tx.Type), Valid: true},
		IDSender:    int4(tx.SenderAccountID),
		IDRecipient: int4(tx.RecipientAccountID),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			if pgErr.ConstraintName == "transactions_id_type_fkey" {
				return domain.ErrInvalidTransactionType
			}
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, domain.ErrAccountNotFound)
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	// Write back what the database generated.
	tx.ID = int64(row.ID)
	tx.Date = row.Date.Time
	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	if !fitsInt4(id) {
		return nil, domain.ErrTransactionNotFound
	}
	row, err := r.queries.GetTransaction(ctx, int32(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return toDomainTransaction(row), nil
}

func (r *TransactionRepository) SumReceived(ctx context.Context, accountID int64, start, end time.Time) (decimal.Decimal, error) {
	total, err := r.queries.SumReceived(ctx, db.SumReceivedParams{
		IDRecipient: int4(accountID),
		Date:        timestamptz(start),
		Date_2:      timestamptz(end),
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum received money: %w", err)
	}
	return total, nil
}

func (r *TransactionRepository) SumWithdrawn(ctx context.Context, accountID int64, start, end time.Time) (decimal.Decimal, error) {
	total, err := r.queries.SumWithdrawn(ctx, db.SumWithdrawnParams{
		AccountID: int4(accountID),
		StartDate: timestamptz(start),
		EndDate:   timestamptz(end),
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum withdrawn money: %w", err)
	}
	return total, nil
}

func (r *TransactionRepository) ListForAccountInPeriod(ctx context.Context, accountID int64, start, end time.Time) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListAccountTransactionsInPeriod(ctx, db.ListAccountTransactionsInPeriodParams{
		IDSender: int4(accountID),
		Date:     timestamptz(start),
		Date_2:   timestamptz(end),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	transactions := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, toDomainTransaction(row))
	}
	return transactions, nil
}

func (r *TransactionRepository) WithTx(tx gateway.TransactionObject) gateway.TransactionRepository {
	pgTx, ok := tx.(pgx.Tx)
	if !ok {
		return r
	}
	return &TransactionRepository{
		db:      r.db,
		queries: r.queries.WithTx(pgTx),
	}
}

func toDomainTransaction(row db.Transaction) *domain.Transaction {
	tx := &domain.Transaction{
		ID:                 int64(row.ID),
		Type:               domain.TransactionType(row.IDType.Int32),
		Date:               row.Date.Time,
		SenderAccountID:    int64(row.IDSender.Int32),
		RecipientAccountID: int64(row.IDRecipient.Int32),
		Amount:             row.Money,
	}
	// Older rows may have left the sender empty on single-account types.
	if !row.IDSender.Valid {
		tx.SenderAccountID = tx.RecipientAccountID
	}
	return tx
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
