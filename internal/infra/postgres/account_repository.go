package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/clever-bank/ledger/internal/domain"
	"github.com/clever-bank/ledger/internal/gateway"
	"github.com/clever-bank/ledger/internal/infra/postgres/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
	numberConstraint    = "accounts_number_key"
)

// AccountRepository implements gateway.AccountRepository over pgx/v5.
type AccountRepository struct {
	db      *pgxpool.Pool
	queries *db.Queries
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		db:      pool,
		queries: db.New(pool),
	}
}

func (r *AccountRepository) Create(ctx context.Context, account gateway.NewAccount) (*domain.Account, error) {
	id, err := r.queries.CreateAccount(ctx, db.CreateAccountParams{
		Number:     pgtype.Text{String: account.Number, Valid: true},
		Balance:    account.Balance,
		Currency:   account.Currency,
		IDBank:     int4(account.BankID),
		IDCustomer: int4(account.CustomerID),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch {
			case pgErr.Code == foreignKeyViolation:
				return nil, fmt.Errorf("bank %d / customer %d: %w", account.BankID, account.CustomerID, domain.ErrOwnerNotFound)
			case pgErr.Code == uniqueViolation && pgErr.ConstraintName == numberConstraint:
				return nil, fmt.Errorf("account %q: %w", account.Number, domain.ErrDuplicateNumber)
			}
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return r.GetByID(ctx, int64(id))
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	if !fitsInt4(id) {
		return nil, domain.ErrAccountNotFound
	}
	row, err := r.queries.GetAccount(ctx, int32(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return toDomainAccount(row), nil
}

// GetByIDForUpdate takes the row lock; only meaningful on a repository bound with WithTx.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Account, error) {
	if !fitsInt4(id) {
		return nil, domain.ErrAccountNotFound
	}
	row, err := r.queries.GetAccountForUpdate(ctx, int32(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	return toDomainAccount(db.GetAccountRow(row)), nil
}

func (r *AccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	row, err := r.queries.GetAccountByNumber(ctx, pgtype.Text{String: number, Valid: true})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by number: %w", err)
	}
	return toDomainAccount(db.GetAccountRow(row)), nil
}

func (r *AccountRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccountsByCustomer(ctx, int4(customerID))
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, toDomainAccount(db.GetAccountRow(row)))
	}
	return accounts, nil
}

func (r *AccountRepository) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	if !fitsInt4(id) {
		return domain.ErrAccountNotFound
	}
	rowsAffected, err := r.queries.UpdateAccountBalance(ctx, db.UpdateAccountBalanceParams{
		ID:      int32(id),
		Balance: balance,
	})
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// WithTx returns a copy of the repository running on the given transaction.
func (r *AccountRepository) WithTx(tx gateway.TransactionObject) gateway.AccountRepository {
	pgTx, ok := tx.(pgx.Tx)
	if !ok {
		return r
	}
	return &AccountRepository{
		db:      r.db,
		queries: r.queries.WithTx(pgTx),
	}
}

func toDomainAccount(row db.GetAccountRow) *domain.Account {
	account := &domain.Account{
		ID:       int64(row.ID),
		Number:   row.Number.String,
		Balance:  row.Balance,
		Currency: row.Currency,
		OpenDate: row.OpenDate.Time,
		Bank: domain.Bank{
			ID:   int64(row.IDBank.Int32),
			Name: row.BankName.String,
		},
		Customer: domain.Customer{
			ID:   int64(row.IDCustomer.Int32),
			Name: row.CustomerName.String,
		},
	}
	if row.InterestDate.Valid {
		d := row.InterestDate.Time
		account.InterestDate = &d
	}
	return account
}

// SERIAL columns are int4.
func fitsInt4(id int64) bool {
	return id > 0 && id <= math.MaxInt32
}

func int4(id int64) pgtype.Int4 {
	if !fitsInt4(id) {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(id), Valid: true}
}
