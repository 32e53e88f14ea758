package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/clever-bank/ledger/internal/domain"
	"github.com/clever-bank/ledger/internal/gateway"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// RecordTransactionInput describes one money movement. For Deposit and
// Withdrawal only RecipientAccountID matters; SenderAccountID may be 0.
type RecordTransactionInput struct {
	Type               domain.TransactionType
	Amount             decimal.Decimal
	SenderAccountID    int64
	RecipientAccountID int64
}

type RecordTransactionOutput struct {
	TransactionID int64
	Transaction   *domain.Transaction
	// Balances holds the committed balance of every account the transaction touched.
	Balances map[int64]decimal.Decimal
}

// RecordTransactionUseCase is the transaction engine: it validates a
// movement, applies the balance deltas for its type and persists the record
// and the balances as one unit.
type RecordTransactionUseCase struct {
	accountRepository     gateway.AccountRepository
	transactionRepository gateway.TransactionRepository
	transactionManager    gateway.TransactionManager
	eventPublisher        gateway.EventPublisher

	allowOverdraft bool
	timeout        time.Duration
	now            func() time.Time
}

type RecordOption func(*RecordTransactionUseCase)

// WithOverdraft lets withdrawals and transfers take a balance below zero.
func WithOverdraft(allow bool) RecordOption {
	return func(u *RecordTransactionUseCase) { u.allowOverdraft = allow }
}

// WithTimeout bounds each unit of work; zero means no bound.
func WithTimeout(d time.Duration) RecordOption {
	return func(u *RecordTransactionUseCase) { u.timeout = d }
}

func WithClock(now func() time.Time) RecordOption {
	return func(u *RecordTransactionUseCase) { u.now = now }
}

// NewRecordTransaction wires the engine. publisher may be nil.
func NewRecordTransaction(
	accountRepo gateway.AccountRepository,
	transactionRepo gateway.TransactionRepository,
	txManager gateway.TransactionManager,
	publisher gateway.EventPublisher,
	opts ...RecordOption,
) *RecordTransactionUseCase {
	u := &RecordTransactionUseCase{
		accountRepository:     accountRepo,
		transactionRepository: transactionRepo,
		transactionManager:    txManager,
		eventPublisher:        publisher,
		now:                   time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *RecordTransactionUseCase) Execute(ctx context.Context, input RecordTransactionInput) (*RecordTransactionOutput, error) {
	transaction := &domain.Transaction{
		Type:               input.Type,
		Amount:             input.Amount,
		SenderAccountID:    input.SenderAccountID,
		RecipientAccountID: input.RecipientAccountID,
	}
	// Shape checks need no store access and leave nothing behind.
	if err := transaction.Normalize(); err != nil {
		return nil, err
	}

	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	// Filled from inside the unit, read after commit.
	var currency string
	balances := make(map[int64]decimal.Decimal, 2)

	// Run opens the unit (BEGIN). An error from the closure rolls it back,
	// nil commits it.
	err := u.transactionManager.Run(ctx, func(contextWithTx context.Context) error {
		// The manager put its transaction handle in the context; every
		// repository call below must go through it.
		transactionObject := contextWithTx.Value(gateway.TransactionKey)
		if transactionObject == nil {
			return errors.New("store transaction missing from context")
		}
		accountRepoTx := u.accountRepository.WithTx(transactionObject)
		transactionRepoTx := u.transactionRepository.WithTx(transactionObject)

		// 1. Lock the rows (SELECT ... FOR UPDATE). Nobody else touches them until commit.
		accounts, err := lockAccounts(contextWithTx, accountRepoTx, transaction.SenderAccountID, transaction.RecipientAccountID)
		if err != nil {
			return err
		}
		sender := accounts[transaction.SenderAccountID]
		recipient := accounts[transaction.RecipientAccountID]
		currency = recipient.Currency

		// 2. Compute the new balances on the locked snapshots.
		switch transaction.Type {
		case domain.Deposit:
			next, err := recipient.Credit(transaction.Amount)
			if err != nil {
				return err
			}
			balances[recipient.ID] = next

		case domain.Withdrawal:
			next, err := recipient.Debit(transaction.Amount, u.allowOverdraft)
			if err != nil {
				return fmt.Errorf("withdrawal from account %d: %w", recipient.ID, err)
			}
			balances[recipient.ID] = next

		case domain.Transfer:
			if !sender.SameCurrency(recipient) {
				return fmt.Errorf("transfer %s -> %s: %w", sender.Currency, recipient.Currency, domain.ErrCurrencyMismatch)
			}
			debited, err := sender.Debit(transaction.Amount, u.allowOverdraft)
			if err != nil {
				return fmt.Errorf("debit of account %d: %w", sender.ID, err)
			}
			credited, err := recipient.Credit(transaction.Amount)
			if err != nil {
				return err
			}
			balances[sender.ID] = debited
			balances[recipient.ID] = credited
		}

		// 3. Record the history row.
		transaction.Date = u.now()
		if err := transactionRepoTx.Create(contextWithTx, transaction); err != nil {
			return fmt.Errorf("failed to save transaction record: %w", err)
		}

		// 4. Write the balances back.
		for _, id := range sortedKeys(balances) {
			if err := accountRepoTx.UpdateBalance(contextWithTx, id, balances[id]); err != nil {
				return fmt.Errorf("failed to update balance of account %d: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, storageError("record transaction", err)
	}

	log.Info().
		Int64("transaction_id", transaction.ID).
		Stringer("type", transaction.Type).
		Str("amount", transaction.Amount.String()).
		Int64("sender", transaction.SenderAccountID).
		Int64("recipient", transaction.RecipientAccountID).
		Msg("transaction recorded")

	// Committed: from here on nothing can undo the transaction.
	u.publish(ctx, transaction, currency)

	return &RecordTransactionOutput{
		TransactionID: transaction.ID,
		Transaction:   transaction,
		Balances:      balances,
	}, nil
}

// lockAccounts takes the row locks in ascending id order, so two transfers
// between the same pair in opposite directions cannot deadlock.
func lockAccounts(ctx context.Context, repo gateway.AccountRepository, ids ...int64) (map[int64]*domain.Account, error) {
	ordered := slices.Clone(ids)
	slices.Sort(ordered)
	ordered = slices.Compact(ordered)

	accounts := make(map[int64]*domain.Account, len(ordered))
	for _, id := range ordered {
		account, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to lock account %d: %w", id, err)
		}
		accounts[id] = account
	}
	return accounts, nil
}

func sortedKeys(m map[int64]decimal.Decimal) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// publish never fails the operation: the transaction is already committed.
func (u *RecordTransactionUseCase) publish(ctx context.Context, transaction *domain.Transaction, currency string) {
	if u.eventPublisher == nil {
		return
	}
	event := domain.TransactionRecordedEvent{
		EventID:            uuid.NewString(),
		TransactionID:      transaction.ID,
		Type:               transaction.Type.String(),
		Amount:             transaction.Amount.String(),
		Currency:           currency,
		SenderAccountID:    transaction.SenderAccountID,
		RecipientAccountID: transaction.RecipientAccountID,
		OccurredAt:         transaction.Date,
	}
	if err := u.eventPublisher.Publish(ctx, domain.LedgerExchange, domain.TransactionRecordedTopic, event); err != nil {
		log.Error().Err(err).Int64("transaction_id", transaction.ID).Msg("failed to publish transaction event")
	}
}
