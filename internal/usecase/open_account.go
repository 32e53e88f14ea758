package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/clever-bank/ledger/internal/domain"
	"github.com/clever-bank/ledger/internal/gateway"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type OpenAccountInput struct {
	BankID         int64
	CustomerID     int64
	Currency       string
	InitialBalance decimal.Decimal
}

type OpenAccountUseCase struct {
	accountRepository gateway.AccountRepository
	generateNumber    func() (string, error)
}

func NewOpenAccount(accountRepo gateway.AccountRepository) *OpenAccountUseCase {
	return &OpenAccountUseCase{
		accountRepository: accountRepo,
		generateNumber:    GenerateAccountNumber,
	}
}

const numberAttempts = 5

func (uc *OpenAccountUseCase) Execute(ctx context.Context, input OpenAccountInput) (*domain.Account, error) {
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if err := domain.ValidateCurrency(currency); err != nil {
		return nil, err
	}
	if input.InitialBalance.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	// Opening an account is a single insert. The unique number constraint
	// decides collisions, so a taken number just means another draw.
	for attempt := 0; attempt < numberAttempts; attempt++ {
		number, err := uc.generateNumber()
		if err != nil {
			return nil, fmt.Errorf("failed to generate account number: %w", err)
		}

		account, err := uc.accountRepository.Create(ctx, gateway.NewAccount{
			Number:     number,
			Balance:    input.InitialBalance,
			Currency:   currency,
			BankID:     input.BankID,
			CustomerID: input.CustomerID,
		})
		if errors.Is(err, domain.ErrDuplicateNumber) {
			log.Warn().Int("attempt", attempt+1).Msg("generated account number already taken, retrying")
			continue
		}
		if err != nil {
			return nil, storageError("create account", err)
		}
		return account, nil
	}
	return nil, fmt.Errorf("%w: no free account number after %d attempts", domain.ErrStorage, numberAttempts)
}

const (
	numberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	numberSymbols  = 28
	// Bytes at or above this are discarded so every symbol is equally likely.
	unbiasedLimit = 256 - 256%len(numberAlphabet)
)

// GenerateAccountNumber returns a number in the legacy layout:
// seven space-separated groups of four upper-case letters or digits.
func GenerateAccountNumber() (string, error) {
	return accountNumberFrom(rand.Reader)
}

func accountNumberFrom(random io.Reader) (string, error) {
	var (
		sb  strings.Builder
		buf [32]byte
	)
	for n := 0; n < numberSymbols; {
		if _, err := io.ReadFull(random, buf[:]); err != nil {
			return "", fmt.Errorf("could not generate random bytes: %w", err)
		}
		for _, v := range buf {
			if n == numberSymbols {
				break
			}
			if int(v) >= unbiasedLimit {
				continue
			}
			if n > 0 && n%4 == 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(numberAlphabet[int(v)%len(numberAlphabet)])
			n++
		}
	}
	return sb.String(), nil
}
