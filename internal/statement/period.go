package statement

import (
	"time"

	"github.com/clever-bank/ledger/internal/domain"
)

// Period is an inclusive time range.
type Period struct {
	Start time.Time
	End   time.Time
}

func LastMonth(now time.Time) Period {
	return Period{Start: now.AddDate(0, -1, 0), End: now}
}

func LastYear(now time.Time) Period {
	return Period{Start: now.AddDate(-1, 0, 0), End: now}
}

// SinceOpening covers the whole life of the account.
func SinceOpening(account *domain.Account, now time.Time) Period {
	return Period{Start: account.OpenDate, End: now}
}

// ClampToAccount moves the start forward to the account's open date.
func ClampToAccount(p Period, account *domain.Account) Period {
	if p.Start.Before(account.OpenDate) {
		p.Start = account.OpenDate
	}
	return p
}
