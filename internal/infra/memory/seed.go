package memory

import (
	"time"

	"github.com/clever-bank/ledger/internal/domain"
	"github.com/shopspring/decimal"
)

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedDemo loads the first rows of the legacy seed (schema.sql) so the
// shell can run without a database.
func SeedDemo(s *Store) {
	for _, b := range []domain.Bank{
		{ID: 1, Name: "Belarusbank"},
		{ID: 2, Name: "Belinvestbank"},
		{ID: 3, Name: "Clever-Bank"},
		{ID: 4, Name: "BelVEB"},
		{ID: 5, Name: "Technobank"},
	} {
		s.AddBank(b)
	}
	for _, c := range []domain.Customer{
		{ID: 1, Name: "Kokotov Artem Semenovich"},
		{ID: 2, Name: "Astakhova Anna Andreevna"},
		{ID: 3, Name: "Jessica Parker"},
		{ID: 4, Name: "Joe Smith"},
		{ID: 5, Name: "Sipukin Andrei Petrovich"},
	} {
		s.AddCustomer(c)
	}
	for _, a := range []AccountSeed{
		{ID: 1, Number: "AS12 ASDG 1200 2132 ASDA 353A 213W", Balance: decimal.RequireFromString("100.50"), Currency: "BYN", OpenDate: date("2019-08-05"), BankID: 1, CustomerID: 1},
		{ID: 2, Number: "7FR8 AW34 R765 123Q NFYR 6T45 9I87", Balance: decimal.RequireFromString("2000.00"), Currency: "USD", OpenDate: date("2020-08-05"), BankID: 2, CustomerID: 2},
		{ID: 3, Number: "G5H6 8J9K L0P1 Q2W3 E4R5 T6Y7 U8I9", Balance: decimal.RequireFromString("500.25"), Currency: "BYN", OpenDate: date("2017-03-15"), BankID: 3, CustomerID: 3},
		{ID: 4, Number: "B2N3 M4K5 J6H7 G8F9 D0S1 A2Q3 W4E5", Balance: decimal.RequireFromString("1500.75"), Currency: "USD", OpenDate: date("2018-06-20"), BankID: 4, CustomerID: 4},
		{ID: 5, Number: "Z9X8 C7V6 B5N4 M3K2 L1J0 H9G8 F7D6", Balance: decimal.RequireFromString("250.00"), Currency: "BYN", OpenDate: date("2021-01-10"), BankID: 5, CustomerID: 5},
	} {
		if _, err := s.AddAccount(a); err != nil {
			panic(err)
		}
	}
}
