package shell

// Session is the state of one interactive user: the account they are working on.
type Session struct {
	AccountID int64
}

func (s *Session) Selected() bool {
	return s.AccountID != 0
}

func (s *Session) Select(accountID int64) {
	s.AccountID = accountID
}

func (s *Session) Clear() {
	s.AccountID = 0
}
