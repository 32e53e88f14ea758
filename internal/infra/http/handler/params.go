package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/clever-bank/ledger/internal/statement"
	"github.com/go-chi/chi/v5"
)

var errBadID = errors.New("id must be a positive integer")

func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}

// parseBound accepts RFC 3339 or a bare date. A bare "to" date covers the whole day.
func parseBound(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, errors.New("dates must be YYYY-MM-DD or RFC 3339")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// periodQuery reads ?from=&to=. Missing bounds default to the last month.
func periodQuery(r *http.Request, now time.Time) (statement.Period, error) {
	period := statement.LastMonth(now)
	if from := strings.TrimSpace(r.URL.Query().Get("from")); from != "" {
		t, err := parseBound(from, false)
		if err != nil {
			return period, err
		}
		period.Start = t
	}
	if to := strings.TrimSpace(r.URL.Query().Get("to")); to != "" {
		t, err := parseBound(to, true)
		if err != nil {
			return period, err
		}
		period.End = t
	}
	return period, nil
}
