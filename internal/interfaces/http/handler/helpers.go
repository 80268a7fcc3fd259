package handler

import (
	"errors"
	"time"

	"github.com/agency/backend/internal/domain/finance"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// parseDate parses an optional yyyy-mm-dd query value. Empty input yields nil.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseRange builds a half-open date window from optional from/to query
// values. The upper bound is advanced one day so a "to" date is inclusive.
func parseRange(fromValue, toValue string) (*finance.DateRange, error) {
	from, err := parseDate(fromValue)
	if err != nil {
		return nil, errors.New("invalid from date, expected yyyy-mm-dd")
	}
	to, err := parseDate(toValue)
	if err != nil {
		return nil, errors.New("invalid to date, expected yyyy-mm-dd")
	}
	if from == nil && to == nil {
		return nil, nil
	}
	r := &finance.DateRange{}
	if from != nil {
		r.From = *from
	}
	if to != nil {
		r.To = to.AddDate(0, 0, 1)
	}
	return r, nil
}

func errInvalidQueryID(name string) error {
	return errors.New("invalid " + name)
}

// parseUUID parses an optional uuid query value. Empty input yields nil.
func parseUUID(value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
