package scrapeclient

import (
	"errors"
	"fmt"
)

// StatusError is returned when the service answers outside of 2xx, the body
// is ignored apart from being kept for diagnostics.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e StatusError) Error() string {
	return fmt.Sprintf("scrape service responded with %s", e.Status)
}

// ParseError is returned when a 2xx response does not hold a list of records.
type ParseError struct {
	Err error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("malformed scrape response: %s", e.Err.Error())
}

func (e ParseError) Unwrap() error {
	return e.Err
}

const (
	outcomeOk        = "ok"
	outcomeStatus    = "status"
	outcomeParse     = "parse"
	outcomeTransport = "transport"
)

func outcomeOf(err error) string {
	if err == nil {
		return outcomeOk
	}
	var statusErr StatusError
	if errors.As(err, &statusErr) {
		return outcomeStatus
	}
	var parseErr ParseError
	if errors.As(err, &parseErr) {
		return outcomeParse
	}
	return outcomeTransport
}
