package models

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation marks malformed sport/style/legs input
	ErrValidation = errors.New("invalid parlay request")
	// ErrConfiguration marks a missing odds provider credential
	ErrConfiguration = errors.New("odds provider is not configured")
	// ErrUpstream marks a failed or unreadable odds provider response
	ErrUpstream = errors.New("odds provider request failed")
	// ErrNotFound marks a provider response with no events
	ErrNotFound = errors.New("no events found")
	// ErrNoCandidates marks events without enough usable moneyline odds
	ErrNoCandidates = errors.New("no usable moneyline odds")
)

// StatusCode maps an error onto the HTTP status it should be reported with
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoCandidates):
		return http.StatusNotFound
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Title returns the short error label used in ErrorResponse.Error
func Title(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return ErrValidation.Error()
	case errors.Is(err, ErrConfiguration):
		return ErrConfiguration.Error()
	case errors.Is(err, ErrUpstream):
		return ErrUpstream.Error()
	case errors.Is(err, ErrNotFound):
		return ErrNotFound.Error()
	case errors.Is(err, ErrNoCandidates):
		return ErrNoCandidates.Error()
	default:
		return "Request failed"
	}
}
