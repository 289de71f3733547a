package errors

import "errors"

// Trip option integrity errors. Any of these drops the affected option only.
var (
	ErrMalformedLeg    = errors.New("malformed leg")
	ErrLayoverMismatch = errors.New("layover airport mismatch")
	ErrDurationFormat  = errors.New("leg duration is not an integer")
	ErrEmptyJourney    = errors.New("journey has no legs")
	ErrConnectionTime  = errors.New("connection time does not match leg times")
)

var (
	ErrInvalidInput    = errors.New("invalid trip options input")
	ErrInvalidQuery    = errors.New("invalid search query")
	ErrSourceTemporary = errors.New("temporary source failure")
	ErrSourceInvalid   = errors.New("trip source returned invalid data")
	ErrCatalogEmpty    = errors.New("airport catalog not loaded")
)
