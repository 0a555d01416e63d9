package responder

import "errors"

// Table construction errors.
var (
	ErrEmptyTable       = errors.New("keyword table is empty")
	ErrEmptyDisclaimers = errors.New("disclaimer pool is empty")
	ErrEmptyGeneral     = errors.New("general response pool is empty")
	ErrEmptyKeyword     = errors.New("keyword entry has an empty keyword")
	ErrEmptyResponse    = errors.New("keyword entry has an empty response")
	ErrDuplicateKeyword = errors.New("keyword appears more than once")
	ErrEmptyPhrase      = errors.New("emergency phrase is empty")
	ErrNoEmergencyReply = errors.New("emergency phrases configured without an emergency response")
	ErrUnknownUrgency   = errors.New("unknown urgency level")
)
