package submission

import "errors"

var ErrUnknownKind = errors.New("unknown submission kind")

// User-facing validation messages.
const (
	MsgMissingFields         = "Missing required fields: name, email, and message are required."
	MsgContactMissingFields  = "Name, email, and message are required fields."
	MsgMissingWaitlistFields = "Name, email, and interest are required fields."
	MsgInvalidEmail          = "Please provide a valid email address."
)
