package smscountry

import "errors"

// ErrInvalidArgument is returned, before any request is sent, when a caller
// passes a missing or malformed argument. It is the only error the call
// operations ever return; provider and transport failures are reported
// through Status.
var ErrInvalidArgument = errors.New("invalid argument")
