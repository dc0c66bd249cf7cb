package layout

import "errors"

// ErrMalformedNode reports that a required structural field in the source
// document has the wrong shape (e.g. "areas" is a string where an array is
// required). A build that hits it aborts; no partial document is returned.
var ErrMalformedNode = errors.New("malformed layout node")

// ErrInvalidArgument reports a nil or empty required argument to a public
// operation.
var ErrInvalidArgument = errors.New("invalid argument")
