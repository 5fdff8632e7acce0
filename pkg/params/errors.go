package params

import "errors"

var (
	ErrInvalidJSON  = errors.New("params: invalid json")
	ErrNotObject    = errors.New("params: not a json object")
	ErrBodyTooLarge = errors.New("params: request body too large")
	ErrReadBody     = errors.New("params: failed to read request body")
)
