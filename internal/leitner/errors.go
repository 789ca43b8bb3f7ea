package leitner

import "errors"

// Sentinel errors. Use errors.Is to check them.
var (
	ErrInvalidSessionSize = errors.New("leitner: session size must be 10, 20, 50 or 100")
	ErrCardBoxDesync      = errors.New("leitner: card is not in the box its box field names")
	ErrInvalidBox         = errors.New("leitner: box out of range")
	ErrInvalidRecord      = errors.New("leitner: invalid card record")
)
