package packets

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrTruncatedInput is returned when a stream ends before a field is complete.
	ErrTruncatedInput = errors.New("truncated input")
	// ErrValueTooLarge is returned when a value doesn't fit the requested width.
	ErrValueTooLarge = errors.New("value too large for width")
	// ErrInvalidEncoding is returned when a String field isn't valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid UTF-8 encoding")

	ErrVarIntTooBig     = errors.New("VarInt is too big")
	ErrPacketTooLarge   = errors.New("packet too large")
	ErrInvalidWidth     = errors.New("invalid integer width")
	ErrInvalidNextState = errors.New("invalid handshake next state")
)

// truncated maps short reads onto ErrTruncatedInput, keeping the io error in the chain.
func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrTruncatedInput, err)
	}

	return err
}
