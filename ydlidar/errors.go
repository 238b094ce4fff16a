package ydlidar

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned when a response did not arrive within the
	// configured number of read trials.
	ErrTimeout = errors.New("operation timed out")

	// ErrNoPacket means the buffer holds no packet sync marker yet.
	ErrNoPacket = errors.New("no packet header in buffer")

	// ErrIncompletePacket means a packet header was found but the buffer does
	// not hold the whole packet yet.
	ErrIncompletePacket = errors.New("insufficient data for packet")
)

// HeaderLengthError is returned when a response header is not seven bytes.
type HeaderLengthError struct {
	Length int
}

func (e *HeaderLengthError) Error() string {
	return fmt.Sprintf("response header must be %d bytes, got %d", responseHeaderSize, e.Length)
}

// MagicNumberError is returned when a response header does not start with A5 5A.
type MagicNumberError struct {
	Got [2]byte
}

func (e *MagicNumberError) Error() string {
	return fmt.Sprintf("invalid header. Expected A5 5A got %s", hexString(e.Got[:]))
}

// ResponseLengthError is returned when the declared response length differs
// from the length the command is known to answer with.
type ResponseLengthError struct {
	Expected, Actual int
}

func (e *ResponseLengthError) Error() string {
	return fmt.Sprintf("expected response length of %d bytes but found %d bytes", e.Expected, e.Actual)
}

// TypeCodeError is returned when the response type code does not match the command.
type TypeCodeError struct {
	Expected, Actual byte
}

func (e *TypeCodeError) Error() string {
	return fmt.Sprintf("invalid type code. Expected %#x, got %#x", e.Expected, e.Actual)
}

// HealthError is returned when the device reports a health problem.
type HealthError struct {
	Status byte
	Code   uint16
}

func (e *HealthError) Error() string {
	// The last two bits of the status are reserved.
	return fmt.Sprintf("device health error. Status = %#010b, error code = %#04x", e.Status, e.Code)
}

// UnsupportedModelError is returned for a model name or device-reported model
// number the driver has no profile for.
type UnsupportedModelError struct {
	Name   string
	Number int
}

func (e *UnsupportedModelError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("model %q is not supported", e.Name)
	}
	return fmt.Sprintf("model #%d is not supported", e.Number)
}

// ChecksumError is returned when a packet's check code does not match its contents.
type ChecksumError struct {
	Expected, Calculated uint16
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatched. Calculated = %04X, expected = %04X", e.Calculated, e.Expected)
}
