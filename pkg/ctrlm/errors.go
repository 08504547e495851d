package ctrlm

import (
	"errors"
	"fmt"
)

var (
	// ErrNoResponse indicates the device didn't answer a query.
	// A missing device, a failed write or read and a short read all end up here.
	ErrNoResponse = errors.New("no response")
)

// AddressMismatchError is reported when a device answers with an address
// other than the one it was queried at.
type AddressMismatchError struct {
	Want byte
	Got  byte
}

// Error implements error.
func (e *AddressMismatchError) Error() string {
	return fmt.Sprintf("address mismatch: want 0x%02x, got 0x%02x", e.Want, e.Got)
}

// Result codes understood by firmware-side tooling.
const (
	ResultOK         = 0
	ResultNoResponse = -1
	ResultMismatch   = 1
)

// ResultCode maps an error returned by this package to a result code.
func ResultCode(err error) int {
	if err == nil {
		return ResultOK
	}
	var mismatch *AddressMismatchError
	if errors.As(err, &mismatch) {
		return ResultMismatch
	}
	return ResultNoResponse
}
