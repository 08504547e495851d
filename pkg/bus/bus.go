package bus

import "errors"

// Bus is the bus master primitive.
type Bus interface {
	// Write performs one write transaction to addr. Empty data only
	// addresses the peer, which is how presence is probed.
	Write(addr byte, data []byte) error
	// Read requests len(buf) bytes from addr and returns the number of
	// bytes actually received.
	Read(addr byte, buf []byte) (int, error)
}

// Well-known addresses.
const (
	// GeneralCall is the broadcast address every peer listens to.
	GeneralCall byte = 0x00
	// MaxScanAddr bounds FindFirst, addresses above are reserved.
	MaxScanAddr byte = 120
)

var (
	// ErrNotFound indicates no peer responded.
	ErrNotFound = errors.New("no device found")
	// ErrTimeout indicates the transaction was not completed in time.
	ErrTimeout = errors.New("bus timeout")
)

// Probe checks the presence of a peer at addr.
func Probe(b Bus, addr byte) error {
	return b.Write(addr, nil)
}

// Scan probes every address in [from, to] and reports the result of each.
func Scan(b Bus, from, to byte, fn func(addr byte, err error)) {
	if from > to {
		return
	}
	for addr := int(from); addr <= int(to); addr++ {
		fn(byte(addr), Probe(b, byte(addr)))
	}
}

// FindFirst returns the lowest responding address in [1, MaxScanAddr).
func FindFirst(b Bus) (byte, error) {
	for addr := byte(1); addr < MaxScanAddr; addr++ {
		if Probe(b, addr) == nil {
			return addr, nil
		}
	}
	return 0, ErrNotFound
}
