// Package bus abstracts a two-wire (I2C) bus master.
package bus

// A bus transaction is a single write (start, address, data bytes, stop)
// optionally followed by a request for a fixed number of bytes from the
// same address. Implementations are used serially by one owner; none of
// them lock.
