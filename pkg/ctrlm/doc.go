// Package ctrlm implements the I2C command set of CtrlM LED/IR controllers.
package ctrlm

// Every command is an ASCII opcode followed by a fixed argument layout.
// Queries read back a fixed number of bytes right after the command is
// written. There is no framing, no length prefix and no checksum, except
// for the FreeM address write which carries an additive checksum.
//
// Device wraps a bus.Bus and an address and exposes each command as a
// single method. It keeps no state other than the target address and
// does no locking: the bus is owned by the caller.
