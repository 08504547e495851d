// Package msgs provides the bridge protocol and all message schemas.
package msgs

// The bridge protocol carries raw bus transactions between a remote
// client and the process owning the bus, plus events the bridge
// produces on its own (input changes).
//
// Every message is wrapped in a Typed envelope. Commands carry a
// sequence number which the reply echoes.
