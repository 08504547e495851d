// Package bustest provides an in-memory bus for tests.
package bustest

import (
	"errors"
	"sync"
)

// ErrNack is returned for addresses without an attached peer.
var ErrNack = errors.New("nack")

// Tx is a recorded transaction.
type Tx struct {
	Addr byte
	// Write is nil for read transactions.
	Write []byte
	// ReadLen is 0 for write transactions.
	ReadLen int
}

// Recorder implements bus.Bus and records all transactions.
// Only attached addresses acknowledge; reads are served from queued responses.
type Recorder struct {
	Txs []Tx

	peers     map[byte]bool
	responses map[byte][][]byte
	lock      sync.Mutex
}

// NewRecorder creates a Recorder with peers attached at addrs.
func NewRecorder(addrs ...byte) *Recorder {
	r := &Recorder{
		peers:     make(map[byte]bool),
		responses: make(map[byte][][]byte),
	}
	for _, addr := range addrs {
		r.peers[addr] = true
	}
	return r
}

// Attach attaches a peer.
func (r *Recorder) Attach(addr byte) *Recorder {
	r.lock.Lock()
	r.peers[addr] = true
	r.lock.Unlock()
	return r
}

// Respond queues a response for the next read from addr.
// A response shorter than requested simulates a short read.
func (r *Recorder) Respond(addr byte, data ...byte) *Recorder {
	r.lock.Lock()
	r.responses[addr] = append(r.responses[addr], data)
	r.lock.Unlock()
	return r
}

// Write implements bus.Bus.
func (r *Recorder) Write(addr byte, data []byte) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	w := make([]byte, len(data))
	copy(w, data)
	r.Txs = append(r.Txs, Tx{Addr: addr, Write: w})
	if !r.peers[addr] && addr != 0 {
		return ErrNack
	}
	return nil
}

// Read implements bus.Bus.
func (r *Recorder) Read(addr byte, buf []byte) (int, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Txs = append(r.Txs, Tx{Addr: addr, ReadLen: len(buf)})
	if !r.peers[addr] {
		return 0, ErrNack
	}
	queue := r.responses[addr]
	if len(queue) == 0 {
		return 0, nil
	}
	r.responses[addr] = queue[1:]
	return copy(buf, queue[0]), nil
}

// Writes returns the payloads of all write transactions to addr.
func (r *Recorder) Writes(addr byte) [][]byte {
	r.lock.Lock()
	defer r.lock.Unlock()
	var res [][]byte
	for _, tx := range r.Txs {
		if tx.Addr == addr && tx.Write != nil {
			res = append(res, tx.Write)
		}
	}
	return res
}

// Reset clears recorded transactions.
func (r *Recorder) Reset() {
	r.lock.Lock()
	r.Txs = nil
	r.lock.Unlock()
}
