package mqtt

import (
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/ctrlm.go/pkg/bus"
	"github.com/robotalks/ctrlm.go/pkg/msgs"
)

// DefaultTimeout is the default time waiting for a reply.
const DefaultTimeout = time.Second

// Topic suffixes under <prefix><name>/.
const (
	TopicCmd  = "cmd"
	TopicMsg  = "msg"
	TopicMeta = "meta"
)

// Topic builds the topic of a bridge.
func Topic(name, suffix string) string {
	return name + "/" + suffix
}

// Bus implements bus.Bus by forwarding transactions to a bridge.
type Bus struct {
	Timeout time.Duration

	queue   *Queue
	name    string
	sub     *Subscription
	publish func(topic string, payload []byte) error

	seq     uint32
	pending map[uint32]chan *msgs.Typed
	lock    sync.Mutex
}

// NewBus creates a Bus talking to the bridge with name.
// The queue is expected to be connected by the caller.
func NewBus(q *Queue, name string) *Bus {
	b := &Bus{
		Timeout: DefaultTimeout,
		queue:   q,
		name:    name,
		pending: make(map[uint32]chan *msgs.Typed),
	}
	b.publish = func(topic string, payload []byte) error {
		token := q.Pub(topic, payload)
		token.Wait()
		return token.Error()
	}
	b.sub = q.Sub(Topic(name, TopicMsg), b.handleMsg)
	return b
}

// Write implements bus.Bus.
func (b *Bus) Write(addr byte, data []byte) error {
	_, err := b.do(&msgs.BusTx{Addr: uint32(addr), Write: data})
	return err
}

// Read implements bus.Bus.
func (b *Bus) Read(addr byte, buf []byte) (int, error) {
	reply, err := b.do(&msgs.BusTx{Addr: uint32(addr), ReadLen: uint32(len(buf))})
	if err != nil {
		return 0, err
	}
	return copy(buf, reply.Data), nil
}

// Close unsubscribes replies. It doesn't close the queue.
func (b *Bus) Close() error {
	return b.sub.Close()
}

func (b *Bus) do(tx *msgs.BusTx) (*msgs.BusTxReply, error) {
	typed, err := msgs.TypedFrom(tx)
	if err != nil {
		return nil, err
	}
	ch := make(chan *msgs.Typed, 1)
	b.lock.Lock()
	b.seq++
	if b.seq == 0 {
		b.seq++
	}
	typed.Sequence = b.seq
	b.pending[typed.Sequence] = ch
	b.lock.Unlock()
	defer func() {
		b.lock.Lock()
		delete(b.pending, typed.Sequence)
		b.lock.Unlock()
	}()

	pkt, err := typed.Encode()
	if err != nil {
		return nil, err
	}
	if err = b.publish(Topic(b.name, TopicCmd), pkt); err != nil {
		return nil, err
	}

	timeout := b.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	select {
	case reply := <-ch:
		msg, err := reply.Decode()
		if err != nil {
			return nil, err
		}
		switch m := msg.(type) {
		case *msgs.BusTxReply:
			return m, nil
		case *msgs.CommandErr:
			return nil, m
		default:
			return nil, msgs.ErrUnsupportedCommand
		}
	case <-time.After(timeout):
		return nil, bus.ErrTimeout
	}
}

func (b *Bus) handleMsg(_ string, payload []byte) {
	typed, err := msgs.DecodeTyped(payload)
	if err != nil {
		glog.Warningf("bad message from %s: %v", b.name, err)
		return
	}
	if !typed.IsReply() {
		return
	}
	b.lock.Lock()
	ch := b.pending[typed.Sequence]
	b.lock.Unlock()
	if ch == nil {
		return
	}
	select {
	case ch <- typed:
	default:
	}
}
