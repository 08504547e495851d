package mqtt

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/ctrlm.go/pkg/bus"
	"github.com/robotalks/ctrlm.go/pkg/msgs"
)

type busTestEnv struct {
	t     *testing.T
	bus   *Bus
	txs   []*msgs.BusTx
	reply func(tx *msgs.BusTx) interface{}
}

func newBusTestEnv(t *testing.T) *busTestEnv {
	q, err := NewQueueFromURL("mqtt://localhost:1883/ctrlm/")
	require.NoError(t, err)
	env := &busTestEnv{t: t, bus: NewBus(q, "dev")}
	env.bus.Timeout = 100 * time.Millisecond
	env.bus.publish = env.publish
	return env
}

func (e *busTestEnv) publish(topic string, payload []byte) error {
	require.Equal(e.t, "dev/cmd", topic)
	typed, err := msgs.DecodeTyped(payload)
	require.NoError(e.t, err)
	msg, err := typed.Decode()
	require.NoError(e.t, err)
	tx := msg.(*msgs.BusTx)
	e.txs = append(e.txs, tx)
	if e.reply == nil {
		return nil
	}
	var out *msgs.Typed
	switch r := e.reply(tx).(type) {
	case msgs.SerializableMessage:
		out, err = msgs.TypedFrom(r)
		require.NoError(e.t, err)
	case error:
		return r
	}
	out.Sequence = typed.Sequence
	data, err := out.Encode()
	require.NoError(e.t, err)
	go e.bus.handleMsg("dev/msg", data)
	return nil
}

func TestBusWrite(t *testing.T) {
	env := newBusTestEnv(t)
	env.reply = func(*msgs.BusTx) interface{} { return &msgs.BusTxReply{} }
	require.NoError(t, env.bus.Write(9, []byte{'c', 1, 2, 3}))
	require.NoError(t, bus.Probe(env.bus, 9))
	require.Equal(t, []*msgs.BusTx{
		{Addr: 9, Write: []byte{'c', 1, 2, 3}},
		{Addr: 9},
	}, env.txs)
}

func TestBusRead(t *testing.T) {
	env := newBusTestEnv(t)
	env.reply = func(tx *msgs.BusTx) interface{} {
		return &msgs.BusTxReply{Data: []byte{1, 2, 3, 4}[:tx.ReadLen]}
	}
	buf := make([]byte, 2)
	n, err := env.bus.Read(9, buf)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []byte{1, 2}, buf)
	require.Equal(t, uint32(2), env.txs[0].ReadLen)
}

func TestBusCommandErr(t *testing.T) {
	env := newBusTestEnv(t)
	env.reply = func(*msgs.BusTx) interface{} { return &msgs.CommandErr{Message: "nack", Code: -1} }
	err := env.bus.Write(9, []byte{'o'})
	var cmdErr *msgs.CommandErr
	require.True(t, errors.As(err, &cmdErr))
	require.Equal(t, "nack", cmdErr.Message)
}

func TestBusPublishError(t *testing.T) {
	env := newBusTestEnv(t)
	errPub := errors.New("not connected")
	env.reply = func(*msgs.BusTx) interface{} { return errPub }
	require.Equal(t, errPub, env.bus.Write(9, nil))
}

func TestBusTimeout(t *testing.T) {
	env := newBusTestEnv(t)
	_, err := env.bus.Read(9, make([]byte, 1))
	require.Equal(t, bus.ErrTimeout, err)
	require.Empty(t, env.bus.pending)
}

func TestBusIgnoresUnmatched(t *testing.T) {
	env := newBusTestEnv(t)
	typed, err := msgs.TypedFrom(&msgs.BusTxReply{})
	require.NoError(t, err)
	typed.Sequence = 99
	data, err := typed.Encode()
	require.NoError(t, err)
	env.bus.handleMsg("dev/msg", data)
	env.bus.handleMsg("dev/msg", []byte{0xff})

	event, err := msgs.TypedFrom(&msgs.InputsChanged{Addr: 9})
	require.NoError(t, err)
	data, err = event.Encode()
	require.NoError(t, err)
	env.bus.handleMsg("dev/msg", data)
}
