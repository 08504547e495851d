// Package bridge exposes a local bus over MQTT.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/ctrlm.go/pkg/bus"
	"github.com/robotalks/ctrlm.go/pkg/comm/mqtt"
	"github.com/robotalks/ctrlm.go/pkg/ctrlm"
	fx "github.com/robotalks/ctrlm.go/pkg/framework"
	"github.com/robotalks/ctrlm.go/pkg/msgs"
)

// MaxReadLen limits the bytes a single transaction may read.
const MaxReadLen = 32

// ErrConnectionLost is returned by Run when the broker drops the connection.
var ErrConnectionLost = errors.New("broker connection lost")

// Meta is published retained on <name>/meta.
// The broker replaces it with an offline Meta when the bridge drops,
// and a clean shutdown clears it.
type Meta struct {
	Online      bool              `json:"online"`
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// OfflineMeta is the last will payload of a bridge.
func OfflineMeta() []byte {
	data, _ := json.Marshal(&Meta{})
	return data
}

// IsOnline tells whether a meta payload announces an online bridge.
// An empty payload is a cleared meta.
func IsOnline(payload []byte) bool {
	var meta Meta
	if len(payload) == 0 || json.Unmarshal(payload, &meta) != nil {
		return false
	}
	return meta.Online
}

// Bridge serves bus transactions from MQTT and publishes input changes.
// All bus access happens inside the loop.
type Bridge struct {
	Name         string
	Meta         Meta
	Bus          bus.Bus
	Queue        *mqtt.Queue
	PollAddrs    []byte
	PollInterval time.Duration

	inputs   map[byte]ctrlm.Inputs
	lastPoll time.Time
	publish  func(topic string, payload []byte, retain bool) error
	lost     chan struct{}
}

type txMsg struct {
	seq uint32
	tx  *msgs.BusTx
}

// NewMessage implements Message.
func (m *txMsg) NewMessage() fx.Message { return &txMsg{} }

// New creates a Bridge.
func New(name string, b bus.Bus, q *mqtt.Queue) *Bridge {
	br := &Bridge{
		Name:   name,
		Bus:    b,
		Queue:  q,
		inputs: make(map[byte]ctrlm.Inputs),
		lost:   make(chan struct{}, 1),
	}
	br.publish = func(topic string, payload []byte, retain bool) error {
		token := q.PubWith(topic, payload, 1, retain)
		token.Wait()
		return token.Error()
	}
	q.OnConnect = func(*mqtt.Queue) { br.publishMeta() }
	q.OnDisconnect = func(*mqtt.Queue) {
		select {
		case br.lost <- struct{}{}:
		default:
		}
	}
	return br
}

// AddToLoop implements LoopAdder.
func (b *Bridge) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(fx.NamedRun("bridge", b))
	loop.AddController(fx.PrLvSense, fx.ControlFunc(b.pollInputs))
	loop.AddController(fx.PrLvControl, fx.ControlFunc(b.processCommands))
}

// Run implements Runnable.
func (b *Bridge) Run(ctx context.Context) error {
	loopCtl := fx.LoopCtlFrom(ctx)
	sub := b.Queue.Sub(mqtt.Topic(b.Name, mqtt.TopicCmd), func(_ string, payload []byte) {
		b.handleCmd(loopCtl, payload)
	})
	if err := b.Queue.ConnectAndWait(); err != nil {
		return fmt.Errorf("connect broker: %v", err)
	}
	glog.Infof("bridge %s online", b.Name)
	select {
	case <-ctx.Done():
	case <-b.lost:
		glog.Errorf("bridge %s offline: %v", b.Name, ErrConnectionLost)
		b.Queue.Close()
		return ErrConnectionLost
	}
	sub.Close()
	if err := b.publish(mqtt.Topic(b.Name, mqtt.TopicMeta), nil, true); err != nil {
		glog.Warningf("clear meta: %v", err)
	}
	b.Queue.Close()
	return ctx.Err()
}

func (b *Bridge) handleCmd(loopCtl fx.LoopControl, payload []byte) {
	typed, err := msgs.DecodeTyped(payload)
	if err != nil {
		glog.Warningf("bad command: %v", err)
		return
	}
	if !typed.IsCommand() || typed.IsReply() {
		return
	}
	msg, err := typed.Decode()
	if err == nil {
		if tx, ok := msg.(*msgs.BusTx); ok {
			loopCtl.PostMessage(&txMsg{seq: typed.Sequence, tx: tx})
			loopCtl.TriggerNext()
			return
		}
		err = msgs.ErrUnsupportedCommand
	}
	b.reply(typed.Sequence, msgs.NewCommandErr(err, ctrlm.ResultNoResponse))
}

func (b *Bridge) processCommands(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		if m, ok := mctx.CurrentMessage().(*txMsg); ok {
			mctx.MessageTaken()
			b.reply(m.seq, b.Execute(m.tx))
		}
	}))
	return nil
}

// Execute runs a transaction on the bus and returns the reply.
func (b *Bridge) Execute(tx *msgs.BusTx) fx.Message {
	if tx.Addr > 0x7f {
		return msgs.NewCommandErr(fmt.Errorf("invalid address 0x%x", tx.Addr), ctrlm.ResultNoResponse)
	}
	if tx.ReadLen > MaxReadLen {
		return msgs.NewCommandErr(fmt.Errorf("read length %d exceeds %d", tx.ReadLen, MaxReadLen), ctrlm.ResultNoResponse)
	}
	addr := byte(tx.Addr)
	if len(tx.Write) > 0 || tx.ReadLen == 0 {
		if err := b.Bus.Write(addr, tx.Write); err != nil {
			return msgs.NewCommandErr(err, ctrlm.ResultNoResponse)
		}
	}
	reply := &msgs.BusTxReply{}
	if tx.ReadLen > 0 {
		buf := make([]byte, tx.ReadLen)
		n, err := b.Bus.Read(addr, buf)
		if err != nil {
			return msgs.NewCommandErr(err, ctrlm.ResultNoResponse)
		}
		reply.Data = buf[:n]
	}
	return reply
}

func (b *Bridge) pollInputs(cc fx.ControlContext) error {
	if len(b.PollAddrs) == 0 || cc.Time().Sub(b.lastPoll) < b.PollInterval {
		return nil
	}
	b.lastPoll = cc.Time()
	for _, addr := range b.PollAddrs {
		in, err := ctrlm.New(b.Bus, addr).GetInputs()
		if err != nil {
			glog.V(2).Infof("poll inputs 0x%02x: %v", addr, err)
			continue
		}
		if prev, ok := b.inputs[addr]; ok && prev == in {
			continue
		}
		b.inputs[addr] = in
		b.event(&msgs.InputsChanged{Addr: uint32(addr), Inputs: in[:]})
	}
	return nil
}

func (b *Bridge) reply(seq uint32, msg fx.Message) {
	typed, err := msgs.TypedFrom(msg)
	if err != nil {
		glog.Errorf("encode reply: %v", err)
		return
	}
	typed.Sequence = seq
	b.send(typed)
}

func (b *Bridge) event(msg fx.Message) {
	typed, err := msgs.TypedFrom(msg)
	if err != nil {
		glog.Errorf("encode event: %v", err)
		return
	}
	b.send(typed)
}

func (b *Bridge) send(typed *msgs.Typed) {
	pkt, err := typed.Encode()
	if err == nil {
		err = b.publish(mqtt.Topic(b.Name, mqtt.TopicMsg), pkt, false)
	}
	if err != nil {
		glog.Warningf("publish %x: %v", typed.TypeId, err)
	}
}

func (b *Bridge) publishMeta() {
	meta := b.Meta
	meta.Online = true
	data, err := json.Marshal(&meta)
	if err == nil {
		err = b.publish(mqtt.Topic(b.Name, mqtt.TopicMeta), data, true)
	}
	if err != nil {
		glog.Warningf("publish meta: %v", err)
	}
}
