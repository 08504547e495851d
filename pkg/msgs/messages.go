package msgs

import (
	"github.com/golang/protobuf/proto"

	fx "github.com/robotalks/ctrlm.go/pkg/framework"
)

// CommandErr is the generic reply representing command error.
type CommandErr struct {
	Message string `protobuf:"bytes,1,opt,name=message,proto3" json:"message,omitempty"`
	// Code is the device result code, see ctrlm.ResultCode.
	Code int32 `protobuf:"zigzag32,2,opt,name=code,proto3" json:"code,omitempty"`
}

// NewCommandErr creates a CommandErr from an error.
func NewCommandErr(err error, code int32) *CommandErr {
	return &CommandErr{Message: err.Error(), Code: code}
}

// NewMessage implements Message.
func (m *CommandErr) NewMessage() fx.Message { return &CommandErr{} }

// TypeID implements SerializableMessage.
func (m *CommandErr) TypeID() uint32 { return CommandErrTypeID }

// Serializable implements SerializableMessage.
func (m *CommandErr) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *CommandErr) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CommandErr) Reset() { *m = CommandErr{} }

// String implements proto.Message.
func (m *CommandErr) String() string { return proto.CompactTextString(m) }

// Error implements error.
func (m *CommandErr) Error() string { return m.Message }

// BusTx is a bus transaction: a write of Write when not empty,
// then a read of ReadLen bytes when not zero. Both empty is a probe.
type BusTx struct {
	Addr    uint32 `protobuf:"varint,1,opt,name=addr,proto3" json:"addr,omitempty"`
	Write   []byte `protobuf:"bytes,2,opt,name=write,proto3" json:"write,omitempty"`
	ReadLen uint32 `protobuf:"varint,3,opt,name=read_len,proto3" json:"read_len,omitempty"`
}

// NewMessage implements Message.
func (m *BusTx) NewMessage() fx.Message { return &BusTx{} }

// TypeID implements SerializableMessage.
func (m *BusTx) TypeID() uint32 { return BusTxTypeID }

// Serializable implements SerializableMessage.
func (m *BusTx) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *BusTx) ProtoMessage() {}

// Reset implements proto.Message.
func (m *BusTx) Reset() { *m = BusTx{} }

// String implements proto.Message.
func (m *BusTx) String() string { return proto.CompactTextString(m) }

// BusTxReply carries the bytes read by a BusTx.
type BusTxReply struct {
	Data []byte `protobuf:"bytes,1,opt,name=data,proto3" json:"data,omitempty"`
}

// NewMessage implements Message.
func (m *BusTxReply) NewMessage() fx.Message { return &BusTxReply{} }

// TypeID implements SerializableMessage.
func (m *BusTxReply) TypeID() uint32 { return BusTxReplyTypeID }

// Serializable implements SerializableMessage.
func (m *BusTxReply) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *BusTxReply) ProtoMessage() {}

// Reset implements proto.Message.
func (m *BusTxReply) Reset() { *m = BusTxReply{} }

// String implements proto.Message.
func (m *BusTxReply) String() string { return proto.CompactTextString(m) }

// InputsChanged is an event sent when polled inputs change.
type InputsChanged struct {
	Addr   uint32 `protobuf:"varint,1,opt,name=addr,proto3" json:"addr,omitempty"`
	Inputs []byte `protobuf:"bytes,2,opt,name=inputs,proto3" json:"inputs,omitempty"`
}

// NewMessage implements Message.
func (m *InputsChanged) NewMessage() fx.Message { return &InputsChanged{} }

// TypeID implements SerializableMessage.
func (m *InputsChanged) TypeID() uint32 { return InputsChangedTypeID }

// Serializable implements SerializableMessage.
func (m *InputsChanged) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *InputsChanged) ProtoMessage() {}

// Reset implements proto.Message.
func (m *InputsChanged) Reset() { *m = InputsChanged{} }

// String implements proto.Message.
func (m *InputsChanged) String() string { return proto.CompactTextString(m) }

// TypeID Groups
const (
	GroupCommand uint32 = 0x00000000
	GroupBus     uint32 = 0x00010000
	GroupInputs  uint32 = 0x00020000
)

// TypeIDs
const (
	CommandErrTypeID    uint32 = GroupCommand | TypeIDMaskReply | 0x0001
	BusTxTypeID         uint32 = GroupBus | 0x0000
	BusTxReplyTypeID    uint32 = BusTxTypeID | TypeIDMaskReply
	InputsChangedTypeID uint32 = GroupInputs | TypeIDKindEvent | 0x0000
)
