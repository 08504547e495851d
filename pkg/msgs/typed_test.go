package msgs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeIDKinds(t *testing.T) {
	testCases := []struct {
		name    string
		typeID  uint32
		command bool
		reply   bool
		event   bool
	}{
		{"bus tx", BusTxTypeID, true, false, false},
		{"bus tx reply", BusTxReplyTypeID, true, true, false},
		{"command err", CommandErrTypeID, true, true, false},
		{"inputs changed", InputsChangedTypeID, false, false, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			typed := &Typed{TypeId: tc.typeID}
			require.Equal(t, tc.command, typed.IsCommand())
			require.Equal(t, tc.reply, typed.IsReply())
			require.Equal(t, tc.event, typed.IsEvent())
			require.Contains(t, MessageTypes, tc.typeID)
		})
	}
}

func TestTypedEnvelope(t *testing.T) {
	typed, err := TypedFrom(&BusTx{Addr: 9, Write: []byte{'c', 1, 2, 3}, ReadLen: 0})
	require.NoError(t, err)
	typed.Sequence = 42
	data, err := typed.Encode()
	require.NoError(t, err)

	decoded, err := DecodeTyped(data)
	require.NoError(t, err)
	require.Equal(t, BusTxTypeID, decoded.TypeId)
	require.Equal(t, uint32(42), decoded.Sequence)
	msg, err := decoded.Decode()
	require.NoError(t, err)
	require.Equal(t, &BusTx{Addr: 9, Write: []byte{'c', 1, 2, 3}}, msg)
}

func TestTypedErrors(t *testing.T) {
	_, err := (&Typed{TypeId: 0x1234}).Decode()
	require.Equal(t, &ErrUnknownType{TypeID: 0x1234}, err)
	require.Equal(t, "unknown type: 1234", err.Error())

	_, err = TypedFrom(nil)
	require.Equal(t, ErrNotSerializable, err)

	_, err = DecodeTyped([]byte{0xff})
	require.Error(t, err)
}

func TestCommandErr(t *testing.T) {
	typed, err := TypedFrom(&CommandErr{Message: "no response", Code: -1})
	require.NoError(t, err)
	msg, err := typed.Decode()
	require.NoError(t, err)
	cmdErr, ok := msg.(*CommandErr)
	require.True(t, ok)
	require.Equal(t, "no response", cmdErr.Error())
	require.Equal(t, int32(-1), cmdErr.Code)
}
