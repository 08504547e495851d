package sh

import (
	"testing"

	"github.com/abiosoft/ishell"
	"github.com/stretchr/testify/require"
)

func TestParseByte(t *testing.T) {
	v, err := ParseByte("0x7f")
	require.NoError(t, err)
	require.Equal(t, byte(0x7f), v)
	v, err = ParseByte("255")
	require.NoError(t, err)
	require.Equal(t, byte(255), v)
	_, err = ParseByte("256")
	require.Error(t, err)
}

func TestByteArgs(t *testing.T) {
	vals, err := ByteArgs(&ishell.Context{Args: []string{"1", "0x10", "3"}}, 0, "R", "G", "B")
	require.NoError(t, err)
	require.Equal(t, []byte{1, 0x10, 3}, vals)

	vals, err = ByteArgs(&ishell.Context{Args: []string{"5"}}, 2, "ID", "REPS", "POS")
	require.NoError(t, err)
	require.Equal(t, []byte{5, 0, 0}, vals)

	_, err = ByteArgs(&ishell.Context{Args: []string{"1"}}, 0, "R", "G", "B")
	require.EqualError(t, err, "G required")

	_, err = ByteArgs(&ishell.Context{Args: []string{"1", "x", "3"}}, 0, "R", "G", "B")
	require.Error(t, err)
}
