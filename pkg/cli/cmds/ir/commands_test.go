package ir_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/robotalks/ctrlm.go/pkg/cli/cmds/ir"
	"github.com/robotalks/ctrlm.go/pkg/cli/sh/shtest"
	"github.com/robotalks/ctrlm.go/pkg/ctrlm"
)

func TestInputs(t *testing.T) {
	e := shtest.New(ctrlm.DefaultAddr)
	defer e.Close()
	e.Shell.OutputJSON = true

	e.Bus.Respond(ctrlm.DefaultAddr, 1, 0, 1, 0)
	out, err := e.Run("inputs")
	require.NoError(t, err)
	require.JSONEq(t, `[1,0,1,0]`, out)

	e.Bus.Respond(ctrlm.DefaultAddr, 7)
	out, err = e.Run("in", "first")
	require.NoError(t, err)
	require.JSONEq(t, `7`, out)

	e.Bus.Respond(ctrlm.DefaultAddr, 1, 2)
	_, err = e.Run("inputs")
	require.Equal(t, ctrlm.ErrNoResponse, err)
}

func TestIRCommands(t *testing.T) {
	e := shtest.New(ctrlm.DefaultAddr)
	defer e.Close()

	for _, args := range [][]string{
		{"ir.freq", "38000", "33"},
		{"ir.led", "on"},
		{"ir.led", "off"},
		{"ir.send", "1", "0x01020304"},
		{"sendaddr", "2", "3"},
		{"freem", "5"},
	} {
		out, err := e.Run(args...)
		require.NoError(t, err, args)
		require.Equal(t, "OK\n", out, args)
	}
	require.Equal(t, [][]byte{
		{'#', 0x94, 0x70, 33},
		{'%', 1, 0, 0},
		{'%', 0, 0, 0},
		{'$', 1, 1, 2, 3, 4},
		{'@', 2, 3, 0},
		ctrlm.WriteFreeMAddress(5).Bytes(),
	}, e.Bus.Writes(ctrlm.DefaultAddr))
}

func TestIRArgErrors(t *testing.T) {
	e := shtest.New(ctrlm.DefaultAddr)
	defer e.Close()

	for _, args := range [][]string{
		{"ir.freq", "38000"},
		{"ir.freq", "38000", "101"},
		{"ir.freq", "70000", "50"},
		{"ir.led", "blink"},
		{"ir.send", "1"},
		{"ir.send", "1", "0x100000000"},
		{"sendaddr", "2"},
	} {
		_, err := e.Run(args...)
		require.Error(t, err, args)
	}
	require.Empty(t, e.Bus.Txs)
}
