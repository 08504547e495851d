package busctl_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/ctrlm.go/pkg/bus/bustest"
	_ "github.com/robotalks/ctrlm.go/pkg/cli/cmds/busctl"
	"github.com/robotalks/ctrlm.go/pkg/cli/sh/shtest"
	"github.com/robotalks/ctrlm.go/pkg/ctrlm"
)

func TestAddrCheck(t *testing.T) {
	e := shtest.New(ctrlm.DefaultAddr)
	defer e.Close()
	e.Shell.OutputJSON = true

	e.Bus.Respond(ctrlm.DefaultAddr, ctrlm.DefaultAddr)
	out, err := e.Run("addr", "check")
	require.NoError(t, err)
	require.JSONEq(t, `{"result":0}`, out)

	e.Bus.Respond(ctrlm.DefaultAddr, 0x33)
	out, err = e.Run("addr", "check")
	var mismatch *ctrlm.AddressMismatchError
	require.True(t, errors.As(err, &mismatch))
	require.Equal(t, byte(0x33), mismatch.Got)
	require.JSONEq(t, `{"result":1}`, out)

	out, err = e.Run("addr", "check")
	require.Equal(t, ctrlm.ErrNoResponse, err)
	require.JSONEq(t, `{"result":-1}`, out)
}

func TestAddrGet(t *testing.T) {
	e := shtest.New(ctrlm.DefaultAddr)
	defer e.Close()

	e.Bus.Respond(ctrlm.DefaultAddr, ctrlm.DefaultAddr)
	out, err := e.Run("addr")
	require.NoError(t, err)
	require.Equal(t, "0x09\n", out)
	require.Equal(t, [][]byte{{'a'}}, e.Bus.Writes(ctrlm.DefaultAddr))
}

func TestAddrSetAndUse(t *testing.T) {
	e := shtest.New(ctrlm.DefaultAddr)
	defer e.Close()

	_, err := e.Run("addr", "set", "0x80")
	require.Error(t, err)
	_, err = e.Run("addr", "set", "0x0a")
	require.NoError(t, err)
	require.Equal(t, [][]byte{{'A', 0x0a, 0xd0, 0x0d, 0x0a}}, e.Bus.Writes(0))
	require.Equal(t, uint(0x0a), e.Shell.Config.Addr)
	require.Equal(t, byte(0x0a), e.Shell.Device.Addr)

	_, err = e.Run("use", "0x10")
	require.NoError(t, err)
	require.Equal(t, uint(0x10), e.Shell.Config.Addr)
	require.Equal(t, byte(0x10), e.Shell.Device.Addr)

	_, err = e.Run("use", "0x80")
	require.Error(t, err)
	require.Equal(t, byte(0x10), e.Shell.Device.Addr)
}

func TestScanAndFind(t *testing.T) {
	e := shtest.New(0x0b, ctrlm.DefaultAddr)
	defer e.Close()

	out, err := e.Run("scan")
	require.NoError(t, err)
	require.Equal(t, "[0x09 0x0b]\n", out)

	e.Shell.OutputJSON = true
	out, err = e.Run("scan", "10", "20")
	require.NoError(t, err)
	require.JSONEq(t, `[11]`, out)

	out, err = e.Run("find")
	require.NoError(t, err)
	require.JSONEq(t, `9`, out)
}

func TestVersion(t *testing.T) {
	e := shtest.New(ctrlm.DefaultAddr)
	defer e.Close()

	e.Bus.Respond(ctrlm.DefaultAddr, 1, 5)
	out, err := e.Run("version")
	require.NoError(t, err)
	require.Equal(t, "1.5\n", out)

	e.Shell.OutputJSON = true
	e.Bus.Respond(ctrlm.DefaultAddr, 2, 0)
	out, err = e.Run("ver")
	require.NoError(t, err)
	require.JSONEq(t, `{"major":2,"minor":0}`, out)

	e.Shell.Use(0x42)
	_, err = e.Run("version")
	require.Equal(t, ctrlm.ErrNoResponse, err)
	require.Equal(t, []bustest.Tx{{Addr: 0x42, Write: []byte{'Z'}}}, e.Bus.Txs[len(e.Bus.Txs)-1:])
}

func TestPowerWithoutPins(t *testing.T) {
	e := shtest.New(ctrlm.DefaultAddr)
	defer e.Close()

	_, err := e.Run("power", "on")
	require.EqualError(t, err, "power pins not configured")
	_, err = e.Run("power")
	require.Error(t, err)
}
