package ctrlm

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/ctrlm.go/pkg/bus/bustest"
)

func newTestDevice(t *testing.T) (*Device, *bustest.Recorder) {
	r := bustest.NewRecorder(DefaultAddr)
	return New(r, DefaultAddr), r
}

func TestDeviceSend(t *testing.T) {
	d, r := newTestDevice(t)
	require.NoError(t, d.FadeToRGB(RGB{1, 2, 3}))
	require.NoError(t, d.PlayScript(5, 0, 0))
	require.NoError(t, d.SetTimeAdj(3))
	require.NoError(t, d.SendIRCode(1, 0x01020304))
	require.Equal(t, [][]byte{
		{'c', 1, 2, 3},
		{'p', 5, 0, 0},
		{'t', 3},
		{'$', 1, 1, 2, 3, 4},
	}, r.Writes(DefaultAddr))
}

func TestDeviceSendMissing(t *testing.T) {
	d := New(bustest.NewRecorder(), DefaultAddr)
	require.Equal(t, bustest.ErrNack, d.SetRGB(RGB{}))
}

func TestDeviceOff(t *testing.T) {
	d, r := newTestDevice(t)
	require.NoError(t, d.Off())
	require.Equal(t, [][]byte{{'o'}, {'f', 10}, {'n', 0, 0, 0}}, r.Writes(DefaultAddr))
}

func TestDeviceOffMissing(t *testing.T) {
	r := bustest.NewRecorder()
	d := New(r, DefaultAddr)
	require.Equal(t, bustest.ErrNack, d.Off())
	require.Equal(t, [][]byte{{'o'}, {'f', 10}, {'n', 0, 0, 0}}, r.Writes(DefaultAddr))
}

func TestDeviceSetAddress(t *testing.T) {
	var slept time.Duration
	sleep = func(d time.Duration) { slept += d }
	defer func() { sleep = time.Sleep }()

	d, r := newTestDevice(t)
	require.NoError(t, d.SetAddress(0x0a))
	require.Equal(t, byte(0x0a), d.Addr)
	require.Equal(t, SetAddressDelay, slept)
	require.Equal(t, []bustest.Tx{{Addr: 0, Write: []byte{'A', 0x0a, 0xd0, 0x0d, 0x0a}}}, r.Txs)
}

func TestDeviceQueries(t *testing.T) {
	d, r := newTestDevice(t)

	r.Respond(DefaultAddr, 0x09)
	addr, err := d.GetAddress()
	require.NoError(t, err)
	require.Equal(t, byte(0x09), addr)

	r.Respond(DefaultAddr, 1, 2)
	ver, err := d.GetVersion()
	require.NoError(t, err)
	require.Equal(t, Version(0x0102), ver)
	require.Equal(t, byte(1), ver.Major())
	require.Equal(t, byte(2), ver.Minor())

	r.Respond(DefaultAddr, 0x10, 0x20, 0x30)
	c, err := d.GetRGBColor()
	require.NoError(t, err)
	require.Equal(t, RGB{0x10, 0x20, 0x30}, c)

	r.Respond(DefaultAddr, 0x5a)
	b, err := d.GetInputsByte()
	require.NoError(t, err)
	require.Equal(t, byte(0x5a), b)

	r.Respond(DefaultAddr, 1, 0, 1, 0)
	in, err := d.GetInputs()
	require.NoError(t, err)
	require.Equal(t, Inputs{1, 0, 1, 0}, in)

	require.Equal(t, []bustest.Tx{
		{Addr: DefaultAddr, Write: []byte{'a'}},
		{Addr: DefaultAddr, ReadLen: 1},
		{Addr: DefaultAddr, Write: []byte{'Z'}},
		{Addr: DefaultAddr, ReadLen: 2},
		{Addr: DefaultAddr, Write: []byte{'g'}},
		{Addr: DefaultAddr, ReadLen: 3},
		{Addr: DefaultAddr, Write: []byte{'i'}},
		{Addr: DefaultAddr, ReadLen: 1},
		{Addr: DefaultAddr, Write: []byte{'i'}},
		{Addr: DefaultAddr, ReadLen: 4},
	}, r.Txs)
}

func TestDeviceNoResponse(t *testing.T) {
	d, r := newTestDevice(t)

	_, err := d.GetVersion()
	require.Equal(t, ErrNoResponse, err)

	r.Respond(DefaultAddr, 1, 2)
	_, err = d.GetInputs()
	require.Equal(t, ErrNoResponse, err, "short read")

	d = d.At(0x42)
	_, err = d.GetRGBColor()
	require.Equal(t, ErrNoResponse, err, "write fails first")
}

func TestDeviceMissingQueries(t *testing.T) {
	r := bustest.NewRecorder()
	d := New(r, DefaultAddr)

	_, err := d.GetVersion()
	require.Equal(t, ErrNoResponse, err)
	_, err = d.GetAddress()
	require.Equal(t, ErrNoResponse, err)
	err = d.CheckAddress()
	require.Equal(t, ErrNoResponse, err)
	require.Equal(t, ResultNoResponse, ResultCode(err))
	_, err = d.GetInputs()
	require.Equal(t, ErrNoResponse, err)

	for _, tx := range r.Txs {
		require.NotNil(t, tx.Write, "no read after a failed write")
	}
}

func TestDeviceCheckAddress(t *testing.T) {
	d, r := newTestDevice(t)

	r.Respond(DefaultAddr, DefaultAddr)
	require.NoError(t, d.CheckAddress())

	r.Respond(DefaultAddr, 0x33)
	err := d.CheckAddress()
	var mismatch *AddressMismatchError
	require.True(t, errors.As(err, &mismatch))
	require.Equal(t, byte(DefaultAddr), mismatch.Want)
	require.Equal(t, byte(0x33), mismatch.Got)
	require.Equal(t, ResultMismatch, ResultCode(err))

	err = d.CheckAddress()
	require.Equal(t, ErrNoResponse, err)
	require.Equal(t, ResultNoResponse, ResultCode(err))
	require.Equal(t, ResultOK, ResultCode(nil))
}
