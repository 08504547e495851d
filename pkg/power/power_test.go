package power

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type pinState int

const (
	pinInput pinState = iota
	pinLow
	pinHigh
)

type fakePin struct {
	name  string
	state pinState
	err   error
	log   *[]string
}

func (p *fakePin) Out(high bool) error {
	if p.err != nil {
		return p.err
	}
	p.state = pinLow
	if high {
		p.state = pinHigh
	}
	*p.log = append(*p.log, p.name+".out")
	return nil
}

func (p *fakePin) Release() error {
	p.state = pinInput
	*p.log = append(*p.log, p.name+".release")
	return p.err
}

func newFakeSupply() (*Supply, *fakePin, *fakePin, *[]string) {
	var log []string
	pwr, gnd := &fakePin{name: "pwr", log: &log}, &fakePin{name: "gnd", log: &log}
	return NewSupply(pwr, gnd), pwr, gnd, &log
}

func TestSupplyStartStop(t *testing.T) {
	s, pwr, gnd, log := newFakeSupply()
	require.NoError(t, s.Start())
	require.Equal(t, pinHigh, pwr.state)
	require.Equal(t, pinLow, gnd.state)
	require.Equal(t, []string{"gnd.out", "pwr.out"}, *log)

	require.NoError(t, s.Stop())
	require.Equal(t, pinInput, pwr.state)
	require.Equal(t, pinInput, gnd.state)
}

func TestSupplyStartAndSettle(t *testing.T) {
	var slept time.Duration
	sleep = func(d time.Duration) { slept = d }
	defer func() { sleep = time.Sleep }()

	s, _, _, _ := newFakeSupply()
	require.NoError(t, s.StartAndSettle())
	require.Equal(t, DefaultSettle, slept)

	s.Settle = 0
	require.NoError(t, s.StartAndSettle())
	require.Equal(t, DefaultSettle, slept)
}

func TestSupplyErrors(t *testing.T) {
	s, pwr, gnd, log := newFakeSupply()
	gnd.err = errors.New("busy")
	require.Equal(t, gnd.err, s.Start())
	require.Equal(t, pinInput, pwr.state, "pwr untouched when gnd fails")
	require.Empty(t, *log)

	require.Equal(t, gnd.err, s.Stop())
	require.Equal(t, []string{"pwr.release", "gnd.release"}, *log)
}
