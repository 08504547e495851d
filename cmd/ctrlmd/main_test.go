package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/ctrlm.go/pkg/power"
)

type nopPin struct{}

func (nopPin) Out(bool) error { return nil }
func (nopPin) Release() error { return nil }

func TestCheckPowerFlags(t *testing.T) {
	require.NoError(t, checkPowerFlags(nil, false, false))
	require.Equal(t, errNoPowerPins, checkPowerFlags(nil, true, false))
	require.Equal(t, errNoPowerPins, checkPowerFlags(nil, false, true))

	supply := power.NewSupply(nopPin{}, nopPin{})
	require.NoError(t, checkPowerFlags(supply, true, true))
	require.NoError(t, checkPowerFlags(supply, false, false))
}
