package env

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/ctrlm.go/pkg/bus/bustest"
	"github.com/robotalks/ctrlm.go/pkg/ctrlm"
)

func TestParseBusURL(t *testing.T) {
	testCases := []struct {
		url    string
		expect *BusRef
	}{
		{"i2c:", &BusRef{}},
		{"i2c:1", &BusRef{Local: "1"}},
		{"i2c:/dev/i2c-1", &BusRef{Local: "/dev/i2c-1"}},
		{"mqtt://localhost:1883/ctrlm/dev", &BusRef{
			Remote: true, BrokerURL: "mqtt://localhost:1883/ctrlm/", Bridge: "dev"}},
		{"mqtt://u:p@broker/a/b/dev/", &BusRef{
			Remote: true, BrokerURL: "mqtt://u:p@broker/a/b/", Bridge: "dev"}},
		{"tcp://broker/dev", &BusRef{
			Remote: true, BrokerURL: "tcp://broker/", Bridge: "dev"}},
	}
	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			ref, err := ParseBusURL(tc.url)
			require.NoError(t, err)
			require.Equal(t, tc.expect, ref)
		})
	}

	for _, u := range []string{"mqtt://broker", "mqtt://broker/", "spi:0", "http://host/dev"} {
		_, err := ParseBusURL(u)
		require.Error(t, err, u)
	}
}

func TestOpenBusInvalid(t *testing.T) {
	conf := NewConfig()
	conf.BusURL = "serial:/dev/ttyS0"
	_, _, err := conf.OpenBus()
	require.Error(t, err)
}

func TestNewDevice(t *testing.T) {
	conf := NewConfig()
	conf.Addr = 0x0a
	dev, err := conf.NewDevice(bustest.NewRecorder())
	require.NoError(t, err)
	require.Equal(t, byte(0x0a), dev.Addr)

	conf.Addr = 0x80
	_, err = conf.NewDevice(bustest.NewRecorder())
	require.Error(t, err)
}

func TestNewSupply(t *testing.T) {
	conf := &Config{Addr: uint(ctrlm.DefaultAddr)}
	supply, err := conf.NewSupply()
	require.NoError(t, err)
	require.Nil(t, supply)

	conf.PowerPin = "GPIO17"
	_, err = conf.NewSupply()
	require.Error(t, err)
}
