// Package periph implements bus.Bus and power.Pin with periph.io drivers.
package periph

import (
	"fmt"
	"sync"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

var (
	initOnce sync.Once
	initErr  error
)

// Init loads host drivers. It's safe to call more than once.
func Init() error {
	initOnce.Do(func() {
		state, err := host.Init()
		if err != nil {
			initErr = err
			return
		}
		for _, failure := range state.Failed {
			glog.Warningf("driver %s: %v", failure.D, failure.Err)
		}
	})
	return initErr
}

// Bus implements bus.Bus over a periph I2C bus.
type Bus struct {
	bus i2c.BusCloser
}

// OpenBus opens an I2C bus by name, empty for the first available.
func OpenBus(name string) (*Bus, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %v", name, err)
	}
	return &Bus{bus: b}, nil
}

// Write implements bus.Bus. The i2c-dev interface rejects empty transfers,
// so an empty write probes the address with a one byte read instead.
func (b *Bus) Write(addr byte, data []byte) error {
	if len(data) == 0 {
		var probe [1]byte
		return b.bus.Tx(uint16(addr), nil, probe[:])
	}
	return b.bus.Tx(uint16(addr), data, nil)
}

// Read implements bus.Bus.
func (b *Bus) Read(addr byte, buf []byte) (int, error) {
	if err := b.bus.Tx(uint16(addr), nil, buf); err != nil {
		return 0, err
	}
	return len(buf), nil
}

// String implements fmt.Stringer.
func (b *Bus) String() string {
	return b.bus.String()
}

// Close implements io.Closer.
func (b *Bus) Close() error {
	return b.bus.Close()
}

// Pin implements power.Pin over a periph GPIO.
type Pin struct {
	pin gpio.PinIO
}

// OpenPin looks up a GPIO by name.
func OpenPin(name string) (*Pin, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("unknown gpio %q", name)
	}
	return &Pin{pin: p}, nil
}

// Out implements power.Pin.
func (p *Pin) Out(high bool) error {
	l := gpio.Low
	if high {
		l = gpio.High
	}
	return p.pin.Out(l)
}

// Release implements power.Pin.
func (p *Pin) Release() error {
	return p.pin.In(gpio.Float, gpio.NoEdge)
}

// String implements fmt.Stringer.
func (p *Pin) String() string {
	return p.pin.Name()
}
