// Package env configures the bus, device and power supply used by commands.
package env

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/robotalks/ctrlm.go/pkg/bus"
	"github.com/robotalks/ctrlm.go/pkg/comm/mqtt"
	"github.com/robotalks/ctrlm.go/pkg/ctrlm"
	"github.com/robotalks/ctrlm.go/pkg/hw/periph"
	"github.com/robotalks/ctrlm.go/pkg/power"
)

// Config provides common options to reach a device.
type Config struct {
	// BusURL locates the bus:
	//   i2c: or i2c:<name> for a local bus,
	//   mqtt://host:port/topic-prefix/<bridge-id> for a remote bridge.
	BusURL string
	// Addr is the device address.
	Addr uint
	// PowerPin and GndPin are GPIO names powering the device.
	// Empty means no power control.
	PowerPin string
	GndPin   string
}

var defaultConfig = Config{
	BusURL: "i2c:",
	Addr:   uint(ctrlm.DefaultAddr),
}

func init() {
	if val := os.Getenv("CTRLM_BUS"); val != "" {
		defaultConfig.BusURL = val
	}
	if val := os.Getenv("CTRLM_ADDR"); val != "" {
		if addr, err := strconv.ParseUint(val, 0, 7); err == nil {
			defaultConfig.Addr = uint(addr)
		}
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.BusURL, "bus", defaultConfig.BusURL, "Bus URL, i2c:[NAME] or mqtt://HOST:PORT/PREFIX/BRIDGE.")
	flag.UintVar(&defaultConfig.Addr, "addr", defaultConfig.Addr, "Device address.")
	flag.StringVar(&defaultConfig.PowerPin, "pwr-pin", defaultConfig.PowerPin, "GPIO powering the device.")
	flag.StringVar(&defaultConfig.GndPin, "gnd-pin", defaultConfig.GndPin, "GPIO grounding the device.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// BusRef is a parsed BusURL.
type BusRef struct {
	// Local is the periph bus name, set when Remote is false.
	Local  string
	Remote bool
	// BrokerURL and Bridge locate the remote bridge.
	BrokerURL string
	Bridge    string
}

// ParseBusURL parses a bus URL.
func ParseBusURL(s string) (*BusRef, error) {
	if strings.HasPrefix(s, "i2c:") {
		return &BusRef{Local: strings.TrimPrefix(s, "i2c:")}, nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid bus URL: %v", err)
	}
	switch u.Scheme {
	case "mqtt", "tcp", "ssl", "ws", "wss":
	default:
		return nil, fmt.Errorf("unknown bus URL scheme: %q", u.Scheme)
	}
	path := strings.Trim(u.Path, "/")
	pos := strings.LastIndex(path, "/")
	ref := &BusRef{Remote: true, Bridge: path[pos+1:]}
	if ref.Bridge == "" {
		return nil, fmt.Errorf("bridge id missing in %q", s)
	}
	u.Path = "/"
	if pos > 0 {
		u.Path += path[:pos] + "/"
	}
	u.RawPath = ""
	ref.BrokerURL = u.String()
	return ref, nil
}

type closers []io.Closer

func (c closers) Close() error {
	var err error
	for _, closer := range c {
		if e := closer.Close(); err == nil {
			err = e
		}
	}
	return err
}

// OpenBus opens the bus. The returned Closer releases it.
func (c *Config) OpenBus() (bus.Bus, io.Closer, error) {
	ref, err := ParseBusURL(c.BusURL)
	if err != nil {
		return nil, nil, err
	}
	if !ref.Remote {
		b, err := periph.OpenBus(ref.Local)
		if err != nil {
			return nil, nil, err
		}
		return b, b, nil
	}
	q, err := mqtt.NewQueueFromURL(ref.BrokerURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid MQTT URL: %v", err)
	}
	b := mqtt.NewBus(q, ref.Bridge)
	if err := q.ConnectAndWait(); err != nil {
		return nil, nil, fmt.Errorf("connect broker: %v", err)
	}
	return b, closers{b, q}, nil
}

// MustOpenBus opens the bus and fails on error.
func (c *Config) MustOpenBus() (bus.Bus, io.Closer) {
	b, closer, err := c.OpenBus()
	if err != nil {
		log.Fatalln(err)
	}
	return b, closer
}

// NewDevice creates the configured device on b.
func (c *Config) NewDevice(b bus.Bus) (*ctrlm.Device, error) {
	if c.Addr > 0x7f {
		return nil, fmt.Errorf("invalid address 0x%x", c.Addr)
	}
	return ctrlm.New(b, byte(c.Addr)), nil
}

// HasPower tells if power pins are configured.
func (c *Config) HasPower() bool {
	return c.PowerPin != "" || c.GndPin != ""
}

// NewSupply opens the power pins. It returns nil without power pins.
func (c *Config) NewSupply() (*power.Supply, error) {
	if !c.HasPower() {
		return nil, nil
	}
	if c.PowerPin == "" || c.GndPin == "" {
		return nil, fmt.Errorf("both power and ground pins are required")
	}
	pwr, err := periph.OpenPin(c.PowerPin)
	if err != nil {
		return nil, err
	}
	gnd, err := periph.OpenPin(c.GndPin)
	if err != nil {
		return nil, err
	}
	return power.NewSupply(pwr, gnd), nil
}
