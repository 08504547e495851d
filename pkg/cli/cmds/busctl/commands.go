// Package busctl provides commands to find and address devices.
package busctl

import (
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/ctrlm.go/pkg/bus"
	"github.com/robotalks/ctrlm.go/pkg/cli/sh"
	"github.com/robotalks/ctrlm.go/pkg/ctrlm"
)

// Addr formats an address for output.
type Addr byte

// String implements fmt.Stringer.
func (a Addr) String() string { return fmt.Sprintf("0x%02x", byte(a)) }

// MarshalJSON encodes the address as a number.
func (a Addr) MarshalJSON() ([]byte, error) { return []byte(strconv.Itoa(int(a))), nil }

var (
	// ScanCmd lists responding addresses.
	ScanCmd = ishell.Cmd{
		Name: "scan",
		Help: "[FROM TO]",
		Func: func(c *ishell.Context) {
			from, to := byte(1), bus.MaxScanAddr-1
			if len(c.Args) > 0 {
				vals, err := sh.ByteArgs(c, 0, "FROM", "TO")
				if err != nil {
					c.Err(err)
					return
				}
				from, to = vals[0], vals[1]
			}
			sh.Do(c, func(d *ctrlm.Device) (interface{}, error) {
				found := []Addr{}
				bus.Scan(d.Bus, from, to, func(addr byte, err error) {
					if err == nil {
						found = append(found, Addr(addr))
					}
				})
				return found, nil
			})
		},
	}

	// FindCmd finds the first responding address.
	FindCmd = ishell.Cmd{
		Name: "find",
		Help: "",
		Func: func(c *ishell.Context) {
			sh.Do(c, func(d *ctrlm.Device) (interface{}, error) {
				addr, err := bus.FindFirst(d.Bus)
				return Addr(addr), err
			})
		},
	}

	// AddrCmd gets, sets or checks the device address.
	AddrCmd = ishell.Cmd{
		Name: "addr",
		Help: "[get | set NEWADDR | check]",
		Func: func(c *ishell.Context) {
			action := "get"
			if len(c.Args) > 0 {
				action = c.Args[0]
			}
			switch action {
			case "get":
				sh.Do(c, func(d *ctrlm.Device) (interface{}, error) {
					addr, err := d.GetAddress()
					return Addr(addr), err
				})
			case "set":
				if len(c.Args) < 2 {
					c.Err(fmt.Errorf("NEWADDR required"))
					return
				}
				addr, err := sh.ParseByte(c.Args[1])
				if err != nil || addr == 0 || addr >= 0x80 {
					c.Err(fmt.Errorf("invalid NEWADDR: %q", c.Args[1]))
					return
				}
				if sh.Send(c, func(d *ctrlm.Device) error { return d.SetAddress(addr) }) == nil {
					sh.ShellFrom(c).Use(addr)
				}
			case "check":
				var checkErr error
				sh.Do(c, func(d *ctrlm.Device) (interface{}, error) {
					checkErr = d.CheckAddress()
					return map[string]int{"result": ctrlm.ResultCode(checkErr)}, nil
				})
				if checkErr != nil {
					c.Err(checkErr)
				}
			default:
				c.Err(fmt.Errorf("unknown action %q", action))
			}
		},
	}

	// UseCmd switches the device address.
	UseCmd = ishell.Cmd{
		Name: "use",
		Help: "ADDR",
		Func: func(c *ishell.Context) {
			vals, err := sh.ByteArgs(c, 0, "ADDR")
			if err != nil {
				c.Err(err)
				return
			}
			if vals[0] >= 0x80 {
				c.Err(fmt.Errorf("invalid ADDR: 0x%x", vals[0]))
				return
			}
			sh.ShellFrom(c).Use(vals[0])
		},
	}

	// VersionCmd reads the firmware version.
	VersionCmd = ishell.Cmd{
		Name:    "version",
		Aliases: []string{"ver"},
		Help:    "",
		Func: func(c *ishell.Context) {
			sh.Do(c, func(d *ctrlm.Device) (interface{}, error) {
				v, err := d.GetVersion()
				if err != nil {
					return nil, err
				}
				if sh.ShellFrom(c).OutputJSON {
					return map[string]byte{"major": v.Major(), "minor": v.Minor()}, nil
				}
				return v, nil
			})
		},
	}

	// PowerCmd switches the device supply.
	PowerCmd = ishell.Cmd{
		Name: "power",
		Help: "on|off",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("on|off required"))
				return
			}
			supply, err := sh.ShellFrom(c).PowerSupply()
			if err != nil {
				c.Err(err)
				return
			}
			switch c.Args[0] {
			case "on":
				err = supply.StartAndSettle()
			case "off":
				err = supply.Stop()
			default:
				err = fmt.Errorf("on|off required")
			}
			if err != nil {
				c.Err(err)
				return
			}
			sh.Print(c, nil)
		},
	}
)

func init() {
	sh.AddCmds(
		&ScanCmd,
		&FindCmd,
		&AddrCmd,
		&UseCmd,
		&VersionCmd,
		&PowerCmd,
	)
}
