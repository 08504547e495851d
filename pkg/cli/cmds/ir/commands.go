// Package ir provides inputs, IR and FreeM commands.
package ir

import (
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/ctrlm.go/pkg/cli/sh"
	"github.com/robotalks/ctrlm.go/pkg/ctrlm"
)

var (
	// InputsCmd reads the digital inputs.
	InputsCmd = ishell.Cmd{
		Name:    "inputs",
		Aliases: []string{"in"},
		Help:    "[first]",
		Func: func(c *ishell.Context) {
			first := len(c.Args) > 0 && c.Args[0] == "first"
			sh.Do(c, func(d *ctrlm.Device) (interface{}, error) {
				if first {
					return d.GetInputsByte()
				}
				in, err := d.GetInputs()
				if err != nil {
					return nil, err
				}
				vals := make([]int, len(in))
				for i, v := range in {
					vals[i] = int(v)
				}
				return vals, nil
			})
		},
	}

	// IRFreqCmd sets the IR carrier.
	IRFreqCmd = ishell.Cmd{
		Name: "ir.freq",
		Help: "FREQ DUTY(%)",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("FREQ DUTY required"))
				return
			}
			freq, err := strconv.ParseUint(c.Args[0], 0, 16)
			if err != nil {
				c.Err(fmt.Errorf("invalid FREQ: %v", err))
				return
			}
			duty, err := sh.ParseByte(c.Args[1])
			if err != nil || duty > 100 {
				c.Err(fmt.Errorf("invalid DUTY: %q", c.Args[1]))
				return
			}
			sh.Send(c, func(d *ctrlm.Device) error { return d.SetIRFreq(uint16(freq), duty) })
		},
	}

	// IRLEDCmd switches the IR LED.
	IRLEDCmd = ishell.Cmd{
		Name: "ir.led",
		Help: "on|off",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 || (c.Args[0] != "on" && c.Args[0] != "off") {
				c.Err(fmt.Errorf("on|off required"))
				return
			}
			on := c.Args[0] == "on"
			sh.Send(c, func(d *ctrlm.Device) error { return d.TurnIRLED(on) })
		},
	}

	// IRSendCmd transmits an IR code.
	IRSendCmd = ishell.Cmd{
		Name: "ir.send",
		Help: "TYPE CODE",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("TYPE CODE required"))
				return
			}
			typ, err := sh.ParseByte(c.Args[0])
			if err != nil {
				c.Err(fmt.Errorf("invalid TYPE: %v", err))
				return
			}
			code, err := strconv.ParseUint(c.Args[1], 0, 32)
			if err != nil {
				c.Err(fmt.Errorf("invalid CODE: %v", err))
				return
			}
			sh.Send(c, func(d *ctrlm.Device) error { return d.SendIRCode(typ, uint32(code)) })
		},
	}

	// SendAddrCmd sets the FreeM and BlinkM addresses to send to.
	SendAddrCmd = ishell.Cmd{
		Name: "sendaddr",
		Help: "FREEM BLINKM",
		Func: func(c *ishell.Context) {
			vals, err := sh.ByteArgs(c, 0, "FREEM", "BLINKM")
			if err != nil {
				c.Err(err)
				return
			}
			sh.Send(c, func(d *ctrlm.Device) error { return d.SetSendAddress(vals[0], vals[1]) })
		},
	}

	// FreeMCmd programs a new FreeM address.
	FreeMCmd = ishell.Cmd{
		Name: "freem",
		Help: "ADDR",
		Func: func(c *ishell.Context) {
			vals, err := sh.ByteArgs(c, 0, "ADDR")
			if err != nil {
				c.Err(err)
				return
			}
			sh.Send(c, func(d *ctrlm.Device) error { return d.WriteFreeMAddress(vals[0]) })
		},
	}
)

func init() {
	sh.AddCmds(
		&InputsCmd,
		&IRFreqCmd,
		&IRLEDCmd,
		&IRSendCmd,
		&SendAddrCmd,
		&FreeMCmd,
	)
}
