// Package light provides color and script commands.
package light

import (
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/ctrlm.go/pkg/cli/sh"
	"github.com/robotalks/ctrlm.go/pkg/ctrlm"
)

func rgbArgs(c *ishell.Context) (ctrlm.RGB, error) {
	if len(c.Args) == 1 {
		return ctrlm.ParseRGB(c.Args[0])
	}
	vals, err := sh.ByteArgs(c, 0, "R", "G", "B")
	if err != nil {
		return ctrlm.RGB{}, err
	}
	return ctrlm.RGB{R: vals[0], G: vals[1], B: vals[2]}, nil
}

func hsbArgs(c *ishell.Context) (ctrlm.HSB, error) {
	vals, err := sh.ByteArgs(c, 0, "H", "S", "B")
	if err != nil {
		return ctrlm.HSB{}, err
	}
	return ctrlm.HSB{H: vals[0], S: vals[1], B: vals[2]}, nil
}

func rgbCmd(name, help string, fn func(*ctrlm.Device, ctrlm.RGB) error) ishell.Cmd {
	return ishell.Cmd{
		Name: name,
		Help: help,
		Func: func(c *ishell.Context) {
			color, err := rgbArgs(c)
			if err != nil {
				c.Err(err)
				return
			}
			sh.Send(c, func(d *ctrlm.Device) error { return fn(d, color) })
		},
	}
}

var (
	// RGBCmd sets a color immediately.
	RGBCmd = rgbCmd("rgb", "R G B | #RRGGBB", (*ctrlm.Device).SetRGB)

	// FadeCmd fades to a color.
	FadeCmd = rgbCmd("fade", "R G B | #RRGGBB", (*ctrlm.Device).FadeToRGB)

	// HSBCmd fades to an HSB color.
	HSBCmd = ishell.Cmd{
		Name: "hsb",
		Help: "H S B",
		Func: func(c *ishell.Context) {
			color, err := hsbArgs(c)
			if err != nil {
				c.Err(err)
				return
			}
			sh.Send(c, func(d *ctrlm.Device) error { return d.FadeToHSB(color) })
		},
	}

	// RandomCmd fades to a random color within the given range.
	RandomCmd = ishell.Cmd{
		Name: "random",
		Help: "[rgb|hsb] A B C",
		Func: func(c *ishell.Context) {
			space := "rgb"
			if len(c.Args) > 0 && (c.Args[0] == "rgb" || c.Args[0] == "hsb") {
				space, c.Args = c.Args[0], c.Args[1:]
			}
			if space == "hsb" {
				color, err := hsbArgs(c)
				if err != nil {
					c.Err(err)
					return
				}
				sh.Send(c, func(d *ctrlm.Device) error { return d.FadeToRandomHSB(color) })
				return
			}
			color, err := rgbArgs(c)
			if err != nil {
				c.Err(err)
				return
			}
			sh.Send(c, func(d *ctrlm.Device) error { return d.FadeToRandomRGB(color) })
		},
	}

	// ColorCmd reads the current color.
	ColorCmd = ishell.Cmd{
		Name: "color",
		Help: "",
		Func: func(c *ishell.Context) {
			sh.Do(c, func(d *ctrlm.Device) (interface{}, error) {
				color, err := d.GetRGBColor()
				if err != nil {
					return nil, err
				}
				if sh.ShellFrom(c).OutputJSON {
					return map[string]byte{"r": color.R, "g": color.G, "b": color.B}, nil
				}
				return color, nil
			})
		},
	}

	// SpeedCmd sets the fade speed.
	SpeedCmd = ishell.Cmd{
		Name: "speed",
		Help: "SPEED",
		Func: func(c *ishell.Context) {
			vals, err := sh.ByteArgs(c, 0, "SPEED")
			if err != nil {
				c.Err(err)
				return
			}
			sh.Send(c, func(d *ctrlm.Device) error { return d.SetFadeSpeed(vals[0]) })
		},
	}

	// TimeAdjCmd sets the script time adjustment.
	TimeAdjCmd = ishell.Cmd{
		Name: "timeadj",
		Help: "ADJ(-128..127)",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("ADJ required"))
				return
			}
			adj, err := strconv.ParseInt(c.Args[0], 0, 8)
			if err != nil {
				c.Err(fmt.Errorf("invalid ADJ: %v", err))
				return
			}
			sh.Send(c, func(d *ctrlm.Device) error { return d.SetTimeAdj(int8(adj)) })
		},
	}

	// PlayCmd plays a light script.
	PlayCmd = ishell.Cmd{
		Name: "play",
		Help: "ID [REPS [POS]]",
		Func: func(c *ishell.Context) {
			vals, err := sh.ByteArgs(c, 2, "ID", "REPS", "POS")
			if err != nil {
				c.Err(err)
				return
			}
			sh.Send(c, func(d *ctrlm.Device) error { return d.PlayScript(vals[0], vals[1], vals[2]) })
		},
	}

	// StopCmd stops the light script.
	StopCmd = ishell.Cmd{
		Name: "stop",
		Help: "",
		Func: func(c *ishell.Context) {
			sh.Send(c, (*ctrlm.Device).StopScript)
		},
	}

	// CtrlMPlayCmd plays the CtrlM script.
	CtrlMPlayCmd = ishell.Cmd{
		Name: "ctrlm.play",
		Help: "[REPS [POS]]",
		Func: func(c *ishell.Context) {
			vals, err := sh.ByteArgs(c, 2, "REPS", "POS")
			if err != nil {
				c.Err(err)
				return
			}
			sh.Send(c, func(d *ctrlm.Device) error { return d.PlayCtrlMScript(vals[0], vals[1]) })
		},
	}

	// CtrlMStopCmd stops the CtrlM script.
	CtrlMStopCmd = ishell.Cmd{
		Name: "ctrlm.stop",
		Help: "",
		Func: func(c *ishell.Context) {
			sh.Send(c, (*ctrlm.Device).StopCtrlMScript)
		},
	}

	// StartupCmd sets power-up behavior, defaults without arguments.
	StartupCmd = ishell.Cmd{
		Name: "startup",
		Help: "[MODE ID REPS SPEED TADJ]",
		Func: func(c *ishell.Context) {
			params := ctrlm.DefaultStartupParams
			if len(c.Args) > 0 {
				if len(c.Args) < 5 {
					c.Err(fmt.Errorf("MODE ID REPS SPEED TADJ required"))
					return
				}
				vals, err := sh.ByteArgs(&ishell.Context{Args: c.Args[:4]}, 0, "MODE", "ID", "REPS", "SPEED")
				if err != nil {
					c.Err(err)
					return
				}
				adj, err := strconv.ParseInt(c.Args[4], 0, 8)
				if err != nil {
					c.Err(fmt.Errorf("invalid TADJ: %v", err))
					return
				}
				params = ctrlm.StartupParams{
					Mode:      vals[0],
					ScriptID:  vals[1],
					Reps:      vals[2],
					FadeSpeed: vals[3],
					TimeAdj:   int8(adj),
				}
			}
			sh.Send(c, func(d *ctrlm.Device) error { return d.SetStartupParams(params) })
		},
	}

	// OffCmd stops the script and turns the light off.
	OffCmd = ishell.Cmd{
		Name: "off",
		Help: "",
		Func: func(c *ishell.Context) {
			sh.Send(c, (*ctrlm.Device).Off)
		},
	}
)

func init() {
	sh.AddCmds(
		&RGBCmd,
		&FadeCmd,
		&HSBCmd,
		&RandomCmd,
		&ColorCmd,
		&SpeedCmd,
		&TimeAdjCmd,
		&PlayCmd,
		&StopCmd,
		&CtrlMPlayCmd,
		&CtrlMStopCmd,
		&StartupCmd,
		&OffCmd,
	)
}
