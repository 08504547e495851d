// Package sh provides the interactive shell over a CtrlM device.
package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/abiosoft/ishell"
	"github.com/abiosoft/readline"
	"github.com/golang/glog"

	"github.com/robotalks/ctrlm.go/pkg/bus"
	"github.com/robotalks/ctrlm.go/pkg/ctrlm"
	"github.com/robotalks/ctrlm.go/pkg/env"
	"github.com/robotalks/ctrlm.go/pkg/power"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell  *ishell.Shell
	Config *env.Config
	Bus    bus.Bus
	Device *ctrlm.Device
	Supply *power.Supply

	closer io.Closer
}

const shellKey = "$shell"

var (
	// flags

	evalOnly   bool
	outputJSON bool

	commands []*ishell.Cmd
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *env.Config) *Shell {
	return NewWithConfig(conf, &readline.Config{})
}

// NewWithConfig creates a new shell with custom readline config.
func NewWithConfig(conf *env.Config, rl *readline.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.NewWithConfig(rl),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.updatePrompt()
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// WithBus uses an opened bus instead of opening one from Config.
func (s *Shell) WithBus(b bus.Bus) *Shell {
	s.Bus = b
	s.Device = ctrlm.New(b, byte(s.Config.Addr))
	s.updatePrompt()
	return s
}

// Open opens the bus and the device on first use.
func (s *Shell) Open() error {
	if s.Bus != nil {
		return nil
	}
	b, closer, err := s.Config.OpenBus()
	if err != nil {
		return err
	}
	dev, err := s.Config.NewDevice(b)
	if err != nil {
		closer.Close()
		return err
	}
	s.Bus, s.Device, s.closer = b, dev, closer
	s.updatePrompt()
	return nil
}

// PowerSupply opens the power supply on first use.
func (s *Shell) PowerSupply() (*power.Supply, error) {
	if s.Supply != nil {
		return s.Supply, nil
	}
	supply, err := s.Config.NewSupply()
	if err != nil {
		return nil, err
	}
	if supply == nil {
		return nil, fmt.Errorf("power pins not configured")
	}
	s.Supply = supply
	return supply, nil
}

// Use switches to the device at addr.
func (s *Shell) Use(addr byte) {
	s.Config.Addr = uint(addr)
	if s.Device != nil {
		s.Device = s.Device.At(addr)
	}
	s.updatePrompt()
}

// Close releases the bus.
func (s *Shell) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.Bus, s.Device, s.closer = nil, nil, nil
	return err
}

func (s *Shell) updatePrompt() {
	s.Shell.SetPrompt(fmt.Sprintf("[0x%02x] > ", s.Config.Addr))
}

// Do opens the device, runs fn and prints the result.
func Do(c *ishell.Context, fn func(*ctrlm.Device) (interface{}, error)) error {
	s := ShellFrom(c)
	if err := s.Open(); err != nil {
		c.Err(err)
		return err
	}
	res, err := fn(s.Device)
	if err != nil {
		c.Err(err)
		return err
	}
	return Print(c, res)
}

// Send is Do for commands without a result.
func Send(c *ishell.Context, fn func(*ctrlm.Device) error) error {
	return Do(c, func(d *ctrlm.Device) (interface{}, error) {
		return nil, fn(d)
	})
}

// Print prints a result as JSON or text. A nil result prints OK.
func Print(c *ishell.Context, res interface{}) error {
	s := ShellFrom(c)
	if s.OutputJSON {
		if res == nil {
			res = struct{}{}
		}
		out, err := json.Marshal(res)
		if err != nil {
			c.Err(err)
			return err
		}
		c.Println(string(out))
		return nil
	}
	if res == nil {
		c.Println("OK")
		return nil
	}
	c.Println(res)
	return nil
}

// ParseByte parses a byte in decimal or 0x hex.
func ParseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	return byte(v), err
}

// ByteArgs parses the args named by names into bytes.
// All names are required unless optional is set, in which case the
// missing ones are left as zero.
func ByteArgs(c *ishell.Context, optional int, names ...string) ([]byte, error) {
	if len(c.Args) < len(names)-optional {
		return nil, fmt.Errorf("%s required", names[len(c.Args)])
	}
	vals := make([]byte, len(names))
	for i, arg := range c.Args {
		if i >= len(names) {
			break
		}
		v, err := ParseByte(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %v", names[i], err)
		}
		vals[i] = v
	}
	return vals, nil
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	s := New(env.NewConfig())
	s.Run(flag.Args()...)
	if err := s.Close(); err != nil {
		glog.Warningf("close bus: %v", err)
	}
}
