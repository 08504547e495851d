package ctrlm

import "fmt"

// RGB is a color in RGB space.
type RGB struct {
	R, G, B byte
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseRGB parses "#rrggbb" or "rrggbb".
func ParseRGB(s string) (c RGB, err error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return c, fmt.Errorf("invalid color %q", s)
	}
	_, err = fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B)
	return
}

// HSB is a color in hue/saturation/brightness space.
type HSB struct {
	H, S, B byte
}

// Version is the firmware version: major in the high byte, minor in the low.
type Version uint16

// Major returns the major version.
func (v Version) Major() byte { return byte(v >> 8) }

// Minor returns the minor version.
func (v Version) Minor() byte { return byte(v) }

// String implements fmt.Stringer.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}

// InputsLen is the size of the inputs response.
const InputsLen = 4

// Inputs is the state of digital inputs.
type Inputs [InputsLen]byte

// Startup modes.
const (
	StartupModeNone       byte = 0x00
	StartupModePlayScript byte = 0x01
)

// StartupParams describe power-up behavior.
type StartupParams struct {
	Mode      byte
	ScriptID  byte
	Reps      byte
	FadeSpeed byte
	TimeAdj   int8
}

// DefaultStartupParams are the factory settings: play script 0 forever.
var DefaultStartupParams = StartupParams{
	Mode:      StartupModePlayScript,
	FadeSpeed: 0x08,
}

func decodeVersion(b []byte) Version {
	return Version(uint16(b[0])<<8 | uint16(b[1]))
}

func decodeRGB(b []byte) RGB {
	return RGB{R: b[0], G: b[1], B: b[2]}
}

func decodeInputs(b []byte) (in Inputs) {
	copy(in[:], b)
	return
}
