package ctrlm

import (
	"fmt"
	"io"
)

// Command is an encoded command frame.
type Command struct {
	Op   Opcode
	Args []byte
}

// Bytes returns encoded bytes for sending.
func (c Command) Bytes() []byte {
	b := make([]byte, len(c.Args)+1)
	b[0] = byte(c.Op)
	copy(b[1:], c.Args)
	return b
}

// WriteTo writes encoded bytes.
func (c Command) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(c.Bytes())
	return int64(n), err
}

// Validate checks the argument layout against the command table.
func (c Command) Validate() error {
	if !c.Op.IsValid() {
		return fmt.Errorf("unknown opcode 0x%02x", byte(c.Op))
	}
	if l := c.Op.ArgLen(); len(c.Args) != l {
		return fmt.Errorf("%s expects %d argument bytes, got %d", c.Op, l, len(c.Args))
	}
	return nil
}

// ParseCommand decodes a frame produced by Command.Bytes.
func ParseCommand(b []byte) (Command, error) {
	if len(b) == 0 {
		return Command{}, fmt.Errorf("empty frame")
	}
	cmd := Command{Op: Opcode(b[0])}
	if len(b) > 1 {
		cmd.Args = append([]byte(nil), b[1:]...)
	}
	return cmd, cmd.Validate()
}

func op(o Opcode, args ...byte) Command {
	return Command{Op: o, Args: args}
}

// freemStartByte begins a FreeM configuration record.
const freemStartByte byte = 0x55

// SetAddress is sent to the general call address.
// The new address is repeated around a fixed 0xd0 0x0d marker.
func SetAddress(newAddr byte) Command {
	return op(OpSetAddress, newAddr, 0xd0, 0x0d, newAddr)
}

// GetAddress queries the address the device answers to.
func GetAddress() Command { return op(OpGetAddress) }

// GetVersion queries the firmware version.
func GetVersion() Command { return op(OpGetVersion) }

// SetSendAddress sets the FreeM and BlinkM addresses the device forwards to.
func SetSendAddress(freemAddr, blinkmAddr byte) Command {
	return op(OpSetSendAddress, freemAddr, blinkmAddr, 0)
}

// WriteFreeMAddress writes a FreeM record assigning a new FreeM address.
// The last byte is the checksum of the 7 record bytes before it.
func WriteFreeMAddress(freemAddr byte) Command {
	record := []byte{freemStartByte, freemAddr, 0xff, 0xff, 0, 0, 0}
	var sum byte
	for _, b := range record {
		sum += b
	}
	return op(OpWriteFreeMAddress, append(record, sum)...)
}

// SetIRFreq sets IR carrier frequency (big-endian) and duty cycle percent.
func SetIRFreq(freq uint16, dutyPercent byte) Command {
	return op(OpSetIRFreq, byte(freq>>8), byte(freq), dutyPercent)
}

// TurnIRLED switches the IR LED.
func TurnIRLED(on bool) Command {
	var v byte
	if on {
		v = 1
	}
	return op(OpTurnIRLED, v, 0, 0)
}

// SendIRCode sends an IR code, most significant byte first.
func SendIRCode(codeType byte, code uint32) Command {
	return op(OpSendIRCode, codeType, byte(code>>24), byte(code>>16), byte(code>>8), byte(code))
}

// SetFadeSpeed sets the fading speed, 255 is instantaneous.
func SetFadeSpeed(speed byte) Command { return op(OpSetFadeSpeed, speed) }

// SetTimeAdj adds adj to all durations of light scripts, 0 turns it off.
func SetTimeAdj(adj int8) Command { return op(OpSetTimeAdj, byte(adj)) }

// FadeToRGB fades to an RGB color.
func FadeToRGB(c RGB) Command { return op(OpFadeToRGB, c.R, c.G, c.B) }

// FadeToHSB fades to an HSB color.
func FadeToHSB(c HSB) Command { return op(OpFadeToHSB, c.H, c.S, c.B) }

// SetRGB sets an RGB color immediately.
func SetRGB(c RGB) Command { return op(OpSetRGB, c.R, c.G, c.B) }

// FadeToRandomRGB fades to a random color, each channel within the given range.
func FadeToRandomRGB(c RGB) Command { return op(OpFadeToRandomRGB, c.R, c.G, c.B) }

// FadeToRandomHSB fades to a random HSB color within the given ranges.
func FadeToRandomHSB(c HSB) Command { return op(OpFadeToRandomHSB, c.H, c.S, c.B) }

// GetRGBColor queries the current color.
func GetRGBColor() Command { return op(OpGetRGBColor) }

// StopScript stops the light script.
func StopScript() Command { return op(OpStopScript) }

// PlayScript plays light script id, reps times (0 forever), from pos.
func PlayScript(id, reps, pos byte) Command { return op(OpPlayScript, id, reps, pos) }

// StopCtrlMScript stops the CtrlM script.
func StopCtrlMScript() Command { return op(OpStopCtrlMScript) }

// PlayCtrlMScript plays the CtrlM script. There is only script 0.
func PlayCtrlMScript(reps, pos byte) Command { return op(OpPlayCtrlMScript, 0, reps, pos) }

// SetStartupParams sets what the device does on power up.
func SetStartupParams(p StartupParams) Command {
	return op(OpSetStartupParams, p.Mode, p.ScriptID, p.Reps, p.FadeSpeed, byte(p.TimeAdj))
}

// GetInputs queries the digital inputs.
func GetInputs() Command { return op(OpGetInputs) }
