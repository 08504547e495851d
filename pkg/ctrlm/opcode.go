package ctrlm

import "fmt"

// Opcode is the first byte of a command.
type Opcode byte

// Opcodes
const (
	OpSetAddress        Opcode = 'A'
	OpGetAddress        Opcode = 'a'
	OpGetVersion        Opcode = 'Z'
	OpSetSendAddress    Opcode = '@'
	OpWriteFreeMAddress Opcode = '!'
	OpSetIRFreq         Opcode = '#'
	OpTurnIRLED         Opcode = '%'
	OpSendIRCode        Opcode = '$'
	OpSetFadeSpeed      Opcode = 'f'
	OpSetTimeAdj        Opcode = 't'
	OpFadeToRGB         Opcode = 'c'
	OpFadeToHSB         Opcode = 'h'
	OpSetRGB            Opcode = 'n'
	OpFadeToRandomRGB   Opcode = 'C'
	OpFadeToRandomHSB   Opcode = 'H'
	OpGetRGBColor       Opcode = 'g'
	OpStopScript        Opcode = 'o'
	OpPlayScript        Opcode = 'p'
	OpStopCtrlMScript   Opcode = 'O'
	OpPlayCtrlMScript   Opcode = 'P'
	OpSetStartupParams  Opcode = 'B'
	OpGetInputs         Opcode = 'i'
)

type opcodeInfo struct {
	name    string
	argLen  int
	respLen int
}

var opcodes = map[Opcode]opcodeInfo{
	OpSetAddress:        {"SetAddress", 4, 0},
	OpGetAddress:        {"GetAddress", 0, 1},
	OpGetVersion:        {"GetVersion", 0, 2},
	OpSetSendAddress:    {"SetSendAddress", 3, 0},
	OpWriteFreeMAddress: {"WriteFreeMAddress", 8, 0},
	OpSetIRFreq:         {"SetIRFreq", 3, 0},
	OpTurnIRLED:         {"TurnIRLED", 3, 0},
	OpSendIRCode:        {"SendIRCode", 5, 0},
	OpSetFadeSpeed:      {"SetFadeSpeed", 1, 0},
	OpSetTimeAdj:        {"SetTimeAdj", 1, 0},
	OpFadeToRGB:         {"FadeToRGB", 3, 0},
	OpFadeToHSB:         {"FadeToHSB", 3, 0},
	OpSetRGB:            {"SetRGB", 3, 0},
	OpFadeToRandomRGB:   {"FadeToRandomRGB", 3, 0},
	OpFadeToRandomHSB:   {"FadeToRandomHSB", 3, 0},
	OpGetRGBColor:       {"GetRGBColor", 0, 3},
	OpStopScript:        {"StopScript", 0, 0},
	OpPlayScript:        {"PlayScript", 3, 0},
	OpStopCtrlMScript:   {"StopCtrlMScript", 0, 0},
	OpPlayCtrlMScript:   {"PlayCtrlMScript", 3, 0},
	OpSetStartupParams:  {"SetStartupParams", 5, 0},
	OpGetInputs:         {"GetInputs", 0, InputsLen},
}

// String implements fmt.Stringer.
func (o Opcode) String() string {
	if info, ok := opcodes[o]; ok {
		return info.name
	}
	return fmt.Sprintf("Unknown(0x%02x)", byte(o))
}

// IsValid tells whether the opcode is part of the command set.
func (o Opcode) IsValid() bool {
	_, ok := opcodes[o]
	return ok
}

// ArgLen returns the number of argument bytes following the opcode.
func (o Opcode) ArgLen() int {
	return opcodes[o].argLen
}

// ResponseLen returns the number of bytes to read after the command.
// The input query can also be read as a single byte, see Device.GetInputsByte.
func (o Opcode) ResponseLen() int {
	return opcodes[o].respLen
}
