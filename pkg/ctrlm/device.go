package ctrlm

import (
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/ctrlm.go/pkg/bus"
)

// DefaultAddr is the factory address.
const DefaultAddr byte = 0x09

// SetAddressDelay is the time the device needs to store a new address.
const SetAddressDelay = 50 * time.Millisecond

// OffFadeSpeed is the fade speed used by Off.
const OffFadeSpeed byte = 10

var sleep = time.Sleep

// Device is a CtrlM at an address on a bus.
type Device struct {
	Bus  bus.Bus
	Addr byte
}

// New creates a Device.
func New(b bus.Bus, addr byte) *Device {
	return &Device{Bus: b, Addr: addr}
}

// At returns a Device at another address on the same bus.
func (d *Device) At(addr byte) *Device {
	return &Device{Bus: d.Bus, Addr: addr}
}

// Send writes a command.
func (d *Device) Send(cmd Command) error {
	if glog.V(2) {
		glog.Infof("TX 0x%02x %s % x", d.Addr, cmd.Op, cmd.Args)
	}
	return d.Bus.Write(d.Addr, cmd.Bytes())
}

// Query writes a command and reads n bytes back.
// Any failure, including the write, is reported as ErrNoResponse.
func (d *Device) Query(cmd Command, n int) ([]byte, error) {
	if err := d.Send(cmd); err != nil {
		glog.V(2).Infof("TX 0x%02x %s: %v", d.Addr, cmd.Op, err)
		return nil, ErrNoResponse
	}
	return d.receive(n)
}

// receive reads exactly n bytes in one attempt.
func (d *Device) receive(n int) ([]byte, error) {
	buf := make([]byte, n)
	l, err := d.Bus.Read(d.Addr, buf)
	if err != nil || l < n {
		glog.V(2).Infof("RX 0x%02x %d/%d bytes: %v", d.Addr, l, n, err)
		return nil, ErrNoResponse
	}
	return buf, nil
}

// SetAddress assigns a new address to the device listening on the bus.
// It is broadcast with a general call, so only one device should be attached.
// The Device is retargeted to newAddr afterwards.
func (d *Device) SetAddress(newAddr byte) error {
	if err := d.Bus.Write(bus.GeneralCall, SetAddress(newAddr).Bytes()); err != nil {
		return err
	}
	sleep(SetAddressDelay)
	d.Addr = newAddr
	return nil
}

// GetAddress reads the address the device believes it has.
func (d *Device) GetAddress() (byte, error) {
	b, err := d.Query(GetAddress(), 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// CheckAddress verifies the device answers and reports the expected address.
func (d *Device) CheckAddress() error {
	addr, err := d.GetAddress()
	if err != nil {
		return err
	}
	if addr != d.Addr {
		return &AddressMismatchError{Want: d.Addr, Got: addr}
	}
	return nil
}

// GetVersion reads the firmware version.
func (d *Device) GetVersion() (Version, error) {
	b, err := d.Query(GetVersion(), OpGetVersion.ResponseLen())
	if err != nil {
		return 0, err
	}
	return decodeVersion(b), nil
}

// SetSendAddress sets the FreeM and BlinkM addresses to send to.
func (d *Device) SetSendAddress(freemAddr, blinkmAddr byte) error {
	return d.Send(SetSendAddress(freemAddr, blinkmAddr))
}

// WriteFreeMAddress programs a new FreeM address.
func (d *Device) WriteFreeMAddress(freemAddr byte) error {
	return d.Send(WriteFreeMAddress(freemAddr))
}

// SetIRFreq sets the IR carrier.
func (d *Device) SetIRFreq(freq uint16, dutyPercent byte) error {
	return d.Send(SetIRFreq(freq, dutyPercent))
}

// TurnIRLED switches the IR LED.
func (d *Device) TurnIRLED(on bool) error {
	return d.Send(TurnIRLED(on))
}

// SendIRCode transmits an IR code.
func (d *Device) SendIRCode(codeType byte, code uint32) error {
	return d.Send(SendIRCode(codeType, code))
}

// SetFadeSpeed sets the fading speed.
func (d *Device) SetFadeSpeed(speed byte) error {
	return d.Send(SetFadeSpeed(speed))
}

// SetTimeAdj sets the script time adjustment.
func (d *Device) SetTimeAdj(adj int8) error {
	return d.Send(SetTimeAdj(adj))
}

// FadeToRGB fades to an RGB color.
func (d *Device) FadeToRGB(c RGB) error {
	return d.Send(FadeToRGB(c))
}

// FadeToHSB fades to an HSB color.
func (d *Device) FadeToHSB(c HSB) error {
	return d.Send(FadeToHSB(c))
}

// SetRGB sets a color immediately.
func (d *Device) SetRGB(c RGB) error {
	return d.Send(SetRGB(c))
}

// FadeToRandomRGB fades to a random RGB color.
func (d *Device) FadeToRandomRGB(rnd RGB) error {
	return d.Send(FadeToRandomRGB(rnd))
}

// FadeToRandomHSB fades to a random HSB color.
func (d *Device) FadeToRandomHSB(rnd HSB) error {
	return d.Send(FadeToRandomHSB(rnd))
}

// GetRGBColor reads the current color.
func (d *Device) GetRGBColor() (RGB, error) {
	b, err := d.Query(GetRGBColor(), OpGetRGBColor.ResponseLen())
	if err != nil {
		return RGB{}, err
	}
	return decodeRGB(b), nil
}

// StopScript stops the light script.
func (d *Device) StopScript() error {
	return d.Send(StopScript())
}

// Off stops the script and turns the light off.
// All three commands are sent regardless of failures; the first error is returned.
func (d *Device) Off() error {
	var first error
	for _, cmd := range []Command{StopScript(), SetFadeSpeed(OffFadeSpeed), SetRGB(RGB{})} {
		if err := d.Send(cmd); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// PlayScript plays a light script.
func (d *Device) PlayScript(id, reps, pos byte) error {
	return d.Send(PlayScript(id, reps, pos))
}

// StopCtrlMScript stops the CtrlM script.
func (d *Device) StopCtrlMScript() error {
	return d.Send(StopCtrlMScript())
}

// PlayCtrlMScript plays the CtrlM script.
func (d *Device) PlayCtrlMScript(reps, pos byte) error {
	return d.Send(PlayCtrlMScript(reps, pos))
}

// SetStartupParams sets power-up behavior.
func (d *Device) SetStartupParams(p StartupParams) error {
	return d.Send(SetStartupParams(p))
}

// GetInputsByte reads the first byte of the digital inputs.
func (d *Device) GetInputsByte() (byte, error) {
	b, err := d.Query(GetInputs(), 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// GetInputs reads all digital inputs. A short read is reported as ErrNoResponse.
func (d *Device) GetInputs() (Inputs, error) {
	b, err := d.Query(GetInputs(), InputsLen)
	if err != nil {
		return Inputs{}, err
	}
	return decodeInputs(b), nil
}
