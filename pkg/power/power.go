// Package power drives a device supply from a pair of GPIO pins.
package power

import "time"

// Pin is a GPIO used for power.
type Pin interface {
	// Out drives the pin as an output.
	Out(high bool) error
	// Release puts the pin back into high-impedance input.
	Release() error
}

// DefaultSettle is the wait after powering up before the device is usable.
const DefaultSettle = 100 * time.Millisecond

var sleep = time.Sleep

// Supply powers a device plugged directly into two GPIO pins.
type Supply struct {
	Pwr    Pin
	Gnd    Pin
	Settle time.Duration
}

// NewSupply creates a Supply with default settle time.
func NewSupply(pwr, gnd Pin) *Supply {
	return &Supply{Pwr: pwr, Gnd: gnd, Settle: DefaultSettle}
}

// Start drives gnd low and pwr high.
func (s *Supply) Start() error {
	if err := s.Gnd.Out(false); err != nil {
		return err
	}
	return s.Pwr.Out(true)
}

// Stop releases both pins.
func (s *Supply) Stop() error {
	err := s.Pwr.Release()
	if e := s.Gnd.Release(); err == nil {
		err = e
	}
	return err
}

// StartAndSettle starts the supply and waits for the device to come up.
func (s *Supply) StartAndSettle() error {
	if err := s.Start(); err != nil {
		return err
	}
	settle := s.Settle
	if settle == 0 {
		settle = DefaultSettle
	}
	sleep(settle)
	return nil
}
