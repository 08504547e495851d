package main

//go-build: CGO_ENABLED=0

import (
	"errors"
	"flag"
	"log"

	"github.com/golang/glog"

	"github.com/robotalks/ctrlm.go/pkg/bridge"
	"github.com/robotalks/ctrlm.go/pkg/broker"
	"github.com/robotalks/ctrlm.go/pkg/env"
	fx "github.com/robotalks/ctrlm.go/pkg/framework"
	"github.com/robotalks/ctrlm.go/pkg/power"
)

var (
	powerUp  bool
	powerOff bool

	brokerAddr     string
	brokerUser     string
	brokerPassword string
)

func init() {
	env.SetupFlags()
	bridge.SetupFlags()
	flag.BoolVar(&powerUp, "power-up", powerUp, "Power the device up before serving.")
	flag.BoolVar(&powerOff, "power-off", powerOff, "Power the device off on exit.")
	flag.StringVar(&brokerAddr, "broker", brokerAddr, "Run an embedded MQTT broker on this address, e.g. :1883.")
	flag.StringVar(&brokerUser, "broker-user", brokerUser, "Username required by the embedded broker.")
	flag.StringVar(&brokerPassword, "broker-password", brokerPassword, "Password required by the embedded broker.")
}

var errNoPowerPins = errors.New("-power-up and -power-off require -pwr-pin and -gnd-pin")

func checkPowerFlags(supply *power.Supply, up, off bool) error {
	if supply == nil && (up || off) {
		return errNoPowerPins
	}
	return nil
}

func main() {
	flag.Parse()

	conf := env.NewConfig()
	ref, err := env.ParseBusURL(conf.BusURL)
	if err != nil {
		log.Fatalln(err)
	}
	if ref.Remote {
		log.Fatalf("a local bus is required: %s", conf.BusURL)
	}
	supply, err := conf.NewSupply()
	if err != nil {
		log.Fatalln(err)
	}
	if err := checkPowerFlags(supply, powerUp, powerOff); err != nil {
		log.Fatalln(err)
	}
	if powerUp {
		if err := supply.StartAndSettle(); err != nil {
			log.Fatalf("power up: %v", err)
		}
		glog.Info("device powered up")
	}

	b, closer, err := conf.OpenBus()
	if err != nil {
		log.Fatalln(err)
	}
	defer closer.Close()
	glog.Infof("serving bus %s", b)

	if brokerAddr != "" {
		brk := broker.New(brokerAddr)
		brk.Username, brk.Password = brokerUser, brokerPassword
		if err := brk.Start(); err != nil {
			log.Fatalln(err)
		}
		defer brk.Close()
	}

	br, err := bridge.NewConfig().NewBridge(b)
	if err != nil {
		log.Fatalln(err)
	}
	loop := fx.NewLoop().Add(br)
	err = fx.NewRunner().HandleSignals().Go(loop).Wait()

	if powerOff {
		if e := supply.Stop(); e != nil {
			glog.Warningf("power off: %v", e)
		}
	}
	if err != nil {
		glog.Errorf("bridge stopped: %v", err)
	}
	glog.Flush()
}
