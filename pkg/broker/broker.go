// Package broker runs an embedded MQTT broker for bridges without one nearby.
package broker

import (
	"fmt"

	"github.com/golang/glog"
	mochi "github.com/mochi-mqtt/server/v2"
	"github.com/mochi-mqtt/server/v2/hooks/auth"
	"github.com/mochi-mqtt/server/v2/listeners"
)

// Broker is an embedded MQTT broker.
type Broker struct {
	// Addr is the TCP listen address, e.g. ":1883".
	Addr string
	// Username and Password restrict access when Username is set.
	Username string
	Password string

	server *mochi.Server
}

// New creates a Broker listening on addr.
func New(addr string) *Broker {
	return &Broker{Addr: addr}
}

// Start starts serving in the background.
func (b *Broker) Start() error {
	server := mochi.New(nil)
	var err error
	if b.Username == "" {
		err = server.AddHook(new(auth.AllowHook), nil)
	} else {
		err = server.AddHook(new(auth.Hook), &auth.Options{
			Ledger: &auth.Ledger{
				Auth: auth.AuthRules{
					{Remote: "127.0.0.1:*", Allow: true},
					{Username: auth.RString(b.Username), Password: auth.RString(b.Password), Allow: true},
				},
			},
		})
	}
	if err != nil {
		return fmt.Errorf("broker auth: %v", err)
	}
	if err = server.AddListener(listeners.NewTCP(listeners.Config{ID: "tcp", Address: b.Addr})); err != nil {
		return fmt.Errorf("broker listen %s: %v", b.Addr, err)
	}
	go func() {
		if err := server.Serve(); err != nil {
			glog.Errorf("broker serve: %v", err)
		}
	}()
	glog.Infof("broker listening on %s", b.Addr)
	b.server = server
	return nil
}

// Close stops the broker.
func (b *Broker) Close() error {
	if b.server == nil {
		return nil
	}
	err := b.server.Close()
	b.server = nil
	return err
}
