package bridge

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"

	"github.com/robotalks/ctrlm.go/pkg/bus"
	"github.com/robotalks/ctrlm.go/pkg/comm/mqtt"
)

// Config defines the configurations of a bridge.
type Config struct {
	// ID names the bridge, topics are <prefix><ID>/...
	ID string
	// MQTTBrokerURL specifies the MQTT broker to use.
	// e.g. mqtt://host:port/topic-prefix
	MQTTBrokerURL string
	// PollAddrs is a comma separated list of addresses to poll inputs from.
	PollAddrs    string
	PollInterval time.Duration
	Description  string
}

var defaultConfig = Config{
	MQTTBrokerURL: "mqtt://localhost:1883/ctrlm/",
	PollInterval:  100 * time.Millisecond,
	Description:   "CtrlM bridge",
}

func init() {
	if val := os.Getenv("CTRLM_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	if val := os.Getenv("CTRLM_BRIDGE_ID"); val != "" {
		defaultConfig.ID = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.ID, "id", defaultConfig.ID, "Bridge ID, defaults to machine ID.")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL.")
	flag.StringVar(&defaultConfig.PollAddrs, "poll", defaultConfig.PollAddrs, "Addresses to poll inputs from, comma separated.")
	flag.DurationVar(&defaultConfig.PollInterval, "poll-interval", defaultConfig.PollInterval, "Input polling interval.")
	flag.StringVar(&defaultConfig.Description, "desc", defaultConfig.Description, "Description published in meta.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// ParseAddrs parses a comma separated address list, e.g. "9,0x0a".
func ParseAddrs(s string) ([]byte, error) {
	var addrs []byte
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item == "" {
			continue
		}
		v, err := strconv.ParseUint(item, 0, 7)
		if err != nil {
			return nil, fmt.Errorf("invalid address %q: %v", item, err)
		}
		addrs = append(addrs, byte(v))
	}
	return addrs, nil
}

func machineID() string {
	id, err := machineid.ID()
	if err == nil {
		return id
	}
	glog.Warningf("machine id: %v", err)
	host, _ := os.Hostname()
	return host
}

// NewBridge creates a Bridge serving b.
func (c *Config) NewBridge(b bus.Bus) (*Bridge, error) {
	id := c.ID
	if id == "" {
		id = machineID()
	}
	if id == "" {
		return nil, fmt.Errorf("bridge id must be specified")
	}
	addrs, err := ParseAddrs(c.PollAddrs)
	if err != nil {
		return nil, err
	}
	opts, topicPrefix, err := mqtt.ClientOptionsFromURL(c.MQTTBrokerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid MQTT URL: %v", err)
	}
	opts.SetBinaryWill(topicPrefix+mqtt.Topic(id, mqtt.TopicMeta), OfflineMeta(), 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("ctrlm:" + id)
	}
	br := New(id, b, mqtt.NewQueue(opts, topicPrefix))
	br.PollAddrs = addrs
	br.PollInterval = c.PollInterval
	br.Meta = Meta{Description: c.Description}
	if len(addrs) > 0 {
		br.Meta.Labels = map[string]string{"poll": c.PollAddrs}
	}
	return br, nil
}
