// Package config loads the demo daemon's runtime configuration from a
// JSON file, the same encoding/json-over-a-file shape
// robolivable-beaves/config uses, extended with the fields this
// stack's transport/cache/telemetry wiring actually needs.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Serial configures the UART transport. Leave USB nil to use this one.
type Serial struct {
	Device string `json:"device"`
	Baud   uint32 `json:"baud"`
	RTSCTS bool   `json:"rtscts"`
}

// USBEndpoints mirrors transport/usb.Endpoints for JSON decoding.
type USBEndpoints struct {
	EventIn uint8 `json:"eventIn"`
	AclIn   uint8 `json:"aclIn"`
	AclOut  uint8 `json:"aclOut"`
}

// USB configures the USB transport. Leave Serial nil to use this one.
type USB struct {
	VendorID  uint16       `json:"vendorId"`
	ProductID uint16       `json:"productId"`
	Interface uint32       `json:"interface"`
	Endpoints USBEndpoints `json:"endpoints"`
}

// Session configures the session engine's timing and buffering.
type Session struct {
	CommandTimeoutMillis int `json:"commandTimeoutMillis"`
	EventQueueCapacity   int `json:"eventQueueCapacity"`
}

// CommandTimeout returns CommandTimeoutMillis as a time.Duration,
// falling back to session.DefaultCommandTimeout's value (2s) when unset.
func (s Session) CommandTimeout() time.Duration {
	if s.CommandTimeoutMillis <= 0 {
		return 2 * time.Second
	}
	return time.Duration(s.CommandTimeoutMillis) * time.Millisecond
}

// Redis configures the devicecache package's peer-seen store.
type Redis struct {
	Addr       string `json:"addr"`
	SeenTTLSec int    `json:"seenTtlSec"`
}

// SeenTTL returns SeenTTLSec as a time.Duration, defaulting to 5 minutes.
func (r Redis) SeenTTL() time.Duration {
	if r.SeenTTLSec <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(r.SeenTTLSec) * time.Second
}

// Influx configures the telemetry package's InfluxDB sink.
type Influx struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// Config is the demo daemon's full runtime configuration.
type Config struct {
	Serial  *Serial `json:"serial,omitempty"`
	USB     *USB    `json:"usb,omitempty"`
	Session Session `json:"session"`
	Redis   Redis   `json:"redis"`
	Influx  Influx  `json:"influx"`
}

// Load reads and decodes the JSON config file at path.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	var cfg Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if cfg.Serial == nil && cfg.USB == nil {
		return nil, fmt.Errorf("config: %s must configure either serial or usb", path)
	}
	return &cfg, nil
}
