package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config fixture: %v", err)
	}
	return path
}

func TestLoadSerialConfig(t *testing.T) {
	path := writeConfig(t, `{
		"serial": {"device": "/dev/ttyACM0", "baud": 115200, "rtscts": true},
		"redis": {"addr": "localhost:6379"},
		"influx": {"url": "http://localhost:8086", "org": "o", "bucket": "b"}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Serial == nil || cfg.Serial.Device != "/dev/ttyACM0" || cfg.Serial.Baud != 115200 || !cfg.Serial.RTSCTS {
		t.Fatalf("unexpected serial config: %+v", cfg.Serial)
	}
	if cfg.USB != nil {
		t.Fatalf("expected no usb config, got %+v", cfg.USB)
	}
}

func TestLoadUSBConfig(t *testing.T) {
	path := writeConfig(t, `{
		"usb": {"vendorId": 4660, "productId": 22136, "interface": 0,
			"endpoints": {"eventIn": 129, "aclIn": 130, "aclOut": 2}}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.USB == nil || cfg.USB.VendorID != 4660 || cfg.USB.Endpoints.EventIn != 129 {
		t.Fatalf("unexpected usb config: %+v", cfg.USB)
	}
}

func TestLoadRejectsNeitherTransport(t *testing.T) {
	path := writeConfig(t, `{"redis": {"addr": "localhost:6379"}}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error when neither serial nor usb is configured")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	path := writeConfig(t, `{not valid json`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}

func TestSessionCommandTimeoutDefault(t *testing.T) {
	var s Session
	if got, want := s.CommandTimeout(), 2*time.Second; got != want {
		t.Errorf("CommandTimeout() = %v, want %v", got, want)
	}
	s.CommandTimeoutMillis = 500
	if got, want := s.CommandTimeout(), 500*time.Millisecond; got != want {
		t.Errorf("CommandTimeout() = %v, want %v", got, want)
	}
}

func TestRedisSeenTTLDefault(t *testing.T) {
	var r Redis
	if got, want := r.SeenTTL(), 5*time.Minute; got != want {
		t.Errorf("SeenTTL() = %v, want %v", got, want)
	}
	r.SeenTTLSec = 30
	if got, want := r.SeenTTL(), 30*time.Second; got != want {
		t.Errorf("SeenTTL() = %v, want %v", got, want)
	}
}
