package devicecache

import (
	"testing"
	"time"

	"github.com/ridgeline-systems/blehci/hci"
)

func TestCacheKeyNamespacesAddress(t *testing.T) {
	c := &Cache{}
	got := c.key("AA:BB:CC:DD:EE:FF")
	want := "blehci:AA:BB:CC:DD:EE:FF"
	if got != want {
		t.Errorf("key() = %q, want %q", got, want)
	}
}

// ClassifyRandomAddress only touches the in-process memoizer, never the
// Redis client, so it is exercised here without a live server, the same
// way New's Redis client is never dialed until a Seen/MarkSeen call.
func TestClassifyRandomAddress(t *testing.T) {
	c := New("localhost:6379", time.Minute)
	defer c.Close()

	octets := [6]byte{0x53, 0xFB, 0x7D, 0x5D, 0x77, 0xC0} // top bits 11 -> static
	addr, err := c.ClassifyRandomAddress(octets)
	if err != nil {
		t.Fatalf("ClassifyRandomAddress() error = %v", err)
	}
	if addr.Kind != hci.RandomAddressKindStatic {
		t.Fatalf("ClassifyRandomAddress() kind = %v, want static", addr.Kind)
	}

	// A second call for the same address is served from the memoizer.
	again, err := c.ClassifyRandomAddress(octets)
	if err != nil {
		t.Fatalf("ClassifyRandomAddress() second call error = %v", err)
	}
	if again.Octets() != addr.Octets() {
		t.Fatalf("ClassifyRandomAddress() inconsistent result across calls")
	}
}
