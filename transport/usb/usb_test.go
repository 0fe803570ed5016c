package usb

import (
	"context"
	"testing"

	"github.com/ridgeline-systems/blehci/hci"
)

func newBareDriver() *Driver {
	return &Driver{
		events: make(chan readResult, 8),
		done:   make(chan struct{}),
	}
}

func TestDriverReadAccumulatesAcrossShortReads(t *testing.T) {
	d := newBareDriver()
	d.events <- readResult{packetType: hci.PacketTypeEvent, data: []byte{14, 4, 1, 3, 12, 0}}

	var got []byte
	buf := make([]byte, 2)
	for len(got) < 7 {
		n, err := d.Read(context.Background(), buf)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if n == 0 {
			t.Fatal("Read() returned 0 bytes with data still pending")
		}
		got = append(got, buf[:n]...)
	}

	want := []byte{byte(hci.PacketTypeEvent), 14, 4, 1, 3, 12, 0}
	if len(got) != len(want) {
		t.Fatalf("Read() accumulated % x, want % x", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Read() accumulated % x, want % x", got, want)
		}
	}
}

func TestDriverReadPullsNextEventOncePendingDrained(t *testing.T) {
	d := newBareDriver()
	d.events <- readResult{packetType: hci.PacketTypeAclData, data: []byte{0xAB}}
	d.events <- readResult{packetType: hci.PacketTypeEvent, data: []byte{0xCD}}

	buf := make([]byte, 8)
	n, err := d.Read(context.Background(), buf)
	if err != nil || n != 2 || buf[0] != byte(hci.PacketTypeAclData) || buf[1] != 0xAB {
		t.Fatalf("first Read() = (% x, %v), unexpected", buf[:n], err)
	}

	n, err = d.Read(context.Background(), buf)
	if err != nil || n != 2 || buf[0] != byte(hci.PacketTypeEvent) || buf[1] != 0xCD {
		t.Fatalf("second Read() = (% x, %v), unexpected", buf[:n], err)
	}
}

func TestDriverReadPropagatesPumpError(t *testing.T) {
	d := newBareDriver()
	wantErr := context.DeadlineExceeded
	d.events <- readResult{err: wantErr}

	_, err := d.Read(context.Background(), make([]byte, 4))
	if err != wantErr {
		t.Fatalf("Read() error = %v, want %v", err, wantErr)
	}
}

func TestDriverWriteEmptyBuffer(t *testing.T) {
	d := newBareDriver()
	n, err := d.Write(context.Background(), nil)
	if err != nil || n != 0 {
		t.Fatalf("Write(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestDriverWriteInvalidPacketType(t *testing.T) {
	d := newBareDriver()
	if _, err := d.Write(context.Background(), []byte{0xFF, 0x01}); err == nil {
		t.Fatal("expected an error for an unrecognized packet type octet")
	}
}

func TestDriverWriteUnsupportedPacketType(t *testing.T) {
	d := newBareDriver()
	// An Event packet is never something the Host writes.
	if _, err := d.Write(context.Background(), []byte{byte(hci.PacketTypeEvent), 0x0E}); err == nil {
		t.Fatal("expected an error writing an Event-typed packet")
	}
}
