// Package usb implements session.Driver over a USB Bluetooth Controller
// using the Bluetooth USB Transport Layer (Core Spec 6.0, Vol. 4, Part
// B): HCI commands go out the default control pipe, HCI events arrive
// on the interrupt IN endpoint, and ACL data travels the bulk IN/OUT
// pair. It is built on github.com/daedaluz/gousb, the same usbfs-backed
// library the rest of this stack's USB transport work is grounded on.
package usb

import (
	"context"
	"fmt"

	gousb "github.com/daedaluz/gousb"

	"github.com/ridgeline-systems/blehci/hci"
)

// Endpoints identifies the USB endpoint addresses a Bluetooth
// Controller's HCI interface exposes. These are fixed by the Bluetooth
// USB Transport Layer convention (interrupt IN for events, bulk IN/OUT
// for ACL data); a caller normally reads them off the Controller's
// interface descriptor rather than hardcoding them, but the common
// values are 0x81, 0x82, and 0x02.
type Endpoints struct {
	EventIn uint8
	AclIn   uint8
	AclOut  uint8
}

// Driver is a session.Driver backed by a USB Bluetooth Controller. A
// single Driver multiplexes two USB pipes (interrupt IN for events,
// bulk IN for ACL data) behind the one Read method session.Session
// expects, since the session engine's stream framing was designed
// around a single ordered byte source.
type Driver struct {
	dev *gousb.Device
	ep  Endpoints

	events chan readResult
	done   chan struct{}

	pending []byte
}

type readResult struct {
	packetType hci.PacketType
	data       []byte
	err        error
}

// Open finds the first USB device matching vendorID/productID, opens
// it, detaches any kernel driver bound to the HCI interface, and
// starts the background readers that feed Read.
func Open(vendorID, productID uint16, iface uint32, ep Endpoints) (*Driver, error) {
	devices, err := gousb.FindDevices(func(d *gousb.Device) bool {
		desc := d.GetDeviceDescriptor()
		return desc.IDVendor == vendorID && desc.IDProduct == productID
	})
	if err != nil {
		return nil, fmt.Errorf("enumerate usb devices: %w", err)
	}
	if len(devices) == 0 {
		return nil, fmt.Errorf("no usb device matching vid=%04x pid=%04x", vendorID, productID)
	}
	dev := devices[0]

	if err := dev.Open(); err != nil {
		return nil, fmt.Errorf("open usb device: %w", err)
	}
	if driverName, err := dev.GetDriver(iface); err == nil && driverName != "" {
		if err := dev.DetachKernel(iface); err != nil {
			dev.Close()
			return nil, fmt.Errorf("detach kernel driver %q from interface %d: %w", driverName, iface, err)
		}
	}

	d := &Driver{
		dev:    dev,
		ep:     ep,
		events: make(chan readResult, 8),
		done:   make(chan struct{}),
	}
	go d.pump(ep.EventIn, hci.PacketTypeEvent, 64)
	go d.pump(ep.AclIn, hci.PacketTypeAclData, 1024)
	return d, nil
}

// pump blocks reading maxLen bytes at a time off endpoint, tagging each
// successful read with packetType and forwarding it to the Read side.
// gousb.Device.Bulk has no context support, so pump exits only when the
// Driver is closed; the bulk read itself then fails and pump returns.
func (d *Driver) pump(endpoint uint8, packetType hci.PacketType, maxLen int) {
	buf := make([]byte, maxLen)
	for {
		n, err := d.dev.Bulk(endpoint, buf)
		select {
		case <-d.done:
			return
		default:
		}
		if err != nil {
			select {
			case d.events <- readResult{err: err}:
			case <-d.done:
			}
			return
		}
		chunk := make([]byte, n)
		copy(chunk, buf[:n])
		select {
		case d.events <- readResult{packetType: packetType, data: chunk}:
		case <-d.done:
			return
		}
	}
}

// Write sends buf, which must be a fully framed HCI packet (packet-type
// octet followed by its body). Command packets go out the default
// control pipe per the Bluetooth USB Transport Layer; ACL Data packets
// go out the bulk OUT endpoint.
func (d *Driver) Write(ctx context.Context, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	packetType, err := hci.ParsePacketType(buf[0])
	if err != nil {
		return 0, err
	}
	body := buf[1:]
	switch packetType {
	case hci.PacketTypeCommand:
		n, err := d.dev.Ctrl(gousb.RequestDirectionOut|gousb.RequestTypeClass|gousb.RequestRecipientInterface, 0x00, 0, 0, body)
		if err != nil {
			return 0, err
		}
		return n + 1, nil
	case hci.PacketTypeAclData:
		n, err := d.dev.Bulk(d.ep.AclOut, body)
		if err != nil {
			return 0, err
		}
		return n + 1, nil
	default:
		return 0, fmt.Errorf("usb transport cannot send packet type %v", packetType)
	}
}

// Read returns the next slice of a framed HCI packet: the synthesized
// packet-type octet followed by whichever endpoint produced data
// first, event or ACL data. session.Session reads one framed packet a
// few bytes at a time (header, then declared body length), so Read
// holds back whatever doesn't fit in buf and serves it on the next
// call rather than dropping it.
func (d *Driver) Read(ctx context.Context, buf []byte) (int, error) {
	if len(d.pending) == 0 {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case res := <-d.events:
			if res.err != nil {
				return 0, res.err
			}
			d.pending = append([]byte{byte(res.packetType)}, res.data...)
		}
	}
	n := copy(buf, d.pending)
	d.pending = d.pending[n:]
	return n, nil
}

// Close stops the background readers and releases the USB device.
func (d *Driver) Close() error {
	close(d.done)
	return d.dev.Close()
}
