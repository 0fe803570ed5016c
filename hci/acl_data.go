package hci

import "encoding/binary"

// AclDataMaxSize is the largest payload this stack will frame in a single
// ACL Data packet (Core Spec 6.0, Vol. 4, Part E, §5.4.2). The Host and
// Controller negotiate the actual maximum via LE_Read_Buffer_Size; this is
// a conservative static ceiling for the preallocated write buffer.
const AclDataMaxSize = 27

// PacketBoundaryFlag occupies bits 12-13 of the ACL Data packet header.
type PacketBoundaryFlag uint8

const (
	PacketBoundaryFirstNonAutomaticallyFlushable PacketBoundaryFlag = 0b00
	PacketBoundaryContinuingFragment             PacketBoundaryFlag = 0b01
	PacketBoundaryFirstAutomaticallyFlushable    PacketBoundaryFlag = 0b10
)

func parsePacketBoundaryFlag(v uint8) (PacketBoundaryFlag, error) {
	switch PacketBoundaryFlag(v) {
	case PacketBoundaryFirstNonAutomaticallyFlushable, PacketBoundaryContinuingFragment, PacketBoundaryFirstAutomaticallyFlushable:
		return PacketBoundaryFlag(v), nil
	default:
		return 0, newError(KindInvalidPacketBoundaryFlag, "invalid packet boundary flag %#02x", v)
	}
}

// BroadcastFlag occupies bit 14 of the ACL Data packet header.
type BroadcastFlag uint8

const (
	BroadcastPointToPoint BroadcastFlag = 0b00
	BroadcastBrEdr        BroadcastFlag = 0b01
)

func parseBroadcastFlag(v uint8) (BroadcastFlag, error) {
	switch BroadcastFlag(v) {
	case BroadcastPointToPoint, BroadcastBrEdr:
		return BroadcastFlag(v), nil
	default:
		return 0, newError(KindInvalidBroadcastFlag, "invalid broadcast flag %#02x", v)
	}
}

// AclData is an HCI ACL Data packet: a connection handle and flags packed
// into a little-endian 16-bit header, followed by a little-endian 16-bit
// data length and the payload itself.
type AclData struct {
	Handle             ConnectionHandle
	PacketBoundaryFlag PacketBoundaryFlag
	BroadcastFlag      BroadcastFlag
	Data               []byte
}

// NewAclData validates that data fits within AclDataMaxSize before framing
// it as an ACL Data packet.
func NewAclData(handle ConnectionHandle, pb PacketBoundaryFlag, bc BroadcastFlag, data []byte) (AclData, error) {
	if len(data) > AclDataMaxSize {
		return AclData{}, newError(KindDataWillNotFitAclDataPacket, "ACL data payload of %d bytes exceeds maximum of %d", len(data), AclDataMaxSize)
	}
	return AclData{Handle: handle, PacketBoundaryFlag: pb, BroadcastFlag: bc, Data: data}, nil
}

func (a AclData) header() uint16 {
	return a.Handle.Value()&0x0FFF | uint16(a.PacketBoundaryFlag)<<12 | uint16(a.BroadcastFlag)<<14
}

func (a AclData) Encode(buf *Buffer) (int, error) {
	if err := buf.EncodeLEUint16(a.header()); err != nil {
		return 0, err
	}
	if err := buf.EncodeLEUint16(uint16(len(a.Data))); err != nil {
		return 0, err
	}
	if err := buf.CopyFromSlice(a.Data); err != nil {
		return 0, err
	}
	return 4 + len(a.Data), nil
}

func (a AclData) EncodedSize() int { return 4 + len(a.Data) }

// ParseAclData decodes an ACL Data packet body (the four-byte header
// followed by its payload, with no leading packet-type octet), returning
// any trailing unconsumed bytes.
func ParseAclData(b []byte) (AclData, []byte, error) {
	if len(b) < 4 {
		return AclData{}, nil, newError(KindInvalidPacket, "ACL data packet too short: %d bytes", len(b))
	}
	header := binary.LittleEndian.Uint16(b[0:2])
	length := binary.LittleEndian.Uint16(b[2:4])
	if len(b[4:]) < int(length) {
		return AclData{}, nil, newError(KindInvalidPacket, "ACL data length %d exceeds remaining %d bytes", length, len(b[4:]))
	}

	handle, err := NewConnectionHandle(header & 0x0FFF)
	if err != nil {
		return AclData{}, nil, err
	}
	pb, err := parsePacketBoundaryFlag(uint8((header >> 12) & 0b11))
	if err != nil {
		return AclData{}, nil, err
	}
	bc, err := parseBroadcastFlag(uint8((header >> 14) & 0b1))
	if err != nil {
		return AclData{}, nil, err
	}

	data := make([]byte, length)
	copy(data, b[4:4+length])
	acl, err := NewAclData(handle, pb, bc, data)
	if err != nil {
		return AclData{}, nil, err
	}
	return acl, b[4+length:], nil
}
