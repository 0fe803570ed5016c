package hci

// PacketType is the one-octet HCI packet indicator prefixed to every
// packet exchanged over a shared physical transport (Core Spec 6.0,
// Vol. 4, Part A, §2).
type PacketType uint8

const (
	PacketTypeCommand         PacketType = 0x01
	PacketTypeAclData         PacketType = 0x02
	PacketTypeSynchronousData PacketType = 0x03
	PacketTypeEvent           PacketType = 0x04
	PacketTypeIsoData         PacketType = 0x05
)

func parsePacketType(v uint8) (PacketType, error) {
	switch PacketType(v) {
	case PacketTypeCommand, PacketTypeAclData, PacketTypeSynchronousData, PacketTypeEvent, PacketTypeIsoData:
		return PacketType(v), nil
	default:
		return 0, invalidPacketType(v)
	}
}

// ParsePacketType validates v as one of the five HCI packet indicator
// octets, for transports (such as USB, which has no shared physical
// wire and so carries no indicator octet of its own) that need to
// synthesize or check one outside of ParsePacket.
func ParsePacketType(v uint8) (PacketType, error) {
	return parsePacketType(v)
}

// Packet is a fully framed HCI packet as exchanged with the driver, the
// top-level union of everything this codec understands on the wire.
type Packet struct {
	Kind    PacketKind
	Command Command
	Event   Event
	AclData AclData
}

type PacketKind uint8

const (
	PacketKindCommand PacketKind = iota
	PacketKindEvent
	PacketKindAclData
)

// ParsePacket decodes a single framed HCI packet (type octet plus body)
// from b, returning the packet together with any unconsumed trailing
// bytes, mirroring the remainder-returning style of a parser combinator
// without depending on one.
func ParsePacket(b []byte) (Packet, []byte, error) {
	if len(b) < 1 {
		return Packet{}, nil, newError(KindInvalidPacket, "empty HCI packet")
	}
	packetType, err := parsePacketType(b[0])
	if err != nil {
		return Packet{}, nil, err
	}
	body := b[1:]

	switch packetType {
	case PacketTypeEvent:
		event, rest, err := parseEvent(body)
		if err != nil {
			return Packet{}, nil, err
		}
		return Packet{Kind: PacketKindEvent, Event: event}, rest, nil
	case PacketTypeAclData:
		acl, rest, err := ParseAclData(body)
		if err != nil {
			return Packet{}, nil, err
		}
		return Packet{Kind: PacketKindAclData, AclData: acl}, rest, nil
	case PacketTypeCommand:
		cmd, rest, err := parseCommand(body)
		if err != nil {
			return Packet{}, nil, err
		}
		return Packet{Kind: PacketKindCommand, Command: cmd}, rest, nil
	default:
		return Packet{}, nil, newError(KindInvalidPacket, "synchronous data and ISO data packets are not supported")
	}
}
