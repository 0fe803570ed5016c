package hci

import (
	"fmt"
	"strconv"
	"strings"
)

// DeviceAddress is a Public or Random device address identifying a
// Bluetooth device (Core Spec 6.0, Vol. 6, Part B, §1.3). Like Command and
// Event, it is represented as a Kind-discriminated struct rather than an
// interface: callers switch on Kind instead of type-asserting.
type DeviceAddress struct {
	Kind   AddressKind
	Public PublicDeviceAddress
	Random RandomAddress
}

type AddressKind uint8

const (
	AddressKindPublic AddressKind = iota
	AddressKindRandom
)

func NewPublicAddress(a PublicDeviceAddress) DeviceAddress {
	return DeviceAddress{Kind: AddressKindPublic, Public: a}
}

func NewRandomAddress(a RandomAddress) DeviceAddress {
	return DeviceAddress{Kind: AddressKindRandom, Random: a}
}

// Octets returns the 6 raw address octets, stored little-endian (the
// octet carrying the random address type bits is Octets()[5]).
func (a DeviceAddress) Octets() [6]byte {
	switch a.Kind {
	case AddressKindRandom:
		return a.Random.Octets()
	default:
		return a.Public.octets
	}
}

func (a DeviceAddress) String() string {
	return formatAddressOctets(a.Octets())
}

func (a DeviceAddress) Encode(buf *Buffer) (int, error) {
	octets := a.Octets()
	if err := buf.CopyFromSlice(octets[:]); err != nil {
		return 0, err
	}
	return 6, nil
}

func (a DeviceAddress) EncodedSize() int { return 6 }

// PublicDeviceAddress is an IEEE 802-2001 assigned address; any 6-octet
// value is acceptable.
type PublicDeviceAddress struct {
	octets [6]byte
}

func NewPublicDeviceAddress(octets [6]byte) PublicDeviceAddress {
	return PublicDeviceAddress{octets: octets}
}

func (a PublicDeviceAddress) Octets() [6]byte { return a.octets }
func (a PublicDeviceAddress) String() string  { return formatAddressOctets(a.octets) }

func (a PublicDeviceAddress) Encode(buf *Buffer) (int, error) {
	if err := buf.CopyFromSlice(a.octets[:]); err != nil {
		return 0, err
	}
	return 6, nil
}

func (a PublicDeviceAddress) EncodedSize() int { return 6 }

func ParsePublicDeviceAddress(s string) (PublicDeviceAddress, error) {
	octets, err := parseAddressString(s)
	if err != nil {
		return PublicDeviceAddress{}, newError(KindInvalidPublicDeviceAddress, "invalid public device address %q", s)
	}
	return PublicDeviceAddress{octets: octets}, nil
}

// RandomAddress is a Random device address: Static, ResolvablePrivate, or
// NonResolvablePrivate, discriminated by the top two bits of octet[5].
type RandomAddress struct {
	Kind                 RandomAddressKind
	Static               RandomStaticDeviceAddress
	ResolvablePrivate    RandomResolvablePrivateAddress
	NonResolvablePrivate RandomNonResolvablePrivateAddress
}

type RandomAddressKind uint8

const (
	RandomAddressKindStatic RandomAddressKind = iota
	RandomAddressKindResolvablePrivate
	RandomAddressKindNonResolvablePrivate
)

// NewRandomAddressFromOctets classifies octets by the top two bits of octets[5] and
// validates the result, per Core Spec 6.0, Vol. 6, Part B, §1.3.2.
func NewRandomAddressFromOctets(octets [6]byte) (RandomAddress, error) {
	switch octets[5] & 0b1100_0000 {
	case 0b1100_0000:
		a, err := NewRandomStaticDeviceAddress(octets)
		if err != nil {
			return RandomAddress{}, err
		}
		return RandomAddress{Kind: RandomAddressKindStatic, Static: a}, nil
	case 0b0100_0000:
		a, err := NewRandomResolvablePrivateAddress(octets)
		if err != nil {
			return RandomAddress{}, err
		}
		return RandomAddress{Kind: RandomAddressKindResolvablePrivate, ResolvablePrivate: a}, nil
	case 0b0000_0000:
		a, err := NewRandomNonResolvablePrivateAddress(octets)
		if err != nil {
			return RandomAddress{}, err
		}
		return RandomAddress{Kind: RandomAddressKindNonResolvablePrivate, NonResolvablePrivate: a}, nil
	default:
		return RandomAddress{}, newError(KindInvalidRandomAddress, "invalid random address type bits in octet %#02x", octets[5])
	}
}

func ParseRandomAddress(s string) (RandomAddress, error) {
	octets, err := parseAddressString(s)
	if err != nil {
		return RandomAddress{}, newError(KindInvalidRandomAddress, "invalid random address %q", s)
	}
	return NewRandomAddressFromOctets(octets)
}

func (a RandomAddress) Octets() [6]byte {
	switch a.Kind {
	case RandomAddressKindResolvablePrivate:
		return a.ResolvablePrivate.octets
	case RandomAddressKindNonResolvablePrivate:
		return a.NonResolvablePrivate.octets
	default:
		return a.Static.octets
	}
}

func (a RandomAddress) String() string { return formatAddressOctets(a.Octets()) }

func (a RandomAddress) Encode(buf *Buffer) (int, error) {
	octets := a.Octets()
	if err := buf.CopyFromSlice(octets[:]); err != nil {
		return 0, err
	}
	return 6, nil
}

func (a RandomAddress) EncodedSize() int { return 6 }

// RandomStaticDeviceAddress has its two most significant bits set to 1,
// and must be neither all-zero nor all-one in the remaining 46 bits.
type RandomStaticDeviceAddress struct {
	octets [6]byte
}

func NewRandomStaticDeviceAddress(octets [6]byte) (RandomStaticDeviceAddress, error) {
	if octets[5]&0b1100_0000 != 0b1100_0000 {
		return RandomStaticDeviceAddress{}, newError(KindInvalidRandomStaticDeviceAddress, "address type bits are not static")
	}
	if allZeroExceptTypeBits(octets, 0b1100_0000) || allOne(octets) {
		return RandomStaticDeviceAddress{}, newError(KindInvalidRandomStaticDeviceAddress, "address must not be all-zero or all-one")
	}
	return RandomStaticDeviceAddress{octets: octets}, nil
}

// NewRandomStaticDeviceAddressFromRandomBytes forces the type bits of an
// otherwise-random 6-byte value, as the Host does when generating a fresh
// static address rather than validating one read off the wire.
func NewRandomStaticDeviceAddressFromRandomBytes(octets [6]byte) (RandomStaticDeviceAddress, error) {
	octets[5] |= 0b1100_0000
	return NewRandomStaticDeviceAddress(octets)
}

func (a RandomStaticDeviceAddress) Octets() [6]byte { return a.octets }

func (a RandomStaticDeviceAddress) Encode(buf *Buffer) (int, error) {
	if err := buf.CopyFromSlice(a.octets[:]); err != nil {
		return 0, err
	}
	return 6, nil
}

func (a RandomStaticDeviceAddress) EncodedSize() int { return 6 }

// RandomResolvablePrivateAddress has its two most significant bits set to
//01, and must be neither all-zero nor all-one in the remaining 46 bits.
type RandomResolvablePrivateAddress struct {
	octets [6]byte
}

func NewRandomResolvablePrivateAddress(octets [6]byte) (RandomResolvablePrivateAddress, error) {
	if octets[5]&0b1100_0000 != 0b0100_0000 {
		return RandomResolvablePrivateAddress{}, newError(KindInvalidRandomResolvablePrivateAddress, "address type bits are not resolvable-private")
	}
	if allZeroExceptTypeBits(octets, 0b0100_0000) || allOneExceptTypeBits(octets, 0b0111_1111) {
		return RandomResolvablePrivateAddress{}, newError(KindInvalidRandomResolvablePrivateAddress, "address must not be all-zero or all-one")
	}
	return RandomResolvablePrivateAddress{octets: octets}, nil
}

func (a RandomResolvablePrivateAddress) Octets() [6]byte { return a.octets }

// RandomNonResolvablePrivateAddress has its two most significant bits set
// to 00. The all-zero/all-one check applies only to octets[3:6], per the
// source this stack is grounded on.
type RandomNonResolvablePrivateAddress struct {
	octets [6]byte
}

func NewRandomNonResolvablePrivateAddress(octets [6]byte) (RandomNonResolvablePrivateAddress, error) {
	if octets[5]&0b1100_0000 != 0b0000_0000 {
		return RandomNonResolvablePrivateAddress{}, newError(KindInvalidRandomNonResolvablePrivateAddress, "address type bits are not non-resolvable-private")
	}
	zero := octets[3] == 0 && octets[4] == 0 && octets[5] == 0
	one := octets[3] == 0xFF && octets[4] == 0xFF && octets[5] == 0b0011_1111
	if zero || one {
		return RandomNonResolvablePrivateAddress{}, newError(KindInvalidRandomNonResolvablePrivateAddress, "address must not be all-zero or all-one")
	}
	return RandomNonResolvablePrivateAddress{octets: octets}, nil
}

func (a RandomNonResolvablePrivateAddress) Octets() [6]byte { return a.octets }

func allZeroExceptTypeBits(octets [6]byte, typeBits byte) bool {
	for i := 0; i < 5; i++ {
		if octets[i] != 0 {
			return false
		}
	}
	return octets[5] == typeBits
}

func allOne(octets [6]byte) bool {
	for _, b := range octets {
		if b != 0xFF {
			return false
		}
	}
	return true
}

func allOneExceptTypeBits(octets [6]byte, last byte) bool {
	for i := 0; i < 5; i++ {
		if octets[i] != 0xFF {
			return false
		}
	}
	return octets[5] == last
}

// formatAddressOctets renders little-endian wire octets as the
// conventional big-endian colon-hex string (octets[5]:octets[4]: ...
// :octets[0]).
func formatAddressOctets(octets [6]byte) string {
	parts := make([]string, 6)
	for i := 0; i < 6; i++ {
		parts[i] = fmt.Sprintf("%02X", octets[5-i])
	}
	return strings.Join(parts, ":")
}

// parseAddressString parses a big-endian colon-hex address string into
// little-endian wire octets.
func parseAddressString(s string) ([6]byte, error) {
	var octets [6]byte
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return octets, fmt.Errorf("expected 6 colon-separated octets, got %d", len(parts))
	}
	for i, p := range parts {
		if len(p) != 2 {
			return octets, fmt.Errorf("octet %q is not 2 hex digits", p)
		}
		v, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return octets, err
		}
		octets[5-i] = byte(v)
	}
	return octets, nil
}
