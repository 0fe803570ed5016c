package hci

// This file groups the composite command parameter structs: the ones
// whose fields must be cross-validated against each other rather than
// independently, so their try-constructors live beside the struct
// instead of on the individual scalar types.

// AdvertisingType selects the PDU type used for advertising.
type AdvertisingType uint8

const (
	AdvertisingTypeConnectableUndirected AdvertisingType = 0x00
	AdvertisingTypeConnectableDirected   AdvertisingType = 0x01
	AdvertisingTypeScannableUndirected   AdvertisingType = 0x02
	AdvertisingTypeNonConnectableUndirected AdvertisingType = 0x03
	AdvertisingTypeConnectableDirectedLowDutyCycle AdvertisingType = 0x04
)

func (t AdvertisingType) Encode(buf *Buffer) (int, error) {
	if err := buf.TryPushUint8(uint8(t)); err != nil {
		return 0, err
	}
	return 1, nil
}

func (t AdvertisingType) EncodedSize() int { return 1 }

// OwnAddressType selects which of its own addresses the Controller uses.
type OwnAddressType uint8

const (
	OwnAddressTypePublic                      OwnAddressType = 0x00
	OwnAddressTypeRandom                      OwnAddressType = 0x01
	OwnAddressTypeResolvablePrivateOrPublic    OwnAddressType = 0x02
	OwnAddressTypeResolvablePrivateOrRandom    OwnAddressType = 0x03
)

func (t OwnAddressType) Encode(buf *Buffer) (int, error) {
	if err := buf.TryPushUint8(uint8(t)); err != nil {
		return 0, err
	}
	return 1, nil
}

func (t OwnAddressType) EncodedSize() int { return 1 }

// PeerAddressType selects the address type of the peer device named in an
// advertising or connection command.
type PeerAddressType uint8

const (
	PeerAddressTypePublic PeerAddressType = 0x00
	PeerAddressTypeRandom PeerAddressType = 0x01
)

func (t PeerAddressType) Encode(buf *Buffer) (int, error) {
	if err := buf.TryPushUint8(uint8(t)); err != nil {
		return 0, err
	}
	return 1, nil
}

func (t PeerAddressType) EncodedSize() int { return 1 }

// AdvertisingFilterPolicy controls which scan and connection requests are
// processed during advertising.
type AdvertisingFilterPolicy uint8

const (
	AdvertisingFilterPolicyScanAnyConnectAny             AdvertisingFilterPolicy = 0x00
	AdvertisingFilterPolicyScanFilterAcceptListConnectAny AdvertisingFilterPolicy = 0x01
	AdvertisingFilterPolicyScanAnyConnectFilterAcceptList AdvertisingFilterPolicy = 0x02
	AdvertisingFilterPolicyScanFilterAcceptListConnectFilterAcceptList AdvertisingFilterPolicy = 0x03
)

func (p AdvertisingFilterPolicy) Encode(buf *Buffer) (int, error) {
	if err := buf.TryPushUint8(uint8(p)); err != nil {
		return 0, err
	}
	return 1, nil
}

func (p AdvertisingFilterPolicy) EncodedSize() int { return 1 }

// AdvertisingParameters is the parameter set for LE_Set_Advertising_Parameters.
// Encoded layout (15 bytes): interval min (2) + interval max (2) +
// advertising type (1) + own address type (1) + peer address type (1) +
// peer address (6) + advertising channel map (1) + advertising filter
// policy (1).
type AdvertisingParameters struct {
	IntervalRange   AdvertisingIntervalRange
	Type            AdvertisingType
	OwnAddressType  OwnAddressType
	PeerAddressType PeerAddressType
	PeerAddress     [6]byte
	ChannelMap      AdvertisingChannelMap
	FilterPolicy    AdvertisingFilterPolicy
}

// DefaultAdvertisingParameters matches the Controller's own defaults: equal
// min/max interval of 0x0800, connectable undirected, public own address,
// no peer, all channels enabled, unfiltered.
func DefaultAdvertisingParameters() AdvertisingParameters {
	def := DefaultAdvertisingInterval()
	rng, _ := NewAdvertisingIntervalRange(def, def)
	return AdvertisingParameters{
		IntervalRange:  rng,
		Type:           AdvertisingTypeConnectableUndirected,
		OwnAddressType: OwnAddressTypePublic,
		ChannelMap:     AdvertisingChannelMapAll,
		FilterPolicy:   AdvertisingFilterPolicyScanAnyConnectAny,
	}
}

func (p AdvertisingParameters) Encode(buf *Buffer) (int, error) {
	if _, err := p.IntervalRange.Min.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.IntervalRange.Max.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.Type.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.OwnAddressType.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.PeerAddressType.Encode(buf); err != nil {
		return 0, err
	}
	if err := buf.CopyFromSlice(p.PeerAddress[:]); err != nil {
		return 0, err
	}
	if _, err := p.ChannelMap.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.FilterPolicy.Encode(buf); err != nil {
		return 0, err
	}
	return p.EncodedSize(), nil
}

func (p AdvertisingParameters) EncodedSize() int { return 15 }

// ScanType selects passive or active LE scanning.
type ScanType uint8

const (
	ScanTypePassive ScanType = 0x00
	ScanTypeActive  ScanType = 0x01
)

func (t ScanType) Encode(buf *Buffer) (int, error) {
	if err := buf.TryPushUint8(uint8(t)); err != nil {
		return 0, err
	}
	return 1, nil
}

func (t ScanType) EncodedSize() int { return 1 }

// ScanningFilterPolicy controls which advertisements the scanner processes.
type ScanningFilterPolicy uint8

const (
	ScanningFilterPolicyBasicUnfiltered    ScanningFilterPolicy = 0x00
	ScanningFilterPolicyBasicFiltered      ScanningFilterPolicy = 0x01
	ScanningFilterPolicyExtendedUnfiltered ScanningFilterPolicy = 0x02
	ScanningFilterPolicyExtendedFiltered   ScanningFilterPolicy = 0x03
)

func (p ScanningFilterPolicy) Encode(buf *Buffer) (int, error) {
	if err := buf.TryPushUint8(uint8(p)); err != nil {
		return 0, err
	}
	return 1, nil
}

func (p ScanningFilterPolicy) EncodedSize() int { return 1 }

// ScanParameters is the parameter set for LE_Set_Scan_Parameters. Window
// must never exceed Interval.
type ScanParameters struct {
	Type           ScanType
	Interval       ScanInterval
	Window         ScanWindow
	OwnAddressType OwnAddressType
	FilterPolicy   ScanningFilterPolicy
}

func NewScanParameters(typ ScanType, interval ScanInterval, window ScanWindow, ownAddressType OwnAddressType, filterPolicy ScanningFilterPolicy) (ScanParameters, error) {
	if window.Value() > interval.Value() {
		return ScanParameters{}, newError(KindScanWindowMustBeSmallerOrEqualToScanInterval,
			"scan window %#04x exceeds scan interval %#04x", window.Value(), interval.Value())
	}
	return ScanParameters{
		Type:           typ,
		Interval:       interval,
		Window:         window,
		OwnAddressType: ownAddressType,
		FilterPolicy:   filterPolicy,
	}, nil
}

func (p ScanParameters) Encode(buf *Buffer) (int, error) {
	if _, err := p.Type.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.Interval.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.Window.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.OwnAddressType.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.FilterPolicy.Encode(buf); err != nil {
		return 0, err
	}
	return p.EncodedSize(), nil
}

func (p ScanParameters) EncodedSize() int { return 7 }

// InitiatorFilterPolicy determines whether the Filter Accept List is used
// when creating a connection.
type InitiatorFilterPolicy uint8

const (
	InitiatorFilterPolicyFilterAcceptListNotUsed InitiatorFilterPolicy = 0x00
	InitiatorFilterPolicyFilterAcceptListUsed    InitiatorFilterPolicy = 0x01
)

func (p InitiatorFilterPolicy) Encode(buf *Buffer) (int, error) {
	if err := buf.TryPushUint8(uint8(p)); err != nil {
		return 0, err
	}
	return 1, nil
}

func (p InitiatorFilterPolicy) EncodedSize() int { return 1 }

// ConnectionPeerAddressType distinguishes the four peer address flavors
// seen in an LE Advertising Report or LE_Create_Connection command.
type ConnectionPeerAddressType uint8

const (
	ConnectionPeerAddressTypePublicDevice   ConnectionPeerAddressType = 0x00
	ConnectionPeerAddressTypeRandomDevice   ConnectionPeerAddressType = 0x01
	ConnectionPeerAddressTypePublicIdentity ConnectionPeerAddressType = 0x02
	ConnectionPeerAddressTypeRandomIdentity ConnectionPeerAddressType = 0x03
)

// ConnectionPeerAddress pairs a resolved device address with the identity
// it was reported or connected under.
type ConnectionPeerAddress struct {
	AddressType ConnectionPeerAddressType
	Public      PublicDeviceAddress
	Random      RandomAddress
}

func NewConnectionPeerAddress(addrType ConnectionPeerAddressType, public PublicDeviceAddress, random RandomAddress) ConnectionPeerAddress {
	return ConnectionPeerAddress{AddressType: addrType, Public: public, Random: random}
}

func (a ConnectionPeerAddress) Octets() [6]byte {
	switch a.AddressType {
	case ConnectionPeerAddressTypeRandomDevice, ConnectionPeerAddressTypeRandomIdentity:
		return a.Random.Octets()
	default:
		return a.Public.Octets()
	}
}

func (a ConnectionPeerAddress) Encode(buf *Buffer) (int, error) {
	if err := buf.TryPushUint8(uint8(a.AddressType)); err != nil {
		return 0, err
	}
	octets := a.Octets()
	if err := buf.CopyFromSlice(octets[:]); err != nil {
		return 0, err
	}
	return 7, nil
}

func (a ConnectionPeerAddress) EncodedSize() int { return 7 }

// MaxLatency is the maximum Peripheral latency for a connection, in number
// of connection events.
//
//	Range: 0x0000 to 0x01F3
type MaxLatency struct {
	value uint16
}

func NewMaxLatency(value uint16) (MaxLatency, error) {
	if value > 0x01F3 {
		return MaxLatency{}, newError(KindInvalidLatency, "invalid max latency value %#04x", value)
	}
	return MaxLatency{value: value}, nil
}

func (v MaxLatency) Value() uint16 { return v.value }

func (v MaxLatency) Encode(buf *Buffer) (int, error) {
	if err := buf.EncodeLEUint16(v.value); err != nil {
		return 0, err
	}
	return 2, nil
}

func (v MaxLatency) EncodedSize() int { return 2 }

// ConnectionParameters is the parameter set for LE_Create_Connection
// (LE_Connection_Update takes ConnectionUpdateParameters). The supervision timeout must be large enough to
// cover at least two missed connection events at the requested latency and
// maximum interval, per Core Spec 6.0, Vol. 4, Part E, §7.8.12.
type ConnectionParameters struct {
	ScanInterval                ScanInterval
	ScanWindow                  ScanWindow
	InitiatorFilterPolicy       InitiatorFilterPolicy
	PeerAddress                 ConnectionPeerAddress
	OwnAddressType              OwnAddressType
	ConnectionIntervalRange     ConnectionIntervalRange
	MaxLatency                  MaxLatency
	SupervisionTimeout          SupervisionTimeout
	ConnectionEventLengthRange  ConnectionEventLengthRange
}

func NewConnectionParameters(
	scanInterval ScanInterval,
	scanWindow ScanWindow,
	initiatorFilterPolicy InitiatorFilterPolicy,
	peerAddress ConnectionPeerAddress,
	ownAddressType OwnAddressType,
	connIntervalRange ConnectionIntervalRange,
	maxLatency MaxLatency,
	supervisionTimeout SupervisionTimeout,
	connEventLengthRange ConnectionEventLengthRange,
) (ConnectionParameters, error) {
	if scanWindow.Value() > scanInterval.Value() {
		return ConnectionParameters{}, newError(KindScanWindowMustBeSmallerOrEqualToScanInterval,
			"scan window %#04x exceeds scan interval %#04x", scanWindow.Value(), scanInterval.Value())
	}
	maxIntervalMs, _ := connIntervalRange.Max.Milliseconds()
	required := (1 + float32(maxLatency.Value())) * maxIntervalMs * 2
	if supervisionTimeout.Milliseconds() < required {
		return ConnectionParameters{}, newError(KindSupervisionTimeoutIsNotBigEnough,
			"supervision timeout %.1fms is below the %.1fms required for latency %d and max interval %.2fms",
			supervisionTimeout.Milliseconds(), required, maxLatency.Value(), maxIntervalMs)
	}
	return ConnectionParameters{
		ScanInterval:               scanInterval,
		ScanWindow:                 scanWindow,
		InitiatorFilterPolicy:      initiatorFilterPolicy,
		PeerAddress:                peerAddress,
		OwnAddressType:             ownAddressType,
		ConnectionIntervalRange:    connIntervalRange,
		MaxLatency:                 maxLatency,
		SupervisionTimeout:         supervisionTimeout,
		ConnectionEventLengthRange: connEventLengthRange,
	}, nil
}

func (p ConnectionParameters) Encode(buf *Buffer) (int, error) {
	if _, err := p.ScanInterval.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.ScanWindow.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.InitiatorFilterPolicy.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.PeerAddress.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.OwnAddressType.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.ConnectionIntervalRange.Min.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.ConnectionIntervalRange.Max.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.MaxLatency.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.SupervisionTimeout.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.ConnectionEventLengthRange.Min.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.ConnectionEventLengthRange.Max.Encode(buf); err != nil {
		return 0, err
	}
	return p.EncodedSize(), nil
}

func (p ConnectionParameters) EncodedSize() int { return 2 + 2 + 1 + 7 + 1 + 2 + 2 + 2 + 2 + 2 + 2 }

// ConnectionUpdateParameters is the parameter set for LE_Connection_Update,
// which omits the scan and filter fields of a fresh connection attempt.
type ConnectionUpdateParameters struct {
	Handle                     ConnectionHandle
	ConnectionIntervalRange    ConnectionIntervalRange
	MaxLatency                 MaxLatency
	SupervisionTimeout         SupervisionTimeout
	ConnectionEventLengthRange ConnectionEventLengthRange
}

func NewConnectionUpdateParameters(
	handle ConnectionHandle,
	connIntervalRange ConnectionIntervalRange,
	maxLatency MaxLatency,
	supervisionTimeout SupervisionTimeout,
	connEventLengthRange ConnectionEventLengthRange,
) (ConnectionUpdateParameters, error) {
	maxIntervalMs, _ := connIntervalRange.Max.Milliseconds()
	required := (1 + float32(maxLatency.Value())) * maxIntervalMs * 2
	if supervisionTimeout.Milliseconds() < required {
		return ConnectionUpdateParameters{}, newError(KindSupervisionTimeoutIsNotBigEnough,
			"supervision timeout %.1fms is below the %.1fms required for latency %d and max interval %.2fms",
			supervisionTimeout.Milliseconds(), required, maxLatency.Value(), maxIntervalMs)
	}
	return ConnectionUpdateParameters{
		Handle:                     handle,
		ConnectionIntervalRange:    connIntervalRange,
		MaxLatency:                 maxLatency,
		SupervisionTimeout:         supervisionTimeout,
		ConnectionEventLengthRange: connEventLengthRange,
	}, nil
}

func (p ConnectionUpdateParameters) Encode(buf *Buffer) (int, error) {
	if _, err := p.Handle.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.ConnectionIntervalRange.Min.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.ConnectionIntervalRange.Max.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.MaxLatency.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.SupervisionTimeout.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.ConnectionEventLengthRange.Min.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := p.ConnectionEventLengthRange.Max.Encode(buf); err != nil {
		return 0, err
	}
	return p.EncodedSize(), nil
}

func (p ConnectionUpdateParameters) EncodedSize() int { return 2 + 2 + 2 + 2 + 2 + 2 + 2 }
