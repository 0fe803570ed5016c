package hci

import (
	"errors"
	"fmt"
)

// Kind discriminates the structured error taxonomy described in spec
// §7: validation failures at construction time, encoding failures,
// parsing failures, transport failures, and Controller-reported status
// codes. Callers branch on Kind (or on the Is* sentinel errors below)
// rather than matching error strings.
type Kind uint8

const (
	KindDataWillNotFitCommandPacket Kind = iota
	KindDataWillNotFitAclDataPacket
	KindInvalidCommand
	KindInvalidConnectionIntervalValue
	KindInvalidAdvertisingInterval
	KindInvalidScanInterval
	KindInvalidScanWindow
	KindInvalidLatency
	KindInvalidSupervisionTimeout
	KindInvalidConnectionHandle
	KindInvalidTxPowerLevelValue
	KindInvalidRssiValue
	KindInvalidRandomStaticDeviceAddress
	KindInvalidRandomResolvablePrivateAddress
	KindInvalidRandomNonResolvablePrivateAddress
	KindInvalidRandomAddress
	KindInvalidPublicDeviceAddress
	KindAtLeastOneChannelMustBeEnabled
	KindScanWindowMustBeSmallerOrEqualToScanInterval
	KindSupervisionTimeoutIsNotBigEnough
	KindInvalidConnectionIntervalRange
	KindInvalidConnectionEventLengthRange
	KindInvalidAdvertisingIntervalRange
	KindInvalidPacket
	KindInvalidPacketType
	KindInvalidEventPacket
	KindInvalidPacketBoundaryFlag
	KindInvalidBroadcastFlag
	KindInvalidAdvertisingType
	KindInvalidPeerAddressType
	KindInvalidOwnAddressType
	KindInvalidAdvertisingFilterPolicy
	KindInvalidAdvertisingEnableValue
	KindInvalidScanType
	KindInvalidScanFilterPolicy
	KindInvalidFilterDuplicates
	KindInvalidScanEnableValue
	KindInvalidErrorCode
	KindInvalidRole
	KindInvalidCentralClockAccuracy
	KindInvalidLeAdvertisingReportEventType
	KindInvalidLeAdvertisingReportAddressType
	KindInvalidLeAdvertisingReportNumReports
	KindInvalidAdvertisingDataLength
	KindReadFailure
	KindWriteFailure
	KindTimeout
	KindErrorCode
	KindUnexpectedEvent
)

// Error is the HCI core's single error type: a Kind plus a human-readable
// message and, for Kind == KindErrorCode, the Controller-reported
// ErrorCode that caused it.
type Error struct {
	Kind      Kind
	Message   string
	Code      ErrorCode // valid when Kind == KindErrorCode
	RawOpcode uint16    // valid when Kind == KindInvalidCommand
	wrapped   error     // valid when Kind == KindReadFailure/KindWriteFailure
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.wrapped
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ErrBufferTooSmall is returned by every Buffer write operation when the
// remaining capacity cannot hold the value being written.
var ErrBufferTooSmall = errors.New("hci: buffer too small")

// NewErrorCodeError wraps a non-Success Controller status as an *Error
// with Kind == KindErrorCode.
func NewErrorCodeError(code ErrorCode) *Error {
	return &Error{Kind: KindErrorCode, Code: code, Message: fmt.Sprintf("HCI error code %s", code)}
}

// NewReadFailure wraps a transport read error.
func NewReadFailure(cause error) *Error {
	return &Error{Kind: KindReadFailure, Message: fmt.Sprintf("HCI driver read failure: %v", cause), wrapped: cause}
}

// NewWriteFailure wraps a transport write error.
func NewWriteFailure(cause error) *Error {
	return &Error{Kind: KindWriteFailure, Message: fmt.Sprintf("HCI driver write failure: %v", cause), wrapped: cause}
}

// ErrTimeout is returned when a command's response does not arrive
// within the per-command deadline.
var ErrTimeout = &Error{Kind: KindTimeout, Message: "HCI command timed out"}

// ErrInvalidPacket is returned for malformed or out-of-context packets
// (e.g. a truncated packet header, or a Command or ACL Data packet
// arriving while the session waits for command credit).
var ErrInvalidPacket = &Error{Kind: KindInvalidPacket, Message: "invalid HCI packet"}

// ErrInvalidEventPacket is returned when an event's parameters cannot be
// parsed according to its declared event/sub-event code, including
// trailing bytes left after a recognized event's parameters; those are
// not reported as ErrInvalidPacket.
var ErrInvalidEventPacket = &Error{Kind: KindInvalidEventPacket, Message: "invalid HCI event packet"}

// ErrUnexpectedEvent is returned when the session engine observes a
// Command packet while it owns the transport (a protocol violation: only
// the Controller's events and ACL data should arrive on this stream).
var ErrUnexpectedEvent = &Error{Kind: KindUnexpectedEvent, Message: "unexpected HCI packet from controller"}

func invalidPacketType(v uint8) *Error {
	return newError(KindInvalidPacketType, "invalid HCI packet type %#02x", v)
}

func invalidCommand(opcode uint16) *Error {
	return &Error{Kind: KindInvalidCommand, RawOpcode: opcode, Message: fmt.Sprintf("invalid HCI command with opcode %#04x", opcode)}
}

// Is allows errors.Is(err, hci.ErrTimeout) and similar sentinel
// comparisons to match by Kind rather than by pointer identity, since
// callers may receive freshly constructed *Error values that carry the
// same Kind as a package-level sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
