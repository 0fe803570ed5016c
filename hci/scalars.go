package hci

// This file implements the construction-time validated scalar types used
// throughout the command and event parameter structs: every value the
// Controller expects in a specific numeric range is represented by its own
// type with a try-constructor, rather than passed around as a bare uint16
// or int8. Ranges and defaults are taken from Core Spec 6.0, Vol. 4, Part E.

// AdvertisingInterval is the time interval between advertising events,
// in units of 0.625 ms.
//
//	Range:   0x0020 to 0x4000
//	Default: 0x0800 (1.28 s)
type AdvertisingInterval struct {
	value uint16
}

// NewAdvertisingInterval validates and constructs an AdvertisingInterval.
func NewAdvertisingInterval(value uint16) (AdvertisingInterval, error) {
	if value < 0x0020 || value > 0x4000 {
		return AdvertisingInterval{}, newError(KindInvalidAdvertisingInterval, "invalid advertising interval value %#04x", value)
	}
	return AdvertisingInterval{value: value}, nil
}

// DefaultAdvertisingInterval returns the Controller's default, 0x0800
// (1.28 s).
func DefaultAdvertisingInterval() AdvertisingInterval {
	return AdvertisingInterval{value: 0x0800}
}

func (v AdvertisingInterval) Value() uint16       { return v.value }
func (v AdvertisingInterval) Milliseconds() float32 { return float32(v.value) * 0.625 }

func (v AdvertisingInterval) Encode(buf *Buffer) (int, error) {
	if err := buf.EncodeLEUint16(v.value); err != nil {
		return 0, err
	}
	return 2, nil
}

func (v AdvertisingInterval) EncodedSize() int { return 2 }

// ScanInterval is the time interval from when the Controller started its
// last LE scan until it begins the subsequent LE scan, in units of 0.625 ms.
//
//	Range:   0x0004 to 0x4000
//	Default: 0x0010 (10 ms)
type ScanInterval struct {
	value uint16
}

func NewScanInterval(value uint16) (ScanInterval, error) {
	if value < 0x0004 || value > 0x4000 {
		return ScanInterval{}, newError(KindInvalidScanInterval, "invalid scan interval value %#04x", value)
	}
	return ScanInterval{value: value}, nil
}

func DefaultScanInterval() ScanInterval {
	return ScanInterval{value: 0x0010}
}

func (v ScanInterval) Value() uint16         { return v.value }
func (v ScanInterval) Milliseconds() float32 { return float32(v.value) * 0.625 }

func (v ScanInterval) Encode(buf *Buffer) (int, error) {
	if err := buf.EncodeLEUint16(v.value); err != nil {
		return 0, err
	}
	return 2, nil
}

func (v ScanInterval) EncodedSize() int { return 2 }

// ScanWindow is the duration of the LE scan, in units of 0.625 ms. Must
// never exceed the ScanInterval it is paired with.
//
//	Range:   0x0004 to 0x4000
//	Default: 0x0010 (10 ms)
type ScanWindow struct {
	value uint16
}

func NewScanWindow(value uint16) (ScanWindow, error) {
	if value < 0x0004 || value > 0x4000 {
		return ScanWindow{}, newError(KindInvalidScanWindow, "invalid scan window value %#04x", value)
	}
	return ScanWindow{value: value}, nil
}

func DefaultScanWindow() ScanWindow {
	return ScanWindow{value: 0x0010}
}

func (v ScanWindow) Value() uint16         { return v.value }
func (v ScanWindow) Milliseconds() float32 { return float32(v.value) * 0.625 }

func (v ScanWindow) Encode(buf *Buffer) (int, error) {
	if err := buf.EncodeLEUint16(v.value); err != nil {
		return 0, err
	}
	return 2, nil
}

func (v ScanWindow) EncodedSize() int { return 2 }

// ConnectionInterval is the time interval between connection events, in
// units of 1.25 ms. 0xFFFF on the wire denotes "undefined" (no preference),
// represented here as the zero value.
//
//	Range: 0x0006 to 0x0C80 if defined
type ConnectionInterval struct {
	value   uint16
	defined bool
}

func NewConnectionInterval(value uint16) (ConnectionInterval, error) {
	if value < 0x0006 || value > 0x0C80 {
		return ConnectionInterval{}, newError(KindInvalidConnectionIntervalValue, "invalid connection interval value %#04x", value)
	}
	return ConnectionInterval{value: value, defined: true}, nil
}

// UndefinedConnectionInterval returns a connection interval with no
// preference, encoded on the wire as 0xFFFF.
func UndefinedConnectionInterval() ConnectionInterval {
	return ConnectionInterval{}
}

func (v ConnectionInterval) Defined() bool { return v.defined }

// Value returns the raw 16-bit wire value: 0xFFFF when undefined.
func (v ConnectionInterval) Value() uint16 {
	if !v.defined {
		return 0xFFFF
	}
	return v.value
}

// Milliseconds returns the interval duration, or false when undefined.
func (v ConnectionInterval) Milliseconds() (float32, bool) {
	if !v.defined {
		return 0, false
	}
	return float32(v.value) * 1.25, true
}

func (v ConnectionInterval) Encode(buf *Buffer) (int, error) {
	if err := buf.EncodeLEUint16(v.Value()); err != nil {
		return 0, err
	}
	return 2, nil
}

func (v ConnectionInterval) EncodedSize() int { return 2 }

// Latency is the peripheral latency for a connection, in number of
// connection events.
//
//	Range: 0x0000 to 0x01F3
type Latency struct {
	value uint16
}

func NewLatency(value uint16) (Latency, error) {
	if value > 0x01F3 {
		return Latency{}, newError(KindInvalidLatency, "invalid latency value %#04x", value)
	}
	return Latency{value: value}, nil
}

func (v Latency) Value() uint16 { return v.value }

func (v Latency) Encode(buf *Buffer) (int, error) {
	if err := buf.EncodeLEUint16(v.value); err != nil {
		return 0, err
	}
	return 2, nil
}

func (v Latency) EncodedSize() int { return 2 }

// SupervisionTimeout is the supervision timeout for the LE link, in units
// of 10 ms.
//
//	Range:   0x000A to 0x0C80
//	Default: 0x0020 (320 ms)
type SupervisionTimeout struct {
	value uint16
}

func NewSupervisionTimeout(value uint16) (SupervisionTimeout, error) {
	if value < 0x000A || value > 0x0C80 {
		return SupervisionTimeout{}, newError(KindInvalidSupervisionTimeout, "invalid supervision timeout value %#04x", value)
	}
	return SupervisionTimeout{value: value}, nil
}

func DefaultSupervisionTimeout() SupervisionTimeout {
	return SupervisionTimeout{value: 0x0020}
}

func (v SupervisionTimeout) Value() uint16         { return v.value }
func (v SupervisionTimeout) Milliseconds() float32 { return float32(v.value) * 10 }

func (v SupervisionTimeout) Encode(buf *Buffer) (int, error) {
	if err := buf.EncodeLEUint16(v.value); err != nil {
		return 0, err
	}
	return 2, nil
}

func (v SupervisionTimeout) EncodedSize() int { return 2 }

// ConnectionEventLength is the recommended length of a connection event,
// in units of 0.625 ms. Unlike the other scalars this one accepts the full
// uint16 range; there is no invalid value.
type ConnectionEventLength struct {
	value uint16
}

func NewConnectionEventLength(value uint16) ConnectionEventLength {
	return ConnectionEventLength{value: value}
}

func (v ConnectionEventLength) Value() uint16         { return v.value }
func (v ConnectionEventLength) Milliseconds() float32 { return float32(v.value) * 0.625 }

func (v ConnectionEventLength) Encode(buf *Buffer) (int, error) {
	if err := buf.EncodeLEUint16(v.value); err != nil {
		return 0, err
	}
	return 2, nil
}

func (v ConnectionEventLength) EncodedSize() int { return 2 }

// ConnectionHandle identifies a connection or logical link for the purpose
// of exchanging data packets with the Controller.
//
//	Range: 0x0000 to 0x0EFF
type ConnectionHandle struct {
	value uint16
}

func NewConnectionHandle(value uint16) (ConnectionHandle, error) {
	if value > 0x0EFF {
		return ConnectionHandle{}, newError(KindInvalidConnectionHandle, "invalid connection handle %#04x", value)
	}
	return ConnectionHandle{value: value}, nil
}

func (v ConnectionHandle) Value() uint16 { return v.value }

func (v ConnectionHandle) Encode(buf *Buffer) (int, error) {
	if err := buf.EncodeLEUint16(v.value); err != nil {
		return 0, err
	}
	return 2, nil
}

func (v ConnectionHandle) EncodedSize() int { return 2 }

// TxPowerLevel is a radiated power level, in dBm.
//
//	Range: -127 to 20
type TxPowerLevel struct {
	value int8
}

func NewTxPowerLevel(value int8) (TxPowerLevel, error) {
	if value < -127 || value > 20 {
		return TxPowerLevel{}, newError(KindInvalidTxPowerLevelValue, "invalid TX power level value %d", value)
	}
	return TxPowerLevel{value: value}, nil
}

func (v TxPowerLevel) Value() int8 { return v.value }

func (v TxPowerLevel) Encode(buf *Buffer) (int, error) {
	if err := buf.TryPushUint8(uint8(v.value)); err != nil {
		return 0, err
	}
	return 1, nil
}

func (v TxPowerLevel) EncodedSize() int { return 1 }

// Rssi is a Received Signal Strength Indication, in dBm.
//
//	Range: -127 to 20
type Rssi struct {
	value int8
}

func NewRssi(value int8) (Rssi, error) {
	if value < -127 || value > 20 {
		return Rssi{}, newError(KindInvalidRssiValue, "invalid RSSI value %d", value)
	}
	return Rssi{value: value}, nil
}

func (v Rssi) Value() int8 { return v.value }

func (v Rssi) Encode(buf *Buffer) (int, error) {
	if err := buf.TryPushUint8(uint8(v.value)); err != nil {
		return 0, err
	}
	return 1, nil
}

func (v Rssi) EncodedSize() int { return 1 }

// ConnectionIntervalRange is a [min, max] pair of connection intervals, as
// used in an LE_Create_Connection or LE_Connection_Update command. Min
// must not exceed Max.
type ConnectionIntervalRange struct {
	Min, Max ConnectionInterval
}

func NewConnectionIntervalRange(min, max ConnectionInterval) (ConnectionIntervalRange, error) {
	if min.Defined() && max.Defined() && min.Value() > max.Value() {
		return ConnectionIntervalRange{}, newError(KindInvalidConnectionIntervalRange,
			"connection interval range minimum %#04x is greater than maximum %#04x", min.Value(), max.Value())
	}
	return ConnectionIntervalRange{Min: min, Max: max}, nil
}

// ConnectionEventLengthRange is a [min, max] pair of connection event
// lengths.
type ConnectionEventLengthRange struct {
	Min, Max ConnectionEventLength
}

func NewConnectionEventLengthRange(min, max ConnectionEventLength) (ConnectionEventLengthRange, error) {
	if min.Value() > max.Value() {
		return ConnectionEventLengthRange{}, newError(KindInvalidConnectionEventLengthRange,
			"connection event length range minimum %#04x is greater than maximum %#04x", min.Value(), max.Value())
	}
	return ConnectionEventLengthRange{Min: min, Max: max}, nil
}

// AdvertisingIntervalRange is a [min, max] pair of advertising intervals.
type AdvertisingIntervalRange struct {
	Min, Max AdvertisingInterval
}

func NewAdvertisingIntervalRange(min, max AdvertisingInterval) (AdvertisingIntervalRange, error) {
	if min.Value() > max.Value() {
		return AdvertisingIntervalRange{}, newError(KindInvalidAdvertisingIntervalRange,
			"advertising interval range minimum %#04x is greater than maximum %#04x", min.Value(), max.Value())
	}
	return AdvertisingIntervalRange{Min: min, Max: max}, nil
}
