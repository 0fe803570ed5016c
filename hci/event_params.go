package hci

import "encoding/binary"

// EventParameter is the return-parameter payload of a Command_Complete
// event. Its shape depends entirely on the opcode it answers, so it is
// modeled the same way as Command and DeviceAddress: a Kind-discriminated
// struct with one populated field per Kind, rather than an interface.
type EventParameter struct {
	Kind EventParameterKind

	Status                   StatusEventParameter
	StatusAndSupportedCmds   StatusAndSupportedCommandsEventParameter
	StatusAndSupportedFeats  StatusAndSupportedFeaturesEventParameter
	StatusAndBufferSize      StatusAndBufferSizeEventParameter
	StatusAndLeBufferSize    StatusAndLeBufferSizeEventParameter
	StatusAndSupportedLeFeats StatusAndSupportedLeFeaturesEventParameter
	StatusAndSupportedLeStates StatusAndSupportedLeStatesEventParameter
	StatusAndTxPowerLevel    StatusAndTxPowerLevelEventParameter
	StatusAndBdAddr          StatusAndBdAddrEventParameter
	StatusAndRandomNumber    StatusAndRandomNumberEventParameter
	StatusAndRssi            StatusAndRssiEventParameter
}

type EventParameterKind uint8

const (
	EventParameterEmpty EventParameterKind = iota
	EventParameterStatus
	EventParameterStatusAndSupportedCommands
	EventParameterStatusAndSupportedFeatures
	EventParameterStatusAndBufferSize
	EventParameterStatusAndLeBufferSize
	EventParameterStatusAndSupportedLeFeatures
	EventParameterStatusAndSupportedLeStates
	EventParameterStatusAndTxPowerLevel
	EventParameterStatusAndBdAddr
	EventParameterStatusAndRandomNumber
	EventParameterStatusAndRssi
)

func emptyEventParameter() EventParameter {
	return EventParameter{Kind: EventParameterEmpty}
}

// StatusEventParameter is the return parameter shared by every command
// whose only result is success/failure: Reset, Set_Event_Mask, and the
// great majority of the LE Controller commands.
type StatusEventParameter struct {
	Status ErrorCode
}

func (p StatusEventParameter) asEventParameter() EventParameter {
	return EventParameter{Kind: EventParameterStatus, Status: p}
}

type StatusAndSupportedCommandsEventParameter struct {
	Status           ErrorCode
	SupportedCommands SupportedCommands
}

func (p StatusAndSupportedCommandsEventParameter) asEventParameter() EventParameter {
	return EventParameter{Kind: EventParameterStatusAndSupportedCommands, StatusAndSupportedCmds: p}
}

type StatusAndSupportedFeaturesEventParameter struct {
	Status            ErrorCode
	SupportedFeatures SupportedFeatures
}

func (p StatusAndSupportedFeaturesEventParameter) asEventParameter() EventParameter {
	return EventParameter{Kind: EventParameterStatusAndSupportedFeatures, StatusAndSupportedFeats: p}
}

type StatusAndBufferSizeEventParameter struct {
	Status            ErrorCode
	AclDataPacketLength uint16
	SynchronousDataPacketLength uint8
	TotalNumAclDataPackets uint16
	TotalNumSynchronousDataPackets uint16
}

func (p StatusAndBufferSizeEventParameter) asEventParameter() EventParameter {
	return EventParameter{Kind: EventParameterStatusAndBufferSize, StatusAndBufferSize: p}
}

type StatusAndLeBufferSizeEventParameter struct {
	Status            ErrorCode
	LeAclDataPacketLength uint16
	TotalNumLeAclDataPackets uint8
}

func (p StatusAndLeBufferSizeEventParameter) asEventParameter() EventParameter {
	return EventParameter{Kind: EventParameterStatusAndLeBufferSize, StatusAndLeBufferSize: p}
}

type StatusAndSupportedLeFeaturesEventParameter struct {
	Status               ErrorCode
	SupportedLeFeatures SupportedLeFeatures
}

func (p StatusAndSupportedLeFeaturesEventParameter) asEventParameter() EventParameter {
	return EventParameter{Kind: EventParameterStatusAndSupportedLeFeatures, StatusAndSupportedLeFeats: p}
}

type StatusAndSupportedLeStatesEventParameter struct {
	Status            ErrorCode
	SupportedLeStates SupportedLeStates
}

func (p StatusAndSupportedLeStatesEventParameter) asEventParameter() EventParameter {
	return EventParameter{Kind: EventParameterStatusAndSupportedLeStates, StatusAndSupportedLeStates: p}
}

type StatusAndTxPowerLevelEventParameter struct {
	Status       ErrorCode
	TxPowerLevel TxPowerLevel
}

func (p StatusAndTxPowerLevelEventParameter) asEventParameter() EventParameter {
	return EventParameter{Kind: EventParameterStatusAndTxPowerLevel, StatusAndTxPowerLevel: p}
}

type StatusAndBdAddrEventParameter struct {
	Status  ErrorCode
	Address PublicDeviceAddress
}

func (p StatusAndBdAddrEventParameter) asEventParameter() EventParameter {
	return EventParameter{Kind: EventParameterStatusAndBdAddr, StatusAndBdAddr: p}
}

// StatusAndRssiEventParameter is Read_RSSI's return parameter: the
// handle the reading was taken for, plus the RSSI value itself.
type StatusAndRssiEventParameter struct {
	Status           ErrorCode
	ConnectionHandle ConnectionHandle
	Rssi             Rssi
}

func (p StatusAndRssiEventParameter) asEventParameter() EventParameter {
	return EventParameter{Kind: EventParameterStatusAndRssi, StatusAndRssi: p}
}

// StatusAndRandomNumberEventParameter is LE_Rand's return parameter: 8
// octets of random data generated by the Controller.
type StatusAndRandomNumberEventParameter struct {
	Status       ErrorCode
	RandomNumber [8]byte
}

func (p StatusAndRandomNumberEventParameter) asEventParameter() EventParameter {
	return EventParameter{Kind: EventParameterStatusAndRandomNumber, StatusAndRandomNumber: p}
}

// parseStatusParameter reads the single-byte status shared by every
// EventParameter variant.
func parseStatusParameter(b []byte) (ErrorCode, []byte, error) {
	if len(b) < 1 {
		return 0, nil, newError(KindInvalidEventPacket, "event parameter too short for a status byte")
	}
	code, err := ParseErrorCode(b[0])
	if err != nil {
		return 0, nil, err
	}
	return code, b[1:], nil
}

// parseCommandCompleteReturnParameters dispatches on the opcode the
// Command_Complete event answers to parse its return parameters into the
// correctly shaped EventParameter, mirroring this stack's original
// per-opcode parser table.
//
// When the status is not Success, the Controller is not required to (and
// in practice does not) populate the fields that follow it: the numeric
// fields are fabricated as their zero value and the remainder of the
// parameters is never inspected, matching the original source's
// `if status.is_success() { parse } else { default }` split (e.g.
// command_complete.rs's Read_Tx_Power handling). When the status is
// Success, the declared parameter region must be consumed exactly: any
// bytes left over are rejected rather than silently ignored.
func parseCommandCompleteReturnParameters(opcode OpCode, b []byte) (EventParameter, error) {
	switch opcode {
	case OpCodeNop:
		if len(b) != 0 {
			return EventParameter{}, newError(KindInvalidEventPacket, "credit-only Command_Complete carries unexpected parameters")
		}
		return emptyEventParameter(), nil

	case OpCodeReadLocalSupportedCommands:
		status, rest, err := parseStatusParameter(b)
		if err != nil {
			return EventParameter{}, err
		}
		if status != ErrorCodeSuccess {
			return StatusAndSupportedCommandsEventParameter{Status: status}.asEventParameter(), nil
		}
		if len(rest) != 64 {
			return EventParameter{}, newError(KindInvalidEventPacket, "Read_Local_Supported_Commands return parameters wrong length")
		}
		return StatusAndSupportedCommandsEventParameter{
			Status:            status,
			SupportedCommands: parseSupportedCommands(rest[:64]),
		}.asEventParameter(), nil

	case OpCodeReadLocalSupportedFeatures:
		status, rest, err := parseStatusParameter(b)
		if err != nil {
			return EventParameter{}, err
		}
		if status != ErrorCodeSuccess {
			return StatusAndSupportedFeaturesEventParameter{Status: status}.asEventParameter(), nil
		}
		if len(rest) != 8 {
			return EventParameter{}, newError(KindInvalidEventPacket, "Read_Local_Supported_Features return parameters wrong length")
		}
		return StatusAndSupportedFeaturesEventParameter{
			Status:            status,
			SupportedFeatures: parseSupportedFeatures(rest[:8]),
		}.asEventParameter(), nil

	case OpCodeReadBufferSize:
		status, rest, err := parseStatusParameter(b)
		if err != nil {
			return EventParameter{}, err
		}
		if status != ErrorCodeSuccess {
			return StatusAndBufferSizeEventParameter{Status: status}.asEventParameter(), nil
		}
		if len(rest) != 7 {
			return EventParameter{}, newError(KindInvalidEventPacket, "Read_Buffer_Size return parameters wrong length")
		}
		return StatusAndBufferSizeEventParameter{
			Status:                         status,
			AclDataPacketLength:            binary.LittleEndian.Uint16(rest[0:2]),
			SynchronousDataPacketLength:    rest[2],
			TotalNumAclDataPackets:         binary.LittleEndian.Uint16(rest[3:5]),
			TotalNumSynchronousDataPackets: binary.LittleEndian.Uint16(rest[5:7]),
		}.asEventParameter(), nil

	case OpCodeReadBdAddr:
		status, rest, err := parseStatusParameter(b)
		if err != nil {
			return EventParameter{}, err
		}
		if status != ErrorCodeSuccess {
			return StatusAndBdAddrEventParameter{Status: status}.asEventParameter(), nil
		}
		if len(rest) != 6 {
			return EventParameter{}, newError(KindInvalidEventPacket, "Read_BD_ADDR return parameters wrong length")
		}
		var octets [6]byte
		copy(octets[:], rest[:6])
		return StatusAndBdAddrEventParameter{Status: status, Address: NewPublicDeviceAddress(octets)}.asEventParameter(), nil

	case OpCodeLeReadBufferSize:
		status, rest, err := parseStatusParameter(b)
		if err != nil {
			return EventParameter{}, err
		}
		if status != ErrorCodeSuccess {
			return StatusAndLeBufferSizeEventParameter{Status: status}.asEventParameter(), nil
		}
		if len(rest) != 3 {
			return EventParameter{}, newError(KindInvalidEventPacket, "LE_Read_Buffer_Size return parameters wrong length")
		}
		return StatusAndLeBufferSizeEventParameter{
			Status:                   status,
			LeAclDataPacketLength:    binary.LittleEndian.Uint16(rest[0:2]),
			TotalNumLeAclDataPackets: rest[2],
		}.asEventParameter(), nil

	case OpCodeLeReadLocalSupportedFeaturesPage0:
		status, rest, err := parseStatusParameter(b)
		if err != nil {
			return EventParameter{}, err
		}
		if status != ErrorCodeSuccess {
			return StatusAndSupportedLeFeaturesEventParameter{Status: status}.asEventParameter(), nil
		}
		if len(rest) != 8 {
			return EventParameter{}, newError(KindInvalidEventPacket, "LE_Read_Local_Supported_Features_Page_0 return parameters wrong length")
		}
		return StatusAndSupportedLeFeaturesEventParameter{
			Status:              status,
			SupportedLeFeatures: parseSupportedLeFeatures(rest[:8]),
		}.asEventParameter(), nil

	case OpCodeLeReadSupportedStates:
		status, rest, err := parseStatusParameter(b)
		if err != nil {
			return EventParameter{}, err
		}
		if status != ErrorCodeSuccess {
			return StatusAndSupportedLeStatesEventParameter{Status: status}.asEventParameter(), nil
		}
		if len(rest) != 8 {
			return EventParameter{}, newError(KindInvalidEventPacket, "LE_Read_Supported_States return parameters wrong length")
		}
		return StatusAndSupportedLeStatesEventParameter{
			Status:            status,
			SupportedLeStates: parseSupportedLeStates(rest[:8]),
		}.asEventParameter(), nil

	case OpCodeReadRssi:
		status, rest, err := parseStatusParameter(b)
		if err != nil {
			return EventParameter{}, err
		}
		if status != ErrorCodeSuccess {
			return StatusAndRssiEventParameter{Status: status}.asEventParameter(), nil
		}
		if len(rest) != 3 {
			return EventParameter{}, newError(KindInvalidEventPacket, "Read_RSSI return parameters wrong length")
		}
		handle, err := NewConnectionHandle(binary.LittleEndian.Uint16(rest[0:2]))
		if err != nil {
			return EventParameter{}, err
		}
		rssi, err := NewRssi(int8(rest[2]))
		if err != nil {
			return EventParameter{}, err
		}
		return StatusAndRssiEventParameter{Status: status, ConnectionHandle: handle, Rssi: rssi}.asEventParameter(), nil

	case OpCodeLeReadAdvertisingChannelTxPower:
		status, rest, err := parseStatusParameter(b)
		if err != nil {
			return EventParameter{}, err
		}
		if status != ErrorCodeSuccess {
			return StatusAndTxPowerLevelEventParameter{Status: status}.asEventParameter(), nil
		}
		if len(rest) != 1 {
			return EventParameter{}, newError(KindInvalidEventPacket, "LE_Read_Advertising_Physical_Channel_Tx_Power return parameters wrong length")
		}
		level, err := NewTxPowerLevel(int8(rest[0]))
		if err != nil {
			return EventParameter{}, err
		}
		return StatusAndTxPowerLevelEventParameter{Status: status, TxPowerLevel: level}.asEventParameter(), nil

	case OpCodeSetEventMask, OpCodeReset,
		OpCodeLeSetEventMask, OpCodeLeSetRandomAddress, OpCodeLeSetAdvertisingParameters,
		OpCodeLeSetAdvertisingData, OpCodeLeSetScanResponseData, OpCodeLeSetAdvertisingEnable,
		OpCodeLeSetScanParameters, OpCodeLeSetScanEnable, OpCodeLeCreateConnectionCancel,
		OpCodeLeConnectionUpdate, OpCodeLeRemoteConnectionParamRequestReply:
		status, rest, err := parseStatusParameter(b)
		if err != nil {
			return EventParameter{}, err
		}
		if status == ErrorCodeSuccess && len(rest) != 0 {
			return EventParameter{}, newError(KindInvalidEventPacket, "%s return parameters wrong length", opcode)
		}
		return StatusEventParameter{Status: status}.asEventParameter(), nil

	case OpCodeLeRand:
		status, rest, err := parseStatusParameter(b)
		if err != nil {
			return EventParameter{}, err
		}
		if status != ErrorCodeSuccess {
			return StatusAndRandomNumberEventParameter{Status: status}.asEventParameter(), nil
		}
		if len(rest) != 8 {
			return EventParameter{}, newError(KindInvalidEventPacket, "LE_Rand return parameters wrong length")
		}
		var randomNumber [8]byte
		copy(randomNumber[:], rest[:8])
		return StatusAndRandomNumberEventParameter{Status: status, RandomNumber: randomNumber}.asEventParameter(), nil

	default:
		return EventParameter{}, newError(KindInvalidEventPacket, "no known return-parameter shape for opcode %s", opcode)
	}
}

// Role is the Central/Peripheral role of the local Controller in an LE
// connection, as reported in the LE_Connection_Complete subevent.
type Role uint8

const (
	RoleCentral    Role = 0x00
	RolePeripheral Role = 0x01
)

func ParseRole(v uint8) (Role, error) {
	switch Role(v) {
	case RoleCentral, RolePeripheral:
		return Role(v), nil
	default:
		return 0, newError(KindInvalidRole, "invalid role %#02x", v)
	}
}

// CentralClockAccuracy is the Central's sleep clock accuracy, as reported
// in the LE_Connection_Complete subevent.
type CentralClockAccuracy uint8

const (
	CentralClockAccuracyPpm500 CentralClockAccuracy = 0x00
	CentralClockAccuracyPpm250 CentralClockAccuracy = 0x01
	CentralClockAccuracyPpm150 CentralClockAccuracy = 0x02
	CentralClockAccuracyPpm100 CentralClockAccuracy = 0x03
	CentralClockAccuracyPpm75  CentralClockAccuracy = 0x04
	CentralClockAccuracyPpm50  CentralClockAccuracy = 0x05
	CentralClockAccuracyPpm30  CentralClockAccuracy = 0x06
	CentralClockAccuracyPpm20  CentralClockAccuracy = 0x07
)

func ParseCentralClockAccuracy(v uint8) (CentralClockAccuracy, error) {
	if v > uint8(CentralClockAccuracyPpm20) {
		return 0, newError(KindInvalidCentralClockAccuracy, "invalid central clock accuracy %#02x", v)
	}
	return CentralClockAccuracy(v), nil
}

// LeConnectionCompleteEvent is the LE Meta subevent reporting the result
// of an LE_Create_Connection or an incoming connection.
type LeConnectionCompleteEvent struct {
	Status                ErrorCode
	ConnectionHandle      ConnectionHandle
	Role                  Role
	PeerAddress           DeviceAddress
	ConnectionInterval    ConnectionInterval
	PeripheralLatency     Latency
	SupervisionTimeout    SupervisionTimeout
	CentralClockAccuracy  CentralClockAccuracy
}

func parseLeConnectionCompleteEvent(b []byte) (LeConnectionCompleteEvent, error) {
	if len(b) != 18 {
		return LeConnectionCompleteEvent{}, newError(KindInvalidEventPacket, "LE_Connection_Complete subevent wrong length")
	}
	status, err := ParseErrorCode(b[0])
	if err != nil {
		return LeConnectionCompleteEvent{}, err
	}
	handle, err := NewConnectionHandle(binary.LittleEndian.Uint16(b[1:3]))
	if err != nil {
		return LeConnectionCompleteEvent{}, err
	}
	role, err := ParseRole(b[3])
	if err != nil {
		return LeConnectionCompleteEvent{}, err
	}
	peerAddressType, err := parsePeerAddressType(b[4])
	if err != nil {
		return LeConnectionCompleteEvent{}, err
	}
	var octets [6]byte
	copy(octets[:], b[5:11])
	peerAddress, err := addressFromPeerAddressType(peerAddressType, octets)
	if err != nil {
		return LeConnectionCompleteEvent{}, err
	}
	interval, err := NewConnectionInterval(binary.LittleEndian.Uint16(b[11:13]))
	if err != nil {
		return LeConnectionCompleteEvent{}, err
	}
	latency, err := NewLatency(binary.LittleEndian.Uint16(b[13:15]))
	if err != nil {
		return LeConnectionCompleteEvent{}, err
	}
	timeout, err := NewSupervisionTimeout(binary.LittleEndian.Uint16(b[15:17]))
	if err != nil {
		return LeConnectionCompleteEvent{}, err
	}
	accuracy, err := ParseCentralClockAccuracy(b[17])
	if err != nil {
		return LeConnectionCompleteEvent{}, err
	}
	return LeConnectionCompleteEvent{
		Status:               status,
		ConnectionHandle:     handle,
		Role:                 role,
		PeerAddress:          peerAddress,
		ConnectionInterval:   interval,
		PeripheralLatency:    latency,
		SupervisionTimeout:   timeout,
		CentralClockAccuracy: accuracy,
	}, nil
}

// parsePeerAddressType validates a wire address-type octet as used in the
// LE_Connection_Complete subevent (Public or Random only).
func parsePeerAddressType(v uint8) (PeerAddressType, error) {
	switch PeerAddressType(v) {
	case PeerAddressTypePublic, PeerAddressTypeRandom:
		return PeerAddressType(v), nil
	default:
		return 0, newError(KindInvalidPeerAddressType, "invalid peer address type %#02x", v)
	}
}

// addressFromPeerAddressType reconstructs a DeviceAddress from the wire
// address-type octet and raw octets as reported by the Controller in an
// event (as opposed to the Host-supplied ConnectionPeerAddress used when
// issuing LE_Create_Connection).
func addressFromPeerAddressType(t PeerAddressType, octets [6]byte) (DeviceAddress, error) {
	switch t {
	case PeerAddressTypePublic:
		return NewPublicAddress(NewPublicDeviceAddress(octets)), nil
	case PeerAddressTypeRandom:
		random, err := NewRandomAddressFromOctets(octets)
		if err != nil {
			return DeviceAddress{}, err
		}
		return NewRandomAddress(random), nil
	default:
		return DeviceAddress{}, newError(KindInvalidPeerAddressType, "unexpected peer address type %#02x in event", t)
	}
}

// parseConnectionPeerAddressType validates a wire address-type octet as
// used in an LE Advertising Report (all four ConnectionPeerAddressType
// variants).
func parseConnectionPeerAddressType(v uint8) (ConnectionPeerAddressType, error) {
	switch ConnectionPeerAddressType(v) {
	case ConnectionPeerAddressTypePublicDevice, ConnectionPeerAddressTypeRandomDevice,
		ConnectionPeerAddressTypePublicIdentity, ConnectionPeerAddressTypeRandomIdentity:
		return ConnectionPeerAddressType(v), nil
	default:
		return 0, newError(KindInvalidLeAdvertisingReportAddressType, "invalid advertising report address type %#02x", v)
	}
}

// connectionPeerAddressFromOctets builds a ConnectionPeerAddress from raw
// wire octets, validating them as a RandomAddress when the address type
// calls for one.
func connectionPeerAddressFromOctets(addrType ConnectionPeerAddressType, octets [6]byte) (ConnectionPeerAddress, error) {
	switch addrType {
	case ConnectionPeerAddressTypeRandomDevice, ConnectionPeerAddressTypeRandomIdentity:
		random, err := NewRandomAddressFromOctets(octets)
		if err != nil {
			return ConnectionPeerAddress{}, err
		}
		return NewConnectionPeerAddress(addrType, PublicDeviceAddress{}, random), nil
	default:
		return NewConnectionPeerAddress(addrType, NewPublicDeviceAddress(octets), RandomAddress{}), nil
	}
}

// LeConnectionUpdateCompleteEvent reports the outcome of an
// LE_Connection_Update, whether Host-initiated or accepted from a peer
// request.
type LeConnectionUpdateCompleteEvent struct {
	Status             ErrorCode
	ConnectionHandle   ConnectionHandle
	ConnectionInterval ConnectionInterval
	PeripheralLatency  Latency
	SupervisionTimeout SupervisionTimeout
}

func parseLeConnectionUpdateCompleteEvent(b []byte) (LeConnectionUpdateCompleteEvent, error) {
	if len(b) != 9 {
		return LeConnectionUpdateCompleteEvent{}, newError(KindInvalidEventPacket, "LE_Connection_Update_Complete subevent wrong length")
	}
	status, err := ParseErrorCode(b[0])
	if err != nil {
		return LeConnectionUpdateCompleteEvent{}, err
	}
	handle, err := NewConnectionHandle(binary.LittleEndian.Uint16(b[1:3]))
	if err != nil {
		return LeConnectionUpdateCompleteEvent{}, err
	}
	interval, err := NewConnectionInterval(binary.LittleEndian.Uint16(b[3:5]))
	if err != nil {
		return LeConnectionUpdateCompleteEvent{}, err
	}
	latency, err := NewLatency(binary.LittleEndian.Uint16(b[5:7]))
	if err != nil {
		return LeConnectionUpdateCompleteEvent{}, err
	}
	timeout, err := NewSupervisionTimeout(binary.LittleEndian.Uint16(b[7:9]))
	if err != nil {
		return LeConnectionUpdateCompleteEvent{}, err
	}
	return LeConnectionUpdateCompleteEvent{
		Status:             status,
		ConnectionHandle:   handle,
		ConnectionInterval: interval,
		PeripheralLatency:  latency,
		SupervisionTimeout: timeout,
	}, nil
}

// DisconnectionCompleteEvent reports that a connection has been
// terminated.
type DisconnectionCompleteEvent struct {
	Status           ErrorCode
	ConnectionHandle ConnectionHandle
	Reason           ErrorCode
}

func parseDisconnectionCompleteEvent(b []byte) (DisconnectionCompleteEvent, error) {
	if len(b) != 4 {
		return DisconnectionCompleteEvent{}, newError(KindInvalidEventPacket, "Disconnection_Complete event wrong length")
	}
	status, err := ParseErrorCode(b[0])
	if err != nil {
		return DisconnectionCompleteEvent{}, err
	}
	handle, err := NewConnectionHandle(binary.LittleEndian.Uint16(b[1:3]))
	if err != nil {
		return DisconnectionCompleteEvent{}, err
	}
	reason, err := ParseErrorCode(b[3])
	if err != nil {
		return DisconnectionCompleteEvent{}, err
	}
	return DisconnectionCompleteEvent{Status: status, ConnectionHandle: handle, Reason: reason}, nil
}

// LeAdvertisingReportEventType classifies the advertising PDU an LE
// Advertising Report was built from.
type LeAdvertisingReportEventType uint8

const (
	LeAdvertisingReportConnectableUndirected    LeAdvertisingReportEventType = 0x00
	LeAdvertisingReportConnectableDirected      LeAdvertisingReportEventType = 0x01
	LeAdvertisingReportScannableUndirected      LeAdvertisingReportEventType = 0x02
	LeAdvertisingReportNonConnectableUndirected LeAdvertisingReportEventType = 0x03
	LeAdvertisingReportScanResponse             LeAdvertisingReportEventType = 0x04
)

func parseLeAdvertisingReportEventType(v uint8) (LeAdvertisingReportEventType, error) {
	switch LeAdvertisingReportEventType(v) {
	case LeAdvertisingReportConnectableUndirected, LeAdvertisingReportConnectableDirected,
		LeAdvertisingReportScannableUndirected, LeAdvertisingReportNonConnectableUndirected,
		LeAdvertisingReportScanResponse:
		return LeAdvertisingReportEventType(v), nil
	default:
		return 0, newError(KindInvalidLeAdvertisingReportEventType, "invalid advertising report event type %#02x", v)
	}
}

// LeAdvertisingReport is one report within an LE Advertising Report
// event's list.
type LeAdvertisingReport struct {
	EventType LeAdvertisingReportEventType
	Address   ConnectionPeerAddress
	Data      []byte
	Rssi      Rssi
	HasRssi   bool
}

// rssiNotAvailable is the sentinel value meaning "RSSI not available"
// (Core Spec 6.0, Vol. 4, Part E, §7.7.65.2).
const rssiNotAvailable = 0x7F

// LeAdvertisingReportList is the full set of reports carried by a single
// LE Advertising Report event.
type LeAdvertisingReportList struct {
	Reports []LeAdvertisingReport
}

func (l LeAdvertisingReportList) Len() int { return len(l.Reports) }

// parseLeAdvertisingReportEvent parses every report in the event, only
// returning a populated list once every report has parsed successfully
// (matching the validate-before-construct discipline of the source this
// is grounded on). The declared report count must exactly account for
// every byte of b; anything left over is rejected rather than ignored.
func parseLeAdvertisingReportEvent(b []byte) (LeAdvertisingReportList, error) {
	if len(b) < 1 {
		return LeAdvertisingReportList{}, newError(KindInvalidLeAdvertisingReportNumReports, "LE Advertising Report event missing report count")
	}
	numReports := int(b[0])
	if numReports < 1 || numReports > 0x19 {
		return LeAdvertisingReportList{}, newError(KindInvalidLeAdvertisingReportNumReports, "invalid advertising report count %d", numReports)
	}
	rest := b[1:]

	reports := make([]LeAdvertisingReport, 0, numReports)
	for i := 0; i < numReports; i++ {
		if len(rest) < 1 {
			return LeAdvertisingReportList{}, newError(KindInvalidEventPacket, "truncated LE advertising report")
		}
		eventType, err := parseLeAdvertisingReportEventType(rest[0])
		if err != nil {
			return LeAdvertisingReportList{}, err
		}
		if len(rest) < 8 {
			return LeAdvertisingReportList{}, newError(KindInvalidEventPacket, "truncated LE advertising report address")
		}
		addressType, err := parseConnectionPeerAddressType(rest[1])
		if err != nil {
			return LeAdvertisingReportList{}, err
		}
		var octets [6]byte
		copy(octets[:], rest[2:8])
		address, err := connectionPeerAddressFromOctets(addressType, octets)
		if err != nil {
			return LeAdvertisingReportList{}, err
		}
		rest = rest[8:]

		if len(rest) < 1 {
			return LeAdvertisingReportList{}, newError(KindInvalidEventPacket, "truncated LE advertising report data length")
		}
		dataLen := int(rest[0])
		if len(rest) < 1+dataLen+1 {
			return LeAdvertisingReportList{}, newError(KindInvalidEventPacket, "truncated LE advertising report data")
		}
		data := make([]byte, dataLen)
		copy(data, rest[1:1+dataLen])
		rest = rest[1+dataLen:]

		rssiByte := int8(rest[0])
		rest = rest[1:]
		report := LeAdvertisingReport{EventType: eventType, Address: address, Data: data}
		if rssiByte != rssiNotAvailable {
			rssi, err := NewRssi(rssiByte)
			if err != nil {
				return LeAdvertisingReportList{}, err
			}
			report.Rssi = rssi
			report.HasRssi = true
		}
		reports = append(reports, report)
	}
	if len(rest) != 0 {
		return LeAdvertisingReportList{}, newError(KindInvalidEventPacket, "LE Advertising Report event has %d trailing bytes beyond its declared reports", len(rest))
	}
	return LeAdvertisingReportList{Reports: reports}, nil
}
