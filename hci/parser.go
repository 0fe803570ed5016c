package hci

import "encoding/binary"

// This file holds the streaming decoders for every packet body this stack
// understands: plain sequential reads over a byte slice, replacing the
// parser-combinator style of the source this is grounded on with direct
// slicing, the idiomatic Go equivalent.

func parseOpCode(b []byte) (OpCode, []byte, error) {
	if len(b) < 2 {
		return 0, nil, newError(KindInvalidPacket, "truncated opcode")
	}
	return OpCode(binary.LittleEndian.Uint16(b[0:2])), b[2:], nil
}

func parseParameterTotalLength(b []byte) (int, []byte, error) {
	if len(b) < 1 {
		return 0, nil, newError(KindInvalidPacket, "truncated parameter length")
	}
	return int(b[0]), b[1:], nil
}

// parseCommand decodes a Command packet body (opcode, parameter length,
// parameters), returning the command and any bytes beyond it.
func parseCommand(b []byte) (Command, []byte, error) {
	opcode, rest, err := parseOpCode(b)
	if err != nil {
		return Command{}, nil, err
	}
	length, rest, err := parseParameterTotalLength(rest)
	if err != nil {
		return Command{}, nil, err
	}
	if len(rest) < length {
		return Command{}, nil, newError(KindInvalidPacket, "command parameters shorter than declared length")
	}
	parameters, tail := rest[:length], rest[length:]

	cmd, err := parseCommandParameters(opcode, parameters)
	if err != nil {
		return Command{}, nil, err
	}
	return cmd, tail, nil
}

func parseCommandParameters(opcode OpCode, p []byte) (Command, error) {
	switch opcode {
	case OpCodeNop:
		return Command{Kind: CommandNop}, nil
	case OpCodeSetEventMask:
		if len(p) < 8 {
			return Command{}, newError(KindInvalidPacket, "Set_Event_Mask parameters too short")
		}
		return Command{Kind: CommandSetEventMask, SetEventMask: EventMask(binary.LittleEndian.Uint64(p[:8]))}, nil
	case OpCodeReset:
		return Command{Kind: CommandReset}, nil
	case OpCodeReadLocalSupportedCommands:
		return Command{Kind: CommandReadLocalSupportedCommands}, nil
	case OpCodeReadLocalSupportedFeatures:
		return Command{Kind: CommandReadLocalSupportedFeatures}, nil
	case OpCodeReadBufferSize:
		return Command{Kind: CommandReadBufferSize}, nil
	case OpCodeReadBdAddr:
		return Command{Kind: CommandReadBdAddr}, nil
	case OpCodeReadRssi:
		if len(p) < 2 {
			return Command{}, newError(KindInvalidPacket, "Read_RSSI parameters too short")
		}
		handle, err := NewConnectionHandle(binary.LittleEndian.Uint16(p[:2]))
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandReadRssi, ReadRssi: handle}, nil
	case OpCodeDisconnectLink:
		if len(p) < 3 {
			return Command{}, newError(KindInvalidPacket, "Disconnect parameters too short")
		}
		handle, err := NewConnectionHandle(binary.LittleEndian.Uint16(p[0:2]))
		if err != nil {
			return Command{}, err
		}
		reason, err := ParseErrorCode(p[2])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandDisconnect, Disconnect: DisconnectCommand{Handle: handle, Reason: reason}}, nil
	case OpCodeLeSetEventMask:
		if len(p) < 8 {
			return Command{}, newError(KindInvalidPacket, "LE_Set_Event_Mask parameters too short")
		}
		return Command{Kind: CommandLeSetEventMask, LeSetEventMask: LeEventMask(binary.LittleEndian.Uint64(p[:8]))}, nil
	case OpCodeLeReadBufferSize:
		return Command{Kind: CommandLeReadBufferSize}, nil
	case OpCodeLeReadLocalSupportedFeaturesPage0:
		return Command{Kind: CommandLeReadLocalSupportedFeaturesPage0}, nil
	case OpCodeLeSetRandomAddress:
		if len(p) < 6 {
			return Command{}, newError(KindInvalidPacket, "LE_Set_Random_Address parameters too short")
		}
		var octets [6]byte
		copy(octets[:], p[:6])
		addr, err := NewRandomStaticDeviceAddress(octets)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandLeSetRandomAddress, LeSetRandomAddress: addr}, nil
	case OpCodeLeSetAdvertisingParameters:
		params, err := parseAdvertisingParameters(p)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandLeSetAdvertisingParameters, LeSetAdvertisingParameters: params}, nil
	case OpCodeLeReadAdvertisingChannelTxPower:
		return Command{Kind: CommandLeReadAdvertisingChannelTxPower}, nil
	case OpCodeLeSetAdvertisingData:
		data, err := ParseAdvertisingData(p)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandLeSetAdvertisingData, LeSetAdvertisingData: data}, nil
	case OpCodeLeSetScanResponseData:
		data, err := ParseScanResponseData(p)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandLeSetScanResponseData, LeSetScanResponseData: data}, nil
	case OpCodeLeSetAdvertisingEnable:
		if len(p) < 1 {
			return Command{}, newError(KindInvalidPacket, "LE_Set_Advertising_Enable parameters too short")
		}
		enable, err := ParseAdvertisingEnable(p[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandLeSetAdvertisingEnable, LeSetAdvertisingEnable: enable}, nil
	case OpCodeLeSetScanParameters:
		params, err := parseScanParameters(p)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandLeSetScanParameters, LeSetScanParameters: params}, nil
	case OpCodeLeSetScanEnable:
		if len(p) < 2 {
			return Command{}, newError(KindInvalidPacket, "LE_Set_Scan_Enable parameters too short")
		}
		enable, err := ParseScanEnable(p[0])
		if err != nil {
			return Command{}, err
		}
		filterDuplicates, err := ParseFilterDuplicates(p[1])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandLeSetScanEnable, LeSetScanEnable: LeSetScanEnableCommand{Enable: enable, FilterDuplicates: filterDuplicates}}, nil
	case OpCodeLeCreateConnectionCancel:
		return Command{Kind: CommandLeCreateConnectionCancel}, nil
	case OpCodeLeRand:
		return Command{Kind: CommandLeRand}, nil
	case OpCodeLeReadSupportedStates:
		return Command{Kind: CommandLeReadSupportedStates}, nil
	default:
		return Command{Kind: CommandUnsupported, Unsupported: opcode}, nil
	}
}

// parseAdvertisingParameters decodes the 15-byte LE_Set_Advertising_Parameters
// command payload.
func parseAdvertisingParameters(p []byte) (AdvertisingParameters, error) {
	if len(p) < 15 {
		return AdvertisingParameters{}, newError(KindInvalidPacket, "LE_Set_Advertising_Parameters parameters too short")
	}
	min, err := NewAdvertisingInterval(binary.LittleEndian.Uint16(p[0:2]))
	if err != nil {
		return AdvertisingParameters{}, err
	}
	max, err := NewAdvertisingInterval(binary.LittleEndian.Uint16(p[2:4]))
	if err != nil {
		return AdvertisingParameters{}, err
	}
	rng, err := NewAdvertisingIntervalRange(min, max)
	if err != nil {
		return AdvertisingParameters{}, err
	}
	var peerAddress [6]byte
	copy(peerAddress[:], p[7:13])
	channelMap := AdvertisingChannelMap(p[13])
	if err := channelMap.Validate(); err != nil {
		return AdvertisingParameters{}, err
	}
	return AdvertisingParameters{
		IntervalRange:   rng,
		Type:            AdvertisingType(p[4]),
		OwnAddressType:  OwnAddressType(p[5]),
		PeerAddressType: PeerAddressType(p[6]),
		PeerAddress:     peerAddress,
		ChannelMap:      channelMap,
		FilterPolicy:    AdvertisingFilterPolicy(p[14]),
	}, nil
}

// parseScanParameters decodes the 7-byte LE_Set_Scan_Parameters command
// payload.
func parseScanParameters(p []byte) (ScanParameters, error) {
	if len(p) < 7 {
		return ScanParameters{}, newError(KindInvalidPacket, "LE_Set_Scan_Parameters parameters too short")
	}
	interval, err := NewScanInterval(binary.LittleEndian.Uint16(p[1:3]))
	if err != nil {
		return ScanParameters{}, err
	}
	window, err := NewScanWindow(binary.LittleEndian.Uint16(p[3:5]))
	if err != nil {
		return ScanParameters{}, err
	}
	return NewScanParameters(ScanType(p[0]), interval, window, OwnAddressType(p[5]), ScanningFilterPolicy(p[6]))
}

// parseEvent decodes an Event packet body (event code, parameter length,
// parameters), returning the event and any bytes beyond it.
func parseEvent(b []byte) (Event, []byte, error) {
	if len(b) < 1 {
		return Event{}, nil, newError(KindInvalidEventPacket, "truncated event code")
	}
	code := EventCode(b[0])
	length, rest, err := parseParameterTotalLength(b[1:])
	if err != nil {
		return Event{}, nil, err
	}
	if len(rest) < length {
		return Event{}, nil, newError(KindInvalidEventPacket, "event parameters shorter than declared length")
	}
	parameters, tail := rest[:length], rest[length:]

	switch code {
	case EventCodeCommandComplete:
		event, err := parseCommandCompleteEvent(parameters)
		if err != nil {
			return Event{}, nil, err
		}
		return Event{Kind: EventCommandComplete, CommandComplete: event}, tail, nil
	case EventCodeCommandStatus:
		event, err := parseCommandStatusEvent(parameters)
		if err != nil {
			return Event{}, nil, err
		}
		return Event{Kind: EventCommandStatus, CommandStatus: event}, tail, nil
	case EventCodeDisconnectionComplete:
		event, err := parseDisconnectionCompleteEvent(parameters)
		if err != nil {
			return Event{}, nil, err
		}
		return Event{Kind: EventDisconnectionComplete, DisconnectionComplete: event}, tail, nil
	case EventCodeLeMeta:
		event, err := parseLeMetaEvent(parameters)
		if err != nil {
			return Event{}, nil, err
		}
		return Event{Kind: EventLeMeta, LeMeta: event}, tail, nil
	default:
		return Event{Kind: EventUnsupported, UnsupportedCode: uint8(code)}, tail, nil
	}
}

func parseCommandCompleteEvent(b []byte) (CommandCompleteEvent, error) {
	if len(b) < 3 {
		return CommandCompleteEvent{}, newError(KindInvalidEventPacket, "Command_Complete event too short")
	}
	numHciCommandPackets := b[0]
	opcode, rest, err := parseOpCode(b[1:])
	if err != nil {
		return CommandCompleteEvent{}, err
	}
	parameter, err := parseCommandCompleteReturnParameters(opcode, rest)
	if err != nil {
		return CommandCompleteEvent{}, err
	}
	return CommandCompleteEvent{NumHciCommandPackets: numHciCommandPackets, Opcode: opcode, Parameter: parameter}, nil
}

func parseCommandStatusEvent(b []byte) (CommandStatusEvent, error) {
	if len(b) != 4 {
		return CommandStatusEvent{}, newError(KindInvalidEventPacket, "Command_Status event wrong length")
	}
	status, err := ParseErrorCode(b[0])
	if err != nil {
		return CommandStatusEvent{}, err
	}
	numHciCommandPackets := b[1]
	opcode, _, err := parseOpCode(b[2:])
	if err != nil {
		return CommandStatusEvent{}, err
	}
	return CommandStatusEvent{Status: status, NumHciCommandPackets: numHciCommandPackets, Opcode: opcode}, nil
}

func parseLeMetaEvent(b []byte) (LeMetaEvent, error) {
	if len(b) < 1 {
		return LeMetaEvent{}, newError(KindInvalidEventPacket, "LE Meta event missing subevent code")
	}
	subeventCode, parameters := b[0], b[1:]
	switch subeventCode {
	case leMetaSubeventConnectionComplete:
		event, err := parseLeConnectionCompleteEvent(parameters)
		if err != nil {
			return LeMetaEvent{}, err
		}
		return LeMetaEvent{Kind: LeMetaEventConnectionComplete, ConnectionComplete: event}, nil
	case leMetaSubeventAdvertisingReport:
		reports, err := parseLeAdvertisingReportEvent(parameters)
		if err != nil {
			return LeMetaEvent{}, err
		}
		return LeMetaEvent{Kind: LeMetaEventAdvertisingReport, AdvertisingReports: reports}, nil
	case leMetaSubeventConnectionUpdateComplete:
		event, err := parseLeConnectionUpdateCompleteEvent(parameters)
		if err != nil {
			return LeMetaEvent{}, err
		}
		return LeMetaEvent{Kind: LeMetaEventConnectionUpdateComplete, ConnectionUpdateComplete: event}, nil
	default:
		return LeMetaEvent{Kind: LeMetaEventUnsupported, UnsupportedSubeventCode: subeventCode}, nil
	}
}
