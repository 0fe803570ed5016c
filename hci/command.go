package hci

// Command is an HCI command sent from Host to Controller. Like
// DeviceAddress and EventParameter, it is a Kind-discriminated struct:
// callers switch on Kind and read the one field that Kind says is
// populated, instead of a type-switch over an interface.
//
// The variant set here is a superset of the command.rs this stack is
// grounded on: that source leaves LeAddDeviceToFilterAcceptList,
// LeClearFilterAcceptList, LeEncrypt, LeReadFilterAcceptListSize, and
// LeRemoveDeviceFromFilterAcceptList commented out and unimplemented, and
// this implementation does too. The extra variants below
// (Disconnect, ReadRssi, LeSetScanParameters, LeSetScanEnable,
// LeCreateConnection, LeCreateConnectionCancel, LeConnectionUpdate,
// LeRemoteConnectionParamRequestReply) round out scanning and
// connection-establishment, which opcode.go already names.
type Command struct {
	Kind CommandKind

	ReadRssi                          ConnectionHandle
	Disconnect                        DisconnectCommand
	LeSetEventMask                    LeEventMask
	LeSetAdvertisingEnable            AdvertisingEnable
	LeSetAdvertisingData              AdvertisingData
	LeSetAdvertisingParameters        AdvertisingParameters
	LeSetRandomAddress                RandomStaticDeviceAddress
	LeSetScanResponseData             ScanResponseData
	LeSetScanParameters               ScanParameters
	LeSetScanEnable                   LeSetScanEnableCommand
	LeCreateConnection                ConnectionParameters
	LeConnectionUpdate                ConnectionUpdateParameters
	LeRemoteConnectionParamReply      LeRemoteConnectionParamRequestReplyCommand
	SetEventMask                      EventMask
	Unsupported                       OpCode
}

type CommandKind uint8

const (
	CommandNop CommandKind = iota
	CommandLeRand
	CommandLeReadAdvertisingChannelTxPower
	CommandLeReadBufferSize
	CommandLeReadLocalSupportedFeaturesPage0
	CommandLeReadSupportedStates
	CommandLeSetEventMask
	CommandLeSetAdvertisingEnable
	CommandLeSetAdvertisingData
	CommandLeSetAdvertisingParameters
	CommandLeSetRandomAddress
	CommandLeSetScanResponseData
	CommandLeSetScanParameters
	CommandLeSetScanEnable
	CommandLeCreateConnection
	CommandLeCreateConnectionCancel
	CommandLeConnectionUpdate
	CommandLeRemoteConnectionParamRequestReply
	CommandReadBdAddr
	CommandReadBufferSize
	CommandReadLocalSupportedCommands
	CommandReadLocalSupportedFeatures
	CommandReadRssi
	CommandReset
	CommandDisconnect
	CommandSetEventMask
	CommandUnsupported
)

// DisconnectCommand is the parameter set for the Disconnect command
// (Link Control OGF): terminate an existing connection, citing a reason
// taken from the same ErrorCode enumeration used for status reporting.
type DisconnectCommand struct {
	Handle ConnectionHandle
	Reason ErrorCode
}

func (c DisconnectCommand) Encode(buf *Buffer) (int, error) {
	if _, err := c.Handle.Encode(buf); err != nil {
		return 0, err
	}
	if err := buf.TryPushUint8(uint8(c.Reason)); err != nil {
		return 0, err
	}
	return 3, nil
}

func (c DisconnectCommand) EncodedSize() int { return 3 }

// LeSetScanEnableCommand is the parameter set for LE_Set_Scan_Enable.
type LeSetScanEnableCommand struct {
	Enable           ScanEnable
	FilterDuplicates FilterDuplicates
}

func (c LeSetScanEnableCommand) Encode(buf *Buffer) (int, error) {
	if _, err := c.Enable.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := c.FilterDuplicates.Encode(buf); err != nil {
		return 0, err
	}
	return 2, nil
}

func (c LeSetScanEnableCommand) EncodedSize() int { return 2 }

// LeRemoteConnectionParamRequestReplyCommand is the parameter set for
// LE_Remote_Connection_Parameter_Request_Reply, the Host's positive
// response to a peer-initiated connection parameter update request.
type LeRemoteConnectionParamRequestReplyCommand struct {
	Handle                     ConnectionHandle
	ConnectionIntervalRange    ConnectionIntervalRange
	MaxLatency                 MaxLatency
	SupervisionTimeout         SupervisionTimeout
	ConnectionEventLengthRange ConnectionEventLengthRange
}

func (c LeRemoteConnectionParamRequestReplyCommand) Encode(buf *Buffer) (int, error) {
	if _, err := c.Handle.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := c.ConnectionIntervalRange.Min.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := c.ConnectionIntervalRange.Max.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := c.MaxLatency.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := c.SupervisionTimeout.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := c.ConnectionEventLengthRange.Min.Encode(buf); err != nil {
		return 0, err
	}
	if _, err := c.ConnectionEventLengthRange.Max.Encode(buf); err != nil {
		return 0, err
	}
	return c.EncodedSize(), nil
}

func (c LeRemoteConnectionParamRequestReplyCommand) EncodedSize() int { return 2 + 2 + 2 + 2 + 2 + 2 + 2 }

// OpCode returns the opcode this command is dispatched under.
func (c Command) OpCode() OpCode {
	switch c.Kind {
	case CommandNop:
		return OpCodeNop
	case CommandLeRand:
		return OpCodeLeRand
	case CommandLeReadAdvertisingChannelTxPower:
		return OpCodeLeReadAdvertisingChannelTxPower
	case CommandLeReadBufferSize:
		return OpCodeLeReadBufferSize
	case CommandLeReadLocalSupportedFeaturesPage0:
		return OpCodeLeReadLocalSupportedFeaturesPage0
	case CommandLeReadSupportedStates:
		return OpCodeLeReadSupportedStates
	case CommandLeSetEventMask:
		return OpCodeLeSetEventMask
	case CommandLeSetAdvertisingEnable:
		return OpCodeLeSetAdvertisingEnable
	case CommandLeSetAdvertisingData:
		return OpCodeLeSetAdvertisingData
	case CommandLeSetAdvertisingParameters:
		return OpCodeLeSetAdvertisingParameters
	case CommandLeSetRandomAddress:
		return OpCodeLeSetRandomAddress
	case CommandLeSetScanResponseData:
		return OpCodeLeSetScanResponseData
	case CommandLeSetScanParameters:
		return OpCodeLeSetScanParameters
	case CommandLeSetScanEnable:
		return OpCodeLeSetScanEnable
	case CommandLeCreateConnection:
		return OpCodeLeCreateConnection
	case CommandLeCreateConnectionCancel:
		return OpCodeLeCreateConnectionCancel
	case CommandLeConnectionUpdate:
		return OpCodeLeConnectionUpdate
	case CommandLeRemoteConnectionParamRequestReply:
		return OpCodeLeRemoteConnectionParamRequestReply
	case CommandReadBdAddr:
		return OpCodeReadBdAddr
	case CommandReadBufferSize:
		return OpCodeReadBufferSize
	case CommandReadLocalSupportedCommands:
		return OpCodeReadLocalSupportedCommands
	case CommandReadLocalSupportedFeatures:
		return OpCodeReadLocalSupportedFeatures
	case CommandReadRssi:
		return OpCodeReadRssi
	case CommandReset:
		return OpCodeReset
	case CommandDisconnect:
		return OpCodeDisconnectLink
	case CommandSetEventMask:
		return OpCodeSetEventMask
	case CommandUnsupported:
		return c.Unsupported
	default:
		return OpCodeNop
	}
}

// commandPacketMaxSize is Packet Type (1) + Opcode (2) + Parameter Total
// Length (1) + up to 255 bytes of parameters.
const commandPacketMaxSize = 259

const (
	commandPacketTypeOffset   = 0
	commandPacketOpcodeOffset = 1
	commandPacketLengthOffset = 3
	commandPacketDataOffset   = 4
)

// EncodeCommand serializes a Command into a full HCI Command packet
// (packet type octet, opcode, parameter length, parameters).
func EncodeCommand(c Command) ([]byte, error) {
	if c.Kind == CommandUnsupported {
		return nil, invalidCommand(uint16(c.Unsupported))
	}

	buf := NewBuffer(commandPacketMaxSize)
	// INVARIANT: commandPacketMaxSize always has room for the 4-byte header.
	if err := buf.TryPushUint8(uint8(PacketTypeCommand)); err != nil {
		return nil, err
	}
	if err := buf.EncodeLEUint16(uint16(c.OpCode())); err != nil {
		return nil, err
	}
	if err := buf.TryPushUint8(0); err != nil {
		return nil, err
	}

	var n int
	var err error
	switch c.Kind {
	case CommandNop, CommandLeRand, CommandLeReadAdvertisingChannelTxPower, CommandLeReadBufferSize,
		CommandLeReadLocalSupportedFeaturesPage0, CommandLeReadSupportedStates, CommandReadBdAddr,
		CommandReadBufferSize, CommandReadLocalSupportedCommands, CommandReadLocalSupportedFeatures,
		CommandReset, CommandLeCreateConnectionCancel:
		// No parameters.
	case CommandReadRssi:
		n, err = c.ReadRssi.Encode(buf)
	case CommandDisconnect:
		n, err = c.Disconnect.Encode(buf)
	case CommandLeSetEventMask:
		n, err = c.LeSetEventMask.Encode(buf)
	case CommandLeSetAdvertisingEnable:
		n, err = c.LeSetAdvertisingEnable.Encode(buf)
	case CommandLeSetAdvertisingData:
		n, err = c.LeSetAdvertisingData.Encode(buf)
	case CommandLeSetAdvertisingParameters:
		n, err = c.LeSetAdvertisingParameters.Encode(buf)
	case CommandLeSetRandomAddress:
		n, err = c.LeSetRandomAddress.Encode(buf)
	case CommandLeSetScanResponseData:
		n, err = c.LeSetScanResponseData.Encode(buf)
	case CommandLeSetScanParameters:
		n, err = c.LeSetScanParameters.Encode(buf)
	case CommandLeSetScanEnable:
		n, err = c.LeSetScanEnable.Encode(buf)
	case CommandLeCreateConnection:
		n, err = c.LeCreateConnection.Encode(buf)
	case CommandLeConnectionUpdate:
		n, err = c.LeConnectionUpdate.Encode(buf)
	case CommandLeRemoteConnectionParamRequestReply:
		n, err = c.LeRemoteConnectionParamReply.Encode(buf)
	case CommandSetEventMask:
		n, err = c.SetEventMask.Encode(buf)
	default:
		return nil, invalidCommand(uint16(c.OpCode()))
	}
	if err != nil {
		return nil, newError(KindDataWillNotFitCommandPacket, "command parameters do not fit the command packet: %v", err)
	}

	data := buf.Bytes()
	data[commandPacketLengthOffset] = byte(n)
	return data, nil
}
