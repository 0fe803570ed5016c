package hci

import "fmt"

// OGF values (Core Spec 6.0, Vol. 4, Part E, §5.4.1).
const (
	ogfLinkControl            = 0x01
	ogfControllerAndBaseband  = 0x03
	ogfInformationalParams    = 0x04
	ogfStatusParams           = 0x05
	ogfLEController           = 0x08
)

// OpCode is a 16-bit Command opcode: ogf<<10 | ocf.
type OpCode uint16

func makeOpCode(ogf, ocf uint16) OpCode {
	return OpCode(ogf<<10 | ocf)
}

func (o OpCode) OGF() uint16 { return uint16(o) >> 10 }
func (o OpCode) OCF() uint16 { return uint16(o) & 0x03FF }

func (o OpCode) String() string {
	if name, ok := opCodeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("OpCode(ogf=%#02x,ocf=%#04x)", o.OGF(), o.OCF())
}

// OpCodeNop is the null opcode (OGF 0x00, OCF 0x0000): a Command_Complete
// with this opcode answers no issued command and carries no return
// parameters; it only updates the Host's command credit.
const OpCodeNop OpCode = 0

// Named opcodes. The LE Controller subset matches what this stack's
// original Rust implementation names directly; the Link Control opcode
// (Disconnect) and the Filter Accept List / LE_Connection_Update /
// LE_Create_Connection family it left unimplemented are grounded instead
// in the vendored HCI driver of the teacher BLE scanner, which issues
// exactly these OCFs against a real controller.
//
// The full opcode table is declared as package-level vars rather than a
// const block so makeOpCode (a two-argument shift-and-or) can be used
// directly instead of restating the packed bit layout at each call site.
var (
	OpCodeSetEventMask OpCode = makeOpCode(ogfControllerAndBaseband, 0x0001)
	OpCodeReset        OpCode = makeOpCode(ogfControllerAndBaseband, 0x0003)

	OpCodeReadLocalSupportedCommands OpCode = makeOpCode(ogfInformationalParams, 0x0002)
	OpCodeReadLocalSupportedFeatures OpCode = makeOpCode(ogfInformationalParams, 0x0003)
	OpCodeReadBufferSize             OpCode = makeOpCode(ogfInformationalParams, 0x0005)
	OpCodeReadBdAddr                 OpCode = makeOpCode(ogfInformationalParams, 0x0009)

	OpCodeReadRssi OpCode = makeOpCode(ogfStatusParams, 0x0005)

	OpCodeDisconnectLink OpCode = makeOpCode(ogfLinkControl, 0x0006)

	OpCodeLeSetEventMask                      OpCode = makeOpCode(ogfLEController, 0x0001)
	OpCodeLeReadBufferSize                    OpCode = makeOpCode(ogfLEController, 0x0002)
	OpCodeLeReadLocalSupportedFeaturesPage0   OpCode = makeOpCode(ogfLEController, 0x0003)
	OpCodeLeSetRandomAddress                  OpCode = makeOpCode(ogfLEController, 0x0005)
	OpCodeLeSetAdvertisingParameters          OpCode = makeOpCode(ogfLEController, 0x0006)
	OpCodeLeReadAdvertisingChannelTxPower     OpCode = makeOpCode(ogfLEController, 0x0007)
	OpCodeLeSetAdvertisingData                OpCode = makeOpCode(ogfLEController, 0x0008)
	OpCodeLeSetScanResponseData               OpCode = makeOpCode(ogfLEController, 0x0009)
	OpCodeLeSetAdvertisingEnable              OpCode = makeOpCode(ogfLEController, 0x000A)
	OpCodeLeSetScanParameters                 OpCode = makeOpCode(ogfLEController, 0x000B)
	OpCodeLeSetScanEnable                     OpCode = makeOpCode(ogfLEController, 0x000C)
	OpCodeLeCreateConnection                  OpCode = makeOpCode(ogfLEController, 0x000D)
	OpCodeLeCreateConnectionCancel            OpCode = makeOpCode(ogfLEController, 0x000E)
	OpCodeLeReadFilterAcceptListSize          OpCode = makeOpCode(ogfLEController, 0x000F)
	OpCodeLeClearFilterAcceptList             OpCode = makeOpCode(ogfLEController, 0x0010)
	OpCodeLeAddDeviceToFilterAcceptList       OpCode = makeOpCode(ogfLEController, 0x0011)
	OpCodeLeRemoveDeviceFromFilterAcceptList  OpCode = makeOpCode(ogfLEController, 0x0012)
	OpCodeLeConnectionUpdate                  OpCode = makeOpCode(ogfLEController, 0x0013)
	OpCodeLeEncrypt                           OpCode = makeOpCode(ogfLEController, 0x0017)
	OpCodeLeRand                              OpCode = makeOpCode(ogfLEController, 0x0018)
	OpCodeLeRemoteConnectionParamRequestReply OpCode = makeOpCode(ogfLEController, 0x0020)
	OpCodeLeReadSupportedStates               OpCode = makeOpCode(ogfLEController, 0x001C)

	opCodeNames = map[OpCode]string{
		OpCodeSetEventMask:                        "Set_Event_Mask",
		OpCodeReset:                                "Reset",
		OpCodeReadLocalSupportedCommands:           "Read_Local_Supported_Commands",
		OpCodeReadLocalSupportedFeatures:           "Read_Local_Supported_Features",
		OpCodeReadBufferSize:                       "Read_Buffer_Size",
		OpCodeReadBdAddr:                           "Read_BD_ADDR",
		OpCodeReadRssi:                             "Read_RSSI",
		OpCodeDisconnectLink:                       "Disconnect",
		OpCodeLeSetEventMask:                       "LE_Set_Event_Mask",
		OpCodeLeReadBufferSize:                     "LE_Read_Buffer_Size",
		OpCodeLeReadLocalSupportedFeaturesPage0:    "LE_Read_Local_Supported_Features_Page_0",
		OpCodeLeSetRandomAddress:                   "LE_Set_Random_Address",
		OpCodeLeSetAdvertisingParameters:           "LE_Set_Advertising_Parameters",
		OpCodeLeReadAdvertisingChannelTxPower:      "LE_Read_Advertising_Physical_Channel_Tx_Power",
		OpCodeLeSetAdvertisingData:                 "LE_Set_Advertising_Data",
		OpCodeLeSetScanResponseData:                "LE_Set_Scan_Response_Data",
		OpCodeLeSetAdvertisingEnable:               "LE_Set_Advertising_Enable",
		OpCodeLeSetScanParameters:                  "LE_Set_Scan_Parameters",
		OpCodeLeSetScanEnable:                      "LE_Set_Scan_Enable",
		OpCodeLeCreateConnection:                   "LE_Create_Connection",
		OpCodeLeCreateConnectionCancel:             "LE_Create_Connection_Cancel",
		OpCodeLeReadFilterAcceptListSize:           "LE_Read_Filter_Accept_List_Size",
		OpCodeLeClearFilterAcceptList:              "LE_Clear_Filter_Accept_List",
		OpCodeLeAddDeviceToFilterAcceptList:        "LE_Add_Device_To_Filter_Accept_List",
		OpCodeLeRemoveDeviceFromFilterAcceptList:   "LE_Remove_Device_From_Filter_Accept_List",
		OpCodeLeConnectionUpdate:                   "LE_Connection_Update",
		OpCodeLeEncrypt:                            "LE_Encrypt",
		OpCodeLeRand:                               "LE_Rand",
		OpCodeLeRemoteConnectionParamRequestReply:  "LE_Remote_Connection_Parameter_Request_Reply",
		OpCodeLeReadSupportedStates:                "LE_Read_Supported_States",
	}
)
