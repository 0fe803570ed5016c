package session

import (
	"context"
	"errors"

	"github.com/ridgeline-systems/blehci/hci"
)

// ErrUnexpectedParameterShape is returned when a Command_Complete event
// answers a known opcode with an EventParameter Kind this session didn't
// expect for it — a Controller bug, or a newer Controller feature this
// stack doesn't speak yet.
var ErrUnexpectedParameterShape = errors.New("session: unexpected Command_Complete parameter shape")

// Reset issues the Reset command.
func (s *Session) Reset(ctx context.Context) error {
	_, err := cmdWithCommandCompleteResponse(ctx, s, hci.Command{Kind: hci.CommandReset}, statusOnly)
	return err
}

// SetEventMask issues Set_Event_Mask.
func (s *Session) SetEventMask(ctx context.Context, mask hci.EventMask) error {
	cmd := hci.Command{Kind: hci.CommandSetEventMask, SetEventMask: mask}
	_, err := cmdWithCommandCompleteResponse(ctx, s, cmd, statusOnly)
	return err
}

// ReadLocalSupportedCommands issues Read_Local_Supported_Commands.
func (s *Session) ReadLocalSupportedCommands(ctx context.Context) (hci.SupportedCommands, error) {
	cmd := hci.Command{Kind: hci.CommandReadLocalSupportedCommands}
	return cmdWithCommandCompleteResponse(ctx, s, cmd, func(p hci.EventParameter) (hci.SupportedCommands, error) {
		if p.Kind != hci.EventParameterStatusAndSupportedCommands {
			return hci.SupportedCommands{}, ErrUnexpectedParameterShape
		}
		if !p.StatusAndSupportedCmds.Status.IsSuccess() {
			return hci.SupportedCommands{}, hci.NewErrorCodeError(p.StatusAndSupportedCmds.Status)
		}
		return p.StatusAndSupportedCmds.SupportedCommands, nil
	})
}

// ReadLocalSupportedFeatures issues Read_Local_Supported_Features.
func (s *Session) ReadLocalSupportedFeatures(ctx context.Context) (hci.SupportedFeatures, error) {
	cmd := hci.Command{Kind: hci.CommandReadLocalSupportedFeatures}
	return cmdWithCommandCompleteResponse(ctx, s, cmd, func(p hci.EventParameter) (hci.SupportedFeatures, error) {
		if p.Kind != hci.EventParameterStatusAndSupportedFeatures {
			return 0, ErrUnexpectedParameterShape
		}
		if !p.StatusAndSupportedFeats.Status.IsSuccess() {
			return 0, hci.NewErrorCodeError(p.StatusAndSupportedFeats.Status)
		}
		return p.StatusAndSupportedFeats.SupportedFeatures, nil
	})
}

// ReadBufferSize issues Read_Buffer_Size.
func (s *Session) ReadBufferSize(ctx context.Context) (hci.StatusAndBufferSizeEventParameter, error) {
	cmd := hci.Command{Kind: hci.CommandReadBufferSize}
	return cmdWithCommandCompleteResponse(ctx, s, cmd, func(p hci.EventParameter) (hci.StatusAndBufferSizeEventParameter, error) {
		if p.Kind != hci.EventParameterStatusAndBufferSize {
			return hci.StatusAndBufferSizeEventParameter{}, ErrUnexpectedParameterShape
		}
		if !p.StatusAndBufferSize.Status.IsSuccess() {
			return hci.StatusAndBufferSizeEventParameter{}, hci.NewErrorCodeError(p.StatusAndBufferSize.Status)
		}
		return p.StatusAndBufferSize, nil
	})
}

// ReadBdAddr issues Read_BD_ADDR.
func (s *Session) ReadBdAddr(ctx context.Context) (hci.PublicDeviceAddress, error) {
	cmd := hci.Command{Kind: hci.CommandReadBdAddr}
	return cmdWithCommandCompleteResponse(ctx, s, cmd, func(p hci.EventParameter) (hci.PublicDeviceAddress, error) {
		if p.Kind != hci.EventParameterStatusAndBdAddr {
			return hci.PublicDeviceAddress{}, ErrUnexpectedParameterShape
		}
		if !p.StatusAndBdAddr.Status.IsSuccess() {
			return hci.PublicDeviceAddress{}, hci.NewErrorCodeError(p.StatusAndBdAddr.Status)
		}
		return p.StatusAndBdAddr.Address, nil
	})
}

// ReadRssi issues Read_RSSI for the given connection handle.
func (s *Session) ReadRssi(ctx context.Context, handle hci.ConnectionHandle) (hci.Rssi, error) {
	cmd := hci.Command{Kind: hci.CommandReadRssi, ReadRssi: handle}
	return cmdWithCommandCompleteResponse(ctx, s, cmd, func(p hci.EventParameter) (hci.Rssi, error) {
		if p.Kind != hci.EventParameterStatusAndRssi {
			return hci.Rssi{}, ErrUnexpectedParameterShape
		}
		if !p.StatusAndRssi.Status.IsSuccess() {
			return hci.Rssi{}, hci.NewErrorCodeError(p.StatusAndRssi.Status)
		}
		return p.StatusAndRssi.Rssi, nil
	})
}

// Disconnect terminates an existing connection. The Controller answers
// with Command_Status; the eventual outcome arrives later as a
// Disconnection_Complete event, observable via PopEvent.
func (s *Session) Disconnect(ctx context.Context, handle hci.ConnectionHandle, reason hci.ErrorCode) error {
	cmd := hci.Command{Kind: hci.CommandDisconnect, Disconnect: hci.DisconnectCommand{Handle: handle, Reason: reason}}
	return cmdWithCommandStatusResponse(ctx, s, cmd)
}

// LeSetEventMask issues LE_Set_Event_Mask.
func (s *Session) LeSetEventMask(ctx context.Context, mask hci.LeEventMask) error {
	cmd := hci.Command{Kind: hci.CommandLeSetEventMask, LeSetEventMask: mask}
	_, err := cmdWithCommandCompleteResponse(ctx, s, cmd, statusOnly)
	return err
}

// LeReadBufferSize issues LE_Read_Buffer_Size.
func (s *Session) LeReadBufferSize(ctx context.Context) (hci.StatusAndLeBufferSizeEventParameter, error) {
	cmd := hci.Command{Kind: hci.CommandLeReadBufferSize}
	return cmdWithCommandCompleteResponse(ctx, s, cmd, func(p hci.EventParameter) (hci.StatusAndLeBufferSizeEventParameter, error) {
		if p.Kind != hci.EventParameterStatusAndLeBufferSize {
			return hci.StatusAndLeBufferSizeEventParameter{}, ErrUnexpectedParameterShape
		}
		if !p.StatusAndLeBufferSize.Status.IsSuccess() {
			return hci.StatusAndLeBufferSizeEventParameter{}, hci.NewErrorCodeError(p.StatusAndLeBufferSize.Status)
		}
		return p.StatusAndLeBufferSize, nil
	})
}

// LeReadLocalSupportedFeaturesPage0 issues LE_Read_Local_Supported_Features_Page_0.
func (s *Session) LeReadLocalSupportedFeaturesPage0(ctx context.Context) (hci.SupportedLeFeatures, error) {
	cmd := hci.Command{Kind: hci.CommandLeReadLocalSupportedFeaturesPage0}
	return cmdWithCommandCompleteResponse(ctx, s, cmd, func(p hci.EventParameter) (hci.SupportedLeFeatures, error) {
		if p.Kind != hci.EventParameterStatusAndSupportedLeFeatures {
			return 0, ErrUnexpectedParameterShape
		}
		if !p.StatusAndSupportedLeFeats.Status.IsSuccess() {
			return 0, hci.NewErrorCodeError(p.StatusAndSupportedLeFeats.Status)
		}
		return p.StatusAndSupportedLeFeats.SupportedLeFeatures, nil
	})
}

// LeSetRandomAddress issues LE_Set_Random_Address.
func (s *Session) LeSetRandomAddress(ctx context.Context, addr hci.RandomStaticDeviceAddress) error {
	cmd := hci.Command{Kind: hci.CommandLeSetRandomAddress, LeSetRandomAddress: addr}
	_, err := cmdWithCommandCompleteResponse(ctx, s, cmd, statusOnly)
	return err
}

// LeSetAdvertisingParameters issues LE_Set_Advertising_Parameters.
func (s *Session) LeSetAdvertisingParameters(ctx context.Context, params hci.AdvertisingParameters) error {
	cmd := hci.Command{Kind: hci.CommandLeSetAdvertisingParameters, LeSetAdvertisingParameters: params}
	_, err := cmdWithCommandCompleteResponse(ctx, s, cmd, statusOnly)
	return err
}

// LeReadAdvertisingChannelTxPower issues LE_Read_Advertising_Physical_Channel_Tx_Power.
func (s *Session) LeReadAdvertisingChannelTxPower(ctx context.Context) (hci.TxPowerLevel, error) {
	cmd := hci.Command{Kind: hci.CommandLeReadAdvertisingChannelTxPower}
	return cmdWithCommandCompleteResponse(ctx, s, cmd, func(p hci.EventParameter) (hci.TxPowerLevel, error) {
		if p.Kind != hci.EventParameterStatusAndTxPowerLevel {
			return hci.TxPowerLevel{}, ErrUnexpectedParameterShape
		}
		if !p.StatusAndTxPowerLevel.Status.IsSuccess() {
			return hci.TxPowerLevel{}, hci.NewErrorCodeError(p.StatusAndTxPowerLevel.Status)
		}
		return p.StatusAndTxPowerLevel.TxPowerLevel, nil
	})
}

// LeSetAdvertisingData issues LE_Set_Advertising_Data.
func (s *Session) LeSetAdvertisingData(ctx context.Context, data hci.AdvertisingData) error {
	cmd := hci.Command{Kind: hci.CommandLeSetAdvertisingData, LeSetAdvertisingData: data}
	_, err := cmdWithCommandCompleteResponse(ctx, s, cmd, statusOnly)
	return err
}

// LeSetScanResponseData issues LE_Set_Scan_Response_Data.
func (s *Session) LeSetScanResponseData(ctx context.Context, data hci.ScanResponseData) error {
	cmd := hci.Command{Kind: hci.CommandLeSetScanResponseData, LeSetScanResponseData: data}
	_, err := cmdWithCommandCompleteResponse(ctx, s, cmd, statusOnly)
	return err
}

// LeSetAdvertisingEnable issues LE_Set_Advertising_Enable.
func (s *Session) LeSetAdvertisingEnable(ctx context.Context, enable hci.AdvertisingEnable) error {
	cmd := hci.Command{Kind: hci.CommandLeSetAdvertisingEnable, LeSetAdvertisingEnable: enable}
	_, err := cmdWithCommandCompleteResponse(ctx, s, cmd, statusOnly)
	return err
}

// LeSetScanParameters issues LE_Set_Scan_Parameters.
func (s *Session) LeSetScanParameters(ctx context.Context, params hci.ScanParameters) error {
	cmd := hci.Command{Kind: hci.CommandLeSetScanParameters, LeSetScanParameters: params}
	_, err := cmdWithCommandCompleteResponse(ctx, s, cmd, statusOnly)
	return err
}

// LeSetScanEnable issues LE_Set_Scan_Enable.
func (s *Session) LeSetScanEnable(ctx context.Context, enable hci.ScanEnable, filterDuplicates hci.FilterDuplicates) error {
	cmd := hci.Command{Kind: hci.CommandLeSetScanEnable, LeSetScanEnable: hci.LeSetScanEnableCommand{Enable: enable, FilterDuplicates: filterDuplicates}}
	_, err := cmdWithCommandCompleteResponse(ctx, s, cmd, statusOnly)
	return err
}

// LeCreateConnection issues LE_Create_Connection. The Controller answers
// with Command_Status; the eventual outcome arrives later as an LE
// Connection Complete subevent, observable via PopEvent.
func (s *Session) LeCreateConnection(ctx context.Context, params hci.ConnectionParameters) error {
	cmd := hci.Command{Kind: hci.CommandLeCreateConnection, LeCreateConnection: params}
	return cmdWithCommandStatusResponse(ctx, s, cmd)
}

// LeCreateConnectionCancel issues LE_Create_Connection_Cancel.
func (s *Session) LeCreateConnectionCancel(ctx context.Context) error {
	cmd := hci.Command{Kind: hci.CommandLeCreateConnectionCancel}
	_, err := cmdWithCommandCompleteResponse(ctx, s, cmd, statusOnly)
	return err
}

// LeConnectionUpdate issues LE_Connection_Update. The Controller answers
// with Command_Status; the eventual outcome arrives later as an LE
// Connection Update Complete subevent, observable via PopEvent.
func (s *Session) LeConnectionUpdate(ctx context.Context, params hci.ConnectionUpdateParameters) error {
	cmd := hci.Command{Kind: hci.CommandLeConnectionUpdate, LeConnectionUpdate: params}
	return cmdWithCommandStatusResponse(ctx, s, cmd)
}

// LeRemoteConnectionParamRequestReply issues LE_Remote_Connection_Parameter_Request_Reply.
func (s *Session) LeRemoteConnectionParamRequestReply(ctx context.Context, reply hci.LeRemoteConnectionParamRequestReplyCommand) error {
	cmd := hci.Command{Kind: hci.CommandLeRemoteConnectionParamRequestReply, LeRemoteConnectionParamReply: reply}
	_, err := cmdWithCommandCompleteResponse(ctx, s, cmd, statusOnly)
	return err
}

// LeRand issues LE_Rand and returns the 8 octets of random data
// generated by the Controller.
func (s *Session) LeRand(ctx context.Context) ([8]byte, error) {
	cmd := hci.Command{Kind: hci.CommandLeRand}
	return cmdWithCommandCompleteResponse(ctx, s, cmd, func(p hci.EventParameter) ([8]byte, error) {
		if p.Kind != hci.EventParameterStatusAndRandomNumber {
			return [8]byte{}, ErrUnexpectedParameterShape
		}
		if !p.StatusAndRandomNumber.Status.IsSuccess() {
			return [8]byte{}, hci.NewErrorCodeError(p.StatusAndRandomNumber.Status)
		}
		return p.StatusAndRandomNumber.RandomNumber, nil
	})
}

// LeReadSupportedStates issues LE_Read_Supported_States.
func (s *Session) LeReadSupportedStates(ctx context.Context) (hci.SupportedLeStates, error) {
	cmd := hci.Command{Kind: hci.CommandLeReadSupportedStates}
	return cmdWithCommandCompleteResponse(ctx, s, cmd, func(p hci.EventParameter) (hci.SupportedLeStates, error) {
		if p.Kind != hci.EventParameterStatusAndSupportedLeStates {
			return 0, ErrUnexpectedParameterShape
		}
		if !p.StatusAndSupportedLeStates.Status.IsSuccess() {
			return 0, hci.NewErrorCodeError(p.StatusAndSupportedLeStates.Status)
		}
		return p.StatusAndSupportedLeStates.SupportedLeStates, nil
	})
}

// statusOnly extracts the plain status from a Command_Complete event
// whose only return parameter is success/failure.
func statusOnly(p hci.EventParameter) (struct{}, error) {
	if p.Kind != hci.EventParameterStatus {
		return struct{}{}, ErrUnexpectedParameterShape
	}
	if !p.Status.Status.IsSuccess() {
		return struct{}{}, hci.NewErrorCodeError(p.Status.Status)
	}
	return struct{}{}, nil
}
