package hci

import "fmt"

// ErrorCode is the one-octet Controller error code enumeration of Core
// Specification 6.0, Vol. 1, Part F.
type ErrorCode uint8

const (
	ErrorCodeSuccess                                                      ErrorCode = 0x00
	ErrorCodeUnknownHciCommand                                            ErrorCode = 0x01
	ErrorCodeUnknownConnectionIdentifier                                  ErrorCode = 0x02
	ErrorCodeHardwareFailure                                              ErrorCode = 0x03
	ErrorCodePageTimeout                                                  ErrorCode = 0x04
	ErrorCodeAuthenticationFailure                                        ErrorCode = 0x05
	ErrorCodePinOrKeyMissing                                              ErrorCode = 0x06
	ErrorCodeMemoryCapacityExceeded                                       ErrorCode = 0x07
	ErrorCodeConnectionTimeout                                            ErrorCode = 0x08
	ErrorCodeConnectionLimitExceeded                                      ErrorCode = 0x09
	ErrorCodeSynchronousConnectionLimitToADeviceExceeded                  ErrorCode = 0x0A
	ErrorCodeAclConnectionAlreadyExists                                   ErrorCode = 0x0B
	ErrorCodeCommandDisallowed                                            ErrorCode = 0x0C
	ErrorCodeConnectionRejectedDueToLimitedResources                      ErrorCode = 0x0D
	ErrorCodeConnectionRejectedDueToSecurityReasons                       ErrorCode = 0x0E
	ErrorCodeConnectionRejectedDueToUnacceptableBdAddr                    ErrorCode = 0x0F
	ErrorCodeConnectionAcceptTimeoutExceeded                              ErrorCode = 0x10
	ErrorCodeUnsupportedFeatureOrParameterValue                           ErrorCode = 0x11
	ErrorCodeInvalidHciCommandParameters                                  ErrorCode = 0x12
	ErrorCodeRemoteUserTerminatedConnection                               ErrorCode = 0x13
	ErrorCodeRemoteDeviceTerminatedConnectionDueToLowResources            ErrorCode = 0x14
	ErrorCodeRemoteDeviceTerminatedConnectionDueToPowerOff                ErrorCode = 0x15
	ErrorCodeConnectionTerminatedByLocalHost                              ErrorCode = 0x16
	ErrorCodeRepeatedAttempts                                             ErrorCode = 0x17
	ErrorCodePairingNotAllowed                                            ErrorCode = 0x18
	ErrorCodeUnknownLmpPdu                                                ErrorCode = 0x19
	ErrorCodeUnsupportedRemoteFeatureUnsupportedLmpFeature                ErrorCode = 0x1A
	ErrorCodeScoOffsetRejected                                            ErrorCode = 0x1B
	ErrorCodeScoIntervalRejected                                          ErrorCode = 0x1C
	ErrorCodeScoAirModeRejected                                           ErrorCode = 0x1D
	ErrorCodeInvalidLmpParametersInvalidLlParameters                      ErrorCode = 0x1E
	ErrorCodeUnspecifiedError                                             ErrorCode = 0x1F
	ErrorCodeUnsupportedLmpParameterValueUnsupportedLlParameterValue      ErrorCode = 0x20
	ErrorCodeRoleChangeNotAllowed                                         ErrorCode = 0x21
	ErrorCodeLmpResponseTimeoutLlResponseTimeout                          ErrorCode = 0x22
	ErrorCodeLmpErrorTransactionCollision                                 ErrorCode = 0x23
	ErrorCodeLmpPduNotAllowed                                             ErrorCode = 0x24
	ErrorCodeEncryptionModeNotAcceptable                                  ErrorCode = 0x25
	ErrorCodeLinkKeyCannotBeChanged                                       ErrorCode = 0x26
	ErrorCodeRequestedQosNotSupported                                     ErrorCode = 0x27
	ErrorCodeInstantPassed                                                ErrorCode = 0x28
	ErrorCodePairingWithUnitKeyNotSupported                               ErrorCode = 0x29
	ErrorCodeDifferentTransactionCollision                                ErrorCode = 0x2A
	ErrorCodeQosUnacceptableParameter                                     ErrorCode = 0x2C
	ErrorCodeQosRejected                                                  ErrorCode = 0x2D
	ErrorCodeChannelAssessmentNotSupported                                ErrorCode = 0x2E
	ErrorCodeInsufficientSecurity                                         ErrorCode = 0x2F
	ErrorCodeParameterOutOfMandatoryRange                                 ErrorCode = 0x30
	ErrorCodeRoleSwitchPending                                            ErrorCode = 0x32
	ErrorCodeReservedSlotViolation                                        ErrorCode = 0x34
	ErrorCodeRoleSwitchFailed                                             ErrorCode = 0x35
	ErrorCodeExtendedInquiryResponseTooLarge                              ErrorCode = 0x36
	ErrorCodeSecureSimplePairingNotSupportedByHost                        ErrorCode = 0x37
	ErrorCodeHostBusyPairing                                              ErrorCode = 0x38
	ErrorCodeConnectionRejectedDueToNoSuitableChannelFound                ErrorCode = 0x39
	ErrorCodeControllerBusy                                               ErrorCode = 0x3A
	ErrorCodeUnacceptableConnectionParameters                             ErrorCode = 0x3B
	ErrorCodeAdvertisingTimeout                                           ErrorCode = 0x3C
	ErrorCodeConnectionTerminatedDueToMicFailure                          ErrorCode = 0x3D
	ErrorCodeConnectionFailedToBeEstablished                              ErrorCode = 0x3E
	ErrorCodeCoarseClockAdjustmentRejectedButWillTryToAdjustUsingDragging ErrorCode = 0x40
	ErrorCodeType0SubmapNotDefined                                        ErrorCode = 0x41
	ErrorCodeUnknownAdvertisingIdentifier                                 ErrorCode = 0x42
	ErrorCodeLimitReached                                                 ErrorCode = 0x43
	ErrorCodeOperationCancelledByHost                                     ErrorCode = 0x44
	ErrorCodePacketTooLong                                                ErrorCode = 0x45
	ErrorCodeTooLate                                                      ErrorCode = 0x46
	ErrorCodeTooEarly                                                     ErrorCode = 0x47
	ErrorCodeInsufficientChannels                                         ErrorCode = 0x48
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCodeSuccess:                             "Success",
	ErrorCodeUnknownHciCommand:                   "UnknownHciCommand",
	ErrorCodeUnknownConnectionIdentifier:         "UnknownConnectionIdentifier",
	ErrorCodeHardwareFailure:                     "HardwareFailure",
	ErrorCodePageTimeout:                         "PageTimeout",
	ErrorCodeAuthenticationFailure:               "AuthenticationFailure",
	ErrorCodePinOrKeyMissing:                     "PinOrKeyMissing",
	ErrorCodeMemoryCapacityExceeded:              "MemoryCapacityExceeded",
	ErrorCodeConnectionTimeout:                   "ConnectionTimeout",
	ErrorCodeConnectionLimitExceeded:             "ConnectionLimitExceeded",
	ErrorCodeAclConnectionAlreadyExists:          "AclConnectionAlreadyExists",
	ErrorCodeCommandDisallowed:                   "CommandDisallowed",
	ErrorCodeUnsupportedFeatureOrParameterValue:  "UnsupportedFeatureOrParameterValue",
	ErrorCodeInvalidHciCommandParameters:         "InvalidHciCommandParameters",
	ErrorCodeRemoteUserTerminatedConnection:      "RemoteUserTerminatedConnection",
	ErrorCodeConnectionTerminatedByLocalHost:     "ConnectionTerminatedByLocalHost",
	ErrorCodeUnsupportedRemoteFeatureUnsupportedLmpFeature: "UnsupportedRemoteFeatureUnsupportedLmpFeature",
	ErrorCodeUnspecifiedError:                 "UnspecifiedError",
	ErrorCodeControllerBusy:                   "ControllerBusy",
	ErrorCodeUnacceptableConnectionParameters: "UnacceptableConnectionParameters",
	ErrorCodeAdvertisingTimeout:               "AdvertisingTimeout",
	ErrorCodeConnectionFailedToBeEstablished:  "ConnectionFailedToBeEstablished",
}

// IsSuccess reports whether the code is ErrorCodeSuccess.
func (c ErrorCode) IsSuccess() bool {
	return c == ErrorCodeSuccess
}

// String renders a known name, falling back to the numeric value for
// error codes this table hasn't named explicitly (the full Core
// Specification table runs to 0x48 with several reserved gaps; only the
// codes this stack's callers are expected to branch on are named).
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(0x%02X)", uint8(c))
}

// knownErrorCodes lists every valid Controller error code, used to
// validate a parsed byte.
var knownErrorCodes = map[ErrorCode]struct{}{
	ErrorCodeSuccess: {}, ErrorCodeUnknownHciCommand: {}, ErrorCodeUnknownConnectionIdentifier: {},
	ErrorCodeHardwareFailure: {}, ErrorCodePageTimeout: {}, ErrorCodeAuthenticationFailure: {},
	ErrorCodePinOrKeyMissing: {}, ErrorCodeMemoryCapacityExceeded: {}, ErrorCodeConnectionTimeout: {},
	ErrorCodeConnectionLimitExceeded: {}, ErrorCodeSynchronousConnectionLimitToADeviceExceeded: {},
	ErrorCodeAclConnectionAlreadyExists: {}, ErrorCodeCommandDisallowed: {},
	ErrorCodeConnectionRejectedDueToLimitedResources: {}, ErrorCodeConnectionRejectedDueToSecurityReasons: {},
	ErrorCodeConnectionRejectedDueToUnacceptableBdAddr: {}, ErrorCodeConnectionAcceptTimeoutExceeded: {},
	ErrorCodeUnsupportedFeatureOrParameterValue: {}, ErrorCodeInvalidHciCommandParameters: {},
	ErrorCodeRemoteUserTerminatedConnection: {}, ErrorCodeRemoteDeviceTerminatedConnectionDueToLowResources: {},
	ErrorCodeRemoteDeviceTerminatedConnectionDueToPowerOff: {}, ErrorCodeConnectionTerminatedByLocalHost: {},
	ErrorCodeRepeatedAttempts: {}, ErrorCodePairingNotAllowed: {}, ErrorCodeUnknownLmpPdu: {},
	ErrorCodeUnsupportedRemoteFeatureUnsupportedLmpFeature: {}, ErrorCodeScoOffsetRejected: {},
	ErrorCodeScoIntervalRejected: {}, ErrorCodeScoAirModeRejected: {},
	ErrorCodeInvalidLmpParametersInvalidLlParameters: {}, ErrorCodeUnspecifiedError: {},
	ErrorCodeUnsupportedLmpParameterValueUnsupportedLlParameterValue: {}, ErrorCodeRoleChangeNotAllowed: {},
	ErrorCodeLmpResponseTimeoutLlResponseTimeout: {}, ErrorCodeLmpErrorTransactionCollision: {},
	ErrorCodeLmpPduNotAllowed: {}, ErrorCodeEncryptionModeNotAcceptable: {}, ErrorCodeLinkKeyCannotBeChanged: {},
	ErrorCodeRequestedQosNotSupported: {}, ErrorCodeInstantPassed: {}, ErrorCodePairingWithUnitKeyNotSupported: {},
	ErrorCodeDifferentTransactionCollision: {}, ErrorCodeQosUnacceptableParameter: {}, ErrorCodeQosRejected: {},
	ErrorCodeChannelAssessmentNotSupported: {}, ErrorCodeInsufficientSecurity: {},
	ErrorCodeParameterOutOfMandatoryRange: {}, ErrorCodeRoleSwitchPending: {}, ErrorCodeReservedSlotViolation: {},
	ErrorCodeRoleSwitchFailed: {}, ErrorCodeExtendedInquiryResponseTooLarge: {},
	ErrorCodeSecureSimplePairingNotSupportedByHost: {}, ErrorCodeHostBusyPairing: {},
	ErrorCodeConnectionRejectedDueToNoSuitableChannelFound: {}, ErrorCodeControllerBusy: {},
	ErrorCodeUnacceptableConnectionParameters: {}, ErrorCodeAdvertisingTimeout: {},
	ErrorCodeConnectionTerminatedDueToMicFailure: {}, ErrorCodeConnectionFailedToBeEstablished: {},
	ErrorCodeCoarseClockAdjustmentRejectedButWillTryToAdjustUsingDragging: {},
	ErrorCodeType0SubmapNotDefined: {}, ErrorCodeUnknownAdvertisingIdentifier: {}, ErrorCodeLimitReached: {},
	ErrorCodeOperationCancelledByHost: {}, ErrorCodePacketTooLong: {}, ErrorCodeTooLate: {}, ErrorCodeTooEarly: {},
	ErrorCodeInsufficientChannels: {},
}

// ParseErrorCode validates a raw byte against the known Controller error
// code table.
func ParseErrorCode(v uint8) (ErrorCode, error) {
	code := ErrorCode(v)
	if _, ok := knownErrorCodes[code]; !ok {
		return 0, newError(KindInvalidErrorCode, "invalid HCI error code %#02x", v)
	}
	return code, nil
}
