package hci

// EventMask is the 64-bit Set_Event_Mask bitmap (Core Spec 6.0, Vol. 4,
// Part E, §7.3.1). Named bits cover the events this stack's session
// engine branches on; the rest of the 64-bit space is preserved
// verbatim on round-trip even though this stack doesn't name every bit.
type EventMask uint64

const (
	EventMaskDisconnectionComplete               EventMask = 1 << 4
	EventMaskEncryptionChange                    EventMask = 1 << 7
	EventMaskReadRemoteVersionInformationComplete EventMask = 1 << 11
	EventMaskHardwareError                        EventMask = 1 << 15
	EventMaskDataBufferOverflow                   EventMask = 1 << 25
	EventMaskEncryptionKeyRefreshComplete          EventMask = 1 << 47
	EventMaskLeMeta                                EventMask = 1 << 61

	// EventMaskDefault matches the Controller's power-on default (Core
	// Spec 6.0, Vol. 4, Part E, §7.3.1): every event except the ones
	// introduced for a subset of controllers.
	EventMaskDefault EventMask = 0x0000_1FFF_FFFF_FFFF
)

// Union returns the bitwise OR of m and other.
func (m EventMask) Union(other EventMask) EventMask { return m | other }

// Intersection returns the bitwise AND of m and other.
func (m EventMask) Intersection(other EventMask) EventMask { return m & other }

// Contains reports whether every bit set in other is also set in m.
func (m EventMask) Contains(other EventMask) bool { return m&other == other }

func (m EventMask) Encode(buf *Buffer) (int, error) {
	if err := buf.EncodeLEUint64(uint64(m)); err != nil {
		return 0, err
	}
	return 8, nil
}

func (m EventMask) EncodedSize() int { return 8 }

// LeEventMask is the 64-bit LE_Set_Event_Mask bitmap (Core Spec 6.0,
// Vol. 4, Part E, §7.8.1).
type LeEventMask uint64

const (
	LeEventMaskConnectionComplete              LeEventMask = 1 << 0
	LeEventMaskAdvertisingReport               LeEventMask = 1 << 1
	LeEventMaskConnectionUpdateComplete        LeEventMask = 1 << 2
	LeEventMaskReadRemoteFeaturesPage0Complete LeEventMask = 1 << 3
	LeEventMaskLongTermKeyRequest              LeEventMask = 1 << 4
	LeEventMaskRemoteConnectionParamRequest    LeEventMask = 1 << 5
	LeEventMaskDataLengthChange                LeEventMask = 1 << 6
	LeEventMaskEnhancedConnectionComplete       LeEventMask = 1 << 9
	LeEventMaskDirectedAdvertisingReport        LeEventMask = 1 << 10

	// LeEventMaskDefault matches the Controller's power-on default: the
	// five LE events defined in the original Bluetooth 4.0 LE Controller
	// spec, before later Core Spec versions added more LE event bits.
	LeEventMaskDefault LeEventMask = LeEventMaskConnectionComplete | LeEventMaskAdvertisingReport |
		LeEventMaskConnectionUpdateComplete | LeEventMaskReadRemoteFeaturesPage0Complete | LeEventMaskLongTermKeyRequest
)

func (m LeEventMask) Union(other LeEventMask) LeEventMask        { return m | other }
func (m LeEventMask) Intersection(other LeEventMask) LeEventMask { return m & other }
func (m LeEventMask) Contains(other LeEventMask) bool            { return m&other == other }

func (m LeEventMask) Encode(buf *Buffer) (int, error) {
	if err := buf.EncodeLEUint64(uint64(m)); err != nil {
		return 0, err
	}
	return 8, nil
}

func (m LeEventMask) EncodedSize() int { return 8 }

// SupportedFeatures is the 64-bit classic feature bitmap returned by
// Read_Local_Supported_Features (Core Spec 6.0, Vol. 2, Part C, §3.3).
type SupportedFeatures uint64

const (
	// SupportedFeaturesLeSupportedController indicates the Controller
	// supports LE. The local Host uses this bit to determine whether the
	// Controller supports LE; a remote device does not use this bit.
	SupportedFeaturesLeSupportedController SupportedFeatures = 1 << 38
	// SupportedFeaturesSimultaneousLeAndBrEdr indicates the Controller
	// supports simultaneous LE and BR/EDR links to the same remote device.
	SupportedFeaturesSimultaneousLeAndBrEdr SupportedFeatures = 1 << 49
)

func (m SupportedFeatures) Union(other SupportedFeatures) SupportedFeatures { return m | other }
func (m SupportedFeatures) Intersection(other SupportedFeatures) SupportedFeatures {
	return m & other
}
func (m SupportedFeatures) Contains(other SupportedFeatures) bool { return m&other == other }

func (m SupportedFeatures) Encode(buf *Buffer) (int, error) {
	if err := buf.EncodeLEUint64(uint64(m)); err != nil {
		return 0, err
	}
	return 8, nil
}

func (m SupportedFeatures) EncodedSize() int { return 8 }

func parseSupportedFeatures(b []byte) SupportedFeatures {
	return SupportedFeatures(leUint64(b))
}

// SupportedLeFeatures is the 64-bit LE feature bitmap returned by
// LE_Read_Local_Supported_Features (Core Spec 6.0, Vol. 4, Part E,
// §7.8.3), supplemented from original_source/bletio-hci/src/
// le_supported_features.rs.
type SupportedLeFeatures uint64

const (
	SupportedLeFeaturesLeEncryption                         SupportedLeFeatures = 1 << 0
	SupportedLeFeaturesConnectionParametersRequestProcedure SupportedLeFeatures = 1 << 1
	SupportedLeFeaturesExtendedRejectIndication              SupportedLeFeatures = 1 << 2
	SupportedLeFeaturesPeripheralInitiatedFeaturesExchange   SupportedLeFeatures = 1 << 3
	SupportedLeFeaturesLePing                                SupportedLeFeatures = 1 << 4
	SupportedLeFeaturesLeDataPacketLengthExtension           SupportedLeFeatures = 1 << 5
	SupportedLeFeaturesLlPrivacy                             SupportedLeFeatures = 1 << 6
	SupportedLeFeaturesExtendedScanningFilterPolicies        SupportedLeFeatures = 1 << 7
	SupportedLeFeaturesLe2mPhy                               SupportedLeFeatures = 1 << 8
	SupportedLeFeaturesStableModulationIndexTransmitter       SupportedLeFeatures = 1 << 9
	SupportedLeFeaturesStableModulationIndexReceiver          SupportedLeFeatures = 1 << 10
	SupportedLeFeaturesLeCodedPhy                            SupportedLeFeatures = 1 << 11
	SupportedLeFeaturesLeExtendedAdvertising                 SupportedLeFeatures = 1 << 12
	SupportedLeFeaturesLePeriodicAdvertising                 SupportedLeFeatures = 1 << 13
	SupportedLeFeaturesChannelSelectionAlgorithmNo2          SupportedLeFeatures = 1 << 14
	SupportedLeFeaturesLePowerClass1                         SupportedLeFeatures = 1 << 15
	SupportedLeFeaturesMinimumNumberOfUsedChannelsProcedure  SupportedLeFeatures = 1 << 16
	SupportedLeFeaturesConnectionCteRequest                  SupportedLeFeatures = 1 << 17
	SupportedLeFeaturesConnectionCteResponse                 SupportedLeFeatures = 1 << 18
	SupportedLeFeaturesConnectionlessCteTransmitter           SupportedLeFeatures = 1 << 19
	SupportedLeFeaturesConnectionlessCteReceiver              SupportedLeFeatures = 1 << 20
	SupportedLeFeaturesSleepClockAccuracyUpdates             SupportedLeFeatures = 1 << 26
	SupportedLeFeaturesRemotePublicKeyValidation             SupportedLeFeatures = 1 << 27
	SupportedLeFeaturesConnectedIsochronousStreamCentral      SupportedLeFeatures = 1 << 28
	SupportedLeFeaturesConnectedIsochronousStreamPeripheral   SupportedLeFeatures = 1 << 29
	SupportedLeFeaturesIsochronousBroadcaster                SupportedLeFeatures = 1 << 30
	SupportedLeFeaturesSynchronizedReceiver                  SupportedLeFeatures = 1 << 31
	SupportedLeFeaturesConnectedIsochronousStreamHostSupport SupportedLeFeatures = 1 << 32
	SupportedLeFeaturesLePowerControlRequest                 SupportedLeFeatures = 1 << 33
	SupportedLeFeaturesLePathLossMonitoring                  SupportedLeFeatures = 1 << 35
	SupportedLeFeaturesPeriodicAdvertisingAdiSupport         SupportedLeFeatures = 1 << 36
	SupportedLeFeaturesConnectionSubrating                   SupportedLeFeatures = 1 << 37
	SupportedLeFeaturesConnectionSubratingHostSupport        SupportedLeFeatures = 1 << 38
	SupportedLeFeaturesChannelClassification                 SupportedLeFeatures = 1 << 39
	SupportedLeFeaturesAdvertisingCodingSelection            SupportedLeFeatures = 1 << 40
	SupportedLeFeaturesAdvertisingCodingSelectionHostSupport SupportedLeFeatures = 1 << 41
	SupportedLeFeaturesChannelSounding                       SupportedLeFeatures = 1 << 46
	SupportedLeFeaturesChannelSoundingHostSupport            SupportedLeFeatures = 1 << 47
	SupportedLeFeaturesChannelSoundingToneQualityIndication  SupportedLeFeatures = 1 << 48
	SupportedLeFeaturesLlExtendedFeatureSet                  SupportedLeFeatures = 1 << 63
)

func (m SupportedLeFeatures) Union(other SupportedLeFeatures) SupportedLeFeatures { return m | other }
func (m SupportedLeFeatures) Intersection(other SupportedLeFeatures) SupportedLeFeatures {
	return m & other
}
func (m SupportedLeFeatures) Contains(other SupportedLeFeatures) bool { return m&other == other }

func (m SupportedLeFeatures) Encode(buf *Buffer) (int, error) {
	if err := buf.EncodeLEUint64(uint64(m)); err != nil {
		return 0, err
	}
	return 8, nil
}

func (m SupportedLeFeatures) EncodedSize() int { return 8 }

func parseSupportedLeFeatures(b []byte) SupportedLeFeatures {
	return SupportedLeFeatures(leUint64(b))
}

// SupportedLeStates is the 64-bit LE Supported States bitmap returned by
// LE_Read_Supported_States (Core Spec 6.0, Vol. 4, Part E, §7.8.27).
type SupportedLeStates uint64

func (m SupportedLeStates) Union(other SupportedLeStates) SupportedLeStates { return m | other }
func (m SupportedLeStates) Intersection(other SupportedLeStates) SupportedLeStates {
	return m & other
}
func (m SupportedLeStates) Contains(other SupportedLeStates) bool { return m&other == other }

func (m SupportedLeStates) Encode(buf *Buffer) (int, error) {
	if err := buf.EncodeLEUint64(uint64(m)); err != nil {
		return 0, err
	}
	return 8, nil
}

func (m SupportedLeStates) EncodedSize() int { return 8 }

func parseSupportedLeStates(b []byte) SupportedLeStates {
	return SupportedLeStates(leUint64(b))
}

// AdvertisingChannelMap is the 3-bit channel enable map used by
// LE_Set_Advertising_Parameters.
type AdvertisingChannelMap uint8

const (
	AdvertisingChannelMap37 AdvertisingChannelMap = 1 << 0
	AdvertisingChannelMap38 AdvertisingChannelMap = 1 << 1
	AdvertisingChannelMap39 AdvertisingChannelMap = 1 << 2
	AdvertisingChannelMapAll = AdvertisingChannelMap37 | AdvertisingChannelMap38 | AdvertisingChannelMap39
)

// Validate enforces the invariant that at least one channel is enabled.
func (m AdvertisingChannelMap) Validate() error {
	if m&AdvertisingChannelMapAll == 0 {
		return newError(KindAtLeastOneChannelMustBeEnabled, "at least one channel must be enabled in the advertising channel map")
	}
	if m&^AdvertisingChannelMapAll != 0 {
		return newError(KindAtLeastOneChannelMustBeEnabled, "advertising channel map has reserved bits set: %#02x", uint8(m))
	}
	return nil
}

func (m AdvertisingChannelMap) Encode(buf *Buffer) (int, error) {
	if err := buf.TryPushUint8(uint8(m)); err != nil {
		return 0, err
	}
	return 1, nil
}

func (m AdvertisingChannelMap) EncodedSize() int { return 1 }

// SupportedCommands is the 64-octet (512-bit) Supported_Commands bitmap
// returned by Read_Local_Supported_Commands. Each bit is addressed by a
// (byte, bit) pair, bit 0 of octet 0 being the least significant.
type SupportedCommands [64]byte

// Byte/bit positions for the subset of commands this stack cares about
// naming (Core Spec 6.0, Vol. 4, Part E, §6.27).
var (
	SupportedCommandsSetEventMask                      = commandBit(5, 6)
	SupportedCommandsReset                             = commandBit(5, 7)
	SupportedCommandsReadLocalSupportedCommands         = commandBit(14, 5)
	SupportedCommandsReadLocalSupportedFeatures         = commandBit(14, 3)
	SupportedCommandsReadBufferSize                     = commandBit(14, 7)
	SupportedCommandsReadBdAddr                         = commandBit(15, 1)
	SupportedCommandsLeSetEventMask                     = commandBit(25, 0)
	SupportedCommandsLeReadBufferSize                   = commandBit(25, 1)
	SupportedCommandsLeReadLocalSupportedFeaturesPage0  = commandBit(25, 2)
	SupportedCommandsLeSetRandomAddress                 = commandBit(25, 4)
	SupportedCommandsLeSetAdvertisingParameters         = commandBit(25, 5)
	SupportedCommandsLeReadAdvertisingChannelTxPower     = commandBit(25, 6)
	SupportedCommandsLeSetAdvertisingData               = commandBit(25, 7)
	SupportedCommandsLeSetScanResponseData              = commandBit(26, 0)
	SupportedCommandsLeSetAdvertisingEnable             = commandBit(26, 1)
	SupportedCommandsLeSetScanParameters                = commandBit(26, 2)
	SupportedCommandsLeSetScanEnable                    = commandBit(26, 3)
	SupportedCommandsLeCreateConnection                 = commandBit(26, 4)
	SupportedCommandsLeCreateConnectionCancel           = commandBit(26, 5)
	SupportedCommandsLeReadFilterAcceptListSize         = commandBit(26, 6)
	SupportedCommandsLeClearFilterAcceptList            = commandBit(26, 7)
	SupportedCommandsLeAddDeviceToFilterAcceptList      = commandBit(27, 0)
	SupportedCommandsLeRemoveDeviceFromFilterAcceptList = commandBit(27, 1)
	SupportedCommandsLeConnectionUpdate                 = commandBit(27, 2)
	SupportedCommandsLeRand                             = commandBit(27, 7)
	SupportedCommandsDisconnect                         = commandBit(0, 5)
	SupportedCommandsLeReadSupportedStates              = commandBit(28, 3)
)

type commandBitPos struct {
	byteIdx uint
	bitIdx  uint
}

func commandBit(byteIdx, bitIdx uint) commandBitPos {
	return commandBitPos{byteIdx: byteIdx, bitIdx: bitIdx}
}

// Set enables the given command bit.
func (s *SupportedCommands) Set(pos commandBitPos) {
	s[pos.byteIdx] |= 1 << pos.bitIdx
}

// Test reports whether the given command bit is enabled.
func (s SupportedCommands) Test(pos commandBitPos) bool {
	return s[pos.byteIdx]&(1<<pos.bitIdx) != 0
}

// Union returns the bitwise OR of s and other, octet by octet.
func (s SupportedCommands) Union(other SupportedCommands) SupportedCommands {
	var out SupportedCommands
	for i := range out {
		out[i] = s[i] | other[i]
	}
	return out
}

// Intersection returns the bitwise AND of s and other, octet by octet.
func (s SupportedCommands) Intersection(other SupportedCommands) SupportedCommands {
	var out SupportedCommands
	for i := range out {
		out[i] = s[i] & other[i]
	}
	return out
}

// Negation returns the bitwise complement of s, octet by octet.
func (s SupportedCommands) Negation() SupportedCommands {
	var out SupportedCommands
	for i := range out {
		out[i] = ^s[i]
	}
	return out
}

// Equal reports whether s and other have identical bits set.
func (s SupportedCommands) Equal(other SupportedCommands) bool {
	return s == other
}

func (s SupportedCommands) Encode(buf *Buffer) (int, error) {
	if err := buf.CopyFromSlice(s[:]); err != nil {
		return 0, err
	}
	return len(s), nil
}

func (s SupportedCommands) EncodedSize() int { return len(s) }

func parseSupportedCommands(b []byte) SupportedCommands {
	var s SupportedCommands
	copy(s[:], b)
	return s
}

func leUint64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
