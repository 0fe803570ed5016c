package hci

// AdvertisingEnable is the parameter of LE_Set_Advertising_Enable.
type AdvertisingEnable uint8

const (
	AdvertisingDisabled AdvertisingEnable = 0x00
	AdvertisingEnabled  AdvertisingEnable = 0x01
)

func ParseAdvertisingEnable(v uint8) (AdvertisingEnable, error) {
	switch AdvertisingEnable(v) {
	case AdvertisingDisabled, AdvertisingEnabled:
		return AdvertisingEnable(v), nil
	default:
		return 0, newError(KindInvalidAdvertisingEnableValue, "invalid advertising enable value %#02x", v)
	}
}

func (e AdvertisingEnable) Encode(buf *Buffer) (int, error) {
	if err := buf.TryPushUint8(uint8(e)); err != nil {
		return 0, err
	}
	return 1, nil
}

func (e AdvertisingEnable) EncodedSize() int { return 1 }

// ScanEnable is the first parameter of LE_Set_Scan_Enable.
type ScanEnable uint8

const (
	ScanDisabled ScanEnable = 0x00
	ScanEnabled  ScanEnable = 0x01
)

func ParseScanEnable(v uint8) (ScanEnable, error) {
	switch ScanEnable(v) {
	case ScanDisabled, ScanEnabled:
		return ScanEnable(v), nil
	default:
		return 0, newError(KindInvalidScanEnableValue, "invalid scan enable value %#02x", v)
	}
}

func (e ScanEnable) Encode(buf *Buffer) (int, error) {
	if err := buf.TryPushUint8(uint8(e)); err != nil {
		return 0, err
	}
	return 1, nil
}

func (e ScanEnable) EncodedSize() int { return 1 }

// FilterDuplicates is the second parameter of LE_Set_Scan_Enable.
type FilterDuplicates uint8

const (
	FilterDuplicatesDisabled FilterDuplicates = 0x00
	FilterDuplicatesEnabled  FilterDuplicates = 0x01
)

func ParseFilterDuplicates(v uint8) (FilterDuplicates, error) {
	switch FilterDuplicates(v) {
	case FilterDuplicatesDisabled, FilterDuplicatesEnabled:
		return FilterDuplicates(v), nil
	default:
		return 0, newError(KindInvalidFilterDuplicates, "invalid filter duplicates value %#02x", v)
	}
}

func (f FilterDuplicates) Encode(buf *Buffer) (int, error) {
	if err := buf.TryPushUint8(uint8(f)); err != nil {
		return 0, err
	}
	return 1, nil
}

func (f FilterDuplicates) EncodedSize() int { return 1 }
