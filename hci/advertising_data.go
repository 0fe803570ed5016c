package hci

// AdvertisingPayloadSize is the fixed wire size of an AdvertisingData or
// ScanResponseData structure: one length octet followed by up to 31 bytes
// of AD structures (Core Spec 6.0, Vol. 3, Part C, §11).
const AdvertisingPayloadSize = 32

// AdvertisingData is the payload sent in LE_Set_Advertising_Data. Like the
// teacher's own preallocated write buffers, it is a fixed 32-byte array
// with byte 0 holding the length of what follows; Fill never reallocates.
type AdvertisingData struct {
	data [AdvertisingPayloadSize]byte
}

// Fill appends an AD structure to the payload by calling fn with a Buffer
// pre-positioned after the length octet, then folds the bytes written into
// the length octet. fn must not write more than AdvertisingPayloadSize-1
// minus what has already been filled.
func (a *AdvertisingData) Fill(fn func(buf *Buffer) (int, error)) (int, error) {
	buf := NewBuffer(AdvertisingPayloadSize - 1 - int(a.data[0]))
	n, err := fn(buf)
	if err != nil {
		return 0, err
	}
	copy(a.data[1+int(a.data[0]):], buf.Bytes())
	a.data[0] += byte(n)
	return n, nil
}

// Len returns the number of payload bytes filled so far (excluding the
// length octet itself).
func (a *AdvertisingData) Len() int { return int(a.data[0]) }

func (a AdvertisingData) Encode(buf *Buffer) (int, error) {
	if err := buf.CopyFromSlice(a.data[:]); err != nil {
		return 0, err
	}
	return AdvertisingPayloadSize, nil
}

func (a AdvertisingData) EncodedSize() int { return AdvertisingPayloadSize }

// ParseAdvertisingData reconstructs an AdvertisingData from 32 raw wire
// bytes, as received in an LE Advertising Report.
func ParseAdvertisingData(b []byte) (AdvertisingData, error) {
	var a AdvertisingData
	if len(b) != AdvertisingPayloadSize {
		return a, newError(KindInvalidAdvertisingDataLength, "advertising data must be %d bytes, got %d", AdvertisingPayloadSize, len(b))
	}
	copy(a.data[:], b)
	return a, nil
}

// ScanResponseData is the payload sent in LE_Set_Scan_Response_Data. It
// has the identical wire layout to AdvertisingData but is kept as a
// distinct type so callers cannot pass one where the other is expected.
type ScanResponseData struct {
	data [AdvertisingPayloadSize]byte
}

func (s *ScanResponseData) Fill(fn func(buf *Buffer) (int, error)) (int, error) {
	buf := NewBuffer(AdvertisingPayloadSize - 1 - int(s.data[0]))
	n, err := fn(buf)
	if err != nil {
		return 0, err
	}
	copy(s.data[1+int(s.data[0]):], buf.Bytes())
	s.data[0] += byte(n)
	return n, nil
}

func (s *ScanResponseData) Len() int { return int(s.data[0]) }

func (s ScanResponseData) Encode(buf *Buffer) (int, error) {
	if err := buf.CopyFromSlice(s.data[:]); err != nil {
		return 0, err
	}
	return AdvertisingPayloadSize, nil
}

func (s ScanResponseData) EncodedSize() int { return AdvertisingPayloadSize }

func ParseScanResponseData(b []byte) (ScanResponseData, error) {
	var s ScanResponseData
	if len(b) != AdvertisingPayloadSize {
		return s, newError(KindInvalidAdvertisingDataLength, "scan response data must be %d bytes, got %d", AdvertisingPayloadSize, len(b))
	}
	copy(s.data[:], b)
	return s, nil
}
