package hci

import (
	"testing"
)

// Input byte vectors are taken verbatim from the Command_Complete,
// Command_Status, and LE Meta event parsing cases this codec is
// grounded on (the original Rust crate's own packet-level tests), so
// they exercise the real wire shape rather than an invented one.
func TestParsePacketEventSuccess(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		check func(t *testing.T, p Packet)
	}{
		{
			name:  "command_complete_nop",
			input: []byte{4, 14, 3, 1, 0, 0},
			check: func(t *testing.T, p Packet) {
				cc := p.Event.CommandComplete
				if cc.Opcode != OpCodeNop || cc.NumHciCommandPackets != 1 {
					t.Fatalf("unexpected command complete: %+v", cc)
				}
				if cc.Parameter.Kind != EventParameterEmpty {
					t.Fatalf("expected empty return parameter, got %+v", cc.Parameter)
				}
			},
		},
		{
			name:  "command_complete_reset",
			input: []byte{4, 14, 4, 1, 3, 12, 0},
			check: func(t *testing.T, p Packet) {
				cc := p.Event.CommandComplete
				if cc.Opcode != OpCodeReset {
					t.Fatalf("unexpected opcode: %v", cc.Opcode)
				}
				if cc.Parameter.Kind != EventParameterStatus || cc.Parameter.Status.Status != ErrorCodeSuccess {
					t.Fatalf("unexpected return parameter: %+v", cc.Parameter)
				}
			},
		},
		{
			name:  "command_complete_le_rand",
			input: []byte{4, 14, 12, 1, 24, 32, 0, 68, 223, 27, 9, 83, 58, 224, 240},
			check: func(t *testing.T, p Packet) {
				cc := p.Event.CommandComplete
				if cc.Opcode != OpCodeLeRand {
					t.Fatalf("unexpected opcode: %v", cc.Opcode)
				}
				want := [8]byte{68, 223, 27, 9, 83, 58, 224, 240}
				if cc.Parameter.Kind != EventParameterStatusAndRandomNumber || cc.Parameter.StatusAndRandomNumber.RandomNumber != want {
					t.Fatalf("unexpected random number: %+v", cc.Parameter)
				}
			},
		},
		{
			name:  "command_complete_read_bd_addr",
			input: []byte{4, 14, 10, 1, 9, 16, 0, 0xCD, 0x2E, 0x0B, 0x04, 0x32, 0x56},
			check: func(t *testing.T, p Packet) {
				cc := p.Event.CommandComplete
				want := NewPublicDeviceAddress([6]byte{0xCD, 0x2E, 0x0B, 0x04, 0x32, 0x56})
				if cc.Parameter.Kind != EventParameterStatusAndBdAddr || cc.Parameter.StatusAndBdAddr.Address != want {
					t.Fatalf("unexpected bd_addr: %+v", cc.Parameter)
				}
			},
		},
		{
			name:  "command_complete_read_buffer_size",
			input: []byte{4, 14, 11, 1, 5, 16, 0, 255, 0, 255, 24, 0, 12, 0},
			check: func(t *testing.T, p Packet) {
				got := p.Event.CommandComplete.Parameter.StatusAndBufferSize
				if got.AclDataPacketLength != 255 || got.SynchronousDataPacketLength != 255 ||
					got.TotalNumAclDataPackets != 24 || got.TotalNumSynchronousDataPackets != 12 {
					t.Fatalf("unexpected buffer size: %+v", got)
				}
			},
		},
		{
			name:  "command_complete_le_read_local_supported_features_page_0",
			input: []byte{4, 14, 12, 1, 3, 32, 0, 1, 16, 0, 0, 0, 0, 0, 0},
			check: func(t *testing.T, p Packet) {
				got := p.Event.CommandComplete.Parameter.StatusAndSupportedLeFeats.SupportedLeFeatures
				want := SupportedLeFeaturesLeEncryption | SupportedLeFeaturesLeExtendedAdvertising
				if got != want {
					t.Fatalf("unexpected LE features: got %#x want %#x", got, want)
				}
			},
		},
		{
			// Status 0x01 (UnknownHciCommand): the Controller never
			// populated Tx_Power_Level, so the return parameter carries
			// the status alone and the numeric field is left at its
			// zero value rather than being parsed from a body that
			// was never sent.
			name:  "command_complete_le_read_advertising_channel_tx_power_non_success",
			input: []byte{4, 14, 4, 1, 7, 32, 1},
			check: func(t *testing.T, p Packet) {
				cc := p.Event.CommandComplete
				if cc.Opcode != OpCodeLeReadAdvertisingChannelTxPower {
					t.Fatalf("unexpected opcode: %v", cc.Opcode)
				}
				got := cc.Parameter
				if got.Kind != EventParameterStatusAndTxPowerLevel || got.StatusAndTxPowerLevel.Status != ErrorCodeUnknownHciCommand {
					t.Fatalf("unexpected return parameter: %+v", got)
				}
				if got.StatusAndTxPowerLevel.TxPowerLevel != (TxPowerLevel{}) {
					t.Fatalf("expected a zero-valued Tx_Power_Level, got %+v", got.StatusAndTxPowerLevel.TxPowerLevel)
				}
			},
		},
		{
			name:  "command_complete_read_buffer_size_non_success",
			input: []byte{4, 14, 4, 1, 5, 16, 0x0C},
			check: func(t *testing.T, p Packet) {
				got := p.Event.CommandComplete.Parameter
				if got.Kind != EventParameterStatusAndBufferSize || got.StatusAndBufferSize.Status != ErrorCodeCommandDisallowed {
					t.Fatalf("unexpected return parameter: %+v", got)
				}
				if got.StatusAndBufferSize != (StatusAndBufferSizeEventParameter{Status: ErrorCodeCommandDisallowed}) {
					t.Fatalf("expected every numeric field defaulted to zero, got %+v", got.StatusAndBufferSize)
				}
			},
		},
		{
			name:  "command_status_le_connection_update",
			input: []byte{4, 15, 4, 0, 1, 19, 32},
			check: func(t *testing.T, p Packet) {
				cs := p.Event.CommandStatus
				if cs.Status != ErrorCodeSuccess || cs.Opcode != OpCodeLeConnectionUpdate || cs.NumHciCommandPackets != 1 {
					t.Fatalf("unexpected command status: %+v", cs)
				}
			},
		},
		{
			name:  "command_status_le_create_connection_failure",
			input: []byte{4, 15, 4, 12, 1, 13, 32},
			check: func(t *testing.T, p Packet) {
				cs := p.Event.CommandStatus
				if cs.Status != ErrorCodeCommandDisallowed || cs.Opcode != OpCodeLeCreateConnection {
					t.Fatalf("unexpected command status: %+v", cs)
				}
			},
		},
		{
			name:  "le_meta_unsupported_subevent",
			input: []byte{0x04, 0x3E, 0x09, 0x34, 0x00, 0xCD, 0x2E, 0x0B, 0x04, 0x32, 0x56, 0x00},
			check: func(t *testing.T, p Packet) {
				if p.Event.Kind != EventLeMeta || p.Event.LeMeta.Kind != LeMetaEventUnsupported || p.Event.LeMeta.UnsupportedSubeventCode != 0x34 {
					t.Fatalf("unexpected LE meta event: %+v", p.Event.LeMeta)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, rest, err := ParsePacket(tt.input)
			if err != nil {
				t.Fatalf("ParsePacket() error = %v", err)
			}
			if len(rest) != 0 {
				t.Fatalf("expected no trailing bytes, got %d", len(rest))
			}
			if p.Kind != PacketKindEvent {
				t.Fatalf("expected an event packet, got kind %v", p.Kind)
			}
			tt.check(t, p)
		})
	}
}

func TestParsePacketEventUnsupportedOpcode(t *testing.T) {
	// Opcode 0x0C08 is Flush, which this stack never issues and so has
	// no known Command_Complete return-parameter shape.
	_, _, err := ParsePacket([]byte{4, 14, 4, 1, 8, 12, 0})
	if err == nil {
		t.Fatal("expected an error for a Command_Complete answering an unrecognized opcode")
	}
}

func TestParsePacketEventCommandStatusTruncated(t *testing.T) {
	_, _, err := ParsePacket([]byte{4, 15, 4, 0})
	if err == nil {
		t.Fatal("expected an error for a truncated Command_Status event")
	}
}

func TestParsePacketEventCommandStatusTrailingBytes(t *testing.T) {
	// Command_Status is always exactly 4 bytes (status, num_hci_command_packets,
	// opcode); a declared length of 5 leaves one byte the event can't account for.
	_, _, err := ParsePacket([]byte{4, 15, 5, 0, 1, 19, 32, 0xAA})
	if err == nil {
		t.Fatal("expected an error for a Command_Status event with trailing bytes")
	}
}

func TestParsePacketEventCommandCompleteTrailingBytes(t *testing.T) {
	// Reset's return parameter is status-only; a declared length of 5
	// leaves a byte after the status that the Reset shape never consumes.
	_, _, err := ParsePacket([]byte{4, 14, 5, 1, 3, 12, 0, 0xAA})
	if err == nil {
		t.Fatal("expected an error for a Command_Complete(Reset) event with trailing bytes")
	}
}

func TestParsePacketEmpty(t *testing.T) {
	if _, _, err := ParsePacket(nil); err == nil {
		t.Fatal("expected an error parsing an empty packet")
	}
}

func TestParsePacketUnknownType(t *testing.T) {
	if _, _, err := ParsePacket([]byte{0xFF}); err == nil {
		t.Fatal("expected an error for an unrecognized packet type octet")
	}
}
