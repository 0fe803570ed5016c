package hci

import (
	"bytes"
	"testing"
)

// Expected wire bytes are taken from the byte-vector cases this codec
// is grounded on (the original Rust crate's command encode tests), not
// invented: they fix both the opcode and the parameter layout.
func TestEncodeCommand(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want []byte
	}{
		{
			name: "nop",
			cmd:  Command{Kind: CommandNop},
			want: []byte{1, 0, 0, 0},
		},
		{
			name: "reset",
			cmd:  Command{Kind: CommandReset},
			want: []byte{1, 3, 12, 0},
		},
		{
			name: "read_local_supported_commands",
			cmd:  Command{Kind: CommandReadLocalSupportedCommands},
			want: []byte{1, 2, 16, 0},
		},
		{
			name: "read_local_supported_features",
			cmd:  Command{Kind: CommandReadLocalSupportedFeatures},
			want: []byte{1, 3, 16, 0},
		},
		{
			name: "read_buffer_size",
			cmd:  Command{Kind: CommandReadBufferSize},
			want: []byte{1, 5, 16, 0},
		},
		{
			name: "read_bd_addr",
			cmd:  Command{Kind: CommandReadBdAddr},
			want: []byte{1, 9, 16, 0},
		},
		{
			name: "le_rand",
			cmd:  Command{Kind: CommandLeRand},
			want: []byte{1, 24, 32, 0},
		},
		{
			name: "le_read_buffer_size",
			cmd:  Command{Kind: CommandLeReadBufferSize},
			want: []byte{1, 2, 32, 0},
		},
		{
			name: "le_read_local_supported_features_page_0",
			cmd:  Command{Kind: CommandLeReadLocalSupportedFeaturesPage0},
			want: []byte{1, 3, 32, 0},
		},
		{
			name: "le_read_advertising_channel_tx_power",
			cmd:  Command{Kind: CommandLeReadAdvertisingChannelTxPower},
			want: []byte{1, 7, 32, 0},
		},
		{
			name: "le_read_supported_states",
			cmd:  Command{Kind: CommandLeReadSupportedStates},
			want: []byte{1, 28, 32, 0},
		},
		{
			name: "le_set_advertising_enable",
			cmd:  Command{Kind: CommandLeSetAdvertisingEnable, LeSetAdvertisingEnable: AdvertisingEnabled},
			want: []byte{1, 10, 32, 1, 1},
		},
		{
			name: "le_set_random_address",
			cmd: Command{Kind: CommandLeSetRandomAddress, LeSetRandomAddress: mustRandomStaticAddress(t,
				[6]byte{68, 223, 27, 9, 83, 250})},
			want: []byte{1, 5, 32, 6, 68, 223, 27, 9, 83, 250},
		},
		{
			name: "set_event_mask",
			cmd: Command{Kind: CommandSetEventMask,
				SetEventMask: EventMaskHardwareError | EventMaskDataBufferOverflow | EventMaskDisconnectionComplete},
			want: []byte{1, 1, 12, 8, 16, 128, 0, 2, 0, 0, 0, 0},
		},
		{
			name: "le_set_event_mask",
			cmd:  Command{Kind: CommandLeSetEventMask, LeSetEventMask: LeEventMaskDefault},
			want: []byte{1, 1, 32, 8, 31, 0, 0, 0, 0, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeCommand(tt.cmd)
			if err != nil {
				t.Fatalf("EncodeCommand() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("EncodeCommand() = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestEncodeCommandUnsupported(t *testing.T) {
	cmd := Command{Kind: CommandUnsupported, Unsupported: OpCode(0x0C08)}
	if _, err := EncodeCommand(cmd); err == nil {
		t.Fatal("expected an error encoding an unsupported command")
	}
}

func mustRandomStaticAddress(t *testing.T, octets [6]byte) RandomStaticDeviceAddress {
	t.Helper()
	addr, err := NewRandomStaticDeviceAddress(octets)
	if err != nil {
		t.Fatalf("NewRandomStaticDeviceAddress() error = %v", err)
	}
	return addr
}
