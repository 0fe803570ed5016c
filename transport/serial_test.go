package transport

import (
	"testing"

	"golang.org/x/sys/unix"
)

func TestBaudSpeedKnownRates(t *testing.T) {
	tests := []struct {
		baud uint32
		want uint32
	}{
		{9600, unix.B9600},
		{115200, unix.B115200},
		{1000000, unix.B1000000},
		{2000000, unix.B2000000},
	}
	for _, tt := range tests {
		got, err := baudSpeed(tt.baud)
		if err != nil {
			t.Fatalf("baudSpeed(%d) error = %v", tt.baud, err)
		}
		if got != tt.want {
			t.Errorf("baudSpeed(%d) = %d, want %d", tt.baud, got, tt.want)
		}
	}
}

func TestBaudSpeedUnsupportedRate(t *testing.T) {
	if _, err := baudSpeed(4800); err == nil {
		t.Fatal("expected an error for an unsupported baud rate")
	}
}
