package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ridgeline-systems/blehci/hci"
	"github.com/ridgeline-systems/blehci/transport/faketransport"
)

func resetCommandComplete(status byte) []byte {
	return []byte{4, 14, 4, 1, 3, 12, status}
}

func TestSessionReset(t *testing.T) {
	tr := faketransport.New()
	tr.QueueResponse(resetCommandComplete(0))
	s := New(tr)

	if err := s.Reset(context.Background()); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	written := tr.Written()
	if len(written) != 1 {
		t.Fatalf("expected exactly one write, got %d", len(written))
	}
	if want := []byte{1, 3, 12, 0}; !bytesEqual(written[0], want) {
		t.Fatalf("Reset() wrote % x, want % x", written[0], want)
	}
}

func TestSessionReadBdAddr(t *testing.T) {
	tr := faketransport.New()
	tr.QueueResponse([]byte{4, 14, 10, 1, 9, 16, 0, 0xCD, 0x2E, 0x0B, 0x04, 0x32, 0x56})
	s := New(tr)

	addr, err := s.ReadBdAddr(context.Background())
	if err != nil {
		t.Fatalf("ReadBdAddr() error = %v", err)
	}
	want := hci.NewPublicDeviceAddress([6]byte{0xCD, 0x2E, 0x0B, 0x04, 0x32, 0x56})
	if addr != want {
		t.Fatalf("ReadBdAddr() = %+v, want %+v", addr, want)
	}
}

func TestSessionCommandErrorStatus(t *testing.T) {
	tr := faketransport.New()
	tr.QueueResponse(resetCommandComplete(0x0C)) // CommandDisallowed
	s := New(tr)

	err := s.Reset(context.Background())
	var hciErr *hci.Error
	if !errors.As(err, &hciErr) || hciErr.Kind != hci.KindErrorCode || hciErr.Code != hci.ErrorCodeCommandDisallowed {
		t.Fatalf("Reset() error = %v, want a KindErrorCode wrapping CommandDisallowed", err)
	}
}

func TestSessionQueuesUnmatchedEventsWhileWaiting(t *testing.T) {
	tr := faketransport.New()
	// An LE Meta event the controller sends before answering Reset,
	// exactly the interleaving a real Controller can produce.
	tr.QueueResponse([]byte{0x04, 0x3E, 0x09, 0x34, 0x00, 0xCD, 0x2E, 0x0B, 0x04, 0x32, 0x56, 0x00})
	tr.QueueResponse(resetCommandComplete(0))
	s := New(tr)

	if err := s.Reset(context.Background()); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	event, ok := s.PopEvent()
	if !ok {
		t.Fatal("expected the interleaved LE Meta event to have been queued")
	}
	if event.Kind != hci.EventLeMeta || event.LeMeta.Kind != hci.LeMetaEventUnsupported || event.LeMeta.UnsupportedSubeventCode != 0x34 {
		t.Fatalf("unexpected queued event: %+v", event)
	}
	if _, ok := s.PopEvent(); ok {
		t.Fatal("expected no further queued events")
	}
}

func TestSessionCommandTimeout(t *testing.T) {
	tr := faketransport.New() // no response queued; Read blocks until ctx is done
	s := New(tr, WithCommandTimeout(20*time.Millisecond))

	err := s.Reset(context.Background())
	if err == nil {
		t.Fatal("expected Reset() to time out waiting for Command_Complete")
	}
	if !errors.Is(err, hci.ErrTimeout) {
		t.Fatalf("expected the timeout to surface hci.ErrTimeout, got %v", err)
	}
}

func TestCreditGateTryAcquireTracksSizeExactly(t *testing.T) {
	g := newCreditGate(2)

	if !g.tryAcquire() {
		t.Fatal("expected tryAcquire to succeed with credit remaining")
	}
	if !g.tryAcquire() {
		t.Fatal("expected tryAcquire to succeed on the last unit of credit")
	}
	if g.tryAcquire() {
		t.Fatal("expected tryAcquire to fail once credit is exhausted")
	}

	g.resize(1) // controller reports a fresh allowance of 1
	if !g.tryAcquire() {
		t.Fatal("expected tryAcquire to succeed after resize")
	}
	if g.tryAcquire() {
		t.Fatal("expected tryAcquire to fail again once the new allowance is spent")
	}
}

func TestCreditGateResizeDownShrinksAvailability(t *testing.T) {
	g := newCreditGate(5)
	g.resize(0) // controller signals "stop sending"

	if g.tryAcquire() {
		t.Fatal("expected tryAcquire to fail once the controller reports zero credit")
	}
}

// TestSessionWaitsForCreditByPumpingEvents exercises the case where the
// Controller starts a session at zero credit (e.g. after a prior command
// drained it to zero): the next command must not send until a
// Command_Complete/Status reports fresh credit, and any unrelated event
// observed while waiting is queued rather than dropped on the floor.
func TestSessionWaitsForCreditByPumpingEvents(t *testing.T) {
	tr := faketransport.New()
	// An LE Meta event arrives first, still carrying zero credit implied
	// by nothing resizing the gate yet, then a Command_Complete (from
	// some earlier, already-answered command) reports a fresh allowance
	// of 1, and finally Reset's own Command_Complete answers the command
	// this test actually issues.
	tr.QueueResponse([]byte{0x04, 0x3E, 0x09, 0x34, 0x00, 0xCD, 0x2E, 0x0B, 0x04, 0x32, 0x56, 0x00})
	tr.QueueResponse([]byte{4, 14, 4, 1, 3, 12, 0}) // Reset Command_Complete, num_hci_command_packets=1
	tr.QueueResponse(resetCommandComplete(0))
	s := New(tr, WithCommandTimeout(time.Second))
	s.credit.resize(0) // start the session out of credit

	if err := s.Reset(context.Background()); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	written := tr.Written()
	if len(written) != 1 {
		t.Fatalf("expected exactly one command written once credit was replenished, got %d", len(written))
	}

	event, ok := s.PopEvent()
	if !ok || event.Kind != hci.EventLeMeta || event.LeMeta.UnsupportedSubeventCode != 0x34 {
		t.Fatalf("expected the interleaved LE Meta event to have been queued, got %+v ok=%v", event, ok)
	}
}

func TestSessionWaitingForCreditRejectsAclData(t *testing.T) {
	tr := faketransport.New()
	// ACL Data while the Host holds zero credit is a protocol violation.
	tr.QueueResponse([]byte{2, 1, 0, 1, 0, 0})
	s := New(tr)
	s.credit.resize(0)

	err := s.Reset(context.Background())
	if !errors.Is(err, hci.ErrInvalidPacket) {
		t.Fatalf("Reset() error = %v, want an InvalidPacket error", err)
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
