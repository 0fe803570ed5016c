package session

import (
	"context"
	"encoding/binary"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/ridgeline-systems/blehci/hci"
)

// DefaultCommandTimeout bounds how long a cmd* call waits for its
// Command_Complete/Command_Status answer before returning hci.ErrTimeout.
const DefaultCommandTimeout = 2 * time.Second

// maxCredit is the largest value num_hci_command_packets can take on the
// wire (it is encoded as a single octet).
const maxCredit = 255

// creditGate models the Controller's command flow-control credit (Core
// Spec 6.0, Vol. 4, Part E, §4.4) as a weighted semaphore sized to the
// Controller's last-reported num_hci_command_packets allowance.
// tryAcquire consumes one unit of that allowance and, unlike the weight
// it checks out of the underlying semaphore, is reflected in size
// immediately, so size always tracks the true remaining allowance
// rather than drifting from it. resize overwrites the pool to the
// absolute value the Controller most recently reported, since
// num_hci_command_packets is a standing allowance, not an increment.
//
// golang.org/x/sync/semaphore.Weighted has no resize operation, so
// shrinking the pool is approximated with non-blocking TryAcquire calls
// that claim back the excess weight; if that excess is currently
// checked out by in-flight commands, the gate settles to the smaller
// size only once those commands complete and are not re-released.
//
// tryAcquire never blocks: a *Session serializes its cmd* calls under
// its own mutex, so when the pool is exhausted the caller pumps the
// driver for the Command_Complete/Command_Status that will resize it
// (see Session.waitForCredit) rather than waiting on the gate itself.
type creditGate struct {
	mu   sync.Mutex
	sem  *semaphore.Weighted
	size int64
}

func newCreditGate(initial uint8) *creditGate {
	g := &creditGate{sem: semaphore.NewWeighted(maxCredit), size: int64(initial)}
	// Hold back the weight above the initial allowance so the semaphore's
	// free weight equals size, and a later resize up releases only weight
	// that is held.
	g.sem.TryAcquire(maxCredit - int64(initial))
	return g
}

// tryAcquire consumes one unit of credit if any is currently available.
func (g *creditGate) tryAcquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.size <= 0 {
		return false
	}
	if !g.sem.TryAcquire(1) {
		return false
	}
	g.size--
	return true
}

func (g *creditGate) resize(newSize uint8) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delta := int64(newSize) - g.size
	switch {
	case delta > 0:
		g.sem.Release(delta)
	case delta < 0:
		for i := int64(0); i < -delta; i++ {
			if !g.sem.TryAcquire(1) {
				break
			}
		}
	}
	g.size = int64(newSize)
}

// Session owns a Driver and drives the full command/event exchange
// described in Core Spec 6.0, Vol. 4, Part E: encode and send a command,
// wait for its correlated Command_Complete or Command_Status, track
// Controller flow-control credit, and queue any event observed along the
// way that wasn't the answer being waited for.
//
// A *Session is not safe for concurrent use by multiple goroutines: its
// cmd* methods mutually exclude each other via an internal mutex, the
// same way database/sql.DB serializes use of a single connection.
type Session struct {
	driver Driver
	log    *logrus.Entry

	mu             sync.Mutex
	credit         *creditGate
	events         *EventQueue
	commandTimeout time.Duration
}

// Option customizes a Session at construction time.
type Option func(*Session)

// WithEventQueueCapacity overrides DefaultEventQueueCapacity.
func WithEventQueueCapacity(capacity int) Option {
	return func(s *Session) { s.events = NewEventQueue(capacity) }
}

// WithCommandTimeout overrides DefaultCommandTimeout.
func WithCommandTimeout(d time.Duration) Option {
	return func(s *Session) { s.commandTimeout = d }
}

// WithLogger attaches a logrus entry other than the package default,
// letting a caller tag every log line from this Session (e.g. with the
// serial device path or USB bus address).
func WithLogger(entry *logrus.Entry) Option {
	return func(s *Session) { s.log = entry }
}

// New builds a Session around driver. The initial credit pool is 1, the
// Controller's conventional allowance before the Host has issued its
// first command (Core Spec 6.0, Vol. 4, Part E, §4.4).
func New(driver Driver, opts ...Option) *Session {
	s := &Session{
		driver:         driver,
		log:            logrus.WithField("component", "session"),
		credit:         newCreditGate(1),
		events:         NewEventQueue(DefaultEventQueueCapacity),
		commandTimeout: DefaultCommandTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PopEvent removes and returns the oldest event queued while waiting on
// a prior command's response (LE Meta subevents, Disconnection_Complete,
// and the like). It never blocks.
func (s *Session) PopEvent() (hci.Event, bool) {
	return s.events.Pop()
}

// commandCompleteExtractor turns a Command_Complete event's return
// parameters into the typed result a specific opcode promises.
type commandCompleteExtractor[T any] func(hci.EventParameter) (T, error)

// cmdWithCommandCompleteResponse sends cmd and waits for the
// Command_Complete event that answers it, handing the return parameters
// to extract. This is the template every opcode that answers with
// Command_Complete (the large majority) is built from.
func cmdWithCommandCompleteResponse[T any](ctx context.Context, s *Session, cmd hci.Command, extract commandCompleteExtractor[T]) (T, error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()

	correlation := uuid.New()
	opcode := cmd.OpCode()
	log := s.log.WithFields(logrus.Fields{"opcode": opcode.String(), "correlation": correlation.String()})

	if err := s.waitForCredit(ctx, log); err != nil {
		return zero, err
	}

	if err := s.send(ctx, cmd, log); err != nil {
		return zero, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.commandTimeout)
	defer cancel()

	for {
		event, err := s.readEvent(ctx, log)
		if err != nil {
			return zero, err
		}
		if event.Kind == hci.EventCommandComplete && event.CommandComplete.Opcode == opcode {
			s.credit.resize(event.CommandComplete.NumHciCommandPackets)
			result, err := extract(event.CommandComplete.Parameter)
			if err != nil {
				return zero, err
			}
			return result, nil
		}
		s.queueOrDrop(event, log)
	}
}

// cmdWithCommandStatusResponse sends cmd and waits for the
// Command_Status event that answers it: the Controller has accepted the
// command but its eventual result arrives later as its own event (LE
// Meta / Connection_Complete for LE_Create_Connection, for instance).
func cmdWithCommandStatusResponse(ctx context.Context, s *Session, cmd hci.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	correlation := uuid.New()
	opcode := cmd.OpCode()
	log := s.log.WithFields(logrus.Fields{"opcode": opcode.String(), "correlation": correlation.String()})

	if err := s.waitForCredit(ctx, log); err != nil {
		return err
	}

	if err := s.send(ctx, cmd, log); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.commandTimeout)
	defer cancel()

	for {
		event, err := s.readEvent(ctx, log)
		if err != nil {
			return err
		}
		if event.Kind == hci.EventCommandStatus && event.CommandStatus.Opcode == opcode {
			s.credit.resize(event.CommandStatus.NumHciCommandPackets)
			if !event.CommandStatus.Status.IsSuccess() {
				return hci.NewErrorCodeError(event.CommandStatus.Status)
			}
			return nil
		}
		s.queueOrDrop(event, log)
	}
}

// waitForCredit blocks until the Session holds standing command credit
// (Core Spec 6.0, Vol. 4, Part E, §4.4, Host Flow Control, step 1: never
// send a command while num_hci_command_packets is zero). Credit is only
// replenished by a Command_Complete or Command_Status event, so once the
// pool is exhausted this reads further packets off the driver itself
// rather than blocking blind on the gate — nothing else is going to
// call resize while this Session's mutex is held. Any LE Meta or
// Disconnection_Complete event observed along the way is queued exactly
// as it would be while waiting on a command's own response. A Command
// or ACL Data packet seen here is a protocol violation: the Controller
// has no standing Host credit that could have prompted one.
func (s *Session) waitForCredit(ctx context.Context, log *logrus.Entry) error {
	for {
		if s.credit.tryAcquire() {
			return nil
		}
		packet, err := s.readPacket(ctx)
		if err != nil {
			return err
		}
		if packet.Kind != hci.PacketKindEvent {
			return hci.NewReadFailure(hci.ErrInvalidPacket)
		}
		switch packet.Event.Kind {
		case hci.EventCommandComplete:
			s.credit.resize(packet.Event.CommandComplete.NumHciCommandPackets)
		case hci.EventCommandStatus:
			s.credit.resize(packet.Event.CommandStatus.NumHciCommandPackets)
		default:
			s.queueOrDrop(packet.Event, log)
		}
	}
}

func (s *Session) send(ctx context.Context, cmd hci.Command, log *logrus.Entry) error {
	packet, err := hci.EncodeCommand(cmd)
	if err != nil {
		return err
	}
	log.WithField("bytes", len(packet)).Debug("sending HCI command")
	if _, err := s.driver.Write(ctx, packet); err != nil {
		return hci.NewWriteFailure(err)
	}
	return nil
}

func (s *Session) queueOrDrop(event hci.Event, log *logrus.Entry) {
	if !s.events.Push(event) {
		log.WithField("kind", event.Kind).Warn("event queue full, dropping event")
	}
}

// readEvent reads exactly one framed HCI packet off the driver and
// returns it as an Event. An Event or AclData packet are handled;
// observing a Command packet from the Controller is a protocol
// violation and reported as hci.ErrUnexpectedEvent.
func (s *Session) readEvent(ctx context.Context, log *logrus.Entry) (hci.Event, error) {
	for {
		packet, err := s.readPacket(ctx)
		if err != nil {
			return hci.Event{}, err
		}
		switch packet.Kind {
		case hci.PacketKindEvent:
			return packet.Event, nil
		case hci.PacketKindAclData:
			log.WithField("handle", packet.AclData.Handle.Value()).Debug("ACL data received outside a data-plane reader")
			continue
		default:
			return hci.Event{}, hci.ErrUnexpectedEvent
		}
	}
}

// readPacket reads one fully framed HCI packet from the driver: the
// packet-type octet, then the type-specific header, then its declared
// body length, mirroring how a UART or USB HCI transport already
// delivers whole packets rather than an undifferentiated byte stream.
func (s *Session) readPacket(ctx context.Context) (hci.Packet, error) {
	header, err := s.readExact(ctx, 1)
	if err != nil {
		return hci.Packet{}, err
	}
	packetType := header[0]

	var rest []byte
	switch packetType {
	case byte(hci.PacketTypeCommand):
		head, err := s.readExact(ctx, 3)
		if err != nil {
			return hci.Packet{}, err
		}
		paramLen := int(head[2])
		body, err := s.readExact(ctx, paramLen)
		if err != nil {
			return hci.Packet{}, err
		}
		rest = append(head, body...)
	case byte(hci.PacketTypeEvent):
		head, err := s.readExact(ctx, 2)
		if err != nil {
			return hci.Packet{}, err
		}
		paramLen := int(head[1])
		body, err := s.readExact(ctx, paramLen)
		if err != nil {
			return hci.Packet{}, err
		}
		rest = append(head, body...)
	case byte(hci.PacketTypeAclData):
		head, err := s.readExact(ctx, 4)
		if err != nil {
			return hci.Packet{}, err
		}
		dataLen := int(binary.LittleEndian.Uint16(head[2:4]))
		body, err := s.readExact(ctx, dataLen)
		if err != nil {
			return hci.Packet{}, err
		}
		rest = append(head, body...)
	default:
		return hci.Packet{}, hci.NewReadFailure(hci.ErrInvalidPacket)
	}

	framed := append([]byte{packetType}, rest...)
	packet, _, err := hci.ParsePacket(framed)
	return packet, err
}

// readExact blocks until n bytes have been read off the driver or ctx is
// done, accumulating across short reads the way a stream transport
// delivers them.
func (s *Session) readExact(ctx context.Context, n int) ([]byte, error) {
	buf := make([]byte, n)
	read := 0
	for read < n {
		if err := ctx.Err(); err != nil {
			return nil, hci.ErrTimeout
		}
		m, err := s.driver.Read(ctx, buf[read:])
		if err != nil {
			if ctx.Err() != nil {
				return nil, hci.ErrTimeout
			}
			return nil, hci.NewReadFailure(err)
		}
		read += m
	}
	return buf, nil
}
