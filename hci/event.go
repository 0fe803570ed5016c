package hci

// EventCode identifies an HCI Event packet's type.
type EventCode uint8

const (
	EventCodeDisconnectionComplete EventCode = 0x05
	EventCodeCommandComplete       EventCode = 0x0E
	EventCodeCommandStatus         EventCode = 0x0F
	EventCodeLeMeta                EventCode = 0x3E
)

// CommandCompleteEvent reports the outcome of a previously issued command,
// along with the number of command packets the Controller is now willing
// to accept (the Host's flow-control credit).
type CommandCompleteEvent struct {
	NumHciCommandPackets uint8
	Opcode               OpCode
	Parameter            EventParameter
}

// CommandStatusEvent acknowledges that a command has been accepted for
// processing, without yet providing its result; LE_Create_Connection,
// LE_Connection_Update and Disconnect are the commands this stack issues
// that answer with Command_Status rather than Command_Complete.
type CommandStatusEvent struct {
	Status               ErrorCode
	NumHciCommandPackets uint8
	Opcode               OpCode
}

// LeMetaEvent wraps the LE Controller subevents nested under the single
// LE Meta Event code, discriminated the same Kind-tagged way as Command
// and EventParameter.
type LeMetaEvent struct {
	Kind                   LeMetaEventKind
	ConnectionComplete     LeConnectionCompleteEvent
	AdvertisingReports     LeAdvertisingReportList
	ConnectionUpdateComplete LeConnectionUpdateCompleteEvent
	UnsupportedSubeventCode uint8
}

type LeMetaEventKind uint8

const (
	LeMetaEventConnectionComplete LeMetaEventKind = iota
	LeMetaEventAdvertisingReport
	LeMetaEventConnectionUpdateComplete
	LeMetaEventUnsupported
)

// LE Meta subevent codes (Core Spec 6.0, Vol. 4, Part E, §7.7.65).
const (
	leMetaSubeventConnectionComplete     uint8 = 0x01
	leMetaSubeventAdvertisingReport      uint8 = 0x02
	leMetaSubeventConnectionUpdateComplete uint8 = 0x03
)

// Event is an HCI Event packet. As with Command, it is a Kind-tagged
// struct rather than an interface.
type Event struct {
	Kind                 EventKind
	CommandComplete      CommandCompleteEvent
	CommandStatus        CommandStatusEvent
	DisconnectionComplete DisconnectionCompleteEvent
	LeMeta               LeMetaEvent
	UnsupportedCode      uint8
}

type EventKind uint8

const (
	EventCommandComplete EventKind = iota
	EventCommandStatus
	EventDisconnectionComplete
	EventLeMeta
	EventUnsupported
)
