// Package session implements the HCI session engine: command dispatch,
// opcode correlation, controller flow-control credit, per-command
// timeouts, and event queueing on top of the hci codec.
package session

import "context"

// Driver is the transport collaborator a Session talks through: a raw
// byte pipe carrying framed HCI packets (Command/Event/ACL Data), with
// no framing knowledge of its own. transport/serial, transport/usb, and
// transport/faketransport each implement it.
type Driver interface {
	Read(ctx context.Context, buf []byte) (int, error)
	Write(ctx context.Context, buf []byte) (int, error)
}
