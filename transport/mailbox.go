package transport

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/viant/mcp-protocol/syncmap"
)

// ErrMailboxClosed is returned when posting to a closed or unknown mailbox.
var ErrMailboxClosed = errors.New("mailbox closed")

const mailboxSize = 32

var mailboxes = syncmap.NewMap[string, *Mailbox]()

// Mailbox is a reply address registered in the process; messages posted to it
// are consumed by a single receiver.
type Mailbox struct {
	address string
	ch      chan *Message
	done    chan struct{}
	once    sync.Once
}

// Address returns the token other parties use to reach this mailbox.
func (m *Mailbox) Address() string {
	return m.address
}

// C returns the inbound message channel.
func (m *Mailbox) C() <-chan *Message {
	return m.ch
}

// Done is closed once the mailbox is closed.
func (m *Mailbox) Done() <-chan struct{} {
	return m.done
}

// Post enqueues msg, blocking while the mailbox is full.
func (m *Mailbox) Post(msg *Message) error {
	select {
	case <-m.done:
		return ErrMailboxClosed
	default:
	}
	select {
	case m.ch <- msg:
		return nil
	case <-m.done:
		return ErrMailboxClosed
	}
}

// Close unregisters the mailbox; later posts fail with ErrMailboxClosed.
func (m *Mailbox) Close() {
	m.once.Do(func() {
		mailboxes.Delete(m.address)
		close(m.done)
	})
}

// NewMailbox creates and registers a mailbox under a fresh address.
func NewMailbox() *Mailbox {
	ret := &Mailbox{
		address: uuid.NewString(),
		ch:      make(chan *Message, mailboxSize),
		done:    make(chan struct{}),
	}
	mailboxes.Put(ret.address, ret)
	return ret
}

// Lookup returns the registered mailbox for address.
func Lookup(address string) (*Mailbox, bool) {
	return mailboxes.Get(address)
}

// Deliver routes msg to the mailbox named by msg.To.
func Deliver(msg *Message) error {
	mailbox, ok := Lookup(msg.To)
	if !ok {
		return fmt.Errorf("%w: %v", ErrMailboxClosed, msg.To)
	}
	return mailbox.Post(msg)
}
