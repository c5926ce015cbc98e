// Package transport defines the platform primitives the client core is built on:
// binding to the remote terminal service, sending to it, and receiving from it.
//
// A Binder starts an asynchronous bind and reports its outcome to a Listener.
// Once ready, the client sends Messages through the Remote, attaching the
// address of a local Mailbox as ReplyTo; the service routes its reply back to
// that mailbox with Deliver.
package transport

import (
	"context"

	"github.com/viant/venu/schema"
)

// Message is a single frame exchanged with the remote service.
type Message struct {
	Kind schema.Kind `json:"kind" cbor:"1,keyasint"`
	// ID correlates a reply with its request; 0 when the service does not echo it.
	ID      uint64 `json:"id,omitempty" cbor:"2,keyasint,omitempty"`
	Payload string `json:"payload,omitempty" cbor:"3,keyasint,omitempty"`
	// ReplyTo is the mailbox address replies are routed to.
	ReplyTo string `json:"replyTo,omitempty" cbor:"4,keyasint,omitempty"`
	// To is the destination mailbox of an inbound message.
	To string `json:"to,omitempty" cbor:"5,keyasint,omitempty"`
}

// Remote sends messages to a bound service.
type Remote interface {
	Send(msg *Message) error
}

// Listener observes the outcome of a bind.
type Listener interface {
	// OnReady is called once the service is bound.
	OnReady(remote Remote)
	// OnLost is called when a bind fails or an established binding drops.
	OnLost(err error)
}

// Binder binds the host process to the remote service.
type Binder interface {
	// Bind initiates a bind and returns without waiting for it to complete.
	Bind(ctx context.Context, listener Listener) error
	// Unbind releases the binding; it is safe to call when never bound.
	Unbind() error
}

// Handler serves one request on the service side; an empty reply with nil error
// still produces a reply message, an error produces none.
type Handler func(ctx context.Context, kind schema.Kind, payload string) (string, error)
