package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/venu/schema"
)

func TestMailbox_Deliver(t *testing.T) {
	mailbox := NewMailbox()
	defer mailbox.Close()

	found, ok := Lookup(mailbox.Address())
	require.True(t, ok)
	assert.Same(t, mailbox, found)

	err := Deliver(&Message{Kind: schema.KindReply, Payload: "{}", To: mailbox.Address()})
	require.NoError(t, err)
	msg := <-mailbox.C()
	assert.Equal(t, schema.KindReply, msg.Kind)
	assert.Equal(t, "{}", msg.Payload)
}

func TestMailbox_Closed(t *testing.T) {
	mailbox := NewMailbox()
	address := mailbox.Address()
	mailbox.Close()
	mailbox.Close()

	_, ok := Lookup(address)
	assert.False(t, ok)
	assert.ErrorIs(t, mailbox.Post(&Message{Kind: schema.KindQuit}), ErrMailboxClosed)
	assert.ErrorIs(t, Deliver(&Message{Kind: schema.KindReply, To: address}), ErrMailboxClosed)
}
