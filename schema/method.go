package schema

import "fmt"

// Kind is the message type tag carried on the primary channel.
type Kind int

const (
	KindInitialise          Kind = 1
	KindCardPresented       Kind = 2
	KindTransactionAccepted Kind = 3

	KindReply Kind = 4
	KindQuit  Kind = 5
)

// IsRequest reports whether k is an outbound request tag.
func (k Kind) IsRequest() bool {
	return k >= KindInitialise && k <= KindTransactionAccepted
}

func (k Kind) String() string {
	switch k {
	case KindInitialise:
		return "initialise"
	case KindCardPresented:
		return "cardPresented"
	case KindTransactionAccepted:
		return "transactionAccepted"
	case KindReply:
		return "reply"
	case KindQuit:
		return "quit"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}
