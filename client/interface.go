package client

import (
	"context"

	"github.com/viant/venu/schema"
)

// Interface defines the client interface for all exported business operations
type Interface interface {
	// Initialise identifies the terminal to the service
	Initialise(ctx context.Context, request *schema.InitialiseRequest) *schema.Reply

	// CardPresented reports a presented card and returns the discount to apply
	CardPresented(ctx context.Context, request *schema.CardRequest) *schema.CardPresentedResult

	// TransactionAccepted reports an accepted transaction
	TransactionAccepted(ctx context.Context, request *schema.CardRequest)
}

// Ensure Client implements Interface
var _ Interface = (*Client)(nil)
