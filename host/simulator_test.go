package host

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/venu/codec"
	"github.com/viant/venu/flow"
	"github.com/viant/venu/schema"
)

func TestSimulator_Handle(t *testing.T) {
	var testCases = []struct {
		description string
		kind        schema.Kind
		request     any
		expect      *schema.Reply
		hasError    bool
	}{
		{
			description: "initialise",
			kind:        schema.KindInitialise,
			request:     &schema.InitialiseRequest{},
			expect:      schema.NoneReply(),
		},
		{
			description: "card with total",
			kind:        schema.KindCardPresented,
			request:     &schema.CardRequest{Card: schema.Card{Token: "tok"}, Amount: schema.Amount{Total: "12.50"}},
			expect:      &schema.Reply{Action: schema.ActionLaunchIntent, Intent: schema.String("venu://discount?token=tok&total=12.50")},
		},
		{
			description: "card with zero total",
			kind:        schema.KindCardPresented,
			request:     &schema.CardRequest{Card: schema.Card{Token: "tok"}, Amount: schema.Amount{Total: "0.00"}},
			expect:      schema.NoneReply(),
		},
		{
			description: "accepted",
			kind:        schema.KindTransactionAccepted,
			request:     &schema.CardRequest{Card: schema.Card{Token: "tok"}, Amount: schema.Amount{Total: "1.00"}, ExternalID: schema.String("tx-1")},
			expect:      &schema.Reply{Action: schema.ActionLaunchIntent, Intent: schema.String("venu://receipt?external_id=tx-1")},
		},
		{
			description: "unsupported",
			kind:        schema.KindQuit,
			request:     &schema.InitialiseRequest{},
			hasError:    true,
		},
	}

	simulator := NewSimulator(nil)
	for _, testCase := range testCases {
		payload, err := codec.Encode(codec.JSON(), testCase.request)
		require.NoError(t, err)
		replyPayload, err := simulator.Handle(context.Background(), testCase.kind, payload)
		if testCase.hasError {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		actual, err := codec.Decode[schema.Reply](codec.JSON(), replyPayload)
		require.NoError(t, err, testCase.description)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}

	_, err := simulator.Handle(context.Background(), schema.KindCardPresented, "{")
	assert.Error(t, err)
}

func TestSimulatedLauncher(t *testing.T) {
	var testCases = []struct {
		description string
		descriptor  string
		discount    string
		expect      *string
	}{
		{description: "discount", descriptor: "venu://discount?total=1.00", discount: "5.00", expect: schema.String(`{"discount_amount":"5.00"}`)},
		{description: "no discount configured", descriptor: "venu://discount", discount: ""},
		{description: "receipt", descriptor: "venu://receipt", discount: "5.00"},
	}
	for _, testCase := range testCases {
		results := make(chan *string, 1)
		err := SimulatedLauncher(testCase.discount).Launch(context.Background(), &flow.Launch{ID: "1", Descriptor: testCase.descriptor}, func(payload *string) {
			results <- payload
		})
		require.NoError(t, err, testCase.description)
		assert.EqualValues(t, testCase.expect, <-results, testCase.description)
	}
}
