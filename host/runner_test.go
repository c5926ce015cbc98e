package host

import (
	"bytes"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/venu/transport/conn"
)

func TestRun_Simulate(t *testing.T) {
	var testCases = []struct {
		description string
		options     *Options
		expect      []string
	}{
		{
			description: "all operations",
			options:     &Options{Simulate: true, Action: "all", Discount: "5.00", Card: Card{Token: "tok", Total: "10.00"}},
			expect:      []string{`"action": "NONE"`, `"discount_amount": "5.00"`, `"transactionAccepted": "done"`},
		},
		{
			description: "zero total gets no discount",
			options:     &Options{Simulate: true, Action: "card", Discount: "5.00", Card: Card{Token: "tok", Total: "0.00"}},
			expect:      []string{`"discount_amount": "0"`},
		},
	}
	for _, testCase := range testCases {
		out := &bytes.Buffer{}
		require.NoError(t, run(context.Background(), testCase.options, out), testCase.description)
		for _, fragment := range testCase.expect {
			assert.Contains(t, out.String(), fragment, testCase.description)
		}
	}
}

func TestRun_Conn(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = conn.NewServer(NewSimulator(nil).Handle).Serve(ctx, listener)
	}()

	out := &bytes.Buffer{}
	options := &Options{
		Network: "tcp",
		Address: listener.Addr().String(),
		Timeout: 2 * time.Second,
		Action:  "card",
		Card:    Card{Token: "tok", Total: "10.00"},
	}
	require.NoError(t, run(ctx, options, out))
	// no flow command configured: the flow completes without data
	assert.True(t, strings.Contains(out.String(), `"discount_amount": "0"`), out.String())
}

func TestRun_ParseError(t *testing.T) {
	assert.Error(t, Run([]string{"--action", "refund"}))
}

func TestCard_Request(t *testing.T) {
	card := &Card{Token: "tok", Last4: "4242", Method: "CHIP", Total: "1.00", Gratuity: "0.10"}
	request := card.request()
	assert.Equal(t, "tok", request.Card.Token)
	assert.Equal(t, "4242", *request.Card.Last4)
	assert.Nil(t, request.Card.Bin)
	assert.Equal(t, "0.10", *request.Amount.Gratuity)
	assert.Nil(t, request.ExternalID)
}
