package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/venu/schema"
)

func TestJSON_OmitsAbsentFields(t *testing.T) {
	request := &schema.CardRequest{
		Card:   schema.Card{Token: "token1", Last4: schema.String("0001"), PresentationMethod: "tap"},
		Amount: schema.Amount{Total: "10.00"},
	}
	payload, err := Encode(JSON(), request)
	require.NoError(t, err)
	assert.JSONEq(t, `{"card":{"token":"token1","last4":"0001","presentation_method":"tap"},"amount":{"total":"10.00"}}`, payload)
	assert.NotContains(t, payload, "null")
}

func TestJSON_InitialiseMetadata(t *testing.T) {
	var testCases = []struct {
		description string
		request     *schema.InitialiseRequest
		expect      string
	}{
		{description: "nil metadata", request: &schema.InitialiseRequest{}, expect: `{}`},
		{description: "metadata", request: &schema.InitialiseRequest{Metadata: map[string]string{"serial": "T1"}}, expect: `{"metadata":{"serial":"T1"}}`},
	}
	for _, testCase := range testCases {
		payload, err := Encode(JSON(), testCase.request)
		require.NoError(t, err, testCase.description)
		assert.JSONEq(t, testCase.expect, payload, testCase.description)
		assert.NotContains(t, payload, "null", testCase.description)
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	request := &schema.CardRequest{
		Card:       schema.Card{Token: "t", Bin: schema.String("400000"), Last4: schema.String("0001"), PresentationMethod: "insert"},
		Amount:     schema.Amount{Total: "5.00", Cashout: schema.String("1.00"), Gratuity: schema.String("0.50")},
		ExternalID: schema.String("pos-1"),
	}
	payload, err := Encode(JSON(), request)
	require.NoError(t, err)
	decoded, err := Decode[schema.CardRequest](JSON(), payload)
	require.NoError(t, err)
	assert.Equal(t, request, decoded)
	assert.Nil(t, decoded.Amount.Surcharge)
}

func TestJSON_UnknownFields(t *testing.T) {
	reply, err := Decode[schema.Reply](JSON(), `{"action":"LAUNCH_INTENT","intent":"flow://x","extra":{"a":1}}`)
	require.NoError(t, err)
	target, ok := reply.LaunchTarget()
	assert.True(t, ok)
	assert.Equal(t, "flow://x", target)

	result, err := Decode[schema.CardPresentedResult](JSON(), `{"version":2}`)
	require.NoError(t, err)
	assert.Nil(t, result.DiscountAmount)
	assert.Equal(t, "0", result.DiscountOrZero())
}

func TestDecode_Error(t *testing.T) {
	_, err := Decode[schema.Reply](JSON(), "not json")
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrDecode)
	assert.Equal(t, schema.DecodeFailure, schema.Code(err))
}

func TestCBOR_RoundTrip(t *testing.T) {
	reply := &schema.Reply{Action: schema.ActionLaunchIntent, Intent: schema.String("flow://y")}
	data, err := CBOR().Marshal(reply)
	require.NoError(t, err)
	var decoded schema.Reply
	require.NoError(t, CBOR().Unmarshal(data, &decoded))
	assert.Equal(t, *reply, decoded)
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	assert.NotNil(t, registry.Get("application/json"))
	assert.NotNil(t, registry.Get("application/cbor"))
	assert.Nil(t, registry.Get("application/xml"))
}
