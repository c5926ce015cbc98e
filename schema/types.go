package schema

// Action tells the client what to do once a reply has been received.
type Action string

const (
	ActionNone         Action = "NONE"
	ActionLaunchIntent Action = "LAUNCH_INTENT"
)

// CardRequest represents a card payment.
type CardRequest struct {
	Card       Card    `json:"card" cbor:"card"`
	Amount     Amount  `json:"amount" cbor:"amount"`
	ExternalID *string `json:"external_id,omitempty" cbor:"external_id,omitempty"`
}

// Card contains the payment card details.
type Card struct {
	// Token uniquely identifies the card.
	Token string `json:"token" cbor:"token"`
	// Bin holds the first 6 digits of the card number.
	Bin *string `json:"bin,omitempty" cbor:"bin,omitempty"`
	// Last4 holds the last 4 digits of the card number.
	Last4              *string `json:"last4,omitempty" cbor:"last4,omitempty"`
	PresentationMethod string  `json:"presentation_method" cbor:"presentation_method"`
}

// Amount represents the monetary amounts involved in a transaction.
type Amount struct {
	Total     string  `json:"total" cbor:"total"`
	Cashout   *string `json:"cashout,omitempty" cbor:"cashout,omitempty"`
	Surcharge *string `json:"surcharge,omitempty" cbor:"surcharge,omitempty"`
	Gratuity  *string `json:"gratuity,omitempty" cbor:"gratuity,omitempty"`
}

// InitialiseRequest carries key-value pairs identifying the terminal.
type InitialiseRequest struct {
	Metadata map[string]string `json:"metadata,omitempty" cbor:"metadata,omitempty"`
}

// Reply is the service response to any request.
type Reply struct {
	Action Action  `json:"action" cbor:"action"`
	Intent *string `json:"intent,omitempty" cbor:"intent,omitempty"`
}

// LaunchTarget returns the flow descriptor when the reply asks for a flow launch.
func (r *Reply) LaunchTarget() (string, bool) {
	if r == nil || r.Action != ActionLaunchIntent || r.Intent == nil || *r.Intent == "" {
		return "", false
	}
	return *r.Intent, true
}

// NoneReply returns the default reply used when the service cannot be reached.
func NoneReply() *Reply {
	return &Reply{Action: ActionNone}
}

// CardPresentedResult is returned when a card is presented to the terminal.
type CardPresentedResult struct {
	DiscountAmount *string `json:"discount_amount,omitempty" cbor:"discount_amount,omitempty"`
}

// DiscountOrZero returns the discount amount, or "0" when no discount was produced.
func (r *CardPresentedResult) DiscountOrZero() string {
	if r == nil || r.DiscountAmount == nil {
		return "0"
	}
	return *r.DiscountAmount
}

// String returns a pointer to s; handy for optional fields.
func String(s string) *string {
	return &s
}
