package host

import "time"

type Options struct {
	ConfigURL   string        `short:"c" long:"config" description:"client options URL (yaml or json)"`
	Network     string        `short:"n" long:"network" description:"service network, e.g. unix or tcp"`
	Address     string        `short:"a" long:"address" description:"service address"`
	Timeout     time.Duration `short:"t" long:"timeout" description:"connect, request and flow timeout"`
	Simulate    bool          `short:"s" long:"simulate" description:"use the in-process terminal simulator"`
	Serve       bool          `long:"serve" description:"run the terminal simulator as a service on network/address"`
	FlowCommand string        `short:"f" long:"flow-command" description:"command presenting flows"`
	Detached    bool          `long:"detached" description:"flow results are posted to the callback endpoint"`
	Callback    string        `long:"callback" description:"flow result callback listen address, e.g. 127.0.0.1:8099"`
	Discount    string        `long:"discount" description:"discount produced by simulated flows" default:"5.00"`
	LogLevel    string        `short:"l" long:"log-level" description:"log level; logs go to stderr when set" choice:"debug" choice:"info" choice:"warn" choice:"error"`

	Action string `short:"x" long:"action" description:"operation to run" choice:"initialise" choice:"card" choice:"accept" choice:"all" default:"all"`
	Card
}

// Card defines the presented card and amount.
type Card struct {
	Token      string `long:"token" description:"card token" default:"tok_sim"`
	Bin        string `long:"bin" description:"card bin"`
	Last4      string `long:"last4" description:"card last four digits"`
	Method     string `long:"method" description:"presentation method" default:"CONTACTLESS"`
	Total      string `long:"total" description:"transaction total" default:"0.00"`
	Cashout    string `long:"cashout" description:"cashout amount"`
	Surcharge  string `long:"surcharge" description:"surcharge amount"`
	Gratuity   string `long:"gratuity" description:"gratuity amount"`
	ExternalID string `long:"external-id" description:"external transaction id"`
}
