// Package client implements the host-side client of the Venu terminal service.
//
// It composes the connection manager, the request/reply correlator and the
// flow correlator behind three business operations:
//   - Initialise identifies the terminal.
//   - CardPresented reports a presented card and, when the service asks for it,
//     launches a flow whose result carries an optional discount.
//   - TransactionAccepted reports an accepted transaction and runs the
//     requested flow, discarding its result.
//
// None of the operations return errors: a service that cannot be reached,
// does not answer in time or answers garbage degrades to the NONE reply, and a
// flow that is cancelled or times out degrades to an absent result.
//
// Example:
//
//	binder := conn.New("unix", "/run/venu/terminal.sock")
//	cli := client.New(binder, launcher, client.WithTimeout(45*time.Second))
//	_ = cli.Connect(ctx)
//	defer cli.Disconnect()
//	result := cli.CardPresented(ctx, request)
//	fmt.Println(result.DiscountOrZero())
package client
