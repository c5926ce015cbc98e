// Package venu provides a host-side client for the Venu payment terminal
// service, an out-of-process service reached over a bindable transport.
//
// The root package wires the building blocks together from ClientOptions:
//   - transport: the mem simulator or a framed unix/tcp connection (conn)
//   - codec: JSON payloads and CBOR frames
//   - flow: host commands presenting the flows the service asks for
//   - logger: zap with optional lumberjack rotation
//
// Example:
//
//	options, err := venu.LoadOptions(ctx, "file:///etc/venu/client.yaml")
//	if err != nil {
//		return err
//	}
//	cli, err := venu.NewClient(options)
//	if err != nil {
//		return err
//	}
//	defer cli.Disconnect()
//	reply := cli.Initialise(ctx, &schema.InitialiseRequest{})
package venu
