// Package host implements the venu command: a sample host that drives the
// terminal service client from the command line and a terminal simulator that
// can run in process or serve framed requests on a socket.
package host
