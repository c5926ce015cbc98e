package schema

import (
	"errors"

	"github.com/viant/jsonrpc"
)

const (
	ConnectionTimeout = -32010
	ConnectionLost    = -32011
	ConcurrentCall    = -32012
	SendFailure       = -32013
	RequestTimeout    = -32014
	DecodeFailure     = -32015
	FlowTimeout       = -32016
	FlowSuperseded    = -32017
	NotConnected      = -32018
)

var (
	ErrConnectionTimeout = jsonrpc.NewError(ConnectionTimeout, "connection timeout", nil)
	ErrConnectionLost    = jsonrpc.NewError(ConnectionLost, "connection lost", nil)
	ErrConcurrentCall    = jsonrpc.NewError(ConcurrentCall, "already waiting for a response", nil)
	ErrSendFailure       = jsonrpc.NewError(SendFailure, "failed to send message", nil)
	ErrRequestTimeout    = jsonrpc.NewError(RequestTimeout, "request timeout", nil)
	ErrDecode            = jsonrpc.NewError(DecodeFailure, "failed to decode payload", nil)
	ErrFlowTimeout       = jsonrpc.NewError(FlowTimeout, "flow result timeout", nil)
	ErrFlowSuperseded    = jsonrpc.NewError(FlowSuperseded, "flow superseded by a newer launch", nil)
	ErrNotConnected      = jsonrpc.NewError(NotConnected, "not connected to server", nil)
)

// Code returns the taxonomy code carried by err, or 0 when err is not a taxonomy error.
func Code(err error) int {
	var rpcErr *jsonrpc.Error
	if errors.As(err, &rpcErr) {
		return int(rpcErr.Code)
	}
	return 0
}
