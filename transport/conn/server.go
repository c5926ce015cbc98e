package conn

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"sync"

	"github.com/viant/venu/schema"
	"github.com/viant/venu/transport"
	"go.uber.org/zap"
)

// Server answers framed requests with a transport.Handler.
type Server struct {
	config
	handler transport.Handler
}

// Serve accepts connections until ctx is done or the listener fails.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()
	for {
		c, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		go func() {
			if err := s.ServeConn(ctx, c); err != nil {
				s.logger.Warn("connection failed", zap.Error(err))
			}
		}()
	}
}

// ServeConn answers requests arriving on c until it is closed.
func (s *Server) ServeConn(ctx context.Context, c net.Conn) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		_ = c.Close()
	}()
	var writeMu sync.Mutex
	reader := bufio.NewReader(c)
	for {
		data, err := readFrame(reader)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return nil
			}
			return err
		}
		request := &transport.Message{}
		if err := s.codec.Unmarshal(data, request); err != nil {
			s.logger.Warn("dropped malformed request", zap.Error(err))
			continue
		}
		if !request.Kind.IsRequest() {
			continue
		}
		go func() {
			payload, err := s.handler(ctx, request.Kind, request.Payload)
			if err != nil {
				s.logger.Debug("request not answered", zap.Stringer("kind", request.Kind), zap.Error(err))
				return
			}
			reply := &transport.Message{Kind: schema.KindReply, ID: request.ID, Payload: payload, To: request.ReplyTo}
			encoded, err := s.codec.Marshal(reply)
			if err != nil {
				s.logger.Error("failed to encode reply", zap.Error(err))
				return
			}
			writeMu.Lock()
			defer writeMu.Unlock()
			if err := writeFrame(c, encoded); err != nil {
				s.logger.Debug("failed to write reply", zap.Error(err))
			}
		}()
	}
}

// NewServer creates a framed request server.
func NewServer(handler transport.Handler, options ...Option) *Server {
	return &Server{config: newConfig(options), handler: handler}
}
