package conn

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/venu/schema"
	"github.com/viant/venu/transport"
)

type recorder struct {
	ready chan transport.Remote
	lost  chan error
}

func (r *recorder) OnReady(remote transport.Remote) { r.ready <- remote }
func (r *recorder) OnLost(err error)                 { r.lost <- err }

func newRecorder() *recorder {
	return &recorder{ready: make(chan transport.Remote, 1), lost: make(chan error, 1)}
}

func pipeDialer(t *testing.T, server *Server) (func(ctx context.Context, network, address string) (net.Conn, error), func()) {
	ctx, cancel := context.WithCancel(context.Background())
	return func(_ context.Context, _, _ string) (net.Conn, error) {
		clientEnd, serverEnd := net.Pipe()
		go func() {
			_ = server.ServeConn(ctx, serverEnd)
		}()
		return clientEnd, nil
	}, cancel
}

func TestFrame(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, writeFrame(buf, []byte("hello")))
	require.NoError(t, writeFrame(buf, nil))
	data, err := readFrame(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	data, err = readFrame(buf)
	require.NoError(t, err)
	assert.Empty(t, data)
	_, err = readFrame(buf)
	assert.Error(t, err)
}

func TestBinder_RequestReply(t *testing.T) {
	server := NewServer(func(_ context.Context, kind schema.Kind, payload string) (string, error) {
		return `{"action":"NONE","seen":"` + kind.String() + `"}`, nil
	})
	dial, stop := pipeDialer(t, server)
	defer stop()

	binder := New("unix", "/tmp/venu.sock", WithDialer(dial))
	listener := newRecorder()
	require.NoError(t, binder.Bind(context.Background(), listener))

	var remote transport.Remote
	select {
	case remote = <-listener.ready:
	case <-time.After(time.Second):
		t.Fatal("bind did not complete")
	}

	mailbox := transport.NewMailbox()
	defer mailbox.Close()
	require.NoError(t, remote.Send(&transport.Message{Kind: schema.KindCardPresented, ID: 3, Payload: "{}", ReplyTo: mailbox.Address()}))

	select {
	case msg := <-mailbox.C():
		assert.Equal(t, schema.KindReply, msg.Kind)
		assert.Equal(t, uint64(3), msg.ID)
		assert.JSONEq(t, `{"action":"NONE","seen":"cardPresented"}`, msg.Payload)
	case <-time.After(time.Second):
		t.Fatal("reply not delivered")
	}

	require.NoError(t, binder.Unbind())
	select {
	case err := <-listener.lost:
		t.Fatalf("unexpected lost after unbind: %v", err)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBinder_Lost(t *testing.T) {
	server := NewServer(func(_ context.Context, _ schema.Kind, payload string) (string, error) {
		return payload, nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	dial := func(_ context.Context, _, _ string) (net.Conn, error) {
		clientEnd, serverEnd := net.Pipe()
		go func() {
			_ = server.ServeConn(ctx, serverEnd)
		}()
		return clientEnd, nil
	}
	binder := New("unix", "/tmp/venu.sock", WithDialer(dial))
	listener := newRecorder()
	require.NoError(t, binder.Bind(context.Background(), listener))
	<-listener.ready

	cancel()
	select {
	case err := <-listener.lost:
		assert.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("lost not reported")
	}
}

func TestBinder_DialFailure(t *testing.T) {
	binder := New("unix", "/nonexistent/venu.sock")
	listener := newRecorder()
	require.NoError(t, binder.Bind(context.Background(), listener))
	select {
	case err := <-listener.lost:
		assert.Contains(t, err.Error(), "failed to dial")
	case <-time.After(time.Second):
		t.Fatal("dial failure not reported")
	}
	assert.NoError(t, binder.Unbind())
}
