package rpc

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startTestServer(t *testing.T) (socketPath string, deps *Deps) {
	t.Helper()
	deps = newTestDeps(t)
	socketPath = filepath.Join(t.TempDir(), "mootimer.sock")

	srv := NewServer(socketPath, deps)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	ready := make(chan struct{})
	go func() {
		close(ready)
		_ = srv.Serve(ctx)
	}()
	<-ready

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c, err := net.Dial("unix", socketPath); err == nil {
			c.Close()
			return socketPath, deps
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("server did not come up in time")
	return "", nil
}

func TestServeRequestResponseRoundTrip(t *testing.T) {
	socketPath, _ := startTestServer(t)

	c, err := net.Dial("unix", socketPath)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Write([]byte(`{"jsonrpc":"2.0","id":1,"method":"profile.create","params":{"id":"work","name":"Work"}}` + "\n"))
	require.NoError(t, err)

	reader := bufio.NewReader(c)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(line), &resp))
	require.Nil(t, resp.Error)
}

func TestServeMalformedLineKeepsConnectionOpen(t *testing.T) {
	socketPath, _ := startTestServer(t)

	c, err := net.Dial("unix", socketPath)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Write([]byte("not json\n"))
	require.NoError(t, err)

	reader := bufio.NewReader(c)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(line), &resp))
	require.NotNil(t, resp.Error)
	require.Equal(t, codeParseError, resp.Error.Code)

	_, err = c.Write([]byte(`{"jsonrpc":"2.0","id":2,"method":"profile.list"}` + "\n"))
	require.NoError(t, err)
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(line), &resp))
	require.Nil(t, resp.Error)
}

func TestServeReceivesEventNotification(t *testing.T) {
	socketPath, deps := startTestServer(t)

	c, err := net.Dial("unix", socketPath)
	require.NoError(t, err)
	defer c.Close()
	reader := bufio.NewReader(c)

	// Give the event-forwarder goroutine time to subscribe before emitting.
	time.Sleep(50 * time.Millisecond)

	_, err = deps.Profiles.Create("personal", "Personal")
	require.NoError(t, err)

	c.SetReadDeadline(time.Now().Add(2 * time.Second))
	line, err := reader.ReadString('\n')
	require.NoError(t, err)

	var note Notification
	require.NoError(t, json.Unmarshal([]byte(line), &note))
	require.Equal(t, "profile.event", note.Method)
}
