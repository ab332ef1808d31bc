package rpc

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"sync"

	"github.com/mootimer/daemon/internal/eventbus"
)

// conn drives one accepted connection: a reader goroutine decodes requests
// off the wire, a dispatcher goroutine runs them against the router, and an
// event-forwarder goroutine turns bus events into notifications. All three
// write through a single channel-fed writer goroutine so the stream never
// sees interleaved writes (SPEC_FULL.md §4.4).
type conn struct {
	nc    net.Conn
	deps  *Deps
	write chan []byte
	done  chan struct{}
	once  sync.Once
}

func serveConn(nc net.Conn, deps *Deps) {
	c := &conn{
		nc:    nc,
		deps:  deps,
		write: make(chan []byte, 64),
		done:  make(chan struct{}),
	}
	c.run()
}

func (c *conn) run() {
	defer c.nc.Close()

	requests := make(chan Request, 16)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		c.writeLoop()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(requests)
		c.readLoop(requests)
	}()

	sub := c.deps.Bus.Subscribe()
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.forwardEvents(sub)
	}()

	for req := range requests {
		resp := dispatch(c.deps, req)
		c.writeJSON(resp)
	}

	sub.Close()
	c.closeOnce()
	wg.Wait()
}

func (c *conn) closeOnce() {
	c.once.Do(func() { close(c.done) })
}

// readLoop parses one JSON-RPC object per line. A malformed line produces
// a -32700 parse-error notification (id: null) and the connection stays
// open, per SPEC_FULL.md §4.4.
func (c *conn) readLoop(out chan<- Request) {
	scanner := bufio.NewScanner(c.nc)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			c.writeJSON(newError(nil, codeParseError, "invalid JSON: "+err.Error()))
			continue
		}
		select {
		case out <- req:
		case <-c.done:
			return
		}
	}
}

func (c *conn) forwardEvents(sub *eventbus.Subscription) {
	for {
		select {
		case e, ok := <-sub.C:
			if !ok {
				return
			}
			c.writeJSON(notification(e.Category(), e))
		case <-c.done:
			return
		}
	}
}

func (c *conn) writeJSON(v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		slog.Error("rpc: failed to marshal outbound message", "error", err)
		return
	}
	b = append(b, '\n')
	select {
	case c.write <- b:
	case <-c.done:
	}
}

func (c *conn) writeLoop() {
	for {
		select {
		case b, ok := <-c.write:
			if !ok {
				return
			}
			if _, err := c.nc.Write(b); err != nil {
				if !errors.Is(err, net.ErrClosed) {
					slog.Debug("rpc: write failed", "error", err)
				}
				c.closeOnce()
				return
			}
		case <-c.done:
			return
		}
	}
}
