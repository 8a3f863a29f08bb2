package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"github.com/samuelfneumann/gridlearn/environment"
	"golang.org/x/sync/errgroup"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 1 * time.Second

	// Frames of one simulation arriving faster than this are dropped
	pubResolution  = time.Millisecond * 100
	pingResolution = time.Millisecond * 200

	// Number of lost pings tolerated before the peer is considered gone
	pongWait = pingResolution * 4
)

var (
	ErrPongDeadlineExceeded = errors.New("client disconnect, pong deadline exceeded")

	errClosed = errors.New("client closed the connection")
)

// client publishes frames to a single browser over a websocket. Only
// one goroutine may write to a websocket at a time, so writes are
// serialized by writeMu.
type client struct {
	frames  <-chan environment.Frame
	initial []environment.Frame

	conn     *websocket.Conn
	writeMu  sync.Mutex
	lastPong atomic.Int64
}

func newClient(conn *websocket.Conn, frames <-chan environment.Frame,
	initial []environment.Frame) *client {
	return &client{frames: frames, initial: initial, conn: conn}
}

// sync runs the read, liveness and publishing loops until the client
// disconnects or ctx or done is cancelled. It returns nil on a clean
// disconnect.
func (cli *client) sync(ctx context.Context, done <-chan struct{}) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return cli.readMessages()
	})
	group.Go(func() error {
		return cli.pingPong(groupCtx)
	})
	group.Go(func() error {
		return cli.publish(groupCtx)
	})
	group.Go(func() error {
		// Unblock readMessages on teardown
		select {
		case <-groupCtx.Done():
		case <-done:
		}
		cli.close()
		return errClosed
	})

	if err := group.Wait(); !errors.Is(err, errClosed) {
		return err
	}
	return nil
}

// pingPong runs the ping-pong liveness check. It requires that
// readMessages is running so that the pong handler is called.
func (cli *client) pingPong(ctx context.Context) error {
	cli.lastPong.Store(time.Now().UnixNano())
	cli.conn.SetPongHandler(func(string) error {
		cli.lastPong.Store(time.Now().UnixNano())
		return nil
	})

	for range channerics.NewTicker(ctx.Done(), pingResolution) {
		if time.Since(time.Unix(0, cli.lastPong.Load())) > pongWait {
			return ErrPongDeadlineExceeded
		}

		err := cli.write(func(ws *websocket.Conn) error {
			return ws.WriteControl(websocket.PingMessage, nil,
				time.Now().Add(writeWait))
		})
		if err != nil {
			return fmt.Errorf("ping failed: %w", err)
		}
	}
	return nil
}

// readMessages reads and discards messages from the client. Errors
// returned by websocket reads are permanent and end the client.
func (cli *client) readMessages() error {
	for {
		if _, _, err := cli.conn.ReadMessage(); err != nil {
			if isError(err) {
				return fmt.Errorf("read failed: %w", err)
			}
			return errClosed
		}
	}
}

// publish writes the latest frame of every simulation, then each new
// frame as it arrives
func (cli *client) publish(ctx context.Context) error {
	lastSync := make(map[string]time.Time)

	for _, f := range cli.initial {
		lastSync[f.Simulation] = time.Now()
		if err := cli.writeFrame(f); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case f, ok := <-cli.frames:
			if !ok {
				return errClosed
			}
			// Drop frames arriving too quickly
			if time.Since(lastSync[f.Simulation]) < pubResolution {
				continue
			}

			lastSync[f.Simulation] = time.Now()
			if err := cli.writeFrame(f); err != nil {
				return err
			}
		}
	}
}

func (cli *client) writeFrame(f environment.Frame) error {
	return cli.write(func(ws *websocket.Conn) error {
		if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return fmt.Errorf("failed to set deadline: %w", err)
		}
		if err := ws.WriteJSON(f); err != nil {
			return fmt.Errorf("publish failed: %w", err)
		}
		return nil
	})
}

func (cli *client) write(writeFn func(*websocket.Conn) error) error {
	cli.writeMu.Lock()
	defer cli.writeMu.Unlock()
	return writeFn(cli.conn)
}

func (cli *client) close() {
	_ = cli.write(func(ws *websocket.Conn) error {
		return ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
	})
	cli.conn.Close()
}

func isError(err error) bool {
	return err != nil && websocket.IsUnexpectedCloseError(
		err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway)
}
