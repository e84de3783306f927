package toolsrv

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WSListener serves the same JSON-RPC dispatch over WebSocket, one request
// per text message.
type WSListener struct {
	Addr   string // listen address, e.g. ":8765"
	Server *Server

	inShutdown atomic.Bool
	httpSrv    *http.Server
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  16 * 1024,
	WriteBufferSize: 16 * 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// ListenAndServe blocks until Shutdown is called or the listener fails.
func (l *WSListener) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", l.Addr)
	if err != nil {
		return fmt.Errorf("toolsrv: listen %s: %w", l.Addr, err)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		l.serveConn(ctx, w, r)
	})
	l.httpSrv = &http.Server{Handler: mux}
	err = l.httpSrv.Serve(ln)
	if l.inShutdown.Load() || err == http.ErrServerClosed {
		return ErrServerClosed
	}
	return err
}

// Shutdown stops accepting connections and closes the listener.
func (l *WSListener) Shutdown(ctx context.Context) error {
	l.inShutdown.Store(true)
	if l.httpSrv == nil {
		return nil
	}
	return l.httpSrv.Shutdown(ctx)
}

func (l *WSListener) serveConn(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := l.Server.logger().With("conn", uuid.NewString()[:8], "remote", r.RemoteAddr)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	log.Info("client connected")
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("websocket read failed", "error", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		resp := l.Server.Handle(ctx, data)
		if resp == nil {
			continue
		}
		if err := conn.WriteJSON(resp); err != nil {
			log.Warn("websocket write failed", "error", err)
			return
		}
	}
}
