package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sangkips/billbuddy-api/internal/application/service"
	"github.com/sirupsen/logrus"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
	wsSendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// origins are already filtered by the CORS middleware
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LedgerStreamHandler pushes a table snapshot to connected devices after
// every ledger change.
type LedgerStreamHandler struct {
	ledger *service.Ledger
	log    *logrus.Logger
}

// NewLedgerStreamHandler creates a new ledger stream handler
func NewLedgerStreamHandler(ledger *service.Ledger, log *logrus.Logger) *LedgerStreamHandler {
	return &LedgerStreamHandler{ledger: ledger, log: log}
}

// Stream upgrades the request and sends the open tables followed by every
// subsequent change. A client that falls behind loses updates rather than
// blocking the ledger.
func (h *LedgerStreamHandler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	send := make(chan service.TableSnapshot, wsSendBuffer)
	unsubscribe := h.ledger.Subscribe(func(s service.TableSnapshot) {
		select {
		case send <- s:
		default:
			h.log.WithField("table_id", s.TableID).Warn("Dropping ledger update for slow client")
		}
	})
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for _, snapshot := range h.ledger.OpenTables() {
		if err := h.write(conn, snapshot); err != nil {
			return
		}
	}

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case snapshot := <-send:
			if err := h.write(conn, snapshot); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (h *LedgerStreamHandler) write(conn *websocket.Conn, snapshot service.TableSnapshot) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(snapshot); err != nil {
		h.log.WithError(err).Debug("Websocket write failed")
		return err
	}
	return nil
}
