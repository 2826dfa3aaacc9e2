package realtime

import (
	"net/http"
	"time"

	"petcare-tracker/internal/platform/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	readLimit  = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// La app corre en el dispositivo; cualquier origen local es válido.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Handler godoc
// @Summary Stream de recordatorios vencidos
// @Description Websocket; cada mensaje es {"type":"reminder.due", ...}.
// @Tags realtime
// @Router /ws [get]
func Handler(h *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Warn("websocket upgrade failed", logger.Fields{"err": err})
			return
		}

		c := &client{send: make(chan []byte, 64)}
		if !h.add(c) {
			_ = conn.Close()
			return
		}

		go writePump(conn, c)
		go readPump(conn, c, h)
	}
}

func writePump(conn *websocket.Conn, c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump solo drena el socket para detectar el cierre y los pongs.
func readPump(conn *websocket.Conn, c *client, h *Hub) {
	defer func() {
		h.remove(c)
		_ = conn.Close()
	}()

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Debug("websocket read error", logger.Fields{"err": err})
			}
			return
		}
	}
}
