package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"board-customizer/models"
	"board-customizer/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
	outboxSize     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// SessionController handles the session API and socket
type SessionController struct {
	sessions service.SessionServiceInterface
}

// NewSessionController creates a new SessionController
func NewSessionController(sessions service.SessionServiceInterface) *SessionController {
	return &SessionController{sessions: sessions}
}

// sessionErrorStatus maps session errors to HTTP statuses
func sessionErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrOptionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnknownCategory):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GetSession handles GET /api/sessions/{id}
func (c *SessionController) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := c.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, sessionErrorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c.sessions.Response(sess))
}

// SelectOption handles PUT /api/sessions/{id}/selection/{category}
// Body: {"uid": "d2"}
func (c *SessionController) SelectOption(w http.ResponseWriter, r *http.Request) {
	var req models.SelectOptionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMessageSize)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.UID == "" {
		writeError(w, http.StatusBadRequest, "uid is required")
		return
	}

	sess, err := c.sessions.Select(chi.URLParam(r, "id"), chi.URLParam(r, "category"), req.UID)
	if err != nil {
		writeError(w, sessionErrorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c.sessions.Response(sess))
}

// StartCamera handles POST /api/sessions/{id}/camera/start
func (c *SessionController) StartCamera(w http.ResponseWriter, r *http.Request) {
	sess, registered, err := c.sessions.StartCamera(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, sessionErrorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"registered":     registered,
		"colliderMeshes": sess.Preview.Scene().Camera.ColliderMeshes,
	})
}

// Stream handles GET /api/sessions/{id}/ws
// Every store change of the session is pushed as a "scene" message
func (c *SessionController) Stream(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, release, err := c.sessions.Attach(id)
	if err != nil {
		writeError(w, sessionErrorStatus(err), err.Error())
		return
	}
	defer release()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("❌ Websocket upgrade failed")
		return
	}
	defer conn.Close()

	outbox := make(chan models.ServerMessage, outboxSize)
	enqueue := func(msg models.ServerMessage) {
		select {
		case outbox <- msg:
		default:
			log.Warn().Msgf("⚠️  Session %s outbox full, dropping %s message", id, msg.Type)
		}
	}
	sceneMessage := func(scene models.Scene) models.ServerMessage {
		selection := sess.Store.Selection()
		return models.ServerMessage{
			Type:      models.MessageScene,
			Scene:     &scene,
			Controls:  sess.Controls.Groups(),
			Selection: &selection,
		}
	}

	unsubscribe := sess.Preview.OnUpdate(func(scene models.Scene) {
		enqueue(sceneMessage(scene))
	})
	defer unsubscribe()

	enqueue(sceneMessage(sess.Preview.Scene()))

	done := make(chan struct{})
	defer close(done)
	go c.writePump(conn, outbox, done)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	log.Debug().Msgf("🔌 Session %s socket connected", id)
	for {
		var msg models.ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msgf("⚠️  Session %s socket read failed", id)
			}
			return
		}

		switch msg.Type {
		case models.MessageSelect:
			if _, err := c.sessions.Select(id, msg.Category, msg.UID); err != nil {
				enqueue(models.ServerMessage{Type: models.MessageError, Error: err.Error()})
			}
		case models.MessageCameraStart:
			if _, _, err := c.sessions.StartCamera(id); err != nil {
				enqueue(models.ServerMessage{Type: models.MessageError, Error: err.Error()})
			}
		default:
			enqueue(models.ServerMessage{Type: models.MessageError, Error: "unknown message type: " + msg.Type})
		}
	}
}

// writePump is the only writer of conn
func (c *SessionController) writePump(conn *websocket.Conn, outbox <-chan models.ServerMessage, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case msg := <-outbox:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				log.Warn().Err(err).Msg("⚠️  Websocket write failed")
				conn.Close()
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				conn.Close()
				return
			}
		}
	}
}
