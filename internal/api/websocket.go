package api

import (
	"net/http"

	"github.com/gorilla/websocket"

	"stablefi/pkg/stablefi"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The SPA is served from the same origin in production and from a dev
	// server during development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsInbound struct {
	Message  string `json:"message"`
	Language string `json:"language,omitempty"`
}

type wsOutbound struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// assistantWebsocket keeps a chat session open so the widget can exchange
// messages without re-posting for every turn.
func (h *handler) assistantWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	lang := h.resolveLanguage(r.URL.Query().Get("language"))
	greeting := wsOutbound{Role: "assistant", Content: stablefi.AssistantGreeting(lang)}
	if err := conn.WriteJSON(greeting); err != nil {
		return
	}

	for {
		var inbound wsInbound
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", "error", err)
			}
			return
		}
		msgLang := lang
		if inbound.Language != "" {
			msgLang = inbound.Language
		}
		reply, err := h.core.Reply(r.Context(), inbound.Message, msgLang)
		if err != nil {
			reply = err.Error()
		}
		if err := conn.WriteJSON(wsOutbound{Role: "assistant", Content: reply}); err != nil {
			return
		}
	}
}
