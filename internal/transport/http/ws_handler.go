package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"quizzle/internal/app"
	"quizzle/internal/domain"
	"quizzle/internal/i18n"
)

// SlotStores hands out the save slot store of one device.
type SlotStores func(deviceID string) app.SlotStore

type WSHandler struct {
	service  *app.Service
	stores   SlotStores
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.Service, stores SlotStores, log *zap.Logger) *WSHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WSHandler{
		service: service,
		stores:  stores,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Choice int `json:"choice"`
}

type jumpPayload struct {
	Index int `json:"index"`
}

type swipePayload struct {
	DeltaX float64 `json:"dx"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type devicePayload struct {
	ID string `json:"id"`
}

type themePayload struct {
	Theme domain.Theme `json:"theme"`
}

type noticePayload struct {
	Message string `json:"message"`
}

type feedbackPayload struct {
	app.Feedback
	Result string `json:"result"`
}

type sharePayload struct {
	Text string `json:"text"`
}

type errorPayload struct {
	Message       string `json:"message"`
	Fatal         bool   `json:"fatal,omitempty"`
	StartDisabled bool   `json:"startDisabled,omitempty"`
}

// ServeWS upgrades the request and runs one device's game over the socket.
// Query parameters: device (optional, issued when missing) and scheme
// (the platform colour scheme, light or dark).
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("device")
	issued := false
	if deviceID == "" {
		deviceID = uuid.NewString()
		issued = true
	} else if _, err := uuid.Parse(deviceID); err != nil {
		http.Error(w, "invalid device id", http.StatusBadRequest)
		return
	}
	platformTheme := domain.Theme(r.URL.Query().Get("scheme"))
	if !platformTheme.Valid() {
		platformTheme = domain.ThemeLight
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	log := h.log.With(zap.String("device", deviceID))
	tr := h.service.Translator()
	store := h.stores(deviceID)
	themes := app.NewThemes(store, log)

	if issued {
		if !h.send(conn, log, outboundMessage[devicePayload]{Type: "device", Payload: devicePayload{ID: deviceID}}) {
			return
		}
	}
	if !h.send(conn, log, outboundMessage[themePayload]{Type: "theme", Payload: themePayload{Theme: themes.Current(ctx, platformTheme)}}) {
		return
	}

	game, err := h.service.Open(ctx, store)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, domain.ErrContentUnavailable) {
			msg = tr.T(i18n.MsgErrorUnavailable, nil)
		}
		h.send(conn, log, outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{
			Message:       msg,
			Fatal:         true,
			StartDisabled: true,
		}})
		return
	}

	if notice, ok := game.TakeNotice(); ok {
		if !h.send(conn, log, outboundMessage[noticePayload]{Type: "notice", Payload: noticePayload{Message: notice}}) {
			return
		}
	}
	if !h.send(conn, log, outboundMessage[app.Snapshot]{Type: "state", Payload: game.Snapshot()}) {
		return
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if !h.handle(ctx, conn, log, game, themes, platformTheme, inbound) {
			break
		}
	}
}

// handle applies one inbound message; false means the connection is gone.
func (h *WSHandler) handle(ctx context.Context, conn *websocket.Conn, log *zap.Logger, game *app.Game, themes *app.Themes, platformTheme domain.Theme, inbound inboundMessage) bool {
	tr := h.service.Translator()

	var cmd app.Command
	switch inbound.Type {
	case "start":
		cmd = app.StartCommand{}
	case "advance":
		cmd = app.AdvanceCommand{}
	case "retreat":
		cmd = app.RetreatCommand{}
	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return h.sendError(conn, log, "invalid answer payload")
		}
		cmd = app.AnswerCommand{Choice: payload.Choice}
	case "jump":
		var payload jumpPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return h.sendError(conn, log, "invalid jump payload")
		}
		cmd = app.JumpCommand{Index: payload.Index}
	case "swipe":
		var payload swipePayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return h.sendError(conn, log, "invalid swipe payload")
		}
		cmd = app.SwipeCommand{DeltaX: payload.DeltaX}
	case "theme":
		theme, err := themes.Toggle(ctx, platformTheme)
		if err != nil {
			log.Warn("persist theme failed", zap.Error(err))
		}
		return h.send(conn, log, outboundMessage[themePayload]{Type: "theme", Payload: themePayload{Theme: theme}})
	case "share":
		if !game.Session().IsFinal() {
			return h.sendError(conn, log, "quiz not finished")
		}
		return h.send(conn, log, outboundMessage[sharePayload]{Type: "share", Payload: sharePayload{Text: game.ShareText()}})
	default:
		return h.sendError(conn, log, "unsupported message type")
	}

	out := game.Dispatch(ctx, cmd)
	if out.Feedback != nil {
		result := tr.T(i18n.MsgResultIncorrect, nil)
		if out.Feedback.Correct {
			result = tr.T(i18n.MsgResultCorrect, nil)
		}
		if !h.send(conn, log, outboundMessage[feedbackPayload]{Type: "feedback", Payload: feedbackPayload{Feedback: *out.Feedback, Result: result}}) {
			return false
		}
	}
	return h.send(conn, log, outboundMessage[app.Snapshot]{Type: "state", Payload: game.Snapshot()})
}

func (h *WSHandler) sendError(conn *websocket.Conn, log *zap.Logger, msg string) bool {
	return h.send(conn, log, outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: msg}})
}

func (h *WSHandler) send(conn *websocket.Conn, log *zap.Logger, msg any) bool {
	if err := conn.WriteJSON(msg); err != nil {
		log.Debug("ws write error", zap.Error(err))
		return false
	}
	return true
}
