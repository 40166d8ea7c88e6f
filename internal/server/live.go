package server

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/jonathan/markup-validator/internal/preview"
	"github.com/jonathan/markup-validator/internal/server/middleware"
	"github.com/jonathan/markup-validator/internal/types"
	"go.uber.org/zap"
)

// LiveResponse is sent for every markup frame received on /live.
type LiveResponse struct {
	Report  *types.Report    `json:"report,omitempty"`
	Preview *preview.Preview `json:"preview,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// handleLive upgrades to a websocket and answers each text frame with the
// report and preview for the markup it carries.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		s.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	logger := s.logger.With(zap.String("request_id", middleware.RequestID(r.Context())))
	logger.Debug("live session opened")

	conn.SetReadLimit(s.maxBodyBytes)
	stop := context.AfterFunc(r.Context(), func() { _ = conn.Close() })
	defer stop()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("live session ended", zap.Error(err))
			}
			return
		}

		if err := conn.WriteJSON(s.liveResponse(msgType, data)); err != nil {
			logger.Debug("live write failed", zap.Error(err))
			return
		}
	}
}

func (s *Server) liveResponse(msgType int, data []byte) LiveResponse {
	if msgType != websocket.TextMessage {
		return LiveResponse{Error: "expected a text frame containing markup"}
	}

	markup := string(data)
	resp := LiveResponse{Report: s.validator.Validate(markup)}
	pv, err := preview.Build(markup)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Preview = pv
	return resp
}
