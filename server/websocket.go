package server

import (
	"net/http"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// handleWebSocket streams status updates for one job as JSON frames. On
// connect the job's latest update is replayed so late subscribers see the
// current state. The stream closes normally after a terminal update
// ("completed" or "failed") or when the client disconnects.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // same-origin policy handled upstream
	})
	if err != nil {
		s.logger.Error("websocket accept failed", "job_id", jobID, "error", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream aborted")

	updates, cancel := s.hub.subscribe(jobID)
	defer cancel()

	// The client only listens; CloseRead surfaces its disconnect through
	// context cancellation.
	ctx := conn.CloseRead(r.Context())
	s.logger.Info("websocket connected", "job_id", jobID)

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if err := wsjson.Write(ctx, conn, update); err != nil {
				s.logger.Info("websocket write failed", "job_id", jobID, "error", err)
				return
			}
			if update.Status == "completed" || update.Status == "failed" {
				_ = conn.Close(websocket.StatusNormalClosure, "job finished")
				return
			}
		}
	}
}
