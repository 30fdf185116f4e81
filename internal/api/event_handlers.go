package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/courselaunch/waitlist-server/internal/domain"
	"github.com/courselaunch/waitlist-server/internal/http/response"
)

// handleRecordEvent accepts an analytics event from the landing page.
// Recording is best-effort, so a valid event is acknowledged with 202
// before it reaches the log.
func (s *Server) handleRecordEvent(w http.ResponseWriter, r *http.Request) {
	var evt domain.Event
	if err := json.UnmarshalRead(r.Body, &evt); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	recorded, err := s.eventService.Record(evt)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Accepted(w, map[string]string{"id": recorded.ID}, s.logger)
}
