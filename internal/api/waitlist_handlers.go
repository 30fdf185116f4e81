package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/courselaunch/waitlist-server/internal/domain"
	"github.com/courselaunch/waitlist-server/internal/http/response"
)

// handleSubmit accepts a new interest submission.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var sub domain.Submission
	if err := json.UnmarshalRead(r.Body, &sub); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	created, err := s.waitlistService.Submit(ctx, sub)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, created, s.logger)
}

// handleCount returns the current signup count.
func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	count, err := s.waitlistService.Count(r.Context())
	if err != nil {
		s.logger.Error("Failed to count submissions", "error", err)
		response.InternalError(w, "Failed to retrieve signup count", s.logger)
		return
	}

	response.Success(w, map[string]int64{"count": count}, s.logger)
}
