package scoreshandlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	scoresdomain "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/domain"
)

type scoresResponse struct {
	Success bool                       `json:"success"`
	Scores  []scoresdomain.ScoreRecord `json:"scores"`
}

type dailyWinnersResponse struct {
	Success      bool                       `json:"success"`
	DailyWinners []scoresdomain.DailyWinner `json:"dailyWinners"`
}

type scoreResponse struct {
	Success bool                      `json:"success"`
	Score   *scoresdomain.ScoreRecord `json:"score"`
}

type qualifyResponse struct {
	Success   bool `json:"success"`
	Qualifies bool `json:"qualifies"`
	Rank      int  `json:"rank,omitempty"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// statusFor maps the error taxonomy onto HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, scoresdomain.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, scoresdomain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, scoresdomain.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, scoresdomain.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func (h *ScoreHandlers) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	ctx := r.Context()
	status := statusFor(err)
	msg := scoresdomain.MessageOf(err, fallback)

	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "Request failed",
			attr.String("request_id", RequestIDFromContext(ctx)),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
	} else {
		h.logger.WarnContext(ctx, "Request rejected",
			attr.String("request_id", RequestIDFromContext(ctx)),
			attr.String("path", r.URL.Path),
			attr.Int("status", status),
			attr.String("reason", msg),
		)
	}

	var se *scoresdomain.SubmissionError
	if status == http.StatusTooManyRequests && errors.As(err, &se) && se.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(se.RetryAfter.Seconds()))))
	}
	writeJSON(w, status, errorResponse{Error: msg})
}
