package scoreshandlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	scoresservice "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/application"
	scoresdomain "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MsgSchemaReady is returned by a successful schema init.
const MsgSchemaReady = `Database initialized successfully. Table "high_scores" is ready.`

// ScoreHandlers implements the Handlers interface.
type ScoreHandlers struct {
	service scoresservice.Service
	admin   AdminAuth
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewScoreHandlers creates a new ScoreHandlers instance.
func NewScoreHandlers(
	service scoresservice.Service,
	admin AdminAuth,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &ScoreHandlers{
		service: service,
		admin:   admin,
		logger:  logger,
		tracer:  tracer,
	}
}

func (h *ScoreHandlers) HandleGetScores(w http.ResponseWriter, r *http.Request) {
	mode := scoresdomain.ParseMode(r.URL.Query().Get("mode"))

	ctx, span := h.tracer.Start(r.Context(), "ScoreHandlers.HandleGetScores",
		trace.WithAttributes(attribute.String("mode", mode.String())))
	defer span.End()

	view, err := h.service.GetLeaderboard(ctx, mode)
	if err != nil {
		h.writeError(w, r.WithContext(ctx), err, scoresdomain.MsgFetchFailed)
		return
	}

	if mode == scoresdomain.ModeDailyWinners {
		writeJSON(w, http.StatusOK, dailyWinnersResponse{
			Success:      true,
			DailyWinners: nonNil(view.DailyWinners),
		})
		return
	}
	writeJSON(w, http.StatusOK, scoresResponse{
		Success: true,
		Scores:  nonNil(view.Scores),
	})
}

func (h *ScoreHandlers) HandlePostScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ScoreHandlers.HandlePostScore")
	defer span.End()

	clientID := ClientIdentifier(r)
	rec, err := h.service.SubmitScore(ctx, scoresservice.SubmissionRequest{
		ClientID:       clientID,
		DeclaredLength: r.ContentLength,
		Body:           r.Body,
	})
	if err != nil {
		h.writeError(w, r.WithContext(ctx), err, scoresdomain.MsgSaveFailed)
		return
	}

	h.logger.InfoContext(ctx, "High score saved",
		attr.String("request_id", RequestIDFromContext(ctx)),
		attr.String("client_id", clientID),
		attr.Any("id", rec.ID),
	)
	writeJSON(w, http.StatusCreated, scoreResponse{Success: true, Score: rec})
}

func (h *ScoreHandlers) HandleQualify(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ScoreHandlers.HandleQualify")
	defer span.End()

	score, err := strconv.Atoi(r.URL.Query().Get("score"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: scoresdomain.MsgScoreOutOfRange})
		return
	}

	q, err := h.service.CheckQualification(ctx, score)
	if err != nil {
		h.writeError(w, r.WithContext(ctx), err, scoresdomain.MsgFetchFailed)
		return
	}
	writeJSON(w, http.StatusOK, qualifyResponse{Success: true, Qualifies: q.Qualifies, Rank: q.Rank})
}

func (h *ScoreHandlers) HandleInitSchema(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ScoreHandlers.HandleInitSchema")
	defer span.End()

	if !h.admin.Authorized(r) {
		h.writeError(w, r.WithContext(ctx), scoresdomain.NewUnauthorized(), scoresdomain.MsgUnauthorized)
		return
	}

	if err := h.service.EnsureSchema(ctx); err != nil {
		h.writeError(w, r.WithContext(ctx), err, scoresdomain.MsgInitFailed)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: MsgSchemaReady})
}
