package scoreshandlers

import "net/http"

// Handlers defines the leaderboard HTTP endpoints.
type Handlers interface {
	// HandleGetScores serves GET /api/scores?mode=...
	HandleGetScores(w http.ResponseWriter, r *http.Request)

	// HandlePostScore serves POST /api/scores.
	HandlePostScore(w http.ResponseWriter, r *http.Request)

	// HandleQualify serves GET /api/scores/qualify?score=N.
	HandleQualify(w http.ResponseWriter, r *http.Request)

	// HandleInitSchema serves the admin GET /api/scores/init.
	HandleInitSchema(w http.ResponseWriter, r *http.Request)
}
