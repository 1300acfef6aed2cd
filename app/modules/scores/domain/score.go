package scoresdomain

import "time"

const (
	// MaxScore bounds a single 30-second game.
	MaxScore = 1000
	// MaxNameLength is measured in characters after trimming.
	MaxNameLength = 10
	// MaxBodyBytes is the largest accepted submission body.
	MaxBodyBytes = 1024
	// LeaderboardSize is the number of rows in the today and all-time views.
	LeaderboardSize = 10
	// DailyWinnersLimit is the number of most recent dates in the daily-winners view.
	DailyWinnersLimit = 30
)

// GameDateLayout formats the UTC calendar date of a daily winner.
const GameDateLayout = "2006-01-02"

// ScoreRecord is an accepted submission. Records are immutable once stored.
type ScoreRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// DailyWinner is the top record of one UTC calendar date.
type DailyWinner struct {
	ScoreRecord
	GameDate string `json:"game_date"`
}

// UTCDate returns the UTC calendar date of t in GameDateLayout.
func UTCDate(t time.Time) string {
	return t.UTC().Format(GameDateLayout)
}

// DayBounds returns the half-open UTC interval [start, end) of the calendar
// date containing t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
