package scoresdb

import (
	"time"

	scoresdomain "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/domain"
	"github.com/uptrace/bun"
)

// HighScore is one stored submission.
type HighScore struct {
	bun.BaseModel `bun:"table:high_scores,alias:hs"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Name      string    `bun:"name,notnull,type:varchar(10)"`
	Score     int       `bun:"score,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (h HighScore) toDomain() scoresdomain.ScoreRecord {
	return scoresdomain.ScoreRecord{
		ID:        h.ID,
		Name:      h.Name,
		Score:     h.Score,
		CreatedAt: h.CreatedAt.UTC(),
	}
}

// dailyWinnerRow is the projection of the daily winners query.
type dailyWinnerRow struct {
	ID        int64     `bun:"id"`
	Name      string    `bun:"name"`
	Score     int       `bun:"score"`
	CreatedAt time.Time `bun:"created_at"`
	GameDate  string    `bun:"game_date"`
}

func toRecords(rows []HighScore) []scoresdomain.ScoreRecord {
	out := make([]scoresdomain.ScoreRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out
}
