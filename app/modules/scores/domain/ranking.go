package scoresdomain

import (
	"sort"
)

type nameScore struct {
	name  string
	score int
}

// earlier reports whether a was stored before b. Equal timestamps fall back
// to the store-assigned id.
func earlier(a, b ScoreRecord) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// outranks orders by score descending, then by submission time ascending.
func outranks(a, b ScoreRecord) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return earlier(a, b)
}

// Dedupe collapses records sharing an identical (name, score) pair to the
// earliest one. Name comparison is exact, so "ana" and "ANA" stay distinct.
func Dedupe(records []ScoreRecord) []ScoreRecord {
	first := make(map[nameScore]int, len(records))
	out := make([]ScoreRecord, 0, len(records))
	for _, r := range records {
		k := nameScore{r.Name, r.Score}
		if i, seen := first[k]; seen {
			if earlier(r, out[i]) {
				out[i] = r
			}
			continue
		}
		first[k] = len(out)
		out = append(out, r)
	}
	return out
}

// SortByRank sorts records in leaderboard order in place.
func SortByRank(records []ScoreRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return outranks(records[i], records[j])
	})
}

// RankLeaderboard produces a today or all-time view: deduplicated, ordered and
// truncated to LeaderboardSize. The input is not modified.
func RankLeaderboard(records []ScoreRecord) []ScoreRecord {
	board := Dedupe(records)
	SortByRank(board)
	if len(board) > LeaderboardSize {
		board = board[:LeaderboardSize]
	}
	return board
}

// DailyWinners selects, for each UTC calendar date, the highest score of that
// date with the earliest submission breaking ties. Winners are returned most
// recent date first, at most DailyWinnersLimit of them.
func DailyWinners(records []ScoreRecord) []DailyWinner {
	return DailyWinnersN(records, DailyWinnersLimit)
}

// DailyWinnersN is DailyWinners with an explicit cap; limit <= 0 means none.
func DailyWinnersN(records []ScoreRecord, limit int) []DailyWinner {
	best := make(map[string]ScoreRecord)
	for _, r := range records {
		date := UTCDate(r.CreatedAt)
		if cur, ok := best[date]; !ok || outranks(r, cur) {
			best[date] = r
		}
	}

	winners := make([]DailyWinner, 0, len(best))
	for date, r := range best {
		winners = append(winners, DailyWinner{ScoreRecord: r, GameDate: date})
	}
	// GameDateLayout sorts lexically in date order.
	sort.Slice(winners, func(i, j int) bool {
		return winners[i].GameDate > winners[j].GameDate
	})

	if limit > 0 && len(winners) > limit {
		winners = winners[:limit]
	}
	return winners
}

// Qualification tells a player whether a finished game earns a place on
// today's leaderboard and, if so, where.
type Qualification struct {
	Qualifies bool `json:"qualifies"`
	Rank      int  `json:"rank,omitempty"`
}

// Qualify checks score against a ranked board (as returned by
// RankLeaderboard). A score qualifies while the board has free rows or when it
// strictly beats the last row. Rank is one plus the number of rows with a
// strictly greater score, so a tie shares the better rank.
func Qualify(board []ScoreRecord, score int) Qualification {
	if len(board) >= LeaderboardSize && score <= board[len(board)-1].Score {
		return Qualification{}
	}

	rank := 1
	for _, r := range board {
		if r.Score > score {
			rank++
		}
	}
	return Qualification{Qualifies: true, Rank: rank}
}
