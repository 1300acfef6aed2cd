package scoresdomain

// Mode selects one of the leaderboard views.
type Mode int

const (
	ModeToday Mode = iota
	ModeAllTime
	ModeDailyWinners
)

var modeNames = map[Mode]string{
	ModeToday:        "today",
	ModeAllTime:      "all-time",
	ModeDailyWinners: "daily-winners",
}

// ParseMode maps a query token to a Mode. Anything unrecognized, including
// the empty string, is ModeToday.
func ParseMode(s string) Mode {
	for m, name := range modeNames {
		if name == s {
			return m
		}
	}
	return ModeToday
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return modeNames[ModeToday]
}
