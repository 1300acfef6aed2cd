package scoresdomain

import (
	"encoding/json"
	"math"
	"strings"
)

// NormalizeName trims surrounding whitespace and keeps the first
// MaxNameLength characters. Case is preserved.
func NormalizeName(raw string) (string, error) {
	if raw == "" {
		return "", badRequest(MsgNameRequired)
	}
	name := strings.TrimSpace(raw)
	if r := []rune(name); len(r) > MaxNameLength {
		name = string(r[:MaxNameLength])
	}
	if name == "" {
		return "", badRequest(MsgNameEmpty)
	}
	return name, nil
}

// ValidateScore checks the score bounds.
func ValidateScore(score int) error {
	if score < 0 || score > MaxScore {
		return badRequest(MsgScoreOutOfRange)
	}
	return nil
}

// Submission is a decoded, validated POST body.
type Submission struct {
	Name  string
	Score int
}

// ParseSubmission decodes a raw body into a Submission. The body must be a
// JSON object with a string "name" and an integral numeric "score"; numbers
// such as 12.0 count as integers, 12.5 and "12" do not.
func ParseSubmission(body []byte) (Submission, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return Submission{}, NewInvalidJSON()
	}

	var name string
	rawName, ok := fields["name"]
	if !ok || json.Unmarshal(rawName, &name) != nil {
		return Submission{}, badRequest(MsgNameRequired)
	}

	score, err := parseIntegralScore(fields["score"])
	if err != nil {
		return Submission{}, err
	}
	if err := ValidateScore(score); err != nil {
		return Submission{}, err
	}

	name, err = NormalizeName(name)
	if err != nil {
		return Submission{}, err
	}

	return Submission{Name: name, Score: score}, nil
}

func parseIntegralScore(raw json.RawMessage) (int, error) {
	var n json.Number
	if len(raw) == 0 || raw[0] == '"' || json.Unmarshal(raw, &n) != nil {
		return 0, badRequest(MsgScoreOutOfRange)
	}
	if i, err := n.Int64(); err == nil {
		if i < math.MinInt32 || i > math.MaxInt32 {
			return 0, badRequest(MsgScoreOutOfRange)
		}
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, badRequest(MsgScoreOutOfRange)
	}
	return int(f), nil
}
