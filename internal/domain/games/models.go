package games

import "errors"

// Detail classifies a critic or user score.
type Detail string

const (
	DetailPositive Detail = "POSITIVE"
	DetailMixed    Detail = "MIXED"
	DetailNegative Detail = "NEGATIVE"
	DetailUnknown  Detail = "UNKNOWN"
)

// ErrEmptyName is returned when a raw entry carries no usable display name.
var ErrEmptyName = errors.New("games: empty display name")

// RawEntry is one unvalidated row scraped from an upstream catalog page.
type RawEntry struct {
	Name           string
	Href           string
	Score          string
	ScoreClass     string
	UserScore      string
	UserScoreClass string
}

// Record is the canonical game shape exposed by the service.
// Records are shared across goroutines once published and must be treated as read-only.
type Record struct {
	Name            string   `json:"name"`
	Href            string   `json:"href"`
	Score           *int     `json:"score,omitempty"`
	ScoreDetail     Detail   `json:"scoreDetail"`
	UserScore       *float64 `json:"userScore,omitempty"`
	UserScoreDetail Detail   `json:"userScoreDetail"`
	Stem            string   `json:"stem"`
}

// HasScore reports whether the upstream supplied a parsable critic score.
func (r Record) HasScore() bool {
	return r.Score != nil
}

// HasUserScore reports whether the upstream supplied a parsable user score.
func (r Record) HasUserScore() bool {
	return r.UserScore != nil
}
