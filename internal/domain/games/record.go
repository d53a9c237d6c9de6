package games

import (
	"math"
	"strconv"
	"strings"
)

var (
	scoreDetailKeywords = []detailKeyword{
		{"positive", DetailPositive},
		{"mixed", DetailMixed},
		{"negative", DetailNegative},
	}
	userScoreDetailKeywords = []detailKeyword{
		{"textscore_favorable", DetailPositive},
		{"textscore_mixed", DetailMixed},
		{"textscore_unfavorable", DetailNegative},
	}
)

type detailKeyword struct {
	keyword string
	detail  Detail
}

// NewRecord validates a raw entry and derives the typed fields and stem.
// Unparsable scores are left absent; only an empty name is rejected.
func NewRecord(raw RawEntry) (Record, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return Record{}, ErrEmptyName
	}
	return Record{
		Name:            name,
		Href:            strings.TrimSpace(raw.Href),
		Score:           parseScore(raw.Score),
		ScoreDetail:     ParseScoreDetail(raw.ScoreClass),
		UserScore:       parseUserScore(raw.UserScore),
		UserScoreDetail: ParseUserScoreDetail(raw.UserScoreClass),
		Stem:            Stem(name),
	}, nil
}

// ParseScoreDetail maps a raw critic classification label to a Detail.
func ParseScoreDetail(label string) Detail {
	return matchDetail(label, scoreDetailKeywords)
}

// ParseUserScoreDetail maps a raw user-score classification label to a Detail.
func ParseUserScoreDetail(label string) Detail {
	return matchDetail(label, userScoreDetailKeywords)
}

func matchDetail(label string, keywords []detailKeyword) Detail {
	label = strings.ToLower(label)
	for _, kw := range keywords {
		if strings.Contains(label, kw.keyword) {
			return kw.detail
		}
	}
	return DetailUnknown
}

func parseScore(raw string) *int {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return nil
	}
	score := int(v)
	return &score
}

func parseUserScore(raw string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
