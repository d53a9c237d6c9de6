package fixture

import (
	"context"

	domaingames "github.com/preston-bernstein/metascore-lookup-service/internal/domain/games"
)

const hrefBase = "https://www.metacritic.com/game/switch/"

// Provider serves a static two-page listing useful for local testing and bootstrapping.
type Provider struct {
	pages [][]domaingames.RawEntry
}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{pages: fixturePages()}
}

// FetchPage returns a copy of the requested fixture page; pages past the end are empty.
func (p *Provider) FetchPage(ctx context.Context, page int) ([]domaingames.RawEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page < 0 || page >= len(p.pages) {
		return []domaingames.RawEntry{}, nil
	}
	out := make([]domaingames.RawEntry, len(p.pages[page]))
	copy(out, p.pages[page])
	return out, nil
}

func fixturePages() [][]domaingames.RawEntry {
	return [][]domaingames.RawEntry{
		{
			entry("The Legend of Zelda: Breath of the Wild", "the-legend-of-zelda-breath-of-the-wild", "97", "positive", "8.7", "textscore_favorable"),
			entry("Super Mario Odyssey", "super-mario-odyssey", "97", "positive", "8.9", "textscore_favorable"),
			entry("Mario Kart 8 Deluxe", "mario-kart-8-deluxe", "92", "positive", "8.6", "textscore_favorable"),
			entry("DOOM Eternal: Nintendo Switch Edition", "doom-eternal", "80", "positive", "6.4", "textscore_mixed"),
		},
		{
			entry("Pokemon Sword", "pokemon-sword", "80", "positive", "4.5", "textscore_unfavorable"),
			entry("Balan Wonderworld", "balan-wonderworld", "41", "negative", "2.9", "textscore_unfavorable"),
			entry("Animal Crossing: New Horizons", "animal-crossing-new-horizons", "90", "positive", "5.8", "textscore_mixed"),
			entry("Untitled Goose Game", "untitled-goose-game", "tbd", "tbd", "tbd", "textscore_tbd"),
		},
	}
}

func entry(name, slug, score, scoreClass, user, userClass string) domaingames.RawEntry {
	return domaingames.RawEntry{
		Name:           name,
		Href:           hrefBase + slug,
		Score:          score,
		ScoreClass:     "metascore_w small game " + scoreClass,
		UserScore:      user,
		UserScoreClass: "data textscore " + userClass,
	}
}
