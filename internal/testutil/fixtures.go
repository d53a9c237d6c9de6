package testutil

import domaingames "github.com/preston-bernstein/metascore-lookup-service/internal/domain/games"

// SampleEntry returns a raw listing entry with a positive critic score and favorable user score.
func SampleEntry(name string, score string) domaingames.RawEntry {
	return domaingames.RawEntry{
		Name:           name,
		Href:           "https://www.metacritic.com/game/switch/sample",
		Score:          score,
		ScoreClass:     "metascore_w small game positive",
		UserScore:      "8.5",
		UserScoreClass: "data textscore textscore_favorable",
	}
}

// SampleEntries returns a small catalog including a subtitled title.
func SampleEntries() []domaingames.RawEntry {
	return []domaingames.RawEntry{
		SampleEntry("Zelda: Breath of the Wild", "97"),
		SampleEntry("Super Mario Odyssey", "97"),
		SampleEntry("Celeste", "92"),
	}
}
