package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrResult   = "result"
)

// Lookup outcomes recorded under AttrResult.
const (
	LookupExact = "exact"
	LookupFuzzy = "fuzzy"
	LookupMiss  = "miss"
)
