package metacritic

import "time"

const (
	providerName       = "metacritic"
	defaultBaseURL     = "https://www.metacritic.com"
	defaultPlatform    = "switch"
	defaultHTTPTimeout = 15 * time.Second
	defaultUserAgent   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	listingPathFormat  = "/browse/games/release-date/available/%s/name"

	// Only the head of an error body is kept for logs.
	errorBodyLimit = 512
)

const (
	selectorProduct   = "li.product"
	selectorTitle     = ".product_title a"
	selectorScore     = ".metascore_w"
	selectorUserScore = ".textscore"
)
