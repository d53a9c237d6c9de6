package metacritic

import (
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	domaingames "github.com/preston-bernstein/metascore-lookup-service/internal/domain/games"
)

// parsePage extracts one RawEntry per product on a listing page. Products
// without a title link are skipped; every other field is passed through raw
// so record construction decides what is usable.
func parsePage(r io.Reader, base *url.URL) ([]domaingames.RawEntry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	entries := make([]domaingames.RawEntry, 0)
	doc.Find(selectorProduct).Each(func(_ int, s *goquery.Selection) {
		title := s.Find(selectorTitle).First()
		if title.Length() == 0 {
			return
		}
		href, _ := title.Attr("href")

		score := s.Find(selectorScore).First()
		user := s.Find(selectorUserScore).First()

		entries = append(entries, domaingames.RawEntry{
			Name:           normSpace(title.Text()),
			Href:           resolveHref(base, href),
			Score:          strings.TrimSpace(score.Text()),
			ScoreClass:     attr(score, "class"),
			UserScore:      strings.TrimSpace(user.Text()),
			UserScoreClass: attr(user, "class"),
		})
	})
	return entries, nil
}

func attr(s *goquery.Selection, name string) string {
	v, _ := s.Attr(name)
	return strings.TrimSpace(v)
}

func normSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
