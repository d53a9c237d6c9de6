package fixture

import (
	"context"
	"testing"

	domaingames "github.com/preston-bernstein/metascore-lookup-service/internal/domain/games"
)

func TestFetchPageReturnsDeterministicPages(t *testing.T) {
	p := New()

	first, err := p.FetchPage(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.FetchPage(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) == 0 || len(second) == 0 {
		t.Fatalf("expected two non-empty pages, got %d and %d", len(first), len(second))
	}

	again, _ := p.FetchPage(context.Background(), 0)
	if again[0] != first[0] {
		t.Fatalf("expected deterministic pages")
	}
}

func TestFetchPageEndsListing(t *testing.T) {
	p := New()
	for _, page := range []int{2, 10, -1} {
		entries, err := p.FetchPage(context.Background(), page)
		if err != nil || len(entries) != 0 {
			t.Fatalf("expected empty page %d, got %d entries err %v", page, len(entries), err)
		}
	}
}

func TestFetchPageReturnsCopies(t *testing.T) {
	p := New()
	first, _ := p.FetchPage(context.Background(), 0)
	first[0].Name = "mutated"

	again, _ := p.FetchPage(context.Background(), 0)
	if again[0].Name == "mutated" {
		t.Fatalf("expected fixture pages to be isolated from callers")
	}
}

func TestFixtureEntriesBuildRecords(t *testing.T) {
	p := New()
	entries, _ := p.FetchPage(context.Background(), 0)
	rec, err := domaingames.NewRecord(entries[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ScoreDetail != domaingames.DetailPositive || rec.UserScoreDetail != domaingames.DetailPositive {
		t.Fatalf("unexpected details %s / %s", rec.ScoreDetail, rec.UserScoreDetail)
	}
	if rec.Score == nil || *rec.Score != 97 {
		t.Fatalf("expected score 97, got %v", rec.Score)
	}
}

func TestFetchPageHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().FetchPage(ctx, 0); err == nil {
		t.Fatal("expected context error")
	}
}
