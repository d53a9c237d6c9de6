package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/metascore-lookup-service/internal/config"
	domaingames "github.com/preston-bernstein/metascore-lookup-service/internal/domain/games"
	"github.com/preston-bernstein/metascore-lookup-service/internal/server"
)

var errNoMatch = errors.New("no matching game")

type lookupOutput struct {
	Query      string             `json:"query"`
	Match      string             `json:"match"`
	Similarity float64            `json:"similarity"`
	Record     domaingames.Record `json:"record"`
}

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <name...>",
		Short: "Refresh the catalog once and print the best match for a game name",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runLookup,
	}
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	cfg.Metrics.Enabled = false
	cfg.AdminToken = ""
	logger := newLogger(cfg, cmd.ErrOrStderr())

	srv := server.New(cfg, logger)
	res := srv.Refresh(cmd.Context())
	if res.Records == 0 && res.Error != "" {
		return fmt.Errorf("refresh catalog: %s", res.Error)
	}

	query := strings.Join(args, " ")
	match, ok := srv.Lookup(query)
	if !ok {
		return fmt.Errorf("%w: %q", errNoMatch, query)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(lookupOutput{
		Query:      query,
		Match:      string(match.Kind),
		Similarity: match.Similarity,
		Record:     match.Record,
	})
}
