package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/omniql-engine/matchql/internal/cache"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <query.json>",
		Short: "Structurally validate a find-filter query document",
		Long: `Validate reads a JSON query document and checks it against this
engine's structural contract: combinators take lists, $in/$nin/$all take
lists, $mod takes a 2-number list, $size takes a number, and so on.

Exit code 0 indicates a structurally valid query, non-zero indicates a
structural error.`,
		Args:    cobra.ExactArgs(1),
		Example: "  matchql validate query.json",
		RunE:    runValidate,
	}
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	filename := args[0]
	printVerbose(cmd, "Validating query: %s\n", filename)

	raw, err := readJSONFile(filename)
	if err != nil {
		return fmt.Errorf("read query: %w", err)
	}

	c, err := openCache()
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := cache.Key(raw)
	if entry, err := c.Get(ctx, key); err == nil {
		printVerbose(cmd, "cache hit for %s\n", key)
		return reportValidation(cmd, filename, entry)
	}

	verr := validateRaw(raw)
	entry := cache.Entry{Valid: verr == nil}
	if verr != nil {
		entry.Op, entry.Path, entry.Message = structuralFields(verr)
	}
	_ = c.Set(ctx, key, entry, 0)

	return reportValidation(cmd, filename, entry)
}

func reportValidation(cmd *cobra.Command, filename string, entry cache.Entry) error {
	if !entry.Valid {
		exitWithError(cmd, fmt.Errorf("%s: %s", entry.Op, entry.Message))
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Query is structurally valid: %s\n", filename)
	return nil
}

func openCache() (cache.Cache, error) {
	cfg := cache.DefaultConfig()
	if cacheURL != "" {
		cfg.Type = "redis"
		cfg.URL = cacheURL
	}
	return cache.New(cfg)
}

func readJSONFile(filename string) (any, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return raw, nil
}
