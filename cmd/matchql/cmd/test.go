package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/omniql-engine/matchql"
)

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test <query.json> <documents.ndjson>",
		Short: "Test a find-filter query against one document per line",
		Long: `Test compiles the query document in the first file and evaluates it
against each JSON document on its own line of the second file (or stdin,
when the second argument is "-"). Matching line numbers are printed to
stdout; the command's own exit code is always 0 unless a file could not
be read or the query file is not valid JSON.`,
		Args:    cobra.ExactArgs(2),
		Example: "  matchql test query.json documents.ndjson",
		RunE:    runTest,
	}
	return cmd
}

func runTest(cmd *cobra.Command, args []string) error {
	queryFile, docsFile := args[0], args[1]

	raw, err := readJSONFile(queryFile)
	if err != nil {
		return fmt.Errorf("read query: %w", err)
	}
	predicate := matchql.New(raw)

	r, closeFn, err := openDocs(docsFile)
	if err != nil {
		return fmt.Errorf("open documents: %w", err)
	}
	defer closeFn()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	matched := 0
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "line %d: invalid JSON: %v\n", line, err)
			continue
		}
		if predicate.Test(doc) {
			matched++
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan documents: %w", err)
	}

	printVerbose(cmd, "%d of %d documents matched\n", matched, line)
	return nil
}

func openDocs(filename string) (io.Reader, func() error, error) {
	if filename == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
