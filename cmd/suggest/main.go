// Command suggest runs the coding pipeline once, outside the server: it
// reads a clinical note from a file or stdin, calls the agent and prints the
// review table. Useful for prompt iteration and for inspecting failures.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"clinicode-api/internal/cli"
	"clinicode-api/internal/config"
	"clinicode-api/pkg/agent"
	"clinicode-api/pkg/suggest"
)

var (
	configFile = flag.String("f", "etc/clinicode.yaml", "the config file")
	noteFile   = flag.String("note", "", "file holding the clinical note; stdin when empty")
	verbose    = flag.Bool("v", false, "log the loaded configuration")
)

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configFile)
	if *verbose {
		cli.LogConfigSummary(cfg)
	}

	note, err := readNote(*noteFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read note: %v\n", err)
		os.Exit(1)
	}

	if cfg.Agent.Value == nil {
		fmt.Fprintln(os.Stderr, "agent config is required (Agent.File in the main config)")
		os.Exit(1)
	}
	client, err := agent.NewClient(cfg.Agent.Value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init agent client: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	suggestCfg := cfg.Suggest.Value
	if suggestCfg == nil {
		suggestCfg = suggest.DefaultConfig()
	}
	suggester, err := suggest.NewSuggester(suggestCfg, client)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init suggester: %v\n", err)
		os.Exit(1)
	}

	batch, err := suggester.Analyze(context.Background(), note)
	if err != nil {
		reportFailure(err)
		os.Exit(1)
	}

	printBatch(batch)
}

func readNote(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func reportFailure(err error) {
	switch {
	case errors.Is(err, suggest.ErrNoResponse):
		fmt.Fprintf(os.Stderr, "no response from agent: %v\n", err)
	case errors.Is(err, suggest.ErrExtractionFailed):
		fmt.Fprintf(os.Stderr, "no JSON span in agent response\n")
	case errors.Is(err, suggest.ErrMalformedPayload):
		fmt.Fprintf(os.Stderr, "malformed agent payload: %v\n", err)
	default:
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		return
	}
	if raw := suggest.RawOf(err); raw != "" {
		fmt.Fprintf(os.Stderr, "--- raw agent response ---\n%s\n", raw)
	}
}

func printBatch(batch suggest.Batch) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tEXTRACT\tCODE\tDESCRIPTION\tLINK")
	for i, rec := range batch {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i, rec.Extract, rec.Code, rec.Description, rec.URL)
	}
	_ = w.Flush()
}
