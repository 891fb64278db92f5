// Copyright 2025 Halcyon Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	corpus "github.com/halcyonlabs/corpus"
	"github.com/halcyonlabs/corpus/ai"
	"github.com/halcyonlabs/corpus/core"
	"github.com/halcyonlabs/corpus/fetch"
	"github.com/halcyonlabs/corpus/ingestion"
	"github.com/halcyonlabs/corpus/search"
)

func main() {
	app := &cli.App{
		Name:  "corpus",
		Usage: "Build and query a document knowledge base from web pages and PDFs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "process",
				Usage:     "Ingest sources given as arguments (URLs or PDF paths)",
				ArgsUsage: "SOURCE [SOURCE...]",
				Action:    processCommand,
				Flags:     ingestFlags(),
			},
			{
				Name:      "process-urls",
				Usage:     "Ingest sources listed in a text file, one per line",
				ArgsUsage: "FILE",
				Action:    processURLsCommand,
				Flags:     ingestFlags(),
			},
			{
				Name:      "process-batch",
				Usage:     "Ingest sources listed in a JSON file",
				ArgsUsage: "FILE",
				Action:    processBatchCommand,
				Flags:     ingestFlags(),
			},
			{
				Name:      "query",
				Usage:     "Ask a question over the stored knowledge base",
				ArgsUsage: "QUESTION",
				Action:    queryCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:  "llm-model",
						Usage: "Model used to generate answers",
						Value: "gpt-4o-mini",
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of chunks retrieved as context",
						Value: 3,
					},
					&cli.IntFlag{
						Name:  "max-tokens",
						Usage: "Answer length cap in tokens",
						Value: 200,
					},
					&cli.BoolFlag{
						Name:  "show-sources",
						Usage: "Print the retrieved chunks after the answer",
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API key for the OpenAI-compatible service",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "Base URL of an OpenAI-compatible service (empty for the OpenAI default)",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "text-embedding-3-small",
		},
	}
}

func ingestFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.IntFlag{
			Name:  "chunk-size",
			Usage: "Chunk window size in characters",
			Value: 4000,
		},
		&cli.IntFlag{
			Name:  "chunk-overlap",
			Usage: "Characters shared by consecutive chunks",
			Value: 20,
		},
		&cli.IntFlag{
			Name:  "max-concurrent",
			Usage: "Maximum sources fetched in parallel",
			Value: 5,
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Total timeout per web fetch",
			Value: 60 * time.Second,
		},
		&cli.BoolFlag{
			Name:  "insecure",
			Usage: "Skip TLS certificate verification",
		},
		&cli.BoolFlag{
			Name:  "seed-fingerprints",
			Usage: "Skip sources whose content is already stored",
		},
	)
}

func openKnowledgeBase(c *cli.Context) (*corpus.KnowledgeBase, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithToken(c.String("api-key")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithLLMModel(c.String("llm-model")),
		ai.WithMaxTokens(c.Int("max-tokens")),
	)
	if !c.IsSet("llm-model") {
		// Ingestion commands don't declare the flag; fall back to the default.
		aiConfig.LLMModel = ai.DefaultConfig().LLMModel
	}
	if !c.IsSet("max-tokens") {
		aiConfig.MaxTokens = ai.DefaultConfig().MaxTokens
	}
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := []corpus.Option{corpus.WithAIConfig(aiConfig)}

	if c.IsSet("timeout") || c.Bool("insecure") {
		var fetchOpts []fetch.Option
		if c.IsSet("timeout") {
			fetchOpts = append(fetchOpts, fetch.WithTimeout(c.Duration("timeout")))
		}
		if c.Bool("insecure") {
			fetchOpts = append(fetchOpts, fetch.WithInsecureTLS(true))
		}
		opts = append(opts, corpus.WithFetchOptions(fetchOpts...))
	}

	return corpus.Open(c.String("db"), opts...)
}

func ingestOptions(c *cli.Context) []ingestion.Option {
	return []ingestion.Option{
		ingestion.WithChunking(core.ChunkingConfig{
			Size:    c.Int("chunk-size"),
			Overlap: c.Int("chunk-overlap"),
		}),
		ingestion.WithMaxConcurrent(c.Int("max-concurrent")),
		ingestion.WithSeedFromStore(c.Bool("seed-fingerprints")),
	}
}

func processCommand(c *cli.Context) error {
	identifiers := c.Args().Slice()
	if len(identifiers) == 0 {
		return fmt.Errorf("at least one source is required")
	}
	return runIngest(c, identifiers)
}

func processURLsCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("source list file is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read source list: %w", err)
	}

	identifiers := parseLineIdentifiers(data)
	if len(identifiers) == 0 {
		return fmt.Errorf("no sources found in %s", path)
	}
	return runIngest(c, identifiers)
}

// parseLineIdentifiers extracts one identifier per line, skipping blanks and
// # comments.
func parseLineIdentifiers(data []byte) []string {
	var identifiers []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		identifiers = append(identifiers, line)
	}
	return identifiers
}

// batchFile is the JSON shape accepted by process-batch: either a bare array
// of identifiers or an object with a "sources" array.
type batchFile struct {
	Sources []string `json:"sources"`
}

func processBatchCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("batch file is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read batch file: %w", err)
	}

	identifiers, err := parseBatchIdentifiers(data)
	if err != nil {
		return err
	}
	if len(identifiers) == 0 {
		return fmt.Errorf("no sources found in %s", path)
	}
	return runIngest(c, identifiers)
}

// parseBatchIdentifiers accepts either a bare JSON array of identifiers or
// an object with a "sources" array.
func parseBatchIdentifiers(data []byte) ([]string, error) {
	var identifiers []string
	if err := json.Unmarshal(data, &identifiers); err == nil {
		return identifiers, nil
	}
	var batch batchFile
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}
	return batch.Sources, nil
}

func runIngest(c *cli.Context, identifiers []string) error {
	kb, err := openKnowledgeBase(c)
	if err != nil {
		return err
	}
	defer kb.Close()

	summary, err := kb.Ingest(context.Background(), identifiers, ingestOptions(c)...)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	printSummary(summary)
	return nil
}

func printSummary(summary *ingestion.Summary) {
	fmt.Printf("Run %s finished in %s\n", summary.RunID, summary.Duration.Round(time.Millisecond))
	fmt.Printf("  sources:       %d\n", summary.Sources)
	fmt.Printf("  accepted:      %d\n", summary.Accepted)
	fmt.Printf("  chunks stored: %d\n", summary.ChunksStored)

	if len(summary.Failures) == 0 {
		return
	}

	byReason := map[core.FailureReason]int{}
	for _, f := range summary.Failures {
		byReason[f.Reason]++
	}
	fmt.Printf("  failed:        %d\n", len(summary.Failures))
	for reason, count := range byReason {
		fmt.Printf("    %-17s %d\n", reason, count)
	}
	for _, f := range summary.Failures {
		fmt.Printf("  - [%s] %s: %v\n", f.Reason, f.Source.Identifier, f.Err)
	}
}

func queryCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	kb, err := openKnowledgeBase(c)
	if err != nil {
		return err
	}
	defer kb.Close()

	answer, err := kb.Ask(context.Background(), question, search.WithTopK(c.Int("top-k")))
	if err != nil {
		if err == search.ErrNoResults {
			fmt.Println("No relevant content found in the knowledge base.")
			return nil
		}
		return fmt.Errorf("query failed: %w", err)
	}

	fmt.Println(answer.Text)

	if c.Bool("show-sources") {
		fmt.Println("\nSources:")
		for _, r := range answer.Sources {
			title := r.Chunk.Meta.Title
			if title == "" {
				title = r.Chunk.Meta.SourceID
			}
			fmt.Printf("  [%.3f] %s (%s, chunk %d)\n", r.Score, title, r.Chunk.Meta.SourceID, r.Chunk.Index)
		}
	}
	return nil
}

func setup(c *cli.Context) error {
	// Missing .env files are fine; environment variables still apply.
	_ = godotenv.Load()

	levelStr := strings.ToLower(c.String("log-level"))
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
