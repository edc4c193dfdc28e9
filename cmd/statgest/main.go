package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/statgest/internal/chunker"
	"github.com/dgallion1/statgest/internal/config"
	"github.com/dgallion1/statgest/internal/embed"
	"github.com/dgallion1/statgest/internal/parser"
	"github.com/dgallion1/statgest/internal/pipeline"
)

var version = "0.1.0"

// app holds state shared by subcommands once flags and environment are read.
type app struct {
	cfg     config.Config
	log     *slog.Logger
	conv    chunker.Convention
	envFile string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		convention string
		selector   string
		provider   string
		embedURL   string
		model      string
		dimension  int
		batchSize  int
		logLevel   string
	)

	root := &cobra.Command{
		Use:   "statgest",
		Short: "Segment statutes into articles and search them",
		Long: `statgest splits a statute document into article chunks, extracts
the cross-references each article makes, and answers similarity queries
over the articles with an embedding index.

Supported formats: ` + strings.Join(parser.SupportedExtensions, " "),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(a.envFile); err != nil {
				return err
			}
			a.cfg = config.Load()

			flags := cmd.Flags()
			if flags.Changed("convention") {
				a.cfg.Convention = convention
			}
			if flags.Changed("selector") {
				a.cfg.NodeSelector = selector
			}
			if flags.Changed("provider") {
				a.cfg.EmbedProvider = provider
			}
			if flags.Changed("embed-url") {
				a.cfg.EmbedURL = embedURL
			}
			if flags.Changed("model") {
				a.cfg.EmbedModel = model
			}
			if flags.Changed("dimension") {
				a.cfg.EmbedDimension = dimension
			}
			if flags.Changed("batch-size") && batchSize > 0 {
				a.cfg.EmbedBatchSize = batchSize
			}
			if flags.Changed("log-level") {
				if err := a.cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
					return fmt.Errorf("invalid --log-level: %w", err)
				}
			}
			if err := a.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			conv, err := chunker.ConventionByName(a.cfg.Convention)
			if err != nil {
				return err
			}
			a.conv = conv
			a.log = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: a.cfg.LogLevel}))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.envFile, "env-file", ".env", "Dotenv file to load before reading the environment")
	pf.StringVar(&convention, "convention", "", "Article numbering convention: korean or english")
	pf.StringVar(&selector, "selector", "", "CSS selector for paragraph nodes in HTML documents")
	pf.StringVar(&provider, "provider", "", "Embedding provider: hash, tei or gemini")
	pf.StringVar(&embedURL, "embed-url", "", "Base URL of the text-embeddings-inference server")
	pf.StringVar(&model, "model", "", "Embedding model name")
	pf.IntVar(&dimension, "dimension", 0, "Embedding dimension (0 = provider default)")
	pf.IntVar(&batchSize, "batch-size", 0, "Texts per embedding request")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(buildCmd(a))
	root.AddCommand(searchCmd(a))
	root.AddCommand(refsCmd(a))
	return root
}

func (a *app) builder() *pipeline.Builder {
	return pipeline.NewBuilder(a.conv, parser.Options{
		NodeSelector:         a.cfg.NodeSelector,
		PDFFallbackPdftotext: a.cfg.PDFFallbackPdftotext,
	}, a.log)
}

// newEmbedder returns the configured backend and a function releasing it.
func (a *app) newEmbedder(ctx context.Context) (embed.Embedder, func(), error) {
	switch a.cfg.EmbedProvider {
	case "hash":
		return embed.NewHashEmbedder(a.cfg.EmbedDimension), func() {}, nil
	case "tei":
		e := embed.NewTEIEmbedder(a.cfg.EmbedURL, a.cfg.EmbedModel, a.cfg.EmbedDimension, a.cfg.EmbedTimeout)
		return e, e.Close, nil
	case "gemini":
		e, err := embed.NewGeminiEmbedder(ctx, a.cfg.GeminiAPIKey, a.cfg.EmbedModel, a.cfg.EmbedDimension)
		if err != nil {
			return nil, nil, err
		}
		return e, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown embedding provider %q", a.cfg.EmbedProvider)
	}
}

func (a *app) logStats(stats *embed.Stats, elapsed time.Duration) {
	s := stats.Snapshot()
	a.log.Info("embedding stats",
		"calls", s.Calls,
		"failures", s.Failures,
		"texts", s.Texts,
		"avg_ms", s.AvgMs,
		"p50_ms", s.P50Ms,
		"p95_ms", s.P95Ms,
		"elapsed_ms", elapsed.Milliseconds(),
	)
}
