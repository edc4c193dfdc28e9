package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/statgest/internal/embed"
	"github.com/dgallion1/statgest/internal/pipeline"
)

type queryResult struct {
	Query string         `json:"query"`
	Hits  []pipeline.Hit `json:"hits"`
}

func searchCmd(a *app) *cobra.Command {
	var (
		topK   int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "search FILE QUERY...",
		Short: "Find the articles most similar to each query",
		Long: `Build the article corpus for FILE, embed every article, and print
the top-k matches for each query with their references and scores.

Example:
  statgest search privacy-act.html "허위 신고 과태료"
  statgest search --provider tei --embed-url http://localhost:8080 law.html "과태료" -k 5`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			start := time.Now()

			corpus, err := a.builder().Build(ctx, args[0])
			if err != nil {
				return err
			}

			e, release, err := a.newEmbedder(ctx)
			if err != nil {
				return err
			}
			defer release()

			stats := embed.NewStats(time.Hour)
			s, err := pipeline.NewSearcher(ctx, corpus, e, pipeline.SearchOptions{
				BatchSize:   a.cfg.EmbedBatchSize,
				Parallelism: a.cfg.EmbedParallelism,
				CacheSize:   a.cfg.QueryCacheSize,
				Stats:       stats,
				Log:         a.log,
			})
			if err != nil {
				return err
			}

			k := a.cfg.SearchTopK
			if cmd.Flags().Changed("top-k") {
				k = topK
			}

			a.log.Info("searching", "articles", s.Len(), "queries", len(args)-1, "top_k", k)

			var results []queryResult
			for _, q := range args[1:] {
				hits, err := s.Search(ctx, q, k)
				if err != nil {
					return err
				}
				results = append(results, queryResult{Query: q, Hits: hits})
			}
			a.logStats(stats, time.Since(start))

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			for _, r := range results {
				fmt.Fprintf(out, "query: %s\n", r.Query)
				for _, h := range r.Hits {
					fmt.Fprintf(out, "  #%d %s (score %.4f)\n", h.Rank, h.Chunk.ArticleID, h.Score)
					fmt.Fprintf(out, "     %s\n", strings.ReplaceAll(h.Chunk.Content, "\n", "\n     "))
					if len(h.Chunk.RelationParts) > 0 {
						fmt.Fprintf(out, "     refs: %s\n", strings.Join(h.Chunk.RelationParts, ", "))
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&topK, "top-k", "k", 3, "Number of results per query")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}
