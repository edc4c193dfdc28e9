package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func buildCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "build FILE",
		Short: "Segment a statute into articles",
		Long: `Segment a statute document into article chunks and print each
article's identifier, source span and paragraph ids.

Example:
  statgest build privacy-act.html
  statgest build --convention english act.txt --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := a.builder().Build(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(corpus)
			}

			fmt.Fprintf(out, "%s: %d articles\n", corpus.Title, len(corpus.Chunks))
			for _, ch := range corpus.Chunks {
				fmt.Fprintf(out, "%s\t%s..%s\t[%s]\n", ch.ArticleID, ch.StartID, ch.EndID, strings.Join(ch.ParagraphIDs, " "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the corpus as JSON")
	return cmd
}
