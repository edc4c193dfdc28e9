package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func refsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refs FILE",
		Short: "List the references each article makes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := a.builder().Build(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, ch := range corpus.Chunks {
				refs := "-"
				if len(ch.RelationParts) > 0 {
					refs = strings.Join(ch.RelationParts, ", ")
				}
				fmt.Fprintf(out, "%s -> %s\n", ch.ArticleID, refs)
			}
			return nil
		},
	}
}
