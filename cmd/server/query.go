// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package main

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/bookrec/internal/logging"
	"github.com/tomtom215/bookrec/internal/recommend"
	"github.com/tomtom215/bookrec/internal/recommend/algorithms"
)

// similarResult is the output of the similar command.
type similarResult struct {
	Title    string   `json:"title"`
	UserID   int      `json:"user_id"`
	Fallback bool     `json:"fallback"`
	Titles   []string `json:"titles"`
}

// authorResult is the output of the author command.
type authorResult struct {
	Author string                 `json:"author"`
	UserID int                    `json:"user_id"`
	Picks  []recommend.AuthorPick `json:"picks"`
}

func newTopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Print the best rated titles with enough ratings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			minSupport, _ := cmd.Flags().GetInt("min-support")
			count, _ := cmd.Flags().GetInt("count")

			return withEngine(cmd, func(e *recommend.Engine) any {
				top := e.GetTopBooks(cmd.Context(), minSupport, count)
				if top == nil {
					top = []algorithms.TopBook{}
				}
				return top
			})
		},
	}
	cmd.Flags().Int("min-support", -1, "ratings a title must exceed (-1 = configured value)")
	cmd.Flags().Int("count", 0, "number of titles (0 = configured value)")
	return cmd
}

func newSimilarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar",
		Short: "Print titles similar to a title, skipping ones the user rated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			title, _ := cmd.Flags().GetString("title")
			userID, _ := cmd.Flags().GetInt("user")
			count, _ := cmd.Flags().GetInt("count")

			return withEngine(cmd, func(e *recommend.Engine) any {
				titles := e.RecommendSimilar(cmd.Context(), title, userID, count)
				if titles == nil {
					titles = []string{}
				}
				return similarResult{
					Title:    title,
					UserID:   userID,
					Fallback: !e.IsIndexed(title),
					Titles:   titles,
				}
			})
		},
	}
	cmd.Flags().String("title", "", "seed title (exact match)")
	cmd.Flags().Int("user", 0, "user ID whose rated titles are excluded")
	cmd.Flags().Int("count", 0, "number of titles (0 = configured value)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newAuthorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "author",
		Short: "Print an author's best rated editions the user has not rated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			author, _ := cmd.Flags().GetString("author")
			userID, _ := cmd.Flags().GetInt("user")
			count, _ := cmd.Flags().GetInt("count")

			return withEngine(cmd, func(e *recommend.Engine) any {
				picks := e.RecommendByAuthor(cmd.Context(), userID, author, count)
				if picks == nil {
					picks = []recommend.AuthorPick{}
				}
				return authorResult{Author: author, UserID: userID, Picks: picks}
			})
		},
	}
	cmd.Flags().String("author", "", "author name (exact match)")
	cmd.Flags().Int("user", 0, "user ID whose rated editions are excluded")
	cmd.Flags().Int("count", 0, "number of editions (0 = configured value)")
	_ = cmd.MarkFlagRequired("author")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

// withEngine builds the engine synchronously, runs query against it and
// prints the result as JSON on stdout.
func withEngine(cmd *cobra.Command, query func(e *recommend.Engine) any) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	engine, err := buildEngine(cmd.Context(), cfg, logging.WithComponent("engine"))
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), query(engine))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
