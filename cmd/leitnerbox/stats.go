package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/leitnerbox/internal/config"
	"github.com/vytor/leitnerbox/internal/models"
)

func newStatsCmd(cfg *config.Config) *cobra.Command {
	var profileName string

	cmd := &cobra.Command{
		Use:   "stats --profile NAME",
		Short: "Show per-box counts and recent session scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			profile, err := a.profiles.FindProfile(ctx, profileName)
			if err != nil {
				return err
			}
			summary, err := a.stats.Summary(ctx, profile.ID)
			if err != nil {
				return err
			}
			return printStats(cmd.OutOrStdout(), profile, summary)
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "", "Profile username")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}

func printStats(out io.Writer, profile *models.Profile, s *models.StatsSummary) error {
	fmt.Fprintf(out, "profile: %s\n", profile.Username)
	if profile.LastSessionAt != nil {
		fmt.Fprintf(out, "last session: %s\n", profile.LastSessionAt.Format(time.RFC3339))
	}
	fmt.Fprintf(out, "focus time: %s\n\n", time.Duration(s.FocusSeconds)*time.Second)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BOX\tCARDS\tCHECKED OUT")
	for _, b := range s.Boxes {
		fmt.Fprintf(tw, "%d\t%d\t%d\n", b.Box, b.Total, b.CheckedOut)
	}
	fmt.Fprintf(tw, "total\t%d\t\n", s.TotalCards)
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(s.RecentScores) == 0 {
		fmt.Fprintln(out, "\nno sessions yet")
		return nil
	}
	fmt.Fprintf(out, "\nlast %d scores (average %.1f%%):\n", len(s.RecentScores), s.AverageScore)
	for _, sc := range s.RecentScores {
		fmt.Fprintf(out, "  %s  %5.1f%%  (%d/%d)\n", sc.CreatedAt.Format("2006-01-02 15:04"), sc.Score, sc.Correct, sc.Size)
	}
	return nil
}
