package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vytor/leitnerbox/internal/config"
	"github.com/vytor/leitnerbox/internal/leitner"
)

func newImportCmd(cfg *config.Config) *cobra.Command {
	var profileName string

	cmd := &cobra.Command{
		Use:   "import --profile NAME FILE",
		Short: "Import a JSON array of card records",
		Long:  "Import reads a JSON array of card records from FILE (or stdin when FILE is -) and stores them for the profile, creating the profile if needed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := readRecords(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			a, err := newApp(*cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			profile, err := a.profiles.CreateProfile(ctx, profileName)
			if err != nil {
				return err
			}
			res, err := a.cards.Import(ctx, profile.ID, records)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d cards for %s (%d already present)\n",
				res.Inserted, res.Received, profile.Username, res.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "", "Profile username")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}

func readRecords(stdin io.Reader, path string) ([]leitner.Record, error) {
	in := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}

	var records []leitner.Record
	if err := json.NewDecoder(in).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s holds no records", path)
	}
	return records, nil
}
