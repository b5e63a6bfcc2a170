package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/pressable/internal/buttonstate"
	"github.com/llehouerou/pressable/internal/config"
	"github.com/llehouerou/pressable/internal/errmsg"
	"github.com/llehouerou/pressable/internal/history"
	"github.com/llehouerou/pressable/internal/ui/render"
)

// now is replaced in tests.
var now = time.Now

type rootOptions struct {
	dbPath string
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:          "presshistory",
		Short:        "Inspect the pressable transition history",
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Help()
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "history database (default: configured path)")

	rootCmd.AddCommand(newListCmd(opts), newStatsCmd(opts), newPruneCmd(opts))
	return rootCmd
}

// open resolves the database path: --db, then the config file, then the
// XDG default.
func (o *rootOptions) open() (*history.Store, error) {
	path := o.dbPath
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, errors.New(errmsg.Format(errmsg.OpLoadConfig, err))
		}
		path = cfg.History.Path
	}
	store, err := history.Open(path, nil)
	if err != nil {
		return nil, errors.New(errmsg.Format(errmsg.OpOpenHistory, err))
	}
	return store, nil
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		filter history.Filter
		kind   string
		since  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded transitions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if kind != "" {
				k, err := buttonstate.ParseKind(kind)
				if err != nil {
					return err
				}
				filter.Kind = &k
			}
			if since > 0 {
				filter.Since = now().Add(-since)
			}

			store, err := opts.open()
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), filter)
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpListHistory, err))
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no transitions recorded")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tBUTTON\tSTATE\tORIGIN\tERROR")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					humanize.RelTime(e.At, now(), "ago", "from now"),
					e.Button,
					e.Kind,
					e.Origin,
					render.Truncate(render.FirstLine(e.Error), 48),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&filter.Button, "button", "", "only this button")
	cmd.Flags().StringVar(&filter.Session, "session", "", "only this session id")
	cmd.Flags().StringVar(&kind, "state", "", "only transitions into this state (idle, loading, success, error)")
	cmd.Flags().DurationVar(&since, "since", 0, "only transitions newer than this (e.g. 2h)")
	cmd.Flags().IntVarP(&filter.Limit, "limit", "n", 50, "maximum number of rows")
	return cmd
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var button string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count transitions per state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := opts.open()
			if err != nil {
				return err
			}
			defer store.Close()

			counts, err := store.Counts(cmd.Context(), button)
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpListHistory, err))
			}

			parts := make([]string, 0, len(buttonstate.Kinds))
			for _, k := range buttonstate.Kinds {
				parts = append(parts, fmt.Sprintf("%s %s", k, humanize.Comma(int64(counts[k]))))
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, "  "))
			return nil
		},
	}

	cmd.Flags().StringVar(&button, "button", "", "only this button")
	return cmd
}

func newPruneCmd(opts *rootOptions) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete transitions older than a duration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if olderThan <= 0 {
				return errors.New("--older-than must be positive")
			}

			store, err := opts.open()
			if err != nil {
				return err
			}
			defer store.Close()

			cutoff := now().Add(-olderThan)
			deleted, err := store.Prune(cmd.Context(), cutoff)
			if errors.Is(err, history.ErrNothingToPrune) {
				fmt.Fprintf(cmd.OutOrStdout(), "nothing older than %s\n", humanize.Time(cutoff))
				return nil
			}
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpPruneHistory, err))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "pruned %s transitions\n", humanize.Comma(deleted))
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "age of the oldest transition to keep")
	return cmd
}
