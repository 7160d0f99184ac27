package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"newsreel/internal/runs"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded pipeline runs",
	}

	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsShowCommand(ctx))
	runsCmd.AddCommand(newRunsClearCommand(ctx))
	return runsCmd
}

func (c *commandContext) withStore(fn func(*runs.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := runs.Open(cfg)
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *runs.Store) error {
				var filter []runs.Status
				if statusFilter != "" {
					status := runs.Status(statusFilter)
					if !status.Valid() {
						return fmt.Errorf("unknown status %q", statusFilter)
					}
					filter = append(filter, status)
				}

				list, err := store.List(cmd.Context(), filter...)
				if err != nil {
					return err
				}
				if len(list) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
					return nil
				}

				rows := make([][]string, 0, len(list))
				for _, run := range list {
					rows = append(rows, []string{
						shortID(run.ID),
						run.Title,
						string(run.Status),
						run.Stage,
						run.CreatedAt.Local().Format(time.DateTime),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Title", "Status", "Stage", "Created"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Only show runs with this status")
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *runs.Store) error {
				run, err := resolveRun(cmd, store, args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:        %s\n", run.ID)
				fmt.Fprintf(out, "Title:     %s\n", run.Title)
				fmt.Fprintf(out, "Status:    %s\n", run.Status)
				if run.Stage != "" {
					fmt.Fprintf(out, "Stage:     %s\n", run.Stage)
				}
				fmt.Fprintf(out, "Words:     %s\n", run.WordsPath)
				if run.PlanPath != "" {
					fmt.Fprintf(out, "Plan:      %s\n", run.PlanPath)
				}
				if run.TimelinePath != "" {
					fmt.Fprintf(out, "Timeline:  %s\n", run.TimelinePath)
				}
				if run.ErrorMessage != "" {
					fmt.Fprintf(out, "Error:     %s\n", run.ErrorMessage)
				}
				fmt.Fprintf(out, "Created:   %s\n", run.CreatedAt.Local().Format(time.DateTime))
				fmt.Fprintf(out, "Updated:   %s\n", run.UpdatedAt.Local().Format(time.DateTime))
				return nil
			})
		},
	}
}

func newRunsClearCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete completed and failed runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *runs.Store) error {
				removed, err := store.Clear(cmd.Context(), all)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d runs\n", removed)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Also delete runs that are still in progress")
	return cmd
}

// resolveRun accepts the full run ID or the unique 8-char prefix shown by
// 'runs list'.
func resolveRun(cmd *cobra.Command, store *runs.Store, id string) (*runs.Run, error) {
	run, err := store.Get(cmd.Context(), id)
	if err == nil {
		return run, nil
	}
	if !errors.Is(err, runs.ErrNotFound) {
		return nil, err
	}

	list, listErr := store.List(cmd.Context())
	if listErr != nil {
		return nil, listErr
	}
	var match *runs.Run
	for _, candidate := range list {
		if strings.HasPrefix(candidate.ID, id) {
			if match != nil {
				return nil, fmt.Errorf("run prefix %q is ambiguous", id)
			}
			match = candidate
		}
	}
	if match == nil {
		return nil, err
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
