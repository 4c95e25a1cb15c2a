package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"fptclock/internal/core/model"
	"fptclock/internal/render"
	"fptclock/internal/storage"
)

func newListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the stage program",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			program, path, err := loadProgram(opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			fmt.Fprintln(cmd.OutOrStdout(), programTable(program))
			return nil
		},
	}
}

func newCheckCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the stage program",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			program, path, err := loadProgram(opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d stages, %s total\n", path, program.Len(), render.FormatRemaining(program.Total()))
			return nil
		},
	}
}

func loadProgram(opts *rootOptions) (model.Program, string, error) {
	path := storage.ResolveStagesPath(opts.stages)
	program, err := storage.LoadStages(path)
	if err != nil {
		return nil, path, fmt.Errorf("load stages %s: %w", path, err)
	}
	return program, path, nil
}

func programTable(program model.Program) string {
	rows := make([][]string, 0, len(program))
	for i, stage := range program {
		sound := "no"
		if stage.Sound {
			sound = "yes"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			stage.Label(),
			strconv.FormatInt(int64(stage.Duration/time.Second), 10),
			sound,
		})
	}
	footer := []string{"", "Total", strconv.FormatInt(int64(program.Total()/time.Second), 10), ""}
	return renderTable(
		[]string{"#", "Stage", "Seconds", "Warning"},
		rows,
		footer,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
	)
}
