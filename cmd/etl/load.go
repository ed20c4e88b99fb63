package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/types"
)

type loadOptions struct {
	dataset string
	file    string
}

func newLoadCmd(s *session) *cobra.Command {
	var opts loadOptions

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Replace a dataset table with the contents of a workbook or delimited file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, s, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dataset, "dataset", "", "Dataset: ordenes, ejecucion, stock, pedidos (required)")
	cmd.Flags().StringVar(&opts.file, "file", "", "Path of the file to load (required)")
	_ = cmd.MarkFlagRequired("dataset")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runLoad(cmd *cobra.Command, s *session, opts loadOptions) error {
	kind, err := types.ParseDatasetKind(opts.dataset)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.file, err)
	}

	result, err := s.console.Load(cmd.Context(), kind, data, filepath.Base(opts.file))
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "%s: %d rows loaded into %s (strategy %s, run %s)\n",
		result.Dataset, result.Rows, result.Table, result.Strategy, result.RunID)
	for _, w := range result.Warnings {
		if w.Column != "" {
			fmt.Fprintf(s.out, "  warning %s [%s]: %s\n", w.Kind, w.Column, w.Message)
		} else {
			fmt.Fprintf(s.out, "  warning %s: %s\n", w.Kind, w.Message)
		}
	}
	if kind == types.Execution {
		fmt.Fprintf(s.out, "  %d call annotations created\n", result.Synced)
	}
	return nil
}
