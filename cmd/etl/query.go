package main

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/spf13/cobra"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"
)

type queryOptions struct {
	params []string
	format string
}

func newQueryCmd(s *session) *cobra.Command {
	var opts queryOptions

	cmd := &cobra.Command{
		Use:   "query <name>",
		Short: "Run a named query and print the rows",
		Long:  "Run a named query and print the rows. Names: " + strings.Join(siciap.QueryNames(), ", "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, s, args[0], opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.params, "param", "p", nil, "Query parameter as key=value, repeatable")
	cmd.Flags().StringVar(&opts.format, "format", formatJSON, "Output format: json or csv")

	return cmd
}

func parseParams(pairs []string) (siciap.Params, error) {
	params := siciap.Params{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}

func runQuery(cmd *cobra.Command, s *session, name string, opts queryOptions) error {
	if opts.format != formatJSON && opts.format != formatCSV {
		return fmt.Errorf("unknown format %q", opts.format)
	}
	params, err := parseParams(opts.params)
	if err != nil {
		return err
	}

	out, err := s.console.Query(cmd.Context(), name, params)
	if err != nil {
		return err
	}

	if opts.format == formatCSV {
		return writeCSV(s, out)
	}
	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// writeCSV encodes a slice of flat records. A single record is written as a
// one-row table.
func writeCSV(s *session, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		rows := reflect.MakeSlice(reflect.SliceOf(rv.Type()), 0, 1)
		v = reflect.Append(rows, rv).Interface()
	}

	b, err := csvutil.Marshal(v)
	if err != nil {
		return fmt.Errorf("result cannot be written as csv: %w", err)
	}
	_, err = s.out.Write(b)
	return err
}
