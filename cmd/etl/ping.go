package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newPingCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the database answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !s.console.Ping(cmd.Context()) {
				return errors.New("database unreachable")
			}
			fmt.Fprintln(s.out, "ok")
			return nil
		},
	}
}
