package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cryswap/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the source archive, pool directories and ffmpeg",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			results := preflight.RunAll(cmd.Context(), cfg)
			for _, line := range renderPreflight(ctx.configPath, results, shouldColorize(out)) {
				fmt.Fprintln(out, line)
			}
			if _, failed := preflight.Failed(results); failed {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
}
