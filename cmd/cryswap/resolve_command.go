package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cryswap/internal/pipeline"
	"cryswap/internal/resolve"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "resolve <species> [form]",
		Short: "Show which pool asset a species form resolves to",
		Long: "Runs the same override, cache and search tiers as a build for a single\n" +
			"species form. Fuzzy pool matches are converted into the cache as usual.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			key := resolve.Key{Entity: strings.ToLower(strings.TrimSpace(args[0]))}
			if len(args) == 2 {
				key.Form = strings.ToLower(strings.TrimSpace(args[1]))
			}

			cache := resolve.NewConversionCache(cfg.Pools.ConvertedDir)
			unlock, err := cache.Lock()
			if err != nil {
				return err
			}
			defer func() { _ = unlock() }()

			match, err := pipeline.NewResolver(cfg, cache, nil, logger).Resolve(cmd.Context(), key)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, resolveMatchJSON(key, match))
			}
			rows := [][2]string{
				{"Key", key.String()},
				{"Pool", match.Pool},
				{"Tier", string(match.Tier)},
				{"Sound", match.Path},
			}
			if match.Source != match.Path {
				rows = append(rows, [2]string{"Converted from", match.Source})
			}
			if match.Tier == resolve.TierSearch && match.Pool == resolve.FuzzyName {
				rows = append(rows, [2]string{"Score", strconv.FormatFloat(match.Score, 'f', 3, 64)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderFields("Resolution", rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the match as JSON")
	return cmd
}
