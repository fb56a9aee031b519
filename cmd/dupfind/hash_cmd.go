package main

import (
	"errors"
	"fmt"

	dupfind "github.com/abecadel/duplicate-finder/pkg"
	"github.com/spf13/cobra"
)

// NewHashCmd creates the hash subcommand, which prints the digest dupfind
// would use for each file
func NewHashCmd(opts *scanOptions) *cobra.Command {
	var algorithm string

	cmd := &cobra.Command{
		Use:   "hash FILE...",
		Short: "Print the content digest of files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := dupfind.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			if err := cfg.ApplyOverrides(opts.overrides); err != nil {
				return err
			}
			if cmd.Flags().Changed("algorithm") {
				cfg.SetHashDefault(algorithm)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			finderOpts, err := cfg.FinderOptions(nil)
			if err != nil {
				return err
			}
			hashAlgorithm, err := dupfind.GetHashAlgorithm(finderOpts.Algorithm)
			if err != nil {
				return err
			}

			var failed int
			for _, path := range args {
				digest, err := dupfind.Fingerprint(path, hashAlgorithm, finderOpts.BufferSize, cmd.Context().Done())
				if errors.Is(err, dupfind.ErrInterrupted) {
					return err
				}
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "dupfind: %v\n", err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", digest, path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be hashed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", dupfind.DefaultHashAlgorithm, "Hash algorithm")
	return cmd
}
