package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	dupfind "github.com/abecadel/duplicate-finder/pkg"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// scanOptions holds the root command's flags
type scanOptions struct {
	configPath string
	overrides  []string
	verbose    int
	outFile    string
	delete     bool
	dryRun     bool
	algorithm  string
	workers    int
	buffer     string
	format     string
	color      string
	debug      string
	ignore     []string
	ignoreFile string
}

// NewRootCmd creates the dupfind command tree
func NewRootCmd() *cobra.Command {
	opts := &scanOptions{}

	rootCmd := &cobra.Command{
		Use:   "dupfind DIR",
		Short: "Find files with identical content in a directory",
		Long: `dupfind fingerprints every regular file directly inside DIR and groups
files whose content is identical. In each group the first file to finish
hashing is kept; every other member is reported as a duplicate.

Duplicates can be written to a report file (one path per line) and/or
deleted. Subdirectories and symlinks are not followed.`,
		Version:       getVersionString(),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args[0], opts)
		},
	}

	flags := rootCmd.Flags()
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", dupfind.DefaultConfigPath(), "Configuration file path")
	rootCmd.PersistentFlags().StringArrayVar(&opts.overrides, "set", nil, "Override a config value as key:value (repeatable)")
	flags.CountVarP(&opts.verbose, "verbose", "v", "Increase verbosity (repeat for more detail)")
	flags.StringVarP(&opts.outFile, "out", "o", "", "Write duplicate paths to this file, one per line")
	flags.BoolVarP(&opts.delete, "delete", "X", false, "Delete found duplicates")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "With --delete, report what would be deleted without deleting")
	flags.StringVarP(&opts.algorithm, "algorithm", "a", dupfind.DefaultHashAlgorithm, "Hash algorithm ("+strings.Join(dupfind.SupportedHashAlgorithms(), ", ")+")")
	flags.IntVarP(&opts.workers, "workers", "j", 0, "Number of hash workers (0 = one per CPU)")
	flags.StringVar(&opts.buffer, "buffer", dupfind.DefaultHashBuffer, "Read chunk size, e.g. 4K or 1M")
	flags.StringVarP(&opts.format, "format", "f", dupfind.DefaultOutputFormat, "Print groups to stdout: none, human, json, fdupes")
	flags.StringVar(&opts.color, "color", "auto", "Colour human output: auto, always, never")
	flags.StringVar(&opts.debug, "debug", "", "Comma-separated debug flags (scan)")
	flags.StringArrayVar(&opts.ignore, "ignore", nil, "Skip files whose name matches this regex (repeatable)")
	flags.StringVar(&opts.ignoreFile, "ignore-file", "", "Read ignore patterns from this file, one per line")

	rootCmd.AddCommand(NewConfigCmd(opts))
	rootCmd.AddCommand(NewHashCmd(opts))

	return rootCmd
}

// loadConfig reads the config file, then --set overrides, then explicit flags
func loadConfig(cmd *cobra.Command, opts *scanOptions) (*dupfind.Config, error) {
	cfg, err := dupfind.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyOverrides(opts.overrides); err != nil {
		return nil, err
	}

	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("algorithm") {
		cfg.SetHashDefault(opts.algorithm)
	}
	if changed("workers") {
		cfg.SetHashWorkers(opts.workers)
	}
	if changed("buffer") {
		cfg.SetHashBuffer(opts.buffer)
	}
	if changed("format") {
		cfg.SetOutputFormat(opts.format)
	}
	if changed("color") {
		cfg.SetColorMode(opts.color)
	}
	if changed("verbose") {
		cfg.SetVerboseLevel(min(opts.verbose, dupfind.VerboseTrace))
	}
	if changed("debug") {
		cfg.SetDebugFlags(opts.debug)
	}
	if changed("dry-run") {
		cfg.SetDryRun(opts.dryRun)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runScan(cmd *cobra.Command, dir string, opts *scanOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	all := cfg.GetAllConfig()

	observer := dupfind.NewVerboseObserver(cmd.ErrOrStderr(), all.Verbose.Level, all.Verbose.Debug)

	// A directory that cannot be listed is fatal before any hashing starts.
	files, err := dupfind.ListRegularFiles(dir)
	if err != nil {
		return err
	}
	observer.Log(dupfind.VerboseDetailed, "Config: %s", cfg.Path())
	observer.Log(dupfind.VerboseBasic, "Working directory: %s", dir)
	observer.Log(dupfind.VerboseBasic, "No of files found: %d", len(files))

	filter, err := buildIgnoreFilter(opts)
	if err != nil {
		return err
	}
	if filter.Len() > 0 {
		files = filter.FilterPaths(files)
		observer.Log(dupfind.VerboseBasic, "No of files after ignore patterns: %d", len(files))
	}

	finderOpts, err := cfg.FinderOptions(observer)
	if err != nil {
		return err
	}
	finder, err := dupfind.NewFinder(finderOpts)
	if err != nil {
		return err
	}
	observer.Log(dupfind.VerboseDetailed, "Hashing with %s on %d workers", all.Hash.Default, finder.Workers())

	result, err := finder.Run(cmd.Context().Done(), files)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := dupfind.FormatResult(out, result, all.Output.Format, useColor(out, all.Output.Color)); err != nil {
		return fmt.Errorf("failed to print results: %w", err)
	}

	if opts.outFile != "" {
		if err := dupfind.WriteReport(opts.outFile, result.Duplicates); err != nil {
			return err
		}
		observer.Log(dupfind.VerboseBasic, "Wrote %d duplicate paths to %s", len(result.Duplicates), opts.outFile)
	}

	if opts.delete {
		if all.Delete.DryRun {
			dryRun := &dupfind.DryRunDeleter{}
			dupfind.DeleteDuplicates(result.Duplicates, dryRun, nil)
			for _, path := range dryRun.Removed {
				fmt.Fprintf(out, "would delete %s\n", path)
			}
			return nil
		}
		deleted := dupfind.DeleteDuplicates(result.Duplicates, dupfind.OSDeleter{}, observer)
		if len(deleted.Failed) > 0 {
			observer.Log(dupfind.VerboseQuiet, "%d of %d duplicates could not be deleted", len(deleted.Failed), len(result.Duplicates))
		}
	}

	return nil
}

// buildIgnoreFilter combines --ignore patterns with those from --ignore-file
func buildIgnoreFilter(opts *scanOptions) (*dupfind.IgnoreFilter, error) {
	patterns := append([]string(nil), opts.ignore...)
	if opts.ignoreFile != "" {
		filePatterns, err := dupfind.LoadIgnoreFile(opts.ignoreFile)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, filePatterns...)
	}
	return dupfind.NewIgnoreFilter(patterns)
}

// useColor resolves the colour mode against the output stream
func useColor(out io.Writer, mode string) bool {
	switch strings.ToLower(mode) {
	case "always":
		return true
	case "never":
		return false
	}
	if f, ok := out.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
