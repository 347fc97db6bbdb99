package fieldgen

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// Options holds the command-line flags.
type Options struct {
	ConfigPath string
	Dir        string
	Types      []string
	Output     string
	Verbose    bool
}

// NewRootCommand creates the fieldgen command.
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "fieldgen",
		Short: "Generate typed field tags from getter methods",
		Long: `Generate typed field tags for specification target types.

fieldgen parses a Go package, collects the GetXxx methods of each target
type and writes a file declaring <Type>Fields, whose members are
criteria.Field values named after the getters.

Typical use is a go:generate directive next to the entity:

	//go:generate go run github.com/gabisonia/go-specification/cmd/fieldgen --type Order --output order_fields_gen.go`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML config file")
	cmd.Flags().StringVarP(&opts.Dir, "dir", "d", ".", "package directory to scan")
	cmd.Flags().StringSliceVarP(&opts.Types, "type", "t", nil, "target type (repeatable)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", DefaultOutput, "generated file, relative to --dir")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *Options) error {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := resolveConfig(cmd, opts, logger)
	if err != nil {
		return err
	}

	output, err := Run(cfg, logger)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

// resolveConfig layers explicitly set flags over the config file, which in
// turn sits over the defaults.
func resolveConfig(cmd *cobra.Command, opts *Options, logger *slog.Logger) (*Config, error) {
	cfg := DefaultConfig()
	if opts.ConfigPath != "" {
		loaded, err := LoadFromFile(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded config", slog.String("path", opts.ConfigPath))
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Dir = opts.Dir
	}
	if flags.Changed("type") {
		cfg.Types = opts.Types
	}
	if flags.Changed("output") {
		cfg.Output = opts.Output
	}
	return cfg, nil
}
