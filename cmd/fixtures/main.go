package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/derekprior/fixtures/internal/config"
	"github.com/derekprior/fixtures/internal/excel"
	"github.com/derekprior/fixtures/internal/placement"
	"github.com/derekprior/fixtures/internal/schedule"
	"github.com/derekprior/fixtures/internal/season"
	"github.com/derekprior/fixtures/internal/seasonxml"
	"github.com/derekprior/fixtures/internal/validator"
)

const defaultConfigFile = "config.yaml"

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

// newViper reads flag values with FIXTURES_* environment overrides, e.g.
// FIXTURES_LOG_LEVEL for --log-level.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("FIXTURES")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func setupLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return log.Logger, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := newViper()
	var logger zerolog.Logger

	rootCmd := &cobra.Command{
		Use:   "fixtures",
		Short: "League fixture generator and validator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			l, err := setupLogger(v.GetString("log-level"))
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(v.GetString("output"))
		},
	}
	initCmd.Flags().StringP("output", "o", defaultConfigFile, "Output path for the config file")

	seasonCmd := &cobra.Command{
		Use:   "season",
		Short: "Generate and validate seasons",
	}
	seasonCmd.PersistentFlags().String("config", "", "Path to config file (default: config.yaml in current directory)")

	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate a season from a config file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(v.GetString("config"))
			if err != nil {
				return err
			}
			return runGenerate(logger, generateOptions{
				configPath: configPath,
				outputPath: v.GetString("output"),
				xlsxPath:   v.GetString("xlsx"),
				seed:       v.GetInt64("seed"),
				attempts:   v.GetInt("attempts"),
			})
		},
	}
	generateCmd.Flags().StringP("output", "o", "season.xml", "Output season file path")
	generateCmd.Flags().String("xlsx", "", "Also write an Excel workbook to this path")
	generateCmd.Flags().Int64("seed", 0, "Random seed (default: config seed, or derived from the clock)")
	generateCmd.Flags().Int("attempts", 1, "Number of seeds to try before giving up")

	validateCmd := &cobra.Command{
		Use:          "validate <season.xml>",
		Short:        "Validate a season file against the scheduling rules",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(logger, v.GetString("config"), args[0], v.GetBool("all"))
		},
	}
	validateCmd.Flags().Bool("all", false, "Report every violation instead of stopping at the first")

	seasonCmd.AddCommand(generateCmd, validateCmd)
	rootCmd.AddCommand(initCmd, seasonCmd)
	return rootCmd
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

type generateOptions struct {
	configPath string
	outputPath string
	xlsxPath   string
	seed       int64
	attempts   int
}

func runGenerate(logger zerolog.Logger, opts generateOptions) error {
	cfg, err := config.LoadFromFile(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	vopts, err := validator.OptionsFromConfig(cfg.Validation)
	if err != nil {
		return err
	}
	check := validator.New(vopts, logger)

	known := make(map[string]bool)
	for _, name := range cfg.AllTeams() {
		known[name] = true
	}
	for _, name := range cfg.Validation.ExemptTeams {
		if !known[name] {
			logger.Warn().Str("team", name).Msg("exempt team is not in any league")
		}
	}

	s, genErr := generate(logger, cfg, check, opts)
	if s == nil {
		return genErr
	}

	if err := seasonxml.WriteFile(opts.outputPath, s); err != nil {
		return fmt.Errorf("saving season: %w", err)
	}
	fmt.Printf("✓ Season saved to %s\n", opts.outputPath)

	if opts.xlsxPath != "" {
		f, err := excel.Generate(s, cfg.Validation.PeakTime)
		if err != nil {
			return fmt.Errorf("generating Excel: %w", err)
		}
		if err := f.SaveAs(opts.xlsxPath); err != nil {
			return fmt.Errorf("saving file: %w", err)
		}
		fmt.Printf("✓ Workbook saved to %s\n", opts.xlsxPath)
	}

	return genErr
}

// generate tries up to opts.attempts seeds, seed+i for attempt i. It returns
// the first season that passes validation. If none does, the last season
// generated is returned alongside its violation so it can still be saved.
func generate(logger zerolog.Logger, cfg *config.Config, check *validator.Validator, opts generateOptions) (*season.Season, error) {
	seed := opts.seed
	if seed == 0 {
		seed = cfg.Seed
	}
	attempts := opts.attempts
	if attempts < 1 {
		attempts = 1
	}

	var last *season.Season
	var lastErr error
	for i := 0; i < attempts; i++ {
		attemptSeed := seed
		if seed != 0 {
			attemptSeed = seed + int64(i)
		}
		sess := schedule.NewSession(attemptSeed, schedule.WithLogger(logger))

		s, err := sess.Generate(cfg)
		if errors.Is(err, placement.ErrPlacementExhausted) {
			logger.Warn().Err(err).Int64("seed", sess.Seed()).Int("attempt", i+1).Msg("placement failed")
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}

		if err := check.Validate(s); err != nil {
			logger.Warn().Err(err).Int64("seed", sess.Seed()).Int("attempt", i+1).Msg("season failed validation")
			last, lastErr = s, err
			continue
		}

		fmt.Printf("✓ Generated %d matches in %d leagues (seed %d)\n", len(s.Matches()), len(s.Leagues()), sess.Seed())
		return s, nil
	}

	if last != nil {
		fmt.Fprintf(os.Stderr, "⚠ No valid season after %d attempt(s); saving the last one\n", attempts)
		return last, fmt.Errorf("season is invalid: %w", lastErr)
	}
	return nil, fmt.Errorf("no season after %d attempt(s): %w", attempts, lastErr)
}

func runValidate(logger zerolog.Logger, configPath, seasonPath string, all bool) error {
	opts := validator.DefaultOptions()
	if configPath != "" {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if opts, err = validator.OptionsFromConfig(cfg.Validation); err != nil {
			return err
		}
	}

	s, err := seasonxml.ReadFile(seasonPath)
	if err != nil {
		return fmt.Errorf("reading season: %w", err)
	}
	check := validator.New(opts, logger)

	if !all {
		if err := check.Validate(s); err != nil {
			fmt.Printf("✗ Rule violation: %s\n", err)
			return err
		}
		fmt.Printf("✓ %d matches pass all rules\n", len(s.Matches()))
		return nil
	}

	violations := check.Audit(s)
	for _, v := range violations {
		fmt.Printf("✗ Rule violation: %s\n", v)
	}
	fmt.Printf("\nValidation complete: %d rule violations in %d matches\n", len(violations), len(s.Matches()))
	if len(violations) > 0 {
		return fmt.Errorf("%d rule violations found", len(violations))
	}
	return nil
}
