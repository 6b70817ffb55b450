package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/codecovctl/codecov"
	"github.com/s0up4200/codecovctl/schema"
)

var (
	trendFlags    listFlags
	trendInterval string
	trendBranch   string
	trendFlag     string
	trendStart    string
	trendEnd      string

	flagsFlags listFlags
)

// coverageCmd prints the coverage trend of a repository
var coverageCmd = &cobra.Command{
	Use:   "coverage <repo>",
	Short: "Show the coverage trend of a repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runCoverage,
}

var flagsCmd = &cobra.Command{
	Use:   "flags <repo>",
	Short: "List the flags of a repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runFlags,
}

var componentsCmd = &cobra.Command{
	Use:   "components <repo>",
	Short: "List the components of a repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runComponents,
}

func init() {
	trendFlags.register(coverageCmd)
	coverageCmd.Flags().StringVarP(&trendInterval, "interval", "i", "", "bucket width (1d, 7d, 30d)")
	coverageCmd.Flags().StringVarP(&trendBranch, "branch", "b", "", "branch to report on")
	coverageCmd.Flags().StringVar(&trendFlag, "flag", "", "only coverage uploaded with this flag")
	coverageCmd.Flags().StringVar(&trendStart, "start", "", "start date (YYYY-MM-DD)")
	coverageCmd.Flags().StringVar(&trendEnd, "end", "", "end date (YYYY-MM-DD)")

	flagsFlags.register(flagsCmd)

	rootCmd.AddCommand(coverageCmd, flagsCmd, componentsCmd)
}

func runCoverage(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	r, err := repo(args[0])
	if err != nil {
		return err
	}

	opts := codecov.CoverageTrendOptions{ListOptions: trendFlags.options()}
	if trendInterval != "" {
		interval, err := schema.ParseInterval(trendInterval)
		if err != nil {
			return err
		}
		opts.Interval = &interval
	}
	if trendBranch != "" {
		opts.Branch = codecov.String(trendBranch)
	}
	if trendStart != "" {
		opts.StartDate = codecov.String(trendStart)
	}
	if trendEnd != "" {
		opts.EndDate = codecov.String(trendEnd)
	}

	var first *codecov.Page[schema.CoverageTrend]
	if trendFlag != "" {
		first, err = r.FlagCoverageTrend(ctx, trendFlag, &opts)
	} else {
		first, err = r.CoverageTrend(ctx, &opts)
	}
	if err != nil {
		return fmt.Errorf("failed to get coverage trend: %w", err)
	}

	points, err := collect(ctx, first, trendFlags.all)
	if err != nil {
		return fmt.Errorf("failed to get coverage trend: %w", err)
	}

	p := newPrinter(cmd)
	if jsonOutput {
		return p.JSON(points)
	}
	if err := p.Trend(points); err != nil {
		return err
	}
	footer(p, first, len(points), trendFlags.all)
	return nil
}

func runFlags(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	r, err := repo(args[0])
	if err != nil {
		return err
	}

	opts := flagsFlags.options()
	first, err := r.Flags(ctx, &opts)
	if err != nil {
		return fmt.Errorf("failed to list flags: %w", err)
	}
	flags, err := collect(ctx, first, flagsFlags.all)
	if err != nil {
		return fmt.Errorf("failed to list flags: %w", err)
	}

	p := newPrinter(cmd)
	if jsonOutput {
		return p.JSON(flags)
	}
	return p.Flags(flags)
}

func runComponents(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	r, err := repo(args[0])
	if err != nil {
		return err
	}

	components, err := r.Components(ctx)
	if err != nil {
		return fmt.Errorf("failed to list components: %w", err)
	}

	p := newPrinter(cmd)
	if jsonOutput {
		return p.JSON(components)
	}
	return p.Components(components)
}
