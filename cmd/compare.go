package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/codecovctl/codecov"
	"github.com/s0up4200/codecovctl/format"
	"github.com/s0up4200/codecovctl/schema"
)

var (
	compareBase string
	compareHead string
	comparePull int
	compareBy   string
	compareFile string

	pullsFlags listFlags
	pullsState string
)

// compareCmd compares the coverage of two commits, branches or a pull request
var compareCmd = &cobra.Command{
	Use:   "compare <repo>",
	Short: "Compare coverage between two commits or of a pull request",
	Long: `Compare coverage between a base and a head (commit SHAs or branch names),
or between the base and head of a pull request.

  codecovctl compare api --base main --head feature
  codecovctl compare api --pull 42 --by flags
  codecovctl compare api --pull 42 --file pkg/server/handler.go`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

var pullsCmd = &cobra.Command{
	Use:   "pulls <repo> [id]",
	Short: "List the pull requests of a repository, or show one",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runPulls,
}

func init() {
	compareCmd.Flags().StringVar(&compareBase, "base", "", "base commit SHA or branch")
	compareCmd.Flags().StringVar(&compareHead, "head", "", "head commit SHA or branch")
	compareCmd.Flags().IntVar(&comparePull, "pull", 0, "pull request id")
	compareCmd.Flags().StringVar(&compareBy, "by", "", "group the comparison by components or flags")
	compareCmd.Flags().StringVar(&compareFile, "file", "", "compare a single file")
	compareCmd.MarkFlagsMutuallyExclusive("pull", "base")
	compareCmd.MarkFlagsMutuallyExclusive("pull", "head")
	compareCmd.MarkFlagsRequiredTogether("base", "head")
	compareCmd.MarkFlagsMutuallyExclusive("by", "file")

	pullsFlags.register(pullsCmd)
	pullsCmd.Flags().StringVar(&pullsState, "state", "", "only pulls in this state (open, merged, closed)")

	rootCmd.AddCommand(compareCmd, pullsCmd)
}

func compareOptions() (*codecov.CompareOptions, error) {
	switch {
	case comparePull > 0:
		return &codecov.CompareOptions{PullID: codecov.Int(comparePull)}, nil
	case compareBase != "" && compareHead != "":
		return &codecov.CompareOptions{Base: codecov.String(compareBase), Head: codecov.String(compareHead)}, nil
	default:
		return nil, errors.New("specify --base and --head, or --pull")
	}
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	opts, err := compareOptions()
	if err != nil {
		return err
	}
	r, err := repo(args[0])
	if err != nil {
		return err
	}
	p := newPrinter(cmd)

	if compareFile != "" {
		fc, err := r.CompareFile(ctx, compareFile, opts)
		if err != nil {
			return fmt.Errorf("failed to compare %s: %w", compareFile, err)
		}
		if jsonOutput {
			return p.JSON(fc)
		}
		p.File(fc)
		return nil
	}

	switch compareBy {
	case "":
		c, err := r.Compare(ctx, opts)
		if err != nil {
			return fmt.Errorf("failed to compare: %w", err)
		}
		if jsonOutput {
			return p.JSON(c)
		}
		p.Comparison(c)
	case "components":
		groups, err := r.CompareComponents(ctx, opts)
		if err != nil {
			return fmt.Errorf("failed to compare components: %w", err)
		}
		if jsonOutput {
			return p.JSON(groups)
		}
		p.Groups("Components", format.ComponentComparisons(groups))
	case "flags":
		groups, err := r.CompareFlags(ctx, opts)
		if err != nil {
			return fmt.Errorf("failed to compare flags: %w", err)
		}
		if jsonOutput {
			return p.JSON(groups)
		}
		p.Groups("Flags", format.FlagComparisons(groups))
	default:
		return fmt.Errorf("invalid --by %q (must be 'components' or 'flags')", compareBy)
	}
	return nil
}

func runPulls(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	r, err := repo(args[0])
	if err != nil {
		return err
	}
	p := newPrinter(cmd)

	if len(args) == 2 {
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid pull request id %q", args[1])
		}
		pr, err := r.Pull(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get pull request #%d: %w", id, err)
		}
		if jsonOutput {
			return p.JSON(pr)
		}
		return p.Pulls([]schema.Pull{pr})
	}

	opts := codecov.PullListOptions{ListOptions: pullsFlags.options()}
	if pullsState != "" {
		state, err := schema.ParsePullState(pullsState)
		if err != nil {
			return err
		}
		opts.State = &state
	}

	first, err := r.Pulls(ctx, &opts)
	if err != nil {
		return fmt.Errorf("failed to list pull requests: %w", err)
	}
	pulls, err := collect(ctx, first, pullsFlags.all)
	if err != nil {
		return fmt.Errorf("failed to list pull requests: %w", err)
	}

	if jsonOutput {
		return p.JSON(pulls)
	}
	if err := p.Pulls(pulls); err != nil {
		return err
	}
	footer(p, first, len(pulls), pullsFlags.all)
	return nil
}
