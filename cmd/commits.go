package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/codecovctl/codecov"
	"github.com/s0up4200/codecovctl/filter"
	"github.com/s0up4200/codecovctl/schema"
)

var (
	branchesFlags listFlags
	commitsFlags  listFlags
	commitsBranch string

	reportPath string
	reportFlag string
	showLines  bool
	totalsJobs int
)

var branchesCmd = &cobra.Command{
	Use:   "branches <repo>",
	Short: "List the branches of a repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runBranches,
}

var branchCmd = &cobra.Command{
	Use:   "branch <repo> <name>",
	Short: "Show a branch and its head commit",
	Args:  cobra.ExactArgs(2),
	RunE:  runBranch,
}

var commitsCmd = &cobra.Command{
	Use:   "commits <repo>",
	Short: "List the commits of a repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommits,
}

var commitCmd = &cobra.Command{
	Use:   "commit <repo> <sha>",
	Short: "Show a commit with its per-file report",
	Args:  cobra.ExactArgs(2),
	RunE:  runCommit,
}

// totalsCmd fetches coverage totals for several commits at once
var totalsCmd = &cobra.Command{
	Use:   "totals <repo> [sha...]",
	Short: "Show coverage totals of a repository or of specific commits",
	Long: `Show per-file coverage totals. Without a sha the totals of the default
branch head are shown; with several, the commits are fetched concurrently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTotals,
}

func init() {
	branchesFlags.register(branchesCmd)

	commitsFlags.register(commitsCmd)
	commitsCmd.Flags().StringVarP(&commitsBranch, "branch", "b", "", "only commits of this branch")
	commitsCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")

	totalsCmd.Flags().StringVar(&reportPath, "path", "", "only files under this path")
	totalsCmd.Flags().StringVar(&reportFlag, "flag", "", "only coverage uploaded with this flag")
	totalsCmd.Flags().BoolVar(&showLines, "lines", false, "list missed lines per file")
	totalsCmd.Flags().IntVarP(&totalsJobs, "jobs", "j", 4, "commits fetched concurrently")

	rootCmd.AddCommand(branchesCmd, branchCmd, commitsCmd, commitCmd, totalsCmd)
}

func runBranches(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	r, err := repo(args[0])
	if err != nil {
		return err
	}

	opts := codecov.BranchListOptions{ListOptions: branchesFlags.options()}
	first, err := r.Branches(ctx, &opts)
	if err != nil {
		return fmt.Errorf("failed to list branches: %w", err)
	}

	branches, err := collect(ctx, first.Plain(), branchesFlags.all)
	if err != nil {
		return fmt.Errorf("failed to list branches: %w", err)
	}

	p := newPrinter(cmd)
	if jsonOutput {
		return p.JSON(branches)
	}
	if err := p.Branches(branches); err != nil {
		return err
	}
	footer(p, first.Plain(), len(branches), branchesFlags.all)
	return nil
}

func runBranch(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	r, err := repo(args[0])
	if err != nil {
		return err
	}

	b := codecov.UpgradeBranch(schema.Branch{Name: args[1]}, client, codecov.Scope{
		Service: r.Service(), Owner: r.OwnerName(), Repo: r.Name,
	})
	detail, err := b.Detail(ctx)
	if err != nil {
		return fmt.Errorf("failed to get branch %s: %w", args[1], err)
	}

	p := newPrinter(cmd)
	if jsonOutput {
		return p.JSON(detail)
	}
	p.Commit(detail.HeadCommit)
	return nil
}

func runCommits(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	r, err := repo(args[0])
	if err != nil {
		return err
	}

	opts := codecov.CommitListOptions{ListOptions: commitsFlags.options()}
	if commitsBranch != "" {
		opts.Branch = codecov.String(commitsBranch)
	}

	first, err := r.Commits(ctx, &opts)
	if err != nil {
		return fmt.Errorf("failed to list commits: %w", err)
	}

	commits, err := collect(ctx, first.Plain(), commitsFlags.all)
	if err != nil {
		return fmt.Errorf("failed to list commits: %w", err)
	}

	commits, err = applyFilter(ctx, commits, filter.CommitEnv)
	if err != nil {
		return err
	}

	p := newPrinter(cmd)
	if jsonOutput {
		return p.JSON(commits)
	}
	if err := p.Commits(commits); err != nil {
		return err
	}
	footer(p, first.Plain(), len(commits), commitsFlags.all)
	return nil
}

func runCommit(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	r, err := repo(args[0])
	if err != nil {
		return err
	}

	detail, err := client.Commits.Detail(ctx, r.Service(), r.OwnerName(), r.Name, args[1])
	if err != nil {
		return fmt.Errorf("failed to get commit %s: %w", args[1], err)
	}

	p := newPrinter(cmd)
	if jsonOutput {
		return p.JSON(detail)
	}
	p.Commit(detail)
	return nil
}

func reportOptions() *codecov.ReportOptions {
	opts := &codecov.ReportOptions{}
	if reportPath != "" {
		opts.Path = codecov.String(reportPath)
	}
	if reportFlag != "" {
		opts.Flag = codecov.String(reportFlag)
	}
	return opts
}

func runTotals(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	r, err := repo(args[0])
	if err != nil {
		return err
	}
	p := newPrinter(cmd)
	opts := reportOptions()

	shas := args[1:]
	if len(shas) == 0 {
		if showLines {
			report, err := r.CoverageReport(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to get report: %w", err)
			}
			if jsonOutput {
				return p.JSON(report)
			}
			p.Report(r.Name, report)
			return nil
		}

		totals, err := r.CoverageTotals(ctx, opts)
		if err != nil {
			return fmt.Errorf("failed to get totals: %w", err)
		}
		if jsonOutput {
			return p.JSON(totals)
		}
		p.Totals(r.Name, totals)
		return nil
	}

	scope := codecov.Scope{Service: r.Service(), Owner: r.OwnerName(), Repo: r.Name}
	totals := make([]schema.CommitCoverageTotal, len(shas))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(totalsJobs, 1))

	for i, sha := range shas {
		c := codecov.UpgradeCommit(schema.Commit{BaseCommit: schema.BaseCommit{CommitID: sha}}, client, scope)
		g.Go(func() error {
			t, err := c.CoverageTotals(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to get totals of %s: %w", sha, err)
			}
			totals[i] = t
			logger.Debug().Str("sha", sha).Float64("coverage", t.Totals.Coverage).Msg("Fetched totals")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if jsonOutput {
		out := make(map[string]schema.CommitCoverageTotal, len(shas))
		for i, sha := range shas {
			out[sha] = totals[i]
		}
		return p.JSON(out)
	}
	for i, sha := range shas {
		p.Totals(fmt.Sprintf("%s @ %s", r.Name, sha), totals[i])
	}
	return nil
}
