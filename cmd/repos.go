package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/codecovctl/codecov"
	"github.com/s0up4200/codecovctl/filter"
	"github.com/s0up4200/codecovctl/schema"
)

var (
	// Command flags
	filterExpr string
	preset     string

	reposFlags  listFlags
	reposActive bool
	reposSearch string
	reposNames  []string

	showTokens bool
)

// reposCmd lists the repositories of an owner
var reposCmd = &cobra.Command{
	Use:   "repos [owner]",
	Short: "List repositories matching the filter criteria",
	Long: `List the repositories of an owner. Results can be narrowed with a filter
expression or a preset from the config, for example:

  codecovctl repos --filter 'Coverage < 70 && daysSince(Updated) < 30'
  codecovctl repos --preset low`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRepos,
}

var repoCmd = &cobra.Command{
	Use:   "repo <name>",
	Short: "Show a repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepo,
}

func init() {
	reposFlags.register(reposCmd)
	reposCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	reposCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	reposCmd.Flags().BoolVar(&reposActive, "active", false, "only repositories with coverage uploads")
	reposCmd.Flags().StringVar(&reposSearch, "search", "", "search by repository name")
	reposCmd.Flags().StringSliceVar(&reposNames, "names", nil, "only these repositories")

	repoCmd.Flags().BoolVar(&showTokens, "tokens", false, "show the upload and graph tokens instead")

	rootCmd.AddCommand(reposCmd, repoCmd)
}

// resolveFilter picks the filter from --preset, --filter or, when allowed,
// filter.default_expression. It returns nil when none is set.
func resolveFilter(useDefault bool) (*filter.Filter, error) {
	expr := filterExpr
	if expr == "" && preset == "" && useDefault {
		expr = cfg.Filter.DefaultExpression
	}
	f, err := filters.Resolve(preset, expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return f, nil
}

func applyFilter[T any](ctx context.Context, items []T, env func(T) map[string]any) ([]T, error) {
	return applyFilterDefault(ctx, items, env, false)
}

func applyFilterDefault[T any](ctx context.Context, items []T, env func(T) map[string]any, useDefault bool) ([]T, error) {
	f, err := resolveFilter(useDefault)
	if err != nil || f == nil {
		return items, err
	}

	logger.Debug().Str("filter", f.Expression()).Int("records", len(items)).Msg("Applying filter")
	return filter.Select(ctx, filters.Evaluator(), f, items, env)
}

func runRepos(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	svc, err := service()
	if err != nil {
		return err
	}
	name, err := owner(args)
	if err != nil {
		return err
	}

	// Compile before fetching so a bad expression fails fast
	if _, err := resolveFilter(true); err != nil {
		return err
	}

	opts := codecov.RepoListOptions{ListOptions: reposFlags.options(), Names: reposNames}
	if cmd.Flags().Changed("active") {
		opts.Active = codecov.Bool(reposActive)
	}
	if reposSearch != "" {
		opts.Search = codecov.String(reposSearch)
	}

	o := codecov.UpgradeOwner(schema.Owner{Service: svc, Username: &name}, client, codecov.Scope{})
	first, err := o.Repos(ctx, &opts)
	if err != nil {
		return fmt.Errorf("failed to list repositories of %s: %w", name, err)
	}

	bound, err := collectBound(ctx, first, reposFlags.all)
	if err != nil {
		return fmt.Errorf("failed to list repositories of %s: %w", name, err)
	}
	repos := make([]schema.Repo, len(bound))
	for i, r := range bound {
		repos[i] = r.Repo
	}

	repos, err = applyFilterDefault(ctx, repos, filter.RepoEnv, true)
	if err != nil {
		return err
	}

	p := newPrinter(cmd)
	if jsonOutput {
		return p.JSON(repos)
	}
	if len(repos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No repositories found matching the filter criteria.")
		return nil
	}
	if err := p.Repos(repos); err != nil {
		return err
	}
	footer(p, first.Plain(), len(repos), reposFlags.all)
	return nil
}

func runRepo(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	r, err := repo(args[0])
	if err != nil {
		return err
	}

	p := newPrinter(cmd)

	if showTokens {
		rc, err := r.Config(ctx)
		if err != nil {
			return fmt.Errorf("failed to get config of %s: %w", args[0], err)
		}
		if jsonOutput {
			return p.JSON(rc)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Upload token: %s\nGraph token:  %s\n", rc.UploadToken, rc.GraphToken)
		return nil
	}

	detail, err := r.Detail(ctx)
	if err != nil {
		return fmt.Errorf("failed to get repository %s: %w", args[0], err)
	}
	if jsonOutput {
		return p.JSON(detail.Repo)
	}
	p.Repo(detail.Repo)
	return nil
}
