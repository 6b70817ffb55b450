package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/s0up4200/codecovctl/codecov"
	"github.com/s0up4200/codecovctl/format"
)

// listFlags are the pagination flags shared by list commands.
type listFlags struct {
	page     int
	pageSize int
	all      bool
}

func (l *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&l.page, "page", 0, "page number to fetch")
	cmd.Flags().IntVar(&l.pageSize, "page-size", 0, "results per page (default from output.page_size)")
	cmd.Flags().BoolVarP(&l.all, "all", "a", false, "follow next links and fetch every page")
}

func (l *listFlags) options() codecov.ListOptions {
	var opts codecov.ListOptions
	if l.page > 0 {
		opts.Page = codecov.Int(l.page)
	}
	size := l.pageSize
	if size <= 0 {
		size = cfg.Output.PageSize
	}
	opts.PageSize = codecov.Int(size)
	return opts
}

// collect returns the results of first, or of every page when all is set.
func collect[T any](ctx context.Context, first *codecov.Page[T], all bool) ([]T, error) {
	if !all {
		return first.Results, nil
	}
	return codecov.Collect(ctx, first)
}

// collectBound is collect for bound pages.
func collectBound[T, A any](ctx context.Context, first *codecov.BoundPage[T, A], all bool) ([]A, error) {
	if !all {
		return first.Results, nil
	}
	return codecov.CollectBound(ctx, first)
}

// footer prints the pagination summary unless every page was fetched.
func footer[T any](p *format.Printer, first *codecov.Page[T], shown int, all bool) {
	if all {
		return
	}
	p.PageFooter(shown, first.Count, first.TotalPages, first.HasNext())
}
