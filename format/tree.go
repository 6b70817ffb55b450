package format

import (
	"fmt"
	"strings"

	"github.com/s0up4200/codecovctl/schema"
)

const (
	branchMid  = "├── "
	branchLast = "╰── "
	indentMid  = "│   "
	indentLast = "    "
)

// node is one entry of a tree listing: a heading plus detail lines.
type node struct {
	title string
	lines []string
}

func (p *Printer) tree(heading string, nodes []node) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s\n\n", p.bold.Sprint(heading))

	for i, n := range nodes {
		isLast := i == len(nodes)-1
		prefix, indent := branchMid, indentMid
		if isLast {
			prefix, indent = branchLast, indentLast
		}

		sb.WriteString(prefix + n.title + "\n")
		for _, line := range n.lines {
			sb.WriteString(indent + line + "\n")
		}

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	fmt.Fprint(p.w, sb.String())
}

func (p *Printer) totalsLine(t schema.BaseTotal) string {
	return fmt.Sprintf("Coverage: %s | Lines: %d | Hits: %d | Misses: %d | Partials: %d",
		p.Coverage(t.Coverage), t.Lines, t.Hits, t.Misses, t.Partials)
}

// delta formats head minus base as a signed percentage.
func (p *Printer) delta(base, head float64) string {
	d := head - base
	s := fmt.Sprintf("%+.2f%%", d)
	switch {
	case d < 0:
		return p.red.Sprint(s)
	case d > 0:
		return p.green.Sprint(s)
	default:
		return s
	}
}

// Repo prints the details of one repository.
func (p *Printer) Repo(r schema.Repo) {
	var lines []string
	if r.Language != nil {
		lines = append(lines, "Language: "+string(*r.Language))
	}
	lines = append(lines, "Default branch: "+r.Branch)

	var status []string
	if r.Private {
		status = append(status, "private")
	}
	if r.Active != nil && *r.Active {
		status = append(status, "active")
	}
	if r.Activated != nil && *r.Activated {
		status = append(status, "activated")
	}
	if len(status) > 0 {
		lines = append(lines, "Status: "+strings.Join(status, ", "))
	}
	if r.Updatestamp != nil {
		lines = append(lines, "Updated: "+date(r.Updatestamp.Time))
	}
	if r.Totals != nil {
		lines = append(lines, p.totalsLine(r.Totals.BaseTotal))
	}

	owner := orDash(r.Author.Username)
	p.tree(fmt.Sprintf("Repository %s/%s", owner, r.Name), []node{{title: r.Name, lines: lines}})
}

// Commit prints one commit together with its per-file report.
func (p *Printer) Commit(c schema.CommitDetail) {
	lines := []string{"Date: " + date(c.Timestamp.Time)}
	if c.Branch != nil {
		lines = append(lines, "Branch: "+*c.Branch)
	}
	if c.Author != nil && c.Author.Username != nil {
		lines = append(lines, "Author: "+*c.Author.Username)
	}
	if c.State != nil {
		lines = append(lines, "State: "+c.State.String())
	}
	lines = append(lines, "Message: "+firstLine(c.Message))
	lines = append(lines, p.totalsLine(c.Report.Totals.BaseTotal))

	nodes := []node{{title: c.CommitID, lines: lines}}
	for _, f := range c.Report.Files {
		nodes = append(nodes, node{title: f.Name, lines: []string{p.totalsLine(f.Totals.BaseTotal)}})
	}
	p.tree("Commit "+shortSHA(c.CommitID), nodes)
}

// Totals prints a coverage summary with one node per file.
func (p *Printer) Totals(heading string, t schema.CommitCoverageTotal) {
	nodes := []node{{title: "Total", lines: []string{p.totalsLine(t.Totals.BaseTotal)}}}
	for _, f := range t.Files {
		nodes = append(nodes, node{title: f.Name, lines: []string{p.totalsLine(f.Totals.BaseTotal)}})
	}
	p.tree(heading, nodes)
}

// Report prints line-level coverage for each file.
func (p *Printer) Report(heading string, r schema.CommitCoverageReport) {
	nodes := make([]node, 0, len(r.Files))
	for _, f := range r.Files {
		lines := []string{p.totalsLine(f.Totals.BaseTotal)}
		if missed := missedLines(f.LineCoverage); missed != "" {
			lines = append(lines, "Missed: "+missed)
		}
		nodes = append(nodes, node{title: f.Name, lines: lines})
	}
	p.tree(heading, nodes)
}

// missedLines collapses uncovered line numbers into ranges like "3-5, 9".
func missedLines(lines []schema.Line) string {
	var parts []string
	start, prev := -1, -1
	flush := func() {
		if start < 0 {
			return
		}
		if start == prev {
			parts = append(parts, fmt.Sprint(start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, prev))
		}
	}
	for _, l := range lines {
		if l.Coverage != schema.CoverageMiss {
			continue
		}
		if start >= 0 && l.Number == prev+1 {
			prev = l.Number
			continue
		}
		flush()
		start, prev = l.Number, l.Number
	}
	flush()
	return strings.Join(parts, ", ")
}

// Comparison prints the totals and per-file changes between two commits.
func (p *Printer) Comparison(c schema.CommitComparison) {
	head := []string{
		fmt.Sprintf("Base: %s  Head: %s", shortSHA(c.BaseCommit), shortSHA(c.HeadCommit)),
		fmt.Sprintf("Coverage: %s -> %s (%s)",
			p.Coverage(c.Totals.Base.Coverage), p.Coverage(c.Totals.Head.Coverage),
			p.delta(c.Totals.Base.Coverage, c.Totals.Head.Coverage)),
	}
	if c.Totals.Patch != nil {
		head = append(head, "Patch: "+p.Coverage(c.Totals.Patch.Coverage))
	}
	if n := len(c.Diff.GitCommits); n > 0 {
		head = append(head, fmt.Sprintf("Commits: %d", n))
	}
	if c.HasUnmergedBaseCommits {
		head = append(head, p.yellow.Sprint("Base has unmerged commits"))
	}

	nodes := []node{{title: "Summary", lines: head}}
	for _, f := range c.Files {
		nodes = append(nodes, node{title: fileName(f.Name), lines: p.fileChange(f)})
	}
	p.tree("Comparison", nodes)
}

func (p *Printer) fileChange(f schema.FileComparison) []string {
	lines := []string{fmt.Sprintf("Coverage: %s -> %s (%s)",
		p.Coverage(f.Totals.Base.Coverage), p.Coverage(f.Totals.Head.Coverage),
		p.delta(f.Totals.Base.Coverage, f.Totals.Head.Coverage))}
	if f.Stats != nil {
		lines = append(lines, fmt.Sprintf("Diff: +%d -%d", f.Stats.Added, f.Stats.Removed))
	}
	return lines
}

func fileName(n schema.FileNameComparison) string {
	switch {
	case n.Head != nil && n.Base != nil && *n.Head != *n.Base:
		return *n.Base + " -> " + *n.Head
	case n.Head != nil:
		return *n.Head
	case n.Base != nil:
		return *n.Base + " (removed)"
	default:
		return "-"
	}
}

// GroupComparison is a component or flag comparison reduced to its name.
type GroupComparison struct {
	Name string
	Base schema.ReportTotal
	Head schema.ReportTotal
	Diff *schema.ReportTotal
}

// ComponentComparisons adapts component comparisons for Groups.
func ComponentComparisons(in []schema.ComponentComparison) []GroupComparison {
	out := make([]GroupComparison, len(in))
	for i, c := range in {
		out[i] = GroupComparison{Name: c.Name, Base: c.BaseReportTotals, Head: c.HeadReportTotals, Diff: c.DiffTotals}
	}
	return out
}

// FlagComparisons adapts flag comparisons for Groups.
func FlagComparisons(in []schema.FlagComparison) []GroupComparison {
	out := make([]GroupComparison, len(in))
	for i, c := range in {
		out[i] = GroupComparison{Name: c.Name, Base: c.BaseReportTotals, Head: c.HeadReportTotals, Diff: c.DiffTotals}
	}
	return out
}

// Groups prints per component or per flag coverage changes.
func (p *Printer) Groups(heading string, groups []GroupComparison) {
	if len(groups) == 0 {
		fmt.Fprintln(p.w, "No results")
		return
	}
	nodes := make([]node, 0, len(groups))
	for _, g := range groups {
		lines := []string{fmt.Sprintf("Coverage: %s -> %s (%s)",
			p.Coverage(g.Base.Coverage), p.Coverage(g.Head.Coverage), p.delta(g.Base.Coverage, g.Head.Coverage))}
		if g.Diff != nil {
			lines = append(lines, "Patch: "+p.Coverage(g.Diff.Coverage))
		}
		nodes = append(nodes, node{title: g.Name, lines: lines})
	}
	p.tree(heading, nodes)
}

// File prints the comparison of a single file, listing changed lines.
func (p *Printer) File(f schema.FileComparison) {
	lines := p.fileChange(f)
	for _, l := range f.Lines {
		if !l.IsDiff || (!l.Added && !l.Removed) {
			continue
		}
		sign, c, num := "+", p.green, l.Number.Head
		if l.Removed {
			sign, c, num = "-", p.red, l.Number.Base
		}
		n := "?"
		if num != nil {
			n = fmt.Sprint(*num)
		}
		lines = append(lines, c.Sprintf("%s %4s %s", sign, n, l.Value))
	}
	p.tree("File", []node{{title: fileName(f.Name), lines: lines}})
}
