package format

import (
	"strconv"

	"github.com/cli/go-gh/v2/pkg/tableprinter"

	"github.com/s0up4200/codecovctl/schema"
)

// Owners prints a table of owners.
func (p *Printer) Owners(owners []schema.Owner) error {
	t := p.table("SERVICE", "USERNAME", "NAME")
	for _, o := range owners {
		t.AddField(o.Service.String())
		t.AddField(orDash(o.Username))
		t.AddField(orDash(o.Name))
		t.EndRow()
	}
	return t.Render()
}

// Users prints a table of users.
func (p *Printer) Users(users []schema.User) error {
	t := p.table("USERNAME", "NAME", "EMAIL", "ACTIVATED", "ADMIN")
	for _, u := range users {
		t.AddField(orDash(u.Username))
		t.AddField(orDash(u.Name))
		t.AddField(orDash(u.Email))
		t.AddField(boolField(u.Activated))
		t.AddField(boolField(u.IsAdmin))
		t.EndRow()
	}
	return t.Render()
}

// Repos prints a table of repositories.
func (p *Printer) Repos(repos []schema.Repo) error {
	t := p.table("NAME", "LANGUAGE", "BRANCH", "ACTIVE", "PRIVATE", "COVERAGE", "UPDATED")
	for _, r := range repos {
		t.AddField(r.Name)
		if r.Language != nil {
			t.AddField(string(*r.Language))
		} else {
			t.AddField("-")
		}
		t.AddField(r.Branch)
		t.AddField(boolField(r.Active))
		t.AddField(strconv.FormatBool(r.Private))
		p.addCoverage(t, r.Totals)
		if r.Updatestamp != nil {
			t.AddField(date(r.Updatestamp.Time))
		} else {
			t.AddField("-")
		}
		t.EndRow()
	}
	return t.Render()
}

// Branches prints a table of branches.
func (p *Printer) Branches(branches []schema.Branch) error {
	t := p.table("NAME", "UPDATED")
	for _, b := range branches {
		t.AddField(b.Name)
		t.AddField(date(b.Updatestamp.Time))
		t.EndRow()
	}
	return t.Render()
}

// Commits prints a table of commits.
func (p *Printer) Commits(commits []schema.Commit) error {
	t := p.table("SHA", "BRANCH", "STATE", "CI", "COVERAGE", "DATE", "MESSAGE")
	for _, c := range commits {
		t.AddField(shortSHA(c.CommitID))
		t.AddField(orDash(c.Branch))
		if c.State != nil {
			t.AddField(c.State.String())
		} else {
			t.AddField("-")
		}
		t.AddField(boolField(c.CIPassed))
		p.addCoverage(t, c.Totals)
		t.AddField(date(c.Timestamp.Time))
		t.AddField(firstLine(c.Message))
		t.EndRow()
	}
	return t.Render()
}

// Pulls prints a table of pull requests.
func (p *Printer) Pulls(pulls []schema.Pull) error {
	t := p.table("ID", "STATE", "BASE", "HEAD", "TITLE")
	for _, pr := range pulls {
		t.AddField("#" + strconv.Itoa(pr.PullID))
		t.AddField(string(pr.State))
		p.addCoverage(t, pr.BaseTotals)
		p.addCoverage(t, pr.HeadTotals)
		t.AddField(orDash(pr.Title))
		t.EndRow()
	}
	return t.Render()
}

// Flags prints a table of flags.
func (p *Printer) Flags(flags []schema.Flag) error {
	t := p.table("FLAG")
	for _, f := range flags {
		t.AddField(f.FlagName)
		t.EndRow()
	}
	return t.Render()
}

// Components prints a table of components.
func (p *Printer) Components(components []schema.Component) error {
	t := p.table("ID", "NAME")
	for _, c := range components {
		t.AddField(c.ComponentID)
		t.AddField(c.Name)
		t.EndRow()
	}
	return t.Render()
}

// Trend prints a coverage time series.
func (p *Printer) Trend(points []schema.CoverageTrend) error {
	t := p.table("TIMESTAMP", "MIN", "MAX", "AVG")
	for _, pt := range points {
		t.AddField(date(pt.Timestamp.Time))
		t.AddField(Percent(pt.Min))
		t.AddField(Percent(pt.Max))
		t.AddField(Percent(pt.Avg), tableprinter.WithColor(paint(p.coverageColor(pt.Avg))))
		t.EndRow()
	}
	return t.Render()
}
