package filter

import (
	"time"

	"github.com/s0up4200/codecovctl/schema"
)

// RepoEnv exposes a repository to filter expressions.
//
// Fields: Name, Private, Active, Activated, Language, Branch, Owner,
// Service, Updated, Totals (nil when unknown), Coverage, Lines, Hits,
// Misses, Partials, Files.
func RepoEnv(r schema.Repo) map[string]any {
	env := map[string]any{
		"Name":      r.Name,
		"Private":   r.Private,
		"Active":    deref(r.Active),
		"Activated": deref(r.Activated),
		"Language":  "",
		"Branch":    r.Branch,
		"Owner":     deref(r.Author.Username),
		"Service":   string(r.Author.Service),
		"Updated":   time.Time{},
	}
	if r.Language != nil {
		env["Language"] = string(*r.Language)
	}
	if r.Updatestamp != nil {
		env["Updated"] = r.Updatestamp.Time
	}
	addTotals(env, r.Totals)
	return env
}

// CommitEnv exposes a commit to filter expressions.
//
// Fields: SHA, Message, Branch, Author, State, CIPassed, Timestamp,
// Parent, Totals, Coverage, Lines, Hits, Misses, Partials, Files.
func CommitEnv(c schema.Commit) map[string]any {
	env := map[string]any{
		"SHA":       c.CommitID,
		"Message":   deref(c.Message),
		"Branch":    deref(c.Branch),
		"Author":    "",
		"State":     "",
		"CIPassed":  deref(c.CIPassed),
		"Timestamp": c.Timestamp.Time,
		"Parent":    deref(c.Parent),
	}
	if c.Author != nil {
		env["Author"] = deref(c.Author.Username)
	}
	if c.State != nil {
		env["State"] = string(*c.State)
	}
	addTotals(env, c.Totals)
	return env
}

// OwnerEnv exposes an owner to filter expressions.
//
// Fields: Service, Username, Name.
func OwnerEnv(o schema.Owner) map[string]any {
	return map[string]any{
		"Service":  string(o.Service),
		"Username": deref(o.Username),
		"Name":     deref(o.Name),
	}
}

func addTotals(env map[string]any, t *schema.CommitTotal) {
	if t == nil {
		env["Totals"] = nil
		env["Coverage"] = 0.0
		env["Lines"], env["Hits"], env["Misses"], env["Partials"], env["Files"] = 0, 0, 0, 0, 0
		return
	}
	env["Totals"] = *t
	env["Coverage"] = t.Coverage
	env["Lines"] = t.Lines
	env["Hits"] = t.Hits
	env["Misses"] = t.Misses
	env["Partials"] = t.Partials
	env["Files"] = t.Files
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
