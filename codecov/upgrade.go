package codecov

import "github.com/s0up4200/codecovctl/schema"

// Scope is the fixed context handed to every upgrade of a bound page:
// the identifiers a result needs to build its own request paths but
// does not carry in its own fields.
type Scope struct {
	Service schema.Service
	Owner   string
	Repo    string
}

// UpgradeFunc turns a plain result into its API-bound form.
type UpgradeFunc[T, A any] func(item T, c *Client, scope Scope) A

// UpgradeOwner binds an owner. Owners carry their own service and username.
func UpgradeOwner(o schema.Owner, c *Client, _ Scope) *Owner {
	return &Owner{Owner: o, client: c}
}

// UpgradeUser binds a user listed under scope.Owner.
func UpgradeUser(u schema.User, c *Client, scope Scope) *User {
	return &User{User: u, owner: scope.Owner, client: c}
}

// UpgradeRepo binds a repository listed under scope.Service and scope.Owner.
// When the scope is empty the repository author fills in.
func UpgradeRepo(r schema.Repo, c *Client, scope Scope) *Repo {
	svc, owner := scope.Service, scope.Owner
	if svc == "" {
		svc = r.Author.Service
	}
	if owner == "" && r.Author.Username != nil {
		owner = *r.Author.Username
	}
	return &Repo{Repo: r, service: svc, owner: owner, client: c}
}

// UpgradeBranch binds a branch of the repository named by scope.
func UpgradeBranch(b schema.Branch, c *Client, scope Scope) *Branch {
	return &Branch{Branch: b, scope: scope, client: c}
}

// UpgradeCommit binds a commit of the repository named by scope.
func UpgradeCommit(cm schema.Commit, c *Client, scope Scope) *Commit {
	return &Commit{Commit: cm, scope: scope, client: c}
}
