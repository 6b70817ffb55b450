package codecov

import (
	"context"

	"github.com/s0up4200/codecovctl/schema"
)

// UsersService handles owner and user endpoints.
type UsersService service

// ServiceOwners lists the owners of a Git hosting service.
func (s *UsersService) ServiceOwners(ctx context.Context, svc schema.Service, opts *ListOptions) (*BoundPage[schema.Owner, *Owner], error) {
	if svc == "" {
		return nil, missing("service")
	}
	page, err := getPage(ctx, s.client, apiPath(string(svc)), opts, schema.ParseOwner)
	if err != nil {
		return nil, err
	}
	return Bind(page, UpgradeOwner, Scope{Service: svc}), nil
}

// OwnerDetail fetches a single owner.
func (s *UsersService) OwnerDetail(ctx context.Context, svc schema.Service, owner string) (*Owner, error) {
	if svc == "" {
		return nil, missing("service")
	}
	if owner == "" {
		return nil, missing("owner")
	}
	o, err := get(ctx, s.client, apiPath(string(svc), owner), nil, schema.ParseOwner)
	if err != nil {
		return nil, err
	}
	return UpgradeOwner(o, s.client, Scope{Service: svc}), nil
}

// List lists the users of an owner as plain records.
func (s *UsersService) List(ctx context.Context, svc schema.Service, owner string, opts *UserListOptions) (*Page[schema.User], error) {
	if svc == "" {
		return nil, missing("service")
	}
	if owner == "" {
		return nil, missing("owner")
	}
	return getPage(ctx, s.client, apiPath(string(svc), owner, "users"), opts, schema.ParseUser)
}

// Detail fetches a single user of an owner.
func (s *UsersService) Detail(ctx context.Context, svc schema.Service, owner, username string) (schema.User, error) {
	if svc == "" {
		return schema.User{}, missing("service")
	}
	if owner == "" {
		return schema.User{}, missing("owner")
	}
	if username == "" {
		return schema.User{}, missing("username")
	}
	return get(ctx, s.client, apiPath(string(svc), owner, "users", username), nil, schema.ParseUser)
}

// Owner is an API-bound owner.
type Owner struct {
	schema.Owner

	client *Client
}

func (o *Owner) username() (string, error) {
	if o.Service == "" {
		return "", missing("service")
	}
	if o.Username == nil || *o.Username == "" {
		return "", missing("username")
	}
	return *o.Username, nil
}

// Detail fetches a fresh copy of the owner.
func (o *Owner) Detail(ctx context.Context) (*Owner, error) {
	name, err := o.username()
	if err != nil {
		return nil, err
	}
	return o.client.Users.OwnerDetail(ctx, o.Service, name)
}

// Users lists the users of the owner.
func (o *Owner) Users(ctx context.Context, opts *UserListOptions) (*BoundPage[schema.User, *User], error) {
	name, err := o.username()
	if err != nil {
		return nil, err
	}
	page, err := o.client.Users.List(ctx, o.Service, name, opts)
	if err != nil {
		return nil, err
	}
	return Bind(page, UpgradeUser, Scope{Service: o.Service, Owner: name}), nil
}

// Repos lists the repositories of the owner.
func (o *Owner) Repos(ctx context.Context, opts *RepoListOptions) (*BoundPage[schema.Repo, *Repo], error) {
	name, err := o.username()
	if err != nil {
		return nil, err
	}
	page, err := o.client.Repos.List(ctx, o.Service, name, opts)
	if err != nil {
		return nil, err
	}
	return Bind(page, UpgradeRepo, Scope{Service: o.Service, Owner: name}), nil
}

// Repo returns a bound repository of the owner without fetching it.
func (o *Owner) Repo(name string) *Repo {
	owner := ""
	if o.Username != nil {
		owner = *o.Username
	}
	return o.client.Repo(o.Service, owner, name)
}

// User is an API-bound user, a member of some owner.
type User struct {
	schema.User

	owner  string
	client *Client
}

// OwnerName returns the username of the owner the user was listed under.
func (u *User) OwnerName() string {
	return u.owner
}

// Detail fetches a fresh copy of the user.
func (u *User) Detail(ctx context.Context) (*User, error) {
	if u.Username == nil || *u.Username == "" {
		return nil, missing("username")
	}
	detail, err := u.client.Users.Detail(ctx, u.Service, u.owner, *u.Username)
	if err != nil {
		return nil, err
	}
	return UpgradeUser(detail, u.client, Scope{Service: u.Service, Owner: u.owner}), nil
}
