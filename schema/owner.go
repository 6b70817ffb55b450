package schema

// Owner is an account (user or organization) on a Git hosting service.
type Owner struct {
	Service  Service `json:"service"`
	Username *string `json:"username"`
	Name     *string `json:"name"`
}

// User is an Owner seen as a member of another owner.
type User struct {
	Owner
	Activated *bool   `json:"activated"`
	IsAdmin   *bool   `json:"is_admin"`
	Email     *string `json:"email"`
}

// GitAuthor is the author recorded on a Git commit.
type GitAuthor struct {
	ID       int     `json:"id"`
	Username *string `json:"username"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
}

// ParseOwner decodes an Owner.
func ParseOwner(data []byte) (Owner, error) {
	return decode[Owner]("owner", data)
}

// ParseUser decodes a User.
func ParseUser(data []byte) (User, error) {
	return decode[User]("user", data)
}

// ParseGitAuthor decodes a GitAuthor.
func ParseGitAuthor(data []byte) (GitAuthor, error) {
	return decode[GitAuthor]("git author", data)
}
