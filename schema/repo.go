package schema

// Repo is a repository known to Codecov.
type Repo struct {
	Name        string       `json:"name"`
	Private     bool         `json:"private"`
	Updatestamp *Timestamp   `json:"updatestamp"`
	Author      Owner        `json:"author"`
	Language    *Language    `json:"language"`
	Branch      string       `json:"branch"`
	Active      *bool        `json:"active"`
	Activated   *bool        `json:"activated"`
	Totals      *CommitTotal `json:"totals"`
}

// RepoConfig holds the tokens of a repository.
type RepoConfig struct {
	UploadToken string `json:"upload_token"`
	GraphToken  string `json:"graph_token"`
}

// ParseRepo decodes a Repo.
func ParseRepo(data []byte) (Repo, error) {
	return decode[Repo]("repo", data)
}

// ParseRepoConfig decodes a RepoConfig.
func ParseRepoConfig(data []byte) (RepoConfig, error) {
	return decode[RepoConfig]("repo config", data)
}
