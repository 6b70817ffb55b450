package schema

// Pull is a pull request tracked by Codecov.
type Pull struct {
	PullID      int          `json:"pullid"`
	Title       *string      `json:"title"`
	BaseTotals  *CommitTotal `json:"base_totals"`
	HeadTotals  *CommitTotal `json:"head_totals"`
	Updatestamp *Timestamp   `json:"updatestamp"`
	State       PullState    `json:"state"`
	CIPassed    *bool        `json:"ci_passed"`
	Author      *Owner       `json:"author"`
}

// ParsePull decodes a Pull.
func ParsePull(data []byte) (Pull, error) {
	return decode[Pull]("pull", data)
}
