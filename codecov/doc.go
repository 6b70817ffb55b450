// Package codecov provides a client for the Codecov REST API v2.
//
// Responses are decoded into the plain records of package schema. List
// endpoints return a *Page that can walk to its neighbours through the
// next and previous links sent by the API. Pages of owners, users,
// repositories, branches and commits are additionally bound to the client
// as a *BoundPage whose results are live wrappers able to issue further
// requests scoped to themselves.
//
// # Usage
//
//	client, err := codecov.NewClient(os.Getenv("CODECOV_API_TOKEN"),
//		codecov.WithLogger(logger),
//		codecov.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	owner, err := client.Users.OwnerDetail(ctx, schema.ServiceGitHub, "kiraware")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	repos, err := owner.Repos(ctx, &codecov.RepoListOptions{Active: codecov.Bool(true)})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = codecov.WalkBound(ctx, repos, func(r *codecov.Repo) error {
//		fmt.Println(r.Name)
//		return nil
//	})
//
// # Error Handling
//
// The package defines the following errors:
//
//   - ErrInvalidConfig: Invalid client configuration
//   - ErrMissingIdentifier: A wrapper lacks a field needed to build a request path
//   - APIError: Non-2xx responses, carrying the status code and the error body
//
// API errors include helper methods for classification:
//
//	var apiErr *codecov.APIError
//	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
//		// Handle missing resource
//	}
package codecov
