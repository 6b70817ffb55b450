package codecov

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/codecovctl/schema"
)

func TestOwnerUsers(t *testing.T) {
	client, _ := newTestClient(t, "token", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/github/kiraware/":
			json.NewEncoder(w).Encode(map[string]any{"service": "github", "username": "kiraware", "name": "Kira"})
		case "/api/v2/github/kiraware/users/":
			assert.Equal(t, "activated=true&page=1", r.URL.RawQuery)
			json.NewEncoder(w).Encode(map[string]any{
				"count":    1,
				"next":     nil,
				"previous": nil,
				"results": []map[string]any{{
					"service":   "github",
					"username":  "kiraware",
					"name":      "Kira",
					"activated": true,
					"is_admin":  true,
					"email":     nil,
				}},
				"total_pages": 1,
			})
		case "/api/v2/github/kiraware/users/kiraware/":
			json.NewEncoder(w).Encode(map[string]any{
				"service":   "github",
				"username":  "kiraware",
				"name":      "Kira",
				"activated": true,
				"is_admin":  false,
				"email":     "kira@example.com",
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	owner, err := client.Users.OwnerDetail(ctx, schema.ServiceGitHub, "kiraware")
	require.NoError(t, err)

	detail, err := owner.Detail(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Kira", *detail.Name)

	users, err := owner.Users(ctx, &UserListOptions{
		Activated:   Bool(true),
		ListOptions: ListOptions{Page: Int(1)},
	})
	require.NoError(t, err)
	require.Len(t, users.Results, 1)
	assert.Equal(t, Scope{Service: schema.ServiceGitHub, Owner: "kiraware"}, users.Scope())

	user := users.Results[0]
	assert.Equal(t, "kiraware", user.OwnerName())
	assert.True(t, *user.IsAdmin)

	fresh, err := user.Detail(ctx)
	require.NoError(t, err)
	assert.False(t, *fresh.IsAdmin)
	assert.Equal(t, "kira@example.com", *fresh.Email)
}

func TestUserListQuery(t *testing.T) {
	tests := []struct {
		name string
		opts *UserListOptions
		want string
	}{
		{name: "nil options", opts: nil, want: ""},
		{name: "empty options", opts: &UserListOptions{}, want: ""},
		{
			name: "false is sent",
			opts: &UserListOptions{IsAdmin: Bool(false)},
			want: "is_admin=false",
		},
		{
			name: "all parameters",
			opts: &UserListOptions{
				Activated:   Bool(true),
				IsAdmin:     Bool(true),
				Search:      String("kira"),
				ListOptions: ListOptions{Page: Int(2), PageSize: Int(50)},
			},
			want: "activated=true&is_admin=true&page=2&page_size=50&search=kira",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.want, r.URL.RawQuery)
				w.Write([]byte(`{"count":0,"next":null,"previous":null,"results":[],"total_pages":0}`))
			})

			page, err := client.Users.List(context.Background(), schema.ServiceGitHub, "kiraware", tt.opts)
			require.NoError(t, err)
			assert.Empty(t, page.Results)
		})
	}
}

func TestOwnerErrorBody(t *testing.T) {
	client, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"msg"}`))
	})

	owner := UpgradeOwner(schema.Owner{Service: schema.ServiceGitHub, Username: String("kiraware")}, client, Scope{})
	_, err := owner.Users(context.Background(), nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, map[string]any{"error": "msg"}, apiErr.Content)
	assert.Contains(t, err.Error(), "msg")
}
