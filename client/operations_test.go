package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessgraph/domain"
)

func respondJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// === Closure flag ===

func TestClosureFlag_CallerValuePassedThrough(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		respondJSON(w, `[]`)
	}))

	_, err := c.GetGroupToGroupMappings(context.Background(), "ops", false)
	require.NoError(t, err)
	assert.Equal(t, "includeIndirectMappings=false", gotQuery)

	_, err = c.GetGroupToGroupMappings(context.Background(), "ops", true)
	require.NoError(t, err)
	assert.Equal(t, "includeIndirectMappings=true", gotQuery)
}

func TestClosureFlag_DirectOnlyGettersHardCodeFalse(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		respondJSON(w, `[]`)
	}))

	_, err := c.GetUserToApplicationComponentAndAccessLevelMappings(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "includeIndirectMappings=false", gotQuery)

	_, err = c.GetUserToEntityMappings(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "includeIndirectMappings=false", gotQuery)
}

func TestClosureFlag_AccessibleByAlwaysTrue(t *testing.T) {
	var gotQuery, gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		respondJSON(w, `[]`)
	}))

	_, err := c.GetApplicationComponentsAccessibleByUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/userToApplicationComponentAndAccessLevelMappings/user/alice", gotPath)
	assert.Equal(t, "includeIndirectMappings=true", gotQuery)

	_, err = c.GetEntitiesAccessibleByGroup(context.Background(), "ops")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/groupToEntityMappings/group/ops", gotPath)
	assert.Equal(t, "includeIndirectMappings=true", gotQuery)
}

// === Set semantics of the accessible-by family ===

func TestAccessibleBy_DuplicatesEliminated(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, `[
			{"user":"alice","applicationComponent":"orders","accessLevel":"view"},
			{"user":"alice","applicationComponent":"orders","accessLevel":"view"},
			{"user":"alice","applicationComponent":"orders","accessLevel":"modify"}
		]`)
	}))

	pairs, err := c.GetApplicationComponentsAccessibleByUser(context.Background(), "alice")
	require.NoError(t, err)

	assert.ElementsMatch(t, []domain.ComponentAndAccessLevel[string, string]{
		{ApplicationComponent: "orders", AccessLevel: "view"},
		{ApplicationComponent: "orders", AccessLevel: "modify"},
	}, pairs)
}

func TestAccessibleBy_EntityDuplicatesEliminated(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, `[
			{"user":"alice","entityType":"clients","entity":"acme"},
			{"user":"alice","entityType":"clients","entity":"acme"},
			{"user":"alice","entityType":"clients","entity":"initech"}
		]`)
	}))

	entities, err := c.GetEntitiesAccessibleByUser(context.Background(), "alice")
	require.NoError(t, err)

	assert.ElementsMatch(t, []domain.EntityTypeAndEntity{
		{EntityType: "clients", Entity: "acme"},
		{EntityType: "clients", Entity: "initech"},
	}, entities)
}

func TestAccessibleByForType_DuplicatesEliminated(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, `[
			{"entity":"acme"},
			{"entity":"acme"},
			{"entity":"initech"}
		]`)
	}))

	entities, err := c.GetEntitiesAccessibleByUserForType(context.Background(), "alice", "clients")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"acme", "initech"}, entities)
}

// === Typed result decoding ===

func TestMappingResults_DecodedByOtherSideField(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, `[{"user":"alice","group":"ops"},{"user":"alice","group":"dev"}]`)
	}))

	groups, err := c.GetUserToGroupMappings(context.Background(), "alice", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"ops", "dev"}, groups)
}

func TestMappingResults_ReverseSideDecoded(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, `[{"user":"alice","group":"ops"},{"user":"bob","group":"ops"}]`)
	}))

	users, err := c.GetGroupToUserMappings(context.Background(), "ops", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, users)
}

func TestTypedAxes_NonStringIdentifiers(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		respondJSON(w, `["1","2","42"]`)
	}))
	t.Cleanup(srv.Close)

	// Users are int64, everything else string.
	c, err := New[int64, string, string, string](srv.URL,
		domain.Int64Stringifier{},
		domain.StringStringifier{},
		domain.StringStringifier{},
		domain.StringStringifier{})
	require.NoError(t, err)

	users, err := c.Users(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 42}, users)
	assert.Equal(t, "/api/v1/users", gotPath)

	err = c.AddUser(context.Background(), 42)
	require.Error(t, err) // status 200 from respondJSON is not 201
	assert.Equal(t, "/api/v1/users/42", gotPath)
}

func TestAccessCheck_BareBooleanBody(t *testing.T) {
	var gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		respondJSON(w, `true`)
	}))

	hasAccess, err := c.HasAccessToApplicationComponent(context.Background(), "alice", "orders", "view")
	require.NoError(t, err)
	assert.True(t, hasAccess)
	assert.Equal(t, "/api/v1/dataElementAccess/applicationComponent/user/alice/applicationComponent/orders/accessLevel/view", gotPath)

	hasAccess, err = c.HasAccessToEntity(context.Background(), "alice", "clients", "acme")
	require.NoError(t, err)
	assert.True(t, hasAccess)
	assert.Equal(t, "/api/v1/dataElementAccess/entity/user/alice/entityType/clients/entity/acme", gotPath)
}

// === End-to-end creation ===

func TestAddUser_IssuesExactlyOnePost(t *testing.T) {
	type request struct {
		method string
		path   string
	}
	var requests []request

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, request{method: r.Method, path: r.URL.Path})
		w.WriteHeader(http.StatusCreated)
	}))

	err := c.AddUser(context.Background(), "alice")
	require.NoError(t, err)

	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPost, requests[0].method)
	assert.Equal(t, "/api/v1/users/alice", requests[0].path)
}
