package accesstest_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessgraph/client"
	"accessgraph/domain"
	"accessgraph/pkg/accesstest"
)

func newClientAndServer(t *testing.T) *client.Client[string, string, string, string] {
	t.Helper()
	srv := httptest.NewServer(accesstest.New())
	t.Cleanup(srv.Close)

	c, err := client.NewStringClient(srv.URL)
	require.NoError(t, err)
	return c
}

// seedGraph builds: alice → dev → ops, bob → ops; ops holds
// orders/modify; ops holds entity clients/acme.
func seedGraph(ctx context.Context, t *testing.T, c *client.Client[string, string, string, string]) {
	t.Helper()
	for _, u := range []string{"alice", "bob"} {
		require.NoError(t, c.AddUser(ctx, u))
	}
	for _, g := range []string{"dev", "ops"} {
		require.NoError(t, c.AddGroup(ctx, g))
	}
	require.NoError(t, c.AddUserToGroupMapping(ctx, "alice", "dev"))
	require.NoError(t, c.AddUserToGroupMapping(ctx, "bob", "ops"))
	require.NoError(t, c.AddGroupToGroupMapping(ctx, "dev", "ops"))
	require.NoError(t, c.AddGroupToApplicationComponentAndAccessLevelMapping(ctx, "ops", "orders", "modify"))
	require.NoError(t, c.AddEntityType(ctx, "clients"))
	require.NoError(t, c.AddEntity(ctx, "clients", "acme"))
	require.NoError(t, c.AddGroupToEntityMapping(ctx, "ops", "clients", "acme"))
}

// === Round trips ===

func TestIntegration_NodeLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newClientAndServer(t)

	exists, err := c.ContainsUser(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, c.AddUser(ctx, "alice"))

	exists, err = c.ContainsUser(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	users, err := c.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, users)

	require.NoError(t, c.RemoveUser(ctx, "alice"))

	users, err = c.Users(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestIntegration_ClosureQueries(t *testing.T) {
	ctx := context.Background()
	c := newClientAndServer(t)
	seedGraph(ctx, t, c)

	direct, err := c.GetUserToGroupMappings(ctx, "alice", false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"dev"}, direct)

	all, err := c.GetUserToGroupMappings(ctx, "alice", true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"dev", "ops"}, all)

	members, err := c.GetGroupToUserMappings(ctx, "ops", true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, members)

	parents, err := c.GetGroupToGroupReverseMappings(ctx, "ops", true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"dev"}, parents)
}

func TestIntegration_AccessChecks(t *testing.T) {
	ctx := context.Background()
	c := newClientAndServer(t)
	seedGraph(ctx, t, c)

	hasAccess, err := c.HasAccessToApplicationComponent(ctx, "alice", "orders", "modify")
	require.NoError(t, err)
	assert.True(t, hasAccess, "alice inherits orders/modify via dev → ops")

	hasAccess, err = c.HasAccessToApplicationComponent(ctx, "alice", "orders", "delete")
	require.NoError(t, err)
	assert.False(t, hasAccess)

	hasAccess, err = c.HasAccessToEntity(ctx, "bob", "clients", "acme")
	require.NoError(t, err)
	assert.True(t, hasAccess)
}

func TestIntegration_AccessibleBySets(t *testing.T) {
	ctx := context.Background()
	c := newClientAndServer(t)
	seedGraph(ctx, t, c)

	// alice holds orders/view directly and inherits orders/modify.
	require.NoError(t, c.AddUserToApplicationComponentAndAccessLevelMapping(ctx, "alice", "orders", "view"))

	pairs, err := c.GetApplicationComponentsAccessibleByUser(ctx, "alice")
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.ComponentAndAccessLevel[string, string]{
		{ApplicationComponent: "orders", AccessLevel: "view"},
		{ApplicationComponent: "orders", AccessLevel: "modify"},
	}, pairs)

	entities, err := c.GetEntitiesAccessibleByUser(ctx, "alice")
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.EntityTypeAndEntity{
		{EntityType: "clients", Entity: "acme"},
	}, entities)

	names, err := c.GetEntitiesAccessibleByUserForType(ctx, "alice", "clients")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"acme"}, names)
}

func TestIntegration_ReverseMappings(t *testing.T) {
	ctx := context.Background()
	c := newClientAndServer(t)
	seedGraph(ctx, t, c)

	users, err := c.GetApplicationComponentAndAccessLevelToUserMappings(ctx, "orders", "modify", true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, users)

	groups, err := c.GetApplicationComponentAndAccessLevelToGroupMappings(ctx, "orders", "modify", true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ops", "dev"}, groups)

	users, err = c.GetEntityToUserMappings(ctx, "clients", "acme", true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, users)
}

// === Typed errors across a real HTTP stack ===

func TestIntegration_ElementNotFoundErrors(t *testing.T) {
	ctx := context.Background()
	c := newClientAndServer(t)

	err := c.RemoveUser(ctx, "ghost")
	var elementNotFound *domain.ElementNotFoundError
	require.ErrorAs(t, err, &elementNotFound)
	assert.Equal(t, "User", elementNotFound.ElementType)
	assert.Equal(t, "ghost", elementNotFound.Element)

	err = c.RemoveGroup(ctx, "phantom")
	require.ErrorAs(t, err, &elementNotFound)
	assert.Equal(t, "Group", elementNotFound.ElementType)
	assert.Equal(t, "phantom", elementNotFound.Element)

	err = c.RemoveEntityType(ctx, "specters")
	require.ErrorAs(t, err, &elementNotFound)
	assert.Equal(t, "EntityType", elementNotFound.ElementType)
}

func TestIntegration_DuplicateCreationIsServerError(t *testing.T) {
	ctx := context.Background()
	c := newClientAndServer(t)
	require.NoError(t, c.AddUser(ctx, "alice"))

	err := c.AddUser(ctx, "alice")
	var serverErr *domain.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, "ArgumentException", serverErr.Code)
}

func TestIntegration_EncodedIdentifiersSurviveRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newClientAndServer(t)

	user := "a b/c"
	require.NoError(t, c.AddUser(ctx, user))

	exists, err := c.ContainsUser(ctx, user)
	require.NoError(t, err)
	assert.True(t, exists)

	users, err := c.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{user}, users)
}
