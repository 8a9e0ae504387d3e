package accesstest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPopulatedStore(t *testing.T) *store {
	t.Helper()
	s := newStore()
	for _, u := range []string{"alice", "bob"} {
		require.NoError(t, s.addUser(u))
	}
	for _, g := range []string{"dev", "ops", "admin"} {
		require.NoError(t, s.addGroup(g))
	}
	// alice → dev → ops → admin, bob → ops
	require.NoError(t, s.addUserToGroup("alice", "dev"))
	require.NoError(t, s.addUserToGroup("bob", "ops"))
	require.NoError(t, s.addGroupToGroup("dev", "ops"))
	require.NoError(t, s.addGroupToGroup("ops", "admin"))
	return s
}

// === Group closure ===

func TestUserGroups_DirectVersusIndirect(t *testing.T) {
	s := newPopulatedStore(t)

	direct, err := s.userGroups("alice", false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"dev"}, direct)

	all, err := s.userGroups("alice", true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"dev", "ops", "admin"}, all)
}

func TestGroupUsers_IndirectIncludesNestedMembers(t *testing.T) {
	s := newPopulatedStore(t)

	direct, err := s.groupUsers("admin", false)
	require.NoError(t, err)
	assert.Empty(t, direct)

	all, err := s.groupUsers("admin", true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, all)
}

func TestGroupGroupsReverse(t *testing.T) {
	s := newPopulatedStore(t)

	direct, err := s.groupGroupsReverse("admin", false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ops"}, direct)

	all, err := s.groupGroupsReverse("admin", true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ops", "dev"}, all)
}

func TestAddGroupToGroup_RejectsCycles(t *testing.T) {
	s := newPopulatedStore(t)

	err := s.addGroupToGroup("admin", "dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular")

	err = s.addGroupToGroup("dev", "dev")
	require.Error(t, err)
}

// === Permission inheritance ===

func TestUserComponentPairs_InheritedThroughHierarchy(t *testing.T) {
	s := newPopulatedStore(t)
	require.NoError(t, s.addGroupComponent("admin", componentAndAccess{Component: "settings", AccessLevel: "modify"}))
	require.NoError(t, s.addUserComponent("alice", componentAndAccess{Component: "orders", AccessLevel: "view"}))

	direct, err := s.userComponentPairs("alice", false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []componentAndAccess{{Component: "orders", AccessLevel: "view"}}, direct)

	all, err := s.userComponentPairs("alice", true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []componentAndAccess{
		{Component: "orders", AccessLevel: "view"},
		{Component: "settings", AccessLevel: "modify"},
	}, all)
}

func TestHasComponentAccess_ThroughGroupChain(t *testing.T) {
	s := newPopulatedStore(t)
	require.NoError(t, s.addGroupComponent("admin", componentAndAccess{Component: "settings", AccessLevel: "modify"}))

	hasAccess, err := s.hasComponentAccess("alice", componentAndAccess{Component: "settings", AccessLevel: "modify"})
	require.NoError(t, err)
	assert.True(t, hasAccess)

	hasAccess, err = s.hasComponentAccess("alice", componentAndAccess{Component: "settings", AccessLevel: "delete"})
	require.NoError(t, err)
	assert.False(t, hasAccess)
}

func TestEntityAccess_ThroughGroupChain(t *testing.T) {
	s := newPopulatedStore(t)
	require.NoError(t, s.addEntityType("clients"))
	require.NoError(t, s.addEntity("clients", "acme"))
	require.NoError(t, s.addGroupEntity("admin", entityRef{EntityType: "clients", Entity: "acme"}))

	hasAccess, err := s.hasEntityAccess("alice", entityRef{EntityType: "clients", Entity: "acme"})
	require.NoError(t, err)
	assert.True(t, hasAccess)

	users, err := s.entityUsers(entityRef{EntityType: "clients", Entity: "acme"}, true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, users)
}

// === Cascading removal ===

func TestRemoveGroup_CascadesEdges(t *testing.T) {
	s := newPopulatedStore(t)
	require.NoError(t, s.removeGroup("ops"))

	all, err := s.userGroups("alice", true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"dev"}, all)

	_, err = s.userGroups("bob", true)
	require.NoError(t, err)
}

func TestRemoveEntityType_CascadesMappings(t *testing.T) {
	s := newPopulatedStore(t)
	require.NoError(t, s.addEntityType("clients"))
	require.NoError(t, s.addEntity("clients", "acme"))
	require.NoError(t, s.addUserEntity("alice", entityRef{EntityType: "clients", Entity: "acme"}))

	require.NoError(t, s.removeEntityType("clients"))

	refs, err := s.userEntityRefs("alice", false)
	require.NoError(t, err)
	assert.Empty(t, refs)
}

// === Error identity ===

func TestStoreErrors_CarryElementAttributes(t *testing.T) {
	s := newStore()

	err := s.removeUser("ghost")
	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.status)
	assert.Equal(t, "UserNotFoundException", apiErr.code)
	assert.Equal(t, []attribute{{Name: "User", Value: "ghost"}}, apiErr.attributes)
}
