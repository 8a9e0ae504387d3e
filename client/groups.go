package client

import (
	"context"

	"accessgraph/domain"
)

// Groups returns all groups in the access graph.
func (c *Client[TUser, TGroup, TComponent, TAccess]) Groups(ctx context.Context) ([]TGroup, error) {
	var raw []string
	if err := c.sendGet(ctx, c.buildURL(nil, "groups"), &raw); err != nil {
		return nil, err
	}
	return fromStrings(raw, c.groups, "group")
}

// AddGroup adds a group node.
func (c *Client[TUser, TGroup, TComponent, TAccess]) AddGroup(ctx context.Context, group TGroup) error {
	g, err := c.stringifyGroup(group)
	if err != nil {
		return err
	}
	return c.sendPost(ctx, c.buildURL(nil, "groups", g))
}

// RemoveGroup removes a group node.
func (c *Client[TUser, TGroup, TComponent, TAccess]) RemoveGroup(ctx context.Context, group TGroup) error {
	g, err := c.stringifyGroup(group)
	if err != nil {
		return err
	}
	return c.sendDelete(ctx, c.buildURL(nil, "groups", g))
}

// ContainsGroup reports whether the group exists.
func (c *Client[TUser, TGroup, TComponent, TAccess]) ContainsGroup(ctx context.Context, group TGroup) (bool, error) {
	g, err := c.stringifyGroup(group)
	if err != nil {
		return false, err
	}
	return c.sendGetForExistence(ctx, c.buildURL(nil, "groups", g))
}

// GetGroupToUserMappings returns the users mapped to the group. When
// includeIndirectMappings is true the result includes users of groups
// below this group in the hierarchy.
func (c *Client[TUser, TGroup, TComponent, TAccess]) GetGroupToUserMappings(ctx context.Context, group TGroup, includeIndirectMappings bool) ([]TUser, error) {
	g, err := c.stringifyGroup(group)
	if err != nil {
		return nil, err
	}
	var results []userResult
	url := c.buildURL(indirectQuery(includeIndirectMappings), "userToGroupMappings", "group", g)
	if err := c.sendGet(ctx, url, &results); err != nil {
		return nil, err
	}
	return c.decodeUsers(results)
}

// AddGroupToGroupMapping records fromGroup as a member of toGroup.
func (c *Client[TUser, TGroup, TComponent, TAccess]) AddGroupToGroupMapping(ctx context.Context, fromGroup, toGroup TGroup) error {
	from, to, err := c.stringifyGroupPair(fromGroup, toGroup)
	if err != nil {
		return err
	}
	return c.sendPost(ctx, c.buildURL(nil, "groupToGroupMappings", "fromGroup", from, "toGroup", to))
}

// RemoveGroupToGroupMapping removes the fromGroup/toGroup edge.
func (c *Client[TUser, TGroup, TComponent, TAccess]) RemoveGroupToGroupMapping(ctx context.Context, fromGroup, toGroup TGroup) error {
	from, to, err := c.stringifyGroupPair(fromGroup, toGroup)
	if err != nil {
		return err
	}
	return c.sendDelete(ctx, c.buildURL(nil, "groupToGroupMappings", "fromGroup", from, "toGroup", to))
}

// GetGroupToGroupMappings returns the groups the group is mapped to.
func (c *Client[TUser, TGroup, TComponent, TAccess]) GetGroupToGroupMappings(ctx context.Context, group TGroup, includeIndirectMappings bool) ([]TGroup, error) {
	g, err := c.stringifyGroup(group)
	if err != nil {
		return nil, err
	}
	var results []groupResult
	url := c.buildURL(indirectQuery(includeIndirectMappings), "groupToGroupMappings", "group", g)
	if err := c.sendGet(ctx, url, &results); err != nil {
		return nil, err
	}
	return c.decodeGroups(results)
}

// GetGroupToGroupReverseMappings returns the groups mapped to the group,
// i.e. the edges traversed in the reverse direction.
func (c *Client[TUser, TGroup, TComponent, TAccess]) GetGroupToGroupReverseMappings(ctx context.Context, group TGroup, includeIndirectMappings bool) ([]TGroup, error) {
	g, err := c.stringifyGroup(group)
	if err != nil {
		return nil, err
	}
	var results []groupResult
	url := c.buildURL(indirectQuery(includeIndirectMappings), "groupToGroupReverseMappings", "group", g)
	if err := c.sendGet(ctx, url, &results); err != nil {
		return nil, err
	}
	return c.decodeGroups(results)
}

// AddGroupToApplicationComponentAndAccessLevelMapping grants the group the
// given access level on an application component.
func (c *Client[TUser, TGroup, TComponent, TAccess]) AddGroupToApplicationComponentAndAccessLevelMapping(ctx context.Context, group TGroup, component TComponent, accessLevel TAccess) error {
	g, err := c.stringifyGroup(group)
	if err != nil {
		return err
	}
	comp, access, err := c.stringifyComponentAndAccess(component, accessLevel)
	if err != nil {
		return err
	}
	return c.sendPost(ctx, c.buildURL(nil,
		"groupToApplicationComponentAndAccessLevelMappings",
		"group", g, "applicationComponent", comp, "accessLevel", access))
}

// RemoveGroupToApplicationComponentAndAccessLevelMapping revokes the grant.
func (c *Client[TUser, TGroup, TComponent, TAccess]) RemoveGroupToApplicationComponentAndAccessLevelMapping(ctx context.Context, group TGroup, component TComponent, accessLevel TAccess) error {
	g, err := c.stringifyGroup(group)
	if err != nil {
		return err
	}
	comp, access, err := c.stringifyComponentAndAccess(component, accessLevel)
	if err != nil {
		return err
	}
	return c.sendDelete(ctx, c.buildURL(nil,
		"groupToApplicationComponentAndAccessLevelMappings",
		"group", g, "applicationComponent", comp, "accessLevel", access))
}

// GetGroupToApplicationComponentAndAccessLevelMappings returns the
// component/access-level pairs mapped directly to the group.
func (c *Client[TUser, TGroup, TComponent, TAccess]) GetGroupToApplicationComponentAndAccessLevelMappings(ctx context.Context, group TGroup) ([]domain.ComponentAndAccessLevel[TComponent, TAccess], error) {
	g, err := c.stringifyGroup(group)
	if err != nil {
		return nil, err
	}
	var results []componentAndAccessResult
	url := c.buildURL(indirectQuery(false), "groupToApplicationComponentAndAccessLevelMappings", "group", g)
	if err := c.sendGet(ctx, url, &results); err != nil {
		return nil, err
	}
	return c.decodeComponentAndAccessPairs(results)
}

// AddGroupToEntityMapping grants the group access to an entity.
func (c *Client[TUser, TGroup, TComponent, TAccess]) AddGroupToEntityMapping(ctx context.Context, group TGroup, entityType, entity string) error {
	g, err := c.stringifyGroup(group)
	if err != nil {
		return err
	}
	return c.sendPost(ctx, c.buildURL(nil,
		"groupToEntityMappings", "group", g, "entityType", entityType, "entity", entity))
}

// RemoveGroupToEntityMapping revokes the group's access to an entity.
func (c *Client[TUser, TGroup, TComponent, TAccess]) RemoveGroupToEntityMapping(ctx context.Context, group TGroup, entityType, entity string) error {
	g, err := c.stringifyGroup(group)
	if err != nil {
		return err
	}
	return c.sendDelete(ctx, c.buildURL(nil,
		"groupToEntityMappings", "group", g, "entityType", entityType, "entity", entity))
}

// GetGroupToEntityMappings returns the entities mapped directly to the
// group across all entity types.
func (c *Client[TUser, TGroup, TComponent, TAccess]) GetGroupToEntityMappings(ctx context.Context, group TGroup) ([]domain.EntityTypeAndEntity, error) {
	g, err := c.stringifyGroup(group)
	if err != nil {
		return nil, err
	}
	var results []entityTypeAndEntityResult
	url := c.buildURL(indirectQuery(false), "groupToEntityMappings", "group", g)
	if err := c.sendGet(ctx, url, &results); err != nil {
		return nil, err
	}
	return decodeEntityTypeAndEntityPairs(results), nil
}

// GetGroupToEntityMappingsForType returns the entities of one entity type
// mapped directly to the group.
func (c *Client[TUser, TGroup, TComponent, TAccess]) GetGroupToEntityMappingsForType(ctx context.Context, group TGroup, entityType string) ([]string, error) {
	g, err := c.stringifyGroup(group)
	if err != nil {
		return nil, err
	}
	var results []entityResult
	url := c.buildURL(indirectQuery(false), "groupToEntityMappings", "group", g, "entityType", entityType)
	if err := c.sendGet(ctx, url, &results); err != nil {
		return nil, err
	}
	entities := make([]string, len(results))
	for i, r := range results {
		entities[i] = r.Entity
	}
	return entities, nil
}

// GetApplicationComponentsAccessibleByGroup returns the set of
// component/access-level pairs the group can reach directly or through the
// group hierarchy. The result contains no duplicates and has no defined
// order.
func (c *Client[TUser, TGroup, TComponent, TAccess]) GetApplicationComponentsAccessibleByGroup(ctx context.Context, group TGroup) ([]domain.ComponentAndAccessLevel[TComponent, TAccess], error) {
	g, err := c.stringifyGroup(group)
	if err != nil {
		return nil, err
	}
	var results []componentAndAccessResult
	url := c.buildURL(indirectQuery(true), "groupToApplicationComponentAndAccessLevelMappings", "group", g)
	if err := c.sendGet(ctx, url, &results); err != nil {
		return nil, err
	}
	return c.decodeComponentAndAccessPairs(dedupePairs(results))
}

// GetEntitiesAccessibleByGroup returns the set of entities the group can
// reach directly or through the group hierarchy.
func (c *Client[TUser, TGroup, TComponent, TAccess]) GetEntitiesAccessibleByGroup(ctx context.Context, group TGroup) ([]domain.EntityTypeAndEntity, error) {
	g, err := c.stringifyGroup(group)
	if err != nil {
		return nil, err
	}
	var results []entityTypeAndEntityResult
	url := c.buildURL(indirectQuery(true), "groupToEntityMappings", "group", g)
	if err := c.sendGet(ctx, url, &results); err != nil {
		return nil, err
	}
	return decodeEntityTypeAndEntityPairs(dedupeEntityPairs(results)), nil
}

// GetEntitiesAccessibleByGroupForType returns the set of entities of one
// entity type the group can reach directly or through the group hierarchy.
func (c *Client[TUser, TGroup, TComponent, TAccess]) GetEntitiesAccessibleByGroupForType(ctx context.Context, group TGroup, entityType string) ([]string, error) {
	g, err := c.stringifyGroup(group)
	if err != nil {
		return nil, err
	}
	var results []entityResult
	url := c.buildURL(indirectQuery(true), "groupToEntityMappings", "group", g, "entityType", entityType)
	if err := c.sendGet(ctx, url, &results); err != nil {
		return nil, err
	}
	return dedupeEntities(results), nil
}

func (c *Client[TUser, TGroup, TComponent, TAccess]) stringifyGroupPair(fromGroup, toGroup TGroup) (string, string, error) {
	from, err := c.stringifyGroup(fromGroup)
	if err != nil {
		return "", "", err
	}
	to, err := c.stringifyGroup(toGroup)
	if err != nil {
		return "", "", err
	}
	return from, to, nil
}
