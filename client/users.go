package client

import (
	"context"

	"accessgraph/domain"
)

// Users returns all users in the access graph.
func (c *Client[TUser, TGroup, TComponent, TAccess]) Users(ctx context.Context) ([]TUser, error) {
	var raw []string
	if err := c.sendGet(ctx, c.buildURL(nil, "users"), &raw); err != nil {
		return nil, err
	}
	return fromStrings(raw, c.users, "user")
}

// AddUser adds a user node.
func (c *Client[TUser, TGroup, TComponent, TAccess]) AddUser(ctx context.Context, user TUser) error {
	u, err := c.stringifyUser(user)
	if err != nil {
		return err
	}
	return c.sendPost(ctx, c.buildURL(nil, "users", u))
}

// RemoveUser removes a user node.
func (c *Client[TUser, TGroup, TComponent, TAccess]) RemoveUser(ctx context.Context, user TUser) error {
	u, err := c.stringifyUser(user)
	if err != nil {
		return err
	}
	return c.sendDelete(ctx, c.buildURL(nil, "users", u))
}

// ContainsUser reports whether the user exists. A 404 response means the
// user does not exist and is not an error.
func (c *Client[TUser, TGroup, TComponent, TAccess]) ContainsUser(ctx context.Context, user TUser) (bool, error) {
	u, err := c.stringifyUser(user)
	if err != nil {
		return false, err
	}
	return c.sendGetForExistence(ctx, c.buildURL(nil, "users", u))
}

// AddUserToGroupMapping records user membership of group.
func (c *Client[TUser, TGroup, TComponent, TAccess]) AddUserToGroupMapping(ctx context.Context, user TUser, group TGroup) error {
	u, err := c.stringifyUser(user)
	if err != nil {
		return err
	}
	g, err := c.stringifyGroup(group)
	if err != nil {
		return err
	}
	return c.sendPost(ctx, c.buildURL(nil, "userToGroupMappings", "user", u, "group", g))
}

// RemoveUserToGroupMapping removes user membership of group.
func (c *Client[TUser, TGroup, TComponent, TAccess]) RemoveUserToGroupMapping(ctx context.Context, user TUser, group TGroup) error {
	u, err := c.stringifyUser(user)
	if err != nil {
		return err
	}
	g, err := c.stringifyGroup(group)
	if err != nil {
		return err
	}
	return c.sendDelete(ctx, c.buildURL(nil, "userToGroupMappings", "user", u, "group", g))
}

// GetUserToGroupMappings returns the groups the user is mapped to. When
// includeIndirectMappings is true the result includes groups reachable
// through the group hierarchy.
func (c *Client[TUser, TGroup, TComponent, TAccess]) GetUserToGroupMappings(ctx context.Context, user TUser, includeIndirectMappings bool) ([]TGroup, error) {
	u, err := c.stringifyUser(user)
	if err != nil {
		return nil, err
	}
	var results []groupResult
	url := c.buildURL(indirectQuery(includeIndirectMappings), "userToGroupMappings", "user", u)
	if err := c.sendGet(ctx, url, &results); err != nil {
		return nil, err
	}
	return c.decodeGroups(results)
}

// AddUserToApplicationComponentAndAccessLevelMapping grants user the given
// access level on an application component.
func (c *Client[TUser, TGroup, TComponent, TAccess]) AddUserToApplicationComponentAndAccessLevelMapping(ctx context.Context, user TUser, component TComponent, accessLevel TAccess) error {
	u, err := c.stringifyUser(user)
	if err != nil {
		return err
	}
	comp, access, err := c.stringifyComponentAndAccess(component, accessLevel)
	if err != nil {
		return err
	}
	return c.sendPost(ctx, c.buildURL(nil,
		"userToApplicationComponentAndAccessLevelMappings",
		"user", u, "applicationComponent", comp, "accessLevel", access))
}

// RemoveUserToApplicationComponentAndAccessLevelMapping revokes the grant.
func (c *Client[TUser, TGroup, TComponent, TAccess]) RemoveUserToApplicationComponentAndAccessLevelMapping(ctx context.Context, user TUser, component TComponent, accessLevel TAccess) error {
	u, err := c.stringifyUser(user)
	if err != nil {
		return err
	}
	comp, access, err := c.stringifyComponentAndAccess(component, accessLevel)
	if err != nil {
		return err
	}
	return c.sendDelete(ctx, c.buildURL(nil,
		"userToApplicationComponentAndAccessLevelMappings",
		"user", u, "applicationComponent", comp, "accessLevel", access))
}

// GetUserToApplicationComponentAndAccessLevelMappings returns the
// component/access-level pairs mapped directly to the user.
func (c *Client[TUser, TGroup, TComponent, TAccess]) GetUserToApplicationComponentAndAccessLevelMappings(ctx context.Context, user TUser) ([]domain.ComponentAndAccessLevel[TComponent, TAccess], error) {
	u, err := c.stringifyUser(user)
	if err != nil {
		return nil, err
	}
	var results []componentAndAccessResult
	url := c.buildURL(indirectQuery(false), "userToApplicationComponentAndAccessLevelMappings", "user", u)
	if err := c.sendGet(ctx, url, &results); err != nil {
		return nil, err
	}
	return c.decodeComponentAndAccessPairs(results)
}

// AddUserToEntityMapping grants user access to an entity.
func (c *Client[TUser, TGroup, TComponent, TAccess]) AddUserToEntityMapping(ctx context.Context, user TUser, entityType, entity string) error {
	u, err := c.stringifyUser(user)
	if err != nil {
		return err
	}
	return c.sendPost(ctx, c.buildURL(nil,
		"userToEntityMappings", "user", u, "entityType", entityType, "entity", entity))
}

// RemoveUserToEntityMapping revokes user access to an entity.
func (c *Client[TUser, TGroup, TComponent, TAccess]) RemoveUserToEntityMapping(ctx context.Context, user TUser, entityType, entity string) error {
	u, err := c.stringifyUser(user)
	if err != nil {
		return err
	}
	return c.sendDelete(ctx, c.buildURL(nil,
		"userToEntityMappings", "user", u, "entityType", entityType, "entity", entity))
}

// GetUserToEntityMappings returns the entities mapped directly to the user
// across all entity types.
func (c *Client[TUser, TGroup, TComponent, TAccess]) GetUserToEntityMappings(ctx context.Context, user TUser) ([]domain.EntityTypeAndEntity, error) {
	u, err := c.stringifyUser(user)
	if err != nil {
		return nil, err
	}
	var results []entityTypeAndEntityResult
	url := c.buildURL(indirectQuery(false), "userToEntityMappings", "user", u)
	if err := c.sendGet(ctx, url, &results); err != nil {
		return nil, err
	}
	return decodeEntityTypeAndEntityPairs(results), nil
}

// GetUserToEntityMappingsForType returns the entities of one entity type
// mapped directly to the user.
func (c *Client[TUser, TGroup, TComponent, TAccess]) GetUserToEntityMappingsForType(ctx context.Context, user TUser, entityType string) ([]string, error) {
	u, err := c.stringifyUser(user)
	if err != nil {
		return nil, err
	}
	var results []entityResult
	url := c.buildURL(indirectQuery(false), "userToEntityMappings", "user", u, "entityType", entityType)
	if err := c.sendGet(ctx, url, &results); err != nil {
		return nil, err
	}
	entities := make([]string, len(results))
	for i, r := range results {
		entities[i] = r.Entity
	}
	return entities, nil
}

// HasAccessToApplicationComponent reports whether the user has the given
// access level on the component, directly or through group membership.
func (c *Client[TUser, TGroup, TComponent, TAccess]) HasAccessToApplicationComponent(ctx context.Context, user TUser, component TComponent, accessLevel TAccess) (bool, error) {
	u, err := c.stringifyUser(user)
	if err != nil {
		return false, err
	}
	comp, access, err := c.stringifyComponentAndAccess(component, accessLevel)
	if err != nil {
		return false, err
	}
	var hasAccess bool
	url := c.buildURL(nil,
		"dataElementAccess", "applicationComponent",
		"user", u, "applicationComponent", comp, "accessLevel", access)
	if err := c.sendGet(ctx, url, &hasAccess); err != nil {
		return false, err
	}
	return hasAccess, nil
}

// HasAccessToEntity reports whether the user has access to the entity,
// directly or through group membership.
func (c *Client[TUser, TGroup, TComponent, TAccess]) HasAccessToEntity(ctx context.Context, user TUser, entityType, entity string) (bool, error) {
	u, err := c.stringifyUser(user)
	if err != nil {
		return false, err
	}
	var hasAccess bool
	url := c.buildURL(nil,
		"dataElementAccess", "entity",
		"user", u, "entityType", entityType, "entity", entity)
	if err := c.sendGet(ctx, url, &hasAccess); err != nil {
		return false, err
	}
	return hasAccess, nil
}

// GetApplicationComponentsAccessibleByUser returns the set of
// component/access-level pairs the user can reach directly or through the
// group hierarchy. The result contains no duplicates and has no defined
// order.
func (c *Client[TUser, TGroup, TComponent, TAccess]) GetApplicationComponentsAccessibleByUser(ctx context.Context, user TUser) ([]domain.ComponentAndAccessLevel[TComponent, TAccess], error) {
	u, err := c.stringifyUser(user)
	if err != nil {
		return nil, err
	}
	var results []componentAndAccessResult
	url := c.buildURL(indirectQuery(true), "userToApplicationComponentAndAccessLevelMappings", "user", u)
	if err := c.sendGet(ctx, url, &results); err != nil {
		return nil, err
	}
	return c.decodeComponentAndAccessPairs(dedupePairs(results))
}

// GetEntitiesAccessibleByUser returns the set of entities the user can
// reach directly or through the group hierarchy.
func (c *Client[TUser, TGroup, TComponent, TAccess]) GetEntitiesAccessibleByUser(ctx context.Context, user TUser) ([]domain.EntityTypeAndEntity, error) {
	u, err := c.stringifyUser(user)
	if err != nil {
		return nil, err
	}
	var results []entityTypeAndEntityResult
	url := c.buildURL(indirectQuery(true), "userToEntityMappings", "user", u)
	if err := c.sendGet(ctx, url, &results); err != nil {
		return nil, err
	}
	return decodeEntityTypeAndEntityPairs(dedupeEntityPairs(results)), nil
}

// GetEntitiesAccessibleByUserForType returns the set of entities of one
// entity type the user can reach directly or through the group hierarchy.
func (c *Client[TUser, TGroup, TComponent, TAccess]) GetEntitiesAccessibleByUserForType(ctx context.Context, user TUser, entityType string) ([]string, error) {
	u, err := c.stringifyUser(user)
	if err != nil {
		return nil, err
	}
	var results []entityResult
	url := c.buildURL(indirectQuery(true), "userToEntityMappings", "user", u, "entityType", entityType)
	if err := c.sendGet(ctx, url, &results); err != nil {
		return nil, err
	}
	return dedupeEntities(results), nil
}

func (c *Client[TUser, TGroup, TComponent, TAccess]) stringifyComponentAndAccess(component TComponent, accessLevel TAccess) (string, string, error) {
	comp, err := c.stringifyComponent(component)
	if err != nil {
		return "", "", err
	}
	access, err := c.stringifyAccessLevel(accessLevel)
	if err != nil {
		return "", "", err
	}
	return comp, access, nil
}
