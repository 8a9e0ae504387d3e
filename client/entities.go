package client

import "context"

// EntityTypes returns all entity types in the access graph.
func (c *Client[TUser, TGroup, TComponent, TAccess]) EntityTypes(ctx context.Context) ([]string, error) {
	var raw []string
	if err := c.sendGet(ctx, c.buildURL(nil, "entityTypes"), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// AddEntityType adds an entity type node.
func (c *Client[TUser, TGroup, TComponent, TAccess]) AddEntityType(ctx context.Context, entityType string) error {
	return c.sendPost(ctx, c.buildURL(nil, "entityTypes", entityType))
}

// RemoveEntityType removes an entity type node.
func (c *Client[TUser, TGroup, TComponent, TAccess]) RemoveEntityType(ctx context.Context, entityType string) error {
	return c.sendDelete(ctx, c.buildURL(nil, "entityTypes", entityType))
}

// ContainsEntityType reports whether the entity type exists.
func (c *Client[TUser, TGroup, TComponent, TAccess]) ContainsEntityType(ctx context.Context, entityType string) (bool, error) {
	return c.sendGetForExistence(ctx, c.buildURL(nil, "entityTypes", entityType))
}

// GetEntities returns all entities of the given entity type.
func (c *Client[TUser, TGroup, TComponent, TAccess]) GetEntities(ctx context.Context, entityType string) ([]string, error) {
	var raw []string
	if err := c.sendGet(ctx, c.buildURL(nil, "entityTypes", entityType, "entities"), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// AddEntity adds an entity to the given entity type.
func (c *Client[TUser, TGroup, TComponent, TAccess]) AddEntity(ctx context.Context, entityType, entity string) error {
	return c.sendPost(ctx, c.buildURL(nil, "entityTypes", entityType, "entities", entity))
}

// RemoveEntity removes an entity from the given entity type.
func (c *Client[TUser, TGroup, TComponent, TAccess]) RemoveEntity(ctx context.Context, entityType, entity string) error {
	return c.sendDelete(ctx, c.buildURL(nil, "entityTypes", entityType, "entities", entity))
}

// ContainsEntity reports whether the entity exists within the entity type.
func (c *Client[TUser, TGroup, TComponent, TAccess]) ContainsEntity(ctx context.Context, entityType, entity string) (bool, error) {
	return c.sendGetForExistence(ctx, c.buildURL(nil, "entityTypes", entityType, "entities", entity))
}

// GetEntityToUserMappings returns the users mapped to the entity. When
// includeIndirectMappings is true the result includes users reaching the
// entity through group membership.
func (c *Client[TUser, TGroup, TComponent, TAccess]) GetEntityToUserMappings(ctx context.Context, entityType, entity string, includeIndirectMappings bool) ([]TUser, error) {
	var results []userResult
	url := c.buildURL(indirectQuery(includeIndirectMappings),
		"entityToUserMappings", "entityType", entityType, "entity", entity)
	if err := c.sendGet(ctx, url, &results); err != nil {
		return nil, err
	}
	return c.decodeUsers(results)
}

// GetEntityToGroupMappings returns the groups mapped to the entity.
func (c *Client[TUser, TGroup, TComponent, TAccess]) GetEntityToGroupMappings(ctx context.Context, entityType, entity string, includeIndirectMappings bool) ([]TGroup, error) {
	var results []groupResult
	url := c.buildURL(indirectQuery(includeIndirectMappings),
		"entityToGroupMappings", "entityType", entityType, "entity", entity)
	if err := c.sendGet(ctx, url, &results); err != nil {
		return nil, err
	}
	return c.decodeGroups(results)
}
