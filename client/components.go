package client

import "context"

// GetApplicationComponentAndAccessLevelToUserMappings returns the users
// holding the given access level on the component. When
// includeIndirectMappings is true the result includes users reaching the
// grant through group membership.
func (c *Client[TUser, TGroup, TComponent, TAccess]) GetApplicationComponentAndAccessLevelToUserMappings(ctx context.Context, component TComponent, accessLevel TAccess, includeIndirectMappings bool) ([]TUser, error) {
	comp, access, err := c.stringifyComponentAndAccess(component, accessLevel)
	if err != nil {
		return nil, err
	}
	var results []userResult
	url := c.buildURL(indirectQuery(includeIndirectMappings),
		"applicationComponentAndAccessLevelToUserMappings",
		"applicationComponent", comp, "accessLevel", access)
	if err := c.sendGet(ctx, url, &results); err != nil {
		return nil, err
	}
	return c.decodeUsers(results)
}

// GetApplicationComponentAndAccessLevelToGroupMappings returns the groups
// holding the given access level on the component.
func (c *Client[TUser, TGroup, TComponent, TAccess]) GetApplicationComponentAndAccessLevelToGroupMappings(ctx context.Context, component TComponent, accessLevel TAccess, includeIndirectMappings bool) ([]TGroup, error) {
	comp, access, err := c.stringifyComponentAndAccess(component, accessLevel)
	if err != nil {
		return nil, err
	}
	var results []groupResult
	url := c.buildURL(indirectQuery(includeIndirectMappings),
		"applicationComponentAndAccessLevelToGroupMappings",
		"applicationComponent", comp, "accessLevel", access)
	if err := c.sendGet(ctx, url, &results); err != nil {
		return nil, err
	}
	return c.decodeGroups(results)
}
