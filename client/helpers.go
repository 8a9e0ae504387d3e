package client

import (
	"fmt"
	"net/url"
	"strconv"

	"accessgraph/domain"
)

// includeIndirectParam is the query flag selecting direct-only versus
// transitively-closed relationship traversal.
const includeIndirectParam = "includeIndirectMappings"

func indirectQuery(includeIndirect bool) url.Values {
	q := url.Values{}
	q.Set(includeIndirectParam, strconv.FormatBool(includeIndirect))
	return q
}

// fromStrings converts a slice of wire strings into typed identifiers.
func fromStrings[T any](values []string, s domain.Stringifier[T], what string) ([]T, error) {
	out := make([]T, len(values))
	for i, v := range values {
		t, err := s.FromString(v)
		if err != nil {
			return nil, fmt.Errorf("decode %s %q: %w", what, v, err)
		}
		out[i] = t
	}
	return out, nil
}

func (c *Client[TUser, TGroup, TComponent, TAccess]) stringifyUser(user TUser) (string, error) {
	s, err := c.users.ToString(user)
	if err != nil {
		return "", fmt.Errorf("stringify user: %w", err)
	}
	return s, nil
}

func (c *Client[TUser, TGroup, TComponent, TAccess]) stringifyGroup(group TGroup) (string, error) {
	s, err := c.groups.ToString(group)
	if err != nil {
		return "", fmt.Errorf("stringify group: %w", err)
	}
	return s, nil
}

func (c *Client[TUser, TGroup, TComponent, TAccess]) stringifyComponent(component TComponent) (string, error) {
	s, err := c.components.ToString(component)
	if err != nil {
		return "", fmt.Errorf("stringify application component: %w", err)
	}
	return s, nil
}

func (c *Client[TUser, TGroup, TComponent, TAccess]) stringifyAccessLevel(accessLevel TAccess) (string, error) {
	s, err := c.accessLevels.ToString(accessLevel)
	if err != nil {
		return "", fmt.Errorf("stringify access level: %w", err)
	}
	return s, nil
}

// decodeUsers converts mapping results keyed by the user field.
func (c *Client[TUser, TGroup, TComponent, TAccess]) decodeUsers(results []userResult) ([]TUser, error) {
	out := make([]TUser, len(results))
	for i, r := range results {
		u, err := c.users.FromString(r.User)
		if err != nil {
			return nil, fmt.Errorf("decode user %q: %w", r.User, err)
		}
		out[i] = u
	}
	return out, nil
}

// decodeGroups converts mapping results keyed by the group field.
func (c *Client[TUser, TGroup, TComponent, TAccess]) decodeGroups(results []groupResult) ([]TGroup, error) {
	out := make([]TGroup, len(results))
	for i, r := range results {
		g, err := c.groups.FromString(r.Group)
		if err != nil {
			return nil, fmt.Errorf("decode group %q: %w", r.Group, err)
		}
		out[i] = g
	}
	return out, nil
}

// decodeComponentAndAccessPairs reconstructs typed component/access-level
// pairs from their wire fields.
func (c *Client[TUser, TGroup, TComponent, TAccess]) decodeComponentAndAccessPairs(results []componentAndAccessResult) ([]domain.ComponentAndAccessLevel[TComponent, TAccess], error) {
	out := make([]domain.ComponentAndAccessLevel[TComponent, TAccess], len(results))
	for i, r := range results {
		comp, err := c.components.FromString(r.ApplicationComponent)
		if err != nil {
			return nil, fmt.Errorf("decode application component %q: %w", r.ApplicationComponent, err)
		}
		access, err := c.accessLevels.FromString(r.AccessLevel)
		if err != nil {
			return nil, fmt.Errorf("decode access level %q: %w", r.AccessLevel, err)
		}
		out[i] = domain.ComponentAndAccessLevel[TComponent, TAccess]{
			ApplicationComponent: comp,
			AccessLevel:          access,
		}
	}
	return out, nil
}

func decodeEntityTypeAndEntityPairs(results []entityTypeAndEntityResult) []domain.EntityTypeAndEntity {
	out := make([]domain.EntityTypeAndEntity, len(results))
	for i, r := range results {
		out[i] = domain.EntityTypeAndEntity{EntityType: r.EntityType, Entity: r.Entity}
	}
	return out
}

// Closure results are sets: duplicates are eliminated on the wire strings,
// before identifier conversion, so the element type never needs to be
// comparable. Order is not preserved beyond first occurrence.

func dedupePairs(results []componentAndAccessResult) []componentAndAccessResult {
	seen := make(map[componentAndAccessResult]struct{}, len(results))
	out := results[:0:0]
	for _, r := range results {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

func dedupeEntityPairs(results []entityTypeAndEntityResult) []entityTypeAndEntityResult {
	seen := make(map[entityTypeAndEntityResult]struct{}, len(results))
	out := results[:0:0]
	for _, r := range results {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

func dedupeEntities(results []entityResult) []string {
	seen := make(map[string]struct{}, len(results))
	out := make([]string, 0, len(results))
	for _, r := range results {
		if _, ok := seen[r.Entity]; ok {
			continue
		}
		seen[r.Entity] = struct{}{}
		out = append(out, r.Entity)
	}
	return out
}
