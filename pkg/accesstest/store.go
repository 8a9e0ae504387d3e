// Package accesstest provides an in-memory access manager server
// implementing the REST contract the client speaks. It is intended for
// integration tests and local demos; the relationship graph, including
// transitive closure over group edges, is computed here because this
// package plays the server role.
package accesstest

import (
	"fmt"
	"net/http"
	"sync"
)

// componentAndAccess is an application component paired with an access
// level, both in wire-string form.
type componentAndAccess struct {
	Component   string
	AccessLevel string
}

// entityRef names an entity within its entity type.
type entityRef struct {
	EntityType string
	Entity     string
}

// apiError is an error the store surfaces through the wire error shape.
type apiError struct {
	status     int
	code       string
	message    string
	attributes []attribute
}

type attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (e *apiError) Error() string { return e.message }

func errUserNotFound(user string) *apiError {
	return &apiError{
		status:     http.StatusNotFound,
		code:       "UserNotFoundException",
		message:    fmt.Sprintf("user '%s' does not exist", user),
		attributes: []attribute{{Name: "User", Value: user}},
	}
}

func errGroupNotFound(group string) *apiError {
	return &apiError{
		status:     http.StatusNotFound,
		code:       "GroupNotFoundException",
		message:    fmt.Sprintf("group '%s' does not exist", group),
		attributes: []attribute{{Name: "Group", Value: group}},
	}
}

func errEntityTypeNotFound(entityType string) *apiError {
	return &apiError{
		status:     http.StatusNotFound,
		code:       "EntityTypeNotFoundException",
		message:    fmt.Sprintf("entity type '%s' does not exist", entityType),
		attributes: []attribute{{Name: "EntityType", Value: entityType}},
	}
}

func errEntityNotFound(entity string) *apiError {
	return &apiError{
		status:     http.StatusNotFound,
		code:       "EntityNotFoundException",
		message:    fmt.Sprintf("entity '%s' does not exist", entity),
		attributes: []attribute{{Name: "Entity", Value: entity}},
	}
}

func errArgument(format string, args ...interface{}) *apiError {
	return &apiError{
		status:  http.StatusBadRequest,
		code:    "ArgumentException",
		message: fmt.Sprintf(format, args...),
	}
}

// store holds the access graph. All access goes through the mutex; the
// store is safe for concurrent handlers.
type store struct {
	mu sync.RWMutex

	users  map[string]struct{}
	groups map[string]struct{}

	userToGroups  map[string]map[string]struct{} // user → groups
	groupToGroups map[string]map[string]struct{} // fromGroup → toGroups

	userComponents  map[string]map[componentAndAccess]struct{}
	groupComponents map[string]map[componentAndAccess]struct{}

	entities      map[string]map[string]struct{} // entityType → entities
	userEntities  map[string]map[entityRef]struct{}
	groupEntities map[string]map[entityRef]struct{}
}

func newStore() *store {
	return &store{
		users:           map[string]struct{}{},
		groups:          map[string]struct{}{},
		userToGroups:    map[string]map[string]struct{}{},
		groupToGroups:   map[string]map[string]struct{}{},
		userComponents:  map[string]map[componentAndAccess]struct{}{},
		groupComponents: map[string]map[componentAndAccess]struct{}{},
		entities:        map[string]map[string]struct{}{},
		userEntities:    map[string]map[entityRef]struct{}{},
		groupEntities:   map[string]map[entityRef]struct{}{},
	}
}

// === Nodes ===

func (s *store) addUser(user string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user]; ok {
		return errArgument("user '%s' already exists", user)
	}
	s.users[user] = struct{}{}
	return nil
}

func (s *store) removeUser(user string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user]; !ok {
		return errUserNotFound(user)
	}
	delete(s.users, user)
	delete(s.userToGroups, user)
	delete(s.userComponents, user)
	delete(s.userEntities, user)
	return nil
}

func (s *store) containsUser(user string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[user]
	return ok
}

func (s *store) listUsers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return keys(s.users)
}

func (s *store) addGroup(group string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[group]; ok {
		return errArgument("group '%s' already exists", group)
	}
	s.groups[group] = struct{}{}
	return nil
}

func (s *store) removeGroup(group string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[group]; !ok {
		return errGroupNotFound(group)
	}
	delete(s.groups, group)
	delete(s.groupToGroups, group)
	delete(s.groupComponents, group)
	delete(s.groupEntities, group)
	for _, groups := range s.userToGroups {
		delete(groups, group)
	}
	for _, groups := range s.groupToGroups {
		delete(groups, group)
	}
	return nil
}

func (s *store) containsGroup(group string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.groups[group]
	return ok
}

func (s *store) listGroups() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return keys(s.groups)
}

// === Entity types and entities ===

func (s *store) addEntityType(entityType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entities[entityType]; ok {
		return errArgument("entity type '%s' already exists", entityType)
	}
	s.entities[entityType] = map[string]struct{}{}
	return nil
}

func (s *store) removeEntityType(entityType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entities[entityType]; !ok {
		return errEntityTypeNotFound(entityType)
	}
	delete(s.entities, entityType)
	for _, refs := range s.userEntities {
		for ref := range refs {
			if ref.EntityType == entityType {
				delete(refs, ref)
			}
		}
	}
	for _, refs := range s.groupEntities {
		for ref := range refs {
			if ref.EntityType == entityType {
				delete(refs, ref)
			}
		}
	}
	return nil
}

func (s *store) containsEntityType(entityType string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entities[entityType]
	return ok
}

func (s *store) listEntityTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return keys(s.entities)
}

func (s *store) addEntity(entityType, entity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	members, ok := s.entities[entityType]
	if !ok {
		return errEntityTypeNotFound(entityType)
	}
	if _, ok := members[entity]; ok {
		return errArgument("entity '%s' already exists", entity)
	}
	members[entity] = struct{}{}
	return nil
}

func (s *store) removeEntity(entityType, entity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	members, ok := s.entities[entityType]
	if !ok {
		return errEntityTypeNotFound(entityType)
	}
	if _, ok := members[entity]; !ok {
		return errEntityNotFound(entity)
	}
	delete(members, entity)
	ref := entityRef{EntityType: entityType, Entity: entity}
	for _, refs := range s.userEntities {
		delete(refs, ref)
	}
	for _, refs := range s.groupEntities {
		delete(refs, ref)
	}
	return nil
}

func (s *store) containsEntity(entityType, entity string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	members, ok := s.entities[entityType]
	if !ok {
		return false, errEntityTypeNotFound(entityType)
	}
	_, ok = members[entity]
	return ok, nil
}

func (s *store) listEntities(entityType string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	members, ok := s.entities[entityType]
	if !ok {
		return nil, errEntityTypeNotFound(entityType)
	}
	return keys(members), nil
}

// === Edges ===

func (s *store) addUserToGroup(user, group string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user]; !ok {
		return errUserNotFound(user)
	}
	if _, ok := s.groups[group]; !ok {
		return errGroupNotFound(group)
	}
	if _, ok := s.userToGroups[user][group]; ok {
		return errArgument("mapping between user '%s' and group '%s' already exists", user, group)
	}
	if s.userToGroups[user] == nil {
		s.userToGroups[user] = map[string]struct{}{}
	}
	s.userToGroups[user][group] = struct{}{}
	return nil
}

func (s *store) removeUserToGroup(user, group string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user]; !ok {
		return errUserNotFound(user)
	}
	if _, ok := s.groups[group]; !ok {
		return errGroupNotFound(group)
	}
	if _, ok := s.userToGroups[user][group]; !ok {
		return errArgument("mapping between user '%s' and group '%s' does not exist", user, group)
	}
	delete(s.userToGroups[user], group)
	return nil
}

func (s *store) addGroupToGroup(fromGroup, toGroup string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[fromGroup]; !ok {
		return errGroupNotFound(fromGroup)
	}
	if _, ok := s.groups[toGroup]; !ok {
		return errGroupNotFound(toGroup)
	}
	if fromGroup == toGroup {
		return errArgument("parameters 'fromGroup' and 'toGroup' cannot contain the same group")
	}
	if _, ok := s.groupToGroups[fromGroup][toGroup]; ok {
		return errArgument("mapping between groups '%s' and '%s' already exists", fromGroup, toGroup)
	}
	// Reject edges that would close a cycle in the hierarchy.
	if _, reachable := s.closureLocked(toGroup)[fromGroup]; reachable {
		return errArgument("mapping between groups '%s' and '%s' would create a circular reference", fromGroup, toGroup)
	}
	if s.groupToGroups[fromGroup] == nil {
		s.groupToGroups[fromGroup] = map[string]struct{}{}
	}
	s.groupToGroups[fromGroup][toGroup] = struct{}{}
	return nil
}

func (s *store) removeGroupToGroup(fromGroup, toGroup string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[fromGroup]; !ok {
		return errGroupNotFound(fromGroup)
	}
	if _, ok := s.groups[toGroup]; !ok {
		return errGroupNotFound(toGroup)
	}
	if _, ok := s.groupToGroups[fromGroup][toGroup]; !ok {
		return errArgument("mapping between groups '%s' and '%s' does not exist", fromGroup, toGroup)
	}
	delete(s.groupToGroups[fromGroup], toGroup)
	return nil
}

func (s *store) addUserComponent(user string, pair componentAndAccess) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user]; !ok {
		return errUserNotFound(user)
	}
	if _, ok := s.userComponents[user][pair]; ok {
		return errArgument("mapping between user '%s' and component '%s' already exists", user, pair.Component)
	}
	if s.userComponents[user] == nil {
		s.userComponents[user] = map[componentAndAccess]struct{}{}
	}
	s.userComponents[user][pair] = struct{}{}
	return nil
}

func (s *store) removeUserComponent(user string, pair componentAndAccess) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user]; !ok {
		return errUserNotFound(user)
	}
	if _, ok := s.userComponents[user][pair]; !ok {
		return errArgument("mapping between user '%s' and component '%s' does not exist", user, pair.Component)
	}
	delete(s.userComponents[user], pair)
	return nil
}

func (s *store) addGroupComponent(group string, pair componentAndAccess) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[group]; !ok {
		return errGroupNotFound(group)
	}
	if _, ok := s.groupComponents[group][pair]; ok {
		return errArgument("mapping between group '%s' and component '%s' already exists", group, pair.Component)
	}
	if s.groupComponents[group] == nil {
		s.groupComponents[group] = map[componentAndAccess]struct{}{}
	}
	s.groupComponents[group][pair] = struct{}{}
	return nil
}

func (s *store) removeGroupComponent(group string, pair componentAndAccess) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[group]; !ok {
		return errGroupNotFound(group)
	}
	if _, ok := s.groupComponents[group][pair]; !ok {
		return errArgument("mapping between group '%s' and component '%s' does not exist", group, pair.Component)
	}
	delete(s.groupComponents[group], pair)
	return nil
}

func (s *store) addUserEntity(user string, ref entityRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user]; !ok {
		return errUserNotFound(user)
	}
	if err := s.checkEntityLocked(ref); err != nil {
		return err
	}
	if _, ok := s.userEntities[user][ref]; ok {
		return errArgument("mapping between user '%s' and entity '%s' already exists", user, ref.Entity)
	}
	if s.userEntities[user] == nil {
		s.userEntities[user] = map[entityRef]struct{}{}
	}
	s.userEntities[user][ref] = struct{}{}
	return nil
}

func (s *store) removeUserEntity(user string, ref entityRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user]; !ok {
		return errUserNotFound(user)
	}
	if err := s.checkEntityLocked(ref); err != nil {
		return err
	}
	if _, ok := s.userEntities[user][ref]; !ok {
		return errArgument("mapping between user '%s' and entity '%s' does not exist", user, ref.Entity)
	}
	delete(s.userEntities[user], ref)
	return nil
}

func (s *store) addGroupEntity(group string, ref entityRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[group]; !ok {
		return errGroupNotFound(group)
	}
	if err := s.checkEntityLocked(ref); err != nil {
		return err
	}
	if _, ok := s.groupEntities[group][ref]; ok {
		return errArgument("mapping between group '%s' and entity '%s' already exists", group, ref.Entity)
	}
	if s.groupEntities[group] == nil {
		s.groupEntities[group] = map[entityRef]struct{}{}
	}
	s.groupEntities[group][ref] = struct{}{}
	return nil
}

func (s *store) removeGroupEntity(group string, ref entityRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[group]; !ok {
		return errGroupNotFound(group)
	}
	if err := s.checkEntityLocked(ref); err != nil {
		return err
	}
	if _, ok := s.groupEntities[group][ref]; !ok {
		return errArgument("mapping between group '%s' and entity '%s' does not exist", group, ref.Entity)
	}
	delete(s.groupEntities[group], ref)
	return nil
}

func (s *store) checkEntityLocked(ref entityRef) error {
	members, ok := s.entities[ref.EntityType]
	if !ok {
		return errEntityTypeNotFound(ref.EntityType)
	}
	if _, ok := members[ref.Entity]; !ok {
		return errEntityNotFound(ref.Entity)
	}
	return nil
}

func keys[K comparable, V any](m map[K]V) []K {
	out := make([]K, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
