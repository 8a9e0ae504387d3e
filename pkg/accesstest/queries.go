package accesstest

// Query-side operations. Transitive closure over the group hierarchy is
// computed here; direct queries only walk recorded edges.

// closureLocked returns every group reachable from the start groups via
// one or more groupToGroups edges. Callers must hold the mutex. The start
// groups themselves are not included unless reachable through an edge.
func (s *store) closureLocked(start ...string) map[string]struct{} {
	seen := map[string]struct{}{}
	stack := append([]string(nil), start...)
	for len(stack) > 0 {
		g := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for to := range s.groupToGroups[g] {
			if _, ok := seen[to]; ok {
				continue
			}
			seen[to] = struct{}{}
			stack = append(stack, to)
		}
	}
	return seen
}

// reverseClosureLocked returns every group from which target is reachable.
func (s *store) reverseClosureLocked(target string) map[string]struct{} {
	seen := map[string]struct{}{}
	stack := []string{target}
	for len(stack) > 0 {
		g := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for from, tos := range s.groupToGroups {
			if _, ok := tos[g]; !ok {
				continue
			}
			if _, ok := seen[from]; ok {
				continue
			}
			seen[from] = struct{}{}
			stack = append(stack, from)
		}
	}
	return seen
}

// effectiveGroupsLocked returns the user's direct groups plus, when
// indirect is set, all groups reachable from them.
func (s *store) effectiveGroupsLocked(user string, indirect bool) map[string]struct{} {
	groups := map[string]struct{}{}
	for g := range s.userToGroups[user] {
		groups[g] = struct{}{}
	}
	if indirect {
		for g := range s.closureLocked(keys(groups)...) {
			groups[g] = struct{}{}
		}
	}
	return groups
}

func (s *store) userGroups(user string, indirect bool) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.users[user]; !ok {
		return nil, errUserNotFound(user)
	}
	return keys(s.effectiveGroupsLocked(user, indirect)), nil
}

func (s *store) groupUsers(group string, indirect bool) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.groups[group]; !ok {
		return nil, errGroupNotFound(group)
	}
	relevant := map[string]struct{}{group: {}}
	if indirect {
		for g := range s.reverseClosureLocked(group) {
			relevant[g] = struct{}{}
		}
	}
	users := map[string]struct{}{}
	for u, groups := range s.userToGroups {
		for g := range groups {
			if _, ok := relevant[g]; ok {
				users[u] = struct{}{}
				break
			}
		}
	}
	return keys(users), nil
}

func (s *store) groupGroups(group string, indirect bool) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.groups[group]; !ok {
		return nil, errGroupNotFound(group)
	}
	if indirect {
		return keys(s.closureLocked(group)), nil
	}
	return keys(s.groupToGroups[group]), nil
}

func (s *store) groupGroupsReverse(group string, indirect bool) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.groups[group]; !ok {
		return nil, errGroupNotFound(group)
	}
	if indirect {
		return keys(s.reverseClosureLocked(group)), nil
	}
	var out []string
	for from, tos := range s.groupToGroups {
		if _, ok := tos[group]; ok {
			out = append(out, from)
		}
	}
	return out, nil
}

func (s *store) userComponentPairs(user string, indirect bool) ([]componentAndAccess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.users[user]; !ok {
		return nil, errUserNotFound(user)
	}
	pairs := map[componentAndAccess]struct{}{}
	for p := range s.userComponents[user] {
		pairs[p] = struct{}{}
	}
	if indirect {
		for g := range s.effectiveGroupsLocked(user, true) {
			for p := range s.groupComponents[g] {
				pairs[p] = struct{}{}
			}
		}
	}
	return keys(pairs), nil
}

func (s *store) groupComponentPairs(group string, indirect bool) ([]componentAndAccess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.groups[group]; !ok {
		return nil, errGroupNotFound(group)
	}
	pairs := map[componentAndAccess]struct{}{}
	for p := range s.groupComponents[group] {
		pairs[p] = struct{}{}
	}
	if indirect {
		for g := range s.closureLocked(group) {
			for p := range s.groupComponents[g] {
				pairs[p] = struct{}{}
			}
		}
	}
	return keys(pairs), nil
}

func (s *store) componentUsers(pair componentAndAccess, indirect bool) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := map[string]struct{}{}
	for u, pairs := range s.userComponents {
		if _, ok := pairs[pair]; ok {
			users[u] = struct{}{}
		}
	}
	if indirect {
		holders := s.groupsHoldingComponentLocked(pair)
		for u := range s.users {
			for g := range s.effectiveGroupsLocked(u, true) {
				if _, ok := holders[g]; ok {
					users[u] = struct{}{}
					break
				}
			}
		}
	}
	return keys(users)
}

func (s *store) componentGroups(pair componentAndAccess, indirect bool) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	holders := s.groupsHoldingComponentLocked(pair)
	groups := map[string]struct{}{}
	for g := range holders {
		groups[g] = struct{}{}
	}
	if indirect {
		for h := range holders {
			for g := range s.reverseClosureLocked(h) {
				groups[g] = struct{}{}
			}
		}
	}
	return keys(groups)
}

func (s *store) groupsHoldingComponentLocked(pair componentAndAccess) map[string]struct{} {
	holders := map[string]struct{}{}
	for g, pairs := range s.groupComponents {
		if _, ok := pairs[pair]; ok {
			holders[g] = struct{}{}
		}
	}
	return holders
}

func (s *store) userEntityRefs(user string, indirect bool) ([]entityRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.users[user]; !ok {
		return nil, errUserNotFound(user)
	}
	refs := map[entityRef]struct{}{}
	for r := range s.userEntities[user] {
		refs[r] = struct{}{}
	}
	if indirect {
		for g := range s.effectiveGroupsLocked(user, true) {
			for r := range s.groupEntities[g] {
				refs[r] = struct{}{}
			}
		}
	}
	return keys(refs), nil
}

func (s *store) userEntityRefsForType(user, entityType string, indirect bool) ([]entityRef, error) {
	s.mu.RLock()
	_, ok := s.entities[entityType]
	s.mu.RUnlock()
	if !ok {
		return nil, errEntityTypeNotFound(entityType)
	}
	refs, err := s.userEntityRefs(user, indirect)
	if err != nil {
		return nil, err
	}
	return filterRefs(refs, entityType), nil
}

func (s *store) groupEntityRefs(group string, indirect bool) ([]entityRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.groups[group]; !ok {
		return nil, errGroupNotFound(group)
	}
	refs := map[entityRef]struct{}{}
	for r := range s.groupEntities[group] {
		refs[r] = struct{}{}
	}
	if indirect {
		for g := range s.closureLocked(group) {
			for r := range s.groupEntities[g] {
				refs[r] = struct{}{}
			}
		}
	}
	return keys(refs), nil
}

func (s *store) groupEntityRefsForType(group, entityType string, indirect bool) ([]entityRef, error) {
	s.mu.RLock()
	_, ok := s.entities[entityType]
	s.mu.RUnlock()
	if !ok {
		return nil, errEntityTypeNotFound(entityType)
	}
	refs, err := s.groupEntityRefs(group, indirect)
	if err != nil {
		return nil, err
	}
	return filterRefs(refs, entityType), nil
}

func (s *store) entityUsers(ref entityRef, indirect bool) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkEntityLocked(ref); err != nil {
		return nil, err
	}
	users := map[string]struct{}{}
	for u, refs := range s.userEntities {
		if _, ok := refs[ref]; ok {
			users[u] = struct{}{}
		}
	}
	if indirect {
		holders := s.groupsHoldingEntityLocked(ref)
		for u := range s.users {
			for g := range s.effectiveGroupsLocked(u, true) {
				if _, ok := holders[g]; ok {
					users[u] = struct{}{}
					break
				}
			}
		}
	}
	return keys(users), nil
}

func (s *store) entityGroups(ref entityRef, indirect bool) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkEntityLocked(ref); err != nil {
		return nil, err
	}
	holders := s.groupsHoldingEntityLocked(ref)
	groups := map[string]struct{}{}
	for g := range holders {
		groups[g] = struct{}{}
	}
	if indirect {
		for h := range holders {
			for g := range s.reverseClosureLocked(h) {
				groups[g] = struct{}{}
			}
		}
	}
	return keys(groups), nil
}

func (s *store) groupsHoldingEntityLocked(ref entityRef) map[string]struct{} {
	holders := map[string]struct{}{}
	for g, refs := range s.groupEntities {
		if _, ok := refs[ref]; ok {
			holders[g] = struct{}{}
		}
	}
	return holders
}

func (s *store) hasComponentAccess(user string, pair componentAndAccess) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.users[user]; !ok {
		return false, errUserNotFound(user)
	}
	if _, ok := s.userComponents[user][pair]; ok {
		return true, nil
	}
	for g := range s.effectiveGroupsLocked(user, true) {
		if _, ok := s.groupComponents[g][pair]; ok {
			return true, nil
		}
	}
	return false, nil
}

func (s *store) hasEntityAccess(user string, ref entityRef) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.users[user]; !ok {
		return false, errUserNotFound(user)
	}
	if err := s.checkEntityLocked(ref); err != nil {
		return false, err
	}
	if _, ok := s.userEntities[user][ref]; ok {
		return true, nil
	}
	for g := range s.effectiveGroupsLocked(user, true) {
		if _, ok := s.groupEntities[g][ref]; ok {
			return true, nil
		}
	}
	return false, nil
}

func filterRefs(refs []entityRef, entityType string) []entityRef {
	var out []entityRef
	for _, r := range refs {
		if r.EntityType == entityType {
			out = append(out, r)
		}
	}
	return out
}
