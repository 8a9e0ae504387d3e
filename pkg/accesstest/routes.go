package accesstest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Response element shapes. Mapping queries return one element per edge,
// carrying the stringified identifiers of both ends.
type userGroupElement struct {
	User  string `json:"user"`
	Group string `json:"group"`
}

type userElement struct {
	User string `json:"user"`
}

type groupElement struct {
	Group string `json:"group"`
}

type userComponentElement struct {
	User                 string `json:"user"`
	ApplicationComponent string `json:"applicationComponent"`
	AccessLevel          string `json:"accessLevel"`
}

type groupComponentElement struct {
	Group                string `json:"group"`
	ApplicationComponent string `json:"applicationComponent"`
	AccessLevel          string `json:"accessLevel"`
}

type userEntityElement struct {
	User       string `json:"user"`
	EntityType string `json:"entityType"`
	Entity     string `json:"entity"`
}

type groupEntityElement struct {
	Group      string `json:"group"`
	EntityType string `json:"entityType"`
	Entity     string `json:"entity"`
}

func (s *Server) routeNodes(r chi.Router) {
	r.Get("/users", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, s.store.listUsers())
	})
	r.Post("/users/{user}", func(w http.ResponseWriter, r *http.Request) {
		s.event(w, r, http.StatusCreated, func() error { return s.store.addUser(param(r, "user")) })
	})
	r.Delete("/users/{user}", func(w http.ResponseWriter, r *http.Request) {
		s.event(w, r, http.StatusOK, func() error { return s.store.removeUser(param(r, "user")) })
	})
	r.Get("/users/{user}", func(w http.ResponseWriter, r *http.Request) {
		user := param(r, "user")
		s.existence(w, r, s.store.containsUser(user), user, errUserNotFound(user))
	})

	r.Get("/groups", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, s.store.listGroups())
	})
	r.Post("/groups/{group}", func(w http.ResponseWriter, r *http.Request) {
		s.event(w, r, http.StatusCreated, func() error { return s.store.addGroup(param(r, "group")) })
	})
	r.Delete("/groups/{group}", func(w http.ResponseWriter, r *http.Request) {
		s.event(w, r, http.StatusOK, func() error { return s.store.removeGroup(param(r, "group")) })
	})
	r.Get("/groups/{group}", func(w http.ResponseWriter, r *http.Request) {
		group := param(r, "group")
		s.existence(w, r, s.store.containsGroup(group), group, errGroupNotFound(group))
	})

	r.Get("/entityTypes", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, s.store.listEntityTypes())
	})
	r.Post("/entityTypes/{entityType}", func(w http.ResponseWriter, r *http.Request) {
		s.event(w, r, http.StatusCreated, func() error { return s.store.addEntityType(param(r, "entityType")) })
	})
	r.Delete("/entityTypes/{entityType}", func(w http.ResponseWriter, r *http.Request) {
		s.event(w, r, http.StatusOK, func() error { return s.store.removeEntityType(param(r, "entityType")) })
	})
	r.Get("/entityTypes/{entityType}", func(w http.ResponseWriter, r *http.Request) {
		entityType := param(r, "entityType")
		s.existence(w, r, s.store.containsEntityType(entityType), entityType, errEntityTypeNotFound(entityType))
	})

	r.Get("/entityTypes/{entityType}/entities", func(w http.ResponseWriter, r *http.Request) {
		entities, err := s.store.listEntities(param(r, "entityType"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, entities)
	})
	r.Post("/entityTypes/{entityType}/entities/{entity}", func(w http.ResponseWriter, r *http.Request) {
		s.event(w, r, http.StatusCreated, func() error {
			return s.store.addEntity(param(r, "entityType"), param(r, "entity"))
		})
	})
	r.Delete("/entityTypes/{entityType}/entities/{entity}", func(w http.ResponseWriter, r *http.Request) {
		s.event(w, r, http.StatusOK, func() error {
			return s.store.removeEntity(param(r, "entityType"), param(r, "entity"))
		})
	})
	r.Get("/entityTypes/{entityType}/entities/{entity}", func(w http.ResponseWriter, r *http.Request) {
		entity := param(r, "entity")
		present, err := s.store.containsEntity(param(r, "entityType"), entity)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.existence(w, r, present, entity, errEntityNotFound(entity))
	})
}

func (s *Server) routeMappings(r chi.Router) {
	// user ↔ group
	r.Post("/userToGroupMappings/user/{user}/group/{group}", func(w http.ResponseWriter, r *http.Request) {
		s.event(w, r, http.StatusCreated, func() error {
			return s.store.addUserToGroup(param(r, "user"), param(r, "group"))
		})
	})
	r.Delete("/userToGroupMappings/user/{user}/group/{group}", func(w http.ResponseWriter, r *http.Request) {
		s.event(w, r, http.StatusOK, func() error {
			return s.store.removeUserToGroup(param(r, "user"), param(r, "group"))
		})
	})
	r.Get("/userToGroupMappings/user/{user}", func(w http.ResponseWriter, r *http.Request) {
		user := param(r, "user")
		groups, err := s.store.userGroups(user, indirect(r))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		elements := make([]userGroupElement, 0, len(groups))
		for _, g := range groups {
			elements = append(elements, userGroupElement{User: user, Group: g})
		}
		s.writeJSON(w, http.StatusOK, elements)
	})
	r.Get("/userToGroupMappings/group/{group}", func(w http.ResponseWriter, r *http.Request) {
		group := param(r, "group")
		users, err := s.store.groupUsers(group, indirect(r))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		elements := make([]userGroupElement, 0, len(users))
		for _, u := range users {
			elements = append(elements, userGroupElement{User: u, Group: group})
		}
		s.writeJSON(w, http.StatusOK, elements)
	})

	// group ↔ group
	r.Post("/groupToGroupMappings/fromGroup/{fromGroup}/toGroup/{toGroup}", func(w http.ResponseWriter, r *http.Request) {
		s.event(w, r, http.StatusCreated, func() error {
			return s.store.addGroupToGroup(param(r, "fromGroup"), param(r, "toGroup"))
		})
	})
	r.Delete("/groupToGroupMappings/fromGroup/{fromGroup}/toGroup/{toGroup}", func(w http.ResponseWriter, r *http.Request) {
		s.event(w, r, http.StatusOK, func() error {
			return s.store.removeGroupToGroup(param(r, "fromGroup"), param(r, "toGroup"))
		})
	})
	r.Get("/groupToGroupMappings/group/{group}", func(w http.ResponseWriter, r *http.Request) {
		groups, err := s.store.groupGroups(param(r, "group"), indirect(r))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, groupElements(groups))
	})
	r.Get("/groupToGroupReverseMappings/group/{group}", func(w http.ResponseWriter, r *http.Request) {
		groups, err := s.store.groupGroupsReverse(param(r, "group"), indirect(r))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, groupElements(groups))
	})

	// user/group ↔ component + access level
	r.Post("/userToApplicationComponentAndAccessLevelMappings/user/{user}/applicationComponent/{component}/accessLevel/{accessLevel}", func(w http.ResponseWriter, r *http.Request) {
		s.event(w, r, http.StatusCreated, func() error {
			return s.store.addUserComponent(param(r, "user"), pairParam(r))
		})
	})
	r.Delete("/userToApplicationComponentAndAccessLevelMappings/user/{user}/applicationComponent/{component}/accessLevel/{accessLevel}", func(w http.ResponseWriter, r *http.Request) {
		s.event(w, r, http.StatusOK, func() error {
			return s.store.removeUserComponent(param(r, "user"), pairParam(r))
		})
	})
	r.Get("/userToApplicationComponentAndAccessLevelMappings/user/{user}", func(w http.ResponseWriter, r *http.Request) {
		user := param(r, "user")
		pairs, err := s.store.userComponentPairs(user, indirect(r))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		elements := make([]userComponentElement, 0, len(pairs))
		for _, p := range pairs {
			elements = append(elements, userComponentElement{
				User: user, ApplicationComponent: p.Component, AccessLevel: p.AccessLevel,
			})
		}
		s.writeJSON(w, http.StatusOK, elements)
	})
	r.Post("/groupToApplicationComponentAndAccessLevelMappings/group/{group}/applicationComponent/{component}/accessLevel/{accessLevel}", func(w http.ResponseWriter, r *http.Request) {
		s.event(w, r, http.StatusCreated, func() error {
			return s.store.addGroupComponent(param(r, "group"), pairParam(r))
		})
	})
	r.Delete("/groupToApplicationComponentAndAccessLevelMappings/group/{group}/applicationComponent/{component}/accessLevel/{accessLevel}", func(w http.ResponseWriter, r *http.Request) {
		s.event(w, r, http.StatusOK, func() error {
			return s.store.removeGroupComponent(param(r, "group"), pairParam(r))
		})
	})
	r.Get("/groupToApplicationComponentAndAccessLevelMappings/group/{group}", func(w http.ResponseWriter, r *http.Request) {
		group := param(r, "group")
		pairs, err := s.store.groupComponentPairs(group, indirect(r))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		elements := make([]groupComponentElement, 0, len(pairs))
		for _, p := range pairs {
			elements = append(elements, groupComponentElement{
				Group: group, ApplicationComponent: p.Component, AccessLevel: p.AccessLevel,
			})
		}
		s.writeJSON(w, http.StatusOK, elements)
	})
	r.Get("/applicationComponentAndAccessLevelToUserMappings/applicationComponent/{component}/accessLevel/{accessLevel}", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, userElements(s.store.componentUsers(pairParam(r), indirect(r))))
	})
	r.Get("/applicationComponentAndAccessLevelToGroupMappings/applicationComponent/{component}/accessLevel/{accessLevel}", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, groupElements(s.store.componentGroups(pairParam(r), indirect(r))))
	})

	// user/group ↔ entity
	r.Post("/userToEntityMappings/user/{user}/entityType/{entityType}/entity/{entity}", func(w http.ResponseWriter, r *http.Request) {
		s.event(w, r, http.StatusCreated, func() error {
			return s.store.addUserEntity(param(r, "user"), refParam(r))
		})
	})
	r.Delete("/userToEntityMappings/user/{user}/entityType/{entityType}/entity/{entity}", func(w http.ResponseWriter, r *http.Request) {
		s.event(w, r, http.StatusOK, func() error {
			return s.store.removeUserEntity(param(r, "user"), refParam(r))
		})
	})
	r.Get("/userToEntityMappings/user/{user}", func(w http.ResponseWriter, r *http.Request) {
		user := param(r, "user")
		refs, err := s.store.userEntityRefs(user, indirect(r))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, userEntityElements(user, refs))
	})
	r.Get("/userToEntityMappings/user/{user}/entityType/{entityType}", func(w http.ResponseWriter, r *http.Request) {
		user := param(r, "user")
		refs, err := s.store.userEntityRefsForType(user, param(r, "entityType"), indirect(r))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, userEntityElements(user, refs))
	})
	r.Post("/groupToEntityMappings/group/{group}/entityType/{entityType}/entity/{entity}", func(w http.ResponseWriter, r *http.Request) {
		s.event(w, r, http.StatusCreated, func() error {
			return s.store.addGroupEntity(param(r, "group"), refParam(r))
		})
	})
	r.Delete("/groupToEntityMappings/group/{group}/entityType/{entityType}/entity/{entity}", func(w http.ResponseWriter, r *http.Request) {
		s.event(w, r, http.StatusOK, func() error {
			return s.store.removeGroupEntity(param(r, "group"), refParam(r))
		})
	})
	r.Get("/groupToEntityMappings/group/{group}", func(w http.ResponseWriter, r *http.Request) {
		group := param(r, "group")
		refs, err := s.store.groupEntityRefs(group, indirect(r))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, groupEntityElements(group, refs))
	})
	r.Get("/groupToEntityMappings/group/{group}/entityType/{entityType}", func(w http.ResponseWriter, r *http.Request) {
		group := param(r, "group")
		refs, err := s.store.groupEntityRefsForType(group, param(r, "entityType"), indirect(r))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, groupEntityElements(group, refs))
	})
	r.Get("/entityToUserMappings/entityType/{entityType}/entity/{entity}", func(w http.ResponseWriter, r *http.Request) {
		users, err := s.store.entityUsers(refParam(r), indirect(r))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, userElements(users))
	})
	r.Get("/entityToGroupMappings/entityType/{entityType}/entity/{entity}", func(w http.ResponseWriter, r *http.Request) {
		groups, err := s.store.entityGroups(refParam(r), indirect(r))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, groupElements(groups))
	})
}

func (s *Server) routeAccessChecks(r chi.Router) {
	r.Get("/dataElementAccess/applicationComponent/user/{user}/applicationComponent/{component}/accessLevel/{accessLevel}", func(w http.ResponseWriter, r *http.Request) {
		hasAccess, err := s.store.hasComponentAccess(param(r, "user"), pairParam(r))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, hasAccess)
	})
	r.Get("/dataElementAccess/entity/user/{user}/entityType/{entityType}/entity/{entity}", func(w http.ResponseWriter, r *http.Request) {
		hasAccess, err := s.store.hasEntityAccess(param(r, "user"), refParam(r))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, hasAccess)
	})
}

func pairParam(r *http.Request) componentAndAccess {
	return componentAndAccess{
		Component:   param(r, "component"),
		AccessLevel: param(r, "accessLevel"),
	}
}

func refParam(r *http.Request) entityRef {
	return entityRef{
		EntityType: param(r, "entityType"),
		Entity:     param(r, "entity"),
	}
}

func userElements(users []string) []userElement {
	out := make([]userElement, 0, len(users))
	for _, u := range users {
		out = append(out, userElement{User: u})
	}
	return out
}

func groupElements(groups []string) []groupElement {
	out := make([]groupElement, 0, len(groups))
	for _, g := range groups {
		out = append(out, groupElement{Group: g})
	}
	return out
}

func userEntityElements(user string, refs []entityRef) []userEntityElement {
	out := make([]userEntityElement, 0, len(refs))
	for _, ref := range refs {
		out = append(out, userEntityElement{User: user, EntityType: ref.EntityType, Entity: ref.Entity})
	}
	return out
}

func groupEntityElements(group string, refs []entityRef) []groupEntityElement {
	out := make([]groupEntityElement, 0, len(refs))
	for _, ref := range refs {
		out = append(out, groupEntityElement{Group: group, EntityType: ref.EntityType, Entity: ref.Entity})
	}
	return out
}
