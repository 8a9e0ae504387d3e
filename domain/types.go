package domain

// EntityTypeAndEntity pairs an entity with the entity type that contains it.
type EntityTypeAndEntity struct {
	EntityType string
	Entity     string
}

// ComponentAndAccessLevel pairs an application component with an access
// level. It is a value type; equality is structural.
type ComponentAndAccessLevel[TComponent, TAccess any] struct {
	ApplicationComponent TComponent
	AccessLevel          TAccess
}
