package domain

// Entity is the single capability a record type must supply to be served by
// the generic service and handler: an integer key that can be read and
// replaced. Implementations use pointer receivers, so the type parameter is
// always a pointer such as *Item.
type Entity interface {
	GetID() int64
	SetID(id int64)
}

// ObjectValidator is implemented by entities with rules spanning several
// fields. Each returned string is one object-level violation.
type ObjectValidator interface {
	Validate() []string
}

// ObjectNamer lets an entity choose the name reported with its object-level
// violations. Without it the lowercased type name is used.
type ObjectNamer interface {
	ObjectName() string
}
