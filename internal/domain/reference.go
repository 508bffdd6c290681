package domain

// EntityType names an entity owned by another service.
type EntityType string

const (
	EntityHost  EntityType = "Host"
	EntityGuest EntityType = "Guest"
)

// EntityRef is a weak reference to an entity resolved elsewhere. It asserts type
// and identity only; the referenced entity may not exist. It is never a
// substitute for a loaded entity and must not be cached as one.
type EntityRef struct {
	TypeName EntityType `json:"__typename"`
	ID       string     `json:"id"`
}

// HostRef references the host with the given id.
func HostRef(id string) EntityRef { return EntityRef{TypeName: EntityHost, ID: id} }

// GuestRef references the guest with the given id.
func GuestRef(id string) EntityRef { return EntityRef{TypeName: EntityGuest, ID: id} }
