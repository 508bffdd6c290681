package domain

// Role is the marketplace role carried by an authenticated identity.
type Role string

const (
	RoleHost  Role = "Host"
	RoleGuest Role = "Guest"
)

// IsValid checks if the Role is one of the defined constants.
func (r Role) IsValid() bool {
	switch r {
	case RoleHost, RoleGuest:
		return true
	}
	return false
}

// RequestContext is the per-call identity. It is built once at the transport
// boundary and handed to every operation by value; nothing mutates it afterwards.
type RequestContext struct {
	userID string
	role   Role
	email  string
}

// NewRequestContext creates the identity for a single call. An empty userID
// produces an anonymous context.
func NewRequestContext(userID string, role Role, email string) RequestContext {
	return RequestContext{userID: userID, role: role, email: email}
}

// Anonymous is the context of a call without credentials.
func Anonymous() RequestContext { return RequestContext{} }

func (rc RequestContext) UserID() string { return rc.userID }
func (rc RequestContext) Role() Role     { return rc.role }
func (rc RequestContext) Email() string  { return rc.email }

// IsAuthenticated reports whether the call carries an identity.
func (rc RequestContext) IsAuthenticated() bool { return rc.userID != "" }

// RequireIdentity fails with an authentication error when no userId is present.
func (rc RequestContext) RequireIdentity() error {
	if !rc.IsAuthenticated() {
		return NewAuthenticationError()
	}
	return nil
}

// RequireRole checks identity first and then the role. A role mismatch is a
// forbidden error carrying message.
func (rc RequestContext) RequireRole(role Role, message string) error {
	if err := rc.RequireIdentity(); err != nil {
		return err
	}
	if rc.role != role {
		return NewForbiddenError(message)
	}
	return nil
}
