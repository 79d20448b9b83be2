package access

// SessionContext is the immutable identity snapshot a screen is entered with.
// It is built once from the authenticated token at request time and passed
// explicitly; nothing in the core reads identity ambiently.
type SessionContext struct {
	Role       string
	Email      string
	EmployeeID string
	PersonID   int64
}

// IsRegistrar reports whether the session holds the registrar role
func (s SessionContext) IsRegistrar() bool {
	return s.Role == RoleRegistrar
}
