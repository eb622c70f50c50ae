package structures

// Identity is the authenticated actor attached to a request after the
// bearer token has been verified.
type Identity struct {
	ID    string
	Email string
	Role  string
}
