package errors

// DomainError is a stable error with a machine-readable code that API
// handlers translate into response bodies.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}
