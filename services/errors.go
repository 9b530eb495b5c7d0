package services

// ErrorKind classifies a business-rule rejection. Controllers map kinds to
// HTTP status codes; the Code string is the stable message class a client
// can branch on.
type ErrorKind int

const (
	// KindValidation is malformed input the caller must fix before retrying.
	KindValidation ErrorKind = iota
	// KindNotFound means a referenced entity is absent.
	KindNotFound
	// KindInvalidState means the operation is illegal given the entity's
	// current lifecycle state.
	KindInvalidState
	// KindConflict is a uniqueness violation (duplicate pending offer,
	// duplicate review).
	KindConflict
	// KindForbidden means the actor is not entitled to act on this entity.
	KindForbidden
	// KindUnauthenticated means no resolved actor was supplied.
	KindUnauthenticated
)

// ServiceError is a typed business-rule rejection returned by the lifecycle
// services. None of these are retried internally.
type ServiceError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func validationError(code, message string) *ServiceError {
	return &ServiceError{Kind: KindValidation, Code: code, Message: message}
}

func notFoundError(code, message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Code: code, Message: message}
}

func invalidStateError(code, message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidState, Code: code, Message: message}
}

func conflictError(code, message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Code: code, Message: message}
}

func forbiddenError(code, message string) *ServiceError {
	return &ServiceError{Kind: KindForbidden, Code: code, Message: message}
}

func unauthenticatedError(code, message string) *ServiceError {
	return &ServiceError{Kind: KindUnauthenticated, Code: code, Message: message}
}

// Actor is the already-authenticated caller of a service operation. The
// HTTP layer resolves it from the validated token; services never consult
// ambient auth state.
type Actor struct {
	UserID uint
	Role   string
}
