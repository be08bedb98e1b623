package errors

// KeyError reports a problem with a key argument: empty key on any
// operation, or a get/delete against a key the index doesn't have.
type KeyError struct {
	*baseError
	key       []byte
	operation string
}

// NewKeyError builds a KeyError for the given operation ("Set", "Get",
// "Delete") and offending key.
func NewKeyError(operation string, key []byte, msg string) *KeyError {
	return &KeyError{
		baseError: NewBaseError(nil, ErrorCodeInvalidKey, msg),
		key:       key,
		operation: operation,
	}
}

// Key returns the key that failed validation or lookup.
func (e *KeyError) Key() []byte { return e.key }

// Operation returns the name of the operation that rejected the key.
func (e *KeyError) Operation() string { return e.operation }
