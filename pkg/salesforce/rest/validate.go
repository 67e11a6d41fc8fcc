package sfrest

import "slices"

// validatePayload checks every payload key against the object's field list
// and rejects the first unknown one. Only field presence is checked; values
// are passed through untyped.
func validatePayload(payload map[string]string, objectFields []string) error {
	for field := range payload {
		if !slices.Contains(objectFields, field) {
			return &InvalidFieldError{Field: field}
		}
	}
	return nil
}
