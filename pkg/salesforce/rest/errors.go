package sfrest

import "fmt"

// AuthenticationError indicates the password-grant exchange was rejected or
// returned a structurally invalid response.
type AuthenticationError struct {
	StatusCode int
	Reason     string
}

func (e *AuthenticationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("authentication failed with status %d: %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

// UnsupportedMethodError indicates a method outside GET, POST, PATCH, DELETE.
type UnsupportedMethodError struct {
	Method Method
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("method %q isn't supported", string(e.Method))
}

// UnknownObjectError indicates the request path resolves to an object the org
// schema does not contain.
type UnknownObjectError struct {
	Object string
}

func (e *UnknownObjectError) Error() string {
	return fmt.Sprintf("%s isn't a valid object", e.Object)
}

// MissingPayloadError indicates a POST or PATCH request without a payload.
type MissingPayloadError struct {
	Method Method
}

func (e *MissingPayloadError) Error() string {
	return fmt.Sprintf("payload must be defined for a %s request", string(e.Method))
}

// InvalidFieldError reports the first payload field that is not part of the
// target object's schema.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("%s isn't a valid field", e.Field)
}

// RequestError carries any non-success HTTP status returned by Salesforce,
// with the response body verbatim.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}
