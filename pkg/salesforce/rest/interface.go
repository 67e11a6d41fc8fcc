package sfrest

import "context"

// ObjectsClient defines the interface for Salesforce object operations
type ObjectsClient interface {
	// DoRequest constructs and sends a request and returns the raw response body
	DoRequest(ctx context.Context, method Method, path string, payload map[string]string) (string, error)

	// QueryWithSOQL runs a SOQL query and returns the decoded records
	QueryWithSOQL(ctx context.Context, query string) ([]map[string]any, error)

	// InsertObject creates a record of the given object type
	InsertObject(ctx context.Context, objectName string, payload map[string]string) (string, error)

	// ModifyObject updates fields on an existing record
	ModifyObject(ctx context.Context, objectName, recordID string, payload map[string]string) (string, error)

	// DeleteObject deletes an existing record
	DeleteObject(ctx context.Context, objectName, recordID string) error

	// RemainingDailyAPIRequests reports the org's remaining daily API quota
	RemainingDailyAPIRequests(ctx context.Context) (int, error)
}

var _ ObjectsClient = (*ObjectsHandler)(nil)
