package sfrest

// Method is an HTTP request method supported by the handler. Requests are
// dispatched through an explicit switch over these constants; anything else
// is rejected with UnsupportedMethodError.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// AuthResponse represents the OAuth token response from the password grant
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	InstanceURL string `json:"instance_url"`
	ID          string `json:"id"`
	TokenType   string `json:"token_type"`
	IssuedAt    string `json:"issued_at"`
	Signature   string `json:"signature"`
}

// QueryResponse represents the response from the query endpoint
type QueryResponse struct {
	TotalSize int              `json:"totalSize"`
	Done      bool             `json:"done"`
	Records   []map[string]any `json:"records"`
}

type sobjectListResponse struct {
	SObjects []struct {
		Name string `json:"name"`
	} `json:"sobjects"`
}

type describeResponse struct {
	Fields []struct {
		Name string `json:"name"`
	} `json:"fields"`
}
