package sfrest

import (
	"context"
	"encoding/json"
	"fmt"

	httpclient "github.com/santoku/sf/pkg/http"
	"go.uber.org/zap"
)

// QueryWithSOQL runs a SOQL query and returns the decoded records.
//
// The query is form-encoded into the path, so spaces become '+' — the shape
// ObjectNameFromPath expects when it derives the queried object for
// validation. Use this when you know which object the data resides in and
// want to retrieve records from it, e.g. "SELECT Id, Name FROM Contact".
func (h *ObjectsHandler) QueryWithSOQL(ctx context.Context, query string) ([]map[string]any, error) {
	path, err := httpclient.BuildURL("", "query", map[string]string{"q": query})
	if err != nil {
		return nil, fmt.Errorf("failed to build query path: %w", err)
	}

	body, err := h.DoRequest(ctx, MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var queryResp QueryResponse
	if err := json.Unmarshal([]byte(body), &queryResp); err != nil {
		return nil, fmt.Errorf("failed to parse query response: %w", err)
	}

	h.logger.Debug("SOQL query completed",
		zap.Int("total_size", queryResp.TotalSize),
		zap.Int("records", len(queryResp.Records)))

	return queryResp.Records, nil
}
