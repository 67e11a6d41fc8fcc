package sfrest

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// objectNames returns the names of all objects the org exposes, fetching and
// caching them on first use. The list is assumed static for the lifetime of
// the handler and is never refetched once populated. The fetch goes through
// DoRequest itself, so validation is suspended for the nested call.
func (h *ObjectsHandler) objectNames(ctx context.Context) ([]string, error) {
	if len(h.objectNamesCache) == 0 {
		h.logger.Debug("Object name cache empty, fetching sobjects")
		h.validateObject = false

		body, err := h.DoRequest(ctx, MethodGet, "sobjects", nil)
		if err != nil {
			return nil, err
		}

		var listResp sobjectListResponse
		if err := json.Unmarshal([]byte(body), &listResp); err != nil {
			return nil, fmt.Errorf("failed to parse sobjects response: %w", err)
		}

		names := make([]string, 0, len(listResp.SObjects))
		for _, sobject := range listResp.SObjects {
			names = append(names, sobject.Name)
		}
		h.objectNamesCache = names

		h.logger.Debug("Cached object names", zap.Int("count", len(names)))
	}

	return h.objectNamesCache, nil
}

// objectFields returns the field names of the given object, fetching and
// caching them on the first call per object. A failed describe is not
// cached; the next call retries from scratch.
func (h *ObjectsHandler) objectFields(ctx context.Context, objectName string) ([]string, error) {
	if _, ok := h.objectFieldsCache[objectName]; !ok {
		h.logger.Debug("Object field cache miss, describing object", zap.String("object", objectName))
		h.validateObject = false

		body, err := h.DoRequest(ctx, MethodGet, "sobjects/"+objectName+"/describe", nil)
		if err != nil {
			return nil, err
		}

		var descResp describeResponse
		if err := json.Unmarshal([]byte(body), &descResp); err != nil {
			return nil, fmt.Errorf("failed to parse describe response for %s: %w", objectName, err)
		}

		fields := make([]string, 0, len(descResp.Fields))
		for _, field := range descResp.Fields {
			fields = append(fields, field.Name)
		}
		h.objectFieldsCache[objectName] = fields

		h.logger.Debug("Cached object fields",
			zap.String("object", objectName),
			zap.Int("count", len(fields)))
	}

	return h.objectFieldsCache[objectName], nil
}
