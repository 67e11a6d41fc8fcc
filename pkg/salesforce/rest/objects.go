package sfrest

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
)

// InsertObject creates a record of the given object type and returns the raw
// response body.
func (h *ObjectsHandler) InsertObject(ctx context.Context, objectName string, payload map[string]string) (string, error) {
	return h.DoRequest(ctx, MethodPost, "sobjects/"+objectName, payload)
}

// ModifyObject updates fields on an existing record.
func (h *ObjectsHandler) ModifyObject(ctx context.Context, objectName, recordID string, payload map[string]string) (string, error) {
	return h.DoRequest(ctx, MethodPatch, fmt.Sprintf("sobjects/%s/%s", objectName, recordID), payload)
}

// DeleteObject deletes an existing record.
func (h *ObjectsHandler) DeleteObject(ctx context.Context, objectName, recordID string) error {
	_, err := h.DoRequest(ctx, MethodDelete, fmt.Sprintf("sobjects/%s/%s", objectName, recordID), nil)
	return err
}

// RemainingDailyAPIRequests reports how many API requests the org may still
// issue today, taken from the limits endpoint.
func (h *ObjectsHandler) RemainingDailyAPIRequests(ctx context.Context) (int, error) {
	body, err := h.DoRequest(ctx, MethodGet, "limits", nil)
	if err != nil {
		return 0, err
	}

	remaining := gjson.Get(body, "DailyApiRequests.Remaining")
	if !remaining.Exists() {
		return 0, fmt.Errorf("limits response missing DailyApiRequests.Remaining")
	}

	return int(remaining.Int()), nil
}
