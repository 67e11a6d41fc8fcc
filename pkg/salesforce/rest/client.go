// Package sfrest provides a client for the Salesforce core REST API.
//
// The central type is ObjectsHandler, a stateful connector that authenticates
// lazily with a password grant, caches the org schema (object names and
// per-object field names) on first use, and validates outgoing payloads
// against that schema before dispatching them. It is intended for the
// one-job-one-connector usage pattern: all operations are blocking and run
// strictly in sequence on the calling goroutine.
//
// More information on the Salesforce REST API:
// https://developer.salesforce.com/docs/atlas.en-us.api_rest.meta/api_rest/quickstart.htm
package sfrest

import (
	"context"
	"fmt"
	"slices"

	"github.com/santoku/sf/pkg/config"
	httpclient "github.com/santoku/sf/pkg/http"
	"go.uber.org/zap"
)

// ObjectsHandler manages operations on Salesforce objects through the REST
// API. Each handler owns its session and schema caches independently; no
// state is shared between instances.
//
// A handler must not be shared between goroutines. The validation guard and
// the schema caches are written without locking, and a concurrent caller
// could observe the guard disabled by an unrelated nested schema fetch.
// Give each goroutine its own handler instead.
type ObjectsHandler struct {
	config     *config.Config
	httpClient *httpclient.Client
	logger     *zap.Logger

	// Session state, populated once on first request. The token is never
	// refreshed; expiry surfaces as a RequestError with status 401.
	instanceURL   string
	accessToken   string
	authenticated bool

	objectNamesCache  []string
	objectFieldsCache map[string][]string

	// validateObject suspends object and payload validation while the
	// schema caches fetch through DoRequest themselves. It is re-armed
	// when the outer request completes successfully.
	validateObject bool
}

// NewObjectsHandler creates a new handler with default production logger
func NewObjectsHandler(cfg *config.Config) *ObjectsHandler {
	logger, _ := zap.NewProduction()
	return NewObjectsHandlerWithLogger(cfg, logger)
}

// NewObjectsHandlerWithLogger creates a new handler with a custom logger
func NewObjectsHandlerWithLogger(cfg *config.Config, logger *zap.Logger) *ObjectsHandler {
	return &ObjectsHandler{
		config:            cfg,
		httpClient:        httpclient.NewClientWithTimeout(logger, cfg.Timeout),
		logger:            logger,
		objectFieldsCache: make(map[string][]string),
		validateObject:    true,
	}
}

// DoRequest constructs and sends a request to the Salesforce REST API and
// returns the raw response body. The path is relative to the versioned API
// root, e.g. "sobjects/Contact". When the path addresses a specific object,
// the object is checked against the org schema; for POST and PATCH the
// payload fields are checked against the object's field list before anything
// is sent. The body is returned verbatim; parsing is the caller's
// responsibility.
//
// Nothing is retried: any non-2xx status is returned as a *RequestError
// carrying the status code and body.
func (h *ObjectsHandler) DoRequest(ctx context.Context, method Method, path string, payload map[string]string) (string, error) {
	if err := h.ensureAuthenticated(ctx); err != nil {
		return "", err
	}

	switch method {
	case MethodGet, MethodPost, MethodPatch, MethodDelete:
	default:
		return "", &UnsupportedMethodError{Method: method}
	}

	var objectName string
	if h.validateObject {
		objectName = ObjectNameFromPath(path)
		if objectName != "" {
			names, err := h.objectNames(ctx)
			if err != nil {
				return "", err
			}
			if !slices.Contains(names, objectName) {
				return "", &UnknownObjectError{Object: objectName}
			}
		}
	}

	endpoint := fmt.Sprintf("%s/services/data/v%.1f/%s", h.instanceURL, h.config.APIVersion, path)
	headers := map[string]string{
		"Authorization": "Bearer " + h.accessToken,
	}

	var resp *httpclient.Response
	var err error
	switch method {
	case MethodPost, MethodPatch:
		if len(payload) == 0 {
			return "", &MissingPayloadError{Method: method}
		}
		if h.validateObject && objectName != "" {
			fields, ferr := h.objectFields(ctx, objectName)
			if ferr != nil {
				return "", ferr
			}
			if verr := validatePayload(payload, fields); verr != nil {
				return "", verr
			}
		}
		if method == MethodPost {
			resp, err = h.httpClient.Post(ctx, endpoint, headers, payload)
		} else {
			resp, err = h.httpClient.Patch(ctx, endpoint, headers, payload)
		}
	case MethodGet:
		resp, err = h.httpClient.Get(ctx, endpoint, headers)
	case MethodDelete:
		resp, err = h.httpClient.Delete(ctx, endpoint, headers)
	}
	if err != nil {
		h.logger.Error("Request failed",
			zap.String("method", string(method)),
			zap.String("path", path),
			zap.Error(err))
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		h.logger.Error("Request rejected by Salesforce",
			zap.String("method", string(method)),
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(resp.Body)))
		return "", &RequestError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	// Re-arm validation. This is the point where a nested schema fetch
	// hands control back to the request that triggered it.
	h.validateObject = true

	h.logger.Debug("Request completed",
		zap.String("method", string(method)),
		zap.String("path", path),
		zap.Int("status_code", resp.StatusCode))

	return string(resp.Body), nil
}
