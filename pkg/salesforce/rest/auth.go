package sfrest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// ensureAuthenticated performs the password-grant exchange on first use.
// Once a session is established it is kept for the lifetime of the handler;
// a second call is a no-op.
func (h *ObjectsHandler) ensureAuthenticated(ctx context.Context) error {
	if h.authenticated {
		h.logger.Debug("Already authenticated, reusing session")
		return nil
	}
	return h.authenticate(ctx)
}

func (h *ObjectsHandler) authenticate(ctx context.Context) error {
	h.logger.Info("Authenticating with Salesforce", zap.String("url", h.config.AuthURL))

	form := map[string]string{
		"grant_type":    h.config.GrantType,
		"username":      h.config.Username,
		"password":      h.config.Password,
		"client_id":     h.config.ClientID,
		"client_secret": h.config.ClientSecret,
	}

	headers := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	}

	resp, err := h.httpClient.Post(ctx, h.config.AuthURL, headers, form)
	if err != nil {
		h.logger.Error("Authentication request failed", zap.Error(err), zap.String("url", h.config.AuthURL))
		return fmt.Errorf("authentication request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		h.logger.Error("Authentication failed",
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(resp.Body)))
		return &AuthenticationError{StatusCode: resp.StatusCode, Reason: string(resp.Body)}
	}

	var authResp AuthResponse
	if err := json.Unmarshal(resp.Body, &authResp); err != nil {
		h.logger.Error("Failed to parse authentication response", zap.Error(err))
		return &AuthenticationError{Reason: fmt.Sprintf("malformed response: %v", err)}
	}
	if authResp.InstanceURL == "" || authResp.AccessToken == "" {
		h.logger.Error("Authentication response missing instance_url or access_token")
		return &AuthenticationError{Reason: "response missing instance_url or access_token"}
	}

	h.instanceURL = authResp.InstanceURL
	h.accessToken = authResp.AccessToken
	h.authenticated = true

	h.logger.Info("Successfully authenticated",
		zap.String("instance_url", authResp.InstanceURL),
		zap.String("token_type", authResp.TokenType))

	return nil
}
