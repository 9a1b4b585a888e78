package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
	"github.com/teamledger/teamledger-backend/internal/service/apikey"
)

// apiKeyService defines the minimal interface needed by APIKeyHandler.
type apiKeyService interface {
	Create(ctx context.Context, orgID uuid.UUID, input apikey.CreateInput) (*apikey.CreateResult, error)
	List(ctx context.Context, orgID uuid.UUID) ([]domain.APIKey, error)
	Revoke(ctx context.Context, orgID, keyID uuid.UUID) (*domain.APIKey, error)
}

// APIKeyHandler serves API key REST endpoints. All routes require the
// admin scope: key management is an administrative capability.
type APIKeyHandler struct {
	svc apiKeyService
	log *slog.Logger
}

// NewAPIKeyHandler creates an APIKeyHandler.
func NewAPIKeyHandler(svc apiKeyService, logger *slog.Logger) *APIKeyHandler {
	return &APIKeyHandler{svc: svc, log: logger.With("handler", "apikey")}
}

type createKeyRequest struct {
	Name      string     `json:"name"`
	Scopes    []string   `json:"scopes"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type keyResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	KeyPrefix string     `json:"key_prefix"`
	Scopes    []string   `json:"scopes"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type createKeyResponse struct {
	keyResponse
	// Secret is present only in the creation response. It is not stored
	// and cannot be retrieved again.
	Secret string `json:"secret"`
}

// Create handles POST /api/v1/api-keys.
func (h *APIKeyHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := orgPrincipal(w, r, domain.ScopeAdmin)
	if !ok {
		return
	}

	var req createKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	result, err := h.svc.Create(r.Context(), p.OrgID, apikey.CreateInput{
		Name:      req.Name,
		Scopes:    req.Scopes,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusCreated, createKeyResponse{
		keyResponse: toKeyResponse(result.Key),
		Secret:      result.Secret,
	})
}

// List handles GET /api/v1/api-keys.
func (h *APIKeyHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := orgPrincipal(w, r, domain.ScopeAdmin)
	if !ok {
		return
	}

	keys, err := h.svc.List(r.Context(), p.OrgID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]keyResponse, 0, len(keys))
	for i := range keys {
		out = append(out, toKeyResponse(&keys[i]))
	}

	writeData(w, http.StatusOK, out)
}

// Revoke handles DELETE /api/v1/api-keys/{keyID}.
func (h *APIKeyHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	p, ok := orgPrincipal(w, r, domain.ScopeAdmin)
	if !ok {
		return
	}

	keyID, ok := pathUUID(w, r, "keyID")
	if !ok {
		return
	}

	key, err := h.svc.Revoke(r.Context(), p.OrgID, keyID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, toKeyResponse(key))
}

func toKeyResponse(k *domain.APIKey) keyResponse {
	return keyResponse{
		ID:        k.ID.String(),
		Name:      k.Name,
		KeyPrefix: k.KeyPrefix,
		Scopes:    k.Scopes.Slice(),
		IsActive:  k.IsActive,
		CreatedAt: k.CreatedAt,
		ExpiresAt: k.ExpiresAt,
	}
}
