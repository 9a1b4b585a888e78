package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
	"github.com/teamledger/teamledger-backend/internal/service/organization"
)

// organizationService defines the minimal interface needed by
// OrganizationHandler.
type organizationService interface {
	Create(ctx context.Context, userID uuid.UUID, input organization.CreateInput) (*domain.Organization, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Organization, error)
	GenerateInvite(ctx context.Context, userID, orgID uuid.UUID) (string, error)
	Join(ctx context.Context, userID uuid.UUID, token string) (*domain.Membership, error)
}

// orgSwitcher re-issues the session credential for a new active tenant.
type orgSwitcher interface {
	SwitchOrganization(ctx context.Context, userID, orgID uuid.UUID) (string, error)
}

// OrganizationHandler serves organization REST endpoints.
type OrganizationHandler struct {
	svc      organizationService
	switcher orgSwitcher
	log      *slog.Logger
}

// NewOrganizationHandler creates an OrganizationHandler.
func NewOrganizationHandler(svc organizationService, switcher orgSwitcher, logger *slog.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		svc:      svc,
		switcher: switcher,
		log:      logger.With("handler", "organization"),
	}
}

type createOrgRequest struct {
	Name string `json:"name"`
}

type orgResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

type switchResponse struct {
	AccessToken string `json:"access_token"`
}

type inviteResponse struct {
	InviteToken string `json:"invite_token"`
}

type joinRequest struct {
	Token string `json:"token"`
}

type membershipResponse struct {
	OrganizationID string `json:"organization_id"`
	Role           string `json:"role"`
}

// Create handles POST /api/v1/organizations.
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := sessionPrincipal(w, r)
	if !ok {
		return
	}

	var req createOrgRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	org, err := h.svc.Create(r.Context(), p.UserID, organization.CreateInput{Name: req.Name})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusCreated, toOrgResponse(org))
}

// List handles GET /api/v1/organizations. A user-only session is enough:
// listing own memberships is the one thing it authorizes.
func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := sessionPrincipal(w, r)
	if !ok {
		return
	}

	orgs, err := h.svc.ListForUser(r.Context(), p.UserID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]orgResponse, 0, len(orgs))
	for i := range orgs {
		out = append(out, toOrgResponse(&orgs[i]))
	}

	writeData(w, http.StatusOK, out)
}

// Switch handles POST /api/v1/organizations/{orgID}/switch.
func (h *OrganizationHandler) Switch(w http.ResponseWriter, r *http.Request) {
	p, ok := sessionPrincipal(w, r)
	if !ok {
		return
	}

	orgID, ok := pathUUID(w, r, "orgID")
	if !ok {
		return
	}

	token, err := h.switcher.SwitchOrganization(r.Context(), p.UserID, orgID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, switchResponse{AccessToken: token})
}

// Invite handles POST /api/v1/organizations/{orgID}/invite.
func (h *OrganizationHandler) Invite(w http.ResponseWriter, r *http.Request) {
	p, ok := sessionPrincipal(w, r)
	if !ok {
		return
	}

	orgID, ok := pathUUID(w, r, "orgID")
	if !ok {
		return
	}

	token, err := h.svc.GenerateInvite(r.Context(), p.UserID, orgID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusCreated, inviteResponse{InviteToken: token})
}

// Join handles POST /api/v1/organizations/join.
func (h *OrganizationHandler) Join(w http.ResponseWriter, r *http.Request) {
	p, ok := sessionPrincipal(w, r)
	if !ok {
		return
	}

	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	m, err := h.svc.Join(r.Context(), p.UserID, req.Token)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, membershipResponse{
		OrganizationID: m.OrgID.String(),
		Role:           m.Role.String(),
	})
}

func toOrgResponse(o *domain.Organization) orgResponse {
	return orgResponse{
		ID:        o.ID.String(),
		Name:      o.Name,
		Slug:      o.Slug,
		CreatedAt: o.CreatedAt,
	}
}
