package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/doughlab/authd/internal/authd/domain"
	"github.com/doughlab/authd/internal/authd/service"
	"github.com/doughlab/authd/internal/authd/store"
	"github.com/doughlab/authd/pkg/httpx"
	"github.com/doughlab/authd/pkg/slogx"
)

// TenantsHandler manages business locations. Everything except listing is
// admin only; the list feeds public registration pickers.
type TenantsHandler struct {
	Tenants *service.TenantService
}

type tenantRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Address string `json:"address" validate:"required,max=255"`
}

type tenantDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func tenantResponse(t domain.Tenant) tenantDTO {
	return tenantDTO{
		ID:        t.ID,
		Name:      t.Name,
		Address:   t.Address,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (h *TenantsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req tenantRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	tenant, err := h.Tenants.CreateTenant(ctx, service.TenantParams{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		log.Error("create tenant failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "create tenant failed")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]int64{"id": tenant.ID})
}

func (h *TenantsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	filter := store.TenantFilter{
		Query:   r.URL.Query().Get("q"),
		Page:    queryInt(r, "page", 1),
		PerPage: queryInt(r, "perPage", 20),
	}

	tenants, total, err := h.Tenants.ListTenants(ctx, filter)
	if err != nil {
		log.Error("list tenants failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "list tenants failed")
		return
	}

	data := make([]tenantDTO, 0, len(tenants))
	for _, t := range tenants {
		data = append(data, tenantResponse(t))
	}

	httpx.WriteJSON(w, http.StatusOK, listResponse[tenantDTO]{
		Data:    data,
		Total:   total,
		Page:    filter.Page,
		PerPage: filter.PerPage,
	})
}

func (h *TenantsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	tenant, err := h.Tenants.GetTenantByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "tenant does not exist")
			return
		}
		log.Error("get tenant failed", "tenant_id", id, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "get tenant failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tenantResponse(tenant))
}

func (h *TenantsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req tenantRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	tenant, err := h.Tenants.UpdateTenant(ctx, id, service.TenantParams{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "tenant does not exist")
			return
		}
		log.Error("update tenant failed", "tenant_id", id, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "update tenant failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tenantResponse(tenant))
}

func (h *TenantsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Tenants.DeleteTenant(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "tenant does not exist")
			return
		}
		log.Error("delete tenant failed", "tenant_id", id, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "delete tenant failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]int64{"id": id})
}
