package service

import (
	"context"

	"github.com/doughlab/authd/internal/authd/domain"
	"github.com/doughlab/authd/internal/authd/store"
)

// TenantService manages the business locations users get scoped to.
type TenantService struct {
	Store store.Store
}

type TenantParams struct {
	Name    string
	Address string
}

func (s *TenantService) CreateTenant(ctx context.Context, p TenantParams) (domain.Tenant, error) {
	return s.Store.Tenants().CreateTenant(ctx, domain.Tenant{
		Name:    p.Name,
		Address: p.Address,
	})
}

func (s *TenantService) GetTenantByID(ctx context.Context, id int64) (domain.Tenant, error) {
	return s.Store.Tenants().GetTenantByID(ctx, id)
}

func (s *TenantService) ListTenants(ctx context.Context, f store.TenantFilter) ([]domain.Tenant, int, error) {
	return s.Store.Tenants().ListTenants(ctx, f)
}

func (s *TenantService) UpdateTenant(ctx context.Context, id int64, p TenantParams) (domain.Tenant, error) {
	tenant, err := s.Store.Tenants().GetTenantByID(ctx, id)
	if err != nil {
		return domain.Tenant{}, err
	}

	tenant.Name = p.Name
	tenant.Address = p.Address

	if err := s.Store.Tenants().UpdateTenant(ctx, tenant); err != nil {
		return domain.Tenant{}, err
	}
	return tenant, nil
}

func (s *TenantService) DeleteTenant(ctx context.Context, id int64) error {
	return s.Store.Tenants().DeleteTenant(ctx, id)
}
