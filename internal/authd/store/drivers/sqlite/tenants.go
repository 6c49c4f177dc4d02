package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/doughlab/authd/internal/authd/domain"
	"github.com/doughlab/authd/internal/authd/store"
)

type tenantsRepo struct {
	db *sql.DB
}

const tenantColumns = `id, name, address, created_at, updated_at`

func (r *tenantsRepo) CreateTenant(ctx context.Context, t domain.Tenant) (domain.Tenant, error) {
	ts := now()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tenants (name, address, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		t.Name, t.Address, ts, ts,
	)
	if err != nil {
		return domain.Tenant{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Tenant{}, err
	}

	t.ID = id
	t.CreatedAt = ts
	t.UpdatedAt = ts
	return t, nil
}

func (r *tenantsRepo) GetTenantByID(ctx context.Context, id int64) (domain.Tenant, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE id = ?`, id)
	return scanTenant(row)
}

func (r *tenantsRepo) ListTenants(ctx context.Context, f store.TenantFilter) ([]domain.Tenant, int, error) {
	where, args := tenantFilterClause(f)

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tenants`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageBounds(f.Page, f.PerPage)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tenantColumns+` FROM tenants`+where+` ORDER BY id LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tenants []domain.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, 0, err
		}
		tenants = append(tenants, t)
	}
	return tenants, total, rows.Err()
}

func (r *tenantsRepo) UpdateTenant(ctx context.Context, t domain.Tenant) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tenants SET name = ?, address = ?, updated_at = ? WHERE id = ?`,
		t.Name, t.Address, now(), t.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *tenantsRepo) DeleteTenant(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tenants WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func tenantFilterClause(f store.TenantFilter) (string, []any) {
	q := strings.TrimSpace(f.Query)
	if q == "" {
		return "", nil
	}
	pattern := "%" + q + "%"
	return " WHERE (name LIKE ? OR address LIKE ?)", []any{pattern, pattern}
}

func scanTenant(row rowScanner) (domain.Tenant, error) {
	var t domain.Tenant
	err := row.Scan(&t.ID, &t.Name, &t.Address, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Tenant{}, mapNotFound(err)
	}
	return t, nil
}
