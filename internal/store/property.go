package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const propertyColumns = `id, name, COALESCE(address, ''), COALESCE(siret, ''), acquisition_date,
	total_price, land_value, building_value, furniture_value, acquisition_costs,
	is_active, created_at, updated_at`

func scanProperty(row pgx.Row) (*Property, error) {
	var p Property
	err := row.Scan(
		&p.ID, &p.Name, &p.Address, &p.SIRET, &p.AcquisitionDate,
		&p.TotalPrice, &p.LandValue, &p.BuildingValue, &p.FurnitureValue, &p.AcquisitionCosts,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan property: %w", err)
	}
	return &p, nil
}

// CreateProperty inserts a property and returns it with generated fields set.
func (s *Store) CreateProperty(ctx context.Context, p *Property) (*Property, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO properties (name, address, siret, acquisition_date,
			total_price, land_value, building_value, furniture_value, acquisition_costs)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+propertyColumns,
		p.Name, p.Address, p.SIRET, p.AcquisitionDate,
		p.TotalPrice, p.LandValue, p.BuildingValue, p.FurnitureValue, p.AcquisitionCosts,
	)
	created, err := scanProperty(row)
	if err != nil {
		return nil, fmt.Errorf("insert property: %w", err)
	}
	return created, nil
}

// GetProperty returns the property by id, ErrNotFound if absent.
func (s *Store) GetProperty(ctx context.Context, id int) (*Property, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id)
	return scanProperty(row)
}

// ListProperties returns all active properties ordered by id.
func (s *Store) ListProperties(ctx context.Context) ([]Property, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+propertyColumns+` FROM properties WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query properties: %w", err)
	}
	defer rows.Close()

	var out []Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// UpdateProperty updates the mutable fields of a property.
func (s *Store) UpdateProperty(ctx context.Context, p *Property) (*Property, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE properties
		SET name = $2, address = $3, siret = $4, acquisition_date = $5,
			total_price = $6, land_value = $7, building_value = $8,
			furniture_value = $9, acquisition_costs = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING `+propertyColumns,
		p.ID, p.Name, p.Address, p.SIRET, p.AcquisitionDate,
		p.TotalPrice, p.LandValue, p.BuildingValue, p.FurnitureValue, p.AcquisitionCosts,
	)
	return scanProperty(row)
}

// DeactivateProperty soft-deletes a property.
func (s *Store) DeactivateProperty(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, `UPDATE properties SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate property %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
