package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/edutrack/apiserver/types"
)

// InstituteRepository handles persistence for institutes.
type InstituteRepository struct {
	db *sql.DB
}

func NewInstituteRepository(db *sql.DB) *InstituteRepository {
	return &InstituteRepository{db: db}
}

func (r *InstituteRepository) GetByID(ctx context.Context, id int) (types.Institute, error) {
	const query = `
		SELECT id, name, address, contact_email, created_at, updated_at
		FROM institutes
		WHERE id = $1`
	var institute types.Institute
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&institute.ID,
		&institute.Name,
		&institute.Address,
		&institute.ContactEmail,
		&institute.CreatedAt,
		&institute.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Institute{}, ErrNotFound
		}
		return types.Institute{}, err
	}
	return institute, nil
}

func (r *InstituteRepository) List(ctx context.Context) ([]types.Institute, error) {
	const query = `
		SELECT id, name, address, contact_email, created_at, updated_at
		FROM institutes
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	institutes := []types.Institute{}
	for rows.Next() {
		var institute types.Institute
		if err := rows.Scan(
			&institute.ID,
			&institute.Name,
			&institute.Address,
			&institute.ContactEmail,
			&institute.CreatedAt,
			&institute.UpdatedAt,
		); err != nil {
			return nil, err
		}
		institutes = append(institutes, institute)
	}
	return institutes, rows.Err()
}

func (r *InstituteRepository) Create(ctx context.Context, institute types.Institute) (types.Institute, error) {
	now := time.Now()
	institute.CreatedAt = now
	institute.UpdatedAt = now

	const query = `
		INSERT INTO institutes (name, address, contact_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		institute.Name,
		institute.Address,
		institute.ContactEmail,
		institute.CreatedAt,
		institute.UpdatedAt,
	).Scan(&institute.ID); err != nil {
		return types.Institute{}, err
	}
	return institute, nil
}

func (r *InstituteRepository) Update(ctx context.Context, institute types.Institute) (types.Institute, error) {
	institute.UpdatedAt = time.Now()

	const query = `
		UPDATE institutes
		SET name = $1,
			address = $2,
			contact_email = $3,
			updated_at = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(
		ctx,
		query,
		institute.Name,
		institute.Address,
		institute.ContactEmail,
		institute.UpdatedAt,
		institute.ID,
	)
	if err != nil {
		return types.Institute{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Institute{}, err
	}
	if affected == 0 {
		return types.Institute{}, ErrNotFound
	}
	return institute, nil
}

func (r *InstituteRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM institutes WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
