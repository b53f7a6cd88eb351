// internal/storage/postgres.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"shelfkeeper/internal/apperr"
)

// PostgresRepository stores units and shelves in the placards and shelves tables.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const unitColumns = `id, name, storage_type, location, capacity, description, date_created`

const shelfColumns = `id, name, placard_name, position, capacity, description, date_created`

func (r *PostgresRepository) InsertUnit(ctx context.Context, u *Unit) error {
	query := `
		INSERT INTO placards (id, name, storage_type, location, capacity, description, date_created)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Name, string(u.StorageType), u.Location, u.Capacity, u.Description, u.DateCreated)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *PostgresRepository) GetUnit(ctx context.Context, id uuid.UUID) (*Unit, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+unitColumns+` FROM placards WHERE id = $1`, id)
	u, err := scanUnit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("placard", id.String())
	}
	return u, err
}

func (r *PostgresRepository) GetUnitByName(ctx context.Context, name string) (*Unit, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+unitColumns+` FROM placards WHERE name = $1`, name)
	u, err := scanUnit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("placard", name)
	}
	return u, err
}

func (r *PostgresRepository) ListUnits(ctx context.Context) ([]Unit, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+unitColumns+` FROM placards ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, *u)
	}
	return units, rows.Err()
}

func (r *PostgresRepository) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM placards WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOne(res, "placard", id)
}

func (r *PostgresRepository) InsertShelf(ctx context.Context, s *Shelf) error {
	query := `
		INSERT INTO shelves (id, name, placard_name, position, capacity, description, date_created)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.Name, s.PlacardName, s.Position, s.Capacity, s.Description, s.DateCreated)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *PostgresRepository) GetShelf(ctx context.Context, id uuid.UUID) (*Shelf, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+shelfColumns+` FROM shelves WHERE id = $1`, id)
	s, err := scanShelf(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("shelf", id.String())
	}
	return s, err
}

func (r *PostgresRepository) FindShelf(ctx context.Context, placard, name string) (*Shelf, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+shelfColumns+` FROM shelves WHERE placard_name = $1 AND name = $2`, placard, name)
	s, err := scanShelf(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("shelf", placard+"/"+name)
	}
	return s, err
}

func (r *PostgresRepository) ListShelves(ctx context.Context, placard string) ([]Shelf, error) {
	query := `SELECT ` + shelfColumns + ` FROM shelves WHERE ($1 = '' OR placard_name = $1) ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, placard)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shelves []Shelf
	for rows.Next() {
		s, err := scanShelf(rows)
		if err != nil {
			return nil, err
		}
		shelves = append(shelves, *s)
	}
	return shelves, rows.Err()
}

func (r *PostgresRepository) DeleteShelf(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shelves WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOne(res, "shelf", id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUnit(row scanner) (*Unit, error) {
	u := &Unit{}
	var storageType string
	if err := row.Scan(&u.ID, &u.Name, &storageType, &u.Location, &u.Capacity, &u.Description, &u.DateCreated); err != nil {
		return nil, err
	}
	u.StorageType = StorageType(storageType)
	u.DateCreated = u.DateCreated.UTC()
	return u, nil
}

func scanShelf(row scanner) (*Shelf, error) {
	s := &Shelf{}
	if err := row.Scan(&s.ID, &s.Name, &s.PlacardName, &s.Position, &s.Capacity, &s.Description, &s.DateCreated); err != nil {
		return nil, err
	}
	s.DateCreated = s.DateCreated.UTC()
	return s, nil
}

func expectOne(res sql.Result, kind string, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return apperr.NotFound(kind, id.String())
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
