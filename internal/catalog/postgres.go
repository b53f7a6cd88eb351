// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"shelfkeeper/internal/apperr"
)

// PostgresRepository stores books in the books table.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const bookColumns = `id, title, author, edition, publisher, isbn, barcode, count, placard, shelf,
	description, language, pages, publication_year, category, status, date_added, last_modified`

func (r *PostgresRepository) Insert(ctx context.Context, b *Book) error {
	query := `
		INSERT INTO books (` + bookColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.Title, b.Author, b.Edition, b.Publisher, b.ISBN, b.Barcode, b.Count, b.Placard, b.Shelf,
		b.Description, b.Language, b.Pages, b.PublicationYear, b.Category, string(b.Status), b.DateAdded, b.LastModified,
	)
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*Book, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id)
	b, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("book", id.String())
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return b, nil
}

// Update overwrites every column; concurrent edits are last-write-wins.
func (r *PostgresRepository) Update(ctx context.Context, b *Book) error {
	query := `
		UPDATE books
		SET title = $2, author = $3, edition = $4, publisher = $5, isbn = $6, barcode = $7,
		    count = $8, placard = $9, shelf = $10, description = $11, language = $12,
		    pages = $13, publication_year = $14, category = $15, status = $16, last_modified = $17
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		b.ID, b.Title, b.Author, b.Edition, b.Publisher, b.ISBN, b.Barcode, b.Count, b.Placard, b.Shelf,
		b.Description, b.Language, b.Pages, b.PublicationYear, b.Category, string(b.Status), b.LastModified,
	)
	if err != nil {
		return err
	}
	return expectOne(res, b.ID)
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOne(res, id)
}

func (r *PostgresRepository) List(ctx context.Context) ([]Book, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+bookColumns+` FROM books ORDER BY date_added, seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}
	return books, rows.Err()
}

func (r *PostgresRepository) CountPlaced(ctx context.Context, placard, shelf string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM books WHERE placard = $1 AND ($2 = '' OR shelf = $2)`,
		placard, shelf,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(row scanner) (*Book, error) {
	b := &Book{}
	var status string
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.Edition, &b.Publisher, &b.ISBN, &b.Barcode, &b.Count, &b.Placard, &b.Shelf,
		&b.Description, &b.Language, &b.Pages, &b.PublicationYear, &b.Category, &status, &b.DateAdded, &b.LastModified,
	)
	if err != nil {
		return nil, err
	}
	b.Status = Status(status)
	b.DateAdded = b.DateAdded.UTC()
	b.LastModified = b.LastModified.UTC()
	return b, nil
}

func expectOne(res sql.Result, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("book", id.String())
	}
	return nil
}
