package providers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"zorgkaart/internal/common"
	"zorgkaart/internal/dbx"
	"zorgkaart/internal/directory"
)

// PostgresRepository implements provider storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const providerColumns = `id, naam, categorie, adres, telefoon, email, website, labels, opmerkingen`

func (r *PostgresRepository) List(ctx context.Context) ([]directory.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers ORDER BY naam, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select providers: %w", err)
	}
	defer rows.Close()

	result := []directory.Provider{}
	for rows.Next() {
		p, err := scanProvider(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*directory.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	p, err := scanProvider(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *directory.Provider) (*directory.Provider, error) {
	labels, opmerkingen, err := marshalDocumentFields(p)
	if err != nil {
		return nil, err
	}

	p.ID = uuid.NewString()

	query := `
		INSERT INTO providers (` + providerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if _, err := r.db.ExecContext(ctx, query,
		p.ID, p.Naam, p.Categorie, p.Adres, p.Telefoon, p.Email, p.Website, labels, opmerkingen,
	); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

// Update overwrites all provider fields except opmerkingen; the comment
// sequence only changes through UpdateOpmerkingen.
func (r *PostgresRepository) Update(ctx context.Context, p *directory.Provider) error {
	labels, _, err := marshalDocumentFields(p)
	if err != nil {
		return err
	}

	query := `
		UPDATE providers
		SET naam = $2, categorie = $3, adres = $4, telefoon = $5, email = $6, website = $7, labels = $8
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		p.ID, p.Naam, p.Categorie, p.Adres, p.Telefoon, p.Email, p.Website, labels)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return oneRowAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM providers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return oneRowAffected(res)
}

func (r *PostgresRepository) UpdateOpmerkingen(ctx context.Context, id string, opmerkingen []directory.Comment) error {
	if opmerkingen == nil {
		opmerkingen = []directory.Comment{}
	}
	raw, err := json.Marshal(opmerkingen)
	if err != nil {
		return fmt.Errorf("marshal opmerkingen: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `UPDATE providers SET opmerkingen = $2 WHERE id = $1`, id, raw)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return oneRowAffected(res)
}

func oneRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func marshalDocumentFields(p *directory.Provider) ([]byte, []byte, error) {
	if p.Labels == nil {
		p.Labels = []string{}
	}
	if p.Opmerkingen == nil {
		p.Opmerkingen = []directory.Comment{}
	}
	labels, err := json.Marshal(p.Labels)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal labels: %w", err)
	}
	opmerkingen, err := json.Marshal(p.Opmerkingen)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal opmerkingen: %w", err)
	}
	return labels, opmerkingen, nil
}

func scanProvider(scan func(dest ...any) error) (*directory.Provider, error) {
	var (
		p              directory.Provider
		rawLabels      []byte
		rawOpmerkingen []byte
	)
	if err := scan(
		&p.ID, &p.Naam, &p.Categorie, &p.Adres, &p.Telefoon, &p.Email, &p.Website,
		&rawLabels, &rawOpmerkingen,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rawLabels, &p.Labels); err != nil {
		return nil, fmt.Errorf("unmarshal labels: %w", err)
	}
	if err := json.Unmarshal(rawOpmerkingen, &p.Opmerkingen); err != nil {
		return nil, fmt.Errorf("unmarshal opmerkingen: %w", err)
	}
	return &p, nil
}
