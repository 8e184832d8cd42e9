package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/apperror"
	domain "github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/history"
	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/paper"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, c *domain.Conversion) error {
	const query = `INSERT INTO conversions (paper_id, status, method, error, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		c.PaperID, string(c.Status), c.Method, c.Error,
		c.StartedAt.UTC().Format(time.RFC3339), c.CompletedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert conversion: %w", err)
	}

	c.ID, _ = res.LastInsertId()
	c.CreatedAt = time.Now().UTC()
	return nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*domain.Conversion, error) {
	const query = `SELECT id, paper_id, status, method, error, started_at, completed_at, created_at
		FROM conversions WHERE id = ?`

	c := &domain.Conversion{}
	var status, startedStr, completedStr, createdStr string
	var dbErr sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.PaperID, &status, &c.Method, &dbErr,
		&startedStr, &completedStr, &createdStr,
	)
	if err == sql.ErrNoRows {
		return nil, apperror.New(apperror.NotFound, "conversion not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get conversion: %w", err)
	}

	c.Status = paper.Status(status)
	if dbErr.Valid {
		c.Error = dbErr.String
	}
	c.StartedAt, _ = time.Parse(time.RFC3339, startedStr)
	c.CompletedAt, _ = time.Parse(time.RFC3339, completedStr)
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	return c, nil
}

func (r *Repository) List(ctx context.Context, paperID, status string) ([]domain.Conversion, error) {
	query := `SELECT id, paper_id, status, method, error, started_at, completed_at, created_at
		FROM conversions WHERE 1=1`

	var args []any
	if paperID != "" {
		query += " AND paper_id = ?"
		args = append(args, paperID)
	}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	query += " ORDER BY id DESC LIMIT 100"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list conversions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var conversions []domain.Conversion
	for rows.Next() {
		var c domain.Conversion
		var st, startedStr, completedStr, createdStr string
		var dbErr sql.NullString

		if err := rows.Scan(
			&c.ID, &c.PaperID, &st, &c.Method, &dbErr,
			&startedStr, &completedStr, &createdStr,
		); err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}

		c.Status = paper.Status(st)
		if dbErr.Valid {
			c.Error = dbErr.String
		}
		c.StartedAt, _ = time.Parse(time.RFC3339, startedStr)
		c.CompletedAt, _ = time.Parse(time.RFC3339, completedStr)
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		conversions = append(conversions, c)
	}

	return conversions, rows.Err()
}
