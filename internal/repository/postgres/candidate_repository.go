package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"candidate-tracker-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(ctx context.Context, c *domain.Candidate) error {
	query := `INSERT INTO candidates (name, email, phone, position_applied, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
              RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		c.Name, c.Email, c.Phone, c.PositionApplied, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	query := `SELECT id, name, email, phone, position_applied, status, created_at, updated_at
              FROM candidates WHERE id = $1`
	var c domain.Candidate
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.PositionApplied, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *candidateRepository) Update(ctx context.Context, c *domain.Candidate) error {
	query := `UPDATE candidates
              SET name=$2, email=$3, phone=$4, position_applied=$5, status=$6, updated_at=NOW()
              WHERE id=$1
              RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.PositionApplied, c.Status,
	).Scan(&c.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// UpdateStatus mutates only the status column, leaving all other fields untouched.
func (r *candidateRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Candidate, error) {
	query := `UPDATE candidates SET status=$2, updated_at=NOW() WHERE id=$1
              RETURNING id, name, email, phone, position_applied, status, created_at, updated_at`
	var c domain.Candidate
	err := r.db.QueryRow(ctx, query, id, status).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.PositionApplied, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *candidateRepository) Delete(ctx context.Context, id int64) (string, error) {
	var name string
	err := r.db.QueryRow(ctx, `DELETE FROM candidates WHERE id = $1 RETURNING name`, id).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return name, nil
}

func (r *candidateRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM candidates WHERE email = $1 AND id <> $2)`,
		email, excludeID,
	).Scan(&exists)
	return exists, err
}

// escapeLike neutralizes LIKE wildcards in user-supplied search input.
var escapeLike = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Fetch returns one page of candidates matching the filter plus the total
// match count. Filter precedence: status equality, then substring search on
// name/email, then ordering, then pagination.
func (r *candidateRepository) Fetch(ctx context.Context, f domain.CandidateFilter) ([]domain.Candidate, int64, error) {
	var conds []string
	var args []interface{}

	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike.Replace(f.Search)+"%")
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", len(args), len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM candidates`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	// Ordering is whitelisted; anything else falls back to newest-first.
	orderCol := "created_at"
	if f.OrderBy == "name" {
		orderCol = "name"
	}
	dir := "ASC"
	if f.Descending {
		dir = "DESC"
	}

	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)
	query := fmt.Sprintf(
		`SELECT id, name, email, phone, position_applied, status, created_at, updated_at
         FROM candidates%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		where, orderCol, dir, len(args)-1, len(args),
	)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.PositionApplied, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return candidates, total, nil
}
