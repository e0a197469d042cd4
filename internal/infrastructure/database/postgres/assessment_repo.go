package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "github.com/planwise-nz/planwise/pkg/errors"
)

// AssessmentRecord is one persisted assessment summary.
type AssessmentRecord struct {
	ID             uuid.UUID
	Address        string
	ZoneCode       string
	ProjectType    string
	OverlayCount   int
	DegradedFields []string
	CreatedAt      time.Time
}

// AssessmentRepository stores assessment history rows.
type AssessmentRepository struct {
	pool *pgxpool.Pool
}

func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

// Save inserts one record.  A zero ID gets a generated UUID, a zero
// CreatedAt the current time.
func (r *AssessmentRepository) Save(ctx context.Context, record AssessmentRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if record.DegradedFields == nil {
		record.DegradedFields = []string{}
	}

	const q = `
		INSERT INTO assessments (id, address, zone_code, project_type, overlay_count, degraded_fields, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, q,
		record.ID, record.Address, record.ZoneCode, record.ProjectType,
		record.OverlayCount, record.DegradedFields, record.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeHistoryWriteFailed, "inserting assessment")
	}
	return nil
}

// GetByID returns one record or an assessment-not-found error.
func (r *AssessmentRepository) GetByID(ctx context.Context, id uuid.UUID) (AssessmentRecord, error) {
	const q = `
		SELECT id, address, zone_code, project_type, overlay_count, degraded_fields, created_at
		FROM assessments WHERE id = $1`

	var record AssessmentRecord
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&record.ID, &record.Address, &record.ZoneCode, &record.ProjectType,
		&record.OverlayCount, &record.DegradedFields, &record.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return AssessmentRecord{}, apperrors.New(apperrors.ErrCodeAssessmentNotFound, id.String())
	}
	if err != nil {
		return AssessmentRecord{}, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "loading assessment")
	}
	return record, nil
}

// ListRecent returns up to limit records, newest first.
func (r *AssessmentRepository) ListRecent(ctx context.Context, limit int) ([]AssessmentRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	const q = `
		SELECT id, address, zone_code, project_type, overlay_count, degraded_fields, created_at
		FROM assessments ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "listing assessments")
	}
	defer rows.Close()

	var out []AssessmentRecord
	for rows.Next() {
		var record AssessmentRecord
		if err := rows.Scan(
			&record.ID, &record.Address, &record.ZoneCode, &record.ProjectType,
			&record.OverlayCount, &record.DegradedFields, &record.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "scanning assessment row")
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "iterating assessments")
	}
	return out, nil
}
