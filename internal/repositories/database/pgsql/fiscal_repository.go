package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fincore-app/fincore/internal/apperrors"
	"github.com/fincore-app/fincore/internal/core/domain"
	portsrepo "github.com/fincore-app/fincore/internal/core/ports/repositories"
	"github.com/fincore-app/fincore/internal/models"
	"github.com/fincore-app/fincore/internal/utils/mapping"
)

type PgxFiscalRepository struct {
	db dbConn
}

// newPgxFiscalRepository creates a new repository for fiscal calendar data.
func newPgxFiscalRepository(pool *pgxpool.Pool) portsrepo.FiscalRepository {
	return &PgxFiscalRepository{db: pool}
}

var _ portsrepo.FiscalRepository = (*PgxFiscalRepository)(nil)

const yearColumns = `year_id, name, start_date, end_date, status, created_at, last_updated_at`
const periodColumns = `period_id, year_id, name, start_date, end_date, status, created_at, last_updated_at`

func scanYear(row pgx.Row) (models.FiscalYear, error) {
	var m models.FiscalYear
	err := row.Scan(&m.YearID, &m.Name, &m.StartDate, &m.EndDate, &m.Status, &m.CreatedAt, &m.LastUpdatedAt)
	return m, err
}

func scanPeriod(row pgx.Row) (models.FiscalPeriod, error) {
	var m models.FiscalPeriod
	err := row.Scan(&m.PeriodID, &m.YearID, &m.Name, &m.StartDate, &m.EndDate, &m.Status, &m.CreatedAt, &m.LastUpdatedAt)
	return m, err
}

// SaveYear inserts a new fiscal year.
func (r *PgxFiscalRepository) SaveYear(ctx context.Context, year domain.FiscalYear) error {
	m := mapping.ToModelFiscalYear(year)

	query := `
		INSERT INTO fiscal_years (` + yearColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query, m.YearID, m.Name, m.StartDate, m.EndDate, m.Status, m.CreatedAt, m.LastUpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: fiscal year %s already exists", apperrors.ErrConflict, m.YearID)
		}
		return fmt.Errorf("failed to save fiscal year %s: %w", m.YearID, err)
	}
	return nil
}

// FindYearByID retrieves a fiscal year by its identifier.
func (r *PgxFiscalRepository) FindYearByID(ctx context.Context, yearID string) (*domain.FiscalYear, error) {
	m, err := scanYear(r.db.QueryRow(ctx, `SELECT `+yearColumns+` FROM fiscal_years WHERE year_id = $1;`, yearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal year %s: %w", yearID, err)
	}
	d := mapping.ToDomainFiscalYear(m)
	return &d, nil
}

// FindYearForDate retrieves the year containing the date, end inclusive.
func (r *PgxFiscalRepository) FindYearForDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error) {
	query := `SELECT ` + yearColumns + ` FROM fiscal_years WHERE start_date <= $1 AND end_date >= $1;`
	m, err := scanYear(r.db.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal year for date %s: %w", date.Format("2006-01-02"), err)
	}
	d := mapping.ToDomainFiscalYear(m)
	return &d, nil
}

// FindOverlappingYear retrieves any year intersecting [start, end].
func (r *PgxFiscalRepository) FindOverlappingYear(ctx context.Context, start, end time.Time) (*domain.FiscalYear, error) {
	query := `SELECT ` + yearColumns + ` FROM fiscal_years WHERE start_date <= $2 AND end_date >= $1 LIMIT 1;`
	m, err := scanYear(r.db.QueryRow(ctx, query, start, end))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find overlapping fiscal year: %w", err)
	}
	d := mapping.ToDomainFiscalYear(m)
	return &d, nil
}

// ListYears retrieves all years ordered by start date.
func (r *PgxFiscalRepository) ListYears(ctx context.Context) ([]domain.FiscalYear, error) {
	rows, err := r.db.Query(ctx, `SELECT `+yearColumns+` FROM fiscal_years ORDER BY start_date;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fiscal years: %w", err)
	}
	defer rows.Close()

	years := []domain.FiscalYear{}
	for rows.Next() {
		m, err := scanYear(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fiscal year row: %w", err)
		}
		years = append(years, mapping.ToDomainFiscalYear(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fiscal year rows: %w", err)
	}
	return years, nil
}

// UpdateYear updates a fiscal year's mutable fields.
func (r *PgxFiscalRepository) UpdateYear(ctx context.Context, year domain.FiscalYear) error {
	m := mapping.ToModelFiscalYear(year)

	query := `
		UPDATE fiscal_years
		SET name = $2, start_date = $3, end_date = $4, status = $5, last_updated_at = $6
		WHERE year_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, m.YearID, m.Name, m.StartDate, m.EndDate, m.Status, m.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update fiscal year %s: %w", m.YearID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SavePeriod inserts a new fiscal period.
func (r *PgxFiscalRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)

	query := `
		INSERT INTO fiscal_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query, m.PeriodID, m.YearID, m.Name, m.StartDate, m.EndDate, m.Status, m.CreatedAt, m.LastUpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return fmt.Errorf("%w: fiscal period %s already exists", apperrors.ErrConflict, m.PeriodID)
			}
			if pgErr.Code == "23503" {
				return fmt.Errorf("%w: fiscal year %s does not exist", apperrors.ErrValidation, m.YearID)
			}
		}
		return fmt.Errorf("failed to save fiscal period %s: %w", m.PeriodID, err)
	}
	return nil
}

// FindPeriodByID retrieves a period by its identifier.
func (r *PgxFiscalRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	m, err := scanPeriod(r.db.QueryRow(ctx, `SELECT `+periodColumns+` FROM fiscal_periods WHERE period_id = $1;`, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal period %s: %w", periodID, err)
	}
	d := mapping.ToDomainFiscalPeriod(m)
	return &d, nil
}

// FindPeriodForDate retrieves the period containing the date. Dates not
// covered by any period surface as apperrors.ErrNotFound.
func (r *PgxFiscalRepository) FindPeriodForDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE start_date <= $1 AND end_date >= $1;`
	m, err := scanPeriod(r.db.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal period for date %s: %w", date.Format("2006-01-02"), err)
	}
	d := mapping.ToDomainFiscalPeriod(m)
	return &d, nil
}

// ListPeriodsByYear retrieves a year's periods ordered by start date.
func (r *PgxFiscalRepository) ListPeriodsByYear(ctx context.Context, yearID string) ([]domain.FiscalPeriod, error) {
	rows, err := r.db.Query(ctx, `SELECT `+periodColumns+` FROM fiscal_periods WHERE year_id = $1 ORDER BY start_date;`, yearID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fiscal periods for year %s: %w", yearID, err)
	}
	defer rows.Close()

	periods := []domain.FiscalPeriod{}
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fiscal period row: %w", err)
		}
		periods = append(periods, mapping.ToDomainFiscalPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fiscal period rows: %w", err)
	}
	return periods, nil
}

// UpdatePeriod updates a fiscal period's mutable fields.
func (r *PgxFiscalRepository) UpdatePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)

	query := `
		UPDATE fiscal_periods
		SET name = $2, start_date = $3, end_date = $4, status = $5, last_updated_at = $6
		WHERE period_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, m.PeriodID, m.Name, m.StartDate, m.EndDate, m.Status, m.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update fiscal period %s: %w", m.PeriodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
