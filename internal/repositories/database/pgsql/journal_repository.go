package pgsql

import (
	"context"
	"database/sql"
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

type PgxJournalRepository struct {
	db                dbConn
	pool              *pgxpool.Pool // nil when bound to a transaction
	entryNumberPrefix string
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool, entryNumberPrefix string) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{db: pool, pool: pool, entryNumberPrefix: entryNumberPrefix}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// WithTx runs fn against a repository bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (r *PgxJournalRepository) WithTx(ctx context.Context, fn func(repo portsrepo.JournalRepository) error) error {
	if r.pool == nil {
		// Already inside a transaction, just reuse it.
		return fn(r)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", apperrors.ErrStorage, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txRepo := &PgxJournalRepository{db: tx, entryNumberPrefix: r.entryNumberPrefix}
	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %v", apperrors.ErrStorage, err)
	}
	return nil
}

// NextEntryNumber increments the persistent entry counter and formats
// the next number as PREFIX + yyyymmdd + zero-padded sequence. The
// sequence is global, so numbers stay monotonic across days, and the
// pad is wide enough that lexical order matches numeric order for any
// realistic entry count. Running inside the caller's transaction means
// a rolled-back create consumes no number.
func (r *PgxJournalRepository) NextEntryNumber(ctx context.Context, now time.Time) (string, error) {
	var seq int64
	err := r.db.QueryRow(ctx, `
		UPDATE entry_counters SET value = value + 1
		WHERE counter_name = 'journal_entry'
		RETURNING value;
	`).Scan(&seq)
	if err != nil {
		return "", fmt.Errorf("failed to advance entry counter: %w", err)
	}
	return fmt.Sprintf("%s%s%010d", r.entryNumberPrefix, now.Format("20060102"), seq), nil
}

const entryColumns = `entry_id, entry_number, entry_date, description, reference, currency_code, status, reversing_entry_id, original_entry_id, created_at, last_updated_at`

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	var reference sql.NullString
	var reversingID, originalID sql.NullString
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&reference,
		&m.CurrencyCode,
		&m.Status,
		&reversingID,
		&originalID,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return models.JournalEntry{}, err
	}
	m.Reference = reference.String
	m.ReversingEntryID = reversingID.String
	m.OriginalEntryID = originalID.String
	return m, nil
}

// SaveEntry persists a new entry header and its lines in submitted order.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)

	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db.Exec(ctx, query,
		m.EntryID,
		m.EntryNumber,
		m.EntryDate,
		m.Description,
		nullableID(m.Reference),
		m.CurrencyCode,
		m.Status,
		nullableID(m.ReversingEntryID),
		nullableID(m.OriginalEntryID),
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: entry %s already exists", apperrors.ErrConflict, m.EntryID)
		}
		return fmt.Errorf("failed to save entry %s: %w", m.EntryID, err)
	}

	return r.insertLines(ctx, entry)
}

func (r *PgxJournalRepository) insertLines(ctx context.Context, entry domain.JournalEntry) error {
	query := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, debit_minor, credit_minor, description, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for i, line := range entry.Lines {
		ml := mapping.ToModelJournalLine(line)
		_, err := r.db.Exec(ctx, query,
			ml.LineID,
			ml.EntryID,
			ml.AccountID,
			ml.DebitMinor,
			ml.CreditMinor,
			ml.Description,
			i,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" {
				return fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, ml.AccountID)
			}
			return fmt.Errorf("failed to save line %s of entry %s: %w", ml.LineID, ml.EntryID, err)
		}
	}
	return nil
}

// FindEntryByID retrieves an entry with its lines in stored order.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.db.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	linesByEntry, err := r.findLinesByEntryIDs(ctx, []string{entry.EntryID}, map[string]string{entry.EntryID: entry.CurrencyCode})
	if err != nil {
		return nil, err
	}
	entry.Lines = linesByEntry[entry.EntryID]
	return &entry, nil
}

func (r *PgxJournalRepository) findLinesByEntryIDs(ctx context.Context, entryIDs []string, currencies map[string]string) (map[string][]domain.JournalLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalLine{}, nil
	}

	query := `
		SELECT line_id, entry_id, account_id, debit_minor, credit_minor, description
		FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, position;
	`
	rows, err := r.db.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.JournalLine)
	for rows.Next() {
		var ml models.JournalLine
		var description sql.NullString
		if err := rows.Scan(&ml.LineID, &ml.EntryID, &ml.AccountID, &ml.DebitMinor, &ml.CreditMinor, &description); err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		ml.Description = description.String
		result[ml.EntryID] = append(result[ml.EntryID], mapping.ToDomainJournalLine(ml, currencies[ml.EntryID]))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", err)
	}
	return result, nil
}

// ListEntries retrieves a page of entries with lines, newest first, plus
// the total match count. An AccountID filter matches entries with at
// least one line against the account.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter portsrepo.EntryFilter, page, perPage int) ([]domain.JournalEntry, int64, error) {
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}

	where := ` WHERE 1=1`
	args := []any{}
	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		where += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM journal_lines l WHERE l.entry_id = e.entry_id AND l.account_id = $%d)", len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		where += fmt.Sprintf(" AND e.entry_date >= $%d", len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		where += fmt.Sprintf(" AND e.entry_date <= $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where += fmt.Sprintf(" AND e.status = $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM journal_entries e` + where + `;`
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count entries: %w", err)
	}

	args = append(args, perPage, (page-1)*perPage)
	listQuery := `SELECT ` + entryColumns + ` FROM journal_entries e` + where +
		fmt.Sprintf(" ORDER BY e.entry_date DESC, e.entry_number DESC LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	entryIDs := []string{}
	currencies := map[string]string{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entry := mapping.ToDomainJournalEntry(m)
		entries = append(entries, entry)
		entryIDs = append(entryIDs, entry.EntryID)
		currencies[entry.EntryID] = entry.CurrencyCode
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating entry rows: %w", err)
	}

	linesByEntry, err := r.findLinesByEntryIDs(ctx, entryIDs, currencies)
	if err != nil {
		return nil, 0, err
	}
	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].EntryID]
	}
	return entries, total, nil
}

// UpdateEntry rewrites a draft's header and replaces its lines.
func (r *PgxJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)

	query := `
		UPDATE journal_entries
		SET entry_date = $2, description = $3, reference = $4, currency_code = $5, last_updated_at = $6
		WHERE entry_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		m.EntryID,
		m.EntryDate,
		m.Description,
		nullableID(m.Reference),
		m.CurrencyCode,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
		return fmt.Errorf("failed to clear lines of entry %s: %w", m.EntryID, err)
	}
	return r.insertLines(ctx, entry)
}

// DeleteEntry removes an entry and its lines.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete lines of entry %s: %w", entryID, err)
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateEntryStatus transitions status from 'from' to 'to' as a single
// compare-and-swap. No row updated means the entry was absent or not in
// 'from'; both read as a lost race to the caller.
func (r *PgxJournalRepository) UpdateEntryStatus(ctx context.Context, entryID string, from, to domain.EntryStatus, updatedAt time.Time) (bool, error) {
	query := `
		UPDATE journal_entries
		SET status = $3, last_updated_at = $4
		WHERE entry_id = $1 AND status = $2;
	`
	tag, err := r.db.Exec(ctx, query, entryID, string(from), string(to), updatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to update status of entry %s: %w", entryID, err)
	}
	return tag.RowsAffected() == 1, nil
}

// LinkReversal records the reversing entry's ID on the original.
func (r *PgxJournalRepository) LinkReversal(ctx context.Context, originalEntryID, reversingEntryID string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET reversing_entry_id = $2, last_updated_at = $3
		WHERE entry_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, originalEntryID, reversingEntryID, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to link reversal on entry %s: %w", originalEntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// HasLinesForAccount reports whether any entry references the account.
func (r *PgxJournalRepository) HasLinesForAccount(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM journal_lines WHERE account_id = $1);`, accountID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lines for account %s: %w", accountID, err)
	}
	return exists, nil
}

// HasPostedLinesForAccount reports whether any posted entry references
// the account.
func (r *PgxJournalRepository) HasPostedLinesForAccount(ctx context.Context, accountID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM journal_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE l.account_id = $1 AND e.status = 'POSTED'
		);
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check posted lines for account %s: %w", accountID, err)
	}
	return exists, nil
}

// HasDraftEntriesBetween reports whether any draft entry is dated inside
// [start, end], both inclusive.
func (r *PgxJournalRepository) HasDraftEntriesBetween(ctx context.Context, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM journal_entries
			WHERE status = 'DRAFT' AND entry_date >= $1 AND entry_date <= $2
		);
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check draft entries between %s and %s: %w", start, end, err)
	}
	return exists, nil
}
