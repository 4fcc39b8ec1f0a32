package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/moodlog/internal/db"
	"github.com/alexanderramin/moodlog/internal/domain"
)

// SQLiteTaskRecordRepo implements TaskRecordRepo on SQLite. Build it over a
// *sql.Tx (via db.UnitOfWork) when Create must be atomic.
type SQLiteTaskRecordRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRecordRepo creates a new SQLiteTaskRecordRepo.
func NewSQLiteTaskRecordRepo(conn db.DBTX) *SQLiteTaskRecordRepo {
	return &SQLiteTaskRecordRepo{db: conn}
}

const selectRecordWithTags = `SELECT r.id, r.description, r.logged_at, r.created_at, t.emotion
	FROM task_emotion_records r
	LEFT JOIN task_emotion_tags t ON t.record_id = r.id`

func (r *SQLiteTaskRecordRepo) Create(ctx context.Context, rec *domain.TaskEmotionRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO task_emotion_records (id, description, logged_at, created_at) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.Description, formatTime(rec.LoggedAt), formatTime(rec.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task record: %w", err)
	}

	seen := make(map[domain.Emotion]bool, len(rec.Emotions))
	position := 0
	for _, e := range rec.Emotions {
		if seen[e] {
			continue
		}
		seen[e] = true
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO task_emotion_tags (record_id, emotion, position) VALUES (?, ?, ?)`,
			rec.ID, string(e), position,
		); err != nil {
			return fmt.Errorf("inserting emotion tag %s: %w", e, err)
		}
		position++
	}
	return nil
}

func (r *SQLiteTaskRecordRepo) GetByID(ctx context.Context, id string) (*domain.TaskEmotionRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectRecordWithTags+` WHERE r.id = ? ORDER BY t.position`, id)
	if err != nil {
		return nil, fmt.Errorf("getting task record: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("task record %s: %w", id, ErrNotFound)
	}
	return &records[0], nil
}

func (r *SQLiteTaskRecordRepo) ListBetween(ctx context.Context, start, end time.Time) ([]domain.TaskEmotionRecord, error) {
	query := selectRecordWithTags + `
		WHERE r.logged_at >= ? AND r.logged_at < ?
		ORDER BY r.logged_at, r.id, t.position`
	rows, err := r.db.QueryContext(ctx, query, formatTime(start), formatTime(end))
	if err != nil {
		return nil, fmt.Errorf("listing task records in window: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *SQLiteTaskRecordRepo) ListRecent(ctx context.Context, limit int) ([]domain.TaskEmotionRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	query := selectRecordWithTags + `
		WHERE r.id IN (SELECT id FROM task_emotion_records ORDER BY logged_at DESC, id DESC LIMIT ?)
		ORDER BY r.logged_at DESC, r.id DESC, t.position`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent task records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *SQLiteTaskRecordRepo) EmotionCounts(ctx context.Context, start, end time.Time) (map[domain.Emotion]int, error) {
	query := `SELECT t.emotion, COUNT(*)
		FROM task_emotion_tags t
		JOIN task_emotion_records r ON r.id = t.record_id
		WHERE r.logged_at >= ? AND r.logged_at < ?
		GROUP BY t.emotion`
	rows, err := r.db.QueryContext(ctx, query, formatTime(start), formatTime(end))
	if err != nil {
		return nil, fmt.Errorf("counting emotions: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Emotion]int)
	for rows.Next() {
		var emotion string
		var n int
		if err := rows.Scan(&emotion, &n); err != nil {
			return nil, fmt.Errorf("scanning emotion count: %w", err)
		}
		counts[domain.Emotion(emotion)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating emotion counts: %w", err)
	}
	return counts, nil
}

func (r *SQLiteTaskRecordRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM task_emotion_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task record %s: %w", id, ErrNotFound)
	}
	return nil
}

// scanRecords folds joined record/tag rows into records. Rows for one record
// must be adjacent.
func scanRecords(rows *sql.Rows) ([]domain.TaskEmotionRecord, error) {
	var records []domain.TaskEmotionRecord
	for rows.Next() {
		var id, description, loggedAtStr, createdAtStr string
		var emotion sql.NullString
		if err := rows.Scan(&id, &description, &loggedAtStr, &createdAtStr, &emotion); err != nil {
			return nil, fmt.Errorf("scanning task record row: %w", err)
		}

		if n := len(records); n == 0 || records[n-1].ID != id {
			rec, err := populateRecord(id, description, loggedAtStr, createdAtStr)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
		if emotion.Valid {
			last := &records[len(records)-1]
			last.Emotions = append(last.Emotions, domain.Emotion(emotion.String))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task records: %w", err)
	}
	return records, nil
}

func populateRecord(id, description, loggedAtStr, createdAtStr string) (domain.TaskEmotionRecord, error) {
	rec := domain.TaskEmotionRecord{ID: id, Description: description}
	var err error
	if rec.LoggedAt, err = parseTime("logged_at", loggedAtStr); err != nil {
		return domain.TaskEmotionRecord{}, err
	}
	if rec.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
		return domain.TaskEmotionRecord{}, err
	}
	return rec, nil
}
