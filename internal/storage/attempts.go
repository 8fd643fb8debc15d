package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/cubetrainer/internal/trainer"
)

// AttemptRecord is a stored training attempt.
type AttemptRecord struct {
	AttemptID   string
	AlgorithmID string
	Mode        trainer.Mode
	StartedAt   time.Time
	Duration    time.Duration
	Moves       int
	Mistakes    int
	Stars       int
	Completed   bool
	DeviceName  *string
}

// AttemptRepository stores training attempts.
type AttemptRepository struct {
	db *DB
}

// NewAttemptRepository creates a new attempt repository.
func NewAttemptRepository(db *DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// Create stores an attempt and returns its ID. deviceName is empty for
// keyboard attempts.
func (r *AttemptRepository) Create(a trainer.Attempt, deviceName string) (string, error) {
	id := uuid.New().String()

	startedAt := a.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	var devicePtr *string
	if deviceName != "" {
		devicePtr = &deviceName
	}

	_, err := r.db.Exec(`
		INSERT INTO attempts (attempt_id, algorithm_id, mode, started_at, duration_ms, move_count, mistakes, stars, completed, device_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, a.AlgorithmID, string(a.Mode), startedAt.UTC().Format(timeLayout),
		a.Duration.Milliseconds(), a.Moves, a.Mistakes, a.Stars, a.Completed, devicePtr)
	if err != nil {
		return "", fmt.Errorf("failed to create attempt: %w", err)
	}

	return id, nil
}

const attemptColumns = `attempt_id, algorithm_id, mode, started_at, duration_ms, move_count, mistakes, stars, completed, device_name`

// Get retrieves an attempt by ID. It returns nil when there is none.
func (r *AttemptRepository) Get(attemptID string) (*AttemptRecord, error) {
	row := r.db.QueryRow(`SELECT `+attemptColumns+` FROM attempts WHERE attempt_id = ?`, attemptID)
	a, err := scanAttempt(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	return a, nil
}

// List retrieves the most recent attempts.
func (r *AttemptRepository) List(limit int) ([]AttemptRecord, error) {
	return r.query(`
		SELECT `+attemptColumns+`
		FROM attempts
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
}

// ListByAlgorithm retrieves the most recent attempts of one algorithm.
func (r *AttemptRepository) ListByAlgorithm(algorithmID string, limit int) ([]AttemptRecord, error) {
	return r.query(`
		SELECT `+attemptColumns+`
		FROM attempts
		WHERE algorithm_id = ?
		ORDER BY started_at DESC
		LIMIT ?
	`, algorithmID, limit)
}

// Best retrieves the fastest completed attempt of an algorithm. It returns
// nil when the algorithm has never been completed.
func (r *AttemptRepository) Best(algorithmID string) (*AttemptRecord, error) {
	row := r.db.QueryRow(`
		SELECT `+attemptColumns+`
		FROM attempts
		WHERE algorithm_id = ? AND completed = 1
		ORDER BY duration_ms ASC, started_at ASC
		LIMIT 1
	`, algorithmID)

	a, err := scanAttempt(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get best attempt: %w", err)
	}
	return a, nil
}

// Count returns the number of stored attempts.
func (r *AttemptRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM attempts").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count attempts: %w", err)
	}
	return n, nil
}

func (r *AttemptRepository) query(q string, args ...any) ([]AttemptRecord, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []AttemptRecord
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	return attempts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAttempt(s scanner) (*AttemptRecord, error) {
	var a AttemptRecord
	var mode, startedAtStr string
	var durationMs int64

	err := s.Scan(
		&a.AttemptID, &a.AlgorithmID, &mode, &startedAtStr, &durationMs,
		&a.Moves, &a.Mistakes, &a.Stars, &a.Completed, &a.DeviceName,
	)
	if err != nil {
		return nil, err
	}

	a.Mode = trainer.Mode(mode)
	a.Duration = time.Duration(durationMs) * time.Millisecond
	a.StartedAt, err = time.Parse(timeLayout, startedAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start time: %w", err)
	}
	return &a, nil
}
