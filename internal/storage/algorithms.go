package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubetrainer"
)

// AlgorithmRepository stores custom algorithms.
type AlgorithmRepository struct {
	db *DB
}

// NewAlgorithmRepository creates a new algorithm repository.
func NewAlgorithmRepository(db *DB) *AlgorithmRepository {
	return &AlgorithmRepository{db: db}
}

// Save inserts or replaces a custom algorithm.
func (r *AlgorithmRepository) Save(alg cubetrainer.Algorithm) error {
	if alg.Category != cubetrainer.CategoryCustom {
		return fmt.Errorf("failed to save algorithm %s: category %s is not custom", alg.ID, alg.Category)
	}

	_, err := r.db.Exec(`
		INSERT INTO custom_algorithms (algorithm_id, name, description, moves, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(algorithm_id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			moves = excluded.moves
	`, alg.ID, alg.Name, alg.Description, alg.Notation(), time.Now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to save algorithm: %w", err)
	}
	return nil
}

// Get retrieves a custom algorithm by ID. It returns nil when there is none.
func (r *AlgorithmRepository) Get(id string) (*cubetrainer.Algorithm, error) {
	var alg cubetrainer.Algorithm
	var moves string

	err := r.db.QueryRow(`
		SELECT algorithm_id, name, description, moves
		FROM custom_algorithms
		WHERE algorithm_id = ?
	`, id).Scan(&alg.ID, &alg.Name, &alg.Description, &moves)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get algorithm: %w", err)
	}

	if err := decodeAlgorithm(&alg, moves); err != nil {
		return nil, err
	}
	return &alg, nil
}

// List retrieves every custom algorithm in creation order.
func (r *AlgorithmRepository) List() ([]cubetrainer.Algorithm, error) {
	rows, err := r.db.Query(`
		SELECT algorithm_id, name, description, moves
		FROM custom_algorithms
		ORDER BY created_at ASC, rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list algorithms: %w", err)
	}
	defer rows.Close()

	var algs []cubetrainer.Algorithm
	for rows.Next() {
		var alg cubetrainer.Algorithm
		var moves string
		if err := rows.Scan(&alg.ID, &alg.Name, &alg.Description, &moves); err != nil {
			return nil, fmt.Errorf("failed to scan algorithm: %w", err)
		}
		if err := decodeAlgorithm(&alg, moves); err != nil {
			return nil, err
		}
		algs = append(algs, alg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list algorithms: %w", err)
	}

	return algs, nil
}

// Delete deletes a custom algorithm. Its attempts are kept.
func (r *AlgorithmRepository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM custom_algorithms WHERE algorithm_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete algorithm: %w", err)
	}
	return nil
}

func decodeAlgorithm(alg *cubetrainer.Algorithm, moves string) error {
	parsed, err := cubetrainer.ParseSequence(moves)
	if err != nil {
		return fmt.Errorf("failed to parse moves of %s: %w", alg.ID, err)
	}
	alg.Moves = parsed
	alg.Category = cubetrainer.CategoryCustom
	return nil
}
