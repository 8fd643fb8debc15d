package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubetrainer"
	"github.com/SeamusWaldron/cubetrainer/internal/library"
	"github.com/SeamusWaldron/cubetrainer/internal/storage"
)

func openDB() (*storage.DB, error) {
	path := getDBPath()
	var db *storage.DB
	var err error

	if path == "" {
		db, err = storage.OpenDefault()
	} else {
		db, err = storage.Open(path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.WithField("path", db.Path()).Debug("database ready")
	return db, nil
}

// loadLibrary returns the built-in algorithms plus the stored custom ones.
func loadLibrary(db *storage.DB) (*library.Library, error) {
	lib, err := library.Builtin()
	if err != nil {
		return nil, err
	}

	custom, err := storage.NewAlgorithmRepository(db).List()
	if err != nil {
		return nil, err
	}
	for _, alg := range custom {
		if err := lib.Add(alg); err != nil {
			logger.WithError(err).WithField("algorithm", alg.ID).Warn("skipping stored algorithm")
		}
	}
	return lib, nil
}

// parseMoves joins command arguments and parses them with the configured
// tolerant policy.
func parseMoves(args []string) ([]cubetrainer.Move, error) {
	text := strings.Join(args, " ")
	moves := cfg.ParsePolicy().Parse(text)
	if len(moves) == 0 {
		return nil, fmt.Errorf("no moves found in %q", text)
	}
	return moves, nil
}

// redirectLog sends log output to ~/.cubetrainer/cubetrainer.log while a
// full-screen program owns the terminal. The returned func restores it.
func redirectLog() (func(), error) {
	dir, err := storage.DataDir()
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(filepath.Join(dir, "cubetrainer.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	prev := logger.Out
	logger.SetOutput(f)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})

	return func() {
		logger.SetOutput(prev)
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		f.Close()
	}, nil
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%d:%05.2f", mins, secs)
}

func formatStars(n int) string {
	n = min(max(n, 0), 3)
	return strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
}
