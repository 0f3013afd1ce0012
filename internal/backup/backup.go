// Package backup copies the sqlite store file into the backup directory.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	apperror "stockledger/internal/errors"
	"stockledger/internal/pkg/database"
	"stockledger/internal/pkg/logger"
)

// nameLayout yields inventory_20261014T101010Z.db.
const nameLayout = "20060102T150405Z"

// Service writes timestamped copies of the store file.
type Service struct {
	Driver    string
	StorePath string
	Dir       string
	Now       func() time.Time
	logger    logger.Logger
}

func NewService(store *database.Store, dir string, log logger.Logger) *Service {
	return &Service{
		Driver:    store.Driver,
		StorePath: store.Path,
		Dir:       dir,
		Now:       time.Now,
		logger:    log,
	}
}

// FileName is the backup name for a copy taken at t.
func FileName(t time.Time) string {
	return "inventory_" + t.UTC().Format(nameLayout) + ".db"
}

// Run copies the store file and returns the path of the copy. Only the
// sqlite store can be copied this way.
func (s *Service) Run() (string, error) {
	if s.Driver != database.DriverSQLite || s.StorePath == "" {
		return "", apperror.NewValidationError("backup is only available for the sqlite store; use pg_dump for postgres")
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", apperror.NewInternalError("failed to create backup directory", err)
	}
	dest := filepath.Join(s.Dir, FileName(s.Now()))

	n, err := copyFile(s.StorePath, dest)
	if err != nil {
		os.Remove(dest)
		return "", apperror.NewInternalError("failed to copy store file", err)
	}

	s.logger.Info("backup written", map[string]interface{}{"path": dest, "bytes": n})
	return dest, nil
}

func copyFile(src, dest string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", dest, err)
	}

	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return n, fmt.Errorf("copy to %s: %w", dest, err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return n, err
	}
	return n, out.Close()
}
