package pgconf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cmathews/vecforge/internal/logger"
	"github.com/cmathews/vecforge/internal/tuning"
)

const (
	postgresqlConf = "postgresql.conf"
	hbaConf        = "pg_hba.conf"

	// backupStamp is day-granular: a second run on the same day overwrites
	// that day's backup. Last write per day wins.
	backupStamp = "20060102"
)

// Writer writes configuration files into a PostgreSQL data directory,
// backing up any existing file first.
type Writer struct {
	dataDir string
	now     func() time.Time
}

// NewWriter creates a Writer bound to the given data directory.
func NewWriter(dataDir string) *Writer {
	return &Writer{dataDir: dataDir, now: time.Now}
}

// WriteAll renders and writes postgresql.conf and pg_hba.conf. Existing files
// are copied aside before being overwritten. Any failure is returned as-is;
// there is no partial recovery, the operator has the backups.
func (w *Writer) WriteAll(p tuning.Profile, port int) error {
	if err := w.writeFile(postgresqlConf, RenderPostgresqlConf(p, port)); err != nil {
		return err
	}
	return w.writeFile(hbaConf, RenderHBAConf(AccessRules()))
}

func (w *Writer) writeFile(name, content string) error {
	path := filepath.Join(w.dataDir, name)

	if err := w.backup(path); err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	logger.Info("wrote configuration file", "path", path, "bytes", len(content))
	return nil
}

// backup copies the current file to <path>.bak.YYYYMMDD if it exists.
func (w *Writer) backup(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read existing %s: %w", filepath.Base(path), err)
	}

	backupPath := fmt.Sprintf("%s.bak.%s", path, w.now().Format(backupStamp))
	if err := os.WriteFile(backupPath, data, 0o600); err != nil {
		return fmt.Errorf("back up %s: %w", filepath.Base(path), err)
	}

	logger.Info("backed up existing configuration", "from", path, "to", backupPath)
	return nil
}
