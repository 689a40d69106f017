// Package cache is a small persistence layer mirroring pdepend's own
// analysis cache: a parsed file's declaration counts keyed by a content
// hash, so repeated `pdepend parse` runs over an unchanged tree can skip
// re-parsing. Grounded on btouchard-gmx's gorm.Open(sqlite.Open(...))
// bootstrap and its AutoMigrate/First/Save access pattern.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// CachedFile records the last successful parse of one source file.
type CachedFile struct {
	Path          string `gorm:"primaryKey"`
	ContentHash   string
	PackageCount  int
	TypeCount     int
	FunctionCount int
	ParsedAt      time.Time
}

// Store wraps a GORM-backed SQLite database holding CachedFile rows.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the cache database at path and
// migrates the CachedFile schema into it.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&CachedFile{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// HashContent returns the content hash Lookup/Put key CachedFile rows by.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Lookup returns the cached record for path, and whether its stored hash
// still matches contentHash — a mismatch means the file changed since it
// was last cached and must be re-parsed.
func (s *Store) Lookup(path, contentHash string) (CachedFile, bool) {
	var row CachedFile
	if err := s.db.First(&row, "path = ?", path).Error; err != nil {
		return CachedFile{}, false
	}
	return row, row.ContentHash == contentHash
}

// Put records (or updates) path's parse result, stamping ParsedAt with the
// current time if the caller left it zero.
func (s *Store) Put(row CachedFile) error {
	if row.ParsedAt.IsZero() {
		row.ParsedAt = time.Now().UTC()
	}
	return s.db.Save(&row).Error
}

// Stats returns the number of cached files and the sum of their declared
// types and functions, for the `pdepend cache stats` command.
func (s *Store) Stats() (files, types, functions int, err error) {
	var rows []CachedFile
	if err = s.db.Find(&rows).Error; err != nil {
		return 0, 0, 0, err
	}
	for _, r := range rows {
		types += r.TypeCount
		functions += r.FunctionCount
	}
	return len(rows), types, functions, nil
}

// Clear deletes every cached row.
func (s *Store) Clear() error {
	return s.db.Where("1 = 1").Delete(&CachedFile{}).Error
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
