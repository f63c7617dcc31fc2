// Package store keeps unit manager snapshots in a SQLite database.
package store

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned when no snapshot exists under a name.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one stored, encoded manager state. Saving never overwrites:
// every save appends a row and Latest returns the newest one.
type Snapshot struct {
	ID        uint      `gorm:"primarykey"`
	Name      string    `gorm:"index;not null"`
	Format    string    `gorm:"not null"`
	Version   int       `gorm:"not null"` // binary layout version, 0 for json
	Data      []byte    `gorm:"not null"`
	CreatedAt time.Time `gorm:"index"`
}

// Store wraps the snapshot database.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open opens or creates the database at path. An empty path keeps the
// database in memory.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open snapshot store %q", path)
	}
	if path == "" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "snapshot store handle")
		}
		// every pooled connection would otherwise see its own empty database
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return nil, errors.Wrap(err, "migrate snapshot store")
	}
	log.Debug().Str("path", path).Msg("snapshot store opened")
	return &Store{db: db, log: log}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "snapshot store handle")
	}
	return errors.Wrap(sqlDB.Close(), "close snapshot store")
}

// Save appends an encoded snapshot under name.
func (s *Store) Save(name, format string, version int, data []byte) (*Snapshot, error) {
	if name == "" {
		return nil, errors.New("snapshot name is empty")
	}
	snap := &Snapshot{Name: name, Format: format, Version: version, Data: data}
	if err := s.db.Create(snap).Error; err != nil {
		return nil, errors.Wrapf(err, "save snapshot %q", name)
	}
	s.log.Info().Str("name", name).Str("format", format).Int("bytes", len(data)).Uint("id", snap.ID).Msg("snapshot saved")
	return snap, nil
}

// Latest returns the newest snapshot saved under name.
func (s *Store) Latest(name string) (*Snapshot, error) {
	var snap Snapshot
	err := s.db.Where("name = ?", name).Order("id desc").First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "%q", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load snapshot %q", name)
	}
	return &snap, nil
}

// Names lists the distinct snapshot names in alphabetical order.
func (s *Store) Names() ([]string, error) {
	var names []string
	err := s.db.Model(&Snapshot{}).Distinct("name").Order("name").Pluck("name", &names).Error
	if err != nil {
		return nil, errors.Wrap(err, "list snapshots")
	}
	return names, nil
}

// Count returns the number of snapshots stored under name.
func (s *Store) Count(name string) (int64, error) {
	var n int64
	if err := s.db.Model(&Snapshot{}).Where("name = ?", name).Count(&n).Error; err != nil {
		return 0, errors.Wrapf(err, "count snapshots %q", name)
	}
	return n, nil
}

// Prune deletes all but the newest keep snapshots of name and returns the
// number of rows removed.
func (s *Store) Prune(name string, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}
	var ids []uint
	err := s.db.Model(&Snapshot{}).Where("name = ?", name).Order("id desc").Limit(keep).Pluck("id", &ids).Error
	if err != nil {
		return 0, errors.Wrapf(err, "prune snapshot %q", name)
	}
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.db.Where("name = ? AND id NOT IN ?", name, ids).Delete(&Snapshot{})
	if res.Error != nil {
		return 0, errors.Wrapf(res.Error, "prune snapshot %q", name)
	}
	return res.RowsAffected, nil
}
