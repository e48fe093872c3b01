// Package session owns the persisted session and the in-memory session
// state: who is logged in, and the bearer token used for API calls.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite" // SQLite driver

	"sweetshop/internal/models"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

// Store is durable key-value storage for the session pair. A corrupted or
// missing value reads back as absent, never as an error.
type Store interface {
	Set(token string, user *models.User) error
	Get() (token string, user *models.User)
	Token() string
	Clear() error
	Close() error
}

// record is one stored key-value pair.
type record struct {
	Key   string `gorm:"primary_key;column:key"`
	Value string `gorm:"column:value"`
}

func (record) TableName() string { return "session_records" }

// SQLiteStore persists the session in a local SQLite database.
type SQLiteStore struct {
	db *gorm.DB
}

// Ensure SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)

// Open opens (creating if needed) the session database at path.
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := gorm.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&record{}).Error; err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Set durably stores the token and user together.
func (s *SQLiteStore) Set(token string, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	// Both rows land in one transaction so a failure cannot leave a token
	// without its user.
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := put(tx, keyToken, token); err != nil {
		tx.Rollback()
		return err
	}
	if err := put(tx, keyUser, string(data)); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// Get returns the last stored pair. A missing token, missing user or
// unparseable user value yields absent values.
func (s *SQLiteStore) Get() (string, *models.User) {
	token, ok := s.get(keyToken)
	if !ok {
		return "", nil
	}
	raw, ok := s.get(keyUser)
	if !ok {
		return token, nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return token, nil
	}
	return token, &user
}

// Token returns the stored bearer token, or "" when signed out.
func (s *SQLiteStore) Token() string {
	token, _ := s.get(keyToken)
	return token
}

// Clear removes both keys.
func (s *SQLiteStore) Clear() error {
	return s.db.Delete(record{}, "key IN (?)", []string{keyToken, keyUser}).Error
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func put(db *gorm.DB, key, value string) error {
	rec := record{Key: key}
	return db.Where(record{Key: key}).Assign(record{Value: value}).FirstOrCreate(&rec).Error
}

func (s *SQLiteStore) get(key string) (string, bool) {
	var rec record
	if err := s.db.Where("key = ?", key).First(&rec).Error; err != nil {
		return "", false
	}
	return rec.Value, true
}
