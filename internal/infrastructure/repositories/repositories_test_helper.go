package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

// newMockDB returns a postgres-dialect gorm DB backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err, "open sqlmock")
	return db, mock
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		email_verified_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE email_verifications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		token TEXT UNIQUE NOT NULL,
		expires_at DATETIME NOT NULL,
		verified_at DATETIME,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE profiles (
		id TEXT PRIMARY KEY,
		role TEXT NOT NULL DEFAULT 'business_owner',
		full_name TEXT,
		phone TEXT,
		dni TEXT,
		job_title TEXT,
		avatar_url TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createBusinessTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		role TEXT NOT NULL DEFAULT 'business_owner',
		full_name TEXT,
		phone TEXT,
		dni TEXT,
		job_title TEXT,
		avatar_url TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE businesses (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL,
		ruc TEXT,
		description TEXT,
		address TEXT,
		phone TEXT,
		whatsapp TEXT,
		latitude REAL,
		longitude REAL,
		website_url TEXT,
		logo_url TEXT,
		hero_image_url TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		is_premium BOOLEAN NOT NULL DEFAULT 0,
		subcategory_id INTEGER,
		design_config TEXT,
		social_links TEXT,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE business_images (
		id TEXT PRIMARY KEY,
		business_id TEXT NOT NULL,
		image_url TEXT NOT NULL,
		title TEXT,
		description TEXT,
		order_index INTEGER NOT NULL,
		created_at DATETIME
	);`)
}

func createEventTables(t *testing.T, db *gorm.DB) {
	createBusinessTables(t, db)
	mustExec(t, db, `CREATE TABLE events (
		id TEXT PRIMARY KEY,
		business_id TEXT,
		organizer_name TEXT,
		title TEXT NOT NULL,
		description TEXT,
		start_date DATETIME NOT NULL,
		end_date DATETIME,
		location_text TEXT,
		latitude REAL,
		longitude REAL,
		poster_url TEXT,
		is_featured BOOLEAN NOT NULL DEFAULT 0,
		category TEXT NOT NULL,
		external_link TEXT,
		action_text TEXT,
		created_at DATETIME
	);`)
}
