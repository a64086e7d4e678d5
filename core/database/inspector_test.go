package database

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func TestGetTableColumns(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("id", "varchar(64)", "NO", "PRI", nil, "").
		AddRow("payload", "json", "YES", "", nil, "")
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `quote_items`")).WillReturnRows(rows)

	columns, err := GetTableColumns(db, "quote_items")
	assert.NoError(t, err)
	assert.Len(t, columns, 2)
	assert.Equal(t, "id", columns[0].Field)
	assert.Equal(t, "json", columns[1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableExists(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("quote_items").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	exists, err := TableExists(db, "quote_items")
	assert.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("quote_line_items").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	exists, err = TableExists(db, "quote_line_items")
	assert.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}
