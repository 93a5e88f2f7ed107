package orm

import (
	"testing"

	goMysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type itemEntity struct {
	ID   int64
	Name string `gorm:"uniqueIndex"`
}

func TestCreateDBWithSQLite(t *testing.T) {
	db, err := CreateDB(UseSQLite("file::memory:"), WithPool(1, 1, 0))
	assert.Nil(t, err)
	defer db.Close()

	assert.Nil(t, db.AutoMigrate(&itemEntity{}))
	assert.Nil(t, db.Exec("INSERT INTO item_entities (id, name) VALUES (?, ?)", 1, "name").Error)

	err = db.Exec("INSERT INTO item_entities (id, name) VALUES (?, ?)", 2, "name").Error
	assert.NotNil(t, err)
	_, ok := ConvertDuplicatedErr(err)
	assert.True(t, ok)
}

func TestCreateDBWithoutType(t *testing.T) {
	_, err := CreateDB(func(*DB) {})
	assert.NotNil(t, err)
}

func TestConvertDuplicatedErr(t *testing.T) {
	for _, testCase := range []struct {
		name        string
		err         error
		isDuplicate bool
	}{
		{
			name:        "gorm",
			err:         errors.Wrap(ErrDuplicatedKey, "insert failed"),
			isDuplicate: true,
		},
		{
			name:        "mysql",
			err:         errors.Wrap(&goMysql.MySQLError{Number: 1062}, "insert failed"),
			isDuplicate: true,
		},
		{
			name:        "postgres",
			err:         errors.Wrap(&pgconn.PgError{Code: "23505"}, "insert failed"),
			isDuplicate: true,
		},
		{
			name:        "postgres other",
			err:         &pgconn.PgError{Code: "23503"},
			isDuplicate: false,
		},
		{
			name:        "unknown",
			err:         errors.New("unknown"),
			isDuplicate: false,
		},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			err, ok := ConvertDuplicatedErr(testCase.err)
			assert.Equal(t, testCase.isDuplicate, ok)
			if testCase.isDuplicate {
				assert.ErrorIs(t, err, ErrDuplicatedKey)
			}
		})
	}
}
