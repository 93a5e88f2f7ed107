package orm

import (
	"context"
	"time"

	goMysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	ErrRecordNotFound = gorm.ErrRecordNotFound
	ErrDuplicatedKey  = gorm.ErrDuplicatedKey
)

const (
	mysqlDuplicateEntry     = 1062
	postgresUniqueViolation = "23505"
)

type postgresConfig struct {
	dns string
}

type mySQLConfig struct {
	dns string
}

type sqliteConfig struct {
	fileName string
}

type poolConfig struct {
	maxOpenConns    int
	maxIdleConns    int
	connMaxLifetime time.Duration
}

type DB struct {
	gormClient *gorm.DB

	dbType dbType

	mySQLConfig    *mySQLConfig
	sqliteConfig   *sqliteConfig
	postgresConfig *postgresConfig
	poolConfig     *poolConfig
}

type TX = gorm.DB

type dbType int

const (
	dbTypeNoop dbType = iota
	dbTypeMySQL
	dbTypeSQLite
	dbTypePostgres
)

type Option func(*DB)

func UseMySQL(dns string) Option {
	return func(db *DB) {
		db.dbType = dbTypeMySQL
		db.mySQLConfig = &mySQLConfig{
			dns: dns,
		}
	}
}

func UsePostgres(dns string) Option {
	return func(db *DB) {
		db.dbType = dbTypePostgres
		db.postgresConfig = &postgresConfig{
			dns: dns,
		}
	}
}

// UseSQLite takes a file name, ":memory:" or a "file::memory:" uri.
func UseSQLite(fileName string) Option {
	return func(db *DB) {
		db.dbType = dbTypeSQLite
		db.sqliteConfig = &sqliteConfig{
			fileName: fileName,
		}
	}
}

func WithPool(maxOpenConns, maxIdleConns int, connMaxLifetime time.Duration) Option {
	return func(db *DB) {
		db.poolConfig = &poolConfig{
			maxOpenConns:    maxOpenConns,
			maxIdleConns:    maxIdleConns,
			connMaxLifetime: connMaxLifetime,
		}
	}
}

func CreateDB(useDB Option, options ...Option) (*DB, error) {
	var gormDB DB

	useDB(&gormDB)
	for _, option := range options {
		option(&gormDB)
	}

	if gormDB.dbType == dbTypeNoop {
		return nil, errors.New("no db type selected")
	}

	var dialector gorm.Dialector
	switch gormDB.dbType {
	case dbTypeMySQL:
		dialector = mysql.Open(gormDB.mySQLConfig.dns)
	case dbTypeSQLite:
		dialector = sqlite.Open(gormDB.sqliteConfig.fileName)
	case dbTypePostgres:
		dialector = postgres.Open(gormDB.postgresConfig.dns)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect db failed")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get core db failed")
	}
	if gormDB.poolConfig != nil {
		sqlDB.SetMaxOpenConns(gormDB.poolConfig.maxOpenConns)
		sqlDB.SetMaxIdleConns(gormDB.poolConfig.maxIdleConns)
		sqlDB.SetConnMaxLifetime(gormDB.poolConfig.connMaxLifetime)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, errors.Wrap(err, "ping core db failed")
	}

	gormDB.gormClient = db

	return &gormDB, nil
}

func (db *DB) WithContext(ctx context.Context) *TX {
	return db.gormClient.WithContext(ctx)
}

func (db *DB) AutoMigrate(values ...interface{}) error {
	return db.gormClient.AutoMigrate(values...)
}

func (db *DB) Exec(sql string, values ...interface{}) *TX {
	return db.gormClient.Exec(sql, values...)
}

func (db *DB) Close() error {
	sqlDB, err := db.gormClient.DB()
	if err != nil {
		return errors.Wrap(err, "get core db failed")
	}
	return sqlDB.Close()
}

// ConvertDuplicatedErr maps a unique violation of any supported driver to ErrDuplicatedKey.
func ConvertDuplicatedErr(err error) (error, bool) {
	if errors.Is(err, ErrDuplicatedKey) {
		return ErrDuplicatedKey, true
	}
	if err, ok := ConvertMySQLErr(err); ok {
		return err, true
	}
	if err, ok := ConvertSQLiteErr(err); ok {
		return err, true
	}
	return ConvertPostgresErr(err)
}

func ConvertMySQLErr(err error) (error, bool) {
	var mysqlErr *goMysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return ErrDuplicatedKey, true
	}
	return nil, false
}

func ConvertPostgresErr(err error) (error, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == postgresUniqueViolation {
		return ErrDuplicatedKey, true
	}
	return nil, false
}

func ConvertSQLiteErr(err error) (error, bool) {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return ErrDuplicatedKey, true
	}
	return nil, false
}
