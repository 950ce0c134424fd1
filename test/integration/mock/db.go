package mock

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

// Db is a shared in-memory SQLite database migrated with the application models.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	order  []string
}

// NewDb opens the shared database once and registers the models by table name.
func NewDb(models ...any) *Db {
	once.Do(func() {
		db = open(models)
	})
	return db
}

func open(models []any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	newDbMock := &Db{
		DbConn: dbConn,
		models: make(map[string]any, len(models)),
	}

	for _, model := range models {
		stmt := &gorm.Statement{DB: dbConn}
		if err := stmt.Parse(model); err != nil {
			panic(fmt.Sprintf("failed to parse model %T. err: %s", model, err.Error()))
		}
		newDbMock.models[stmt.Schema.Table] = model
		newDbMock.order = append(newDbMock.order, stmt.Schema.Table)
	}

	if err := newDbMock.ClearDB(); err != nil {
		panic(fmt.Sprintf("failed to clear database. err: %s", err.Error()))
	}

	return newDbMock
}

// ClearDB recreates every registered table, retrying when SQLite reports the schema busy.
func (d *Db) ClearDB() (err error) {
	for attempt := 1; attempt <= 5; attempt++ {
		if err = d.init(); err == nil {
			return d.checkTables()
		}
		if !strings.Contains(err.Error(), "locked") && !strings.Contains(err.Error(), "busy") {
			return err
		}
	}
	return fmt.Errorf("failed to clear database after 5 attempts: %w", err)
}

func (d *Db) init() error {
	modelList := make([]any, 0, len(d.order))
	for i := len(d.order) - 1; i >= 0; i-- {
		table := d.order[i]
		if err := d.DbConn.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)).Error; err != nil {
			return err
		}
	}
	for _, table := range d.order {
		modelList = append(modelList, d.models[table])
	}

	return d.DbConn.AutoMigrate(modelList...)
}

func (d *Db) checkTables() error {
	for _, table := range d.order {
		if !d.DbConn.Migrator().HasTable(table) {
			return fmt.Errorf("table %s was not created", table)
		}
	}
	return nil
}

// GetModel returns the model registered for a table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}

// Count returns the number of live rows in a table.
func (d *Db) Count(table string) (int64, error) {
	model, ok := d.models[table]
	if !ok {
		return 0, fmt.Errorf("unknown table %s", table)
	}
	var count int64
	err := d.DbConn.Model(model).Count(&count).Error
	return count, err
}
