package database

import (
	"fmt"
	"log/slog"
	"time"

	"pobackend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options tune the connection pool and statement logging.
type Options struct {
	Logger       *slog.Logger
	LogLevel     logger.LogLevel
	MaxOpenConns int
	MaxIdleConns int
}

// NewConnection opens a PostgreSQL connection pool using GORM.
func NewConnection(dsn string, opts Options) (*gorm.DB, error) {
	return Open(postgres.Open(dsn), opts)
}

// Open opens any GORM dialector with the shared logger and pool settings.
func Open(dialector gorm.Dialector, opts Options) (*gorm.DB, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Warn
	}

	gormLogger := logger.New(
		slog.NewLogLogger(opts.Logger.Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  opts.LogLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// dropLegacyPONumberUnique removes any single-column UNIQUE constraint left on
// purchase_orders.po_number by older schemas. Constraint names differ between
// environments, so they are looked up in the catalog.
const dropLegacyPONumberUnique = `
DO $$
DECLARE
	r record;
BEGIN
	FOR r IN
		SELECT con.conname
		FROM pg_constraint con
		JOIN pg_class rel ON rel.oid = con.conrelid
		JOIN pg_attribute att ON att.attrelid = rel.oid AND att.attnum = con.conkey[1]
		WHERE rel.relname = 'purchase_orders'
		  AND con.contype = 'u'
		  AND array_length(con.conkey, 1) = 1
		  AND att.attname = 'po_number'
	LOOP
		EXECUTE format('ALTER TABLE purchase_orders DROP CONSTRAINT %I', r.conname);
	END LOOP;
END $$;`

// legacyAmountColumns may hold NULLs written by older clients. They are
// zeroed before NOT NULL is applied.
var legacyAmountColumns = []struct{ table, column string }{
	{"purchase_orders", "sub_total"},
	{"purchase_orders", "tax_rate"},
	{"purchase_orders", "tax_amount"},
	{"purchase_orders", "total"},
	{"line_items", "quantity"},
	{"line_items", "rate"},
	{"line_items", "amount"},
	{"line_items", "gst"},
}

// Migrate brings the schema up to date. It is safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	postgresDB := db.Dialector.Name() == "postgres"
	if postgresDB {
		if err := prepareLegacySchema(db); err != nil {
			return err
		}
	}

	if err := db.AutoMigrate(&model.PurchaseOrder{}, &model.LineItem{}, &model.AuditLog{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	if postgresDB {
		if err := db.Exec(dropLegacyPONumberUnique).Error; err != nil {
			return fmt.Errorf("drop po_number unique constraint: %w", err)
		}
	}
	return nil
}

func prepareLegacySchema(db *gorm.DB) error {
	m := db.Migrator()
	for _, c := range legacyAmountColumns {
		if !m.HasTable(c.table) || !m.HasColumn(c.table, c.column) {
			continue
		}
		stmt := fmt.Sprintf("UPDATE %s SET %s = 0 WHERE %s IS NULL", c.table, c.column, c.column)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("backfill %s.%s: %w", c.table, c.column, err)
		}
	}
	return nil
}
