package postgres

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"supplychain-admin/internal/models"
	"supplychain-admin/internal/repository/dberr"
)

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	DbName   string
	SslMode  string
	// URL takes precedence over the discrete fields when set.
	URL      string
	MaxConns int
}

func (c Config) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Username, c.Password, c.Host, c.Port, c.DbName, c.SslMode)
}

// ConnectDB opens a pgx-backed pool and hands it to gorm. MaxConns bounds the number
// of concurrently open connections, and so the number of in-flight transactions.
func ConnectDB(cfg Config) (*gorm.DB, error) {
	connCfg, err := pgx.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "parse dsn")
	}
	sqlDB := stdlib.OpenDB(*connCfg)
	if cfg.MaxConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConns)
		sqlDB.SetMaxIdleConns(cfg.MaxConns)
	}
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	db, err := gorm.Open("postgres", sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "open gorm")
	}
	db.SetLogger(logrus.StandardLogger())
	db.LogMode(logrus.IsLevelEnabled(logrus.DebugLevel))
	return db, nil
}

// Migrate creates the fixed schema. Development and integration tests only; the
// production schema is managed outside this service.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Consumer{},
		&models.Product{},
		&models.Batch{},
		&models.Warehouse{},
		&models.Vendor{},
		&models.Order{},
		&models.OrderLineItem{},
		&models.Delivery{},
	).Error; err != nil {
		return errors.Wrap(err, "auto migrate")
	}

	fks := []struct {
		model  any
		field  string
		target string
	}{
		{&models.Batch{}, "product_id", "products(product_id)"},
		{&models.Order{}, "consumer_id", "consumers(consumer_id)"},
		{&models.Order{}, "delivery_id", "deliveries(delivery_id)"},
		{&models.OrderLineItem{}, "order_id", "orders(order_id)"},
		{&models.OrderLineItem{}, "product_id", "products(product_id)"},
		{&models.Delivery{}, "order_id", "orders(order_id)"},
		{&models.Delivery{}, "vendor_id", "vendors(vendor_id)"},
		{&models.Delivery{}, "batch_id", "product_batches(batch_id)"},
		{&models.Delivery{}, "warehouse_id", "warehouses(warehouse_id)"},
	}
	// AddForeignKey skips constraints that already exist
	for _, fk := range fks {
		if err := db.Model(fk.model).AddForeignKey(fk.field, fk.target, "RESTRICT", "RESTRICT").Error; err != nil {
			return errors.Wrapf(err, "add foreign key %s -> %s", fk.field, fk.target)
		}
	}
	return nil
}

func wrap(err error, msg string) error {
	return errors.Wrap(dberr.Classify(err), msg)
}

func wrapf(err error, format string, args ...any) error {
	return errors.Wrapf(dberr.Classify(err), format, args...)
}

// exists runs a single-row existence probe.
func exists(db *gorm.DB, table, column string, id int64) (bool, error) {
	var n int
	err := db.Table(table).Where(column+" = ?", id).Count(&n).Error
	if err != nil {
		return false, wrapf(err, "%s exists", table)
	}
	return n > 0, nil
}
