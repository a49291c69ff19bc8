package infra

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bizpos/internal/model"
)

// NewDatabase opens the Postgres connection pool and runs migrations.
func NewDatabase(databaseURL string, env string) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if env == "development" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func migrate(db *gorm.DB) error {
	// gen_random_uuid() needs pgcrypto on Postgres < 13.
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&model.User{},
		&model.EmployeeProfile{},
		&model.Category{},
		&model.Product{},
		&model.Customer{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Supplier{},
		&model.PurchaseOrder{},
		&model.PurchaseOrderItem{},
		&model.StockAdjustment{},
		&model.ExpenseCategory{},
		&model.Expense{},
	)
}
