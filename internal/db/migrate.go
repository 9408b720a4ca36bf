package db

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mestizo/crm-service/internal/config"
	"github.com/mestizo/crm-service/internal/models"
)

// Connect opens the database selected by the DSN (sqlite for file/memory DSNs,
// postgres otherwise) without running migrations.
func Connect(dsn string) (*gorm.DB, error) {
	logLevel := logger.Silent
	if config.ParseBool("DB_DEBUG", false) {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	if IsSQLiteDSN(dsn) {
		return gorm.Open(sqlite.Open(strings.TrimPrefix(dsn, "sqlite://")), cfg)
	}
	var db *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
		if err == nil {
			break
		}
		fmt.Println("Retrying DB connection...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	return db, nil
}

// ConnectAndMigrate connects and brings the schema up to date. With
// MIGRATIONS=1 the SQL migrations in ./migrations run via golang-migrate
// (postgres only); otherwise AutoMigrate covers the dev path.
func ConnectAndMigrate() (*gorm.DB, error) {
	dsn := GetNormalizedDSN()
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty, check the environment configuration")
	}
	db, err := Connect(dsn)
	if err != nil {
		return nil, err
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	// Print masked DSN once for diagnostics.
	masked := dsn
	if strings.Contains(masked, "password=") {
		re := regexp.MustCompile(`(password=)([^\s]+)`)
		masked = re.ReplaceAllString(masked, `${1}***`)
	}
	fmt.Println("[DB] Using DSN:", masked)

	if config.ParseBool("MIGRATIONS", false) {
		if IsSQLiteDSN(dsn) {
			return nil, errors.New("MIGRATIONS=1 requires a postgres DSN")
		}
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else if err := AutoMigrate(db); err != nil {
		return nil, err
	}

	for _, table := range []string{"customers", "opportunities", "quotes"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	if config.ParseBool("DB_SEED", false) {
		seed(db)
	}
	return db, nil
}

// AutoMigrate migrates every domain model. Exposed for tests.
func AutoMigrate(db *gorm.DB) error {
	modelsToMigrate := []interface{}{
		&models.Customer{}, &models.Contact{}, &models.Address{},
		&models.Lead{}, &models.Opportunity{}, &models.Activity{},
		&models.Quote{}, &models.QuoteItem{},
		&models.Project{}, &models.ProjectMedia{},
		&models.CatalogItem{},
	}
	for _, m := range modelsToMigrate {
		if migErr := db.AutoMigrate(m); migErr != nil {
			return fmt.Errorf("automigrate %T: %w", m, migErr)
		}
	}
	return nil
}

func seed(db *gorm.DB) {
	baseItems := []models.CatalogItem{
		{Type: models.ItemService, Name: "Diseño de jardín", Category: "Diseño", PriceRef: decimal.NewFromInt(350), Active: true},
		{Type: models.ItemService, Name: "Mantenimiento mensual", Category: "Mantenimiento", PriceRef: decimal.NewFromInt(120), Active: true},
		{Type: models.ItemProduct, Name: "Césped en rollo (m2)", Category: "Materiales", PriceRef: decimal.NewFromFloat(8.50), Active: true},
		{Type: models.ItemProduct, Name: "Sistema de riego por goteo", Category: "Riego", PriceRef: decimal.NewFromInt(240), Active: true},
	}
	for _, it := range baseItems {
		var existing models.CatalogItem
		if err := db.Where("name = ?", it.Name).First(&existing).Error; err == gorm.ErrRecordNotFound {
			db.Create(&it)
		}
	}
}

// runSQLMigrations executes migrations in ./migrations using golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
