package config

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"pos-order-api/cache"
	"pos-order-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Cache is the process-wide cache store, wired once by InitCache.
var Cache cache.Store = cache.Noop{}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	InitDBAt(getEnv("DB_PATH", "pos_orders.db"))
}

// InitDBAt opens (or creates) the sqlite database at path and migrates the
// schema. Tests point this at :memory:.
func InitDBAt(path string) {
	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	err = DB.AutoMigrate(
		&models.MenuGroup{},
		&models.Category{},
		&models.Item{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated")
}

// InitCache wires the cache backend. CACHE_ENABLED=false degrades to the
// no-op store: every read goes to the database and invalidations are dropped.
// ORDER_CACHE_TTL and ITEMS_CACHE_TTL override the default TTLs (seconds).
func InitCache() {
	if getEnv("CACHE_ENABLED", "true") == "false" {
		slog.Warn("cache disabled, all reads go to the database")
		Cache = cache.Noop{}
		return
	}
	if secs, err := strconv.Atoi(getEnv("ORDER_CACHE_TTL", "")); err == nil && secs > 0 {
		cache.OrderTTL = time.Duration(secs) * time.Second
	}
	if secs, err := strconv.Atoi(getEnv("ITEMS_CACHE_TTL", "")); err == nil && secs > 0 {
		cache.ItemListTTL = time.Duration(secs) * time.Second
	}
	Cache = cache.NewMemory()
}
