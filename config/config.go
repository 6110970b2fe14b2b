package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Config holds the application's configuration values.
type Config struct {
	AppName      string   `json:"appname"`
	AppEnv       string   `json:"appenv"`
	AppPort      uint16   `json:"appport"`
	GinMode      string   `json:"ginmode"`
	DBDriver     string   `json:"dbdriver"`
	DBHost       string   `json:"dbhost"`
	DBPort       uint16   `json:"dbport"`
	DBName       string   `json:"dbname"`
	DBUSER       string   `json:"dbuser"`
	DBPass       string   `json:"dbpass"`
	DBSSLMode    string   `json:"dbsslmode"`
	JWTSecret    string   `json:"-"`
	KafkaBrokers []string `json:"kafkabrokers"`
	KafkaTopic   string   `json:"kafkatopic"`
	LogLevel     string   `json:"loglevel"`
	LogFile      string   `json:"logfile"`
	GeoIPDBPath  string   `json:"geoipdbpath"`
	CORSOrigins  []string `json:"corsorigins"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from a .env file, and returns a singleton Config instance.
// A missing .env file is fine; the process environment is used as is.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Fatalf("Error loading .env file: %v", err)
		}

		appPort, _ := strconv.ParseUint(getEnv("APPPORT", "8080"), 10, 16)
		dbPort, _ := strconv.ParseUint(os.Getenv("DBPORT"), 10, 16)

		config = &Config{
			AppName:      getEnv("APPNAME", "CoSec Marketplace"),
			AppEnv:       getEnv("APPENV", "development"),
			AppPort:      uint16(appPort),
			GinMode:      getEnv("GINMODE", "debug"),
			DBDriver:     strings.ToLower(getEnv("DBDRIVER", "mysql")),
			DBHost:       os.Getenv("DBHOST"),
			DBPort:       uint16(dbPort),
			DBName:       os.Getenv("DBNAME"),
			DBUSER:       os.Getenv("DBUSER"),
			DBPass:       os.Getenv("DBPASS"),
			DBSSLMode:    getEnv("DBSSLMODE", "disable"),
			JWTSecret:    os.Getenv("JWTSECRET"),
			KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
			KafkaTopic:   getEnv("KAFKA_TOPIC", "marketplace-events"),
			LogLevel:     getEnv("LOGLEVEL", "info"),
			LogFile:      os.Getenv("LOGFILE"),
			GeoIPDBPath:  os.Getenv("GEOIP_DB_PATH"),
			CORSOrigins:  splitList(os.Getenv("CORS_ORIGINS")),
		}
	})
	return config
}

// IsTest reports whether the process runs under APPENV=test. It reads the
// environment directly so tests can flip it with t.Setenv after LoadConfig.
func IsTest() bool {
	return os.Getenv("APPENV") == "test"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// dialector picks the gorm driver for cfg. APPENV=test always uses a private
// in-memory sqlite database.
func dialector(cfg *Config) (gorm.Dialector, error) {
	if IsTest() {
		dsn := fmt.Sprintf("file:cosec_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
		return sqlite.Open(dsn), nil
	}

	switch cfg.DBDriver {
	case "mysql", "":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
			cfg.DBUSER, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUSER, cfg.DBPass, cfg.DBName, cfg.DBSSLMode)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.DBName), nil
	}
	return nil, fmt.Errorf("unsupported DBDRIVER %q", cfg.DBDriver)
}

// ConnectDatabase opens the process wide connection pool. The initial ping
// is retried with exponential backoff for up to 30 seconds so the service can
// start alongside its database. Close the pool with CloseDatabase.
func ConnectDatabase() (*gorm.DB, error) {
	cfg := LoadConfig()
	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dial, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if IsTest() {
		// A single connection keeps the in-memory database alive and
		// serializes writers the way sqlite expects.
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(sqlDB.Ping, policy); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return db, nil
}

// CloseDatabase releases the connection pool.
func CloseDatabase(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
