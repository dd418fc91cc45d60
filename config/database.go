package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the gorm driver for DB_DRIVER.
func Dialector() (gorm.Dialector, error) {
	switch strings.ToLower(DBDriver) {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			DBHost, DBUser, DBPassword, DBName, DBPort)
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			DBUser, DBPassword, DBHost, DBPort, DBName)
		return mysql.Open(dsn), nil
	case "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			DBUser, DBPassword, DBHost, DBPort, DBName)
		return sqlserver.Open(dsn), nil
	case "sqlite":
		// DB_NAME is the file path here
		return sqlite.Open(DBName), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", DBDriver)
	}
}

// OpenDB connects with the configured driver.
func OpenDB(log *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialector()
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if APP_ENV == "development" {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	log.Info("Connected to database", zap.String("driver", DBDriver), zap.String("name", DBName))
	return db, nil
}
