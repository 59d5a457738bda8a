package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shinyyama/item-service/internal/config"
	"github.com/shinyyama/item-service/internal/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects the backend selected by cfg.StoreDriver and returns the item
// repository on top of it. The caller owns the repository and must Close it.
func Open(ctx context.Context, cfg *config.Config) (repository.ItemRepository, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		return repository.NewMongoItemRepository(client, cfg.MongoDatabase, cfg.MongoCollection), nil
	case config.DriverMySQL, config.DriverSQLite:
		var (
			gdb *gorm.DB
			err error
		)
		if cfg.StoreDriver == config.DriverMySQL {
			gdb, err = ConnectMySQL(cfg.MySQLDSN)
		} else {
			gdb, err = ConnectSQLite(cfg.SQLitePath)
		}
		if err != nil {
			return nil, err
		}
		if err := repository.AutoMigrate(gdb.WithContext(ctx)); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		return repository.NewGormItemRepository(gdb), nil
	case config.DriverMemory:
		return repository.NewMemoryItemRepository(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// ConnectMongo dials uri and pings the primary so a bad connection string
// fails at startup rather than on the first request.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		PrepareStmt: true,
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

func ConnectMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), gormConfig())
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(10)

	return db, nil
}

// ConnectSQLite opens a file backed database. SQLite serialises writers, so
// the pool holds a single connection.
func ConnectSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
