package config

import (
	"context"
	"time"

	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/repositories"
	"github.com/anonto42/pet-adopt/backend/internal/repositories/memory"
	"github.com/anonto42/pet-adopt/backend/internal/services"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the database connections
type DB struct {
	Relational *gorm.DB
	Mongo      *mongo.Client
	Memory     *memory.DB

	cfg    *Config
	logger *zap.Logger
}

// InitDB opens the configured relational and document stores and migrates the
// relational schema
func InitDB(ctx context.Context, cfg *Config, logger *zap.Logger) (*DB, error) {
	db := &DB{cfg: cfg, logger: logger}

	relational, err := OpenRelational(cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "connect to %s", cfg.RelationalDriver)
	}
	if err := Migrate(relational); err != nil {
		return nil, err
	}
	db.Relational = relational
	logger.Info("relational store ready", zap.String("driver", cfg.RelationalDriver))

	switch cfg.DocumentStore {
	case DocumentStoreMemory:
		db.Memory = memory.NewDB()
		logger.Warn("using the in-memory document store; data is lost on restart")
	default:
		client, err := initMongo(ctx, cfg)
		if err != nil {
			db.CloseDB()
			return nil, errors.Wrap(err, "connect to MongoDB")
		}
		db.Mongo = client
		if err := repositories.EnsureIndexes(ctx, db.mongoDatabase()); err != nil {
			db.CloseDB()
			return nil, err
		}
		logger.Info("document store ready", zap.String("database", cfg.MongoDatabase))
	}
	return db, nil
}

// OpenRelational opens the relational store selected by cfg
func OpenRelational(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.RelationalDriver {
	case RelationalSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		dialector = postgres.Open(cfg.PostgresConnStr)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate brings the relational schema up to date
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.UserSpecies{},
		&models.Comment{},
		&models.SavedPost{},
		&models.Report{},
	)
	return errors.Wrap(err, "auto migrate")
}

// initMongo connects with the operation timeout applied to every call
func initMongo(ctx context.Context, cfg *Config) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetTimeout(cfg.DBOpTimeout)
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

func (db *DB) mongoDatabase() *mongo.Database {
	return db.Mongo.Database(db.cfg.MongoDatabase)
}

// Repositories builds the repository set over the open connections
func (db *DB) Repositories() services.Repositories {
	r := services.Repositories{
		Users:    repositories.NewPostgresUserRepository(db.Relational),
		Comments: repositories.NewPostgresCommentRepository(db.Relational),
		Saved:    repositories.NewPostgresSavedPostRepository(db.Relational),
		Reports:  repositories.NewPostgresReportRepository(db.Relational),
	}
	if db.Memory != nil {
		r.Posts = memory.NewPostRepository(db.Memory)
		r.Pets = memory.NewPetRepository(db.Memory)
		r.Votes = memory.NewVoteRepository(db.Memory)
		r.Species = memory.NewSpeciesRepository(db.Memory)
		return r
	}
	mdb := db.mongoDatabase()
	r.Posts = repositories.NewMongoPostRepository(mdb)
	r.Pets = repositories.NewMongoPetRepository(mdb)
	r.Votes = repositories.NewMongoVoteRepository(mdb)
	r.Species = repositories.NewMongoSpeciesRepository(mdb)
	return r
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	if db.Relational != nil {
		sqlDB, err := db.Relational.DB()
		if err != nil {
			db.logger.Error("get SQL DB from GORM", zap.Error(err))
		} else if err := sqlDB.Close(); err != nil {
			db.logger.Error("close relational store", zap.Error(err))
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			db.logger.Error("close MongoDB connection", zap.Error(err))
		}
	}
}
