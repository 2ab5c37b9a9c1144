package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rpupo63/localized-blog-backend/config"
	"github.com/rpupo63/localized-blog-backend/errs"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

const (
	TypePostgres = "postgres"
	TypeSupabase = "supa"
	TypeSQLite   = "sqlite"
)

// Options describes how to reach the primary store and its read replicas.
type Options struct {
	Type          string
	DSN           string
	ReplicaDSNs   []string
	LogLevel      logger.LogLevel
	SlowThreshold time.Duration
}

// OptionsFromConfig builds Options from the environment map.
func OptionsFromConfig(c map[string]string) (Options, error) {
	opts := Options{
		Type:          strings.ToLower(config.GetString(c, "DB_TYPE", TypeSQLite)),
		ReplicaDSNs:   config.GetStrings(c, "DB_REPLICA_DSNS"),
		LogLevel:      logger.Warn,
		SlowThreshold: time.Duration(config.GetInt(c, "DB_SLOW_THRESHOLD_MS", 10000)) * time.Millisecond,
	}

	switch opts.Type {
	case TypeSupabase:
		if config.GetString(c, "SUPABASE_DB_HOST", "") == "" {
			return opts, errs.NewEnvironmentVariableError("SUPABASE_DB_HOST", "")
		}
		opts.Type = TypePostgres
		opts.DSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(c, "SUPABASE_DB_HOST", ""),
			config.GetString(c, "SUPABASE_DB_USER", ""),
			config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(c, "SUPABASE_DB_NAME", ""),
			config.GetString(c, "SUPABASE_DB_PORT", "5432"),
		)
	case TypePostgres:
		opts.DSN = config.GetString(c, "DATABASE_URL", "")
		if opts.DSN == "" {
			opts.DSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
				config.GetString(c, "DB_HOST", "localhost"),
				config.GetString(c, "DB_USER", "postgres"),
				config.GetString(c, "DB_PASSWORD", ""),
				config.GetString(c, "DB_NAME", "blog"),
				config.GetString(c, "DB_PORT", "5432"),
				config.GetString(c, "DB_SSLMODE", "disable"),
			)
		}
	case TypeSQLite:
		opts.DSN = config.GetString(c, "SQLITE_PATH", "blog.db")
	default:
		return opts, errs.NewEnvironmentVariableError("DB_TYPE", opts.Type)
	}

	return opts, nil
}

func dialector(dbType, dsn string) gorm.Dialector {
	if dbType == TypeSQLite {
		return sqlite.Open(dsn)
	}
	return postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	})
}

// Open connects to the primary store and registers any read replicas.
func Open(opts Options) (*gorm.DB, error) {
	if opts.Type != TypePostgres && opts.Type != TypeSQLite {
		return nil, fmt.Errorf("unsupported database type %q", opts.Type)
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Warn
	}
	if opts.SlowThreshold == 0 {
		opts.SlowThreshold = 10 * time.Second
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             opts.SlowThreshold,
			LogLevel:                  opts.LogLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(dialector(opts.Type, opts.DSN), &gorm.Config{
		PrepareStmt: false,
		Logger:      gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", opts.Type, err)
	}

	if len(opts.ReplicaDSNs) > 0 {
		replicas := make([]gorm.Dialector, 0, len(opts.ReplicaDSNs))
		for _, dsn := range opts.ReplicaDSNs {
			replicas = append(replicas, dialector(opts.Type, dsn))
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, fmt.Errorf("registering read replicas: %w", err)
		}
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("testing database connection: %w", err)
	}

	return db, nil
}
