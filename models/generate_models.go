package models

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"sync"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

/*
Model generation and column mismatch report.

GENERATE_MODELS=true migrates BlogPost, Image and BlogTag, prints the column
report and writes typed query helpers to ./query.

GENERATE_COLUMN_REPORT=true only prints the report:

	=== COLUMN MISMATCH REPORT ===
	--- Table: blog_posts ---
	Found 1 columns not accounted for in model:
	  - legacy_author
	=== SUMMARY ===
	Total mismatched columns across all tables: 1
*/

// All lists every persisted entity, in migration order.
func All() []interface{} {
	return []interface{}{&BlogPost{}, &Image{}, &BlogTag{}}
}

// AutoMigrate creates or updates the tables of every entity.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}

func GenerateModels(db *gorm.DB) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	verbose := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             0,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)
	migrateDB := db.Session(&gorm.Session{
		Logger:                 verbose,
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	fmt.Println("Migrating models...")
	if err := AutoMigrate(migrateDB); err != nil {
		return fmt.Errorf("migrating models: %w", err)
	}
	fmt.Println("Database migration completed successfully!")

	report, err := BuildColumnMismatchReport(db)
	if err != nil {
		return err
	}
	report.Print(os.Stdout)

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./query",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface | gen.WithoutContext,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(BlogPost{}, Image{}, BlogTag{})
	g.Execute()

	fmt.Println("Model generation complete!")
	return nil
}

// TableReport lists the columns of one table that no model field maps to.
type TableReport struct {
	Table      string
	Missing    bool
	Mismatches []string
}

type ColumnMismatchReport struct {
	Tables []TableReport
}

func (r ColumnMismatchReport) Total() int {
	total := 0
	for _, t := range r.Tables {
		total += len(t.Mismatches)
	}
	return total
}

// BuildColumnMismatchReport compares the live columns of every entity table
// against the columns gorm derives from the model.
func BuildColumnMismatchReport(db *gorm.DB) (ColumnMismatchReport, error) {
	var report ColumnMismatchReport
	cache := &sync.Map{}

	for _, model := range All() {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return report, fmt.Errorf("parsing schema of %T: %w", model, err)
		}

		table := TableReport{Table: s.Table}
		if !db.Migrator().HasTable(s.Table) {
			table.Missing = true
			report.Tables = append(report.Tables, table)
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(s.Table)
		if err != nil {
			return report, fmt.Errorf("reading columns of %s: %w", s.Table, err)
		}

		dbColumns := make([]string, 0, len(columnTypes))
		for _, ct := range columnTypes {
			dbColumns = append(dbColumns, ct.Name())
		}
		table.Mismatches = findColumnMismatches(dbColumns, s.DBNames)
		report.Tables = append(report.Tables, table)
	}

	return report, nil
}

func (r ColumnMismatchReport) Print(w io.Writer) {
	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")
	for _, t := range r.Tables {
		fmt.Fprintf(w, "\n--- Table: %s ---\n", t.Table)
		switch {
		case t.Missing:
			fmt.Fprintln(w, "Table does not exist yet (will be created during migration)")
		case len(t.Mismatches) > 0:
			fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(t.Mismatches))
			for _, col := range t.Mismatches {
				fmt.Fprintf(w, "  - %s\n", col)
			}
		default:
			fmt.Fprintln(w, "All columns are accounted for in the model.")
		}
	}
	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", r.Total())
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		modelFieldSet[field] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !modelFieldSet[col] {
			mismatches = append(mismatches, col)
		}
	}
	sort.Strings(mismatches)
	return mismatches
}
