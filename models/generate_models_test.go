package models_test

import (
	"bytes"
	"testing"

	"github.com/rpupo63/localized-blog-backend/models"
	"github.com/rpupo63/localized-blog-backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnMismatchReportCleanSchema(t *testing.T) {
	db := testutil.TestDB(t)

	report, err := models.BuildColumnMismatchReport(db)
	require.NoError(t, err)
	require.Len(t, report.Tables, 3)
	assert.Zero(t, report.Total())
	for _, table := range report.Tables {
		assert.False(t, table.Missing, table.Table)
	}

	var out bytes.Buffer
	report.Print(&out)
	assert.Contains(t, out.String(), "Total mismatched columns across all tables: 0")
}

func TestColumnMismatchReportFindsExtraColumns(t *testing.T) {
	db := testutil.TestDB(t)
	require.NoError(t, db.Exec("ALTER TABLE blog_posts ADD COLUMN legacy_author text").Error)
	require.NoError(t, db.Exec("ALTER TABLE blog_posts ADD COLUMN archived integer").Error)
	require.NoError(t, db.Migrator().DropTable(&models.Image{}))

	report, err := models.BuildColumnMismatchReport(db)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Total())

	byTable := map[string]models.TableReport{}
	for _, table := range report.Tables {
		byTable[table.Table] = table
	}
	assert.Equal(t, []string{"archived", "legacy_author"}, byTable["blog_posts"].Mismatches)
	assert.True(t, byTable["images"].Missing)
	assert.Empty(t, byTable["blog_tags"].Mismatches)

	var out bytes.Buffer
	report.Print(&out)
	assert.Contains(t, out.String(), "  - legacy_author")
	assert.Contains(t, out.String(), "Table does not exist yet")
}
