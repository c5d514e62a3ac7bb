package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"emptycup/internal/models"
	"emptycup/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestInteractionRepository_ToggleShortlist(t *testing.T) {
	designers, db := setupDesignerRepo(t)
	repo := repositories.NewGORMInteractionRepository(db)
	ctx := context.Background()

	designer := newDesigner("Toggle", 1)
	require.NoError(t, designers.Create(ctx, designer))

	for i, want := range []bool{true, false, true} {
		got, err := repo.ToggleShortlist(ctx, designer.ID, "session-a")
		require.NoError(t, err)
		assert.Equal(t, want, got, "toggle #%d", i+1)
	}

	// Sessions are independent of each other.
	got, err := repo.ToggleShortlist(ctx, designer.ID, "session-b")
	require.NoError(t, err)
	assert.True(t, got)

	var count int64
	require.NoError(t, db.Model(&models.Shortlist{}).Where("designer_id = ?", designer.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

// Concurrent toggles are not serialised. A racing second insert hits this
// constraint and ToggleShortlist reports it as shortlisted.
func TestInteractionRepository_UniquePairConstraint(t *testing.T) {
	_, db := setupDesignerRepo(t)

	require.NoError(t, db.Create(&models.Shortlist{DesignerID: 1, UserSession: "s"}).Error)
	err := db.Create(&models.Shortlist{DesignerID: 1, UserSession: "s"}).Error
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestInteractionRepository_ToggleShortlistLosesInsertRace(t *testing.T) {
	designers, db := setupDesignerRepo(t)
	repo := repositories.NewGORMInteractionRepository(db)
	ctx := context.Background()

	designer := newDesigner("Contended", 1)
	require.NoError(t, designers.Create(ctx, designer))

	// Another caller shortlists the same pair between our delete and insert.
	raced := false
	require.NoError(t, db.Callback().Create().Before("gorm:begin_transaction").Register("test:concurrent_toggle", func(tx *gorm.DB) {
		if raced || tx.Statement.Table != "shortlists" {
			return
		}
		raced = true
		err := tx.Session(&gorm.Session{NewDB: true}).
			Exec("INSERT INTO shortlists (designer_id, user_session, created_at) VALUES (?, ?, ?)", designer.ID, "racer", time.Now()).Error
		require.NoError(t, err)
	}))

	got, err := repo.ToggleShortlist(ctx, designer.ID, "racer")
	require.NoError(t, err)
	assert.True(t, got)
	assert.True(t, raced)

	var count int64
	require.NoError(t, db.Model(&models.Shortlist{}).
		Where("designer_id = ? AND user_session = ?", designer.ID, "racer").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestInteractionRepository_AddReport(t *testing.T) {
	_, db := setupDesignerRepo(t)
	repo := repositories.NewGORMInteractionRepository(db)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		report := &models.Report{DesignerID: 7, Reason: "spam", Description: "duplicate listing", UserSession: "s"}
		require.NoError(t, repo.AddReport(ctx, report))
		assert.NotZero(t, report.ID)
	}

	var reports []models.Report
	require.NoError(t, db.Where("designer_id = ?", 7).Find(&reports).Error)
	require.Len(t, reports, 2)
	assert.Equal(t, "duplicate listing", reports[0].Description)
}
