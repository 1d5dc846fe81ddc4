package repository

import (
	"context"
	"testing"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	p := &domain.Project{Key: "mpt01", Name: "Multi Project Tracker"}
	require.NoError(t, repo.Create(ctx, p))
	assert.Equal(t, "MPT01", p.Key)

	byID, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Multi Project Tracker", byID.Name)

	byKey, err := repo.GetByKey(ctx, "Mpt01")
	require.NoError(t, err)
	assert.Equal(t, p.ID, byKey.ID)
}

func TestProjectRepo_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByKey(ctx, "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepo_DuplicateKey(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Project{Key: "CORE", Name: "Core"}))
	assert.Error(t, repo.Create(ctx, &domain.Project{Key: "core", Name: "Core again"}))
}

func TestProjectRepo_RejectsInvalidKey(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	for _, key := range []string{"", "X", "tracker-1", "ABCDEFG"} {
		assert.Error(t, repo.Create(ctx, &domain.Project{Key: key, Name: "Bad"}), "key %q", key)
	}
	projects, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestProjectRepo_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	first := testutil.CreateTestProject(t, repo, "First")
	second := testutil.CreateTestProject(t, repo, "Second")

	projects, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, first.ID, projects[0].ID)
	assert.Equal(t, second.ID, projects[1].ID)
}
