package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/talenta-go-api/internal/models"
	"github.com/noah-isme/talenta-go-api/internal/patch"
)

func seedModules(t *testing.T, db *gorm.DB, courseID string, titles ...string) []models.CourseModule {
	t.Helper()
	repo := NewModuleRepository(db)
	modules := make([]models.CourseModule, 0, len(titles))
	for _, title := range titles {
		module := models.CourseModule{
			CourseID:    courseID,
			Title:       title,
			ContentType: models.ContentTypeVideo,
			Duration:    10,
		}
		require.NoError(t, repo.Create(context.Background(), &module))
		modules = append(modules, module)
	}
	return modules
}

func TestModuleCreateAppendsSortOrder(t *testing.T) {
	db := setupTestDB(t)
	admin := seedUser(t, db, "Admin", "admin@example.com", "admin")
	course := seedCourse(t, db, "Go Advanced", models.CourseTypeELearning, admin.ID)

	modules := seedModules(t, db, course.ID, "a", "b", "c")
	require.Equal(t, 0, modules[0].SortOrder)
	require.Equal(t, 1, modules[1].SortOrder)
	require.Equal(t, 2, modules[2].SortOrder)
}

func TestModuleReorderAppliesNewOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewModuleRepository(db)
	admin := seedUser(t, db, "Admin", "admin@example.com", "admin")
	course := seedCourse(t, db, "Go Advanced", models.CourseTypeELearning, admin.ID)
	modules := seedModules(t, db, course.ID, "a", "b", "c")

	err := repo.Reorder(context.Background(), course.ID, []string{modules[2].ID, modules[0].ID, modules[1].ID})
	require.NoError(t, err)

	ordered, err := repo.ListByCourse(context.Background(), course.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "a", "b"}, moduleTitles(ordered))
}

func TestModuleReorderRollsBackOnUnknownModule(t *testing.T) {
	db := setupTestDB(t)
	repo := NewModuleRepository(db)
	admin := seedUser(t, db, "Admin", "admin@example.com", "admin")
	course := seedCourse(t, db, "Go Advanced", models.CourseTypeELearning, admin.ID)
	modules := seedModules(t, db, course.ID, "a", "b", "c")

	err := repo.Reorder(context.Background(), course.ID, []string{modules[2].ID, "not-a-module", modules[0].ID})
	require.ErrorIs(t, err, ErrModuleOutsideCourse)

	ordered, err := repo.ListByCourse(context.Background(), course.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, moduleTitles(ordered), "failed reorder must leave the original order intact")
}

func TestModuleUpdateTouchesOnlyWhitelistedColumns(t *testing.T) {
	db := setupTestDB(t)
	repo := NewModuleRepository(db)
	admin := seedUser(t, db, "Admin", "admin@example.com", "admin")
	course := seedCourse(t, db, "Go Advanced", models.CourseTypeELearning, admin.ID)
	modules := seedModules(t, db, course.ID, "a")

	cs := &patch.ChangeSet{}
	cs.Set("title", "renamed")
	cs.Set("sortOrder", 99) // not whitelisted
	assignments, err := patch.Build(ModuleUpdateFields, cs)
	require.NoError(t, err)

	require.NoError(t, repo.Update(context.Background(), course.ID, modules[0].ID, assignments))

	updated, err := repo.GetByID(context.Background(), course.ID, modules[0].ID)
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Title)
	require.Equal(t, 0, updated.SortOrder)
	require.Equal(t, models.ContentTypeVideo, updated.ContentType)
	require.Equal(t, 10, updated.Duration)
}

func moduleTitles(modules []models.CourseModule) []string {
	titles := make([]string, 0, len(modules))
	for _, module := range modules {
		titles = append(titles, module.Title)
	}
	return titles
}
