package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/talenta-go-api/internal/dto"
	"github.com/noah-isme/talenta-go-api/internal/models"
	"github.com/noah-isme/talenta-go-api/internal/patch"
	"github.com/noah-isme/talenta-go-api/internal/policy"
	"github.com/noah-isme/talenta-go-api/internal/repository"
)

func newCourseService(t *testing.T, db *gorm.DB) (CourseService, *CourseCache) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cache := NewCourseCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute, zerolog.Nop())
	svc := NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewModuleRepository(db),
		cache,
		policy.NewDefaultEngine(),
		newValidate(),
		zerolog.Nop(),
	)
	return svc, cache
}

func TestCourseGetServesFromCacheUntilInvalidated(t *testing.T) {
	db := setupServiceDB(t)
	svc, _ := newCourseService(t, db)
	admin := createUser(t, db, "Admin", "admin@example.com", "admin", "pw-admin-1")
	course := createCourse(t, db, "Go Basics", models.CourseTypeInClass, admin.ID)

	first, err := svc.Get(context.Background(), identityFor(admin), course.ID)
	require.NoError(t, err)
	require.Equal(t, "Go Basics", first.Title)

	// A write behind the cache's back is not visible until invalidation.
	require.NoError(t, db.Model(&models.Course{}).Where("id = ?", course.ID).Update("title", "Changed Behind Cache").Error)

	stale, err := svc.Get(context.Background(), identityFor(admin), course.ID)
	require.NoError(t, err)
	require.Equal(t, "Go Basics", stale.Title)

	_, err = svc.Update(context.Background(), identityFor(admin), course.ID, dto.CourseUpdateRequest{
		Title: patch.Some("Go Fundamentals"),
	})
	require.NoError(t, err)

	fresh, err := svc.Get(context.Background(), identityFor(admin), course.ID)
	require.NoError(t, err)
	require.Equal(t, "Go Fundamentals", fresh.Title)
}

func TestCourseCreateDefaultsELearningToDraft(t *testing.T) {
	db := setupServiceDB(t)
	svc, _ := newCourseService(t, db)
	admin := createUser(t, db, "Admin", "admin@example.com", "admin", "pw-admin-1")

	course, err := svc.Create(context.Background(), identityFor(admin), dto.CourseCreateRequest{
		Title:       "Go Self-Paced",
		Description: "learn at your own pace",
		Duration:    120,
		Category:    "engineering",
		CourseType:  models.CourseTypeELearning,
	})
	require.NoError(t, err)
	require.NotNil(t, course.Status)
	require.Equal(t, models.CourseStatusDraft, *course.Status)
	require.Equal(t, admin.ID, course.CreatedBy)

	inClass, err := svc.Create(context.Background(), identityFor(admin), dto.CourseCreateRequest{
		Title:       "Go Classroom",
		Description: "taught live",
		Duration:    120,
		Category:    "engineering",
		CourseType:  models.CourseTypeInClass,
	})
	require.NoError(t, err)
	require.Nil(t, inClass.Status)
}

func TestCoursePublishRequiresELearning(t *testing.T) {
	db := setupServiceDB(t)
	svc, _ := newCourseService(t, db)
	admin := createUser(t, db, "Admin", "admin@example.com", "admin", "pw-admin-1")
	inClass := createCourse(t, db, "Go Classroom", models.CourseTypeInClass, admin.ID)

	err := svc.Publish(context.Background(), identityFor(admin), inClass.ID)
	require.ErrorIs(t, err, ErrCourseNotELearning)
}

func TestCourseWritesDeniedForNonAdmins(t *testing.T) {
	db := setupServiceDB(t)
	svc, _ := newCourseService(t, db)
	trainer := createUser(t, db, "Trainer", "trainer@example.com", "trainer", "pw-train-1")

	_, err := svc.Create(context.Background(), identityFor(trainer), dto.CourseCreateRequest{
		Title:       "Nope",
		Description: "nope",
		Duration:    30,
		Category:    "general",
		CourseType:  models.CourseTypeInClass,
	})
	var denied *policy.DeniedError
	require.ErrorAs(t, err, &denied)
	require.Equal(t, policy.ReasonNotAuthorized, denied.Reason)
}

func TestCourseDeleteBlockedWhileScheduled(t *testing.T) {
	db := setupServiceDB(t)
	svc, _ := newCourseService(t, db)
	admin := createUser(t, db, "Admin", "admin@example.com", "admin", "pw-admin-1")
	trainer := createUser(t, db, "Trainer", "trainer@example.com", "trainer", "pw-train-1")
	course := createCourse(t, db, "Go Basics", models.CourseTypeInClass, admin.ID)
	createSchedule(t, db, course.ID, trainer.ID)

	err := svc.Delete(context.Background(), identityFor(admin), course.ID)
	require.ErrorIs(t, err, repository.ErrCourseHasSchedules)
}
