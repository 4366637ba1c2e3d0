package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/talenta-go-api/internal/models"
)

func TestMarkCreatesThenOverwrites(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttendanceRepository(db)

	admin := seedUser(t, db, "Admin", "admin@example.com", "admin")
	trainer := seedUser(t, db, "Trainer", "trainer@example.com", "trainer")
	learner := seedUser(t, db, "Learner", "learner@example.com", "learner")
	course := seedCourse(t, db, "Go Basics", models.CourseTypeInClass, admin.ID)
	schedule := seedSchedule(t, db, course.ID, trainer.ID, 10)

	first, created, err := repo.Mark(context.Background(), models.Attendance{
		ScheduleID: schedule.ID,
		LearnerID:  learner.ID,
		Date:       "2026-09-01",
		Status:     models.AttendanceStatusPresent,
		MarkedBy:   trainer.ID,
	})
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, models.AttendanceStatusPresent, first.Status)

	second, created, err := repo.Mark(context.Background(), models.Attendance{
		ScheduleID: schedule.ID,
		LearnerID:  learner.ID,
		Date:       "2026-09-01",
		Status:     models.AttendanceStatusLate,
		Notes:      "arrived 20 minutes in",
		MarkedBy:   trainer.ID,
	})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.ID, second.ID, "marking the same day twice must overwrite, not duplicate")
	require.Equal(t, models.AttendanceStatusLate, second.Status)
	require.Equal(t, "arrived 20 minutes in", second.Notes)

	var count int64
	require.NoError(t, db.Model(&models.Attendance{}).Where("schedule_id = ?", schedule.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestAttendanceListLearnerFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttendanceRepository(db)

	admin := seedUser(t, db, "Admin", "admin@example.com", "admin")
	trainer := seedUser(t, db, "Trainer", "trainer@example.com", "trainer")
	alice := seedUser(t, db, "Alice", "alice@example.com", "learner")
	bob := seedUser(t, db, "Bob", "bob@example.com", "learner")
	course := seedCourse(t, db, "Go Basics", models.CourseTypeInClass, admin.ID)
	schedule := seedSchedule(t, db, course.ID, trainer.ID, 10)

	for _, learnerID := range []string{alice.ID, bob.ID} {
		_, _, err := repo.Mark(context.Background(), models.Attendance{
			ScheduleID: schedule.ID,
			LearnerID:  learnerID,
			Date:       "2026-09-01",
			Status:     models.AttendanceStatusPresent,
			MarkedBy:   trainer.ID,
		})
		require.NoError(t, err)
	}

	all, err := repo.List(context.Background(), AttendanceFilter{ScheduleID: schedule.ID})
	require.NoError(t, err)
	require.Len(t, all, 2)

	own, err := repo.List(context.Background(), AttendanceFilter{ScheduleID: schedule.ID, LearnerID: alice.ID})
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, "Alice", own[0].LearnerName)
}
