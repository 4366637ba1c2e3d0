package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/talenta-go-api/internal/database"
	"github.com/noah-isme/talenta-go-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email, role string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, Password: "x", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, title, courseType, createdBy string) models.Course {
	t.Helper()
	course := models.Course{
		Title:       title,
		Description: "seeded course",
		Duration:    60,
		Category:    "general",
		CourseType:  courseType,
		CreatedBy:   createdBy,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func seedSchedule(t *testing.T, db *gorm.DB, courseID, trainerID string, maxLearners int) models.Schedule {
	t.Helper()
	schedule := models.Schedule{
		CourseID:     courseID,
		Title:        "seeded schedule",
		ScheduleType: models.ScheduleTypeSingle,
		StartDate:    "2026-09-01",
		EndDate:      "2026-09-01",
		StartTime:    "09:00",
		EndTime:      "17:00",
		TrainerID:    trainerID,
		MaxLearners:  maxLearners,
		Status:       models.ScheduleStatusUpcoming,
		SessionMode:  models.SessionModeFaceToFace,
	}
	require.NoError(t, db.Create(&schedule).Error)
	return schedule
}
