package service

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/talenta-go-api/internal/database"
	"github.com/noah-isme/talenta-go-api/internal/models"
	"github.com/noah-isme/talenta-go-api/internal/policy"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newValidate() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func createUser(t *testing.T, db *gorm.DB, name, email, role, password string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Name: name, Email: email, Password: string(hash), Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func identityFor(user models.User) policy.Identity {
	return policy.Identity{UserID: user.ID, Email: user.Email, Role: policy.Role(user.Role)}
}

func createCourse(t *testing.T, db *gorm.DB, title, courseType, createdBy string) models.Course {
	t.Helper()
	course := models.Course{
		Title:       title,
		Description: "course under test",
		Duration:    90,
		Category:    "engineering",
		CourseType:  courseType,
		CreatedBy:   createdBy,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func createSchedule(t *testing.T, db *gorm.DB, courseID, trainerID string) models.Schedule {
	t.Helper()
	schedule := models.Schedule{
		CourseID:     courseID,
		Title:        "schedule under test",
		ScheduleType: models.ScheduleTypeSingle,
		StartDate:    "2026-10-01",
		EndDate:      "2026-10-01",
		StartTime:    "09:00",
		EndTime:      "17:00",
		TrainerID:    trainerID,
		MaxLearners:  10,
		Status:       models.ScheduleStatusUpcoming,
		SessionMode:  models.SessionModeVirtual,
	}
	require.NoError(t, db.Create(&schedule).Error)
	return schedule
}
