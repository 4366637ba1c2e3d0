package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/talenta-go-api/internal/dto"
	"github.com/noah-isme/talenta-go-api/internal/models"
	"github.com/noah-isme/talenta-go-api/internal/policy"
	"github.com/noah-isme/talenta-go-api/internal/repository"
)

func newEnrollmentService(t *testing.T, db *gorm.DB) EnrollmentService {
	t.Helper()
	return NewEnrollmentService(
		repository.NewEnrollmentRepository(db),
		repository.NewUserRepository(db),
		policy.NewDefaultEngine(),
		newValidate(),
		zerolog.Nop(),
	)
}

func TestEnrollRejectsNonLearners(t *testing.T) {
	db := setupServiceDB(t)
	svc := newEnrollmentService(t, db)
	admin := createUser(t, db, "Admin", "admin@example.com", "admin", "pw-admin-1")
	trainer := createUser(t, db, "Trainer", "trainer@example.com", "trainer", "pw-train-1")
	course := createCourse(t, db, "Go Basics", models.CourseTypeInClass, admin.ID)
	schedule := createSchedule(t, db, course.ID, trainer.ID)

	_, err := svc.Enroll(context.Background(), identityFor(admin), schedule.ID, dto.EnrollRequest{LearnerID: trainer.ID})
	require.ErrorIs(t, err, ErrNotALearner)
}

func TestEnrollDeniedForLearnerCallers(t *testing.T) {
	db := setupServiceDB(t)
	svc := newEnrollmentService(t, db)
	admin := createUser(t, db, "Admin", "admin@example.com", "admin", "pw-admin-1")
	trainer := createUser(t, db, "Trainer", "trainer@example.com", "trainer", "pw-train-1")
	learner := createUser(t, db, "Learner", "learner@example.com", "learner", "pw-learn-1")
	course := createCourse(t, db, "Go Basics", models.CourseTypeInClass, admin.ID)
	schedule := createSchedule(t, db, course.ID, trainer.ID)

	_, err := svc.Enroll(context.Background(), identityFor(learner), schedule.ID, dto.EnrollRequest{LearnerID: learner.ID})
	var denied *policy.DeniedError
	require.ErrorAs(t, err, &denied)
}

func TestEnrollThenUnenroll(t *testing.T) {
	db := setupServiceDB(t)
	svc := newEnrollmentService(t, db)
	admin := createUser(t, db, "Admin", "admin@example.com", "admin", "pw-admin-1")
	trainer := createUser(t, db, "Trainer", "trainer@example.com", "trainer", "pw-train-1")
	learner := createUser(t, db, "Learner", "learner@example.com", "learner", "pw-learn-1")
	course := createCourse(t, db, "Go Basics", models.CourseTypeInClass, admin.ID)
	schedule := createSchedule(t, db, course.ID, trainer.ID)

	enrollment, err := svc.Enroll(context.Background(), identityFor(trainer), schedule.ID, dto.EnrollRequest{LearnerID: learner.ID})
	require.NoError(t, err)
	require.Equal(t, models.EnrollmentStatusActive, enrollment.Status)

	require.NoError(t, svc.Unenroll(context.Background(), identityFor(trainer), enrollment.ID))

	err = svc.Unenroll(context.Background(), identityFor(trainer), enrollment.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
