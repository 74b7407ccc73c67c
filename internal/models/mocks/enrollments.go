package mocks

import (
	"time"

	"github.com/mabego/edustream/internal/models"
)

type EnrollmentModel struct{}

func (m *EnrollmentModel) Insert(courseID int, e models.Enrollment) (int, error) {
	if e.Email == "enrolled@example.com" {
		return 0, models.ErrAlreadyEnrolled
	}

	mockID := 1
	return mockID, nil
}

func (m *EnrollmentModel) ForEmail(email string) ([]*models.Enrollment, error) {
	if email != "alice@example.com" {
		return nil, nil
	}

	return []*models.Enrollment{{
		ID:          1,
		CourseID:    1,
		CourseTitle: "Introduction to React Development",
		FirstName:   "Alice",
		LastName:    "Smith",
		Email:       email,
		Experience:  "beginner",
		Created:     time.Now(),
	}}, nil
}
