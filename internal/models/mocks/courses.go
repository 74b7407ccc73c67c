package mocks

import "github.com/mabego/edustream/internal/models"

type CourseModel struct{}

// newMockCourse creates an instance of the Course struct with mock data.
func newMockCourse() *models.Course {
	return &models.Course{
		ID:            1,
		Title:         "Introduction to React Development",
		Instructor:    "Sarah Johnson",
		Description:   "Learn the fundamentals of React including components, state management, and modern hooks.",
		Category:      "Web Development",
		Level:         "Beginner",
		Duration:      "4h 30m",
		Students:      1250,
		Thumbnail:     "/static/img/react-development-course-thumbnail.jpg",
		Price:         4999,
		OriginalPrice: 7999,
	}
}

func (m *CourseModel) Get(id int) (*models.Course, error) {
	switch id {
	case 1:
		return newMockCourse(), nil
	default:
		return nil, models.ErrNoRecord
	}
}

func (m *CourseModel) Latest() ([]*models.Course, error) {
	return []*models.Course{newMockCourse()}, nil
}
