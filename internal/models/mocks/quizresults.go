package mocks

import (
	"time"

	"github.com/mabego/edustream/internal/models"
)

type QuizResultModel struct{}

func (m *QuizResultModel) Insert(userID int, quizID string, score int) error { return nil }

func (m *QuizResultModel) ForUser(userID int) ([]*models.QuizResult, error) {
	if userID != 1 {
		return nil, nil
	}

	return []*models.QuizResult{{UserID: 1, QuizID: "react-fundamentals", Score: 80, Created: time.Now()}}, nil
}
