package models

import (
	"database/sql"
	"time"
)

type QuizResultModelInterface interface {
	Insert(userID int, quizID string, score int) error
	ForUser(userID int) ([]*QuizResult, error)
}

type QuizResult struct {
	UserID  int
	QuizID  string
	Score   int
	Created time.Time
}

// QuizResultModel wraps a database connection pool
type QuizResultModel struct {
	DB *sql.DB
}

func (m *QuizResultModel) Insert(userID int, quizID string, score int) error {
	statement := `INSERT INTO quiz_results (user_id, quiz_id, score, created) VALUES(?, ?, ?, UTC_TIMESTAMP())`

	_, err := m.DB.Exec(statement, userID, quizID, score)
	return err
}

// ForUser returns the results of a user, newest first.
func (m *QuizResultModel) ForUser(userID int) ([]*QuizResult, error) {
	query := `SELECT user_id, quiz_id, score, created FROM quiz_results WHERE user_id = ? ORDER BY created DESC`

	rows, err := m.DB.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*QuizResult

	for rows.Next() {
		r := &QuizResult{}
		if err = rows.Scan(&r.UserID, &r.QuizID, &r.Score, &r.Created); err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
