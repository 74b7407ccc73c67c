package models

import (
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
)

type EnrollmentModelInterface interface {
	Insert(courseID int, e Enrollment) (int, error)
	ForEmail(email string) ([]*Enrollment, error)
}

// Enrollment is a learner's registration for a course, as submitted through the enrollment form.
type Enrollment struct {
	ID          int
	CourseID    int
	CourseTitle string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Experience  string
	Goals       string
	Created     time.Time
}

// EnrollmentModel wraps a database connection pool
type EnrollmentModel struct {
	DB *sql.DB
}

func (m *EnrollmentModel) Insert(courseID int, e Enrollment) (int, error) {
	statement := `INSERT INTO enrollments (course_id, first_name, last_name, email, phone, experience, goals, created)
VALUES(?, ?, ?, ?, ?, ?, ?, UTC_TIMESTAMP())`

	result, err := m.DB.Exec(statement, courseID, e.FirstName, e.LastName, e.Email, e.Phone, e.Experience, e.Goals)
	if err != nil {
		var mySQLError *mysql.MySQLError
		if errors.As(err, &mySQLError) && mySQLError.Number == mysqlDuplicateEntry {
			return 0, ErrAlreadyEnrolled
		}
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	return int(id), nil
}

func (m *EnrollmentModel) ForEmail(email string) ([]*Enrollment, error) {
	query := `SELECT e.id, e.course_id, c.title, e.first_name, e.last_name, e.email, e.phone, e.experience,
e.goals, e.created
FROM enrollments e JOIN courses c ON c.id = e.course_id
WHERE e.email = ? ORDER BY e.created DESC`

	rows, err := m.DB.Query(query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*Enrollment

	for rows.Next() {
		e := &Enrollment{}
		err = rows.Scan(&e.ID, &e.CourseID, &e.CourseTitle, &e.FirstName, &e.LastName, &e.Email, &e.Phone,
			&e.Experience, &e.Goals, &e.Created)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}
