package models

import (
	"database/sql"
	"errors"

	"github.com/mabego/edustream/internal/cart"
)

type CourseModelInterface interface {
	Get(id int) (*Course, error)
	Latest() ([]*Course, error)
}

// Course is a catalog entry. Prices are in cents; a zero OriginalPrice means the course is not discounted.
type Course struct {
	ID            int
	Title         string
	Instructor    string
	Description   string
	Category      string
	Level         string
	Duration      string
	Students      int
	Thumbnail     string
	VideoURL      string
	Price         int64
	OriginalPrice int64
}

// CartItem converts the course into the item stored in a shopping cart.
func (c *Course) CartItem() cart.Item {
	return cart.Item{
		ID:            c.ID,
		Title:         c.Title,
		Instructor:    c.Instructor,
		Price:         c.Price,
		OriginalPrice: c.OriginalPrice,
		Thumbnail:     c.Thumbnail,
		Category:      c.Category,
		Level:         c.Level,
		Duration:      c.Duration,
	}
}

// Discount is the saving against the original price as a whole percentage.
func (c *Course) Discount() int {
	if c.OriginalPrice <= c.Price || c.OriginalPrice == 0 {
		return 0
	}
	return int((c.OriginalPrice - c.Price) * 100 / c.OriginalPrice)
}

// CourseModel wraps a database connection pool
type CourseModel struct {
	DB *sql.DB
}

const courseColumns = `id, title, instructor, description, category, level, duration, students,
thumbnail, video_url, price, original_price`

func scanCourse(row interface{ Scan(...any) error }, c *Course) error {
	return row.Scan(&c.ID, &c.Title, &c.Instructor, &c.Description, &c.Category, &c.Level, &c.Duration,
		&c.Students, &c.Thumbnail, &c.VideoURL, &c.Price, &c.OriginalPrice)
}

func (m *CourseModel) Get(id int) (*Course, error) {
	c := &Course{}

	query := `SELECT ` + courseColumns + ` FROM courses WHERE published = TRUE AND id = ?`

	err := scanCourse(m.DB.QueryRow(query, id), c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoRecord
		}
		return nil, err
	}

	return c, nil
}

func (m *CourseModel) Latest() ([]*Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE published = TRUE ORDER BY id`

	rows, err := m.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*Course

	for rows.Next() {
		c := &Course{}
		if err = scanCourse(rows, c); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}

	// Call rows.Err after the rows.Next loop to retrieve any error encountered during the iteration.
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}
