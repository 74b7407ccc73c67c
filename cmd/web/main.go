package main

import (
	"database/sql"
	"flag"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/v2"
	"github.com/go-playground/form/v4"
	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/mabego/edustream/internal/cart"
	"github.com/mabego/edustream/internal/models"
	"github.com/mabego/edustream/internal/quiz"
)

const (
	IdleTimeout     = time.Minute
	ReadTimeout     = 5 * time.Second
	SessionLifetime = 12 * time.Hour
	WriteTimeout    = 10 * time.Second
)

type application struct {
	debug          bool
	errorLog       *log.Logger
	infoLog        *log.Logger
	courses        models.CourseModelInterface
	users          models.UserModelInterface
	enrollments    models.EnrollmentModelInterface
	orders         models.OrderModelInterface
	quizResults    models.QuizResultModelInterface
	carts          cart.Store
	quiz           *quiz.Quiz
	templateCache  map[string]*template.Template
	formDecoder    *form.Decoder
	sessionManager *scs.SessionManager
	now            func() time.Time
}

func main() {
	// A missing .env file is fine; flags and the environment still apply.
	_ = godotenv.Load()

	addr := flag.String("addr", env("EDUSTREAM_ADDR", ":4001"), "HTTP network address")
	dsn := flag.String("dsn", env("EDUSTREAM_DSN", ""), "MariaDB data source name")
	debug := flag.Bool("debug", envBool("EDUSTREAM_DEBUG", false), "Enable debug mode in the browser")

	flag.Parse()

	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	db, err := openDB(*dsn)
	if err != nil {
		errorLog.Fatal(err)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {
			errorLog.Fatal(err)
		}
	}(db)

	templateCache, err := newTemplateCache()
	if err != nil {
		errorLog.Fatal(err)
	}

	formDecoder := form.NewDecoder()

	sessionManager := scs.New()
	sessionManager.Store = mysqlstore.New(db)
	sessionManager.Lifetime = SessionLifetime

	app := &application{
		debug:          *debug,
		errorLog:       errorLog,
		infoLog:        infoLog,
		courses:        &models.CourseModel{DB: db},
		users:          &models.UserModel{DB: db},
		enrollments:    &models.EnrollmentModel{DB: db},
		orders:         &models.OrderModel{DB: db},
		quizResults:    &models.QuizResultModel{DB: db},
		carts:          &cart.SessionStore{Sessions: sessionManager},
		quiz:           quiz.Default,
		templateCache:  templateCache,
		formDecoder:    formDecoder,
		sessionManager: sessionManager,
		now:            time.Now,
	}

	srv := &http.Server{
		Addr:         *addr,
		Handler:      app.routes(),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
		ErrorLog:     errorLog,
	}

	infoLog.Printf("Starting server on %s", *addr)
	errorLog.Fatal(srv.ListenAndServe())
}

// openDB wraps sql.Open and returns a sql.DB connection pool for a given data source name.
// parseTime is forced on so DATETIME columns scan into time.Time.
func openDB(dsn string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("dsn: %w", err)
	}
	cfg.ParseTime = true

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("database pool initialization: %w", err) // wrapped error
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("database connection: %w", err)
	}

	return db, nil
}

func env(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(env(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return value
}
