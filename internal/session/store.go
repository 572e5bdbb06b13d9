package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store provides SQLite-backed persistence.
type Store struct {
	db *sql.DB
}

// NewStore opens the SQLite database at dbPath and creates tables if they don't exist.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS resumes (
		resume_id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		job_role TEXT NOT NULL DEFAULT '',
		job_description TEXT NOT NULL DEFAULT '',
		raw_text TEXT NOT NULL,
		upload_date DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_resumes_user ON resumes(user_id, upload_date);

	CREATE TABLE IF NOT EXISTS interview_sessions (
		session_id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		resume_id TEXT NOT NULL DEFAULT '',
		kind TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		duration_seconds INTEGER NOT NULL DEFAULT 0,
		topics_covered TEXT NOT NULL DEFAULT '[]',
		job_description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		start_time DATETIME NOT NULL,
		end_time DATETIME
	);

	CREATE TABLE IF NOT EXISTS interview_messages (
		message_id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		timestamp DATETIME NOT NULL,
		FOREIGN KEY (session_id) REFERENCES interview_sessions(session_id)
	);

	CREATE INDEX IF NOT EXISTS idx_messages_session ON interview_messages(session_id, seq);
	`
	_, err := db.Exec(schema)
	return err
}

// CreateResume stores resume text for a user.
func (s *Store) CreateResume(ctx context.Context, userID, jobRole, jobDescription, rawText string) (*Resume, error) {
	r := &Resume{
		ID:             uuid.New().String(),
		UserID:         userID,
		JobRole:        jobRole,
		JobDescription: jobDescription,
		RawText:        rawText,
		UploadedAt:     time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO resumes (resume_id, user_id, job_role, job_description, raw_text, upload_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.JobRole, r.JobDescription, r.RawText, r.UploadedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert resume: %w", err)
	}
	return r, nil
}

// GetResume retrieves a resume by ID.
func (s *Store) GetResume(ctx context.Context, id string) (*Resume, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT resume_id, user_id, job_role, job_description, raw_text, upload_date
		 FROM resumes WHERE resume_id = ?`,
		id,
	)
	return scanResume(row)
}

// LatestResume returns the most recently uploaded resume for userID.
func (s *Store) LatestResume(ctx context.Context, userID string) (*Resume, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT resume_id, user_id, job_role, job_description, raw_text, upload_date
		 FROM resumes
		 WHERE user_id = ?
		 ORDER BY rowid DESC
		 LIMIT 1`,
		userID,
	)
	return scanResume(row)
}

func scanResume(row *sql.Row) (*Resume, error) {
	var r Resume
	err := row.Scan(&r.ID, &r.UserID, &r.JobRole, &r.JobDescription, &r.RawText, &r.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan resume: %w", err)
	}
	return &r, nil
}

// CreateSession inserts a new active session. ID and StartTime are assigned.
func (s *Store) CreateSession(ctx context.Context, sess *Session) error {
	if sess.Topics == nil {
		sess.Topics = []string{}
	}
	topics, err := json.Marshal(sess.Topics)
	if err != nil {
		return fmt.Errorf("encode topics: %w", err)
	}

	sess.ID = uuid.New().String()
	sess.Status = StatusActive
	sess.StartTime = time.Now().UTC()
	sess.EndTime = nil

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO interview_sessions
		 (session_id, user_id, resume_id, kind, difficulty, duration_seconds, topics_covered, job_description, status, start_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.UserID, sess.ResumeID, sess.Kind, sess.Difficulty, sess.DurationSeconds,
		string(topics), sess.JobDescription, sess.Status, sess.StartTime,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT session_id, user_id, resume_id, kind, difficulty, duration_seconds,
		        topics_covered, job_description, status, start_time, end_time
		 FROM interview_sessions WHERE session_id = ?`,
		id,
	)

	var (
		sess   Session
		topics string
		end    sql.NullTime
	)
	err := row.Scan(&sess.ID, &sess.UserID, &sess.ResumeID, &sess.Kind, &sess.Difficulty,
		&sess.DurationSeconds, &topics, &sess.JobDescription, &sess.Status, &sess.StartTime, &end)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	if err := json.Unmarshal([]byte(topics), &sess.Topics); err != nil {
		return nil, fmt.Errorf("decode topics: %w", err)
	}
	if end.Valid {
		t := end.Time
		sess.EndTime = &t
	}
	return &sess, nil
}

// CompleteSession marks a session completed and stamps its end time. Completing
// an already completed session keeps the first end time.
func (s *Store) CompleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE interview_sessions
		 SET status = ?, end_time = COALESCE(end_time, ?)
		 WHERE session_id = ?`,
		StatusCompleted, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// AddMessage appends a message to a session's transcript.
func (s *Store) AddMessage(ctx context.Context, sessionID, role, content string) (*Message, error) {
	m := &Message{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO interview_messages (message_id, session_id, seq, role, content, timestamp)
		 VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM interview_messages WHERE session_id = ?), ?, ?, ?)`,
		m.ID, m.SessionID, m.SessionID, m.Role, m.Content, m.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return m, nil
}

// Messages returns a session's transcript in insertion order.
func (s *Store) Messages(ctx context.Context, sessionID string) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT message_id, session_id, role, content, timestamp
		 FROM interview_messages
		 WHERE session_id = ?
		 ORDER BY seq ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return out, nil
}

// QuestionTexts returns the texts of every question asked in a session.
func (s *Store) QuestionTexts(ctx context.Context, sessionID string) ([]string, error) {
	msgs, err := s.Messages(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, m := range msgs {
		if m.Role == RoleAI {
			out = append(out, m.Content)
		}
	}
	return out, nil
}

// Summarize counts the questions and answers of a session.
func (s *Store) Summarize(ctx context.Context, sessionID string) (Summary, error) {
	var sum Summary
	err := s.db.QueryRowContext(ctx,
		`SELECT
		   COALESCE(SUM(CASE WHEN role = ? THEN 1 ELSE 0 END), 0),
		   COALESCE(SUM(CASE WHEN role = ? THEN 1 ELSE 0 END), 0)
		 FROM interview_messages WHERE session_id = ?`,
		RoleAI, RoleUser, sessionID,
	).Scan(&sum.QuestionsAsked, &sum.AnswersGiven)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize session: %w", err)
	}
	return sum, nil
}
