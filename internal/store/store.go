// Package store persists projects and their conversations in sqlite or
// postgres, with an optional redis read-through cache in front.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sant0-9/hookline/internal/script"
)

var ErrNotFound = errors.New("not found")

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// timeLayout is fixed width so text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Filter narrows List. Zero values match everything.
type Filter struct {
	Platform script.Platform
	Status   string
	Limit    int
}

type Conversation struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

type Store interface {
	Save(ctx context.Context, s *script.ProjectState) error
	Load(ctx context.Context, id string) (*script.ProjectState, error)
	List(ctx context.Context, f Filter) ([]script.ProjectSummary, error)
	Delete(ctx context.Context, id string) error

	CreateConversation(ctx context.Context, c *Conversation) error
	GetConversation(ctx context.Context, id string) (*Conversation, error)
	ListConversations(ctx context.Context, limit int) ([]Conversation, error)
	DeleteConversation(ctx context.Context, id string) error
	AppendMessage(ctx context.Context, m *Message) error
	Messages(ctx context.Context, conversationID string) ([]Message, error)

	Close() error
}

// SQLStore implements Store on database/sql.
type SQLStore struct {
	db     *sql.DB
	driver string
	locks  *Locks
}

// Open connects to the database and creates the schema. An empty driver
// means sqlite3; a sqlite DSN is a file path or ":memory:".
func Open(driver, dsn string) (*SQLStore, error) {
	if driver == "" {
		driver = DriverSQLite
	}

	var (
		db  *sql.DB
		err error
	)
	switch driver {
	case DriverSQLite:
		if dsn == "" {
			return nil, errors.New("sqlite database path is empty")
		}
		source := dsn
		if dsn != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
				return nil, fmt.Errorf("failed to create directory: %w", err)
			}
			if !strings.Contains(dsn, "?") {
				source = dsn + "?_journal_mode=WAL&_busy_timeout=5000"
			}
		}
		db, err = sql.Open(DriverSQLite, source)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		// One connection keeps :memory: a single database and avoids
		// SQLITE_BUSY between writers.
		db.SetMaxOpenConns(1)
	case DriverPostgres:
		db, err = sql.Open(DriverPostgres, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	s := &SQLStore{db: db, driver: driver, locks: NewLocks()}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		topic TEXT NOT NULL,
		platform TEXT NOT NULL,
		audience TEXT NOT NULL DEFAULT '',
		video_duration TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		state_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_updated ON projects(updated_at)`,
	`CREATE TABLE IF NOT EXISTS conversations (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		title TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_conversations_updated ON conversations(updated_at)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		conversation_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, seq)`,
}

func (s *SQLStore) initSchema() error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// rebind rewrites ? placeholders to $n for postgres.
func rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) q(query string) string {
	return rebind(s.driver, query)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(v string) time.Time {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Save upserts the project. Writes to one project id are serialized.
func (s *SQLStore) Save(ctx context.Context, p *script.ProjectState) error {
	if p == nil || p.ID == "" {
		return errors.New("save project: missing id")
	}
	return s.locks.With("project:"+p.ID, func() error {
		state, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode project: %w", err)
		}
		sum := p.Summary()
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now().UTC()
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = p.CreatedAt
		}

		_, err = s.db.ExecContext(ctx, s.q(`
			INSERT INTO projects (id, title, topic, platform, audience, video_duration,
				status, state_json, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				title = excluded.title,
				topic = excluded.topic,
				platform = excluded.platform,
				audience = excluded.audience,
				video_duration = excluded.video_duration,
				status = excluded.status,
				state_json = excluded.state_json,
				updated_at = excluded.updated_at
		`), p.ID, p.Title, p.Topic, string(p.Platform), p.Audience, sum.VideoDuration,
			sum.Status, string(state), formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
		if err != nil {
			return fmt.Errorf("save project %s: %w", p.ID, err)
		}
		return nil
	})
}

func (s *SQLStore) Load(ctx context.Context, id string) (*script.ProjectState, error) {
	var state string
	err := s.db.QueryRowContext(ctx, s.q(`SELECT state_json FROM projects WHERE id = ?`), id).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load project %s: %w", id, err)
	}

	var p script.ProjectState
	if err := json.Unmarshal([]byte(state), &p); err != nil {
		return nil, fmt.Errorf("decode project %s: %w", id, err)
	}
	return &p, nil
}

// List returns project summaries, most recently updated first.
func (s *SQLStore) List(ctx context.Context, f Filter) ([]script.ProjectSummary, error) {
	query := `SELECT id, title, topic, platform, audience, video_duration, status,
		created_at, updated_at FROM projects`
	var (
		where []string
		args  []any
	)
	if f.Platform != "" {
		where = append(where, "platform = ?")
		args = append(args, string(f.Platform))
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY updated_at DESC"
	if f.Limit > 0 {
		query += " LIMIT " + strconv.Itoa(f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []script.ProjectSummary
	for rows.Next() {
		var (
			p                script.ProjectSummary
			platform         string
			created, updated string
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.Topic, &platform, &p.Audience,
			&p.VideoDuration, &p.Status, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.Platform = script.Platform(platform)
		p.CreatedAt = parseTime(created).Format(time.RFC3339)
		p.UpdatedAt = parseTime(updated).Format(time.RFC3339)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes a project together with its conversations and messages.
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	return s.locks.With("project:"+id, func() error {
		return s.inTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, s.q(`DELETE FROM messages WHERE conversation_id IN
				(SELECT id FROM conversations WHERE project_id = ?)`), id); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, s.q(`DELETE FROM conversations WHERE project_id = ?`), id); err != nil {
				return err
			}
			res, err := tx.ExecContext(ctx, s.q(`DELETE FROM projects WHERE id = ?`), id)
			if err != nil {
				return err
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return fmt.Errorf("project %s: %w", id, ErrNotFound)
			}
			return nil
		})
	})
}

func (s *SQLStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *SQLStore) CreateConversation(ctx context.Context, c *Conversation) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = c.CreatedAt

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO conversations (id, project_id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`), c.ID, c.ProjectID, c.Title, formatTime(c.CreatedAt), formatTime(c.UpdatedAt))
	if err != nil {
		return fmt.Errorf("create conversation: %w", err)
	}
	return nil
}

func (s *SQLStore) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	var (
		c                Conversation
		created, updated string
	)
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT id, project_id, title, created_at, updated_at FROM conversations WHERE id = ?
	`), id).Scan(&c.ID, &c.ProjectID, &c.Title, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("conversation %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get conversation %s: %w", id, err)
	}
	c.CreatedAt = parseTime(created)
	c.UpdatedAt = parseTime(updated)
	return &c, nil
}

// ListConversations returns conversations, most recently active first.
// The title follows the project's current title.
func (s *SQLStore) ListConversations(ctx context.Context, limit int) ([]Conversation, error) {
	query := `SELECT c.id, c.project_id, COALESCE(p.title, c.title), c.created_at, c.updated_at
		FROM conversations c LEFT JOIN projects p ON p.id = c.project_id
		ORDER BY c.updated_at DESC`
	if limit > 0 {
		query += " LIMIT " + strconv.Itoa(limit)
	}
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var out []Conversation
	for rows.Next() {
		var (
			c                Conversation
			created, updated string
		)
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Title, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		c.CreatedAt = parseTime(created)
		c.UpdatedAt = parseTime(updated)
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteConversation removes the conversation, its messages and its
// project.
func (s *SQLStore) DeleteConversation(ctx context.Context, id string) error {
	c, err := s.GetConversation(ctx, id)
	if err != nil {
		return err
	}
	return s.locks.With("project:"+c.ProjectID, func() error {
		return s.inTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, s.q(`DELETE FROM messages WHERE conversation_id = ?`), id); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, s.q(`DELETE FROM conversations WHERE id = ?`), id); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, s.q(`DELETE FROM projects WHERE id = ?`), c.ProjectID)
			return err
		})
	})
}

// AppendMessage stores m at the end of its conversation and bumps the
// conversation's updated_at.
func (s *SQLStore) AppendMessage(ctx context.Context, m *Message) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return s.locks.With("conversation:"+m.ConversationID, func() error {
		return s.inTx(ctx, func(tx *sql.Tx) error {
			var seq int64
			err := tx.QueryRowContext(ctx, s.q(`SELECT COALESCE(MAX(seq), 0) FROM messages WHERE conversation_id = ?`),
				m.ConversationID).Scan(&seq)
			if err != nil {
				return fmt.Errorf("append message: %w", err)
			}
			_, err = tx.ExecContext(ctx, s.q(`
				INSERT INTO messages (id, conversation_id, seq, role, content, created_at)
				VALUES (?, ?, ?, ?, ?, ?)
			`), m.ID, m.ConversationID, seq+1, m.Role, m.Content, formatTime(m.CreatedAt))
			if err != nil {
				return fmt.Errorf("append message: %w", err)
			}
			res, err := tx.ExecContext(ctx, s.q(`UPDATE conversations SET updated_at = ? WHERE id = ?`),
				formatTime(m.CreatedAt), m.ConversationID)
			if err != nil {
				return fmt.Errorf("touch conversation: %w", err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return fmt.Errorf("conversation %s: %w", m.ConversationID, ErrNotFound)
			}
			return nil
		})
	})
}

// Messages returns the conversation's messages in the order they were
// appended.
func (s *SQLStore) Messages(ctx context.Context, conversationID string) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT id, conversation_id, role, content, created_at FROM messages
		WHERE conversation_id = ? ORDER BY seq
	`), conversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var (
			m       Message
			created string
		)
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &created); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.CreatedAt = parseTime(created)
		out = append(out, m)
	}
	return out, rows.Err()
}
