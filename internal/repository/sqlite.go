package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kjdelacruz/stagetally/internal/models"
)

// queryer is satisfied by both *sql.DB and *sql.Tx so every data method
// works inside or outside a transaction.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository provides data access methods
type Repository struct {
	db *sql.DB
	q  queryer
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite works best with single connection
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db, q: db}

	// Run migrations
	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// NewWithDB wraps an existing database handle without running migrations.
// Used by tests that drive the handle with sqlmock.
func NewWithDB(db *sql.DB) *Repository {
	return &Repository{db: db, q: db}
}

// DB returns the underlying database connection
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// InTx runs fn against a transaction-scoped view of the repository.
// A nested call reuses the outer transaction.
func (r *Repository) InTx(ctx context.Context, fn func(FullRepository) error) error {
	if _, inTx := r.q.(*sql.Tx); inTx {
		return fn(r)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	txRepo := &Repository{db: r.db, q: tx}
	if err := fn(txRepo); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			event_type TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'Active',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS segments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			order_index INTEGER NOT NULL,
			percentage_weight REAL NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT 0,
			round_kind TEXT NOT NULL DEFAULT 'normal',
			qualifier_limit INTEGER NOT NULL DEFAULT 0,
			points_per_question REAL NOT NULL DEFAULT 0,
			total_questions INTEGER NOT NULL DEFAULT 0,
			participant_ids TEXT,
			related_segment_id INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE,
			FOREIGN KEY (related_segment_id) REFERENCES segments(id) ON DELETE SET NULL
		)`,
		`CREATE TABLE IF NOT EXISTS criteria (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			segment_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			weight REAL NOT NULL DEFAULT 0,
			max_score REAL NOT NULL DEFAULT 100,
			FOREIGN KEY (segment_id) REFERENCES segments(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS contestants (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id INTEGER NOT NULL,
			candidate_number INTEGER NOT NULL,
			name TEXT NOT NULL,
			gender TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'Active',
			image_path TEXT,
			tabulator_id INTEGER,
			FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE,
			UNIQUE(event_id, candidate_number, gender)
		)`,
		`CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			contestant_id INTEGER NOT NULL,
			segment_id INTEGER NOT NULL,
			judge_id INTEGER NOT NULL,
			criteria_id INTEGER,
			question_number INTEGER,
			is_correct BOOLEAN,
			score_value REAL NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (contestant_id) REFERENCES contestants(id) ON DELETE CASCADE,
			FOREIGN KEY (segment_id) REFERENCES segments(id) ON DELETE CASCADE,
			FOREIGN KEY (criteria_id) REFERENCES criteria(id) ON DELETE CASCADE
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_scores_criteria
			ON scores(contestant_id, segment_id, criteria_id)
			WHERE criteria_id IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_scores_question
			ON scores(contestant_id, segment_id, question_number)
			WHERE question_number IS NOT NULL`,
		`CREATE TABLE IF NOT EXISTS audit_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			actor_id INTEGER NOT NULL,
			action TEXT NOT NULL,
			detail TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

// ==================== Event Methods ====================

// CreateEvent creates a new event
func (r *Repository) CreateEvent(ctx context.Context, name string, eventType models.EventType) (int64, error) {
	result, err := r.q.ExecContext(ctx, `INSERT INTO events (name, event_type) VALUES (?, ?)`, name, string(eventType))
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetEvent retrieves an event by ID
func (r *Repository) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	var e models.Event
	var eventType string
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, event_type, status FROM events WHERE id = ?`, id,
	).Scan(&e.ID, &e.Name, &eventType, &e.Status)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	e.Type = models.EventType(eventType)
	return &e, nil
}

// ListEvents returns all events
func (r *Repository) ListEvents(ctx context.Context) ([]models.Event, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, event_type, status FROM events ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		var eventType string
		if err := rows.Scan(&e.ID, &e.Name, &eventType, &e.Status); err != nil {
			return nil, err
		}
		e.Type = models.EventType(eventType)
		events = append(events, e)
	}
	return events, rows.Err()
}

// DeleteEvent deletes an event; owned segments, criteria, contestants and
// scores follow via foreign key cascade.
func (r *Repository) DeleteEvent(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ==================== Segment Methods ====================

func encodeParticipants(ids []int64) (any, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func decodeParticipants(raw sql.NullString) ([]int64, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var ids []int64
	if err := json.Unmarshal([]byte(raw.String), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

const segmentColumns = `id, event_id, name, order_index, percentage_weight, is_active,
	round_kind, qualifier_limit, points_per_question, total_questions,
	participant_ids, related_segment_id`

func scanSegment(scan func(dest ...any) error) (*models.Segment, error) {
	var s models.Segment
	var kind string
	var participants sql.NullString
	var related sql.NullInt64
	err := scan(&s.ID, &s.EventID, &s.Name, &s.OrderIndex, &s.PercentageWeight,
		&s.IsActive, &kind, &s.QualifierLimit, &s.PointsPerQuestion,
		&s.TotalQuestions, &participants, &related)
	if err != nil {
		return nil, err
	}
	s.Kind = models.RoundKind(kind)
	if s.ParticipantIDs, err = decodeParticipants(participants); err != nil {
		return nil, err
	}
	if related.Valid {
		id := related.Int64
		s.RelatedSegmentID = &id
	}
	return &s, nil
}

// CreateSegment creates a segment and returns its new ID
func (r *Repository) CreateSegment(ctx context.Context, seg *models.Segment) (int64, error) {
	participants, err := encodeParticipants(seg.ParticipantIDs)
	if err != nil {
		return 0, err
	}
	result, err := r.q.ExecContext(ctx, `
		INSERT INTO segments (event_id, name, order_index, percentage_weight, is_active,
			round_kind, qualifier_limit, points_per_question, total_questions,
			participant_ids, related_segment_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, seg.EventID, seg.Name, seg.OrderIndex, seg.PercentageWeight, seg.IsActive,
		string(seg.Kind), seg.QualifierLimit, seg.PointsPerQuestion, seg.TotalQuestions,
		participants, seg.RelatedSegmentID)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetSegment retrieves a segment by ID
func (r *Repository) GetSegment(ctx context.Context, id int64) (*models.Segment, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+segmentColumns+` FROM segments WHERE id = ?`, id)
	seg, err := scanSegment(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return seg, err
}

// ListSegments returns all segments of an event ordered by order_index
func (r *Repository) ListSegments(ctx context.Context, eventID int64) ([]models.Segment, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+segmentColumns+` FROM segments WHERE event_id = ? ORDER BY order_index, id`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var segments []models.Segment
	for rows.Next() {
		seg, err := scanSegment(rows.Scan)
		if err != nil {
			return nil, err
		}
		segments = append(segments, *seg)
	}
	return segments, rows.Err()
}

// UpdateSegment updates a segment's mutable fields
func (r *Repository) UpdateSegment(ctx context.Context, seg *models.Segment) error {
	participants, err := encodeParticipants(seg.ParticipantIDs)
	if err != nil {
		return err
	}
	res, err := r.q.ExecContext(ctx, `
		UPDATE segments SET name = ?, order_index = ?, percentage_weight = ?,
			round_kind = ?, qualifier_limit = ?, points_per_question = ?,
			total_questions = ?, participant_ids = ?, related_segment_id = ?
		WHERE id = ?
	`, seg.Name, seg.OrderIndex, seg.PercentageWeight, string(seg.Kind),
		seg.QualifierLimit, seg.PointsPerQuestion, seg.TotalQuestions,
		participants, seg.RelatedSegmentID, seg.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetSegmentActive flips the activation flag of one segment
func (r *Repository) SetSegmentActive(ctx context.Context, id int64, active bool) error {
	res, err := r.q.ExecContext(ctx, `UPDATE segments SET is_active = ? WHERE id = ?`, active, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateSegments sets is_active=false on every segment of an event
func (r *Repository) DeactivateSegments(ctx context.Context, eventID int64) error {
	_, err := r.q.ExecContext(ctx, `UPDATE segments SET is_active = 0 WHERE event_id = ?`, eventID)
	return err
}

// SetSegmentParticipants replaces a segment's participant allow-list
func (r *Repository) SetSegmentParticipants(ctx context.Context, id int64, participantIDs []int64) error {
	participants, err := encodeParticipants(participantIDs)
	if err != nil {
		return err
	}
	res, err := r.q.ExecContext(ctx, `UPDATE segments SET participant_ids = ? WHERE id = ?`, participants, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSegment deletes a segment; its criteria and scores cascade
func (r *Repository) DeleteSegment(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM segments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// OrderIndexTaken reports whether another segment of the event already uses
// the given order_index. Clincher sub-rounds (related_segment_id set) are not
// counted; they share their parent's position.
func (r *Repository) OrderIndexTaken(ctx context.Context, eventID int64, orderIndex int, excludeSegmentID int64) (bool, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM segments
		WHERE event_id = ? AND order_index = ? AND id != ? AND related_segment_id IS NULL
	`, eventID, orderIndex, excludeSegmentID).Scan(&count)
	return count > 0, err
}

// ==================== Criteria Methods ====================

// CreateCriteria creates a criteria row for a segment
func (r *Repository) CreateCriteria(ctx context.Context, crit *models.Criteria) (int64, error) {
	result, err := r.q.ExecContext(ctx,
		`INSERT INTO criteria (segment_id, name, weight, max_score) VALUES (?, ?, ?, ?)`,
		crit.SegmentID, crit.Name, crit.Weight, crit.MaxScore)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetCriteria retrieves a criteria row by ID
func (r *Repository) GetCriteria(ctx context.Context, id int64) (*models.Criteria, error) {
	var c models.Criteria
	err := r.q.QueryRowContext(ctx,
		`SELECT id, segment_id, name, weight, max_score FROM criteria WHERE id = ?`, id,
	).Scan(&c.ID, &c.SegmentID, &c.Name, &c.Weight, &c.MaxScore)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCriteria returns all criteria of a segment
func (r *Repository) ListCriteria(ctx context.Context, segmentID int64) ([]models.Criteria, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, segment_id, name, weight, max_score FROM criteria WHERE segment_id = ? ORDER BY id`, segmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var criteria []models.Criteria
	for rows.Next() {
		var c models.Criteria
		if err := rows.Scan(&c.ID, &c.SegmentID, &c.Name, &c.Weight, &c.MaxScore); err != nil {
			return nil, err
		}
		criteria = append(criteria, c)
	}
	return criteria, rows.Err()
}

// UpdateCriteria updates a criteria row
func (r *Repository) UpdateCriteria(ctx context.Context, crit *models.Criteria) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE criteria SET name = ?, weight = ?, max_score = ? WHERE id = ?`,
		crit.Name, crit.Weight, crit.MaxScore, crit.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCriteria deletes a criteria row; its scores cascade
func (r *Repository) DeleteCriteria(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM criteria WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ==================== Contestant Methods ====================

// CreateContestant creates a contestant
func (r *Repository) CreateContestant(ctx context.Context, c *models.Contestant) (int64, error) {
	status := c.Status
	if status == "" {
		status = models.StatusActive
	}
	result, err := r.q.ExecContext(ctx, `
		INSERT INTO contestants (event_id, candidate_number, name, gender, status, image_path, tabulator_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, c.EventID, c.CandidateNumber, c.Name, c.Gender, string(status), c.ImagePath, c.TabulatorID)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetContestant retrieves a contestant by ID
func (r *Repository) GetContestant(ctx context.Context, id int64) (*models.Contestant, error) {
	var c models.Contestant
	var status string
	var image sql.NullString
	var tabulator sql.NullInt64
	err := r.q.QueryRowContext(ctx, `
		SELECT id, event_id, candidate_number, name, gender, status, image_path, tabulator_id
		FROM contestants WHERE id = ?
	`, id).Scan(&c.ID, &c.EventID, &c.CandidateNumber, &c.Name, &c.Gender, &status, &image, &tabulator)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	c.Status = models.ContestantStatus(status)
	if image.Valid {
		c.ImagePath = image.String
	}
	if tabulator.Valid {
		id := tabulator.Int64
		c.TabulatorID = &id
	}
	return &c, nil
}

// ListContestants returns an event's contestants ordered by candidate number
func (r *Repository) ListContestants(ctx context.Context, eventID int64, activeOnly bool) ([]models.Contestant, error) {
	query := `SELECT id, event_id, candidate_number, name, gender, status, image_path, tabulator_id
		FROM contestants WHERE event_id = ?`
	args := []any{eventID}
	if activeOnly {
		query += ` AND status = ?`
		args = append(args, string(models.StatusActive))
	}
	query += ` ORDER BY candidate_number, id`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contestants []models.Contestant
	for rows.Next() {
		var c models.Contestant
		var status string
		var image sql.NullString
		var tabulator sql.NullInt64
		if err := rows.Scan(&c.ID, &c.EventID, &c.CandidateNumber, &c.Name, &c.Gender, &status, &image, &tabulator); err != nil {
			return nil, err
		}
		c.Status = models.ContestantStatus(status)
		if image.Valid {
			c.ImagePath = image.String
		}
		if tabulator.Valid {
			id := tabulator.Int64
			c.TabulatorID = &id
		}
		contestants = append(contestants, c)
	}
	return contestants, rows.Err()
}

// CandidateNumberTaken reports whether a candidate number is already used
// within the event for the same gender. Numbers may repeat across genders.
func (r *Repository) CandidateNumberTaken(ctx context.Context, eventID int64, number int, gender string, excludeContestantID int64) (bool, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM contestants
		WHERE event_id = ? AND candidate_number = ? AND gender = ? AND id != ?
	`, eventID, number, gender, excludeContestantID).Scan(&count)
	return count > 0, err
}

// SetContestantStatus updates a contestant's elimination status
func (r *Repository) SetContestantStatus(ctx context.Context, id int64, status models.ContestantStatus) error {
	res, err := r.q.ExecContext(ctx, `UPDATE contestants SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteContestant removes a contestant; their scores cascade
func (r *Repository) DeleteContestant(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM contestants WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ==================== Score Methods ====================

const scoreColumns = `id, contestant_id, segment_id, judge_id, criteria_id, question_number, is_correct, score_value`

func scanScore(scan func(dest ...any) error) (*models.Score, error) {
	var s models.Score
	var criteriaID sql.NullInt64
	var question sql.NullInt64
	var correct sql.NullBool
	err := scan(&s.ID, &s.ContestantID, &s.SegmentID, &s.JudgeID, &criteriaID, &question, &correct, &s.Value)
	if err != nil {
		return nil, err
	}
	if criteriaID.Valid {
		id := criteriaID.Int64
		s.CriteriaID = &id
	}
	if question.Valid {
		q := int(question.Int64)
		s.QuestionNumber = &q
	}
	if correct.Valid {
		c := correct.Bool
		s.IsCorrect = &c
	}
	return &s, nil
}

// FindCriteriaScore looks up a pageant score by its natural key
func (r *Repository) FindCriteriaScore(ctx context.Context, contestantID, segmentID, criteriaID int64) (*models.Score, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+scoreColumns+` FROM scores
		WHERE contestant_id = ? AND segment_id = ? AND criteria_id = ?
	`, contestantID, segmentID, criteriaID)
	score, err := scanScore(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return score, err
}

// FindAnswerScore looks up a quiz score by its natural key
func (r *Repository) FindAnswerScore(ctx context.Context, contestantID, segmentID int64, questionNumber int) (*models.Score, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+scoreColumns+` FROM scores
		WHERE contestant_id = ? AND segment_id = ? AND question_number = ?
	`, contestantID, segmentID, questionNumber)
	score, err := scanScore(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return score, err
}

// InsertScore inserts a new score row
func (r *Repository) InsertScore(ctx context.Context, score *models.Score) (int64, error) {
	result, err := r.q.ExecContext(ctx, `
		INSERT INTO scores (contestant_id, segment_id, judge_id, criteria_id, question_number, is_correct, score_value)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, score.ContestantID, score.SegmentID, score.JudgeID, score.CriteriaID,
		score.QuestionNumber, score.IsCorrect, score.Value)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateScore overwrites an existing score row's value, correctness and scorer
func (r *Repository) UpdateScore(ctx context.Context, score *models.Score) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE scores SET judge_id = ?, is_correct = ?, score_value = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, score.JudgeID, score.IsCorrect, score.Value, score.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListSegmentScores returns every score row of one segment
func (r *Repository) ListSegmentScores(ctx context.Context, segmentID int64) ([]models.Score, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+scoreColumns+` FROM scores WHERE segment_id = ? ORDER BY id`, segmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectScores(rows)
}

// ListEventScores returns every score row of an event, joined through segments
func (r *Repository) ListEventScores(ctx context.Context, eventID int64) ([]models.Score, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT s.id, s.contestant_id, s.segment_id, s.judge_id, s.criteria_id,
			s.question_number, s.is_correct, s.score_value
		FROM scores s
		JOIN segments seg ON s.segment_id = seg.id
		WHERE seg.event_id = ?
		ORDER BY s.id
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectScores(rows)
}

func collectScores(rows *sql.Rows) ([]models.Score, error) {
	var scores []models.Score
	for rows.Next() {
		score, err := scanScore(rows.Scan)
		if err != nil {
			return nil, err
		}
		scores = append(scores, *score)
	}
	return scores, rows.Err()
}

// ==================== Audit Methods ====================

// AppendAudit appends one audit log entry
func (r *Repository) AppendAudit(ctx context.Context, actorID int64, action, detail string) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO audit_log (actor_id, action, detail) VALUES (?, ?, ?)`,
		actorID, action, detail)
	return err
}

// ListAudit returns the most recent audit entries, newest first
func (r *Repository) ListAudit(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, actor_id, action, detail, created_at
		FROM audit_log ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		var detail sql.NullString
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		if detail.Valid {
			e.Detail = detail.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
