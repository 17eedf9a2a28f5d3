// Package storage persists ingested records and generated hypotheses in a
// SQLite database.
package storage

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/matsen/chronos/internal/article"
)

// ID prefixes distinguish record classes in a shared ID namespace.
const (
	ObservationPrefix = "hist-"
	StudyPrefix       = "mod-"
	HypothesisPrefix  = "hyp-"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		-- Historical observations from earlier records
		CREATE TABLE IF NOT EXISTS observations (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			source_id TEXT NOT NULL,
			doi TEXT,
			created_at INTEGER NOT NULL
		);

		-- Modern studies ingested from PubMed
		CREATE TABLE IF NOT EXISTS studies (
			id TEXT PRIMARY KEY,
			pmid TEXT NOT NULL,
			title TEXT NOT NULL,
			authors_json TEXT NOT NULL,
			abstract TEXT,
			publication_date TEXT,
			journal TEXT,
			doi TEXT,
			keywords_json TEXT,
			created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_studies_pmid ON studies(pmid);

		-- Hypotheses linking an observation to a study
		CREATE TABLE IF NOT EXISTS hypotheses (
			id TEXT PRIMARY KEY,
			observation_id TEXT NOT NULL REFERENCES observations(id),
			study_id TEXT NOT NULL REFERENCES studies(id),
			text TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}

// newID returns a prefixed random identifier.
func newID(prefix string) string {
	buf := make([]byte, 16)
	rand.Read(buf)
	return prefix + hex.EncodeToString(buf)
}

// SaveObservation stores a historical observation and returns its new ID.
func (d *DB) SaveObservation(obs *article.Observation) (string, error) {
	if err := obs.ValidateForIngest(); err != nil {
		return "", err
	}

	id := newID(ObservationPrefix)
	_, err := d.db.Exec(`
		INSERT INTO observations (id, text, source_id, doi, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, obs.Text, obs.SourceID, nullableString(obs.DOI), time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("inserting observation: %w", err)
	}
	return id, nil
}

// GetObservation retrieves an observation by ID. Returns nil if absent.
func (d *DB) GetObservation(id string) (*article.Observation, error) {
	var obs article.Observation
	var doi sql.NullString
	err := d.db.QueryRow(`
		SELECT id, text, source_id, doi FROM observations WHERE id = ?
	`, id).Scan(&obs.ID, &obs.Text, &obs.SourceID, &doi)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	obs.DOI = doi.String
	return &obs, nil
}

// SaveStudy stores a modern study and returns its new ID.
func (d *DB) SaveStudy(a *article.Article) (string, error) {
	if err := a.ValidateForIngest(); err != nil {
		return "", err
	}

	authorsJSON, err := json.Marshal(a.Authors)
	if err != nil {
		return "", fmt.Errorf("marshaling authors for %s: %w", a.PMID, err)
	}
	var keywordsJSON []byte
	if len(a.Keywords) > 0 {
		keywordsJSON, err = json.Marshal(a.Keywords)
		if err != nil {
			return "", fmt.Errorf("marshaling keywords for %s: %w", a.PMID, err)
		}
	}

	id := newID(StudyPrefix)
	_, err = d.db.Exec(`
		INSERT INTO studies (
			id, pmid, title, authors_json, abstract,
			publication_date, journal, doi, keywords_json, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		id, a.PMID, a.Title, string(authorsJSON), nullableString(a.Abstract),
		nullableString(a.PublicationDate), nullableString(a.Journal),
		nullableString(a.DOI), nullableBytes(keywordsJSON), time.Now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("inserting study: %w", err)
	}
	return id, nil
}

// GetStudy retrieves a study by ID. Returns nil if absent.
func (d *DB) GetStudy(id string) (*article.Article, error) {
	row := d.db.QueryRow(`
		SELECT pmid, title, authors_json, abstract,
			publication_date, journal, doi, keywords_json
		FROM studies WHERE id = ?
	`, id)
	return scanStudy(id, row)
}

// GetStudyByPMID retrieves the most recently saved study with the given
// PMID. Returns the study and its storage ID, or nil if absent.
func (d *DB) GetStudyByPMID(pmid string) (*article.Article, string, error) {
	var id string
	err := d.db.QueryRow(`
		SELECT id FROM studies WHERE pmid = ?
		ORDER BY created_at DESC, rowid DESC LIMIT 1
	`, pmid).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", nil
		}
		return nil, "", err
	}

	study, err := d.GetStudy(id)
	return study, id, err
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanStudy(id string, s scanner) (*article.Article, error) {
	var a article.Article
	var authorsJSON string
	var abstract, pubDate, journal, doi, keywordsJSON sql.NullString

	err := s.Scan(&a.PMID, &a.Title, &authorsJSON, &abstract,
		&pubDate, &journal, &doi, &keywordsJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	a.Abstract = abstract.String
	a.PublicationDate = pubDate.String
	a.Journal = journal.String
	a.DOI = doi.String

	if err := json.Unmarshal([]byte(authorsJSON), &a.Authors); err != nil {
		return nil, fmt.Errorf("parsing authors JSON for %s: %w", id, err)
	}
	if keywordsJSON.Valid && keywordsJSON.String != "" {
		if err := json.Unmarshal([]byte(keywordsJSON.String), &a.Keywords); err != nil {
			return nil, fmt.Errorf("parsing keywords JSON for %s: %w", id, err)
		}
	}

	return &a, nil
}

// SaveHypothesis stores a hypothesis linking an observation to a study and
// returns its new ID. Both linked records must exist.
func (d *DB) SaveHypothesis(observationID, studyID, text string) (string, error) {
	if text == "" {
		return "", fmt.Errorf("hypothesis text cannot be empty")
	}

	obs, err := d.GetObservation(observationID)
	if err != nil {
		return "", err
	}
	if obs == nil {
		return "", fmt.Errorf("observation %s not found", observationID)
	}
	study, err := d.GetStudy(studyID)
	if err != nil {
		return "", err
	}
	if study == nil {
		return "", fmt.Errorf("study %s not found", studyID)
	}

	id := newID(HypothesisPrefix)
	_, err = d.db.Exec(`
		INSERT INTO hypotheses (id, observation_id, study_id, text, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, observationID, studyID, text, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("inserting hypothesis: %w", err)
	}
	return id, nil
}

// HypothesisLink is a stored hypothesis with its linked record IDs.
type HypothesisLink struct {
	ID            string `json:"id"`
	ObservationID string `json:"observation_id"`
	StudyID       string `json:"study_id"`
	Text          string `json:"text"`
}

// GetHypothesis retrieves a hypothesis by ID. Returns nil if absent.
func (d *DB) GetHypothesis(id string) (*HypothesisLink, error) {
	var h HypothesisLink
	err := d.db.QueryRow(`
		SELECT id, observation_id, study_id, text FROM hypotheses WHERE id = ?
	`, id).Scan(&h.ID, &h.ObservationID, &h.StudyID, &h.Text)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

// GetHypothesisForPair retrieves the most recent hypothesis linking the
// given observation and study. Returns nil if none exists.
func (d *DB) GetHypothesisForPair(observationID, studyID string) (*HypothesisLink, error) {
	var h HypothesisLink
	err := d.db.QueryRow(`
		SELECT id, observation_id, study_id, text
		FROM hypotheses
		WHERE observation_id = ? AND study_id = ?
		ORDER BY created_at DESC LIMIT 1
	`, observationID, studyID).Scan(&h.ID, &h.ObservationID, &h.StudyID, &h.Text)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

// Counts reports how many records of each class are stored.
type Counts struct {
	Observations int `json:"observations"`
	Studies      int `json:"studies"`
	Hypotheses   int `json:"hypotheses"`
}

// Count returns record counts for all three tables.
func (d *DB) Count() (Counts, error) {
	var c Counts
	for _, q := range []struct {
		table string
		dest  *int
	}{
		{"observations", &c.Observations},
		{"studies", &c.Studies},
		{"hypotheses", &c.Hypotheses},
	} {
		if err := d.db.QueryRow("SELECT COUNT(*) FROM " + q.table).Scan(q.dest); err != nil {
			return Counts{}, fmt.Errorf("counting %s: %w", q.table, err)
		}
	}
	return c, nil
}

// nullableString converts a string to sql.NullString, treating empty as NULL.
func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullableBytes(b []byte) sql.NullString {
	if len(b) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}
