package journal

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"codeberg.org/mutker/gaugectl/internal/errors"
	"codeberg.org/mutker/gaugectl/internal/gauge"
	"codeberg.org/mutker/gaugectl/internal/logger"
	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite journal. Readings are buffered and flushed when the
// batch is full, on the batch timer and on Close.
type Store struct {
	db     *sql.DB
	logger logger.Logger
	cfg    Config

	mu     sync.Mutex
	buffer []Reading
	closed bool

	flushTicker   *time.Ticker
	shutdownChan  chan struct{}
	flushDoneChan chan struct{}
}

// Open opens or creates the database at cfg.DBPath regardless of
// cfg.Enabled.
func Open(cfg Config, log logger.Logger) (*Store, error) {
	errFactory := errors.New()

	if log == nil {
		log = logger.Nop()
	}
	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err).WithData(cfg.DBPath)
	}

	dsn := cfg.DBPath + "?_journal=WAL&_auto_vacuum=2&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err).WithData("open_database")
	}

	if err := ValidateAndUpdateSchema(db, cfg.DBPath, log); err != nil {
		db.Close()
		return nil, errFactory.Wrap(ErrStorageInit, err).WithData("schema_version")
	}

	log.Info().
		Str("path", cfg.DBPath).
		Int("schema_version", SchemaVersion).
		Int("batch_size", cfg.BatchSize).
		Dur("batch_timeout", cfg.BatchTimeout).
		Msg("Journal initialized")

	s := &Store{
		db:            db,
		logger:        log,
		cfg:           cfg,
		buffer:        make([]Reading, 0, cfg.BatchSize),
		shutdownChan:  make(chan struct{}),
		flushDoneChan: make(chan struct{}),
	}

	if cfg.BatchTimeout > 0 {
		s.flushTicker = time.NewTicker(cfg.BatchTimeout)
		go s.flusher()
	} else {
		close(s.flushDoneChan)
	}

	return s, nil
}

func (s *Store) RecordReading(r Reading) error {
	if r.GaugeID == "" {
		return errors.New().WithMessage(ErrInvalidRecord, "reading without gauge id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New().New(ErrClosed)
	}

	s.buffer = append(s.buffer, r)
	if len(s.buffer) >= s.cfg.BatchSize {
		return s.flush()
	}
	return nil
}

func (s *Store) RecordCrossing(c Crossing) error {
	errFactory := errors.New()

	if c.GaugeID == "" || (c.Kind != gauge.AlertWarning && c.Kind != gauge.AlertCritical) {
		return errFactory.WithData(ErrInvalidRecord, c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errFactory.New(ErrClosed)
	}

	if _, err := s.db.Exec(insertCrossingSQL, c.Timestamp.UnixMilli(), c.GaugeID, c.Kind.String(), c.Value); err != nil {
		return errFactory.Wrap(ErrTransactionFailed, err)
	}
	return nil
}

// Flush writes any buffered readings now.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flush()
}

func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	// Signal the flusher goroutine to stop and wait for its final flush
	close(s.shutdownChan)
	<-s.flushDoneChan

	s.mu.Lock()
	flushErr := s.flush()
	s.mu.Unlock()

	if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to checkpoint WAL")
	}

	if err := s.db.Close(); err != nil {
		return errors.New().Wrap(ErrStorageClose, err)
	}

	s.logger.Info().Msg("Journal closed gracefully")

	return flushErr
}

func (s *Store) flusher() {
	defer close(s.flushDoneChan)
	defer s.flushTicker.Stop()

	for {
		select {
		case <-s.flushTicker.C:
			s.mu.Lock()
			if err := s.flush(); err != nil {
				s.logger.Warn().Err(err).Msg("Periodic journal flush failed")
			}
			s.mu.Unlock()
		case <-s.shutdownChan:
			return
		}
	}
}

// flush requires s.mu. The buffer is kept on failure so a later flush can
// retry.
func (s *Store) flush() error {
	if len(s.buffer) == 0 {
		return nil
	}

	errFactory := errors.New()

	tx, err := s.db.Begin()
	if err != nil {
		return errFactory.Wrap(ErrTransactionFailed, err)
	}

	stmt, err := tx.Prepare(insertReadingSQL)
	if err != nil {
		if err := tx.Rollback(); err != nil {
			s.logger.Error().Err(err).Msg("Failed to roll back transaction")
		}
		return errFactory.Wrap(ErrTransactionFailed, err)
	}
	defer stmt.Close()

	for _, r := range s.buffer {
		if _, err := stmt.Exec(r.Timestamp.UnixMilli(), r.GaugeID, r.Value, string(r.Zone), r.Alert.String()); err != nil {
			if err := tx.Rollback(); err != nil {
				s.logger.Error().Err(err).Msg("Failed to roll back transaction")
			}
			return errFactory.Wrap(ErrTransactionFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrTransactionFailed, err)
	}

	s.logger.Debug().Int("records", len(s.buffer)).Msg("Flushed readings to journal")
	s.buffer = s.buffer[:0]

	return nil
}

// Readings returns the stored readings of one gauge, oldest first.
func (s *Store) Readings(gaugeID string) ([]Reading, error) {
	rows, err := s.db.Query(`
        SELECT timestamp, gauge_id, value, zone, alert
        FROM readings
        WHERE gauge_id = ?
        ORDER BY timestamp, id
    `, gaugeID)
	if err != nil {
		return nil, errors.New().Wrap(ErrQueryFailed, err)
	}
	defer rows.Close()

	var out []Reading
	for rows.Next() {
		var (
			ts          int64
			r           Reading
			zone, alert string
		)
		if err := rows.Scan(&ts, &r.GaugeID, &r.Value, &zone, &alert); err != nil {
			return nil, errors.New().Wrap(ErrQueryFailed, err)
		}
		r.Timestamp = time.UnixMilli(ts)
		r.Zone = gauge.Role(zone)
		r.Alert = parseAlert(alert)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New().Wrap(ErrQueryFailed, err)
	}
	return out, nil
}

// Crossings returns the stored crossings of one gauge, oldest first.
func (s *Store) Crossings(gaugeID string) ([]Crossing, error) {
	rows, err := s.db.Query(`
        SELECT timestamp, gauge_id, kind, value
        FROM crossings
        WHERE gauge_id = ?
        ORDER BY timestamp, id
    `, gaugeID)
	if err != nil {
		return nil, errors.New().Wrap(ErrQueryFailed, err)
	}
	defer rows.Close()

	var out []Crossing
	for rows.Next() {
		var (
			ts   int64
			c    Crossing
			kind string
		)
		if err := rows.Scan(&ts, &c.GaugeID, &kind, &c.Value); err != nil {
			return nil, errors.New().Wrap(ErrQueryFailed, err)
		}
		c.Timestamp = time.UnixMilli(ts)
		c.Kind = parseAlert(kind)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New().Wrap(ErrQueryFailed, err)
	}
	return out, nil
}

func parseAlert(s string) gauge.Alert {
	switch s {
	case "critical":
		return gauge.AlertCritical
	case "warning":
		return gauge.AlertWarning
	default:
		return gauge.AlertNone
	}
}
