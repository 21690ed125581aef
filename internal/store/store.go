// Package store is the structured record store: generic get/query/insert/
// update/delete over the declared tables, with list/mapping values carried as
// JSON text and booleans as 0/1 underneath.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"avenstudio/internal/pkg/apperr"
)

type Store struct {
	db  *gorm.DB
	now func() time.Time
}

type Option func(*Store)

// WithClock overrides the time source used for updated_at stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) DB() *gorm.DB { return s.db }

func table(name string) (*Table, error) {
	t, ok := Lookup(name)
	if !ok {
		return nil, apperr.Validation("unknown table %q", name)
	}
	return t, nil
}

// Get returns the record with the given key, or nil when there is none.
func (s *Store) Get(ctx context.Context, tableName, id string) (Record, error) {
	t, err := table(tableName)
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	tx := s.db.WithContext(ctx).
		Table(t.Name).
		Where(map[string]any{t.Key: id}).
		Limit(1).
		Find(&rows)
	if tx.Error != nil {
		return nil, classify(tx.Error)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return decode(t, rows[0]), nil
}

// Query returns every record whose columns equal the non-nil filter values.
// No ordering is guaranteed.
func (s *Store) Query(ctx context.Context, tableName string, filters Record) ([]Record, error) {
	t, err := table(tableName)
	if err != nil {
		return nil, err
	}
	where, err := s.where(t, filters)
	if err != nil {
		return nil, err
	}
	q := s.db.WithContext(ctx).Table(t.Name)
	if len(where) > 0 {
		q = q.Where(where)
	}
	var rows []map[string]any
	if err := q.Find(&rows).Error; err != nil {
		return nil, classify(err)
	}
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, decode(t, row))
	}
	return out, nil
}

// Insert persists rec and returns its key, generating a UUID when the caller
// did not supply one.
func (s *Store) Insert(ctx context.Context, tableName string, rec Record) (string, error) {
	t, err := table(tableName)
	if err != nil {
		return "", err
	}
	rec = rec.Clone()
	id, _ := rec[t.Key].(string)
	if id == "" {
		id = uuid.NewString()
		rec[t.Key] = id
	}
	values, err := encode(t, rec)
	if err != nil {
		return "", err
	}
	if err := s.db.WithContext(ctx).Table(t.Name).Create(values).Error; err != nil {
		return "", classify(err)
	}
	return id, nil
}

// Update merges rec into the row with the given key and stamps updated_at when
// the table carries one. It reports whether a row matched.
func (s *Store) Update(ctx context.Context, tableName, id string, rec Record) (bool, error) {
	t, err := table(tableName)
	if err != nil {
		return false, err
	}
	n, err := s.update(ctx, t, map[string]any{t.Key: id}, rec)
	return n > 0, err
}

// UpdateWhere applies rec to every row matching filters and returns the
// number of rows changed.
func (s *Store) UpdateWhere(ctx context.Context, tableName string, filters, rec Record) (int64, error) {
	t, err := table(tableName)
	if err != nil {
		return 0, err
	}
	where, err := s.where(t, filters)
	if err != nil {
		return 0, err
	}
	if len(where) == 0 {
		return 0, apperr.Validation("bulk update of %s requires a filter", t.Name)
	}
	return s.update(ctx, t, where, rec)
}

func (s *Store) update(ctx context.Context, t *Table, where map[string]any, rec Record) (int64, error) {
	rec = rec.Clone()
	if t.Has("updated_at") {
		rec["updated_at"] = s.now()
	}
	values, err := encode(t, rec)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, nil
	}
	tx := s.db.WithContext(ctx).Table(t.Name).Where(where).Updates(values)
	if tx.Error != nil {
		return 0, classify(tx.Error)
	}
	return tx.RowsAffected, nil
}

// Delete removes the row with the given key. Dependent rows are handled by the
// engine's foreign key rules.
func (s *Store) Delete(ctx context.Context, tableName, id string) (bool, error) {
	t, err := table(tableName)
	if err != nil {
		return false, err
	}
	tx := s.db.WithContext(ctx).
		Exec("DELETE FROM "+quote(t.Name)+" WHERE "+quote(t.Key)+" = ?", id)
	if tx.Error != nil {
		return false, classify(tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

func (s *Store) where(t *Table, filters Record) (map[string]any, error) {
	where := make(map[string]any, len(filters))
	for name, v := range filters {
		if v == nil {
			continue
		}
		col, ok := t.Column(name)
		if !ok {
			return nil, apperr.Validation("unknown filter %q for %s", name, t.Name)
		}
		ev, err := encodeValue(col, v)
		if err != nil {
			return nil, err
		}
		where[name] = ev
	}
	return where, nil
}

// classify maps engine constraint failures onto apperr.ErrConstraint and
// leaves every other error untouched.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return apperr.Constraint(err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return apperr.Constraint(err)
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "constraint failed") || strings.Contains(msg, "constraint violation") {
		return apperr.Constraint(err)
	}
	return err
}
