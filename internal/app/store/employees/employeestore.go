// internal/app/store/employees/employeestore.go
package employeestore

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dalemusser/employeehub/internal/app/store/blob"
	"github.com/dalemusser/employeehub/internal/app/system/paging"
	"github.com/dalemusser/employeehub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrNotFound is returned when no employee has the requested id.
var ErrNotFound = errors.New("employee not found")

const (
	// StorageKey is the key the whole collection is stored under.
	StorageKey = "employees"
	// DefaultPageSize is used when a query does not set one.
	DefaultPageSize = 12
	// DefaultLatency is the simulated round-trip delay of every call.
	DefaultLatency = 300 * time.Millisecond
)

//go:embed seed.json
var seedJSON []byte

// SeedData returns the sample collection written to empty storage.
func SeedData() []models.Employee {
	var out []models.Employee
	if err := json.Unmarshal(seedJSON, &out); err != nil {
		panic(fmt.Sprintf("employeestore: bad seed data: %v", err))
	}
	return out
}

// Query selects one page of employees.
type Query struct {
	Page         int
	PageSize     int
	Department   string
	Position     string
	SearchTerm   string
	ForceRefresh bool
}

// Metadata describes the page returned by GetEmployees.
type Metadata struct {
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
}

// Page is one page of employees with its metadata.
type Page struct {
	Data     []models.Employee `json:"data"`
	Metadata Metadata          `json:"metadata"`
}

// Result reports the outcome of a delete.
type Result struct {
	Success bool `json:"success"`
}

// Options configure a Store.
type Options struct {
	// Key overrides StorageKey.
	Key string
	// Latency is waited at the start of every call; zero disables it.
	Latency time.Duration
	// Seed replaces the built-in sample data for empty storage.
	Seed   []models.Employee
	Logger *zap.Logger
}

// Store is the employee collection, cached in memory and written through to
// a blob backend on every change. It is safe for concurrent use.
type Store struct {
	backend blob.Backend
	key     string
	latency time.Duration
	log     *zap.Logger
	now     func() time.Time

	mu    sync.RWMutex
	items []models.Employee

	reload singleflight.Group
}

// New loads the collection from backend, seeding it when storage is empty.
func New(ctx context.Context, backend blob.Backend, opts Options) (*Store, error) {
	s := &Store{
		backend: backend,
		key:     opts.Key,
		latency: opts.Latency,
		log:     opts.Logger,
		now:     time.Now,
	}
	if s.key == "" {
		s.key = StorageKey
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		seed := opts.Seed
		if seed == nil {
			seed = SeedData()
		}
		items = slices.Clone(seed)
		if err := s.persist(ctx, items); err != nil {
			return nil, fmt.Errorf("seed employees: %w", err)
		}
		s.log.Info("seeded employee storage", zap.Int("count", len(items)), zap.String("key", s.key))
	}
	s.items = items
	return s, nil
}

func (s *Store) load(ctx context.Context) ([]models.Employee, error) {
	raw, err := s.backend.Load(ctx, s.key)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	var items []models.Employee
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode employees: %w", err)
		}
	}
	return items, nil
}

func (s *Store) persist(ctx context.Context, items []models.Employee) error {
	if items == nil {
		items = []models.Employee{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode employees: %w", err)
	}
	return s.backend.Save(ctx, s.key, raw)
}

// wait simulates network latency.
func (s *Store) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Refresh replaces the cached collection with what the backend holds.
// Concurrent calls share one load.
func (s *Store) Refresh(ctx context.Context) error {
	_, err, _ := s.reload.Do("reload", func() (any, error) {
		items, err := s.load(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.items = items
		s.mu.Unlock()
		return nil, nil
	})
	return err
}

// Watch subscribes to outside changes when the backend supports it.
// It reports false when the backend cannot be watched.
func (s *Store) Watch(ctx context.Context) (bool, error) {
	w, ok := s.backend.(blob.Watcher)
	if !ok {
		return false, nil
	}
	err := w.Watch(ctx, s.key, func() {
		if err := s.Refresh(ctx); err != nil {
			s.log.Warn("reload after external change failed", zap.Error(err))
			return
		}
		s.log.Info("employee storage changed externally; reloaded")
	})
	if err != nil {
		return false, fmt.Errorf("watch employees: %w", err)
	}
	return true, nil
}

// GetEmployees returns one page of employees matching q.
func (s *Store) GetEmployees(ctx context.Context, q Query) (Page, error) {
	if err := s.wait(ctx); err != nil {
		return Page{}, err
	}
	if q.ForceRefresh {
		if err := s.Refresh(ctx); err != nil {
			return Page{}, err
		}
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}

	s.mu.RLock()
	matched := make([]models.Employee, 0, len(s.items))
	for _, e := range s.items {
		if q.Department != "" && e.Department != q.Department {
			continue
		}
		if q.Position != "" && e.Position != q.Position {
			continue
		}
		if !Matches(e, q.SearchTerm) {
			continue
		}
		matched = append(matched, e)
	}
	s.mu.RUnlock()

	total := len(matched)
	start := min((q.Page-1)*q.PageSize, total)
	end := min(start+q.PageSize, total)

	return Page{
		Data: matched[start:end:end],
		Metadata: Metadata{
			TotalItems:  total,
			TotalPages:  paging.TotalPages(total, q.PageSize),
			CurrentPage: q.Page,
			PageSize:    q.PageSize,
		},
	}, nil
}

// GetEmployee returns the employee with id.
func (s *Store) GetEmployee(ctx context.Context, id int64) (models.Employee, error) {
	if err := s.wait(ctx); err != nil {
		return models.Employee{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.items[i], nil
	}
	return models.Employee{}, ErrNotFound
}

// AddEmployee stores e under a new id (the current time in milliseconds,
// bumped past any id already in use) and returns it.
func (s *Store) AddEmployee(ctx context.Context, e models.Employee) (models.Employee, error) {
	if err := s.wait(ctx); err != nil {
		return models.Employee{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	for s.index(id) >= 0 {
		id++
	}
	e.ID = id

	next := append(slices.Clone(s.items), e)
	if err := s.persist(ctx, next); err != nil {
		return models.Employee{}, err
	}
	s.items = next
	return e, nil
}

// UpdateEmployee merges the non-empty fields of patch into the employee
// with id. The id itself never changes.
func (s *Store) UpdateEmployee(ctx context.Context, id int64, patch models.Employee) (models.Employee, error) {
	if err := s.wait(ctx); err != nil {
		return models.Employee{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return models.Employee{}, ErrNotFound
	}
	updated := merge(s.items[i], patch)
	updated.ID = id

	next := slices.Clone(s.items)
	next[i] = updated
	if err := s.persist(ctx, next); err != nil {
		return models.Employee{}, err
	}
	s.items = next
	return updated, nil
}

// DeleteEmployee removes the employee with id.
func (s *Store) DeleteEmployee(ctx context.Context, id int64) (Result, error) {
	if err := s.wait(ctx); err != nil {
		return Result{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return Result{}, ErrNotFound
	}
	next := slices.Delete(slices.Clone(s.items), i, i+1)
	if err := s.persist(ctx, next); err != nil {
		return Result{}, err
	}
	s.items = next
	return Result{Success: true}, nil
}

// DeleteEmployees removes every listed employee that exists and returns how
// many were removed. ErrNotFound is returned only when none of ids exist.
func (s *Store) DeleteEmployees(ctx context.Context, ids []int64) (int, error) {
	if err := s.wait(ctx); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(s.items), func(e models.Employee) bool {
		return slices.Contains(ids, e.ID)
	})
	removed := len(s.items) - len(next)
	if removed == 0 {
		return 0, ErrNotFound
	}
	if err := s.persist(ctx, next); err != nil {
		return 0, err
	}
	s.items = next
	return removed, nil
}

// All returns a copy of the whole collection.
func (s *Store) All(ctx context.Context) ([]models.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items), nil
}

// Replace overwrites the whole collection.
func (s *Store) Replace(ctx context.Context, items []models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := slices.Clone(items)
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.items = next
	return nil
}

// Count returns the number of stored employees.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// index returns the position of id, or -1. Callers hold mu.
func (s *Store) index(id int64) int {
	return slices.IndexFunc(s.items, func(e models.Employee) bool { return e.ID == id })
}

func merge(base, patch models.Employee) models.Employee {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&base.FirstName, patch.FirstName)
	set(&base.LastName, patch.LastName)
	set(&base.DateOfBirth, patch.DateOfBirth)
	set(&base.DateOfEmployment, patch.DateOfEmployment)
	set(&base.Phone, patch.Phone)
	set(&base.Email, patch.Email)
	set(&base.Department, patch.Department)
	set(&base.Position, patch.Position)
	return base
}
