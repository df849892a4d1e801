package employeestore_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	employeestore "github.com/dalemusser/employeehub/internal/app/store/employees"
	"github.com/dalemusser/employeehub/internal/app/store/blob"
	"github.com/dalemusser/employeehub/internal/domain/models"
	"github.com/dalemusser/employeehub/internal/testutil"
)

func newStore(t *testing.T, seed []models.Employee) (*employeestore.Store, *blob.Memory) {
	t.Helper()
	mem := blob.NewMemory()
	s, err := employeestore.New(context.Background(), mem, employeestore.Options{Seed: seed})
	require.NoError(t, err)
	return s, mem
}

func TestNew_SeedsEmptyStorage(t *testing.T) {
	s, mem := newStore(t, nil)
	assert.Equal(t, len(employeestore.SeedData()), s.Count())

	raw, err := mem.Load(context.Background(), employeestore.StorageKey)
	require.NoError(t, err)
	var stored []models.Employee
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Len(t, stored, s.Count())
}

func TestNew_KeepsExistingData(t *testing.T) {
	mem := blob.NewMemory()
	require.NoError(t, mem.Save(context.Background(), employeestore.StorageKey, []byte(`[{"id":7,"firstName":"Only"}]`)))

	s, err := employeestore.New(context.Background(), mem, employeestore.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Count())
}

func TestNew_CorruptData(t *testing.T) {
	mem := blob.NewMemory()
	require.NoError(t, mem.Save(context.Background(), employeestore.StorageKey, []byte(`{not json`)))
	_, err := employeestore.New(context.Background(), mem, employeestore.Options{})
	assert.Error(t, err)
}

func TestGetEmployees_Pagination(t *testing.T) {
	s, _ := newStore(t, nil)
	ctx := context.Background()
	total := s.Count()

	page, err := s.GetEmployees(ctx, employeestore.Query{})
	require.NoError(t, err)
	assert.Len(t, page.Data, employeestore.DefaultPageSize)
	assert.Equal(t, employeestore.Metadata{
		TotalItems:  total,
		TotalPages:  (total + 11) / 12,
		CurrentPage: 1,
		PageSize:    12,
	}, page.Metadata)

	last := page.Metadata.TotalPages
	page, err = s.GetEmployees(ctx, employeestore.Query{Page: last})
	require.NoError(t, err)
	assert.Len(t, page.Data, total-(last-1)*12)

	page, err = s.GetEmployees(ctx, employeestore.Query{Page: last + 1})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.NotNil(t, page.Data)
}

func TestGetEmployees_FiltersAndSearch(t *testing.T) {
	s, _ := newStore(t, testutil.SampleEmployees())
	ctx := context.Background()

	tests := []struct {
		name string
		q    employeestore.Query
		want []int64
	}{
		{"department", employeestore.Query{Department: "1"}, []int64{1, 4}},
		{"position", employeestore.Query{Position: "2"}, []int64{1, 5}},
		{"both", employeestore.Query{Department: "2", Position: "2"}, []int64{5}},
		{"search first name", employeestore.Query{SearchTerm: "john"}, []int64{1, 5}},
		{"search full name", employeestore.Query{SearchTerm: "John Smith"}, []int64{5}},
		{"search tokens any order", employeestore.Query{SearchTerm: "smith jane"}, []int64{2}},
		{"search email", employeestore.Query{SearchTerm: "jane@"}, []int64{2}},
		{"search diacritics", employeestore.Query{SearchTerm: "ayse"}, []int64{4}},
		{"search and filter", employeestore.Query{SearchTerm: "smith", Department: "2"}, []int64{2, 5}},
		{"nothing", employeestore.Query{SearchTerm: "zzz"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := s.GetEmployees(ctx, tt.q)
			require.NoError(t, err)
			var ids []int64
			for _, e := range page.Data {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, len(tt.want), page.Metadata.TotalItems)
		})
	}
}

func TestAddEmployee_UniqueIDs(t *testing.T) {
	s, _ := newStore(t, testutil.SampleEmployees())
	ctx := context.Background()

	seen := map[int64]bool{}
	for i := 0; i < 5; i++ {
		e, err := s.AddEmployee(ctx, models.Employee{FirstName: "New"})
		require.NoError(t, err)
		assert.False(t, seen[e.ID], "duplicate id %d", e.ID)
		seen[e.ID] = true
		assert.Greater(t, e.ID, int64(1_000_000_000_000))
	}
	assert.Equal(t, 10, s.Count())
}

func TestUpdateEmployee(t *testing.T) {
	s, mem := newStore(t, testutil.SampleEmployees())
	ctx := context.Background()

	got, err := s.UpdateEmployee(ctx, 2, models.Employee{ID: 99, LastName: "Doe", Position: "1"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ID, "id is immutable")
	assert.Equal(t, "Jane", got.FirstName, "empty patch fields are kept")
	assert.Equal(t, "Doe", got.LastName)
	assert.Equal(t, "1", got.Position)

	stored, err := s.GetEmployee(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, got, stored)

	raw, _ := mem.Load(ctx, employeestore.StorageKey)
	assert.Contains(t, string(raw), `"lastName":"Doe"`)

	_, err = s.UpdateEmployee(ctx, 404, models.Employee{FirstName: "X"})
	assert.ErrorIs(t, err, employeestore.ErrNotFound)
}

func TestDeleteEmployee(t *testing.T) {
	s, _ := newStore(t, testutil.SampleEmployees())
	ctx := context.Background()

	res, err := s.DeleteEmployee(ctx, 1)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 4, s.Count())

	_, err = s.DeleteEmployee(ctx, 1)
	assert.True(t, errors.Is(err, employeestore.ErrNotFound))
	assert.Equal(t, 4, s.Count())

	_, err = s.GetEmployee(ctx, 1)
	assert.ErrorIs(t, err, employeestore.ErrNotFound)
}

func TestDeleteEmployees(t *testing.T) {
	s, _ := newStore(t, testutil.SampleEmployees())
	ctx := context.Background()

	n, err := s.DeleteEmployees(ctx, []int64{1, 3, 404})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 3, s.Count())

	_, err = s.DeleteEmployees(ctx, []int64{404})
	assert.ErrorIs(t, err, employeestore.ErrNotFound)

	n, err = s.DeleteEmployees(ctx, nil)
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestLatencyHonoursContext(t *testing.T) {
	mem := blob.NewMemory()
	s, err := employeestore.New(context.Background(), mem, employeestore.Options{Latency: time.Hour, Seed: testutil.SampleEmployees()})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = s.GetEmployees(ctx, employeestore.Query{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = s.DeleteEmployee(ctx, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 5, s.Count(), "a cancelled call changes nothing")
}

func TestForceRefreshAndWatch(t *testing.T) {
	s, mem := newStore(t, testutil.SampleEmployees())
	ctx := context.Background()

	// another writer replaces storage behind our back
	require.NoError(t, mem.Save(ctx, employeestore.StorageKey, []byte(`[{"id":1,"firstName":"Solo"}]`)))
	page, err := s.GetEmployees(ctx, employeestore.Query{})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Metadata.TotalItems, "cached until refreshed")

	page, err = s.GetEmployees(ctx, employeestore.Query{ForceRefresh: true})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Metadata.TotalItems)

	watching, err := s.Watch(ctx)
	require.NoError(t, err)
	require.True(t, watching)

	mem.Replace(employeestore.StorageKey, []byte(`[{"id":1},{"id":2},{"id":3}]`))
	assert.Equal(t, 3, s.Count())
}

func TestConcurrentAccess(t *testing.T) {
	s, _ := newStore(t, testutil.SampleEmployees())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.AddEmployee(ctx, models.Employee{FirstName: "C"})
		}()
		go func() {
			defer wg.Done()
			_, _ = s.GetEmployees(ctx, employeestore.Query{SearchTerm: "c"})
		}()
	}
	wg.Wait()
	assert.Equal(t, 25, s.Count())
}

func TestStore_WithMongoBackend(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s, err := employeestore.New(ctx, blob.NewMongo(db), employeestore.Options{Seed: testutil.SampleEmployees()})
	require.NoError(t, err)
	_, err = s.DeleteEmployee(ctx, 1)
	require.NoError(t, err)

	again, err := employeestore.New(ctx, blob.NewMongo(db), employeestore.Options{})
	require.NoError(t, err)
	assert.Equal(t, 4, again.Count())
}
