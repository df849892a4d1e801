package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	employeestore "github.com/dalemusser/employeehub/internal/app/store/employees"
	"github.com/dalemusser/employeehub/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAssignIDs(t *testing.T) {
	items := []models.Employee{{ID: 0}, {ID: 5}, {ID: 0}, {ID: 2}}
	require.NoError(t, assignIDs(items))
	assert.Equal(t, []int64{6, 5, 7, 2}, []int64{items[0].ID, items[1].ID, items[2].ID, items[3].ID})

	assert.Error(t, assignIDs([]models.Employee{{ID: 3}, {ID: 3}}))
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"4", "9"})
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 9}, ids)

	_, err = parseIDs([]string{"4", "x"})
	assert.Error(t, err)
	_, err = parseIDs([]string{"-1"})
	assert.Error(t, err)
}

func TestReadEmployees(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "ok.json")
	require.NoError(t, os.WriteFile(good, []byte(`[
		{"firstName":"Ada","lastName":"Lovelace","dateOfBirth":"1990-12-10","dateOfEmployment":"2024-01-02",
		 "phone":"+90 555 555 55 99","email":"ada@example.com","department":"2","position":"3"}
	]`), 0o644))
	items, err := readEmployees(good, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ID)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"firstName":"A"}]`), 0o644))
	_, err = readEmployees(bad, "")
	assert.Error(t, err)

	_, err = readEmployees(filepath.Join(dir, "x.txt"), "")
	assert.Error(t, err)
}

func TestCommands_SQLite(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "employees.db")
	csvPath := filepath.Join(dir, "employees.csv")
	base := []string{"--backend", "sqlite", "--sqlite", db}
	seed := len(employeestore.SeedData())

	out, err := execute(t, append(base, "reset")...)
	require.NoError(t, err)
	assert.Contains(t, out, "restored")

	_, err = execute(t, append(base, "delete", "1", "2")...)
	require.NoError(t, err)

	_, err = execute(t, append(base, "export", "--format", "csv", "-o", csvPath)...)
	require.NoError(t, err)

	out, err = execute(t, append(base, "import", "--dry-run", csvPath)...)
	require.NoError(t, err)
	assert.Contains(t, out, "are valid")

	out, err = execute(t, append(base, "list", "--size", "5")...)
	require.NoError(t, err)
	assert.Contains(t, out, "page 1 of")
	assert.Contains(t, out, "employees")
	assert.NotContains(t, out, "john@example.com")

	items, err := readEmployees(csvPath, "")
	require.NoError(t, err)
	assert.Len(t, items, seed-2)
}

func TestCommands_RejectMemoryBackend(t *testing.T) {
	_, err := execute(t, "--backend", "memory", "list")
	assert.Error(t, err)
}
