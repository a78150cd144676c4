package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaultSeed(t *testing.T) {
	catalog := NewCatalog()
	registry := NewRegistry()

	creds, err := ApplySeed(DefaultSeed(), catalog, registry)
	require.NoError(t, err)

	books := catalog.Books()
	require.Len(t, books, 4)
	assert.Equal(t, "The Great Gatsby", books[0].Title)
	assert.Equal(t, 3, books[0].AvailableCopies)

	members := registry.Members()
	require.Len(t, members, 4)
	assert.Equal(t, RoleAdmin, members[0].Role)
	assert.Equal(t, 5, members[2].MaxBooksAllowed, "student quota")

	require.Len(t, creds, 4)
	assert.Equal(t, "admin", creds[0].Username)
	assert.Equal(t, members[0].ID, creds[0].MemberID)

	// The seeded catalog must satisfy the classic search check.
	results := catalog.Search("orwell", SearchByAuthor)
	require.Len(t, results, 1)
	assert.Equal(t, "1984", results[0].Title)
}

func TestSeedFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")

	require.NoError(t, WriteSeedFile(path, DefaultSeed()))

	loaded, err := LoadSeedFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSeed(), loaded)

	catalog := NewCatalog()
	registry := NewRegistry()
	_, err = ApplySeed(loaded, catalog, registry)
	require.NoError(t, err)
	assert.Len(t, catalog.Books(), 4)
}

func TestLoadSeedFileMissing(t *testing.T) {
	_, err := LoadSeedFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadSeedFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"books": [`), 0o644))

	_, err := LoadSeedFile(path)
	assert.Error(t, err)
}

func TestApplySeedDefaultsQuotaByRole(t *testing.T) {
	seed := SeedFile{
		Members: []SeedMember{
			{Username: "s", Password: "p", Name: "Student", Role: RoleStudent},
			{Username: "f", Password: "p", Name: "Faculty", Role: RoleFaculty},
		},
	}
	registry := NewRegistry()
	_, err := ApplySeed(seed, NewCatalog(), registry)
	require.NoError(t, err)

	members := registry.Members()
	require.Len(t, members, 2)
	assert.Equal(t, 5, members[0].MaxBooksAllowed)
	assert.Equal(t, 10, members[1].MaxBooksAllowed)
}

func TestApplySeedRejectsBadRecords(t *testing.T) {
	bad := SeedFile{Books: []SeedBook{{Title: "X", Copies: -1}}}
	_, err := ApplySeed(bad, NewCatalog(), NewRegistry())
	assert.ErrorIs(t, err, ErrInvalidInput)

	badMember := SeedFile{Members: []SeedMember{{Username: "x", Role: Role("ghost")}}}
	_, err = ApplySeed(badMember, NewCatalog(), NewRegistry())
	assert.ErrorIs(t, err, ErrInvalidInput)
}
