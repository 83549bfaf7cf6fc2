package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/hackathon-api/internal/config"
	"github.com/aanand-mishra/hackathon-api/internal/storage"
	"github.com/aanand-mishra/hackathon-api/internal/types"
)

var _ storage.Storage = (*SQLite)(nil)

// setupTestDB opens a fresh database file under t.TempDir and closes it
// when the test completes.
func setupTestDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := New(&config.Config{StoragePath: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err, "Failed to create test database")
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNew_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	cfg := &config.Config{StoragePath: path}

	first, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := New(cfg)
	require.NoError(t, err, "reopening an existing database should not fail")
	require.NoError(t, second.Close())
}

func TestCreateRegistration(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Date(2024, 12, 31, 9, 0, 0, 0, time.UTC)

	id, err := db.CreateRegistration(ctx, types.Registration{
		FullName:     "Ada Lovelace",
		Email:        "ada@example.com",
		ProjectIdea:  "Engine",
		TechStack:    "Go",
		TeamSize:     types.TeamSmall,
		Experience:   types.ExperienceAdvanced,
		RegisteredAt: now,
	})
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	var (
		email, team, at string
	)
	err = db.Db.QueryRow(`SELECT email, team_size, registered_at FROM registrations WHERE id = ?`, id).
		Scan(&email, &team, &at)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", email)
	assert.Equal(t, "2-4", team)
	assert.Equal(t, "2024-12-31T09:00:00.000000000Z", at)
}

func TestSubmissions_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC)

	insert := func(name string, at time.Time) int64 {
		id, err := db.CreateSubmission(ctx, types.Submission{
			ProjectName: name,
			Description: "desc",
			BuilderName: "builder",
			ProjectURL:  "example.com",
			SubmittedAt: at,
		})
		require.NoError(t, err)
		return id
	}

	insert("old", base)
	insert("newest", base.Add(2*time.Hour))
	// A non-UTC timestamp still sorts by instant.
	insert("middle", base.Add(time.Hour).In(time.FixedZone("UTC+5", 5*3600)))

	got, err := db.ListSubmissions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "newest", got[0].ProjectName)
	assert.Equal(t, "middle", got[1].ProjectName)
	assert.Equal(t, "old", got[2].ProjectName)
	assert.True(t, got[1].SubmittedAt.Equal(base.Add(time.Hour)))
}

func TestSubmissions_OptionalFieldsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.CreateSubmission(ctx, types.Submission{
		ProjectName:   "With extras",
		Description:   "d",
		BuilderName:   "b",
		TwitterHandle: "alice",
		ProjectURL:    "https://example.com",
		ImageURL:      "https://example.com/shot.png",
		SubmittedAt:   time.Now(),
	})
	require.NoError(t, err)

	_, err = db.CreateSubmission(ctx, types.Submission{
		ProjectName: "Bare",
		Description: "d",
		BuilderName: "b",
		ProjectURL:  "https://example.com",
		SubmittedAt: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	var nulls int
	require.NoError(t, db.Db.QueryRow(
		`SELECT COUNT(*) FROM submissions WHERE twitter_handle IS NULL AND image_url IS NULL`,
	).Scan(&nulls))
	assert.Equal(t, 1, nulls)

	got, err := db.ListSubmissions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "alice", got[0].TwitterHandle)
	assert.Equal(t, "https://example.com/shot.png", got[0].ImageURL)
	assert.Empty(t, got[1].TwitterHandle)
	assert.Empty(t, got[1].ImageURL)
}

func TestListSubmissions_EmptyIsNotNil(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.ListSubmissions(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
