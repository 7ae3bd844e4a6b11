package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционные тесты: PostgreSQL в контейнере плюс все *.up.sql из migrations/.
//
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/postgres -count=1

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")
}

// applyMigrations выполняет up-миграции в лексикографическом порядке имён.
func applyMigrations(ctx context.Context, t *testing.T, st *Storage) {
	t.Helper()

	files, err := filepath.Glob(filepath.Join(migrationsDir(), "*.up.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files, "no migrations found in %s", migrationsDir())
	sort.Strings(files)

	for _, f := range files {
		sql, err := os.ReadFile(f)
		require.NoError(t, err)

		_, err = st.pool.Exec(ctx, string(sql))
		require.NoError(t, err, "apply %s", filepath.Base(f))
	}
}

// startPostgres возвращает хранилище с применёнными миграциями.
// Без GO_TEST_INTEGRATION тест пропускается.
func startPostgres(t *testing.T) (*Storage, func()) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("set GO_TEST_INTEGRATION=1 to run postgres integration tests")
	}

	ctx := context.Background()
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image: "postgres:16-alpine",
			Env: map[string]string{
				"POSTGRES_USER":     "agri",
				"POSTGRES_PASSWORD": "agri",
				"POSTGRES_DB":       "agrilearn",
			},
			ExposedPorts: []string{"5432/tcp"},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://agri:agri@%s:%s/agrilearn?sslmode=disable", host, port.Port())

	var st *Storage
	require.Eventually(t, func() bool {
		st, err = New(ctx, dsn, WithMaxConns(4))
		return err == nil
	}, 30*time.Second, 250*time.Millisecond)

	applyMigrations(ctx, t, st)

	return st, func() {
		st.Close()
		_ = c.Terminate(context.Background())
	}
}

func TestIntegration_Ping(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	require.NoError(t, st.Ping(context.Background()))
}

func TestNew_BadDSN(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), "://not a dsn")
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse dsn")
}
