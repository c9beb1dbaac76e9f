package database

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/readlogapp/readlog/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestConfig uses a temp file database rather than :memory: so that every
// connection sees the same database, which is what lock contention needs.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		DatabaseFilePath:          filepath.Join(t.TempDir(), "readlog.sqlite"),
		DatabaseConnectRetryCount: 1,
		DatabaseConnectRetryDelay: time.Millisecond,
		// Shrink the safety nets so lock errors would surface quickly if the
		// single-connection funnel were broken.
		DatabaseMaxRetries:  0,
		DatabaseBusyTimeout: time.Millisecond,
	}
	return cfg
}

// Concurrent session-style inserts must not produce "database is locked"
// errors; all writes go through the one connection the handle owns.
func TestConcurrentWrites(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	db, err := New(cfg)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS write_probe (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		value TEXT NOT NULL,
		workerId INTEGER NOT NULL
	)`)
	require.NoError(t, err)

	const numWorkers = 20
	const writesPerWorker = 50

	var wg sync.WaitGroup
	var failed atomic.Int32
	var succeeded atomic.Int32

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := 0; i < writesPerWorker; i++ {
				_, err := db.Exec(
					"INSERT INTO write_probe (value, workerId) VALUES (?, ?)",
					fmt.Sprintf("worker-%d-write-%d", workerID, i),
					workerID,
				)
				if err != nil {
					failed.Add(1)
				} else {
					succeeded.Add(1)
				}
			}
		}(w)
	}

	wg.Wait()

	assert.Equal(t, int32(0), failed.Load())
	assert.Equal(t, int32(numWorkers*writesPerWorker), succeeded.Load())

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM write_probe").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, numWorkers*writesPerWorker, count)
}

// Readers and writers interleaving is the realistic workload: list screens
// polling totals while session saves commit.
func TestConcurrentMixedOperations(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	db, err := New(cfg)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS mixed_probe (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		value INTEGER NOT NULL
	)`)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		_, err = db.Exec("INSERT INTO mixed_probe (value) VALUES (?)", i)
		require.NoError(t, err)
	}

	const numWorkers = 8
	const opsPerWorker = 100

	var wg sync.WaitGroup
	var writeErrors, readErrors atomic.Int32
	var writes, reads atomic.Int32

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		if w%2 == 0 {
			go func(workerID int) {
				defer wg.Done()
				for i := 0; i < opsPerWorker; i++ {
					_, err := db.Exec("INSERT INTO mixed_probe (value) VALUES (?)", workerID*1000+i)
					if err != nil {
						writeErrors.Add(1)
					} else {
						writes.Add(1)
					}
				}
			}(w)
		} else {
			go func(int) {
				defer wg.Done()
				for i := 0; i < opsPerWorker; i++ {
					var sum int
					err := db.QueryRow("SELECT SUM(value) FROM mixed_probe").Scan(&sum)
					if err != nil {
						readErrors.Add(1)
					} else {
						reads.Add(1)
					}
				}
			}(w)
		}
	}

	wg.Wait()

	assert.Equal(t, int32(0), writeErrors.Load())
	assert.Equal(t, int32(0), readErrors.Load())
	assert.Equal(t, int32((numWorkers/2)*opsPerWorker), writes.Load())
	assert.Equal(t, int32((numWorkers/2)*opsPerWorker), reads.Load())
}
