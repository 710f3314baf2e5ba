package eval

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"defectpred/config"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStorage(t *testing.T) *SQLResultStorage {
	t.Helper()
	ctx := context.Background()
	storage, err := Open(ctx, config.StorageConfig{
		Driver:      "sqlite3",
		Name:        filepath.Join(t.TempDir(), "results.db"),
		TableName:   "results",
		CreateTable: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })
	return storage
}

func sampleResult() ExperimentResult {
	return ExperimentResult{
		ConfigurationName: "exp",
		ProductName:       "proj",
		Classifier:        "logistic",
		SizeTestData:      100,
		SizeTrainData:     80,
		Recall:            0.75,
		Precision:         0.5,
		Auc:               0.8,
		Tp:                30, Fn: 10, Tn: 50, Fp: 10,
	}
}

func TestStorageBootstrapIsIdempotent(t *testing.T) {
	storage := openTestStorage(t)
	require.NoError(t, storage.Bootstrap(context.Background()))
	require.NoError(t, storage.Bootstrap(context.Background()))
}

func TestStorageAddAndContains(t *testing.T) {
	storage := openTestStorage(t)
	ctx := context.Background()

	assert.Equal(t, 0, storage.ContainsResult(ctx, "exp", "proj", "logistic"))

	storage.AddResult(ctx, sampleResult())
	assert.GreaterOrEqual(t, storage.ContainsResult(ctx, "exp", "proj", "logistic"), 1)

	// a different triple stays unmatched
	assert.Equal(t, 0, storage.ContainsResult(ctx, "exp", "proj", "bias"))
	assert.Equal(t, 0, storage.ContainsResult(ctx, "other", "proj", "logistic"))
}

func TestStorageRoundTripValues(t *testing.T) {
	storage := openTestStorage(t)
	ctx := context.Background()
	storage.AddResult(ctx, sampleResult())

	var recall, auc float64
	var testsize int
	err := storage.db.QueryRowContext(ctx,
		"SELECT `recall`, `auc`, `testsize` FROM results WHERE classifier='logistic'").
		Scan(&recall, &auc, &testsize)
	require.NoError(t, err)
	assert.Equal(t, 0.75, recall)
	assert.Equal(t, 0.8, auc)
	assert.Equal(t, 100, testsize)
}

func TestStorageAddResultFailureIsSwallowed(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	storage, err := NewSQLResultStorage(db, "sqlite3", "results")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// must not panic or surface an error to the caller
	storage.AddResult(context.Background(), sampleResult())
	assert.Equal(t, 0, storage.ContainsResult(context.Background(), "exp", "proj", "logistic"))
}

func TestStorageRejectsBadTableName(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = NewSQLResultStorage(db, "sqlite3", "results; DROP TABLE results")
	assert.Error(t, err)
}

func TestContainsHeterogeneousResultIsReserved(t *testing.T) {
	storage := openTestStorage(t)
	ctx := context.Background()
	storage.AddResult(ctx, sampleResult())

	assert.Equal(t, 0, storage.ContainsHeterogeneousResult(ctx, "exp", "proj", "logistic", "other"))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StorageConfig{Driver: "oracle"})
	assert.Error(t, err)
}
