package eval

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"defectpred/config"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ResultStorage is a sink for experiment results plus existence checking.
// Writes are fire-and-forget: failures are logged, never returned.
type ResultStorage interface {
	AddResult(ctx context.Context, result ExperimentResult)
	// ContainsResult returns the number of stored rows for the natural-key
	// triple. It returns 0 both when nothing matches and when the check
	// itself fails.
	ContainsResult(ctx context.Context, experimentName, productName, classifierName string) int
	// ContainsHeterogeneousResult is a reserved extension point for
	// cross-product comparisons.
	ContainsHeterogeneousResult(ctx context.Context, experimentName, productName, classifierName, trainProductName string) int
}

// tablePattern restricts table names interpolated into SQL statements.
var tablePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLResultStorage stores experiment results in a relational database via
// database/sql. The mysql and sqlite3 drivers are supported.
type SQLResultStorage struct {
	db     *sql.DB
	driver string
	table  string
}

// NewSQLResultStorage wraps an already opened database handle.
func NewSQLResultStorage(db *sql.DB, driver, table string) (*SQLResultStorage, error) {
	if !tablePattern.MatchString(table) {
		return nil, errors.Errorf("invalid results table name %q", table)
	}
	return &SQLResultStorage{db: db, driver: driver, table: table}, nil
}

// Open connects to the configured database and, when requested, creates the
// results table if it does not exist yet.
func Open(ctx context.Context, cfg config.StorageConfig) (*SQLResultStorage, error) {
	var dsn string
	switch cfg.Driver {
	case "mysql":
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", cfg.User, cfg.Pass, cfg.Host, cfg.Port, cfg.Name)
	case "sqlite3":
		dsn = cfg.Name
	default:
		return nil, errors.Errorf("unsupported storage driver %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open result database")
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "result database is unreachable")
	}

	storage, err := NewSQLResultStorage(db, cfg.Driver, cfg.TableName)
	if err != nil {
		db.Close()
		return nil, err
	}
	if cfg.CreateTable {
		if err := storage.Bootstrap(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}
	return storage, nil
}

func (s *SQLResultStorage) Close() error {
	return s.db.Close()
}

// Bootstrap creates the results table if it does not exist. It is a
// one-time idempotent setup, not a migration system.
func (s *SQLResultStorage) Bootstrap(ctx context.Context) error {
	exists, err := s.tableExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, s.createTableSQL()); err != nil {
		return errors.Wrapf(err, "failed to create results table %s", s.table)
	}
	log.Info().Str("table", s.table).Msg("created results table")
	return nil
}

func (s *SQLResultStorage) tableExists(ctx context.Context) (bool, error) {
	var query string
	switch s.driver {
	case "sqlite3":
		query = "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?"
	default:
		query = "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema=DATABASE() AND table_name=?"
	}
	var count int
	if err := s.db.QueryRowContext(ctx, query, s.table).Scan(&count); err != nil {
		return false, errors.Wrap(err, "failed to check for results table")
	}
	return count > 0, nil
}

func (s *SQLResultStorage) createTableSQL() string {
	idColumn := "`idresults` int(11) NOT NULL AUTO_INCREMENT"
	primaryKey := "PRIMARY KEY (`idresults`)"
	suffix := " ENGINE=InnoDB DEFAULT CHARSET=utf8"
	if s.driver == "sqlite3" {
		idColumn = "`idresults` INTEGER PRIMARY KEY AUTOINCREMENT"
		primaryKey = ""
		suffix = ""
	}

	columns := []string{idColumn,
		"`configurationName` varchar(45) NOT NULL",
		"`productName` varchar(45) NOT NULL",
		"`classifier` varchar(45) NOT NULL",
		"`testsize` int(11) DEFAULT NULL",
		"`trainsize` int(11) DEFAULT NULL",
	}
	for _, name := range metricColumns[5:] {
		columns = append(columns, fmt.Sprintf("`%s` double DEFAULT NULL", name))
	}
	if primaryKey != "" {
		columns = append(columns, primaryKey)
	}
	return fmt.Sprintf("CREATE TABLE `%s` (%s)%s", s.table, strings.Join(columns, ","), suffix)
}

func (s *SQLResultStorage) AddResult(ctx context.Context, result ExperimentResult) {
	quoted := make([]string, len(metricColumns))
	for i, name := range metricColumns {
		quoted[i] = "`" + name + "`"
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.table,
		strings.Join(quoted, ","),
		strings.TrimSuffix(strings.Repeat("?,", len(metricColumns)), ","))

	args := []any{
		result.ConfigurationName,
		result.ProductName,
		result.Classifier,
		result.SizeTestData,
		result.SizeTrainData,
	}
	for _, v := range result.metrics() {
		args = append(args, v)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error().Err(err).
			Str("product", result.ProductName).
			Str("classifier", result.Classifier).
			Msg("result insert failed")
		return
	}
	if rows, err := res.RowsAffected(); err == nil && rows < 1 {
		log.Error().
			Str("product", result.ProductName).
			Str("classifier", result.Classifier).
			Msg("result insert affected no rows")
	}
}

func (s *SQLResultStorage) ContainsResult(ctx context.Context, experimentName, productName, classifierName string) int {
	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE configurationName=? AND productName=? AND classifier=?",
		s.table)
	var count int
	err := s.db.QueryRowContext(ctx, query, experimentName, productName, classifierName).Scan(&count)
	if err != nil {
		log.Error().Err(err).Str("experiment", experimentName).Msg("result lookup failed")
		return 0
	}
	return count
}

// ContainsHeterogeneousResult always reports no match. Cross-product result
// storage is not implemented.
func (s *SQLResultStorage) ContainsHeterogeneousResult(ctx context.Context, experimentName, productName, classifierName, trainProductName string) int {
	return 0
}
