package postgres_test

import (
	"errors"
	"regexp"
	"testing"

	postgres_adapter "cafeteria/internal/adapters/out/postgres"
	"cafeteria/internal/pkg/errs"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const incrementCounter = `UPDATE order_counters SET value = value + 1 WHERE name = $1 RETURNING value`

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, sqlMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, sqlMock
}

func TestCounterSequencer_Next(t *testing.T) {
	db, sqlMock := newMockDB(t)
	sqlMock.ExpectQuery(regexp.QuoteMeta(incrementCounter)).
		WithArgs("orders").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(int64(1)))

	token, err := postgres_adapter.NewCounterSequencer(db, "CAF-").Next(t.Context())

	require.NoError(t, err)
	assert.Equal(t, "CAF-1001", token.String())
	require.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestCounterSequencer_Next_CustomPrefix(t *testing.T) {
	db, sqlMock := newMockDB(t)
	sqlMock.ExpectQuery(regexp.QuoteMeta(incrementCounter)).
		WithArgs("orders").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(int64(42)))

	token, err := postgres_adapter.NewCounterSequencer(db, "T-").Next(t.Context())

	require.NoError(t, err)
	assert.Equal(t, "T-1042", token.String())
}

func TestCounterSequencer_Next_Unavailable(t *testing.T) {
	tests := []struct {
		name   string
		expect func(sqlmock.Sqlmock)
	}{
		{
			name: "query fails",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(incrementCounter)).WillReturnError(errors.New("connection reset"))
			},
		},
		{
			name: "counter row missing",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(incrementCounter)).WillReturnRows(sqlmock.NewRows([]string{"value"}))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, sqlMock := newMockDB(t)
			tt.expect(sqlMock)

			token, err := postgres_adapter.NewCounterSequencer(db, "CAF-").Next(t.Context())

			require.ErrorIs(t, err, errs.ErrUnavailable)
			assert.Empty(t, token.String())
		})
	}
}

const (
	selectMaxToken = `SELECT COALESCE(MAX(CASE WHEN SUBSTRING(token FROM $1) ~ '^[0-9]{1,18}$' ` +
		`THEN CAST(SUBSTRING(token FROM $2) AS BIGINT) END), 0) FROM orders WHERE LEFT(token, $3) = $4`
	raiseCounter = `UPDATE order_counters SET value = GREATEST(value, $1) WHERE name = $2`
)

func TestCounterSequencer_Resync(t *testing.T) {
	tests := []struct {
		name     string
		maxToken int64
		wantLast int64
	}{
		{name: "counter behind stored tokens", maxToken: 1050, wantLast: 50},
		{name: "no orders", maxToken: 0, wantLast: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, sqlMock := newMockDB(t)
			sqlMock.ExpectQuery(regexp.QuoteMeta(selectMaxToken)).
				WithArgs(5, 5, 4, "CAF-").
				WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(tt.maxToken))
			sqlMock.ExpectExec(regexp.QuoteMeta(raiseCounter)).
				WithArgs(tt.wantLast, "orders").
				WillReturnResult(sqlmock.NewResult(0, 1))

			last, err := postgres_adapter.NewCounterSequencer(db, "CAF-").Resync(t.Context())

			require.NoError(t, err)
			assert.Equal(t, tt.wantLast, last)
			require.NoError(t, sqlMock.ExpectationsWereMet())
		})
	}
}

func TestCounterSequencer_Resync_Unavailable(t *testing.T) {
	db, sqlMock := newMockDB(t)
	sqlMock.ExpectQuery(regexp.QuoteMeta(selectMaxToken)).WillReturnError(errors.New("driver: bad connection"))

	_, err := postgres_adapter.NewCounterSequencer(db, "CAF-").Resync(t.Context())

	require.ErrorIs(t, err, errs.ErrUnavailable)
	require.NoError(t, sqlMock.ExpectationsWereMet())
}
