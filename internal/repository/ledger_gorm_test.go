package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gyansetu/internal/models"
)

func setupGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gdb, mock
}

func TestGormCallRepository_Append(t *testing.T) {
	gdb, mock := setupGormMock(t)
	repo := NewGormCallRepository(gdb)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "call_records"`)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Append(context.Background(), &models.CallRecord{
		ID:         "c1",
		CallerID:   "s1",
		ReceiverID: "g1",
		Type:       models.CallVideo,
		Timestamp:  time.Now(),
		Duration:   42,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormCallRepository_ListForUser(t *testing.T) {
	gdb, mock := setupGormMock(t)
	repo := NewGormCallRepository(gdb)

	rows := sqlmock.NewRows([]string{"id", "caller_id", "receiver_id", "type", "duration"}).
		AddRow("c1", "s1", "g1", "voice", 12).
		AddRow("c2", "g1", "s2", "video", 300)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "call_records" WHERE caller_id = $1 OR receiver_id = $2`)).
		WithArgs("g1", "g1").
		WillReturnRows(rows)

	got, err := repo.ListForUser(context.Background(), "g1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(300), got[1].Duration)
	assert.Equal(t, models.CallVoice, got[0].Type)
}

func TestGormCallRepository_Count(t *testing.T) {
	gdb, mock := setupGormMock(t)
	repo := NewGormCallRepository(gdb)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "call_records"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestGormCommissionRepository(t *testing.T) {
	gdb, mock := setupGormMock(t)
	repo := NewGormCommissionRepository(gdb)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "commission_records"`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Append(context.Background(), &models.CommissionRecord{
		ID: "m1", PostID: "p1", TotalAmount: 51, CommissionAmount: 5.1, Timestamp: time.Now(),
	}))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "commission_records"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "total_amount", "commission_amount"}).AddRow("m1", 51.0, 5.1))
	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 5.1, got[0].CommissionAmount, 1e-9)
}
