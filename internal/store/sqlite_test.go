package store

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/vocdata/internal/frame"
)

func testFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f := frame.New("voyages", []string{"voyage_id", "das_voyage_num"})
	require.NoError(t, f.Append([]string{"1", "0012.3"}))
	require.NoError(t, f.Append([]string{"2", ""}))
	return f
}

func TestSQLite_Write(t *testing.T) {
	loadID := uuid.MustParse("6f1c2d9e-3b4a-4c5d-8e7f-0a1b2c3d4e5f")

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantRows  int64
		errMsg    string
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS "voyages" ("load_id" TEXT NOT NULL, "voyage_id" TEXT, "das_voyage_num" TEXT)`)).
					WillReturnResult(sqlmock.NewResult(0, 0))
				insert := regexp.QuoteMeta(`INSERT INTO "voyages" ("load_id", "voyage_id", "das_voyage_num") VALUES (?, ?, ?)`)
				mock.ExpectExec(insert).WithArgs(loadID.String(), "1", "0012.3").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(insert).WithArgs(loadID.String(), "2", nil).WillReturnResult(sqlmock.NewResult(2, 1))
				mock.ExpectCommit()
			},
			wantRows: 2,
		},
		{
			name: "create table fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("CREATE TABLE").WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			errMsg: "create table voyages",
		},
		{
			name: "insert fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("INSERT INTO").WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			errMsg: "insert row 0 into voyages",
		},
		{
			name: "begin fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(assert.AnError)
			},
			errMsg: "begin transaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			n, err := NewSQLite(db).Write(context.Background(), "voyages", testFrame(t), loadID)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantRows, n)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLite_WriteRejectsReservedColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	f := frame.New("x", []string{LoadIDColumn})
	_, err = NewSQLite(db).Write(context.Background(), "x", f, uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "out", "voc.db"))
	require.NoError(t, err)
	defer s.Close()

	first, second := uuid.New(), uuid.New()
	n, err := s.Write(ctx, "voyages", testFrame(t), first)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	_, err = s.Write(ctx, "voyages", testFrame(t), second)
	require.NoError(t, err)

	var total, nulls int
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM voyages`).Scan(&total))
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM voyages WHERE das_voyage_num IS NULL`).Scan(&nulls))
	assert.Equal(t, 4, total)
	assert.Equal(t, 2, nulls)

	var num string
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT das_voyage_num FROM voyages WHERE load_id = ? AND voyage_id = '1'`, second.String()).Scan(&num))
	assert.Equal(t, "0012.3", num)
}
