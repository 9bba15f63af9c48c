package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"foodshare/internal/errors"
	"foodshare/internal/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gormDB, mock
}

func TestFindWithinRadius_ExcludesBookedListings(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewFoodRepository(gormDB)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM .foods. WHERE booked = \? AND \(\? \* ACOS\(LEAST\(1\.0,`).
		WithArgs(false, 3963, 40.75, -73.99, 40.75, 5.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "booked"}).
			AddRow(id.String(), "Nearby", false))

	foods, err := repo.FindWithinRadius(context.Background(), 40.75, -73.99, 5.0)
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "Nearby", foods[0].Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateNameMapsToDomainError(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewFoodRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO .foods.").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'Hotel Taj Kitchen' for key 'name'"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &model.Food{ID: uuid.New(), Name: "Hotel Taj Kitchen"})
	assert.ErrorIs(t, err, errors.ErrDuplicateName)

	require.NoError(t, mock.ExpectationsWereMet())
}
