package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/ticket-tracker/internal/auth"
	apierrors "github.com/yukikurage/ticket-tracker/internal/errors"
	"github.com/yukikurage/ticket-tracker/internal/repository"
	"github.com/yukikurage/ticket-tracker/internal/utils"
)

var errConnRefused = errors.New("dial tcp 127.0.0.1:3306: connect: connection refused")

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return db, mock
}

func TestRegister_StorageUnavailable(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT count").WillReturnError(errConnRefused)

	svc := NewAuthService(repository.NewUserRepository(db), auth.NewPasswordHasher(bcrypt.MinCost))
	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@x.com", Password: "pw"})

	require.Error(t, err)
	assert.ErrorIs(t, err, apierrors.ErrStorageUnavailable)
	assert.ErrorIs(t, err, errConnRefused)
	assert.False(t, apierrors.Recoverable(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_StorageUnavailableIsNotInvalidCredentials(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnError(errConnRefused)

	svc := NewAuthService(repository.NewUserRepository(db), auth.NewPasswordHasher(bcrypt.MinCost))
	_, err := svc.Login(context.Background(), LoginInput{Email: "a@x.com", Password: "pw"})

	assert.ErrorIs(t, err, apierrors.ErrStorageUnavailable)
	assert.NotErrorIs(t, err, apierrors.ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketService_StorageUnavailable(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewTicketService(repository.NewTicketRepository(db))
	ctx := context.Background()

	mock.ExpectQuery("SELECT").WillReturnError(errConnRefused)
	_, err := svc.ListTickets(ctx)
	assert.ErrorIs(t, err, apierrors.ErrStorageUnavailable)

	mock.ExpectQuery("SELECT count").WillReturnError(errConnRefused)
	_, _, err = svc.ListTicketsPage(ctx, utils.PaginationParams{Page: 1, Limit: 10})
	assert.ErrorIs(t, err, apierrors.ErrStorageUnavailable)

	mock.ExpectQuery("SELECT").WillReturnError(errConnRefused)
	_, err = svc.GetTicket(ctx, 1)
	assert.ErrorIs(t, err, apierrors.ErrStorageUnavailable)

	mock.ExpectExec("DELETE FROM `tickets`").WillReturnError(errConnRefused)
	err = svc.DeleteTicket(ctx, 1)
	assert.ErrorIs(t, err, apierrors.ErrStorageUnavailable)

	assert.NoError(t, mock.ExpectationsWereMet())
}
