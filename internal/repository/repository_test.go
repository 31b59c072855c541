package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/ticket-tracker/internal/config"
	"github.com/yukikurage/ticket-tracker/internal/database"
	"github.com/yukikurage/ticket-tracker/internal/models"
	"github.com/yukikurage/ticket-tracker/internal/utils"
)

type RepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	db      *gorm.DB
	users   UserRepository
	tickets TicketRepository
}

func (s *RepositoryTestSuite) SetupTest() {
	db, err := database.Connect(&config.Config{DBDriver: "sqlite", DBPath: ":memory:"}, zap.NewNop())
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(db))

	s.ctx = context.Background()
	s.db = db
	s.users = NewUserRepository(db)
	s.tickets = NewTicketRepository(db)
}

func (s *RepositoryTestSuite) TearDownTest() {
	s.Require().NoError(database.Close(s.db))
}

func (s *RepositoryTestSuite) createUser(email string, claimAdmin bool) *models.User {
	user := &models.User{Email: email, PasswordHash: "hashed"}
	s.Require().NoError(s.users.Create(s.ctx, user, claimAdmin))
	return user
}

func (s *RepositoryTestSuite) createTicket(owner *models.User, title string, createdAt time.Time) *models.Ticket {
	ticket := &models.Ticket{
		UserID:      owner.ID,
		Title:       title,
		Description: "description of " + title,
		Status:      models.TicketStatusOpen,
		CreatedAt:   createdAt,
	}
	s.Require().NoError(s.tickets.Create(s.ctx, ticket))
	return ticket
}

func (s *RepositoryTestSuite) TestUserCreate_AssignsID() {
	user := s.createUser("a@x.com", false)

	s.NotZero(user.ID)
	found, err := s.users.FindByEmail(s.ctx, "a@x.com")
	s.Require().NoError(err)
	s.Equal(user.ID, found.ID)
	s.Equal("hashed", found.PasswordHash)
	s.False(found.IsAdmin)
}

func (s *RepositoryTestSuite) TestUserCreate_DuplicateEmail() {
	s.createUser("dup@x.com", true)

	err := s.users.Create(s.ctx, &models.User{Email: "dup@x.com", PasswordHash: "other"}, false)
	s.ErrorIs(err, ErrDuplicateEmail)

	count, err := s.users.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func (s *RepositoryTestSuite) TestUserCreate_AdminClaimIsExclusive() {
	// Both callers observed an empty users table and ask for the claim.
	first := s.createUser("first@x.com", true)
	second := s.createUser("second@x.com", true)

	s.True(first.IsAdmin)
	s.False(second.IsAdmin)

	stored, err := s.users.FindByID(s.ctx, second.ID)
	s.Require().NoError(err)
	s.False(stored.IsAdmin)

	var admins int64
	s.Require().NoError(s.db.Model(&models.User{}).Where("is_admin = ?", true).Count(&admins).Error)
	s.Equal(int64(1), admins)
}

func (s *RepositoryTestSuite) TestUserCreate_DuplicateDoesNotConsumeClaim() {
	s.createUser("taken@x.com", false)

	err := s.users.Create(s.ctx, &models.User{Email: "taken@x.com", PasswordHash: "x"}, true)
	s.Require().ErrorIs(err, ErrDuplicateEmail)

	admin := s.createUser("admin@x.com", true)
	s.True(admin.IsAdmin)
}

func (s *RepositoryTestSuite) TestUserFindByEmail_NotFound() {
	_, err := s.users.FindByEmail(s.ctx, "nobody@x.com")
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *RepositoryTestSuite) TestTicketListWithOwner_NewestFirst() {
	owner := s.createUser("owner@x.com", false)
	base := time.Now().Add(-time.Hour)

	// Inserted out of chronological order on purpose.
	s.createTicket(owner, "middle", base.Add(2*time.Minute))
	s.createTicket(owner, "oldest", base)
	s.createTicket(owner, "newest", base.Add(5*time.Minute))

	tickets, err := s.tickets.ListWithOwner(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(tickets, 3)

	s.Equal("newest", tickets[0].Title)
	s.Equal("middle", tickets[1].Title)
	s.Equal("oldest", tickets[2].Title)
	for i := 1; i < len(tickets); i++ {
		s.False(tickets[i].CreatedAt.After(tickets[i-1].CreatedAt))
	}
	s.Equal("owner@x.com", tickets[0].Owner.Email)
}

func (s *RepositoryTestSuite) TestTicketListPage() {
	owner := s.createUser("owner@x.com", false)
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		s.createTicket(owner, string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute))
	}

	tickets, total, err := s.tickets.ListPage(s.ctx, utils.PaginationParams{Page: 2, Limit: 2, Offset: 2})
	s.Require().NoError(err)
	s.Equal(int64(5), total)
	s.Require().Len(tickets, 2)
	s.Equal("c", tickets[0].Title)
	s.Equal("b", tickets[1].Title)
	s.Equal("owner@x.com", tickets[0].Owner.Email)
}

func (s *RepositoryTestSuite) TestTicketUpdateFields_OverwritesAll() {
	owner := s.createUser("owner@x.com", false)
	ticket := s.createTicket(owner, "before", time.Now())
	s.Require().NoError(s.db.Model(ticket).Updates(map[string]any{"category": "Hardware", "budget": "100"}).Error)

	updated, err := s.tickets.UpdateFields(s.ctx, ticket.ID, TicketFields{
		Title:       "after",
		Description: "new description",
		Status:      models.TicketStatusClosed,
	})
	s.Require().NoError(err)
	s.Equal("after", updated.Title)

	stored, err := s.tickets.FindByID(s.ctx, ticket.ID)
	s.Require().NoError(err)
	s.Equal("after", stored.Title)
	s.Equal("new description", stored.Description)
	s.Equal(models.TicketCategory(""), stored.Category)
	s.Equal("", stored.Budget)
	s.Equal(models.TicketStatusClosed, stored.Status)
	s.Equal(owner.ID, stored.UserID)
	s.WithinDuration(ticket.CreatedAt, stored.CreatedAt, time.Second)
}

func (s *RepositoryTestSuite) TestTicketUpdateFields_NotFound() {
	_, err := s.tickets.UpdateFields(s.ctx, 999, TicketFields{Title: "x", Description: "y", Status: models.TicketStatusOpen})
	s.True(errors.Is(err, gorm.ErrRecordNotFound))
}

func (s *RepositoryTestSuite) TestTicketDelete() {
	owner := s.createUser("owner@x.com", false)
	ticket := s.createTicket(owner, "doomed", time.Now())

	s.Require().NoError(s.tickets.Delete(s.ctx, ticket.ID))
	_, err := s.tickets.FindByID(s.ctx, ticket.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)

	// Deleting again is a no-op.
	s.NoError(s.tickets.Delete(s.ctx, ticket.ID))
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
