package queries_test

import (
	"context"
	"testing"
	"time"

	"lastbite/internal/adapters/out/postgres/notificationrepo"
	"lastbite/internal/core/application/usecases/queries"
	"lastbite/internal/core/domain/model/kernel"
	"lastbite/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetNotificationsQueryHandlerTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	handler   queries.GetNotificationsQueryHandler
}

func (suite *GetNotificationsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&notificationrepo.NotificationDTO{}))

	suite.handler = queries.NewGetNotificationsQueryHandler(db)
}

func (suite *GetNotificationsQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE notifications").Error)
}

func (suite *GetNotificationsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetNotificationsQueryHandlerTestSuite) seedNotification(
	customerID, storeID kernel.UUID,
	content string,
	createdAt time.Time,
) {
	suite.Require().NoError(suite.db.Create(&notificationrepo.NotificationDTO{
		ID:         kernel.NewUUID().Bytes(),
		OrderID:    kernel.NewUUID().Bytes(),
		CustomerID: customerID.Bytes(),
		StoreID:    storeID.Bytes(),
		Content:    content,
		CreatedAt:  createdAt,
	}).Error)
}

func (suite *GetNotificationsQueryHandlerTestSuite) TestHandle_CustomerSeesOwnNotificationsNewestFirst() {
	ctx := context.Background()
	now := time.Now().Truncate(time.Microsecond)

	customerID := kernel.NewUUID()
	storeID := kernel.NewUUID()

	suite.seedNotification(customerID, storeID, "first", now.Add(-2*time.Minute))
	suite.seedNotification(customerID, storeID, "second", now)
	suite.seedNotification(kernel.NewUUID(), storeID, "other customer", now)

	query, err := queries.NewGetNotificationsQuery(customerID, order.RoleCustomer)
	suite.Require().NoError(err)

	notifications, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(notifications, 2)
	suite.Equal("second", notifications[0].Content)
	suite.Equal("first", notifications[1].Content)
}

func (suite *GetNotificationsQueryHandlerTestSuite) TestHandle_StoreRoleFiltersByStoreColumn() {
	ctx := context.Background()
	now := time.Now().Truncate(time.Microsecond)

	partyID := kernel.NewUUID()

	// The same id as customer on one row and as store on another; the role
	// decides which column is matched.
	suite.seedNotification(partyID, kernel.NewUUID(), "as customer", now)
	suite.seedNotification(kernel.NewUUID(), partyID, "as store", now)

	query, err := queries.NewGetNotificationsQuery(partyID, order.RoleStore)
	suite.Require().NoError(err)

	notifications, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(notifications, 1)
	suite.Equal("as store", notifications[0].Content)
}

func (suite *GetNotificationsQueryHandlerTestSuite) TestHandle_UnknownRecipient_ReturnsEmptyList() {
	ctx := context.Background()

	query, err := queries.NewGetNotificationsQuery(kernel.NewUUID(), order.RoleCustomer)
	suite.Require().NoError(err)

	notifications, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Empty(notifications)
}

func (suite *GetNotificationsQueryHandlerTestSuite) TestHandle_UnconstructedQuery_Fails() {
	ctx := context.Background()

	_, err := suite.handler.Handle(ctx, queries.GetNotificationsQuery{})

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, queries.ErrGetNotificationsQueryIsNotConstructed)
}

func TestGetNotificationsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetNotificationsQueryHandlerTestSuite))
}
