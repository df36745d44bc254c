package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetRouteQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetRouteQueryHandler
}

func (suite *GetRouteQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &driverrepo.DriverDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetRouteQueryHandler(db)
}

func (suite *GetRouteQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetRouteQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, drivers CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetRouteQueryHandlerTestSuite) TestHandle_UnknownAgent_NotAuthenticated() {
	query, err := queries.NewGetRouteQuery("77051234567")
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrNotAuthenticated)
}

func (suite *GetRouteQueryHandlerTestSuite) TestHandle_StaleSession_NotAuthenticated() {
	suite.saveDriver("77051234567", "red", time.Now().UTC().Add(-driver.SessionStaleAfter-time.Minute), true)
	suite.saveOrder("A-1001", "out_for_delivery", "77051234567", time.Now().UTC())

	query, err := queries.NewGetRouteQuery("77051234567")
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrNotAuthenticated)
}

func (suite *GetRouteQueryHandlerTestSuite) TestHandle_OfflineSession_NotAuthenticated() {
	suite.saveDriver("77051234567", "red", time.Now().UTC(), false)

	query, err := queries.NewGetRouteQuery("77051234567")
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrNotAuthenticated)
}

func (suite *GetRouteQueryHandlerTestSuite) TestHandle_LiveSession_ReturnsOwnActiveOrdersOnly() {
	now := time.Now().UTC()
	suite.saveDriver("77051234567", "red", now, true)
	suite.saveDriver("77020000000", "green", now, true)

	suite.saveOrder("A-1001", "out_for_delivery", "77051234567", now.Add(-2*time.Minute))
	suite.saveOrder("A-1002", "out_for_delivery", "77051234567", now.Add(-1*time.Minute))
	suite.saveOrder("A-1003", "out_for_delivery", "77020000000", now)
	suite.saveOrder("A-1004", "ready_for_delivery", "", now)

	query, err := queries.NewGetRouteQuery("77051234567")
	suite.Require().NoError(err)

	route, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(route, 2)
	suite.Equal("A-1001", route[0].Code)
	suite.Equal("A-1002", route[1].Code)
}

func (suite *GetRouteQueryHandlerTestSuite) saveDriver(phone, color string, lastLogin time.Time, online bool) {
	err := suite.db.Create(&driverrepo.DriverDTO{
		Phone:     phone,
		Name:      "Rustam",
		Color:     color,
		LastLogin: lastLogin,
		Online:    online,
	}).Error
	suite.Require().NoError(err)
}

func (suite *GetRouteQueryHandlerTestSuite) saveOrder(code, status, driverPhone string, updatedAt time.Time) {
	dto := orderrepo.OrderDTO{
		Code:          code,
		CustomerName:  "Aigerim",
		CustomerPhone: "77011234567",
		Mode:          "delivery",
		Items:         []byte(`[]`),
		Total:         4200,
		PaymentMethod: "cash",
		Status:        status,
		CreatedAt:     updatedAt,
		UpdatedAt:     updatedAt,
	}

	if driverPhone != "" {
		name, color := "Rustam", "red"
		dto.DriverName = &name
		dto.DriverPhone = &driverPhone
		dto.DriverColor = &color
	}

	err := suite.db.Create(&dto).Error
	suite.Require().NoError(err)
}

func TestGetRouteQueryHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	suite.Run(t, new(GetRouteQueryHandlerTestSuite))
}
