package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "orderboard/internal/adapters/out/postgres"
	"orderboard/internal/adapters/out/postgres/cartrepo"
	"orderboard/internal/adapters/out/postgres/menurepo"
	"orderboard/internal/adapters/out/postgres/orderrepo"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&menurepo.MenuItemDTO{},
		&cartrepo.CartLineDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
// Truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_lines, cart_lines CASCADE").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	refCode, err := kernel.GenerateRefCode()
	suite.Require().NoError(err)
	number, err := kernel.NewDisplayNumber(1)
	suite.Require().NoError(err)
	line, err := order.NewLine(101, 1)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(refCode, number, 42, "Ada Lovelace",
		[]order.Line{line}, time.Now().UTC())
	suite.Require().NoError(err)
	return aggregate
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow1.CartRepository(), "First instance should provide cart repository")
	suite.NotNil(uow2.OrderRepository(), "Second instance should provide order repository")
	suite.NotNil(uow2.CartRepository(), "Second instance should provide cart repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_CommitWithoutBegin verifies commit and rollback fail cleanly
// when no transaction is active.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitWithoutBegin() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx))
	suite.Require().Error(uow.Rollback(ctx))
}

// TestUnitOfWork_CheckoutSpansOrderAndCart verifies the order insert and the
// cart clear commit as one unit.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CheckoutSpansOrderAndCart() {
	ctx := context.Background()

	err := suite.db.Create(&cartrepo.CartLineDTO{CustomerID: 42, MenuItemID: 101, Quantity: 1}).Error
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	aggregate := suite.newOrder()
	err = uow.OrderRepository().Add(ctx, aggregate)
	suite.Require().NoError(err)

	err = uow.CartRepository().Clear(ctx, 42)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	restored, err := suite.factory.Create().OrderRepository().GetByID(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(aggregate.IsEqual(restored))

	snapshot, err := suite.factory.Create().CartRepository().GetSnapshot(ctx, 42)
	suite.Require().NoError(err)
	suite.True(snapshot.IsEmpty())
}

// TestUnitOfWork_RollbackDiscardsBothWrites verifies rollback leaves neither
// a half-created order nor an emptied cart.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsBothWrites() {
	ctx := context.Background()

	err := suite.db.Create(&cartrepo.CartLineDTO{CustomerID: 42, MenuItemID: 101, Quantity: 1}).Error
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	aggregate := suite.newOrder()
	err = uow.OrderRepository().Add(ctx, aggregate)
	suite.Require().NoError(err)

	err = uow.CartRepository().Clear(ctx, 42)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	_, err = suite.factory.Create().OrderRepository().GetByID(ctx, aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	snapshot, err := suite.factory.Create().CartRepository().GetSnapshot(ctx, 42)
	suite.Require().NoError(err)
	suite.False(snapshot.IsEmpty())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
