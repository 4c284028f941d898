package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"orderboard/internal/adapters/out/postgres/menurepo"
	"orderboard/internal/adapters/out/postgres/orderrepo"
	"orderboard/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type QueryHandlersTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB

	kitchenHandler   queries.GetKitchenQueueQueryHandler
	analyticsHandler queries.GetAnalyticsQueryHandler
	historyHandler   queries.GetUserOrdersQueryHandler

	refCodeSeq int
}

func (suite *QueryHandlersTestSuite) SetupSuite() {
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

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderLineDTO{}, &menurepo.MenuItemDTO{})
	suite.Require().NoError(err)

	suite.kitchenHandler = queries.NewGetKitchenQueueQueryHandler(db)
	suite.analyticsHandler = queries.NewGetAnalyticsQueryHandler(db)
	suite.historyHandler = queries.NewGetUserOrdersQueryHandler(db)

	// Menu rows the order lines join against.
	err = db.Create([]menurepo.MenuItemDTO{
		{ID: 101, Name: "Margherita", Value: 8.50, Tickets: 2},
		{ID: 205, Name: "Cola", Value: 2.00, Tickets: 1},
	}).Error
	suite.Require().NoError(err)
}

func (suite *QueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *QueryHandlersTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_lines CASCADE").Error
	suite.Require().NoError(err)
}

// seedOrder inserts an order row with its lines, bypassing the aggregate so
// tests control every timestamp directly.
func (suite *QueryHandlersTestSuite) seedOrder(dto orderrepo.OrderDTO) orderrepo.OrderDTO {
	suite.refCodeSeq++
	dto.RefCode = fmt.Sprintf("qh%014d", suite.refCodeSeq)
	if dto.LastStatusChangeAt.IsZero() {
		dto.LastStatusChangeAt = dto.CreatedAt
	}

	err := suite.db.Create(&dto).Error
	suite.Require().NoError(err)
	return dto
}

// pizzaAndCola builds order lines from the seeded menu. Quantities of zero
// are skipped since an order never carries an empty line.
func pizzaAndCola(quantityPizza, quantityCola int) []orderrepo.OrderLineDTO {
	lines := make([]orderrepo.OrderLineDTO, 0, 2)
	if quantityPizza > 0 {
		lines = append(lines, orderrepo.OrderLineDTO{MenuItemID: 101, Quantity: quantityPizza})
	}
	if quantityCola > 0 {
		lines = append(lines, orderrepo.OrderLineDTO{MenuItemID: 205, Quantity: quantityCola})
	}
	return lines
}

func (suite *QueryHandlersTestSuite) TestKitchenQueue_EmptyDatabase() {
	queue, err := suite.kitchenHandler.Handle(context.Background(), queries.NewGetKitchenQueueQuery())
	suite.Require().NoError(err)

	suite.NotNil(queue.PendingOrders)
	suite.Empty(queue.PendingOrders)
	suite.Empty(queue.PreparingOrders)
	suite.Empty(queue.ReadyOrders)
}

func (suite *QueryHandlersTestSuite) TestKitchenQueue_GroupsByStageOldestFirst() {
	now := time.Now().UTC()
	preparingAt := now.Add(-5 * time.Minute)

	older := suite.seedOrder(orderrepo.OrderDTO{
		DisplayNumber: 1, CustomerID: 42, CustomerName: "Ada Lovelace",
		Status: "pending", CreatedAt: now.Add(-30 * time.Minute),
		Lines: pizzaAndCola(2, 1),
	})
	newer := suite.seedOrder(orderrepo.OrderDTO{
		DisplayNumber: 2, CustomerID: 43, CustomerName: "Grace Hopper",
		Status: "pending", CreatedAt: now.Add(-10 * time.Minute),
		Lines: pizzaAndCola(1, 2),
	})
	suite.seedOrder(orderrepo.OrderDTO{
		DisplayNumber: 3, CustomerID: 42, CustomerName: "Ada Lovelace",
		Status: "preparing", CreatedAt: now.Add(-20 * time.Minute),
		PreparingAt: &preparingAt,
		Lines:       pizzaAndCola(1, 0),
	})
	readyAt := now.Add(-3 * time.Minute)
	readyPrepStarted := now.Add(-12 * time.Minute)
	suite.seedOrder(orderrepo.OrderDTO{
		DisplayNumber: 5, CustomerID: 45, CustomerName: "Katherine Johnson",
		Status: "ready", CreatedAt: now.Add(-25 * time.Minute),
		PreparingAt: &readyPrepStarted, ReadyAt: &readyAt,
		Lines: pizzaAndCola(0, 1),
	})
	// Completed orders never show up in the kitchen queue.
	completedAt := now.Add(-1 * time.Hour)
	suite.seedOrder(orderrepo.OrderDTO{
		DisplayNumber: 4, CustomerID: 44, CustomerName: "Alan Turing",
		Status: "complete", CreatedAt: now.Add(-2 * time.Hour),
		PreparingAt: &completedAt, ReadyAt: &completedAt, CompletedAt: &completedAt,
		Lines: pizzaAndCola(1, 1),
	})

	queue, err := suite.kitchenHandler.Handle(context.Background(), queries.NewGetKitchenQueueQuery())
	suite.Require().NoError(err)

	suite.Require().Len(queue.PendingOrders, 2)
	suite.Require().Len(queue.PreparingOrders, 1)
	suite.Require().Len(queue.ReadyOrders, 1)

	suite.Equal(older.ID, queue.PendingOrders[0].ID)
	suite.Equal(newer.ID, queue.PendingOrders[1].ID)

	first := queue.PendingOrders[0]
	suite.Equal(1, first.DisplayNumber)
	suite.Equal("Ada Lovelace", first.CustomerName)
	suite.Equal(map[string]int{"Margherita": 2, "Cola": 1}, first.ItemsSummary)
	suite.InDelta(19.00, first.TotalValue, 0.001)
	suite.Equal(5, first.TotalTickets)
	suite.Equal(2, first.ItemCount)
	suite.GreaterOrEqual(first.WaitingMinutes, 29)

	preparing := queue.PreparingOrders[0]
	suite.Equal("preparing", preparing.Status)
	suite.Equal(map[string]int{"Margherita": 1}, preparing.ItemsSummary)
	suite.Equal(1, preparing.ItemCount)

	// The wait clock restarts on each stage: five minutes since the cooks
	// picked it up, not twenty since the order landed.
	suite.Equal(5, preparing.WaitingMinutes)

	ready := queue.ReadyOrders[0]
	suite.Equal("ready", ready.Status)
	suite.Equal(3, ready.WaitingMinutes)
}

func (suite *QueryHandlersTestSuite) TestAnalytics_EmptyDatabase() {
	analytics, err := suite.analyticsHandler.Handle(context.Background(), queries.NewGetAnalyticsQuery())
	suite.Require().NoError(err)

	suite.Zero(analytics.TotalOrders)
	suite.Zero(analytics.OrdersToday)
	suite.Empty(analytics.StatusCounts)
	suite.Zero(analytics.TotalRevenue)

	// No completed orders means no averages, not an error.
	suite.Zero(analytics.AvgMinutesToPreparing)
	suite.Zero(analytics.AvgMinutesToReady)
	suite.Zero(analytics.AvgMinutesToComplete)
	suite.Zero(analytics.AvgMinutesTotal)

	suite.Require().Len(analytics.HourlyActivity, 24)
	for _, bucket := range analytics.HourlyActivity {
		suite.Zero(bucket.Orders)
	}
}

func (suite *QueryHandlersTestSuite) TestAnalytics_WindowsRevenueAndStageAverages() {
	now := time.Now().UTC()

	// Completed two hours ago: 10 minutes to preparing, then 5, then 5.
	createdRecent := now.Add(-2 * time.Hour)
	preparingAt := createdRecent.Add(10 * time.Minute)
	readyAt := preparingAt.Add(5 * time.Minute)
	completedAt := readyAt.Add(5 * time.Minute)
	suite.seedOrder(orderrepo.OrderDTO{
		DisplayNumber: 1, CustomerID: 42, CustomerName: "Ada Lovelace",
		Status: "complete", CreatedAt: createdRecent,
		PreparingAt: &preparingAt, ReadyAt: &readyAt, CompletedAt: &completedAt,
		LastStatusChangeAt: completedAt,
		Lines:              pizzaAndCola(2, 1),
	})
	// Still pending after ten days: inside the month window only.
	suite.seedOrder(orderrepo.OrderDTO{
		DisplayNumber: 2, CustomerID: 43, CustomerName: "Grace Hopper",
		Status: "pending", CreatedAt: now.AddDate(0, 0, -10),
		Lines: pizzaAndCola(0, 2),
	})

	analytics, err := suite.analyticsHandler.Handle(context.Background(), queries.NewGetAnalyticsQuery())
	suite.Require().NoError(err)

	suite.Equal(2, analytics.TotalOrders)
	suite.Equal(1, analytics.OrdersToday)
	suite.Equal(1, analytics.OrdersThisWeek)
	suite.Equal(2, analytics.OrdersThisMonth)

	suite.Equal(map[string]int{"complete": 1, "pending": 1}, analytics.StatusCounts)

	// 2x8.50 + 1x2.00 from the completed order. The pending one has not
	// been paid out yet, so its lines stay out of every revenue window.
	suite.InDelta(19.00, analytics.TotalRevenue, 0.001)
	suite.InDelta(19.00, analytics.RevenueToday, 0.001)
	suite.InDelta(19.00, analytics.RevenueThisWeek, 0.001)

	suite.InDelta(10.0, analytics.AvgMinutesToPreparing, 0.01)
	suite.InDelta(5.0, analytics.AvgMinutesToReady, 0.01)
	suite.InDelta(5.0, analytics.AvgMinutesToComplete, 0.01)
	suite.InDelta(20.0, analytics.AvgMinutesTotal, 0.01)

	suite.Require().Len(analytics.HourlyActivity, 24)
	activityTotal := 0
	for hour, bucket := range analytics.HourlyActivity {
		suite.Equal(hour, bucket.Hour)
		activityTotal += bucket.Orders
	}

	// The histogram covers the current UTC day only. The two-hour-old order
	// counts unless midnight fell in between; the ten-day-old one never does.
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	expectedBars := 0
	if !createdRecent.Before(startOfDay) {
		expectedBars++
	}
	suite.Equal(expectedBars, activityTotal)
}

func (suite *QueryHandlersTestSuite) TestUserOrders_NewestFirstAndLimited() {
	now := time.Now().UTC()

	for i := 1; i <= 3; i++ {
		suite.seedOrder(orderrepo.OrderDTO{
			DisplayNumber: i, CustomerID: 42, CustomerName: "Ada Lovelace",
			Status: "pending", CreatedAt: now.Add(-time.Duration(i) * time.Hour),
			Lines: pizzaAndCola(i, 1),
		})
	}
	suite.seedOrder(orderrepo.OrderDTO{
		DisplayNumber: 9, CustomerID: 99, CustomerName: "Alan Turing",
		Status: "pending", CreatedAt: now,
		Lines: pizzaAndCola(1, 0),
	})

	query, err := queries.NewGetUserOrdersQuery(42, 2)
	suite.Require().NoError(err)

	orders, err := suite.historyHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(orders, 2)
	suite.Equal(1, orders[0].DisplayNumber)
	suite.Equal(2, orders[1].DisplayNumber)

	// 1x Margherita + 1x Cola on the newest order.
	suite.Equal(map[string]int{"Margherita": 1, "Cola": 1}, orders[0].ItemsSummary)
	suite.InDelta(10.50, orders[0].TotalValue, 0.001)
}

func (suite *QueryHandlersTestSuite) TestUserOrders_UnknownCustomer_ReturnsEmpty() {
	query, err := queries.NewGetUserOrdersQuery(123456, 0)
	suite.Require().NoError(err)

	orders, err := suite.historyHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(orders)
}

func TestQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersTestSuite))
}
