package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db/models"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/pagination"
)

func strPtr(s string) *string { return &s }

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(&models.Order{}, &models.OrderItem{}))

	t.Cleanup(func() {
		sqlDB, _ := conn.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})
	return conn
}

func seedOrder(t *testing.T, db *gorm.DB, userID int64, number string, createdAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNumber: number,
		UserID:      userID,
		Status:      enums.OrderStatusPending,
		Subtotal:    decimal.NewFromInt(100),
		TotalAmount: decimal.NewFromInt(118),
		Currency:    "USD",
		Items: []models.OrderItem{
			{ProductName: "Mesh Firewall X2", ProductSKU: strPtr("NET-FWX2"), Quantity: 1, UnitPrice: decimal.NewFromInt(100), TotalPrice: decimal.NewFromInt(100)},
		},
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestOrderRepositoryCreateAndFind(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Order{
		OrderNumber: "ORD-1-0001",
		UserID:      7,
		Status:      enums.OrderStatusPending,
		Subtotal:    decimal.NewFromInt(50),
		TotalAmount: decimal.NewFromInt(59),
		Currency:    "USD",
		Items: []models.OrderItem{
			{ProductName: "Endpoint Shield License", ProductSKU: strPtr("SW-EPS1"), Quantity: 2, UnitPrice: decimal.NewFromInt(25), TotalPrice: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ORD-1-0001", found.OrderNumber)
	require.Len(t, found.Items, 1)
	require.NotNil(t, found.Items[0].ProductSKU)
	assert.Equal(t, "SW-EPS1", *found.Items[0].ProductSKU)

	byNumber, err := repo.FindByNumber(ctx, "ORD-1-0001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byNumber.ID)
}

func TestOrderRepositoryListByUserPagesNewestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedOrder(t, db, 7, fmt.Sprintf("ORD-1-%04d", i), base.Add(time.Duration(i)*time.Hour))
	}
	seedOrder(t, db, 99, "ORD-2-0001", base)

	rows, total, err := repo.ListByUser(ctx, 7, pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 2)
	assert.Equal(t, "ORD-1-0002", rows[0].OrderNumber)
	assert.Equal(t, "ORD-1-0001", rows[1].OrderNumber)

	rest, _, err := repo.ListByUser(ctx, 7, pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "ORD-1-0000", rest[0].OrderNumber)
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, 7, "ORD-1-0001", time.Now())
	shippedAt := time.Now()
	require.NoError(t, repo.UpdateStatus(ctx, order.ID, enums.OrderStatusShipped.String(), &shippedAt, nil))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, found.Status)
	require.NotNil(t, found.ShippedDate)
	assert.Nil(t, found.DeliveredDate)

	_, err = repo.FindByID(ctx, order.ID+100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
