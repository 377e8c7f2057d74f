package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/savoraddis/cafe-backend/models"
	"github.com/savoraddis/cafe-backend/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func orderColumns() []string {
	return []string{"id", "customer_name", "phone", "cafe_name", "tx_ref", "amount", "currency", "payment_status", "order_status", "delivered"}
}

func TestCreate_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	order := &models.Order{
		ID:            uuid.New(),
		CustomerName:  "Abel",
		Phone:         "0911000000",
		CafeName:      "cambridge",
		TxRef:         "CAF-1-abc",
		Amount:        130,
		Currency:      "ETB",
		PaymentStatus: models.PaymentStatusPending,
		OrderStatus:   "Pending",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(order.ID))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), order)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByTxRef_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders"`)).
		WithArgs("CAF-404-xyz", 1).
		WillReturnRows(sqlmock.NewRows(orderColumns()))

	order, err := repo.FindByTxRef(context.Background(), "CAF-404-xyz")
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
	assert.Nil(t, order)
}

func TestFindByTxRef_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	id := uuid.New()
	rows := sqlmock.NewRows(orderColumns()).
		AddRow(id, "Abel", "0911000000", "cambridge", "CAF-1-abc", 130.0, "ETB", models.PaymentStatusPending, "Pending", false)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders"`)).
		WithArgs("CAF-1-abc", 1).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "order_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "name", "quantity", "unit_price"}))

	order, err := repo.FindByTxRef(context.Background(), "CAF-1-abc")
	assert.NoError(t, err)
	assert.Equal(t, "CAF-1-abc", order.TxRef)
	assert.Equal(t, 130.0, order.Amount)
}

func TestUpdatePaymentStatus_PendingToPaid(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rows := sqlmock.NewRows(orderColumns()).
		AddRow(id, "Abel", "0911000000", "cambridge", "CAF-1-abc", 130.0, "ETB", models.PaymentStatusPaid, "Pending", false)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders"`)).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "order_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "name", "quantity", "unit_price"}))

	order, err := repo.UpdatePaymentStatus(context.Background(), "CAF-1-abc", models.PaymentStatusPaid)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
}

func TestUpdatePaymentStatus_AlreadyFinal(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	id := uuid.New()

	// The guarded update matches nothing: the order already left pending.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	rows := sqlmock.NewRows(orderColumns()).
		AddRow(id, "Abel", "0911000000", "cambridge", "CAF-1-abc", 130.0, "ETB", models.PaymentStatusPaid, "Pending", false)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders"`)).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "order_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "name", "quantity", "unit_price"}))

	order, err := repo.UpdatePaymentStatus(context.Background(), "CAF-1-abc", models.PaymentStatusFailed)
	assert.ErrorIs(t, err, repository.ErrAlreadyFinal)
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.UpdateOrderStatus(context.Background(), uuid.New(), "Being Made")
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestMarkDelivered_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.MarkDelivered(context.Background(), uuid.New())
	assert.NoError(t, err)
}

func TestDelete_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	// Soft delete: gorm issues an UPDATE setting deleted_at.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}
