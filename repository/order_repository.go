package repository

import (
	"context"
	"errors"

	"github.com/savoraddis/cafe-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	// ErrAlreadyFinal signals a payment status update against an order that
	// already reached paid or failed. Replayed callbacks hit this.
	ErrAlreadyFinal = errors.New("payment status already final")
)

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	PaymentStatus string
	Delivered     *bool
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByTxRef(ctx context.Context, txRef string) (*models.Order, error)
	FindAll(ctx context.Context, filter OrderFilter, page, limit int) ([]models.Order, int64, error)
	UpdatePaymentStatus(ctx context.Context, txRef, status string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error
	MarkDelivered(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindByTxRef(ctx context.Context, txRef string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tx_ref = ?", txRef).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll retrieves orders with pagination, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context, filter OrderFilter, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Order{})
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.Delivered != nil {
		query = query.Where("delivered = ?", *filter.Delivered)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("Items").
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// UpdatePaymentStatus flips a pending order to paid or failed. It is the only
// write path for payment_status; the guard on the current value makes replayed
// callbacks a no-op.
func (r *GormOrderRepository) UpdatePaymentStatus(ctx context.Context, txRef, status string) (*models.Order, error) {
	updates := map[string]interface{}{"payment_status": status}
	switch status {
	case models.PaymentStatusPaid:
		updates["paid_at"] = gorm.Expr("NOW()")
	case models.PaymentStatusFailed:
		updates["failed_at"] = gorm.Expr("NOW()")
	}

	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("tx_ref = ? AND payment_status = ?", txRef, models.PaymentStatusPending).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Either unknown tx_ref or already final; look it up to tell apart.
		order, err := r.FindByTxRef(ctx, txRef)
		if err != nil {
			return nil, err
		}
		return order, ErrAlreadyFinal
	}

	return r.FindByTxRef(ctx, txRef)
}

func (r *GormOrderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("order_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *GormOrderRepository) MarkDelivered(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("delivered", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
