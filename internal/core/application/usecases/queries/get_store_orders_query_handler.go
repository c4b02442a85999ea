package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lastbite/internal/core/domain/model/kernel"
	"lastbite/internal/core/domain/model/order"
	"lastbite/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStoreOrdersQueryHandler retrieves a store's orders from the database.
// Verifies that the requester operates the store before reading anything else.
type GetStoreOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetStoreOrdersQueryHandler creates a handler for store order queries.
// Requires a GORM database connection for query execution.
func NewGetStoreOrdersQueryHandler(db *gorm.DB) GetStoreOrdersQueryHandler {
	return GetStoreOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all orders placed with the store.
// Fails with errs.ErrObjectNotFound when the store does not exist and with
// errs.ErrUnauthorized when the requester is not the store's operator.
// Results are sorted newest first by arrival time.
func (h GetStoreOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetStoreOrdersQuery,
) ([]GetStoreOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.authorize(ctx, query); err != nil {
		return nil, err
	}

	orders := make([]GetStoreOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			total_price,
			arrival_time,
			demand,
			status
		FROM orders
		WHERE store_id = ?
		ORDER BY arrival_time DESC, id
	`, query.StoreID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, customerID uuid.UUID
		var totalPrice int64
		var arrivalTime time.Time
		var demand string
		var status int

		err = rows.Scan(
			&id,
			&customerID,
			&totalPrice,
			&arrivalTime,
			&demand,
			&status,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderCustomerID, idErr := kernel.UUIDFromBytes(customerID[:])
		if idErr != nil {
			return nil, idErr
		}

		orders = append(orders, GetStoreOrdersQueryResponse{
			ID:          orderID,
			CustomerID:  orderCustomerID,
			TotalPrice:  totalPrice,
			ArrivalTime: arrivalTime,
			Demand:      demand,
			Status:      order.Status(status),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (h GetStoreOrdersQueryHandler) authorize(ctx context.Context, query GetStoreOrdersQuery) error {
	var operatorID uuid.UUID

	row := h.db.WithContext(ctx).Raw(`
		SELECT operator_id FROM stores WHERE id = ?
	`, query.StoreID().Bytes()).Row()

	if err := row.Scan(&operatorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.NewObjectNotFoundError("storeID", query.StoreID().String())
		}
		return err
	}

	if operatorID != query.RequesterID().Bytes() {
		return errs.NewUnauthorizedError(query.RequesterID().String())
	}
	return nil
}
