package queries

import (
	"context"

	"cinebox/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReservationReadStore interface {
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*ReservationListItem, error)
}

type ReservationQueries interface {
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*ReservationListItem, error)
}

type reservationQueriesImpl struct {
	readStore ReservationReadStore
}

func NewReservationQueries(readStore ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{readStore: readStore}
}

func (q *reservationQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*ReservationListItem, error) {
	items, err := q.readStore.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return items, nil
}
