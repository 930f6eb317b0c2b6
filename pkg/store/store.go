// Package store runs churn's reads and writes against one database session.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/marshallshelly/pebble-churn/pkg/builder"
	"github.com/marshallshelly/pebble-churn/pkg/models"
	"github.com/marshallshelly/pebble-churn/pkg/registry"
	"github.com/marshallshelly/pebble-churn/pkg/runtime"
)

// Store issues churn's statements through a Session. Every write runs in
// its own transaction.
type Store struct {
	session runtime.Session
	b       *builder.Builder
}

// New creates a Store over session. Table and sequence names are prefixed
// with schemaName when it is not empty.
func New(session runtime.Session, schemaName string) (*Store, error) {
	if session == nil {
		return nil, runtime.ErrNoConnection
	}
	d, err := builder.DialectFor(session.Driver())
	if err != nil {
		return nil, err
	}
	return &Store{session: session, b: builder.New(d, schemaName)}, nil
}

// Builder returns the store's query builder.
func (s *Store) Builder() *builder.Builder {
	return s.b
}

// SampleID returns the id of one uniformly random row of kind. ok is false
// when the table is empty.
func (s *Store) SampleID(ctx context.Context, kind models.Kind) (id int64, ok bool, err error) {
	table, err := kind.Table()
	if err != nil {
		return 0, false, err
	}

	err = builder.SelectFrom(s.b, table).
		Columns(table.IDColumn()).
		OrderRandom().
		Limit(1).
		Row(ctx, s.session).
		Scan(&id)
	if errors.Is(err, runtime.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("sample %s: %w", kind, err)
	}
	return id, true, nil
}

// HasDependents reports whether any row in a table referencing kind points
// at id.
func (s *Store) HasDependents(ctx context.Context, kind models.Kind, id int64) (bool, error) {
	table, err := kind.Table()
	if err != nil {
		return false, err
	}

	for _, ref := range registry.ReferencesTo(table.Name) {
		var n int64
		err := builder.SelectFrom(s.b, ref.Table).
			Count().
			Where(builder.Eq(ref.Column, id)).
			Row(ctx, s.session).
			Scan(&n)
		if err != nil {
			return false, fmt.Errorf("count %s referencing %s %d: %w", ref.Table.Name, kind, id, err)
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

// InsertProducts inserts products in one statement and commits.
func (s *Store) InsertProducts(ctx context.Context, rows []models.Product) (int64, error) {
	return insertBatch(ctx, s, models.KindProduct, rows)
}

// InsertTransactions inserts inventory transactions in one statement and commits.
func (s *Store) InsertTransactions(ctx context.Context, rows []models.InventoryTransaction) (int64, error) {
	return insertBatch(ctx, s, models.KindInventoryTransaction, rows)
}

// InsertCustomers inserts customers in one statement and commits.
func (s *Store) InsertCustomers(ctx context.Context, rows []models.Customer) (int64, error) {
	return insertBatch(ctx, s, models.KindCustomer, rows)
}

// InsertOrders inserts orders in one statement and commits.
func (s *Store) InsertOrders(ctx context.Context, rows []models.Order) (int64, error) {
	return insertBatch(ctx, s, models.KindOrder, rows)
}

func insertBatch[T any](ctx context.Context, s *Store, kind models.Kind, rows []T) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	var n int64
	err := s.session.InTx(ctx, func(tx runtime.Execer) error {
		var err error
		n, err = builder.Insert[T](s.b).Values(rows...).Exec(ctx, tx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", kind.Plural(), err)
	}
	return n, nil
}

// UpdateProduct scales the product's price by factor and moves its stock
// by delta, never below zero. ok is false when the row no longer exists.
func (s *Store) UpdateProduct(ctx context.Context, id int64, factor float64, delta int) (ok bool, err error) {
	q := builder.Update[models.Product](s.b).
		SetExpr("price", "ROUND(price * ?, 2)", factor).
		SetExpr("stock_quantity", s.b.Dialect().Greatest("0", "stock_quantity + ?"), delta).
		Where(builder.Eq("product_id", id))
	return s.updateOne(ctx, models.KindProduct, id, q)
}

// UpdateCustomer raises the customer's credit limit by delta. ok is false
// when the row no longer exists.
func (s *Store) UpdateCustomer(ctx context.Context, id int64, delta int) (ok bool, err error) {
	q := builder.Update[models.Customer](s.b).
		SetExpr("credit_limit", "credit_limit + ?", delta).
		Where(builder.Eq("customer_id", id))
	return s.updateOne(ctx, models.KindCustomer, id, q)
}

func (s *Store) updateOne(ctx context.Context, kind models.Kind, id int64, q builder.Executable) (bool, error) {
	var n int64
	err := s.session.InTx(ctx, func(tx runtime.Execer) error {
		var err error
		n, err = q.Exec(ctx, tx)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("update %s %d: %w", kind, id, err)
	}
	return n > 0, nil
}

// Delete removes the rows of kind with the given ids in one statement and
// returns how many rows went away.
func (s *Store) Delete(ctx context.Context, kind models.Kind, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	table, err := kind.Table()
	if err != nil {
		return 0, err
	}

	q, err := deleteQuery(s.b, kind, builder.InSlice(table.IDColumn(), ids))
	if err != nil {
		return 0, err
	}

	var n int64
	err = s.session.InTx(ctx, func(tx runtime.Execer) error {
		var err error
		n, err = q.Exec(ctx, tx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", kind.Plural(), err)
	}
	return n, nil
}

func deleteQuery(b *builder.Builder, kind models.Kind, cond builder.Condition) (builder.Executable, error) {
	switch kind {
	case models.KindProduct:
		return builder.Delete[models.Product](b).Where(cond), nil
	case models.KindInventoryTransaction:
		return builder.Delete[models.InventoryTransaction](b).Where(cond), nil
	case models.KindCustomer:
		return builder.Delete[models.Customer](b).Where(cond), nil
	case models.KindOrder:
		return builder.Delete[models.Order](b).Where(cond), nil
	default:
		return nil, fmt.Errorf("unknown kind %d", int(kind))
	}
}

// Close closes the underlying session.
func (s *Store) Close(ctx context.Context) error {
	return s.session.Close(ctx)
}
