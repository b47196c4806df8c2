package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"supplychain-admin/internal/metrics"
	"supplychain-admin/internal/repository"
)

const defaultTxTimeout = 5 * time.Second

// UnitOfWork receives repositories bound to one open transaction.
type UnitOfWork func(ctx context.Context, repo *repository.Repository) error

type uowKey struct{}

// Coordinator is the only component that begins, commits and rolls back transactions.
type Coordinator struct {
	store   repository.Store
	timeout time.Duration
}

func NewCoordinator(store repository.Store, timeout time.Duration) *Coordinator {
	if timeout <= 0 {
		timeout = defaultTxTimeout
	}
	return &Coordinator{store: store, timeout: timeout}
}

// Run executes fn inside one transaction. The error fn returns is handed back as is
// after rollback, with raw store errors mapped onto the service taxonomy. A panic in
// fn rolls back and is re-raised.
func (c *Coordinator) Run(ctx context.Context, name string, fn UnitOfWork) (err error) {
	if outer, ok := ctx.Value(uowKey{}).(string); ok {
		return fmt.Errorf("%w: %s inside %s", ErrNestedUnitOfWork, name, outer)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	log := logrus.WithField("uow", name)

	tx, err := c.store.Begin(ctx)
	if err != nil {
		err = storeErr(ctx, err, "begin "+name)
		metrics.ObserveUnitOfWork(name, outcome(err), time.Since(start))
		return err
	}
	ctx = context.WithValue(ctx, uowKey{}, name)

	defer func() {
		if p := recover(); p != nil {
			c.rollback(tx, log, fmt.Errorf("panic: %v", p))
			metrics.ObserveUnitOfWork(name, metrics.OutcomePanic, time.Since(start))
			panic(p)
		}
	}()

	if err = fn(ctx, tx.Repository()); err != nil {
		err = storeErr(ctx, err, name)
		c.rollback(tx, log, err)
		metrics.ObserveUnitOfWork(name, outcome(err), time.Since(start))
		return err
	}

	// a failed commit has already ended the transaction
	if err = tx.Commit(); err != nil {
		err = storeErr(ctx, err, "commit "+name)
		log.WithError(err).Debug("commit failed")
		metrics.ObserveUnitOfWork(name, outcome(err), time.Since(start))
		return err
	}
	metrics.ObserveUnitOfWork(name, metrics.OutcomeCommit, time.Since(start))
	return nil
}

func (c *Coordinator) rollback(tx repository.Tx, log *logrus.Entry, cause error) {
	if err := tx.Rollback(); err != nil {
		log.WithError(err).WithField("cause", cause.Error()).Error("rollback failed")
		return
	}
	log.WithError(cause).Debug("rolled back")
}

func outcome(err error) string {
	if errors.Is(err, ErrTimeout) {
		return metrics.OutcomeTimeout
	}
	return metrics.OutcomeRollback
}
