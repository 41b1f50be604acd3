package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Transaction runs a sequence of operations with compensating actions. When
// an operation fails, the compensations registered for the operations that
// already ran are executed in reverse order. Compensations are best-effort:
// a compensation failure is logged as a RollbackFailure warning and does not
// change the reported outcome.
type Transaction struct {
	operations    []Operation
	compensations map[int]Compensation
	log           *logrus.Logger
}

type Operation struct {
	Name string
	Fn   func(context.Context) error
}

type Compensation struct {
	Name string
	Fn   func(context.Context) error
}

func NewTransaction(log *logrus.Logger) *Transaction {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Transaction{
		compensations: map[int]Compensation{},
		log:           log,
	}
}

func (t *Transaction) AddOperation(name string, fn func(context.Context) error) {
	t.operations = append(t.operations, Operation{name, fn})
}

// AddCompensation registers the undo for the most recently added operation.
func (t *Transaction) AddCompensation(name string, fn func(context.Context) error) {
	t.compensations[len(t.operations)-1] = Compensation{name, fn}
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, op := range t.operations {
		if err := op.Fn(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("operation '%s' failed: %w (rolled back %d operations)", op.Name, err, i)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAtIndex int) {
	for i := failedAtIndex - 1; i >= 0; i-- {
		comp, ok := t.compensations[i]
		if !ok {
			continue
		}
		if err := comp.Fn(ctx); err != nil {
			rbErr := &RollbackFailureError{Step: comp.Name, Err: err}
			t.log.WithError(rbErr).Warn("compensation failed, inconsistency risk")
		}
	}
}
