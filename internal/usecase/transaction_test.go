package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRunsAllOperations(t *testing.T) {
	var ran []string
	txn := NewTransaction(nil)
	for _, name := range []string{"first", "second", "third"} {
		name := name
		txn.AddOperation(name, func(ctx context.Context) error {
			ran = append(ran, name)
			return nil
		})
	}

	require.NoError(t, txn.Execute(context.Background()))
	assert.Equal(t, []string{"first", "second", "third"}, ran)
}

func TestTransactionCompensatesInReverseOrder(t *testing.T) {
	var undone []string
	txn := NewTransaction(nil)

	txn.AddOperation("first", func(ctx context.Context) error { return nil })
	txn.AddCompensation("undo_first", func(ctx context.Context) error {
		undone = append(undone, "undo_first")
		return nil
	})
	txn.AddOperation("second", func(ctx context.Context) error { return nil })
	txn.AddCompensation("undo_second", func(ctx context.Context) error {
		undone = append(undone, "undo_second")
		return nil
	})
	txn.AddOperation("third", func(ctx context.Context) error { return errors.New("boom") })

	err := txn.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operation 'third' failed")
	assert.Equal(t, []string{"undo_second", "undo_first"}, undone)
}

func TestTransactionOnlyExecutedOperationsCompensated(t *testing.T) {
	var undone []string
	txn := NewTransaction(nil)

	txn.AddOperation("first", func(ctx context.Context) error { return errors.New("boom") })
	txn.AddCompensation("undo_first", func(ctx context.Context) error {
		undone = append(undone, "undo_first")
		return nil
	})
	txn.AddOperation("second", func(ctx context.Context) error {
		t.Fatal("second operation must not run after a failure")
		return nil
	})

	err := txn.Execute(context.Background())
	require.Error(t, err)
	// The failing operation itself is not compensated.
	assert.Empty(t, undone)
}

func TestTransactionSkipsOperationsWithoutCompensation(t *testing.T) {
	var undone []string
	txn := NewTransaction(nil)

	txn.AddOperation("first", func(ctx context.Context) error { return nil })
	// No compensation for "first".
	txn.AddOperation("second", func(ctx context.Context) error { return nil })
	txn.AddCompensation("undo_second", func(ctx context.Context) error {
		undone = append(undone, "undo_second")
		return nil
	})
	txn.AddOperation("third", func(ctx context.Context) error { return errors.New("boom") })

	require.Error(t, txn.Execute(context.Background()))
	assert.Equal(t, []string{"undo_second"}, undone)
}

func TestTransactionCompensationFailureKeepsOutcome(t *testing.T) {
	txn := NewTransaction(nil)

	txn.AddOperation("first", func(ctx context.Context) error { return nil })
	txn.AddCompensation("undo_first", func(ctx context.Context) error {
		return errors.New("undo failed too")
	})
	txn.AddOperation("second", func(ctx context.Context) error { return errors.New("boom") })

	err := txn.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operation 'second' failed")
	assert.NotContains(t, err.Error(), "undo failed too")
}
