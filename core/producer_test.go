package core

import (
	"reflect"
	"testing"

	"github.com/anoideaopen/factory/core/contract"
	"github.com/anoideaopen/factory/core/registry"
	"github.com/stretchr/testify/require"
)

func TestProducerSingletonCachesValue(t *testing.T) {
	var calls int
	reg := mathClass(t, &calls)

	producer, err := NewProducer(
		WithLookup(reg),
		WithStaticMethod("math.Square"),
		WithArgs(5),
	)
	require.NoError(t, err)
	require.True(t, producer.IsSingleton())
	require.Equal(t, contract.StateUnprepared, producer.State())
	require.Nil(t, producer.ResultType())

	require.NoError(t, producer.Init())
	require.Equal(t, contract.StateReady, producer.State())
	require.Equal(t, reflect.TypeOf(0), producer.ResultType())
	require.Equal(t, 1, calls)

	for i := 0; i < 5; i++ {
		value, err := producer.Produce()
		require.NoError(t, err)
		require.Equal(t, 25, value)
	}
	require.Equal(t, 1, calls, "singleton mode invokes the method exactly once")
}

func TestProducerPrototypeInvokesPerCall(t *testing.T) {
	var calls int
	reg := mathClass(t, &calls)

	producer, err := NewProducer(
		WithLookup(reg),
		WithStaticMethod("math.Square"),
		WithArgs(5),
		WithPrototype(),
	)
	require.NoError(t, err)
	require.False(t, producer.IsSingleton())

	require.NoError(t, producer.Init())
	require.Equal(t, contract.StatePrepared, producer.State())
	require.Equal(t, 0, calls, "prototype Init only prepares")

	for i := 0; i < 3; i++ {
		value, err := producer.Produce()
		require.NoError(t, err)
		require.Equal(t, 25, value)
	}
	require.Equal(t, 3, calls)
}

func TestProducerPrototypeReturnsFreshValues(t *testing.T) {
	var ticks int

	reg := registry.New()
	reg.MustDefine("clock").MustStatic("Tick", func() int {
		ticks++
		return ticks
	})

	producer, err := NewProducer(
		WithLookup(reg),
		WithStaticMethod("clock.Tick"),
		WithPrototype(),
	)
	require.NoError(t, err)
	require.NoError(t, producer.Init())

	for want := 1; want <= 3; want++ {
		value, err := producer.Produce()
		require.NoError(t, err)
		require.Equal(t, want, value)
	}
}

func TestProducerNotReadyBeforeInit(t *testing.T) {
	var calls int
	reg := mathClass(t, &calls)

	producer, err := NewProducer(
		WithLookup(reg),
		WithStaticMethod("math.Square"),
		WithArgs(5),
	)
	require.NoError(t, err)

	_, err = producer.Produce()
	require.ErrorIs(t, err, ErrNotReady)
	require.Equal(t, 0, calls, "an unready singleton never invokes silently")
}

func TestProducerFailedSetupIsTerminal(t *testing.T) {
	var calls int

	reg := registry.New()
	reg.MustDefine("vault").MustStatic("Open", func() (string, error) {
		calls++
		return "", errInsufficientFunds
	})

	producer, err := NewProducer(
		WithLookup(reg),
		WithStaticMethod("vault.Open"),
	)
	require.NoError(t, err)

	// Init surfaces the method's failure untouched.
	require.Equal(t, errInsufficientFunds, producer.Init())
	require.Equal(t, contract.StateFailed, producer.State())
	require.Equal(t, 1, calls)

	// Later reads report unreadiness and carry the stored setup failure;
	// the invocation is never retried.
	for i := 0; i < 3; i++ {
		_, err = producer.Produce()
		require.ErrorIs(t, err, ErrNotReady)
		require.ErrorIs(t, err, errInsufficientFunds)
	}
	require.Equal(t, 1, calls)

	require.ErrorIs(t, producer.Init(), ErrAlreadyInitialized)
	require.Equal(t, 1, calls)
}

func TestProducerInitTwice(t *testing.T) {
	var calls int
	reg := mathClass(t, &calls)

	producer, err := NewProducer(
		WithLookup(reg),
		WithStaticMethod("math.Square"),
		WithArgs(5),
	)
	require.NoError(t, err)

	require.NoError(t, producer.Init())
	require.ErrorIs(t, producer.Init(), ErrAlreadyInitialized)
	require.Equal(t, 1, calls)
}

func TestProducerPrototypeFailuresDoNotChangeState(t *testing.T) {
	var fail bool

	reg := registry.New()
	reg.MustDefine("gate").MustStatic("Pass", func() (string, error) {
		if fail {
			return "", errInsufficientFunds
		}
		return "ok", nil
	})

	producer, err := NewProducer(
		WithLookup(reg),
		WithStaticMethod("gate.Pass"),
		WithPrototype(),
	)
	require.NoError(t, err)
	require.NoError(t, producer.Init())

	fail = true
	_, err = producer.Produce()
	require.Equal(t, errInsufficientFunds, err)
	require.Equal(t, contract.StatePrepared, producer.State())

	fail = false
	value, err := producer.Produce()
	require.NoError(t, err)
	require.Equal(t, "ok", value)
}

func TestProducerPrototypeProduceBeforeInit(t *testing.T) {
	var calls int
	reg := mathClass(t, &calls)

	producer, err := NewProducer(
		WithLookup(reg),
		WithStaticMethod("math.Square"),
		WithArgs(5),
		WithPrototype(),
	)
	require.NoError(t, err)

	_, err = producer.Produce()
	require.ErrorIs(t, err, ErrInvocation)
	require.Equal(t, 0, calls)
}

func TestProducerInitPropagatesResolutionFailure(t *testing.T) {
	var calls int
	reg := mathClass(t, &calls)

	producer, err := NewProducer(
		WithLookup(reg),
		WithStaticMethod("math.Cube"),
		WithArgs(5),
	)
	require.NoError(t, err)

	require.ErrorIs(t, producer.Init(), ErrMethodNotFound)
	require.Equal(t, contract.StateUnprepared, producer.State())

	_, err = producer.Produce()
	require.ErrorIs(t, err, ErrNotReady)
}

func TestProducerResultTypeWithoutValueResult(t *testing.T) {
	producer, err := NewProducer(
		WithInstance(&account{}),
		WithMethod("Close"),
		WithPrototype(),
	)
	require.NoError(t, err)
	require.NoError(t, producer.Init())

	// An error-only method has no value result to report, even prepared.
	require.Nil(t, producer.ResultType())

	value, err := producer.Produce()
	require.NoError(t, err)
	require.Nil(t, value)
}

func TestProducerResultTypeFirstOfSeveralResults(t *testing.T) {
	producer, err := NewProducer(
		WithInstance(&account{balance: 5}),
		WithMethod("Snapshot"),
	)
	require.NoError(t, err)
	require.NoError(t, producer.Init())

	// Several value results come back as a []any; ResultType reports the
	// first declared result.
	require.Equal(t, reflect.TypeOf(0), producer.ResultType())

	value, err := producer.Produce()
	require.NoError(t, err)
	require.Equal(t, []any{5, "ok"}, value)
}

func TestProducerInstanceSingleton(t *testing.T) {
	acc := &account{balance: 40}

	producer, err := NewProducer(
		WithInstance(acc),
		WithMethod("Deposit"),
		WithArgs(2),
	)
	require.NoError(t, err)
	require.NoError(t, producer.Init())

	for i := 0; i < 3; i++ {
		value, err := producer.Produce()
		require.NoError(t, err)
		require.Equal(t, 42, value)
	}
	require.Equal(t, 42, acc.balance, "the deposit ran exactly once")
}
