package reflectx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type accountService struct{}

func (accountService) Deposit(amount int)  {}
func (accountService) Withdraw(amount int) {}
func (accountService) Balance() int        { return 0 }

func (accountService) audit() {}

func TestMethods(t *testing.T) {
	require.Equal(t, []string{"Balance", "Deposit", "Withdraw"}, Methods(accountService{}))
	require.Equal(t, []string{"Balance", "Deposit", "Withdraw"}, Methods(&accountService{}))
}

func TestMethodsNil(t *testing.T) {
	require.Nil(t, Methods(nil))
}

func TestMethodsNoMethods(t *testing.T) {
	require.Empty(t, Methods(struct{}{}))
}
