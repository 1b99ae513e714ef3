package exec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/workshoplabs/labctl/errors"
	"github.com/workshoplabs/labctl/pkg/gcloud"
)

func TestFormatBillingAccounts(t *testing.T) {
	t.Parallel()

	accounts := []gcloud.BillingAccount{
		{ID: "00AA00-BB11CC-DD22EE", DisplayName: "Company Billing", Open: true},
		{ID: "AAAAAA-AAAAAA-AAAAAA", DisplayName: "Trial one", Open: true},
		{ID: "BBBBBB-BBBBBB-BBBBBB", DisplayName: "Trial two", Open: true},
		{ID: "CCCCCC-CCCCCC-CCCCCC", DisplayName: "Trial closed", Open: false},
	}

	t.Run("tab separated without TTY", func(t *testing.T) {
		t.Parallel()

		got := formatBillingAccounts(accounts, "Trial", false)
		want := "ID\tNAME\tOPEN\tTRIAL\n" +
			"00AA00-BB11CC-DD22EE\tCompany Billing\tyes\t\n" +
			"AAAAAA-AAAAAA-AAAAAA\tTrial one\tyes\tyes\n" +
			"BBBBBB-BBBBBB-BBBBBB\tTrial two\tyes\tselected\n" +
			"CCCCCC-CCCCCC-CCCCCC\tTrial closed\tno\tyes"
		assert.Equal(t, want, got)
	})

	t.Run("styled table with TTY", func(t *testing.T) {
		t.Parallel()

		got := formatBillingAccounts(accounts, "Trial", true)
		assert.Contains(t, got, "NAME")
		assert.Contains(t, got, "Trial two")
		assert.Contains(t, got, "selected")
	})
}

func TestExecuteBillingListNoAccounts(t *testing.T) {
	t.Parallel()

	cfg, _ := testSetupConfig(t)
	fake := healthyFake()
	fake.accounts = nil

	err := executeBillingList(context.Background(), cfg, fake)
	require.NoError(t, err)
}

func TestExecuteBillingListResolveFailure(t *testing.T) {
	t.Parallel()

	cfg, _ := testSetupConfig(t)
	fake := healthyFake()
	fake.resolveErr = errUtils.ErrGcloudNotFound

	err := executeBillingList(context.Background(), cfg, fake)
	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrGcloudNotFound)
	assert.NotContains(t, fake.calls, "ListBillingAccounts")
}
