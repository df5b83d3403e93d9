package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echo_errors "github.com/pmb-ti/accountrenewal/errors"
	"github.com/pmb-ti/accountrenewal/model"
)

func TestMemoryDirectory_FindAndUpdate(t *testing.T) {
	ctx := context.Background()
	d := NewMemoryDirectory("saude", "betim")
	d.Put("saude", model.Account{Login: "JDoe", DisplayName: "John Doe", Enabled: true})

	account, err := d.FindAccount(ctx, "jdoe", "saude")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "John Doe", account.DisplayName)
	assert.True(t, account.Expiration.IsNever())

	missing, err := d.FindAccount(ctx, "jdoe", "betim")
	require.NoError(t, err)
	assert.Nil(t, missing)

	at := time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, d.UpdateExpiration(ctx, "jdoe", "saude", model.ExpiresAt(at)))

	account, err = d.FindAccount(ctx, "jdoe", "saude")
	require.NoError(t, err)
	assert.True(t, account.Expiration.Equal(model.ExpiresAt(at)))
}

func TestMemoryDirectory_SnapshotIsACopy(t *testing.T) {
	d := NewMemoryDirectory("saude")
	d.Put("saude", model.Account{Login: "jdoe", DisplayName: "John Doe"})

	account, err := d.FindAccount(context.Background(), "jdoe", "saude")
	require.NoError(t, err)
	account.DisplayName = "changed"

	again, err := d.FindAccount(context.Background(), "jdoe", "saude")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", again.DisplayName)
}

func TestMemoryDirectory_Failures(t *testing.T) {
	ctx := context.Background()
	d := NewMemoryDirectory("saude")

	err := d.UpdateExpiration(ctx, "ghost", "saude", model.Never())
	assert.True(t, errors.Is(err, echo_errors.ErrAccountNotFound))

	_, err = d.FindAccount(ctx, "jdoe", "contagem")
	assert.True(t, errors.Is(err, echo_errors.ErrDirectoryFault))
	assert.True(t, errors.Is(err, echo_errors.ErrUnsupportedDomain))

	d.FindErr = errors.New("server down")
	_, err = d.FindAccount(ctx, "jdoe", "saude")
	assert.True(t, errors.Is(err, echo_errors.ErrDirectoryFault))
	assert.Contains(t, err.Error(), "server down")

	d.Put("saude", model.Account{Login: "jdoe"})
	d.UpdateErr = errors.New("write refused")
	err = d.UpdateExpiration(ctx, "jdoe", "saude", model.Never())
	assert.True(t, errors.Is(err, echo_errors.ErrDirectoryFault))
}

func TestVerifyConnectivity(t *testing.T) {
	ctx := context.Background()
	d := NewMemoryDirectory("saude", "betim")

	err := VerifyConnectivity(ctx, d, []model.Domain{{ID: "saude", Label: "saude.pmb"}, {ID: "betim", Label: "betim.pmb"}})
	assert.NoError(t, err)

	err = VerifyConnectivity(ctx, d, []model.Domain{{ID: "saude", Label: "saude.pmb"}, {ID: "contagem", Label: "contagem.pmb"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contagem.pmb")
}

type noPing struct{ Service }

func TestVerifyConnectivity_SkipsBindingsWithoutPing(t *testing.T) {
	err := VerifyConnectivity(context.Background(), noPing{}, []model.Domain{{ID: "saude"}})
	assert.NoError(t, err)
}
