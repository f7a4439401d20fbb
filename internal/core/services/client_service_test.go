package services

import (
	"context"
	"testing"

	"luna-empenos/internal/adapters/persistence/repositories"
	"luna-empenos/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClientService(t *testing.T) (*ClientService, context.Context) {
	t.Helper()
	db := newTestDB(t)
	return NewClientService(repositories.NewClientRepository(db)), context.Background()
}

func TestClientCreate_TrimsAndStores(t *testing.T) {
	svc, ctx := newClientService(t)

	client, err := svc.Create(ctx, &CreateClientInput{
		FirstName:  "Carlos",
		LastName:   "Ramirez",
		Phone:      "5512345678",
		NationalID: "  RAMC860101HDF ",
		Address:    "Av. Luna 42",
	})
	require.NoError(t, err)
	assert.NotZero(t, client.ID)
	assert.Equal(t, "RAMC860101HDF", client.NationalID)
	assert.Equal(t, "Carlos Ramirez", client.FullName())
}

func TestClientCreate_DuplicateNationalID(t *testing.T) {
	svc, ctx := newClientService(t)

	_, err := svc.Create(ctx, &CreateClientInput{
		FirstName: "Carlos", LastName: "Ramirez", NationalID: "RAMC860101HDF",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &CreateClientInput{
		FirstName: "Otro", LastName: "Cliente", NationalID: "RAMC860101HDF",
	})
	require.ErrorIs(t, err, ErrDuplicateNationalID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestClientCreate_RequiresNationalID(t *testing.T) {
	svc, ctx := newClientService(t)

	_, err := svc.Create(ctx, &CreateClientInput{FirstName: "Sin", LastName: "Ine", NationalID: "  "})
	require.ErrorIs(t, err, ErrMissingClientID)
}

func TestClientGetByID_NotFound(t *testing.T) {
	svc, ctx := newClientService(t)

	_, err := svc.GetByID(ctx, 404)
	require.ErrorIs(t, err, ErrClientNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClientFindByNationalID(t *testing.T) {
	svc, ctx := newClientService(t)

	created, err := svc.Create(ctx, &CreateClientInput{
		FirstName: "Ana", LastName: "Luna", NationalID: "LUNA900101MDF",
	})
	require.NoError(t, err)

	found, err := svc.FindByNationalID(ctx, "  LUNA900101MDF  ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.FindByNationalID(ctx, "NOPE000000XXX")
	require.ErrorIs(t, err, ErrClientNotFound)
}

func TestClientSearch(t *testing.T) {
	svc, ctx := newClientService(t)

	seed := []CreateClientInput{
		{FirstName: "Carlos", LastName: "Ramirez", Phone: "5512345678", NationalID: "RAMC860101HDF"},
		{FirstName: "Ana", LastName: "Luna", Phone: "5598765432", NationalID: "LUNA900101MDF"},
		{FirstName: "Pedro", LastName: "Ramos", Phone: "3311122233", NationalID: "RAMP700101HJC"},
	}
	for i := range seed {
		_, err := svc.Create(ctx, &seed[i])
		require.NoError(t, err)
	}

	names := func(q string) []string {
		results, err := svc.Search(ctx, q)
		require.NoError(t, err)
		out := make([]string, 0, len(results))
		for _, c := range results {
			out = append(out, c.FullName())
		}
		return out
	}

	// Case-insensitive, substring, across all four fields.
	assert.ElementsMatch(t, []string{"Carlos Ramirez"}, names("CARLOS"))
	assert.ElementsMatch(t, []string{"Carlos Ramirez", "Pedro Ramos"}, names("ram"))
	assert.ElementsMatch(t, []string{"Ana Luna"}, names("luna900101"))
	assert.ElementsMatch(t, []string{"Carlos Ramirez", "Ana Luna"}, names("55"))
	assert.Empty(t, names("zzz"))
}

func TestClientSearch_EmptyQuery(t *testing.T) {
	svc, ctx := newClientService(t)

	_, err := svc.Create(ctx, &CreateClientInput{
		FirstName: "Carlos", LastName: "Ramirez", NationalID: "RAMC860101HDF",
	})
	require.NoError(t, err)

	results, err := svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
}
