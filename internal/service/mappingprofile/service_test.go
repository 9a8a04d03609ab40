package mappingprofile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagebook/wagebook-backend-go/internal/domain/importer"
	"github.com/wagebook/wagebook-backend-go/internal/domain/mappingprofile"
	"github.com/wagebook/wagebook-backend-go/internal/repository/memory"
)

func TestProfileService_CRUD(t *testing.T) {
	t.Parallel()

	svc := NewProfileService(memory.NewStore().Profiles())
	ctx := context.Background()

	mapping := importer.ColumnMapping{
		importer.RoleName:       1,
		importer.RoleGrossWages: 6,
	}

	saved, err := svc.Save(ctx, "client-1", "acme muster", mapping)
	require.NoError(t, err)
	assert.Equal(t, "acme muster", saved.Name)

	got, err := svc.Get(ctx, "client-1", "acme muster")
	require.NoError(t, err)
	assert.Equal(t, mapping, got.Mapping)

	list, err := svc.List(ctx, "client-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, "client-1", "acme muster"))
	_, err = svc.Get(ctx, "client-1", "acme muster")
	assert.ErrorIs(t, err, mappingprofile.ErrProfileNotFound)
}

func TestProfileService_NameRules(t *testing.T) {
	t.Parallel()

	svc := NewProfileService(memory.NewStore().Profiles())
	ctx := context.Background()

	_, err := svc.Save(ctx, "client-1", "   ", nil)
	assert.ErrorIs(t, err, mappingprofile.ErrEmptyProfileName)

	_, err = svc.Save(ctx, "client-1", "acme", importer.ColumnMapping{importer.RoleName: 0})
	require.NoError(t, err)
	_, err = svc.Save(ctx, "client-1", "acme", importer.ColumnMapping{importer.RoleName: 1})
	assert.ErrorIs(t, err, mappingprofile.ErrProfileNameExists)

	// Names are scoped per client.
	_, err = svc.Save(ctx, "client-2", "acme", importer.ColumnMapping{importer.RoleName: 0})
	assert.NoError(t, err)
}

func TestProfileService_TrimsName(t *testing.T) {
	t.Parallel()

	svc := NewProfileService(memory.NewStore().Profiles())

	saved, err := svc.Save(context.Background(), "client-1", "  acme  ", importer.ColumnMapping{importer.RoleName: 0})
	require.NoError(t, err)
	assert.Equal(t, "acme", saved.Name)
}
