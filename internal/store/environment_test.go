package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resource-hub-backend/internal/model"
)

func TestCreateEnvironmentStampsProvenance(t *testing.T) {
	gdb := newTestDB(t)
	s := New(gdb)
	u1 := seedActor(t, gdb, "u1", model.RoleStaff)
	u2 := seedActor(t, gdb, "u2", model.RoleProfessor)

	env, err := s.CreateEnvironment(ctxAs(u1), EnvironmentInput{
		Name: "Lab A", Type: model.EnvironmentLab, Capacity: intPtr(20),
	})
	require.NoError(t, err)
	require.NotNil(t, env.CreatedByID)
	require.NotNil(t, env.UpdatedByID)
	assert.Equal(t, u1.ID, *env.CreatedByID)
	assert.Equal(t, u1.ID, *env.UpdatedByID)
	assert.Equal(t, model.EnvironmentAvailable, env.Status)
	assert.True(t, env.Active)

	// A later update by another actor moves updated_by but never
	// created_by.
	updated, err := s.UpdateEnvironment(ctxAs(u2), env.ID, EnvironmentPatch{
		Status: statusPtr(model.EnvironmentMaintenance),
	})
	require.NoError(t, err)
	assert.Equal(t, u1.ID, *updated.CreatedByID)
	assert.Equal(t, u2.ID, *updated.UpdatedByID)
	assert.Equal(t, model.EnvironmentMaintenance, updated.Status)
}

func TestCreateEnvironmentWithoutActor(t *testing.T) {
	gdb := newTestDB(t)
	s := New(gdb)

	env, err := s.CreateEnvironment(context.Background(), EnvironmentInput{
		Name: "Room 101", Type: model.EnvironmentRoom,
	})
	require.NoError(t, err)
	assert.Nil(t, env.CreatedByID)
	assert.Nil(t, env.UpdatedByID)
}

func TestEnvironmentNameUniquenessCaseInsensitive(t *testing.T) {
	gdb := newTestDB(t)
	s := New(gdb)
	ctx := ctxAs(seedActor(t, gdb, "staff", model.RoleStaff))

	env, err := s.CreateEnvironment(ctx, EnvironmentInput{Name: "Lab A", Type: model.EnvironmentLab})
	require.NoError(t, err)

	_, err = s.CreateEnvironment(ctx, EnvironmentInput{Name: "lab a", Type: model.EnvironmentRoom})
	assert.ErrorIs(t, err, ErrConflict)

	// A soft-deleted name still blocks re-creation.
	require.NoError(t, s.SoftDeleteEnvironment(ctx, env.ID))
	_, err = s.CreateEnvironment(ctx, EnvironmentInput{Name: "LAB A", Type: model.EnvironmentLab})
	assert.ErrorIs(t, err, ErrConflict)

	// Updating a record to its own name is not a conflict.
	restoredName := "Lab A"
	require.NoError(t, s.RestoreEnvironment(ctx, env.ID))
	_, err = s.UpdateEnvironment(ctx, env.ID, EnvironmentPatch{Name: &restoredName})
	assert.NoError(t, err)
}

func TestEnvironmentValidation(t *testing.T) {
	gdb := newTestDB(t)
	s := New(gdb)
	ctx := context.Background()

	_, err := s.CreateEnvironment(ctx, EnvironmentInput{Name: "", Type: model.EnvironmentLab})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.CreateEnvironment(ctx, EnvironmentInput{Name: "X", Type: "closet"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.CreateEnvironment(ctx, EnvironmentInput{Name: "X", Type: model.EnvironmentRoom, Capacity: intPtr(0)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.CreateEnvironment(ctx, EnvironmentInput{Name: "X", Type: model.EnvironmentRoom, Status: "broken"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSoftDeleteAndRestoreVisibility(t *testing.T) {
	gdb := newTestDB(t)
	s := New(gdb)
	ctx := ctxAs(seedActor(t, gdb, "staff", model.RoleStaff))

	env, err := s.CreateEnvironment(ctx, EnvironmentInput{Name: "Aud 1", Type: model.EnvironmentAuditorium})
	require.NoError(t, err)

	require.NoError(t, s.SoftDeleteEnvironment(ctx, env.ID))

	_, err = s.GetEnvironment(ctx, env.ID, false)
	assert.ErrorIs(t, err, ErrNotFound)

	hidden, err := s.GetEnvironment(ctx, env.ID, true)
	require.NoError(t, err)
	assert.False(t, hidden.Active)

	page, err := s.ListEnvironments(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	page, err = s.ListEnvironments(ctx, ListOptions{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	require.NoError(t, s.RestoreEnvironment(ctx, env.ID))
	page, err = s.ListEnvironments(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}

func TestUpdateEnvironmentNotFound(t *testing.T) {
	gdb := newTestDB(t)
	s := New(gdb)

	_, err := s.UpdateEnvironment(context.Background(), 9999, EnvironmentPatch{Location: strPtr("B2")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListEnvironmentsFilters(t *testing.T) {
	gdb := newTestDB(t)
	s := New(gdb)
	ctx := ctxAs(seedActor(t, gdb, "staff", model.RoleStaff))

	seed := []EnvironmentInput{
		{Name: "Chemistry Lab", Type: model.EnvironmentLab, Location: "Block A"},
		{Name: "Physics Lab", Type: model.EnvironmentLab, Location: "Block B", Status: model.EnvironmentMaintenance},
		{Name: "Room 12", Type: model.EnvironmentRoom, Location: "Block A"},
	}
	for _, in := range seed {
		_, err := s.CreateEnvironment(ctx, in)
		require.NoError(t, err)
	}

	page, err := s.ListEnvironments(ctx, ListOptions{Type: model.EnvironmentLab})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page, err = s.ListEnvironments(ctx, ListOptions{Query: "block a"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page, err = s.ListEnvironments(ctx, ListOptions{Status: model.EnvironmentMaintenance})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Physics Lab", page.Items[0].Name)

	page, err = s.ListEnvironments(ctx, ListOptions{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Items, 1)
}

func TestHardDeleteEnvironmentCascades(t *testing.T) {
	gdb := newTestDB(t)
	s := New(gdb)
	admin := seedActor(t, gdb, "admin", model.RoleAdmin)
	student := seedActor(t, gdb, "student", model.RoleStudent)
	ctx := ctxAs(admin)

	env, err := s.CreateEnvironment(ctx, EnvironmentInput{Name: "Lab A", Type: model.EnvironmentLab})
	require.NoError(t, err)
	eq, err := s.CreateEquipment(ctx, EquipmentInput{
		Name: "Projector", SerialNumber: "SN-1", EnvironmentID: &env.ID,
	})
	require.NoError(t, err)
	_, err = s.SubmitRequest(ctxAs(student), env.ID, nil, "")
	require.NoError(t, err)

	require.NoError(t, s.HardDeleteEnvironment(ctx, env.ID))

	// Equipment survives with the link nulled; the requests go away.
	kept, err := s.GetEquipment(ctx, eq.ID, false)
	require.NoError(t, err)
	assert.Nil(t, kept.EnvironmentID)

	var n int64
	require.NoError(t, gdb.Model(&model.EnvironmentRequest{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestHardDeleteEnvironmentNullsTransferEndpoints(t *testing.T) {
	gdb := newTestDB(t)
	s := New(gdb)
	ctx := ctxAs(seedActor(t, gdb, "admin", model.RoleAdmin))

	env1, err := s.CreateEnvironment(ctx, EnvironmentInput{Name: "Env 1", Type: model.EnvironmentRoom})
	require.NoError(t, err)
	env2, err := s.CreateEnvironment(ctx, EnvironmentInput{Name: "Env 2", Type: model.EnvironmentRoom})
	require.NoError(t, err)

	eq, err := s.CreateEquipment(ctx, EquipmentInput{Name: "Projector", SerialNumber: "PJ-1"})
	require.NoError(t, err)
	_, err = s.UpdateEquipment(ctx, eq.ID, EquipmentPatch{EnvironmentID: &env1.ID})
	require.NoError(t, err)
	_, err = s.UpdateEquipment(ctx, eq.ID, EquipmentPatch{EnvironmentID: &env2.ID})
	require.NoError(t, err)

	require.NoError(t, s.HardDeleteEnvironment(ctx, env1.ID))

	// History rows survive the purge; only the ends pointing at the
	// purged environment are nulled.
	records, err := s.ListTransfers(ctx, eq.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first: env1 -> env2, then nil -> env1.
	assert.Nil(t, records[0].FromEnvironmentID)
	require.NotNil(t, records[0].ToEnvironmentID)
	assert.Equal(t, env2.ID, *records[0].ToEnvironmentID)
	assert.Nil(t, records[1].ToEnvironmentID)
	assert.Nil(t, records[1].FromEnvironmentID)
}

func statusPtr(s model.EnvironmentStatus) *model.EnvironmentStatus { return &s }
