package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resource-hub-backend/internal/model"
)

func TestRequestWorkflowScenario(t *testing.T) {
	gdb := newTestDB(t)
	s := New(gdb)
	admin := seedActor(t, gdb, "admin", model.RoleAdmin)
	student := seedActor(t, gdb, "student", model.RoleStudent)

	env, err := s.CreateEnvironment(ctxAs(admin), EnvironmentInput{
		Name: "Lab A", Type: model.EnvironmentLab, Capacity: intPtr(20),
		Status: model.EnvironmentMaintenance,
	})
	require.NoError(t, err)

	// Not available yet.
	_, err = s.SubmitRequest(ctxAs(student), env.ID, nil, "")
	assert.ErrorIs(t, err, ErrNotAvailable)

	_, err = s.UpdateEnvironment(ctxAs(admin), env.ID, EnvironmentPatch{
		Status: statusPtr(model.EnvironmentAvailable),
	})
	require.NoError(t, err)

	// Admins manage environments directly instead of requesting them.
	_, err = s.SubmitRequest(ctxAs(admin), env.ID, nil, "")
	assert.ErrorIs(t, err, ErrForbidden)

	req, err := s.SubmitRequest(ctxAs(student), env.ID, nil, "afternoon class")
	require.NoError(t, err)
	assert.Equal(t, model.RequestPending, req.Status)
	assert.Equal(t, student.ID, req.UserID)

	// A second submission while the first is pending is benign but
	// distinct.
	_, err = s.SubmitRequest(ctxAs(student), env.ID, nil, "")
	assert.ErrorIs(t, err, ErrDuplicateRequest)

	decided, err := s.ApproveRequest(ctxAs(admin), req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestApproved, decided.Status)
	require.NotNil(t, decided.DecidedByID)
	assert.Equal(t, admin.ID, *decided.DecidedByID)

	// Approved is terminal.
	_, err = s.ApproveRequest(ctxAs(admin), req.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = s.RejectRequest(ctxAs(admin), req.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Once decided, the user may submit again.
	again, err := s.SubmitRequest(ctxAs(student), env.ID, nil, "")
	require.NoError(t, err)
	assert.Equal(t, model.RequestPending, again.Status)
}

func TestSubmitRequestDateValidation(t *testing.T) {
	gdb := newTestDB(t)
	s := New(gdb)
	seedActor(t, gdb, "admin", model.RoleAdmin)
	student := seedActor(t, gdb, "student", model.RoleStudent)

	env, err := s.CreateEnvironment(ctxAs(student), EnvironmentInput{Name: "Room 1", Type: model.EnvironmentRoom})
	require.NoError(t, err)

	yesterday := time.Now().AddDate(0, 0, -1)
	_, err = s.SubmitRequest(ctxAs(student), env.ID, &yesterday, "")
	assert.ErrorIs(t, err, ErrValidation)

	today := time.Now()
	_, err = s.SubmitRequest(ctxAs(student), env.ID, &today, "")
	assert.NoError(t, err)
}

func TestSubmitRequestRequiresActor(t *testing.T) {
	gdb := newTestDB(t)
	s := New(gdb)

	_, err := s.SubmitRequest(context.Background(), 1, nil, "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSubmitRequestHiddenEnvironment(t *testing.T) {
	gdb := newTestDB(t)
	s := New(gdb)
	student := seedActor(t, gdb, "student", model.RoleStudent)

	env, err := s.CreateEnvironment(ctxAs(student), EnvironmentInput{Name: "Room 1", Type: model.EnvironmentRoom})
	require.NoError(t, err)
	require.NoError(t, s.SoftDeleteEnvironment(ctxAs(student), env.ID))

	// Soft-deleted environments are not requestable.
	_, err = s.SubmitRequest(ctxAs(student), env.ID, nil, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecideRequestRequiresAdmin(t *testing.T) {
	gdb := newTestDB(t)
	s := New(gdb)
	student := seedActor(t, gdb, "student", model.RoleStudent)

	env, err := s.CreateEnvironment(ctxAs(student), EnvironmentInput{Name: "Room 1", Type: model.EnvironmentRoom})
	require.NoError(t, err)
	req, err := s.SubmitRequest(ctxAs(student), env.ID, nil, "")
	require.NoError(t, err)

	_, err = s.ApproveRequest(ctxAs(student), req.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = s.ApproveRequest(context.Background(), req.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRejectingResubmissionTwice(t *testing.T) {
	gdb := newTestDB(t)
	s := New(gdb)
	admin := seedActor(t, gdb, "admin", model.RoleAdmin)
	student := seedActor(t, gdb, "student", model.RoleStudent)

	env, err := s.CreateEnvironment(ctxAs(admin), EnvironmentInput{Name: "Lab", Type: model.EnvironmentLab})
	require.NoError(t, err)

	r1, err := s.SubmitRequest(ctxAs(student), env.ID, nil, "")
	require.NoError(t, err)
	_, err = s.RejectRequest(ctxAs(admin), r1.ID)
	require.NoError(t, err)

	// A second rejection of the resubmission would duplicate the
	// (environment, user, rejected) triple; that is a conflict, not an
	// infrastructure failure.
	r2, err := s.SubmitRequest(ctxAs(student), env.ID, nil, "")
	require.NoError(t, err)
	_, err = s.RejectRequest(ctxAs(admin), r2.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// The failed transition rolled back: the resubmission is still
	// pending and the other decision remains reachable.
	approved, err := s.ApproveRequest(ctxAs(admin), r2.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestApproved, approved.Status)
}

func TestDecideRequestNotFound(t *testing.T) {
	gdb := newTestDB(t)
	s := New(gdb)
	admin := seedActor(t, gdb, "admin", model.RoleAdmin)

	_, err := s.ApproveRequest(ctxAs(admin), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBulkDecideMixedOutcomes(t *testing.T) {
	gdb := newTestDB(t)
	s := New(gdb)
	admin := seedActor(t, gdb, "admin", model.RoleAdmin)
	u1 := seedActor(t, gdb, "u1", model.RoleStudent)
	u2 := seedActor(t, gdb, "u2", model.RoleProfessor)

	env, err := s.CreateEnvironment(ctxAs(admin), EnvironmentInput{Name: "Lab", Type: model.EnvironmentLab})
	require.NoError(t, err)

	r1, err := s.SubmitRequest(ctxAs(u1), env.ID, nil, "")
	require.NoError(t, err)
	r2, err := s.SubmitRequest(ctxAs(u2), env.ID, nil, "")
	require.NoError(t, err)

	// r2 is decided up front; the bulk call must not roll back r1's
	// success because of it.
	_, err = s.RejectRequest(ctxAs(admin), r2.ID)
	require.NoError(t, err)

	outcomes := s.BulkDecideRequests(ctxAs(admin), []string{r1.ID, r2.ID, "missing"}, model.RequestApproved)
	require.Len(t, outcomes, 3)

	assert.True(t, outcomes[0].OK)
	require.NotNil(t, outcomes[0].Request)
	assert.Equal(t, model.RequestApproved, outcomes[0].Request.Status)

	assert.False(t, outcomes[1].OK)
	assert.Contains(t, outcomes[1].Error, "no longer pending")

	assert.False(t, outcomes[2].OK)
	assert.Contains(t, outcomes[2].Error, "not found")

	// The successful transition stuck.
	var r1Row model.EnvironmentRequest
	require.NoError(t, gdb.First(&r1Row, "id = ?", r1.ID).Error)
	assert.Equal(t, model.RequestApproved, r1Row.Status)
}

func TestListRequestsFilters(t *testing.T) {
	gdb := newTestDB(t)
	s := New(gdb)
	admin := seedActor(t, gdb, "admin", model.RoleAdmin)
	u1 := seedActor(t, gdb, "u1", model.RoleStudent)
	u2 := seedActor(t, gdb, "u2", model.RoleStudent)

	env, err := s.CreateEnvironment(ctxAs(admin), EnvironmentInput{Name: "Lab", Type: model.EnvironmentLab})
	require.NoError(t, err)

	r1, err := s.SubmitRequest(ctxAs(u1), env.ID, nil, "")
	require.NoError(t, err)
	_, err = s.SubmitRequest(ctxAs(u2), env.ID, nil, "")
	require.NoError(t, err)
	_, err = s.ApproveRequest(ctxAs(admin), r1.ID)
	require.NoError(t, err)

	page, err := s.ListRequests(ctxAs(admin), RequestListOptions{Status: model.RequestPending})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	page, err = s.ListRequests(ctxAs(admin), RequestListOptions{UserID: &u1.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, model.RequestApproved, page.Items[0].Status)
}
