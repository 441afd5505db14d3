package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testtrackhq/testtrack/internal/models"
	"github.com/testtrackhq/testtrack/internal/services"
	"github.com/testtrackhq/testtrack/internal/types"
)

func TestCreateUserAssignsIdentity(t *testing.T) {
	db := setupTestDB(t)
	user := mustCreateUser(t, db, "Alice")
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Alice", user.Name)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestCreateUserRequiresName(t *testing.T) {
	db := setupTestDB(t)
	_, err := services.CreateUser(db, "")
	assert.True(t, types.IsKind(err, types.KindValidation), "got %v", err)
}

func TestCreateUserDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	mustCreateUser(t, db, "Alice")

	_, err := services.CreateUser(db, "Alice")
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.KindDuplicate), "got %v", err)

	// Exactly one Alice afterward
	var count int64
	db.Model(&models.User{}).Where("name = ?", "Alice").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateUserNamesAreCaseSensitive(t *testing.T) {
	db := setupTestDB(t)
	mustCreateUser(t, db, "Alice")
	_, err := services.CreateUser(db, "alice")
	assert.NoError(t, err)
}

func TestGetUserByName(t *testing.T) {
	db := setupTestDB(t)
	created := mustCreateUser(t, db, "Alice")

	got, err := services.GetUserByName(db, "Alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = services.GetUserByName(db, "Bob")
	assert.True(t, types.IsKind(err, types.KindNotFound))
}

func TestDeleteUserCascadesAndRecomputes(t *testing.T) {
	db := setupTestDB(t)
	mustCreateTest(t, db, "TC-001")
	mustCreateTest(t, db, "TC-002")
	alice := mustCreateUser(t, db, "Alice")
	bob := mustCreateUser(t, db, "Bob")

	mustCreateResult(t, db, "TC-001", alice.ID, types.StatusFail)
	mustCreateResult(t, db, "TC-001", bob.ID, types.StatusPass)
	mustCreateResult(t, db, "TC-002", alice.ID, types.StatusBlocked)

	require.Equal(t, types.StatusFail, consolidatedStatus(t, db, "TC-001"))
	require.Equal(t, types.StatusBlocked, consolidatedStatus(t, db, "TC-002"))

	require.NoError(t, services.DeleteUser(db, alice.ID))

	// Exactly Alice's results are gone
	var count int64
	db.Model(&models.TestResult{}).Count(&count)
	assert.EqualValues(t, 1, count)

	// Affected tests are recomputed from the reduced sets
	assert.Equal(t, types.StatusPass, consolidatedStatus(t, db, "TC-001"))
	assert.Equal(t, types.StatusPending, consolidatedStatus(t, db, "TC-002"))
}

func TestDeleteUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	err := services.DeleteUser(db, "no-such-id")
	assert.True(t, types.IsKind(err, types.KindNotFound), "got %v", err)
}

func TestResetAllUserData(t *testing.T) {
	db := setupTestDB(t)
	mustCreateTest(t, db, "TC-001")
	alice := mustCreateUser(t, db, "Alice")
	mustCreateResult(t, db, "TC-001", alice.ID, types.StatusFail)

	require.NoError(t, services.ResetAllUserData(db))

	var users, results int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.TestResult{}).Count(&results)
	assert.Zero(t, users)
	assert.Zero(t, results)

	// The catalog survives, reset to pending
	assert.Equal(t, types.StatusPending, consolidatedStatus(t, db, "TC-001"))
}
