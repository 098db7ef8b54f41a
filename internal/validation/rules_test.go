package validation_test

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ensia-dev/incubator/internal/apperr"
	"github.com/ensia-dev/incubator/internal/models"
	"github.com/ensia-dev/incubator/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("file:validation_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))

	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Role{}, &models.User{}, &models.Stage{}, &models.Startup{},
		&models.TeamMember{}, &models.Application{}, &models.ApplicationVote{},
		&models.ApplicationScore{},
	))

	return db
}

func seedStudent(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()

	role := models.Role{Name: models.RoleStudent}
	require.NoError(t, db.Where("name = ?", role.Name).FirstOrCreate(&role).Error)

	user := models.User{FullName: name, Email: email, PasswordHash: "x", RoleID: role.ID}
	require.NoError(t, db.Create(&user).Error)

	user.Role = role
	return user
}

func seedStartup(t *testing.T, db *gorm.DB, name string) models.Startup {
	t.Helper()

	startup := models.Startup{Name: name, Status: models.StatusPending}
	require.NoError(t, db.Create(&startup).Error)
	return startup
}

func TestValidateTeamMembershipRejectsNonStudent(t *testing.T) {
	db := openTestDB(t)

	role := models.Role{Name: models.RoleMentor}
	require.NoError(t, db.Create(&role).Error)
	mentor := models.User{FullName: "M", Email: "m@example.com", PasswordHash: "x", RoleID: role.ID}
	require.NoError(t, db.Create(&mentor).Error)
	mentor.Role = role
	startup := seedStartup(t, db, "Alpha")

	err := validation.ValidateTeamMembership(db, mentor,
		models.TeamMember{RoleInTeam: "Developer", StartupID: startup.ID, UserID: mentor.ID}, 0)

	require.NotNil(t, err)
	assert.Equal(t, apperr.CodeNotStudent, err.Code)
}

func TestValidateTeamMembershipLeaderElsewhere(t *testing.T) {
	db := openTestDB(t)

	leader := seedStudent(t, db, "L", "l@example.com")
	alpha := seedStartup(t, db, "Alpha")
	beta := seedStartup(t, db, "Beta")

	require.NoError(t, db.Create(&models.TeamMember{
		RoleInTeam: models.TeamLeaderRole, StartupID: alpha.ID, UserID: leader.ID,
	}).Error)

	err := validation.ValidateTeamMembership(db, leader,
		models.TeamMember{RoleInTeam: models.TeamLeaderRole, StartupID: beta.ID, UserID: leader.ID}, 0)

	require.NotNil(t, err)
	// The leader check runs before the plain membership check.
	assert.Equal(t, apperr.CodeAlreadyTeamLeader, err.Code)
}

func TestValidateTeamMembershipMembershipElsewhere(t *testing.T) {
	db := openTestDB(t)

	student := seedStudent(t, db, "S", "s@example.com")
	alpha := seedStartup(t, db, "Alpha")
	beta := seedStartup(t, db, "Beta")

	require.NoError(t, db.Create(&models.TeamMember{
		RoleInTeam: "Developer", StartupID: alpha.ID, UserID: student.ID,
	}).Error)

	err := validation.ValidateTeamMembership(db, student,
		models.TeamMember{RoleInTeam: "Developer", StartupID: beta.ID, UserID: student.ID}, 0)

	require.NotNil(t, err)
	assert.Equal(t, apperr.CodeAlreadyTeamMember, err.Code)
}

func TestValidateTeamMembershipSecondLeader(t *testing.T) {
	db := openTestDB(t)

	leader := seedStudent(t, db, "L", "l@example.com")
	candidate := seedStudent(t, db, "C", "c@example.com")
	startup := seedStartup(t, db, "Alpha")

	require.NoError(t, db.Create(&models.TeamMember{
		RoleInTeam: models.TeamLeaderRole, StartupID: startup.ID, UserID: leader.ID,
	}).Error)

	err := validation.ValidateTeamMembership(db, candidate,
		models.TeamMember{RoleInTeam: models.TeamLeaderRole, StartupID: startup.ID, UserID: candidate.ID}, 0)

	require.NotNil(t, err)
	assert.Equal(t, apperr.CodeStartupHasLeader, err.Code)
}

func TestValidateTeamMembershipExcludeSelfOnUpdate(t *testing.T) {
	db := openTestDB(t)

	leader := seedStudent(t, db, "L", "l@example.com")
	startup := seedStartup(t, db, "Alpha")

	member := models.TeamMember{RoleInTeam: models.TeamLeaderRole, StartupID: startup.ID, UserID: leader.ID}
	require.NoError(t, db.Create(&member).Error)

	// Re-validating the member's own row must not trip any invariant.
	member.RoleInTeam = models.TeamLeaderRole
	err := validation.ValidateTeamMembership(db, leader, member, member.ID)
	assert.Nil(t, err)
}

func TestValidateEventWindow(t *testing.T) {
	now := time.Now()

	assert.Nil(t, validation.ValidateEventWindow(now, now.Add(time.Hour)))

	err := validation.ValidateEventWindow(now, now)
	require.NotNil(t, err)
	assert.Equal(t, apperr.CodeInvalidTimeRange, err.Code)

	err = validation.ValidateEventWindow(now, now.Add(-time.Minute))
	require.NotNil(t, err)
	assert.Equal(t, apperr.CodeInvalidTimeRange, err.Code)
}

func TestValidateFileLinkage(t *testing.T) {
	id := uint(1)

	assert.Nil(t, validation.ValidateFileLinkage(&id, nil))
	assert.Nil(t, validation.ValidateFileLinkage(nil, &id))

	err := validation.ValidateFileLinkage(nil, nil)
	require.NotNil(t, err)
	assert.Equal(t, apperr.CodeAmbiguousLinkage, err.Code)

	err = validation.ValidateFileLinkage(&id, &id)
	require.NotNil(t, err)
	assert.Equal(t, apperr.CodeAmbiguousLinkage, err.Code)
}

func TestValidateResourceRequestQuantity(t *testing.T) {
	assert.Nil(t, validation.ValidateResourceRequestQuantity(5, 10))
	assert.Nil(t, validation.ValidateResourceRequestQuantity(10, 10))

	err := validation.ValidateResourceRequestQuantity(11, 10)
	require.NotNil(t, err)
	assert.Equal(t, apperr.CodeInsufficientResource, err.Code)
}

func TestValidateUniqueVoteAndScore(t *testing.T) {
	db := openTestDB(t)

	juror := seedStudent(t, db, "J", "j@example.com")
	startup := seedStartup(t, db, "Alpha")
	application := models.Application{Status: models.StatusPending, StartupID: startup.ID}
	require.NoError(t, db.Create(&application).Error)

	assert.Nil(t, validation.ValidateUniqueVote(db, application.ID, juror.ID))
	require.NoError(t, db.Create(&models.ApplicationVote{
		Vote: true, ApplicationID: application.ID, UserID: juror.ID,
	}).Error)

	err := validation.ValidateUniqueVote(db, application.ID, juror.ID)
	require.NotNil(t, err)
	assert.Equal(t, apperr.CodeDuplicateVoteOrScore, err.Code)

	assert.Nil(t, validation.ValidateUniqueScore(db, application.ID, juror.ID))
	require.NoError(t, db.Create(&models.ApplicationScore{
		Score: 80, ApplicationID: application.ID, UserID: juror.ID,
	}).Error)

	err = validation.ValidateUniqueScore(db, application.ID, juror.ID)
	require.NotNil(t, err)
	assert.Equal(t, apperr.CodeDuplicateVoteOrScore, err.Code)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, validation.IsUniqueViolation(nil))
	assert.False(t, validation.IsUniqueViolation(errors.New("connection refused")))
	assert.True(t, validation.IsUniqueViolation(errors.New(`ERROR: duplicate key value violates unique constraint "idx_team_members_startup_user"`)))
	assert.True(t, validation.IsUniqueViolation(errors.New("UNIQUE constraint failed: team_members.startup_id, team_members.user_id")))
}

func TestUniqueIndexBacksMembershipInvariant(t *testing.T) {
	db := openTestDB(t)

	student := seedStudent(t, db, "S", "s@example.com")
	startup := seedStartup(t, db, "Alpha")

	require.NoError(t, db.Create(&models.TeamMember{
		RoleInTeam: "Developer", StartupID: startup.ID, UserID: student.ID,
	}).Error)

	err := db.Create(&models.TeamMember{
		RoleInTeam: "Designer", StartupID: startup.ID, UserID: student.ID,
	}).Error

	require.Error(t, err)
	assert.True(t, validation.IsUniqueViolation(err))
}
