package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamPath(startupID uint) string {
	return fmt.Sprintf("/api/startups/%d/team", startupID)
}

func TestAddTeamMemberRejectsNonStudent(t *testing.T) {
	r := setupTest(t)

	mentor := createTestUser(t, "Imene Cherif", "imene@example.com", "mentor")
	startup := createTestStartup(t, "GreenGrid", nil)

	w := doRequest(t, r, http.MethodPost, teamPath(startup.ID), "", map[string]any{
		"role_in_team": "Developer",
		"user_id":      mentor.ID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "not_student", decodeObject(t, w)["code"])
}

func TestTeamLeaderUniquePerStartup(t *testing.T) {
	r := setupTest(t)

	first := createTestUser(t, "Yacine Brahimi", "yacine@example.com", "student")
	second := createTestUser(t, "Amira Saidi", "amira@example.com", "student")
	startup := createTestStartup(t, "AgriSense", nil)

	w := doRequest(t, r, http.MethodPost, teamPath(startup.ID), "", map[string]any{
		"role_in_team": "Team Leader",
		"user_id":      first.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodPost, teamPath(startup.ID), "", map[string]any{
		"role_in_team": "Team Leader",
		"user_id":      second.ID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "startup_has_leader", decodeObject(t, w)["code"])
}

func TestUserBelongsToOneStartup(t *testing.T) {
	r := setupTest(t)

	student := createTestUser(t, "Khaled Mansour", "khaled@example.com", "student")
	alpha := createTestStartup(t, "Alpha", nil)
	beta := createTestStartup(t, "Beta", nil)

	w := doRequest(t, r, http.MethodPost, teamPath(alpha.ID), "", map[string]any{
		"role_in_team": "Designer",
		"user_id":      student.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodPost, teamPath(beta.ID), "", map[string]any{
		"role_in_team": "Designer",
		"user_id":      student.ID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "already_team_member", decodeObject(t, w)["code"])
}

func TestLeaderOfAnotherStartupRejected(t *testing.T) {
	r := setupTest(t)

	leader := createTestUser(t, "Rania Toumi", "rania@example.com", "student")
	alpha := createTestStartup(t, "Alpha", nil)
	beta := createTestStartup(t, "Beta", nil)

	w := doRequest(t, r, http.MethodPost, teamPath(alpha.ID), "", map[string]any{
		"role_in_team": "Team Leader",
		"user_id":      leader.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodPost, teamPath(beta.ID), "", map[string]any{
		"role_in_team": "Team Leader",
		"user_id":      leader.ID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "already_team_leader", decodeObject(t, w)["code"])
}

func TestDuplicateMembershipRejected(t *testing.T) {
	r := setupTest(t)

	student := createTestUser(t, "Omar Zitouni", "omar@example.com", "student")
	startup := createTestStartup(t, "MedTrack", nil)

	payload := map[string]any{"role_in_team": "Developer", "user_id": student.ID}

	w := doRequest(t, r, http.MethodPost, teamPath(startup.ID), "", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodPost, teamPath(startup.ID), "", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "already_team_member", decodeObject(t, w)["code"])
}

func TestResolveMemberByName(t *testing.T) {
	r := setupTest(t)

	createTestUser(t, "Sofiane Merad", "sofiane@example.com", "student")
	startup := createTestStartup(t, "EduLink", nil)

	w := doRequest(t, r, http.MethodPost, teamPath(startup.ID), "", map[string]any{
		"role_in_team": "Developer",
		"member_name":  "Sofiane Merad",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Sofiane Merad", decodeObject(t, w)["member_name"])
}

func TestResolveMemberByNameNotFound(t *testing.T) {
	r := setupTest(t)
	startup := createTestStartup(t, "EduLink", nil)

	w := doRequest(t, r, http.MethodPost, teamPath(startup.ID), "", map[string]any{
		"role_in_team": "Developer",
		"member_name":  "Nobody Here",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "user_not_found", decodeObject(t, w)["code"])
}

func TestResolveMemberByNameAmbiguous(t *testing.T) {
	r := setupTest(t)

	createTestUser(t, "Walid Hamidi", "walid1@example.com", "student")
	createTestUser(t, "Walid Hamidi", "walid2@example.com", "student")
	startup := createTestStartup(t, "EduLink", nil)

	w := doRequest(t, r, http.MethodPost, teamPath(startup.ID), "", map[string]any{
		"role_in_team": "Developer",
		"member_name":  "Walid Hamidi",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "multiple_users_found", decodeObject(t, w)["code"])
}

func TestPromoteMemberToLeaderWhenLeaderExists(t *testing.T) {
	r := setupTest(t)

	leader := createTestUser(t, "Ines Belkacem", "ines@example.com", "student")
	member := createTestUser(t, "Tarek Louni", "tarek@example.com", "student")
	startup := createTestStartup(t, "SolarKit", nil)

	w := doRequest(t, r, http.MethodPost, teamPath(startup.ID), "", map[string]any{
		"role_in_team": "Team Leader",
		"user_id":      leader.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodPost, teamPath(startup.ID), "", map[string]any{
		"role_in_team": "Developer",
		"user_id":      member.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	memberID := decodeObject(t, w)["id"].(float64)

	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("%s/%d", teamPath(startup.ID), int(memberID)), "", map[string]any{
		"role_in_team": "Team Leader",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "startup_has_leader", decodeObject(t, w)["code"])
}

func TestUpdateTeamMemberChangesUser(t *testing.T) {
	r := setupTest(t)

	original := createTestUser(t, "Lina Ferhat", "lina@example.com", "student")
	replacement := createTestUser(t, "Samir Kaci", "samir@example.com", "student")
	startup := createTestStartup(t, "AquaPure", nil)

	w := doRequest(t, r, http.MethodPost, teamPath(startup.ID), "", map[string]any{
		"role_in_team": "Developer",
		"user_id":      original.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	memberID := int(decodeObject(t, w)["id"].(float64))

	memberPath := fmt.Sprintf("%s/%d", teamPath(startup.ID), memberID)

	w = doRequest(t, r, http.MethodPut, memberPath, "", map[string]any{
		"user_id": replacement.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(replacement.ID), decodeObject(t, w)["user_id"])

	// Re-read the row: the new user must have been persisted, not just echoed.
	w = doRequest(t, r, http.MethodGet, memberPath, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeObject(t, w)
	assert.Equal(t, float64(replacement.ID), body["user_id"])
	assert.Equal(t, "Samir Kaci", body["member_name"])
}

func TestRemoveAndReAddMember(t *testing.T) {
	r := setupTest(t)

	student := createTestUser(t, "Meriem Daoud", "meriem@example.com", "student")
	startup := createTestStartup(t, "FinTrack", nil)

	payload := map[string]any{"role_in_team": "Developer", "user_id": student.ID}

	w := doRequest(t, r, http.MethodPost, teamPath(startup.ID), "", payload)
	require.Equal(t, http.StatusCreated, w.Code)
	memberID := decodeObject(t, w)["id"].(float64)

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("%s/%d", teamPath(startup.ID), int(memberID)), "", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, r, http.MethodPost, teamPath(startup.ID), "", payload)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestListTeamMembers(t *testing.T) {
	r := setupTest(t)

	student := createTestUser(t, "Hana Bougherara", "hana@example.com", "student")
	startup := createTestStartup(t, "BioSort", nil)

	w := doRequest(t, r, http.MethodPost, teamPath(startup.ID), "", map[string]any{
		"role_in_team": "Team Leader",
		"user_id":      student.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodGet, teamPath(startup.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	members := decodeArray(t, w)
	require.Len(t, members, 1)
	assert.Equal(t, "Team Leader", members[0]["role_in_team"])
	assert.Equal(t, "Hana Bougherara", members[0]["member_name"])
}
