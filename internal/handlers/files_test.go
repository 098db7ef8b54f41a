package handlers_test

import (
	"net/http"
	"testing"

	"github.com/ensia-dev/incubator/db"
	"github.com/ensia-dev/incubator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadFileRequiresAuth(t *testing.T) {
	r := setupTest(t)

	w := doRequest(t, r, http.MethodPost, "/api/files/upload", "", map[string]any{
		"drive_file_id": "drv-1",
		"name":          "pitch.pdf",
		"url":           "https://drive.example.com/drv-1",
		"file_type":     "pdf",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadFileLinkageExclusivity(t *testing.T) {
	r := setupTest(t)

	uploader := createTestUser(t, "Uploader", "up@example.com", "student")
	token := tokenFor(t, uploader)

	startup := createTestStartup(t, "CleanWave", nil)
	application := createTestApplication(t, startup.ID)

	stage := models.Stage{Name: "Ideation", SequenceOrder: 1, DurationMonths: 2}
	require.NoError(t, db.DB.Create(&stage).Error)
	deliverable := models.Deliverable{
		Title: "Business Plan", Description: "v1", Status: models.DeliverableStatusPending,
		StageID: stage.ID, StartupID: startup.ID,
	}
	require.NoError(t, db.DB.Create(&deliverable).Error)

	base := map[string]any{
		"drive_file_id": "drv-1",
		"name":          "pitch.pdf",
		"url":           "https://drive.example.com/drv-1",
		"file_type":     "pdf",
	}

	// Neither link set.
	w := doRequest(t, r, http.MethodPost, "/api/files/upload", token, base)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ambiguous_linkage", decodeObject(t, w)["code"])

	// Both links set.
	both := map[string]any{}
	for k, v := range base {
		both[k] = v
	}
	both["deliverable_id"] = deliverable.ID
	both["application_id"] = application.ID

	w = doRequest(t, r, http.MethodPost, "/api/files/upload", token, both)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ambiguous_linkage", decodeObject(t, w)["code"])

	// Exactly one link.
	one := map[string]any{}
	for k, v := range base {
		one[k] = v
	}
	one["application_id"] = application.ID

	w = doRequest(t, r, http.MethodPost, "/api/files/upload", token, one)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeObject(t, w)
	assert.Equal(t, float64(uploader.ID), body["user_id"])
	assert.Equal(t, float64(application.ID), body["application_id"])
	assert.Nil(t, body["deliverable_id"])
}

func TestListAndGetFiles(t *testing.T) {
	r := setupTest(t)

	uploader := createTestUser(t, "Uploader", "up@example.com", "student")
	token := tokenFor(t, uploader)

	startup := createTestStartup(t, "CleanWave", nil)
	application := createTestApplication(t, startup.ID)

	appID := application.ID
	file := models.FileMetadata{
		DriveFileID: "drv-2", Name: "deck.pdf", URL: "https://drive.example.com/drv-2",
		FileType: "pdf", ApplicationID: &appID, UserID: uploader.ID,
	}
	require.NoError(t, db.DB.Create(&file).Error)

	w := doRequest(t, r, http.MethodGet, "/api/files", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeArray(t, w), 1)

	w = doRequest(t, r, http.MethodGet, "/api/files/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "deck.pdf", decodeObject(t, w)["name"])

	w = doRequest(t, r, http.MethodGet, "/api/files/999", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
