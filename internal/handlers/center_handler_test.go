package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/recycletrack/recycletrack-backend/internal/dto"
	"github.com/recycletrack/recycletrack-backend/internal/models"
	"github.com/recycletrack/recycletrack-backend/internal/services"
	"github.com/recycletrack/recycletrack-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func centerListApp(t *testing.T) (*fiber.App, *models.RecyclingCenter, *models.RecyclingCenter) {
	t.Helper()
	svc := services.NewCenterService(testutil.OpenTestDB(t))

	plastic, err := svc.Create(&dto.CenterRequest{
		Name: "Plastic Hub", Address: "Industrial Area",
		AcceptedMaterials: "Plastic, PET bottles",
	})
	require.NoError(t, err)
	paper, err := svc.Create(&dto.CenterRequest{
		Name: "Paper Point", Address: "CBD",
		AcceptedMaterials: "Paper, Cardboard",
	})
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/centers", NewCenterHandler(svc).List)
	return app, plastic, paper
}

func getFilteredCenters(t *testing.T, app *fiber.App, url string) dto.FilteredCentersResponse {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body dto.FilteredCentersResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestListFilteredKeepsSurvivingSelection(t *testing.T) {
	app, plastic, _ := centerListApp(t)

	body := getFilteredCenters(t, app, "/centers?waste_type=plastic&selected="+plastic.ID.String())
	require.Len(t, body.Centers, 1)
	require.NotNil(t, body.Selected)
	assert.Equal(t, plastic.ID, *body.Selected)
}

func TestListFilteredCorrectsStaleSelection(t *testing.T) {
	app, plastic, paper := centerListApp(t)

	// The previously selected paper center does not accept plastic, so the
	// selection falls back to the first match.
	body := getFilteredCenters(t, app, "/centers?waste_type=plastic&selected="+paper.ID.String())
	require.Len(t, body.Centers, 1)
	require.NotNil(t, body.Selected)
	assert.Equal(t, plastic.ID, *body.Selected)
}

func TestListFilteredNoMatchClearsSelection(t *testing.T) {
	app, _, paper := centerListApp(t)

	body := getFilteredCenters(t, app, "/centers?waste_type=glass&selected="+paper.ID.String())
	assert.Empty(t, body.Centers)
	assert.Nil(t, body.Selected)
}
