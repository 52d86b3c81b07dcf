package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/recycletrack/recycletrack-backend/internal/dto"
	"github.com/recycletrack/recycletrack-backend/internal/models"
	"github.com/recycletrack/recycletrack-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCenters(t *testing.T, svc *CenterService) (plastic, paper, mixed *models.RecyclingCenter) {
	var err error
	plastic, err = svc.Create(&dto.CenterRequest{
		Name: "Plastic Hub", Address: "Industrial Area",
		Latitude: -1.31, Longitude: 36.85, AcceptedMaterials: "Plastic, PET bottles",
	})
	require.NoError(t, err)
	paper, err = svc.Create(&dto.CenterRequest{
		Name: "Paper Point", Address: "CBD",
		Latitude: -1.29, Longitude: 36.82, AcceptedMaterials: "Paper, Cardboard",
	})
	require.NoError(t, err)
	mixed, err = svc.Create(&dto.CenterRequest{
		Name: "Everything Depot", Address: "Westlands",
		Latitude: -1.27, Longitude: 36.80, AcceptedMaterials: "Plastic, Paper, Glass, Metal",
	})
	require.NoError(t, err)
	return plastic, paper, mixed
}

func TestForWasteTypeFiltersCaseInsensitively(t *testing.T) {
	svc := NewCenterService(testutil.OpenTestDB(t))
	plastic, _, mixed := seedCenters(t, svc)

	centers, err := svc.ForWasteType("plastic")
	require.NoError(t, err)
	require.Len(t, centers, 2)

	ids := []uuid.UUID{centers[0].ID, centers[1].ID}
	assert.Contains(t, ids, plastic.ID)
	assert.Contains(t, ids, mixed.ID)
}

func TestForWasteTypeNoMatches(t *testing.T) {
	svc := NewCenterService(testutil.OpenTestDB(t))
	seedCenters(t, svc)

	centers, err := svc.ForWasteType("e-waste")
	require.NoError(t, err)
	assert.Empty(t, centers)
}

func TestResolveSelection(t *testing.T) {
	a := models.RecyclingCenter{ID: uuid.New()}
	b := models.RecyclingCenter{ID: uuid.New()}
	filtered := []models.RecyclingCenter{a, b}

	// Surviving selection stays.
	sel := ResolveSelection(filtered, &b.ID)
	require.NotNil(t, sel)
	assert.Equal(t, b.ID, *sel)

	// Filtered-out selection resets to the first match.
	gone := uuid.New()
	sel = ResolveSelection(filtered, &gone)
	require.NotNil(t, sel)
	assert.Equal(t, a.ID, *sel)

	// No matches resets to empty.
	assert.Nil(t, ResolveSelection(nil, &gone))
}

func TestNearbySortsByDistance(t *testing.T) {
	svc := NewCenterService(testutil.OpenTestDB(t))
	seedCenters(t, svc)

	// Query from the CBD: Paper Point should come first.
	centers, err := svc.Nearby(-1.29, 36.82, 50000)
	require.NoError(t, err)
	require.Len(t, centers, 3)
	assert.Equal(t, "Paper Point", centers[0].Name)
	for i := 1; i < len(centers); i++ {
		assert.LessOrEqual(t, *centers[i-1].DistanceMeters, *centers[i].DistanceMeters)
	}
}

func TestNearbyRespectsRadius(t *testing.T) {
	svc := NewCenterService(testutil.OpenTestDB(t))
	seedCenters(t, svc)

	centers, err := svc.Nearby(-1.29, 36.82, 100)
	require.NoError(t, err)
	assert.Len(t, centers, 1)
}

func TestInactiveCentersHiddenFromBooking(t *testing.T) {
	svc := NewCenterService(testutil.OpenTestDB(t))
	plastic, _, mixed := seedCenters(t, svc)

	inactive := false
	_, err := svc.Update(mixed.ID, &dto.CenterRequest{
		Name: mixed.Name, Address: mixed.Address,
		Latitude: mixed.Latitude, Longitude: mixed.Longitude,
		AcceptedMaterials: mixed.AcceptedMaterials, IsActive: &inactive,
	})
	require.NoError(t, err)

	centers, err := svc.ForWasteType("Plastic")
	require.NoError(t, err)
	require.Len(t, centers, 1)
	assert.Equal(t, plastic.ID, centers[0].ID)
}

func TestDeleteCenter(t *testing.T) {
	svc := NewCenterService(testutil.OpenTestDB(t))
	plastic, _, _ := seedCenters(t, svc)

	require.NoError(t, svc.Delete(plastic.ID))
	assert.ErrorIs(t, svc.Delete(plastic.ID), ErrCenterNotFound)

	_, err := svc.Get(plastic.ID)
	assert.ErrorIs(t, err, ErrCenterNotFound)
}
