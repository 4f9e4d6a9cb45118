package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ultracare-admin/internal/dashboard/domain"
	"ultracare-admin/internal/dashboard/views"
)

func TestBuildDevicesXLSX(t *testing.T) {
	view := views.BuildDevicesView([]domain.Device{
		{Key: "1", DeviceID: "D1", Name: "Hallway", IsActive: true},
		{Key: "2", DeviceID: "D2", OwnerUserID: "U2"},
	})
	payload, err := BuildDevicesXLSX(view)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("devices", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Device ID", header)

	rows, err := f.GetRows("devices")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "D1", rows[1][0])
	assert.Equal(t, "Online", rows[1][4])
	assert.Equal(t, views.Unassigned, rows[1][2])

	online, err := f.GetCellValue("summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "1", online)
}

func TestBuildAlertsXLSXCarriesFilter(t *testing.T) {
	view := views.AlertsView{
		Filter: "FALL_DETECTED",
		Rows:   []views.AlertRow{{Key: "a1", Timestamp: "Jan 2, 2026, 03:04 PM", TypeLabel: "Fall Detected", DeviceID: "D1", HouseholdEmail: "a@x.com", Resident: "Ada", Confidence: "91%", Status: domain.AlertStatusNew}},
		Counts: views.AlertStatusCounts{New: 1},
	}
	payload, err := BuildAlertsXLSX(view)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	household, err := f.GetCellValue("alerts", "D2")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", household)
	filter, err := f.GetCellValue("summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "FALL_DETECTED", filter)
}

func TestBuildSubscriptionsXLSX(t *testing.T) {
	payload, err := BuildSubscriptionsXLSX([]views.SubscriptionRow{
		{ID: "u1", Email: "a@x.com", CurrentPlan: "PRO", CurrentStatus: "ACTIVE"},
		{ID: "u2", Email: "b@x.com", CurrentPlan: "-", CurrentStatus: "-"},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	pro, err := f.GetCellValue("summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "1", pro)
}

func TestBuildAlertsPDF(t *testing.T) {
	view := views.AlertsView{
		Filter: views.FilterAll,
		Rows:   []views.AlertRow{{Key: "a1", TypeLabel: "No Movement", Resident: "Zoë", Status: domain.AlertStatusResolved}},
	}
	payload, err := BuildAlertsPDF(view, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF-")))
}
