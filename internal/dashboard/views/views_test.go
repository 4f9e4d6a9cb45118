package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ultracare-admin/internal/dashboard/domain"
	"ultracare-admin/internal/dashboard/normalize"
)

func TestHouseholdEmailJoin(t *testing.T) {
	devices := normalize.Devices([]byte(`{"devices": [{"deviceId": "D1", "userId": "U1"}]}`))
	admins := normalize.HouseholdAdmins([]byte(`{"users": [{"id": "U1", "email": "a@x.com"}]}`))
	owners := NewOwnerIndex(devices)
	emails := NewEmailIndex(admins)

	known := domain.Alert{DeviceID: "D1"}
	assert.Equal(t, "a@x.com", HouseholdEmail(known, owners, emails))

	unknown := domain.Alert{DeviceID: "D9"}
	assert.Equal(t, Unassigned, HouseholdEmail(unknown, owners, emails))

	explicit := domain.Alert{DeviceID: "D1", HouseholdEmail: "direct@x.com"}
	assert.Equal(t, "direct@x.com", HouseholdEmail(explicit, owners, emails))

	direct := domain.Alert{HouseholdUserID: "U1"}
	assert.Equal(t, "a@x.com", HouseholdEmail(direct, owners, emails))
}

func TestOwnerIndexSkipsDevicesWithoutID(t *testing.T) {
	owners := NewOwnerIndex([]domain.Device{{DeviceID: "-", OwnerUserID: "U1"}, {DeviceID: "D2", OwnerUserID: "U2"}})
	assert.Len(t, owners, 1)
	assert.Equal(t, "U2", owners["D2"])
}

func TestSortByTimestampDesc(t *testing.T) {
	alerts := []domain.Alert{
		{Key: "old", Timestamp: "2026-01-01T08:00:00Z"},
		{Key: "new", Timestamp: "2026-01-03T08:00:00Z"},
		{Key: "mid", Timestamp: "2026-01-02T08:00:00Z"},
	}
	sorted := SortByTimestampDesc(alerts)
	assert.Equal(t, []string{"new", "mid", "old"}, alertKeys(sorted))
	assert.Equal(t, "old", alerts[0].Key, "input must not be reordered")
}

func TestSortKeepsUnparsableTimestamps(t *testing.T) {
	alerts := []domain.Alert{
		{Key: "a", Timestamp: "2026-01-01T08:00:00Z"},
		{Key: "bad", Timestamp: "yesterday"},
		{Key: "b", Timestamp: "2026-01-03T08:00:00Z"},
	}
	sorted := SortByTimestampDesc(alerts)
	require.Len(t, sorted, 3)
	// bad compares equal to both neighbours, so a and b are never swapped past it.
	assert.Equal(t, []string{"a", "bad", "b"}, alertKeys(sorted))
}

func TestBuildAlertsViewFiltersAndCounts(t *testing.T) {
	alerts := normalize.Alerts([]byte(`{"alerts": [
		{"id": "1", "type": "fall", "status": "NEW", "timestamp": "2026-01-01T08:00:00Z", "deviceId": "D1"},
		{"id": "2", "type": "no movement", "status": "ACKNOWLEDGED", "timestamp": "2026-01-02T08:00:00Z"},
		{"id": "3", "type": "battery_low", "status": "NEW", "timestamp": "2026-01-03T08:00:00Z"},
		{"id": "4", "type": "FALL_DETECTED", "status": "resolved", "timestamp": "2026-01-04T08:00:00Z"}
	]}`))
	devices := []domain.Device{{DeviceID: "D1", OwnerUserID: "U1"}}
	admins := []domain.User{{ID: "U1", Email: "a@x.com"}}

	all := BuildAlertsView(alerts, devices, admins, "")
	assert.Equal(t, FilterAll, all.Filter)
	assert.Equal(t, []string{"4", "2", "1"}, rowKeys(all.Rows))
	assert.Equal(t, AlertStatusCounts{New: 1, Acknowledged: 1, Resolved: 1}, all.Counts)
	assert.Equal(t, "a@x.com", all.Rows[2].HouseholdEmail)
	assert.Equal(t, "Fall Detected", all.Rows[2].TypeLabel)
	assert.Equal(t, "Unknown", all.Rows[1].DeviceID)

	falls := BuildAlertsView(alerts, devices, admins, "FALL_DETECTED")
	assert.Equal(t, []string{"4", "1"}, rowKeys(falls.Rows))
	assert.Equal(t, AlertStatusCounts{New: 1, Resolved: 1}, falls.Counts)

	bogus := BuildAlertsView(alerts, devices, admins, "DROP TABLE")
	assert.Equal(t, FilterAll, bogus.Filter)
}

func TestBuildDevicesViewCounts(t *testing.T) {
	view := BuildDevicesView([]domain.Device{
		{Key: "1", DeviceID: "D1", IsActive: true, CreatedAt: "2026-02-03T10:00:00Z"},
		{Key: "2", DeviceID: "D2", OwnerUserID: "U2"},
		{Key: "3", DeviceID: "D3"},
	})
	assert.Equal(t, DeviceCounts{Online: 1, Offline: 2}, view.Counts)
	assert.Equal(t, Unassigned, view.Rows[0].Household)
	assert.Equal(t, "Feb 3, 2026", view.Rows[0].Registered)
	assert.Equal(t, "Never", view.Rows[0].LastActive)
	assert.Equal(t, "U2", view.Rows[1].Household)
}

func TestDraftChangeAndReset(t *testing.T) {
	users := []domain.User{{ID: "U1", Key: "U1", Subscription: &domain.Subscription{Plan: domain.PlanFree, Status: domain.SubscriptionActive}}}
	book := NewDraftBook()
	book.Commit(users)
	assert.False(t, book.IsChanged("U1"))

	draft := book.Draft("U1")
	draft.Plan = domain.PlanPro
	book.Edit("U1", draft)
	assert.True(t, book.IsChanged("U1"))

	book.Reset("U1")
	assert.False(t, book.IsChanged("U1"))
	assert.Equal(t, SubscriptionDraft{Plan: domain.PlanFree, Status: domain.SubscriptionActive}, book.Draft("U1"))
}

func TestDraftEqualToCommittedIsUnchanged(t *testing.T) {
	book := NewDraftBook()
	book.Commit([]domain.User{{Key: "U1"}})
	book.Edit("U1", SubscriptionDraft{Plan: domain.PlanFree, Status: domain.SubscriptionPendingPayment})
	assert.False(t, book.IsChanged("U1"))
}

func TestDraftSurvivesRefetchUntilCommitted(t *testing.T) {
	book := NewDraftBook()
	book.Commit([]domain.User{{Key: "U1"}, {Key: "U2"}})
	book.Edit("U1", SubscriptionDraft{Plan: domain.PlanPro, Status: domain.SubscriptionActive})
	book.Edit("U2", SubscriptionDraft{Plan: domain.PlanPro, Status: domain.SubscriptionActive})

	book.Commit([]domain.User{{Key: "U1", Subscription: &domain.Subscription{Plan: domain.PlanPro, Status: domain.SubscriptionActive}}})
	assert.False(t, book.IsChanged("U1"))
	assert.False(t, book.IsChanged("U2"))
	assert.Equal(t, SubscriptionDraft{}, book.Draft("U2"))
}

func TestParseDraft(t *testing.T) {
	draft, err := ParseDraft("pro", " active ")
	require.NoError(t, err)
	assert.Equal(t, SubscriptionDraft{Plan: domain.PlanPro, Status: domain.SubscriptionActive}, draft)

	_, err = ParseDraft("ENTERPRISE", "ACTIVE")
	assert.ErrorIs(t, err, ErrInvalidDraft)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "Jan 2, 2026, 03:04 PM", FormatTimestamp("2026-01-02T15:04:00Z"))
	assert.Equal(t, "-", FormatTimestamp("garbage"))
	assert.Equal(t, "-", FormatShortTimestamp(""))
	assert.Equal(t, "87%", FormatConfidence(ptr(87)))
	assert.Equal(t, "-", FormatConfidence(nil))
	assert.Equal(t, "12", FormatCount(12))

	parsed, ok := ParseTimestamp("1767225600000")
	require.True(t, ok)
	assert.Equal(t, 2026, parsed.Year())
}

func TestOverviewMetrics(t *testing.T) {
	metrics := OverviewMetrics(domain.Stats{TotalHouseholdAdmins: 3, TotalDevices: 9})
	require.Len(t, metrics, 4)
	assert.Equal(t, "3", metrics[0].Value)
	assert.Equal(t, "0", metrics[1].Value)
	assert.Equal(t, "9", metrics[2].Value)
}

func TestBuildUserRowsFlagsSelf(t *testing.T) {
	rows := BuildUserRows([]domain.User{{ID: "U1", Key: "U1", Email: "a@x.com"}, {ID: "U2", Key: "U2"}}, "U1")
	assert.True(t, rows[0].IsSelf)
	assert.False(t, rows[1].IsSelf)
	assert.Equal(t, "-", rows[0].Plan)
}

func alertKeys(alerts []domain.Alert) []string {
	keys := make([]string, 0, len(alerts))
	for _, alert := range alerts {
		keys = append(keys, alert.Key)
	}
	return keys
}

func rowKeys(rows []AlertRow) []string {
	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, row.Key)
	}
	return keys
}

func ptr(v float64) *float64 {
	return &v
}
