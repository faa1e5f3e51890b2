package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/fieldwatch/emergency-monitor/internal/pkg/application/audio"
	"github.com/fieldwatch/emergency-monitor/internal/pkg/application/monitor"
	"github.com/fieldwatch/emergency-monitor/internal/pkg/infrastructure/repositories/journal"
	"github.com/fieldwatch/emergency-monitor/pkg/client"
	"github.com/fieldwatch/emergency-monitor/pkg/types"
)

func TestGetEmergenciesHandler(t *testing.T) {
	is, m := testSetup(t, alarmingUsers("user-1", "user-2"))

	err := m.Poll(context.Background(), true)
	is.NoErr(err)

	req := httptest.NewRequest(http.MethodGet, "/api/v0/emergencies", nil)
	res := httptest.NewRecorder()

	getEmergenciesHandler(zerolog.Nop(), m).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusOK)

	response := struct {
		Users []types.User  `json:"users"`
		State monitor.State `json:"state"`
	}{}
	is.NoErr(json.Unmarshal(res.Body.Bytes(), &response))
	is.Equal(len(response.Users), 2)
	is.Equal(response.State.PreviousEmergencyCount, 2)
}

func TestRefreshEmergenciesHandler(t *testing.T) {
	is, m := testSetup(t, alarmingUsers("user-1"))

	req := httptest.NewRequest(http.MethodPost, "/api/v0/emergencies/refresh", nil)
	res := httptest.NewRecorder()

	refreshEmergenciesHandler(zerolog.Nop(), m).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusOK)
	is.Equal(len(m.Roster()), 1)
}

func TestResolveEmergencyHandler(t *testing.T) {
	c := &client.TrackingClientMock{
		GetUsersFunc: func(ctx context.Context) ([]types.User, error) {
			return []types.User{}, nil
		},
		SetEmergencyAlarmFunc: func(ctx context.Context, userID string, active bool) error {
			return nil
		},
	}
	is := is.New(t)
	m := monitor.New(c, noopEngine(), nil, nil, nil, noopJournal(), monitor.DefaultConfig())

	router := chi.NewRouter()
	router.Patch("/api/v0/emergencies/{userID}", resolveEmergencyHandler(zerolog.Nop(), m))

	body := bytes.NewBufferString(`{"emergencyAlarm": false}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/v0/emergencies/user-1", body)
	res := httptest.NewRecorder()

	router.ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusOK)
	is.Equal(len(c.SetEmergencyAlarmCalls()), 1)
	is.Equal(c.SetEmergencyAlarmCalls()[0].UserID, "user-1")
	is.Equal(c.SetEmergencyAlarmCalls()[0].Active, false)
}

func TestResolveRejectsRaisingAnAlarm(t *testing.T) {
	is, m := testSetup(t, alarmingUsers("user-1"))

	router := chi.NewRouter()
	router.Patch("/api/v0/emergencies/{userID}", resolveEmergencyHandler(zerolog.Nop(), m))

	body := bytes.NewBufferString(`{"emergencyAlarm": true}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/v0/emergencies/user-1", body)
	res := httptest.NewRecorder()

	router.ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusBadRequest)
}

func TestSidebarRoundTrip(t *testing.T) {
	is, m := testSetup(t, alarmingUsers())

	body := bytes.NewBufferString(`{"open": true}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v0/sidebar", body)
	res := httptest.NewRecorder()

	putSidebarHandler(zerolog.Nop(), m).ServeHTTP(res, req)
	is.Equal(res.Code, http.StatusOK)

	req = httptest.NewRequest(http.MethodGet, "/api/v0/sidebar", nil)
	res = httptest.NewRecorder()

	getSidebarHandler(zerolog.Nop(), m).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusOK)

	var s sidebarState
	is.NoErr(json.Unmarshal(res.Body.Bytes(), &s))
	is.True(s.Open)
}

func TestEnableAudioHandler(t *testing.T) {
	is := is.New(t)
	engine := &audio.EngineMock{
		EnableFunc: func(ctx context.Context) bool { return true },
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v0/audio/enable", nil)
	res := httptest.NewRecorder()

	enableAudioHandler(zerolog.Nop(), engine).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusOK)
	is.Equal(len(engine.EnableCalls()), 1)

	var s audioState
	is.NoErr(json.Unmarshal(res.Body.Bytes(), &s))
	is.True(s.Enabled)
}

func TestTestAudioHandlerReportsBlockedPlayback(t *testing.T) {
	is := is.New(t)
	engine := &audio.EngineMock{
		TestPlayFunc: func(ctx context.Context) (bool, error) {
			return false, audio.ErrNotAllowed
		},
		EnabledFunc: func() bool { return true },
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v0/audio/test", nil)
	res := httptest.NewRecorder()

	testAudioHandler(zerolog.Nop(), engine).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusOK)

	var result audioTestResult
	is.NoErr(json.Unmarshal(res.Body.Bytes(), &result))
	is.Equal(result.Played, false)
	is.Equal(result.Reason, audio.ErrNotAllowed.Error())
}

func TestGetJournalHandler(t *testing.T) {
	is := is.New(t)
	j := &journal.JournalMock{
		GetLatestFunc: func(ctx context.Context, limit int) ([]types.JournalEntry, error) {
			return []types.JournalEntry{
				{ID: "entry-1", UserID: "user-1", Entry: types.JournalEntryRaised, ObservedAt: time.Now().UTC()},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v0/journal?limit=10", nil)
	res := httptest.NewRecorder()

	getJournalHandler(zerolog.Nop(), j).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusOK)
	is.Equal(len(j.GetLatestCalls()), 1)
	is.Equal(j.GetLatestCalls()[0].Limit, 10)

	var response journalResponse
	is.NoErr(json.Unmarshal(res.Body.Bytes(), &response))
	is.Equal(len(response.Entries), 1)
}

func TestGetJournalHandlerRejectsBadLimit(t *testing.T) {
	is := is.New(t)
	j := &journal.JournalMock{}

	req := httptest.NewRequest(http.MethodGet, "/api/v0/journal?limit=bananas", nil)
	res := httptest.NewRecorder()

	getJournalHandler(zerolog.Nop(), j).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusBadRequest)
	is.Equal(len(j.GetLatestCalls()), 0)
}

func testSetup(t *testing.T, users []types.User) (*is.I, monitor.Monitor) {
	is := is.New(t)

	c := &client.TrackingClientMock{
		GetUsersFunc: func(ctx context.Context) ([]types.User, error) {
			return users, nil
		},
	}

	m := monitor.New(c, noopEngine(), nil, nil, nil, noopJournal(), monitor.DefaultConfig())
	return is, m
}

func alarmingUsers(ids ...string) []types.User {
	users := make([]types.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, types.User{ID: id, EmergencyAlarm: true})
	}
	return users
}

func noopEngine() *audio.EngineMock {
	return &audio.EngineMock{
		PlayFunc:    func(ctx context.Context) (bool, error) { return true, nil },
		EnabledFunc: func() bool { return true },
	}
}

func noopJournal() *journal.JournalMock {
	return &journal.JournalMock{
		AddFunc: func(ctx context.Context, entry types.JournalEntry) error {
			return nil
		},
	}
}
