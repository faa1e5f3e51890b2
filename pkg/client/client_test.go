package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matryer/is"
)

func TestGetUsers(t *testing.T) {
	is := is.New(t)

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.Method, http.MethodGet)
		is.Equal(r.URL.Path, "/users")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(usersJSON))
	}))
	defer backend.Close()

	c, err := New(context.Background(), backend.URL, "", "", "")
	is.NoErr(err)

	users, err := c.GetUsers(context.Background())
	is.NoErr(err)
	is.Equal(len(users), 2)
	is.Equal(users[0].Name(), "Maria Lindgren")
	is.True(users[1].EmergencyAlarm)
}

func TestGetUsersSendsAccessToken(t *testing.T) {
	is := is.New(t)

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.URL.Path, "/token")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"testtoken","token_type":"Bearer","expires_in":3600}`))
	}))
	defer tokenServer.Close()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.Header.Get("Authorization"), "Bearer testtoken")
		w.Write([]byte(`{"users":[]}`))
	}))
	defer backend.Close()

	c, err := New(context.Background(), backend.URL, tokenServer.URL+"/token", "monitor", "secret")
	is.NoErr(err)

	_, err = c.GetUsers(context.Background())
	is.NoErr(err)
}

func TestSetEmergencyAlarm(t *testing.T) {
	is := is.New(t)

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.Method, http.MethodPut)
		is.Equal(r.URL.Path, "/users/user-1/emergency")
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	c, err := New(context.Background(), backend.URL, "", "", "")
	is.NoErr(err)

	err = c.SetEmergencyAlarm(context.Background(), "user-1", false)
	is.NoErr(err)
}

func TestSetEmergencyAlarmPropagatesBackendFailure(t *testing.T) {
	is := is.New(t)

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer backend.Close()

	c, err := New(context.Background(), backend.URL, "", "", "")
	is.NoErr(err)

	err = c.SetEmergencyAlarm(context.Background(), "user-1", false)
	is.True(err != nil)
}

const usersJSON string = `{
	"users": [
		{
			"_id": "user-1",
			"firstName": "Maria",
			"lastName": "Lindgren",
			"rank": "Sergeant",
			"currentLocation": "North Gate",
			"assignedLocation": "North Gate",
			"atAssignedLocation": true,
			"emergencyAlarm": false
		},
		{
			"_id": "user-2",
			"firstName": "Johan",
			"lastName": "Berg",
			"rank": "Constable",
			"currentLocation": "Harbour",
			"assignedLocation": "Not Assigned",
			"atAssignedLocation": false,
			"emergencyAlarm": true
		}
	]
}`
