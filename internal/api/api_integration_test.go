// internal/api/api_integration_test.go
package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "user-service/internal"
)

// testApp is the global application instance for testing.
var testApp *app.Application

// testServer is the httptest server.
var testServer *httptest.Server

// TestMain initializes the full application against a throwaway SQLite database.
// Set DB_URL to run the same tests against PostgreSQL instead.
func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	if os.Getenv("DB_URL") == "" {
		dir, err := os.MkdirTemp("", "user-service-test")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create temp dir: %v\n", err)
			return 1
		}
		defer os.RemoveAll(dir)
		os.Setenv("DB_URL", "sqlite:///"+filepath.Join(dir, "users.db"))
	}

	testApp = app.NewApplication()
	if err := testApp.Initialize(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize test application: %v\n", err)
		return 1
	}

	testServer = httptest.NewServer(testApp.HTTPHandler)
	defer testServer.Close()

	code := m.Run()

	if err := testApp.Shutdown(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to shutdown test application: %v\n", err)
		return 1
	}
	return code
}

// clearDatabase removes every user so each test starts from an empty table.
func clearDatabase(t *testing.T) {
	_, err := testApp.DB.Exec("DELETE FROM users")
	require.NoError(t, err, "Failed to clear users table")
}

// makeRequest sends an HTTP request to the test server and decodes the JSON body.
func makeRequest(t *testing.T, method, path, body string) (int, map[string]interface{}) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, testServer.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp.StatusCode, payload
}

// createUser creates a user through the API and returns its id.
func createUser(t *testing.T, username, email string) int64 {
	status, body := makeRequest(t, http.MethodPost, "/users",
		fmt.Sprintf(`{"username": %q, "email": %q}`, username, email))
	require.Equal(t, http.StatusCreated, status, body)
	user := body["user"].(map[string]interface{})
	return int64(user["id"].(float64))
}

func userPath(id int64) string {
	return fmt.Sprintf("/users/%d", id)
}

func TestHealthIntegration(t *testing.T) {
	status, body := makeRequest(t, http.MethodGet, "/test", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Test route is working!", body["message"])
}

func TestCreateAndGetIntegration(t *testing.T) {
	clearDatabase(t)

	t.Run("CreateThenGet", func(t *testing.T) {
		status, body := makeRequest(t, http.MethodPost, "/users", `{"username": "alice", "email": "alice@example.com"}`)
		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "User created", body["message"])

		created := body["user"].(map[string]interface{})
		id := int64(created["id"].(float64))
		assert.Positive(t, id)

		status, body = makeRequest(t, http.MethodGet, userPath(id), "")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, created, body["user"])
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		status, body := makeRequest(t, http.MethodPost, "/users", `{"username": "alice", "email": "other@example.com"}`)
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.True(t, strings.HasPrefix(body["message"].(string), "Error creating user: "))
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		status, _ := makeRequest(t, http.MethodPost, "/users", `{"username": "alicia", "email": "alice@example.com"}`)
		assert.Equal(t, http.StatusInternalServerError, status)
	})

	t.Run("MissingField", func(t *testing.T) {
		status, body := makeRequest(t, http.MethodPost, "/users", `{"email": "nobody@example.com"}`)
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "Error creating user: missing required field 'username'", body["message"])
	})

	t.Run("UnknownID", func(t *testing.T) {
		status, body := makeRequest(t, http.MethodGet, "/users/987654", "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "User not found", body["message"])
	})
}

func TestListIntegration(t *testing.T) {
	clearDatabase(t)

	status, body := makeRequest(t, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []interface{}{}, body["users"])

	names := []string{"u1", "u2", "u3"}
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		ids = append(ids, createUser(t, name, name+"@example.com"))
	}

	status, body = makeRequest(t, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, status)

	users := body["users"].([]interface{})
	require.Len(t, users, len(names))
	for i, raw := range users {
		user := raw.(map[string]interface{})
		assert.Equal(t, float64(ids[i]), user["id"])
		assert.Equal(t, names[i], user["username"])
		assert.Equal(t, names[i]+"@example.com", user["email"])
	}
}

func TestUpdateIntegration(t *testing.T) {
	clearDatabase(t)
	id := createUser(t, "carol", "carol@example.com")
	createUser(t, "dave", "dave@example.com")

	t.Run("EmailOnly", func(t *testing.T) {
		status, body := makeRequest(t, http.MethodPut, userPath(id), `{"email": "carol@new.example.com"}`)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "User updated", body["message"])

		user := body["user"].(map[string]interface{})
		assert.Equal(t, "carol", user["username"])
		assert.Equal(t, "carol@new.example.com", user["email"])

		_, body = makeRequest(t, http.MethodGet, userPath(id), "")
		assert.Equal(t, user, body["user"])
	})

	t.Run("EmptyPatch", func(t *testing.T) {
		status, body := makeRequest(t, http.MethodPut, userPath(id), `{}`)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "carol", body["user"].(map[string]interface{})["username"])
	})

	t.Run("ConflictLeavesRowUnchanged", func(t *testing.T) {
		status, body := makeRequest(t, http.MethodPut, userPath(id), `{"username": "dave", "email": "dave2@example.com"}`)
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.True(t, strings.HasPrefix(body["message"].(string), "Error updating user: "))

		_, body = makeRequest(t, http.MethodGet, userPath(id), "")
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "carol", user["username"])
		assert.Equal(t, "carol@new.example.com", user["email"])
	})

	t.Run("UnknownID", func(t *testing.T) {
		status, body := makeRequest(t, http.MethodPut, "/users/987654", `{"email": "x@example.com"}`)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "User not found", body["message"])
	})
}

func TestDeleteIntegration(t *testing.T) {
	clearDatabase(t)
	id := createUser(t, "erin", "erin@example.com")

	status, body := makeRequest(t, http.MethodDelete, userPath(id), "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User deleted", body["message"])

	status, _ = makeRequest(t, http.MethodGet, userPath(id), "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = makeRequest(t, http.MethodDelete, userPath(id), "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", body["message"])
}
