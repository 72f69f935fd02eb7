package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/apps/api/echo"
	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/session"
	"github.com/trezcool/shule/core/user"
	testutil "github.com/trezcool/shule/tests"
)

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sid" {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func Test_userApi_register(t *testing.T) {
	app := setup(t)
	testutil.CreateUser(t, app.usrRepo, "Priya Patel", "priya", "")

	t.Run("success", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/api/register", []byte(`{
			"username": " Rahul ",
			"password": "Blue-Elephant-42",
			"fullName": "Rahul Kumar",
			"classGrade": "10",
			"rollNumber": "23",
			"schoolCode": "SCH001"
		}`))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var usr user.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &usr))
		assert.Equal(t, user.User{
			ID:         2,
			Username:   "rahul",
			FullName:   "Rahul Kumar",
			ClassGrade: "10",
			RollNumber: "23",
			SchoolCode: "SCH001",
		}, usr)
		assert.NotContains(t, rec.Body.String(), "password")

		cookie := sessionCookie(t, rec)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
		assert.Equal(t, 1, app.sessions.Len())

		// the new session is immediately usable
		req, rec = newRequest(http.MethodGet, "/api/user")
		req.AddCookie(cookie)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	tests := []httpTest{
		{
			name:     "missing data",
			method:   http.MethodPost,
			path:     "/api/register",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "Invalid user data",
				Errors: []core.FieldError{
					{Field: "username", Error: "this field is required"},
					{Field: "password", Error: "this field is required"},
					{Field: "fullName", Error: "this field is required"},
					{Field: "classGrade", Error: "this field is required"},
					{Field: "rollNumber", Error: "this field is required"},
					{Field: "schoolCode", Error: "this field is required"},
				},
			}),
		},
		{
			name:   "weak password",
			method: http.MethodPost,
			path:   "/api/register",
			body: []byte(`{"username":"anita","password":"abc","fullName":"Anita Rao",
				"classGrade":"9","rollNumber":"4","schoolCode":"SCH001"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "Invalid user data",
				Errors:  []core.FieldError{{Field: "password", Error: "password must be at least 6 characters"}},
			}),
		},
		{
			name:   "username taken",
			method: http.MethodPost,
			path:   "/api/register",
			body: []byte(`{"username":"PRIYA","password":"Blue-Elephant-42","fullName":"Priya Shah",
				"classGrade":"9","rollNumber":"4","schoolCode":"SCH001"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "invalid user data",
				Errors:  []core.FieldError{{Field: "username", Error: user.ErrUsernameExists.Error()}},
			}),
		},
	}
	runHTTPTests(t, app, tests)
	assert.Equal(t, 2, app.db.Counts().Users)
}

func Test_userApi_login(t *testing.T) {
	app := setup(t)
	usr := testutil.CreateUser(t, app.usrRepo, "Rahul Kumar", "rahul", "Blue-Elephant-42")

	t.Run("success", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/api/login", []byte(`{"username":"Rahul","password":"Blue-Elephant-42"}`))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, usr)}, rec)
		assert.NotEmpty(t, sessionCookie(t, rec).Value)
	})

	tests := []httpTest{
		{
			name:     "missing credentials",
			method:   http.MethodPost,
			path:     "/api/login",
			body:     []byte(`{"username":"rahul"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "Missing username or password",
				Errors:  []core.FieldError{{Field: "password", Error: "this field is required"}},
			}),
		},
		{
			name:     "wrong password",
			method:   http.MethodPost,
			path:     "/api/login",
			body:     []byte(`{"username":"rahul","password":"Red-Elephant-42"}`),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Message: "Invalid username or password"}),
		},
		{
			name:     "unknown user",
			method:   http.MethodPost,
			path:     "/api/login",
			body:     []byte(`{"username":"priya","password":"Blue-Elephant-42"}`),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Message: "Invalid username or password"}),
		},
	}
	runHTTPTests(t, app, tests)
	assert.Equal(t, 1, app.sessions.Len())
}

func Test_userApi_logout(t *testing.T) {
	app := setup(t)
	usr := testutil.CreateUser(t, app.usrRepo, "Rahul Kumar", "rahul", "")
	token := getToken(t, app, usr)

	req, rec := newAuthRequest(http.MethodPost, "/api/logout", token)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: []byte(`{"message":"Logged out"}`)}, rec)
	assert.Empty(t, sessionCookie(t, rec).Value)
	assert.Zero(t, app.sessions.Len())

	runHTTPTests(t, app, []httpTest{
		{
			name: "token is revoked", path: "/api/user", token: token,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Message: "Unauthorized"}),
		},
		{
			name: "logout twice", method: http.MethodPost, path: "/api/logout", token: token,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Message: "Unauthorized"}),
		},
	})
}

func Test_userApi_retrieve(t *testing.T) {
	app := setup(t)
	usr := testutil.CreateUser(t, app.usrRepo, "Rahul Kumar", "rahul", "")
	other := testutil.CreateUser(t, app.usrRepo, "Priya Patel", "priya", "")

	sess, err := app.sessions.Create(context.Background(), usr.ID)
	require.NoError(t, err)
	forgeToken := func(secretKey string, s session.Session) string {
		token, err := echoapi.GenerateToken(secretKey, app.conf.AppName, s)
		require.NoError(t, err)
		return token
	}
	unauthorized := marchallObj(t, httpErr{Message: "Unauthorized"})

	tests := []httpTest{
		{name: "bearer token", path: "/api/user", token: getToken(t, app, usr), wantData: marchallObj(t, usr)},
		{name: "no token", path: "/api/user", wantCode: http.StatusUnauthorized, wantData: unauthorized},
		{name: "garbage token", path: "/api/user", token: "not-a-jwt", wantCode: http.StatusUnauthorized, wantData: unauthorized},
		{
			name: "wrong signing key", path: "/api/user", token: forgeToken("not-the-secret", sess),
			wantCode: http.StatusUnauthorized, wantData: unauthorized,
		},
		{
			name: "unknown session", path: "/api/user",
			token:    forgeToken(app.conf.SecretKey, session.Session{ID: "unknown", UserID: usr.ID, CreatedAt: now}),
			wantCode: http.StatusUnauthorized, wantData: unauthorized,
		},
		{
			name: "session of another user", path: "/api/user",
			token:    forgeToken(app.conf.SecretKey, session.Session{ID: sess.ID, UserID: other.ID, CreatedAt: now}),
			wantCode: http.StatusUnauthorized, wantData: unauthorized,
		},
	}
	runHTTPTests(t, app, tests)

	t.Run("cookie", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/user")
		req.AddCookie(&http.Cookie{Name: "sid", Value: forgeToken(app.conf.SecretKey, sess)})
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, usr)}, rec)
	})

	t.Run("expired session", func(t *testing.T) {
		stale, err := app.sessions.Create(context.Background(), usr.ID)
		require.NoError(t, err)
		token := forgeToken(app.conf.SecretKey, stale)
		assert.Positive(t, app.sessions.Sweep(time.Now().Add(app.conf.Server.SessionIdleTimeout+time.Minute)))

		req, rec := newAuthRequest(http.MethodGet, "/api/user", token)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: unauthorized}, rec)
	})
}
