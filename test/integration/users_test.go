//go:build integration

package integration

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"staynest/pkg/client"
	apperrors "staynest/pkg/errors"
	httputil "staynest/pkg/http"
	"staynest/pkg/model"
	"staynest/test/integration/testutil"
)

func TestRegister_DuplicateEmail(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, c := env.Setup(t)
	defer env.Cleanup(t, mongo)

	email := testutil.UniqueEmail("dup")

	resp, err := c.Register("First", email, "password-one")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	resp, err = c.Register("Second", email, "password-two")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusConflict)
	testutil.AssertErrorCode(t, resp, apperrors.CodeDuplicateEmail)

	resp, err = c.Login(email, "password-one")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	if count := mongo.CountDocuments(t, testutil.UsersCollection, nil); count != 1 {
		t.Errorf("expected 1 user in DB, got %d", count)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, c := env.Setup(t)
	defer env.Cleanup(t, mongo)

	email := testutil.UniqueEmail("wrong")
	resp, err := c.Register("Someone", email, "right-password")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if strings.Contains(string(resp.Body), "$2a$") || strings.Contains(string(resp.Body), "password") {
		t.Errorf("register response leaks password data: %s", resp.Body)
	}

	resp, err = c.Login(email, "not-the-password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)
	testutil.AssertErrorCode(t, resp, apperrors.CodeInvalidCredentials)
	for _, cookie := range resp.Cookies() {
		if cookie.Name == httputil.SessionCookieName && cookie.Value != "" {
			t.Error("failed login must not set a session cookie")
		}
	}

	resp, err = c.Login(email, "right-password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	if strings.Contains(string(resp.Body), "$2a$") {
		t.Errorf("login response leaks the password hash: %s", resp.Body)
	}
}

func TestProfile_Lifecycle(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, c := env.Setup(t)
	defer env.Cleanup(t, mongo)

	resp, err := c.Profile()
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	if strings.TrimSpace(string(resp.Body)) != "{}" {
		t.Errorf("anonymous profile = %s, want {}", resp.Body)
	}

	user := testutil.SignedIn(t, c, "profile")

	resp, err = c.Profile()
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	var profile model.Profile
	if err := resp.DecodeJSON(&profile); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if profile.ID != user.ID || profile.Email != user.Email {
		t.Errorf("profile = %+v, want user %s", profile, user.ID)
	}

	resp, err = c.Logout()
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	resp, err = c.Profile()
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if strings.TrimSpace(string(resp.Body)) != "{}" {
		t.Errorf("profile after logout = %s, want {}", resp.Body)
	}
}

func TestProtectedRoutes_RejectMissingOrTamperedToken(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, c := env.Setup(t)
	defer env.Cleanup(t, mongo)

	anonymous := env.NewSession()
	resp, err := anonymous.CreatePlace(testutil.ValidPlace())
	if err != nil {
		t.Fatalf("create place: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	testutil.AssertErrorCode(t, resp, apperrors.CodeUnauthenticated)

	testutil.SignedIn(t, c, "tamper")
	tamperSessionCookie(t, c, env.ServerURL)

	resp, err = c.CreatePlace(testutil.ValidPlace())
	if err != nil {
		t.Fatalf("create place: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	testutil.AssertErrorCode(t, resp, apperrors.CodeUnauthenticated)

	resp, err = c.MyBookings()
	if err != nil {
		t.Fatalf("my bookings: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)

	if count := mongo.CountDocuments(t, testutil.PlacesCollection, nil); count != 0 {
		t.Errorf("expected no places in DB, got %d", count)
	}
}

// tamperSessionCookie flips the last signature character of the stored token.
func tamperSessionCookie(t *testing.T, c *client.StaynestClient, serverURL string) {
	t.Helper()

	u, err := url.Parse(serverURL)
	if err != nil {
		t.Fatalf("bad server url: %v", err)
	}
	jar := c.HTTP().HTTPClient.Jar
	for _, cookie := range jar.Cookies(u) {
		if cookie.Name != httputil.SessionCookieName {
			continue
		}
		token := []byte(cookie.Value)
		last := len(token) - 1
		if token[last] == 'A' {
			token[last] = 'B'
		} else {
			token[last] = 'A'
		}
		jar.SetCookies(u, []*http.Cookie{{Name: cookie.Name, Value: string(token), Path: "/"}})
		return
	}
	t.Fatal("no session cookie to tamper with")
}
