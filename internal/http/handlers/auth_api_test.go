package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestSeededPasswordsAreHashed(t *testing.T) {
	_, db := newTestApp(t)

	var hashes []string
	if err := db.Select(&hashes, `SELECT password_hash FROM users`); err != nil {
		t.Fatalf("select hashes: %v", err)
	}
	if len(hashes) == 0 {
		t.Fatal("no users seeded")
	}
	for _, h := range hashes {
		if strings.Contains(h, "Passw0rd!") {
			t.Fatal("hash contains plaintext password")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(h), []byte("Passw0rd!")); err != nil {
			t.Fatalf("seed hash does not validate known password: %v", err)
		}
	}
}

func TestLoginSuccessAndFail(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonReq(t, "POST", "/login", "", map[string]string{
		"email": "ana@acme.test", "password": "wrong-pass",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad creds: want 401, got %d", resp.StatusCode)
	}

	resp, err = app.Test(jsonReq(t, "POST", "/login", "", map[string]string{
		"email": "ana@acme.test", "password": "Passw0rd!",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("good creds: want 200, got %d", resp.StatusCode)
	}

	var sid string
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			sid = c.Value
		}
	}
	if sid == "" {
		t.Fatal("login should set a sid cookie")
	}

	var u struct {
		Email    string `json:"email"`
		Role     string `json:"role"`
		ClientID string `json:"clientId"`
	}
	decode(t, resp, &u)
	if u.Email != "ana@acme.test" || u.Role != "USER" || u.ClientID != "c-acme" {
		t.Fatalf("unexpected login body: %+v", u)
	}

	// The session cookie now carries authorization.
	resp, err = app.Test(jsonReq(t, "GET", "/api/v1/orders", sid, nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("authenticated list: want 200, got %d", resp.StatusCode)
	}
}

func TestAPIRequiresSession(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{"/api/v1/orders", "/api/v1/clients", "/api/v1/rounds"} {
		resp, err := app.Test(jsonReq(t, "GET", path, "", nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s without session: want 401, got %d", path, resp.StatusCode)
		}
	}
}

func TestAdminOnlyResources(t *testing.T) {
	app, db := newTestApp(t)
	bindSID(t, db, "sid-ana", "u-ana")
	bindSID(t, db, "sid-admin", "u-admin")

	resp, err := app.Test(jsonReq(t, "GET", "/api/v1/clients", "sid-ana", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-admin on /clients: want 403, got %d", resp.StatusCode)
	}

	resp, err = app.Test(jsonReq(t, "GET", "/api/v1/clients", "sid-admin", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin on /clients: want 200, got %d", resp.StatusCode)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	app, db := newTestApp(t)
	bindSID(t, db, "sid-ana", "u-ana")

	resp, err := app.Test(jsonReq(t, "POST", "/logout", "sid-ana", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("logout: want 204, got %d", resp.StatusCode)
	}

	resp, err = app.Test(jsonReq(t, "GET", "/api/v1/orders", "sid-ana", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("after logout: want 401, got %d", resp.StatusCode)
	}
}
