package handlers_test

import (
	"net/http"
	"testing"
	"time"
)

type orderDetail struct {
	Order struct {
		ID       string  `json:"id"`
		ClientID string  `json:"clientId"`
		RoundID  string  `json:"roundId"`
		Status   string  `json:"status"`
		Paid     bool    `json:"paid"`
		Total    float64 `json:"total"`
	} `json:"order"`
	Items []struct {
		ProductID string  `json:"productId"`
		Qty       int     `json:"qty"`
		Subtotal  float64 `json:"subtotal"`
	} `json:"items"`
}

func TestOrderAPICreateAndLifecycle(t *testing.T) {
	app, db := newTestApp(t)
	bindSID(t, db, "sid-admin", "u-admin")

	resp, err := app.Test(jsonReq(t, "POST", "/api/v1/orders", "sid-admin", map[string]any{
		"clientId": "c-acme",
		"items": []map[string]any{
			{"productId": "prod-van-500", "qty": 2},
			{"productId": "prod-choc-500", "qty": 1},
		},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: want 201, got %d", resp.StatusCode)
	}
	var d orderDetail
	decode(t, resp, &d)
	if d.Order.Total != 320.0 {
		t.Fatalf("want total 320.0, got %v", d.Order.Total)
	}
	if d.Order.RoundID != "rnd-north-1" {
		t.Fatalf("want auto-assigned round rnd-north-1, got %q", d.Order.RoundID)
	}
	if len(d.Items) != 2 {
		t.Fatalf("want 2 items, got %d", len(d.Items))
	}
	id := d.Order.ID

	resp, err = app.Test(jsonReq(t, "POST", "/api/v1/orders/"+id+"/paid", "sid-admin", nil))
	if err != nil {
		t.Fatal(err)
	}
	decode(t, resp, &d)
	if !d.Order.Paid {
		t.Fatal("paid should be true after toggle")
	}

	resp, err = app.Test(jsonReq(t, "PUT", "/api/v1/orders/"+id, "sid-admin", map[string]any{
		"status": "DELIVERED",
	}))
	if err != nil {
		t.Fatal(err)
	}
	decode(t, resp, &d)
	if d.Order.Status != "DELIVERED" {
		t.Fatalf("want DELIVERED, got %s", d.Order.Status)
	}

	// A delivered order cannot be cancelled.
	resp, err = app.Test(jsonReq(t, "DELETE", "/api/v1/orders/"+id, "sid-admin", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("cancel delivered: want 400, got %d", resp.StatusCode)
	}
	var e errEnvelope
	decode(t, resp, &e)
	if e.Error.Code != "state" {
		t.Fatalf("want error code state, got %q", e.Error.Code)
	}
}

func TestOrderAPIOwnership(t *testing.T) {
	app, db := newTestApp(t)
	bindSID(t, db, "sid-ana", "u-ana")
	bindSID(t, db, "sid-boris", "u-boris")

	resp, err := app.Test(jsonReq(t, "POST", "/api/v1/orders", "sid-ana", map[string]any{
		"clientId": "c-acme",
		"items":    []map[string]any{{"productId": "prod-van-500", "qty": 1}},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("ana creating for her client: want 201, got %d", resp.StatusCode)
	}
	var d orderDetail
	decode(t, resp, &d)

	resp, err = app.Test(jsonReq(t, "GET", "/api/v1/orders/"+d.Order.ID, "sid-boris", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("boris reading ana's order: want 403, got %d", resp.StatusCode)
	}

	resp, err = app.Test(jsonReq(t, "POST", "/api/v1/orders", "sid-boris", map[string]any{
		"clientId": "c-acme",
		"items":    []map[string]any{{"productId": "prod-van-500", "qty": 1}},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("boris creating for acme: want 403, got %d", resp.StatusCode)
	}
}

func TestOrderAPIMalformedBody(t *testing.T) {
	app, db := newTestApp(t)
	bindSID(t, db, "sid-admin", "u-admin")

	req := jsonReq(t, "POST", "/api/v1/orders", "sid-admin", nil)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty body: want 400, got %d", resp.StatusCode)
	}
	var e errEnvelope
	decode(t, resp, &e)
	if e.Error.Code != "validation" {
		t.Fatalf("want error code validation, got %q", e.Error.Code)
	}
}

func TestRoundAPIDuplicateIsConflict(t *testing.T) {
	app, db := newTestApp(t)
	bindSID(t, db, "sid-admin", "u-admin")

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	resp, err := app.Test(jsonReq(t, "POST", "/api/v1/rounds", "sid-admin", map[string]any{
		"zone": "NORTH", "date": tomorrow,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate round: want 400, got %d", resp.StatusCode)
	}
	var e errEnvelope
	decode(t, resp, &e)
	if e.Error.Code != "conflict" {
		t.Fatalf("want error code conflict, got %q", e.Error.Code)
	}
}

func TestPriceAPIResolve(t *testing.T) {
	app, db := newTestApp(t)
	bindSID(t, db, "sid-admin", "u-admin")

	resp, err := app.Test(jsonReq(t, "GET",
		"/api/v1/prices/active?categoryId=cat-vanilla&tier=WHOLESALE", "sid-admin", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("resolve: want 200, got %d", resp.StatusCode)
	}
	var p struct {
		ID    string  `json:"id"`
		Value float64 `json:"value"`
	}
	decode(t, resp, &p)
	if p.Value != 80.0 {
		t.Fatalf("want wholesale vanilla 80.0, got %v", p.Value)
	}

	resp, err = app.Test(jsonReq(t, "GET",
		"/api/v1/prices/active?categoryId=cat-vanilla&tier=FACTORY", "sid-admin", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("no active FACTORY price: want 404, got %d", resp.StatusCode)
	}
}

func TestUserAPISelfDeleteDenied(t *testing.T) {
	app, db := newTestApp(t)
	bindSID(t, db, "sid-admin", "u-admin")

	resp, err := app.Test(jsonReq(t, "DELETE", "/api/v1/users/u-admin", "sid-admin", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("self-delete: want 403, got %d", resp.StatusCode)
	}

	resp, err = app.Test(jsonReq(t, "DELETE", "/api/v1/users/u-boris", "sid-admin", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("deleting another user: want 204, got %d", resp.StatusCode)
	}
}
