package services_test

import (
	"testing"

	"milkrun/internal/apperr"
	"milkrun/internal/repos"
	"milkrun/internal/services"
)

func TestActivateSwapsPreviousPrice(t *testing.T) {
	db := memdb(t)
	svc := services.NewPricingService(repos.NewPriceRepo(db), repos.NewCategoryRepo(db))

	// Seeded: pr-van-retail (100.0) is the active RETAIL price for cat-vanilla.
	newP, err := svc.Activate(services.PriceInput{
		CategoryID: "cat-vanilla", Tier: "RETAIL", Value: 120.0,
	})
	if err != nil {
		t.Fatalf("activate: %v", err)
	}

	old, err := svc.Get("pr-van-retail")
	if err != nil {
		t.Fatalf("get old: %v", err)
	}
	if old.Active {
		t.Fatal("previous RETAIL price should be inactive")
	}
	if old.EndsAt == "" {
		t.Fatal("previous RETAIL price should have an end date")
	}

	resolved, err := svc.Resolve("cat-vanilla", "RETAIL")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != newP.ID || resolved.Value != 120.0 {
		t.Fatalf("want new price %s (120.0), got %+v", newP.ID, resolved)
	}

	var active int
	if err := db.Get(&active, `SELECT COUNT(*) FROM prices WHERE category_id='cat-vanilla' AND tier='RETAIL' AND active=1`); err != nil {
		t.Fatal(err)
	}
	if active != 1 {
		t.Fatalf("want exactly one active RETAIL price, got %d", active)
	}
}

func TestActivateRepeatedlyKeepsSingleActive(t *testing.T) {
	db := memdb(t)
	svc := services.NewPricingService(repos.NewPriceRepo(db), repos.NewCategoryRepo(db))

	for _, v := range []float64{110, 115, 130, 99.5} {
		if _, err := svc.Activate(services.PriceInput{
			CategoryID: "cat-chocolate", Tier: "WHOLESALE", Value: v,
		}); err != nil {
			t.Fatalf("activate %v: %v", v, err)
		}
	}

	var active int
	if err := db.Get(&active, `SELECT COUNT(*) FROM prices WHERE category_id='cat-chocolate' AND tier='WHOLESALE' AND active=1`); err != nil {
		t.Fatal(err)
	}
	if active != 1 {
		t.Fatalf("want exactly one active price after repeated activations, got %d", active)
	}

	p, err := svc.Resolve("cat-chocolate", "WHOLESALE")
	if err != nil {
		t.Fatal(err)
	}
	if p.Value != 99.5 {
		t.Fatalf("latest activation should win, got %v", p.Value)
	}
}

func TestActivateRejectsBadInput(t *testing.T) {
	db := memdb(t)
	svc := services.NewPricingService(repos.NewPriceRepo(db), repos.NewCategoryRepo(db))

	if _, err := svc.Activate(services.PriceInput{CategoryID: "cat-vanilla", Tier: "GOLD", Value: 10}); apperr.As(err) == nil {
		t.Fatal("bad tier should fail validation")
	}
	if _, err := svc.Activate(services.PriceInput{CategoryID: "cat-vanilla", Tier: "RETAIL", Value: 0}); apperr.As(err) == nil {
		t.Fatal("zero value should fail validation")
	}
	_, err := svc.Activate(services.PriceInput{CategoryID: "nope", Tier: "RETAIL", Value: 10})
	if e := apperr.As(err); e == nil || e.Kind != apperr.KindNotFound {
		t.Fatalf("missing category should be not-found, got %v", err)
	}
}

func TestResolveMissingPriceIsNotFound(t *testing.T) {
	db := memdb(t)
	svc := services.NewPricingService(repos.NewPriceRepo(db), repos.NewCategoryRepo(db))

	// No FACTORY price is seeded.
	_, err := svc.Resolve("cat-vanilla", "FACTORY")
	if e := apperr.As(err); e == nil || e.Kind != apperr.KindNotFound {
		t.Fatalf("want not-found, got %v", err)
	}
}

func TestDeletePriceReferencedByOrderItems(t *testing.T) {
	db := memdb(t)
	svc := services.NewPricingService(repos.NewPriceRepo(db), repos.NewCategoryRepo(db))

	orders := newOrderSvc(db)
	if _, err := orders.Create(adminActor(t, db), services.OrderInput{
		ClientID: "c-acme",
		Items:    []services.OrderItemInput{{ProductID: "prod-van-500", Qty: 1}},
	}); err != nil {
		t.Fatalf("create order: %v", err)
	}

	err := svc.Delete("pr-van-retail")
	if e := apperr.As(err); e == nil || e.Kind != apperr.KindState {
		t.Fatalf("referenced price delete should be a state error, got %v", err)
	}

	// An unreferenced price deletes fine.
	if err := svc.Delete("pr-choc-retail"); err != nil {
		t.Fatalf("delete unreferenced: %v", err)
	}
}
