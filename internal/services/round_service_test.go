package services_test

import (
	"testing"
	"time"

	"milkrun/internal/apperr"
	"milkrun/internal/repos"
	"milkrun/internal/services"
)

func tomorrow() string { return time.Now().AddDate(0, 0, 1).Format("2006-01-02") }

func TestCreateRoundRejectsDuplicateZoneDate(t *testing.T) {
	db := memdb(t)
	svc := services.NewRoundService(repos.NewRoundRepo(db))

	// Seeded: rnd-north-1 is NORTH tomorrow.
	_, _, err := svc.Create(services.RoundInput{Zone: "NORTH", Date: tomorrow()})
	if e := apperr.As(err); e == nil || e.Kind != apperr.KindConflict {
		t.Fatalf("want conflict, got %v", err)
	}

	// Same zone on another date is fine.
	in2 := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	if _, _, err := svc.Create(services.RoundInput{Zone: "NORTH", Date: in2}); err != nil {
		t.Fatalf("second NORTH round: %v", err)
	}
}

func TestCreateRoundAbsorbsPendingOrders(t *testing.T) {
	db := memdb(t)
	svc := services.NewRoundService(repos.NewRoundRepo(db))
	orders := newOrderSvc(db)

	// Borealis is in SOUTH and no SOUTH round exists: the order stays unassigned.
	d, err := orders.Create(adminActor(t, db), services.OrderInput{
		ClientID: "c-borealis",
		Items:    []services.OrderItemInput{{ProductID: "prod-van-500", Qty: 3}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if d.Order.RoundID != "" {
		t.Fatalf("order should be unassigned, got round %s", d.Order.RoundID)
	}

	rnd, absorbed, err := svc.Create(services.RoundInput{Zone: "SOUTH", Date: tomorrow()})
	if err != nil {
		t.Fatalf("create round: %v", err)
	}
	if absorbed != 1 {
		t.Fatalf("want 1 absorbed order, got %d", absorbed)
	}

	got, err := repos.NewOrderRepo(db).Get(d.Order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.RoundID != rnd.ID {
		t.Fatalf("order should be linked to %s, got %q", rnd.ID, got.RoundID)
	}
}

func TestZoneChangeRelinksOrders(t *testing.T) {
	db := memdb(t)
	svc := services.NewRoundService(repos.NewRoundRepo(db))
	orders := newOrderSvc(db)

	// SOUTH round picks up the Borealis order.
	rnd, _, err := svc.Create(services.RoundInput{Zone: "SOUTH", Date: tomorrow()})
	if err != nil {
		t.Fatal(err)
	}
	d, err := orders.Create(adminActor(t, db), services.OrderInput{
		ClientID: "c-borealis",
		Items:    []services.OrderItemInput{{ProductID: "prod-choc-500", Qty: 2}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if d.Order.RoundID != rnd.ID {
		t.Fatalf("order should auto-assign to %s, got %q", rnd.ID, d.Order.RoundID)
	}

	// Park an unassigned PENDING order for Acme (NORTH) by retiring the
	// seeded NORTH round first.
	if _, err := svc.Update("rnd-north-1", services.RoundInput{
		Zone: "NORTH", Date: tomorrow(), Active: boolPtr(false),
	}); err != nil {
		t.Fatal(err)
	}
	acme, err := orders.Create(adminActor(t, db), services.OrderInput{
		ClientID: "c-acme",
		Items:    []services.OrderItemInput{{ProductID: "prod-van-500", Qty: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if acme.Order.RoundID != "" {
		t.Fatalf("acme order should be unassigned, got %q", acme.Order.RoundID)
	}

	// Move the SOUTH round to NORTH: Borealis unlinks, Acme absorbs.
	in2 := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	if _, err := svc.Update(rnd.ID, services.RoundInput{Zone: "NORTH", Date: in2}); err != nil {
		t.Fatal(err)
	}

	orderRepo := repos.NewOrderRepo(db)
	borealis, err := orderRepo.Get(d.Order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if borealis.RoundID != "" {
		t.Fatalf("borealis order should be unlinked, got %q", borealis.RoundID)
	}
	gotAcme, err := orderRepo.Get(acme.Order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if gotAcme.RoundID != rnd.ID {
		t.Fatalf("acme order should be absorbed into %s, got %q", rnd.ID, gotAcme.RoundID)
	}
}

func TestDeleteRoundWithDeliveredOrder(t *testing.T) {
	db := memdb(t)
	svc := services.NewRoundService(repos.NewRoundRepo(db))
	orders := newOrderSvc(db)
	admin := adminActor(t, db)

	d, err := orders.Create(admin, services.OrderInput{
		ClientID: "c-acme",
		Items:    []services.OrderItemInput{{ProductID: "prod-van-500", Qty: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if d.Order.RoundID != "rnd-north-1" {
		t.Fatalf("order should auto-assign to the seeded NORTH round, got %q", d.Order.RoundID)
	}

	delivered := "DELIVERED"
	if _, err := orders.Update(admin, d.Order.ID, services.OrderUpdate{Status: &delivered}); err != nil {
		t.Fatal(err)
	}

	err = svc.Delete("rnd-north-1")
	if e := apperr.As(err); e == nil || e.Kind != apperr.KindState {
		t.Fatalf("want state error, got %v", err)
	}
}

func TestDeleteRoundUnlinksPendingOrders(t *testing.T) {
	db := memdb(t)
	svc := services.NewRoundService(repos.NewRoundRepo(db))
	orders := newOrderSvc(db)

	d, err := orders.Create(adminActor(t, db), services.OrderInput{
		ClientID: "c-acme",
		Items:    []services.OrderItemInput{{ProductID: "prod-van-500", Qty: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete("rnd-north-1"); err != nil {
		t.Fatalf("delete round: %v", err)
	}

	got, err := repos.NewOrderRepo(db).Get(d.Order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.RoundID != "" {
		t.Fatalf("order should be unlinked after round deletion, got %q", got.RoundID)
	}
}

func boolPtr(b bool) *bool { return &b }
