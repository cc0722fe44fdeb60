package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"milkrun/internal/domain"
	"milkrun/internal/repos"
	"milkrun/internal/services"
)

// memdb opens a seeded in-memory database with the real schema.
func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return db
}

func newOrderSvc(db *sqlx.DB) *services.OrderService {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	pricing := services.NewPricingService(repos.NewPriceRepo(db), catRepo)
	rounds := services.NewRoundService(repos.NewRoundRepo(db))
	return services.NewOrderService(repos.NewOrderRepo(db), repos.NewClientRepo(db), prodRepo, pricing, rounds)
}

func adminActor(t *testing.T, db *sqlx.DB) *domain.User {
	t.Helper()
	u, err := repos.NewUserRepo(db).ByID("u-admin")
	if err != nil {
		t.Fatalf("load admin: %v", err)
	}
	return u
}

func userActor(t *testing.T, db *sqlx.DB, id string) *domain.User {
	t.Helper()
	u, err := repos.NewUserRepo(db).ByID(id)
	if err != nil {
		t.Fatalf("load user %s: %v", id, err)
	}
	return u
}
