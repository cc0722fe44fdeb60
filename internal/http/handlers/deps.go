package handlers

import (
	"milkrun/internal/repos"
	"milkrun/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler     *AuthHandler
	ClientHandler   *ClientHandler
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
	PriceHandler    *PriceHandler
	RoundHandler    *RoundHandler
	OrderHandler    *OrderHandler
	UserHandler     *UserHandler

	Auth *services.AuthService
}

func NewDeps(db *sqlx.DB) *Deps {
	userRepo := repos.NewUserRepo(db)
	clientRepo := repos.NewClientRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	priceRepo := repos.NewPriceRepo(db)
	roundRepo := repos.NewRoundRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	authSvc := &services.AuthService{Users: userRepo}
	clientSvc := services.NewClientService(clientRepo)
	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	pricingSvc := services.NewPricingService(priceRepo, catRepo)
	roundSvc := services.NewRoundService(roundRepo)
	orderSvc := services.NewOrderService(orderRepo, clientRepo, prodRepo, pricingSvc, roundSvc)
	userSvc := services.NewUserService(userRepo)

	return &Deps{
		AuthHandler:     &AuthHandler{Auth: authSvc},
		ClientHandler:   &ClientHandler{Clients: clientSvc},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		PriceHandler:    &PriceHandler{Pricing: pricingSvc},
		RoundHandler:    &RoundHandler{Rounds: roundSvc},
		OrderHandler:    &OrderHandler{Orders: orderSvc},
		UserHandler:     &UserHandler{Users: userSvc},
		Auth:            authSvc,
	}
}
