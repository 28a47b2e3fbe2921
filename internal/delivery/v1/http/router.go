package http

import (
	"net/http"

	_ "github.com/DRSN-tech/go-storefront/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/internal/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router     *chi.Mux
	navigation usecase.NavigationUC
	logger     logger.Logger
}

func NewRouter(router *chi.Mux, navigation usecase.NavigationUC, logger logger.Logger) *Router {
	return &Router{router: router, navigation: navigation, logger: logger}
}

func (r *Router) Init(catalogUC usecase.CatalogUC, cartUC usecase.CartUC, sessionUC usecase.SessionUC, proofUC usecase.ProofUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		authHandler := NewAuthHandler(sessionUC, r.navigation, r.logger)
		registerAuthRoutes(v1, authHandler)

		catalogHandler := NewCatalogHandler(catalogUC, r.logger)
		registerCatalogRoutes(v1, r, catalogHandler)

		cartHandler := NewCartHandler(cartUC, r.logger)
		registerCartRoutes(v1, r, cartHandler)

		proofHandler := NewProofHandler(proofUC, r.logger)
		registerProofRoutes(v1, r, proofHandler)
	})
}

func registerAuthRoutes(router chi.Router, h *AuthHandler) {
	router.Route("/auth", func(auth chi.Router) {
		auth.Post("/login", h.login)
		auth.Post("/register", h.register)
		auth.Post("/logout", h.logout)
	})
	router.Get("/session", h.getSession)
}

func registerCatalogRoutes(router chi.Router, r *Router, h *CatalogHandler) {
	router.Route("/catalog", func(cat chi.Router) {
		cat.Get("/", r.navigate(domain.RouteHome, h.getCatalog))
		cat.Post("/refresh", r.navigate(domain.RouteHome, h.refreshCatalog))
		cat.Get("/categories", r.navigate(domain.RouteHome, h.getCategories))
		cat.Put("/filter", r.navigate(domain.RouteHome, h.setFilter))
	})
}

func registerCartRoutes(router chi.Router, r *Router, h *CartHandler) {
	router.Route("/cart", func(cart chi.Router) {
		cart.Get("/", r.navigate(domain.RouteCart, h.getCart))
		cart.Delete("/", r.navigate(domain.RouteCart, h.clearCart))
		cart.Post("/items", r.navigate(domain.RouteHome, h.addItem))
		cart.Put("/items/{id}", r.navigate(domain.RouteCart, h.updateItem))
		cart.Delete("/items/{id}", r.navigate(domain.RouteCart, h.removeItem))
	})
}

func registerProofRoutes(router chi.Router, r *Router, h *ProofHandler) {
	router.Route("/proof", func(proof chi.Router) {
		proof.Post("/capture", r.navigate(domain.RouteProof, h.capture))
		proof.Post("/", r.navigate(domain.RouteProof, h.submit))
	})
}

// navigate проводит запрос через контроллер навигации: экран должен
// быть достижим в активном подграфе, а после перехода перечитывается
// наличие токена. Недостижимый экран отклоняется без вызова обработчика.
func (r *Router) navigate(route domain.Route, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := r.navigation.Navigate(req.Context(), route); err != nil {
			r.logger.Warnf("navigation to %s rejected: %v", route, err)
			WriteError(w, err)
			return
		}

		next(w, req)
	}
}
