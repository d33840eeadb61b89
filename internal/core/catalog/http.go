/*
Package catalog exposes the read-only GI product taxonomy.

Categories and products are maintained upstream by the program office; this
service only reads them. Registrations claim (category, product) pairs out of
this catalog, and the availability diff in the registry package subtracts
prior claims from it.

# Access Control

  - Collector: Full read access (the intake wizard browses the catalog).
  - Nobody: Writes — catalog changes arrive through upstream data releases.
*/
package catalog

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bhugol/internal/platform/apperr"
	requestutil "github.com/taibuivan/bhugol/internal/platform/request"
	"github.com/taibuivan/bhugol/internal/platform/respond"
	"github.com/taibuivan/bhugol/pkg/pagination"
)

// Handler implements the HTTP layer for the catalog domain.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalog [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the catalog's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/categories", handler.listCategories)
	router.Get("/categories/{id}", handler.getCategory)
	router.Get("/products", handler.listProducts)
	router.Get("/products/{id}", handler.getProduct)
	router.Get("/products/by-categories", handler.listProductsByCategories)

	return router
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.Atoi(requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Category id must be an integer"))
		return
	}

	category, err := handler.service.GetCategory(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

// listProducts returns a page of the full product taxonomy. The catalog is
// small enough to page in memory after the cached read.
func (handler *Handler) listProducts(writer http.ResponseWriter, request *http.Request) {
	products, err := handler.service.ListProducts(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	total := len(products)

	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}

	respond.Paginated(writer, products[start:end], pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getProduct(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.Atoi(requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Product id must be an integer"))
		return
	}

	product, err := handler.service.GetProduct(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, product)
}

// listProductsByCategories filters products by a comma-separated ids query
// parameter, e.g. /products/by-categories?ids=1,4,9.
func (handler *Handler) listProductsByCategories(writer http.ResponseWriter, request *http.Request) {
	raw := request.URL.Query().Get("ids")
	if strings.TrimSpace(raw) == "" {
		respond.Error(writer, request, apperr.ValidationError("Query parameter 'ids' is required"))
		return
	}

	ids := make([]int, 0)
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			respond.Error(writer, request, apperr.ValidationError("Query parameter 'ids' must be a comma-separated list of integers"))
			return
		}
		ids = append(ids, id)
	}

	products, err := handler.service.ListProductsByCategories(request.Context(), ids)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, products)
}
