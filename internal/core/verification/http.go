package verification

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bhugol/internal/core/registry"
	requestutil "github.com/taibuivan/bhugol/internal/platform/request"
	"github.com/taibuivan/bhugol/internal/platform/respond"
)

// Handler implements the HTTP layer for identity verification.
type Handler struct {
	service *Service
}

// NewHandler constructs a verification [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the verification endpoint.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.verify)
	return router
}

// verifyRequest is the wire shape of a status-check call.
type verifyRequest struct {
	AadharNumber string `json:"aadharNumber"`
	VoterID      string `json:"voterId"`
}

// verify handles POST /registrations/verify.
func (handler *Handler) verify(writer http.ResponseWriter, request *http.Request) {
	var body verifyRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	identity, err := registry.NewIdentity(body.AadharNumber, body.VoterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Verify(request.Context(), identity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
