// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package wizard

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bhugol/internal/core/verification"
	"github.com/taibuivan/bhugol/internal/platform/constants"
	requestutil "github.com/taibuivan/bhugol/internal/platform/request"
	"github.com/taibuivan/bhugol/internal/platform/respond"
	"github.com/taibuivan/bhugol/internal/platform/validate"
)

// Handler implements the HTTP layer for the intake wizard.
type Handler struct {
	service *Service
}

// NewHandler constructs a wizard [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the wizard run endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.start)
	router.Get("/{draftID}", handler.get)
	router.Post("/{draftID}/actions", handler.action)
	router.Post("/{draftID}/verify", handler.verify)
	router.Post("/{draftID}/submit", handler.submit)
	return router
}

// start handles POST /wizard: opens a fresh run.
func (handler *Handler) start(writer http.ResponseWriter, request *http.Request) {
	draft, err := handler.service.Start(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, draft)
}

// get handles GET /wizard/{draftID}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	draft, err := handler.service.Get(request.Context(), requestutil.Param(request, "draftID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, draft)
}

// action handles POST /wizard/{draftID}/actions: one reducer action.
func (handler *Handler) action(writer http.ResponseWriter, request *http.Request) {
	var action Action
	if err := requestutil.DecodeJSON(request, &action); err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.service.Do(request.Context(), requestutil.Param(request, "draftID"), action)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, draft)
}

// verifyResponse bundles the updated draft with the verification snapshot.
type verifyResponse struct {
	Draft  Draft                `json:"draft"`
	Result *verification.Result `json:"result"`
}

// verify handles POST /wizard/{draftID}/verify: runs the identity check for
// the draft's current identity fields.
func (handler *Handler) verify(writer http.ResponseWriter, request *http.Request) {
	draft, result, err := handler.service.Verify(request.Context(), requestutil.Param(request, "draftID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, verifyResponse{Draft: draft, Result: result})
}

// submitResponse reports the outcome of a wizard submission.
type submitResponse struct {
	Draft          Draft  `json:"draft"`
	RegistrationID string `json:"registrationId,omitempty"`
	ReusedFiles    bool   `json:"reusedFiles,omitempty"`
}

// submit handles POST /wizard/{draftID}/submit.
//
// New-mode runs send multipart/form-data carrying the document file parts;
// additional-mode runs send an empty body (documents are inherited).
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	documents, err := readSubmitDocuments(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, registration, err := handler.service.Submit(request.Context(), requestutil.Param(request, "draftID"), documents)
	if err != nil {
		// Duplicate-identity and catalog-conflict outcomes still moved the
		// draft; expose the builder error as the response.
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, submitResponse{
		Draft:          draft,
		RegistrationID: registration.ID,
		ReusedFiles:    registration.ReusedFiles,
	})
}

// readSubmitDocuments parses the optional multipart body into slot → bytes.
func readSubmitDocuments(request *http.Request) (map[string][]byte, error) {
	mediaType := request.Header.Get("Content-Type")
	if mediaType == "" || len(mediaType) < 9 || mediaType[:9] != "multipart" {
		return nil, nil
	}

	if err := request.ParseMultipartForm(constants.MaxMultipartMemoryBytes); err != nil {
		return nil, validate.RequiredError("body", "Expected a multipart form")
	}

	documents := make(map[string][]byte)
	for _, slot := range []string{
		constants.SlotAadharCard,
		constants.SlotPanCard,
		constants.SlotProofOfProduction,
		constants.SlotSignature,
		constants.SlotPhoto,
	} {
		file, header, err := request.FormFile(slot)
		if err != nil {
			continue
		}
		if header.Size > constants.MaxDocumentSizeBytes {
			_ = file.Close()
			return nil, validate.RequiredError(slot, "Document exceeds the maximum allowed size")
		}
		data, err := io.ReadAll(io.LimitReader(file, constants.MaxDocumentSizeBytes))
		_ = file.Close()
		if err != nil {
			return nil, validate.RequiredError(slot, "Document could not be read")
		}
		documents[slot] = data
	}
	return documents, nil
}
