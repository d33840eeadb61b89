// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package enrollment

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bhugol/internal/core/registry"
	"github.com/taibuivan/bhugol/internal/platform/constants"
	requestutil "github.com/taibuivan/bhugol/internal/platform/request"
	"github.com/taibuivan/bhugol/internal/platform/respond"
	"github.com/taibuivan/bhugol/internal/platform/validate"
)

// Handler implements the HTTP layer for registration submission.
type Handler struct {
	service *Service
}

// NewHandler constructs an enrollment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the two submission endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.createNew)
	router.Post("/additional", handler.createAdditional)
	return router
}

// # New Registration (multipart)

// newRegistrationForm mirrors the non-file fields of the multipart form.
// List-valued fields arrive as JSON-encoded strings.
type newRegistrationForm struct {
	AadharNumber string `json:"aadharNumber"`
	VoterID      string `json:"voterId"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Age          int    `json:"age"`
	Gender       string `json:"gender"`
	Phone        string `json:"phone"`

	CategoryIDs        []int                       `json:"productCategoryIds"`
	ExistingProductIDs []int                       `json:"existingProducts"`
	SelectedProductIDs []int                       `json:"selectedProducts"`
	ProductionDetails  []registry.ProductionDetail `json:"productionDetails"`
}

// newRegistrationResponse is the wire shape of a successful first-time commit.
type newRegistrationResponse struct {
	Message        string            `json:"message"`
	RegistrationID string            `json:"registrationId"`
	DocumentPaths  map[string]string `json:"documentPaths"`
}

/*
createNew handles POST /registrations.

The body is multipart/form-data: a "data" part holding the JSON form
above, plus up to five file parts named after the document slots
(aadharCard, panCard, proofOfProduction, signature, photo).
*/
func (handler *Handler) createNew(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseMultipartForm(constants.MaxMultipartMemoryBytes); err != nil {
		respond.Error(writer, request, validate.RequiredError("body", "Expected a multipart form"))
		return
	}

	var form newRegistrationForm
	if err := json.Unmarshal([]byte(request.FormValue("data")), &form); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	documents, err := readDocumentParts(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := NewRegistrationInput{
		AadharNumber: form.AadharNumber,
		VoterID:      form.VoterID,
		PersonalInfo: registry.PersonalInfo{
			Name:    form.Name,
			Address: form.Address,
			Age:     form.Age,
			Gender:  form.Gender,
			Phone:   form.Phone,
		},
		CategoryIDs:        form.CategoryIDs,
		ExistingProductIDs: form.ExistingProductIDs,
		SelectedProductIDs: form.SelectedProductIDs,
		ProductionDetails:  form.ProductionDetails,
		Documents:          documents,
	}

	registration, err := handler.service.CreateNew(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, newRegistrationResponse{
		Message:        "Registration submitted successfully",
		RegistrationID: registration.ID,
		DocumentPaths:  registration.Documents.Slots(),
	})
}

// readDocumentParts collects the uploaded file parts by slot name,
// enforcing the per-document size cap.
func readDocumentParts(request *http.Request) (map[string][]byte, error) {
	documents := make(map[string][]byte)

	slots := []string{
		constants.SlotAadharCard,
		constants.SlotPanCard,
		constants.SlotProofOfProduction,
		constants.SlotSignature,
		constants.SlotPhoto,
	}
	for _, slot := range slots {
		file, header, err := request.FormFile(slot)
		if err != nil {
			// Optional slots may simply be absent.
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

// # Additional Registration (JSON)

// additionalRegistrationRequest is the wire shape of a follow-up submission.
type additionalRegistrationRequest struct {
	BaseRegistrationID string `json:"baseRegistrationId"`
	AadharNumber       string `json:"aadharNumber"`
	VoterID            string `json:"voterId"`

	CategoryIDs        []int                       `json:"productCategoryIds"`
	ExistingProductIDs []int                       `json:"existingProducts"`
	SelectedProductIDs []int                       `json:"selectedProducts"`
	ProductionDetails  []registry.ProductionDetail `json:"productionDetails"`
}

// additionalRegistrationResponse is the wire shape of a successful follow-up commit.
type additionalRegistrationResponse struct {
	Message            string `json:"message"`
	RegistrationID     string `json:"registrationId"`
	BaseRegistrationID string `json:"baseRegistrationId"`
	ReusedFiles        bool   `json:"reusedFiles"`
}

// createAdditional handles POST /registrations/additional.
func (handler *Handler) createAdditional(writer http.ResponseWriter, request *http.Request) {
	var body additionalRegistrationRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("baseRegistrationId", body.BaseRegistrationID).UUID("baseRegistrationId", body.BaseRegistrationID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := AdditionalRegistrationInput{
		BaseRegistrationID: body.BaseRegistrationID,
		AadharNumber:       body.AadharNumber,
		VoterID:            body.VoterID,
		CategoryIDs:        body.CategoryIDs,
		ExistingProductIDs: body.ExistingProductIDs,
		SelectedProductIDs: body.SelectedProductIDs,
		ProductionDetails:  body.ProductionDetails,
	}

	registration, err := handler.service.CreateAdditional(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, additionalRegistrationResponse{
		Message:            "Additional registration submitted successfully",
		RegistrationID:     registration.ID,
		BaseRegistrationID: registration.BaseRegistrationID,
		ReusedFiles:        registration.ReusedFiles,
	})
}
