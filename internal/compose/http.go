// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package compose

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bhugol/internal/platform/constants"
	"github.com/taibuivan/bhugol/internal/platform/respond"
	"github.com/taibuivan/bhugol/internal/platform/validate"
)

// Handler exposes the document composer over HTTP.
type Handler struct{}

// NewHandler constructs a compose [Handler].
func NewHandler() *Handler {
	return &Handler{}
}

// Routes returns a [chi.Router] with the merge endpoint.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.combine)
	return router
}

// combine handles POST /documents/compose: multipart parts "front" and
// "back", response body is the merged JPEG.
func (handler *Handler) combine(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseMultipartForm(constants.MaxMultipartMemoryBytes); err != nil {
		respond.Error(writer, request, validate.RequiredError("body", "Expected a multipart form"))
		return
	}

	front, err := readImagePart(request, "front")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	back, err := readImagePart(request, "back")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	merged, err := Combine(front, back)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set("Content-Type", "image/jpeg")
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(merged)
}

// readImagePart reads one required capture part, bounded by the document cap.
func readImagePart(request *http.Request, name string) ([]byte, error) {
	file, header, err := request.FormFile(name)
	if err != nil {
		return nil, validate.RequiredError(name, "This image part is required")
	}
	defer func() { _ = file.Close() }()

	if header.Size > constants.MaxDocumentSizeBytes {
		return nil, validate.RequiredError(name, "Image exceeds the maximum allowed size")
	}
	data, err := io.ReadAll(io.LimitReader(file, constants.MaxDocumentSizeBytes))
	if err != nil {
		return nil, validate.RequiredError(name, "Image could not be read")
	}
	return data, nil
}
