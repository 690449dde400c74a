package datasheets

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/catalog-admin/internal/auth"
	"github.com/JaimeStill/catalog-admin/internal/middleware"
	"github.com/JaimeStill/catalog-admin/pkg/handlers"
	"github.com/JaimeStill/catalog-admin/pkg/routes"
	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const entity = "datasheet"

// multipartOverhead is the slack allowed over the configured upload size
// for multipart boundaries and part headers.
const multipartOverhead = 16 << 10

type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger,
		maxUploadSize: maxUploadSize,
	}
}

// ProductRoutes returns the routes nested under the products prefix:
// listing and uploading a product's datasheets.
func (h *Handler) ProductRoutes() routes.Group {
	return routes.Group{
		Prefix:      "/products",
		Tags:        []string{"Datasheets"},
		Description: "Product datasheet uploads",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}/datasheets", Handler: h.perm(auth.ActionView, h.ListForProduct), OpenAPI: Spec.ListForProduct},
			{Method: "POST", Pattern: "/{id}/datasheets", Handler: h.perm(auth.ActionAdd, h.Upload), OpenAPI: Spec.Upload},
		},
		Schemas: Spec.Schemas(),
	}
}

// Routes returns the datasheet download and delete routes.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/datasheets",
		Tags:        []string{"Datasheets"},
		Description: "Datasheet downloads",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}", Handler: h.perm(auth.ActionView, h.Download), OpenAPI: Spec.Download},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.perm(auth.ActionDelete, h.Delete), OpenAPI: Spec.Delete},
		},
	}
}

func (h *Handler) perm(action string, next http.HandlerFunc) http.HandlerFunc {
	return middleware.RequirePermission(auth.Codename(action, entity), h.logger)(next)
}

func (h *Handler) ListForProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	sheets, err := h.sys.ListForProduct(r.Context(), productID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, sheets)
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	// Cap the body before parsing so an oversized upload is cut off at
	// the wire instead of spooling to disk first. The allowance covers
	// multipart framing around a file at the limit.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	contentType := detectContentType(header.Header.Get("Content-Type"), data)

	var pageCount *int
	if contentType == "application/pdf" {
		pc, err := extractPDFPageCount(data)
		if err != nil {
			h.logger.Warn("failed to extract pdf page count", "error", err)
		} else {
			pageCount = pc
		}
	}

	cmd := CreateDatasheetCommand{
		ProductID:   productID,
		Filename:    header.Filename,
		ContentType: contentType,
		SizeBytes:   header.Size,
		PageCount:   pageCount,
		Data:        data,
	}

	sheet, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, sheet)
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	sheet, content, err := h.sys.Open(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer content.Close()

	w.Header().Set("Content-Type", sheet.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(sheet.SizeBytes, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sheet.Filename))

	if _, err := io.Copy(w, content); err != nil {
		h.logger.Error("datasheet stream failed", "id", id, "error", err)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// detectContentType prefers the client-declared type, falling back to
// content sniffing for missing or generic declarations.
func detectContentType(header string, data []byte) string {
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}

func extractPDFPageCount(data []byte) (*int, error) {
	count, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, err
	}
	return &count, nil
}
