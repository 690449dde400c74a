package importer

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/catalog-admin/internal/auth"
	"github.com/JaimeStill/catalog-admin/internal/middleware"
	"github.com/JaimeStill/catalog-admin/pkg/handlers"
	"github.com/JaimeStill/catalog-admin/pkg/routes"
)

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

// Routes returns the import/export routes, mounted under the products
// prefix beside the catalog they operate on.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/products",
		Tags:        []string{"Import/Export"},
		Description: "Bulk product CSV import and export",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/import", Handler: h.perm(auth.ActionAdd, h.Import), OpenAPI: Spec.Import},
			{Method: "GET", Pattern: "/export", Handler: h.perm(auth.ActionView, h.Export), OpenAPI: Spec.Export},
		},
		Schemas: Spec.Schemas(),
	}
}

func (h *Handler) perm(action string, next http.HandlerFunc) http.HandlerFunc {
	return middleware.RequirePermission(auth.Codename(action, "product"), h.logger)(next)
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	// Cap the body before parsing so an oversized upload is cut off at
	// the wire instead of spooling to disk first.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingFile)
		return
	}
	defer file.Close()

	report, err := h.sys.Import(r.Context(), file)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidCSV) {
			status = http.StatusBadRequest
		}
		handlers.RespondError(w, h.logger, status, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	// Buffer the document so query failures still render as JSON errors.
	var buf bytes.Buffer
	if err := h.sys.Export(r.Context(), &buf, activeOnly); err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("export stream failed", "error", err)
	}
}
