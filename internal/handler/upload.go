package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-faster/errors"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// sanitizeFilename strips path components and replaces anything outside
// [a-zA-Z0-9.-] so uploads can never escape the uploads directory.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == ".." {
		name = "upload"
	}
	return name
}

// uploadProof accepts a multipart payment-proof upload and stores it under
// the uploads directory with a timestamp prefix to keep names unique.
func (h *Handler) uploadProof(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	name := fmt.Sprintf("%d_%s", h.now().UnixMilli(), sanitizeFilename(header.Filename))
	if err := h.saveUpload(name, file); err != nil {
		writeInternal(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":  true,
		"url": "/uploads/" + name,
	})
}

func (h *Handler) saveUpload(name string, src io.Reader) error {
	if err := os.MkdirAll(h.cfg.UploadsDir, 0o755); err != nil {
		return errors.Wrap(err, "create uploads dir")
	}
	dst, err := os.Create(filepath.Join(h.cfg.UploadsDir, name))
	if err != nil {
		return errors.Wrap(err, "create upload file")
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return errors.Wrap(err, "write upload")
	}
	return nil
}

// verifyPaystack proxies a transaction verification through the server so
// the Paystack secret key stays out of the browser. The raw Paystack
// response is passed through unchanged.
func (h *Handler) verifyPaystack(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reference string `json:"reference"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Reference) == "" {
		writeError(w, http.StatusBadRequest, "reference is required")
		return
	}

	v, err := h.payments.Verify(r.Context(), req.Reference)
	if err != nil {
		writeInternal(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(v.Raw)
}
