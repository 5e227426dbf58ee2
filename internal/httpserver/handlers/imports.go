package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/avelling/resman/internal/httpserver/deps"
	"github.com/avelling/resman/internal/importer"
	"github.com/avelling/resman/internal/logger"
)

type importResponse struct {
	Message  string   `json:"message"`
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

// ImportResources ingests a multipart text file of "url:login:pass" lines.
// Per-line problems are reported in the response body; only a decode
// failure rejects the upload.
func ImportResources(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		r.Body = http.MaxBytesReader(w, r.Body, d.ImportMaxBytes)
		if err := r.ParseMultipartForm(d.ImportMaxBytes); err != nil {
			writeError(w, http.StatusBadRequest, "file too large or invalid form")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "no file provided")
			return
		}
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("import failed: %v", err))
			return
		}

		d.Logger.Info("import requested",
			logger.String("filename", header.Filename),
			logger.Int("bytes", len(data)))

		rep, err := importer.New(d.Store, d.Logger).Run(ctx, data)
		switch {
		case errors.Is(err, importer.ErrDecode):
			writeError(w, http.StatusBadRequest, fmt.Sprintf("import failed: %v", err))
			return
		case err != nil:
			// Records inserted before the failure stay; no rollback.
			d.Logger.Error("import aborted", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "import failed")
			return
		}

		if rep.Imported > 0 {
			invalidateListCache(ctx, d)
		}

		writeJSON(w, http.StatusOK, importResponse{
			Message:  fmt.Sprintf("Imported resources: %d", rep.Imported),
			Imported: rep.Imported,
			Errors:   rep.Errors,
		})
	}
}
