package server

import (
	"errors"
	"net/http"
	"os"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/phptune/phptune/src/internal/backup"
	"github.com/phptune/phptune/src/internal/extmeta"
	"github.com/phptune/phptune/src/internal/inifile"
	"github.com/phptune/phptune/src/internal/locator"
)

type errResponse struct {
	Error string `json:"error"`
}

func renderError(w http.ResponseWriter, r *http.Request, status int, err error) {
	render.Status(r, status)
	render.JSON(w, r, errResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var permErr *inifile.PermissionError
	switch {
	case errors.Is(err, locator.ErrNoInstallation),
		errors.Is(err, inifile.ErrIniNotFound),
		errors.Is(err, backup.ErrBackupMissing),
		os.IsNotExist(err):
		return http.StatusNotFound
	case errors.As(err, &permErr):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func (s *Server) handleInstallations(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.locator.Discover())
}

type resolveRequest struct {
	VersionHint string `json:"versionHint"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, http.StatusBadRequest, err)
		return
	}

	inst, err := s.locator.Resolve(req.VersionHint)
	if err != nil {
		renderError(w, r, statusFor(err), err)
		return
	}
	render.JSON(w, r, inst)
}

type customizeRequest struct {
	VersionHint  string            `json:"versionHint"`
	IniPath      string            `json:"iniPath"`
	ExtensionDir string            `json:"extensionDir"`
	Extensions   []string          `json:"extensions"`
	Settings     []inifile.Setting `json:"settings"`
	DryRun       bool              `json:"dryRun"`
}

type customizeResponse struct {
	OperationID string          `json:"operationId"`
	Report      *inifile.Report `json:"report"`
}

func (s *Server) handleCustomize(w http.ResponseWriter, r *http.Request) {
	var req customizeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, http.StatusBadRequest, err)
		return
	}

	iniPath, extensionDir := req.IniPath, req.ExtensionDir
	if iniPath == "" {
		var err error
		iniPath, extensionDir, err = s.locator.ResolvePaths(req.VersionHint)
		if err != nil {
			renderError(w, r, statusFor(err), err)
			return
		}
	}

	transformer := inifile.NewTransformer(s.fs, s.archive, s.ctx)
	transformer.SetDryRun(req.DryRun)

	report, err := transformer.Customize(iniPath, extensionDir, req.Extensions, req.Settings)
	if err != nil {
		renderError(w, r, statusFor(err), err)
		return
	}

	render.JSON(w, r, customizeResponse{
		OperationID: uuid.NewString(),
		Report:      report,
	})
}

type validateRequest struct {
	VersionHint string `json:"versionHint"`
	IniPath     string `json:"iniPath"`
}

type validateResponse struct {
	Path     string            `json:"path"`
	Warnings []inifile.Warning `json:"warnings"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, http.StatusBadRequest, err)
		return
	}

	iniPath := req.IniPath
	if iniPath == "" {
		var err error
		iniPath, _, err = s.locator.ResolvePaths(req.VersionHint)
		if err != nil {
			renderError(w, r, statusFor(err), err)
			return
		}
	}

	data, err := s.fs.ReadFile(iniPath)
	if err != nil {
		renderError(w, r, statusFor(err), err)
		return
	}

	render.JSON(w, r, validateResponse{
		Path:     iniPath,
		Warnings: inifile.Validate(string(data)),
	})
}

func (s *Server) handleExtensions(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, extmeta.All())
}

type backupEntry struct {
	Path string       `json:"path"`
	Meta *backup.Meta `json:"meta,omitempty"`
}

func (s *Server) handleListBackups(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		renderError(w, r, http.StatusBadRequest, errors.New("path query parameter is required"))
		return
	}

	backups, err := s.archive.List(path)
	if err != nil {
		renderError(w, r, statusFor(err), err)
		return
	}

	entries := make([]backupEntry, 0, len(backups))
	for _, b := range backups {
		entry := backupEntry{Path: b}
		if meta, err := s.archive.ReadMeta(b); err == nil {
			entry.Meta = meta
		}
		entries = append(entries, entry)
	}
	render.JSON(w, r, entries)
}

type createBackupRequest struct {
	Path        string `json:"path"`
	Description string `json:"description"`
}

func (s *Server) handleCreateBackup(w http.ResponseWriter, r *http.Request) {
	var req createBackupRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, http.StatusBadRequest, err)
		return
	}

	backupPath, err := s.archive.Create(req.Path)
	if err != nil {
		renderError(w, r, statusFor(err), err)
		return
	}
	if req.Description != "" {
		_ = s.archive.WriteMeta(backupPath, req.Description, req.Path, "")
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, backupEntry{Path: backupPath})
}

type restoreBackupRequest struct {
	BackupPath string `json:"backupPath"`
	TargetPath string `json:"targetPath"`
}

func (s *Server) handleRestoreBackup(w http.ResponseWriter, r *http.Request) {
	var req restoreBackupRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, http.StatusBadRequest, err)
		return
	}

	if err := s.archive.Restore(req.BackupPath, req.TargetPath); err != nil {
		renderError(w, r, statusFor(err), err)
		return
	}
	render.JSON(w, r, map[string]string{"operationId": uuid.NewString()})
}

type cleanupRequest struct {
	Path          string `json:"path"`
	KeepCount     int    `json:"keepCount"`
	OlderThanDays int    `json:"olderThanDays"`
}

func (s *Server) handleCleanupBackups(w http.ResponseWriter, r *http.Request) {
	var req cleanupRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, http.StatusBadRequest, err)
		return
	}

	removed, err := s.archive.Cleanup(req.Path, req.KeepCount, req.OlderThanDays)
	if err != nil {
		renderError(w, r, statusFor(err), err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"removed": removed,
		"count":   len(removed),
	})
}
