// Package api exposes the JSON API: auth, dataset lifecycle (upload, load),
// dashboard and order-view statistics, the LR-missing worklist, channel
// reports and xlsx exports.
package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/heyyrintu/mis-lifelong/internal/config"
	"github.com/heyyrintu/mis-lifelong/internal/exporter"
	"github.com/heyyrintu/mis-lifelong/internal/logger"
	"github.com/heyyrintu/mis-lifelong/internal/model"
	"github.com/heyyrintu/mis-lifelong/internal/service/aggregate"
	"github.com/heyyrintu/mis-lifelong/internal/service/classify"
	"github.com/heyyrintu/mis-lifelong/internal/service/dataset"
	"github.com/heyyrintu/mis-lifelong/internal/service/excel"
	"github.com/heyyrintu/mis-lifelong/internal/service/normalize"
	"github.com/heyyrintu/mis-lifelong/internal/service/report"
	"github.com/heyyrintu/mis-lifelong/internal/service/warehouse"
	"github.com/heyyrintu/mis-lifelong/internal/store"
)

// Error codes carried in the response envelope.
const (
	codeBadRequest   = 1001
	codeUnsupported  = 1002
	codeTooLarge     = 1003
	codeUnauthorized = 2001
	codeForbidden    = 2002
	codeNotLoaded    = 3001
	codeLoadFailed   = 3002
	codeInternal     = 5000
)

// Handlers wires the service layer to gin routes.
type Handlers struct {
	store    *store.Store
	engine   *aggregate.Engine
	sessions *sessionManager
	cfg      *config.AppConfig
	log      zerolog.Logger

	uploads   map[string]*uploadedFile
	uploadsMu sync.RWMutex
}

type uploadedFile struct {
	FileName string
	Bytes    []byte
}

// NewHandlers creates the API handler set.
func NewHandlers(st *store.Store, cfg *config.AppConfig) *Handlers {
	return &Handlers{
		store:    st,
		engine:   aggregate.NewEngine(),
		sessions: newSessionManager(cfg.Auth),
		cfg:      cfg,
		log:      logger.Component("api"),
		uploads:  make(map[string]*uploadedFile),
	}
}

// RegisterRoutes mounts all API routes on the given group.
func (h *Handlers) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/auth/login", h.Login)

	authed := router.Group("", h.requireAuth())
	{
		authed.POST("/auth/logout", h.Logout)

		authed.GET("/status", h.GetStatus)
		authed.GET("/dashboard", h.GetDashboard)
		authed.GET("/orderview", h.GetOrderView)
		authed.GET("/hierarchy", h.GetHierarchy)
		authed.GET("/lrmissing", h.GetLRMissing)
		authed.GET("/reports/:category", h.GetReport)

		admin := authed.Group("", h.requireAdmin())
		{
			admin.POST("/upload", h.UploadFile)
			admin.POST("/load", h.LoadData)
			admin.GET("/export/lrmissing", h.ExportLRMissing)
			admin.GET("/export/:category", h.ExportReport)
		}
	}
}

// Response is the common envelope. Code 0 means success.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// ==================== Auth ====================

// Login issues a session token for a configured user.
// POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, codeBadRequest, "invalid request body")
		return
	}

	token, role, ok := h.sessions.login(strings.TrimSpace(req.Username), req.Password)
	if !ok {
		h.log.Warn().Str("username", req.Username).Msg("failed login attempt")
		errorResponse(c, codeUnauthorized, "invalid username or password")
		return
	}

	success(c, gin.H{
		"token":          token,
		"role":           role,
		"timeoutMinutes": h.cfg.Auth.SessionTimeoutMinutes,
	})
}

// Logout invalidates the presented token.
// POST /api/auth/logout
func (h *Handlers) Logout(c *gin.Context) {
	if token := bearerToken(c); token != "" {
		h.sessions.logout(token)
	}
	success(c, gin.H{"loggedOut": true})
}

// ==================== Dataset lifecycle ====================

// UploadFile accepts a spreadsheet and caches its bytes under an upload ID.
// Decoding happens at load time so a bad file never clobbers a good dataset.
// POST /api/upload
func (h *Handlers) UploadFile(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		errorResponse(c, codeBadRequest, "missing file field")
		return
	}
	defer file.Close()

	maxBytes := int64(h.cfg.Data.MaxUploadMB) * 1024 * 1024
	if header.Size > maxBytes {
		errorResponse(c, codeTooLarge, fmt.Sprintf("file too large, max %dMB", h.cfg.Data.MaxUploadMB))
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".xls" && ext != ".csv" {
		errorResponse(c, codeUnsupported, "only .xlsx, .xls and .csv files are supported")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		errorResponse(c, codeInternal, "failed to read upload")
		return
	}

	uploadID := uuid.New().String()
	h.uploadsMu.Lock()
	h.uploads[uploadID] = &uploadedFile{
		FileName: header.Filename,
		Bytes:    content,
	}
	h.uploadsMu.Unlock()

	h.persistUpload(uploadID, ext, content)

	h.log.Info().
		Str("uploadId", uploadID).
		Str("fileName", header.Filename).
		Int64("size", header.Size).
		Msg("file uploaded")

	success(c, gin.H{
		"uploadId": uploadID,
		"fileName": header.Filename,
	})
}

// LoadData decodes a cached upload, runs the negative gate, normalizes and
// classifies, and swaps the dataset in atomically.
// POST /api/load
func (h *Handlers) LoadData(c *gin.Context) {
	var req struct {
		UploadID  string `json:"uploadId"`
		SortOrder string `json:"sortOrder"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, codeBadRequest, "invalid request body")
		return
	}

	h.uploadsMu.RLock()
	upload, ok := h.uploads[req.UploadID]
	h.uploadsMu.RUnlock()
	if !ok {
		errorResponse(c, codeBadRequest, "unknown upload id")
		return
	}

	raw, err := h.decodeUpload(upload)
	if err != nil {
		errorResponse(c, codeLoadFailed, "failed to load data: "+err.Error())
		return
	}

	kept, loadReport := normalize.Gate(raw)
	records := classify.Tag(normalize.Rows(kept))
	dataset.SortByOrderDate(records, req.SortOrder == "oldest")
	hierarchy := warehouse.BuildHierarchy(records)

	h.store.Replace(&store.Dataset{
		Records:    records,
		Hierarchy:  hierarchy,
		LoadReport: loadReport,
		SourceName: upload.FileName,
	})
	h.engine.Invalidate()

	h.log.Info().
		Str("fileName", upload.FileName).
		Int("rows", len(records)).
		Int("dropped", loadReport.DroppedRows).
		Msg("dataset loaded")

	success(c, gin.H{
		"loadReport": loadReport,
		"hierarchy":  hierarchy,
		"rows":       len(records),
	})
}

// persistUpload keeps a copy of the accepted file under data/uploads so the
// last spreadsheets survive a restart. The in-memory copy is what load
// consumes; a write failure is logged, not surfaced.
func (h *Handlers) persistUpload(uploadID, ext string, content []byte) {
	if _, err := config.EnsureDataDir(h.cfg); err != nil {
		h.log.Warn().Err(err).Msg("cannot create data directory")
		return
	}
	path := config.GetDataPath(h.cfg, "uploads", uploadID+ext)
	if err := os.WriteFile(path, content, 0644); err != nil {
		h.log.Warn().Err(err).Str("path", path).Msg("cannot persist upload")
	}
}

func (h *Handlers) decodeUpload(upload *uploadedFile) ([]model.RawRow, error) {
	reader := bytes.NewReader(upload.Bytes)
	if strings.ToLower(filepath.Ext(upload.FileName)) == ".csv" {
		return excel.DecodeCSV(reader)
	}
	return excel.DecodeWorkbook(reader)
}

// ==================== Queries ====================

func filterFromQuery(c *gin.Context) model.Filter {
	return model.Filter{
		Date:      strings.TrimSpace(c.Query("date")),
		Month:     strings.TrimSpace(c.Query("month")),
		Location:  strings.TrimSpace(c.Query("location")),
		AreaCode:  strings.TrimSpace(c.Query("areaCode")),
		Warehouse: strings.TrimSpace(c.Query("warehouse")),
	}
}

func (h *Handlers) filteredRecords(c *gin.Context) ([]*model.Record, model.Filter, bool) {
	records, err := h.store.Records()
	if err != nil {
		errorResponse(c, codeNotLoaded, "no dataset loaded")
		return nil, model.Filter{}, false
	}
	f := filterFromQuery(c)
	return dataset.Apply(records, f), f, true
}

// GetStatus reports whether a dataset is loaded and its load summary.
// GET /api/status
func (h *Handlers) GetStatus(c *gin.Context) {
	d, err := h.store.Dataset()
	if err != nil {
		success(c, gin.H{"loaded": false})
		return
	}
	success(c, gin.H{
		"loaded":     true,
		"rows":       len(d.Records),
		"sourceName": d.SourceName,
		"loadedAt":   d.LoadedAt,
		"loadReport": d.LoadReport,
	})
}

// GetDashboard returns per-category statistics for the filtered subset.
// GET /api/dashboard
func (h *Handlers) GetDashboard(c *gin.Context) {
	records, f, ok := h.filteredRecords(c)
	if !ok {
		return
	}
	result := h.engine.Aggregate(records)
	success(c, gin.H{
		"filter":     f,
		"matched":    len(records),
		"byCategory": result.ByCategory,
	})
}

// GetOrderView returns the (category, transport mode) statistics for the
// filtered subset.
// GET /api/orderview
func (h *Handlers) GetOrderView(c *gin.Context) {
	records, f, ok := h.filteredRecords(c)
	if !ok {
		return
	}
	result := h.engine.Aggregate(records)
	success(c, gin.H{
		"filter":         f,
		"matched":        len(records),
		"byCategoryMode": result.ByCategoryMode,
	})
}

// GetHierarchy returns the warehouse filter structure built at load time.
// GET /api/hierarchy
func (h *Handlers) GetHierarchy(c *gin.Context) {
	d, err := h.store.Dataset()
	if err != nil {
		errorResponse(c, codeNotLoaded, "no dataset loaded")
		return
	}
	success(c, d.Hierarchy)
}

// GetLRMissing returns the worklist of records without a tracking number,
// optionally scoped to one day via ?date=YYYY-MM-DD.
// GET /api/lrmissing
func (h *Handlers) GetLRMissing(c *gin.Context) {
	records, err := h.store.Records()
	if err != nil {
		errorResponse(c, codeNotLoaded, "no dataset loaded")
		return
	}
	view := report.Missing(records, strings.TrimSpace(c.Query("date")))
	success(c, view)
}

// GetReport returns one channel's export table for the filtered subset.
// GET /api/reports/:category
func (h *Handlers) GetReport(c *gin.Context) {
	category, ok := model.ParseCategory(c.Param("category"))
	if !ok {
		errorResponse(c, codeBadRequest, "unknown category")
		return
	}
	records, _, ok := h.filteredRecords(c)
	if !ok {
		return
	}
	success(c, report.Build(category, records))
}

// ==================== Exports ====================

func streamWorkbook(c *gin.Context, f *excelize.File, filename string) {
	defer f.Close()
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := f.WriteTo(c.Writer); err != nil {
		c.Abort()
	}
}

// ExportReport streams one channel report as xlsx; category "all" bundles
// every channel into one workbook.
// GET /api/export/:category
func (h *Handlers) ExportReport(c *gin.Context) {
	records, _, ok := h.filteredRecords(c)
	if !ok {
		return
	}

	raw := c.Param("category")
	if raw == "all" {
		f, err := exporter.AllReportsWorkbook(report.BuildAll(records))
		if err != nil {
			errorResponse(c, codeInternal, "failed to build workbook: "+err.Error())
			return
		}
		streamWorkbook(c, f, "mis-reports.xlsx")
		return
	}

	category, ok := model.ParseCategory(raw)
	if !ok {
		errorResponse(c, codeBadRequest, "unknown category")
		return
	}
	f, err := exporter.ReportWorkbook(report.Build(category, records))
	if err != nil {
		errorResponse(c, codeInternal, "failed to build workbook: "+err.Error())
		return
	}
	streamWorkbook(c, f, exporter.Filename(category))
}

// ExportLRMissing streams the LR-missing worklist as xlsx.
// GET /api/export/lrmissing
func (h *Handlers) ExportLRMissing(c *gin.Context) {
	records, err := h.store.Records()
	if err != nil {
		errorResponse(c, codeNotLoaded, "no dataset loaded")
		return
	}
	view := report.Missing(records, strings.TrimSpace(c.Query("date")))
	f, err := exporter.MissingWorkbook(view)
	if err != nil {
		errorResponse(c, codeInternal, "failed to build workbook: "+err.Error())
		return
	}
	streamWorkbook(c, f, "lr-missing.xlsx")
}
