package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Sanenelisiwe1975/Baxela/api/models"
	"github.com/Sanenelisiwe1975/Baxela/api/transport"
	"github.com/Sanenelisiwe1975/Baxela/ipfs"
	"github.com/Sanenelisiwe1975/Baxela/logging"
	"github.com/Sanenelisiwe1975/Baxela/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type IncidentController struct {
	incidentStorage storage.IncidentStorage
	pinner          *ipfs.Client
	sanitizer       *bluemonday.Policy
	adminPolicy     *transport.AdminPolicy
}

func NewIncidentController(incidentStorage storage.IncidentStorage, pinner *ipfs.Client, adminPolicy *transport.AdminPolicy) *IncidentController {
	return &IncidentController{
		incidentStorage: incidentStorage,
		pinner:          pinner,
		sanitizer:       bluemonday.StrictPolicy(),
		adminPolicy:     adminPolicy,
	}
}

func (c *IncidentController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/incidents")

	group.GET("", c.list)
	group.POST("", c.create)
	group.GET("/ipfs/:cid", c.fetchPinned)
	group.PUT("/:id", transport.AdminAuthMiddleware(c.adminPolicy), c.update)
	group.DELETE("/:id", transport.AdminAuthMiddleware(c.adminPolicy), c.delete)
}

// create godoc
// @Summary Report an election incident
// @Description Accepts JSON or multipart form with attachment files
// @Tags incidents
// @Accept json
// @Accept mpfd
// @Produce json
// @Param incident body models.IncidentCreateRequest true "Incident report"
// @Success 201 {object} models.IncidentCreateResponse
// @Failure 400 {object} models.ErrorResponse "Validation errors"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/incidents [post]
func (c *IncidentController) create(g *gin.Context) {
	var req models.IncidentCreateRequest
	multipart := strings.HasPrefix(g.ContentType(), "multipart/form-data")

	if multipart {
		req = models.IncidentCreateRequest{
			Title:       g.PostForm("title"),
			Category:    g.PostForm("category"),
			Location:    g.PostForm("location"),
			Description: g.PostForm("description"),
			ReportedBy:  g.PostForm("reportedBy"),
			Severity:    g.PostForm("severity"),
		}
	} else if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.NewError("invalid request format"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		g.JSON(http.StatusBadRequest, models.NewValidationErrors(errs))
		return
	}

	severity := storage.IncidentSeverity(req.Severity)
	if req.Severity == "" {
		severity = models.InferSeverity(req.Category, req.Description)
	}

	coordinates := req.Coordinates
	if coordinates == nil {
		geocoded := models.MockGeocode(req.Location)
		coordinates = &geocoded
	}

	report := &storage.IncidentReport{
		ID:          uuid.NewString(),
		Title:       c.sanitizer.Sanitize(req.Title),
		Category:    req.Category,
		Location:    c.sanitizer.Sanitize(req.Location),
		Coordinates: coordinates,
		Description: c.sanitizer.Sanitize(req.Description),
		ReportedBy:  req.ReportedBy,
		Timestamp:   time.Now().UTC(),
		Status:      storage.IncidentStatusPending,
		Severity:    severity,
	}

	attachmentsFailed := 0
	if multipart {
		form, err := g.MultipartForm()
		if err == nil && form != nil {
			for _, header := range form.File["attachments"] {
				file, err := header.Open()
				if err != nil {
					logging.Log.Errorf("INCIDENT: failed to open attachment %s: %v", header.Filename, err)
					attachmentsFailed++
					continue
				}
				cid, err := c.pinner.PinFile(g.Request.Context(), header.Filename, file)
				_ = file.Close()
				if err != nil {
					logging.Log.Errorf("INCIDENT: failed to pin attachment %s: %v", header.Filename, err)
					attachmentsFailed++
					continue
				}
				report.Attachments = append(report.Attachments, cid)
			}
		}
	}

	pinError := ""
	if cid, err := c.pinner.PinJSON(g.Request.Context(), "incident-"+report.ID, report); err != nil {
		logging.Log.Warnf("INCIDENT: failed to pin report %s: %v", report.ID, err)
		pinError = err.Error()
	} else {
		report.IPFSHash = cid
	}

	if err := c.incidentStorage.Create(g.Request.Context(), report); err != nil {
		logging.Log.Errorf("INCIDENT: failed to store report: %v", err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not save incident report"))
		return
	}

	logging.Log.Infof("INCIDENT: created report %s with severity %s", report.ID, report.Severity)
	g.JSON(http.StatusCreated, &models.IncidentCreateResponse{
		Success:           true,
		Incident:          report,
		Pinned:            report.IPFSHash != "",
		PinError:          pinError,
		AttachmentsFailed: attachmentsFailed,
	})
}

// list godoc
// @Summary List incident reports
// @Description Filters by category/status/severity/reporter/verified, sorts newest-first, paginates via limit/offset
// @Tags incidents
// @Produce json
// @Param category query string false "Category filter"
// @Param status query string false "Status filter"
// @Param severity query string false "Severity filter"
// @Param reporter query string false "Reporter wallet filter"
// @Param verified query bool false "Verified filter"
// @Param enrich query bool false "Fetch pinned payloads"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} models.IncidentListResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/incidents [get]
func (c *IncidentController) list(g *gin.Context) {
	filter := storage.IncidentFilter{
		Category:   g.Query("category"),
		Status:     g.Query("status"),
		Severity:   g.Query("severity"),
		ReportedBy: g.Query("reporter"),
	}
	if raw := g.Query("verified"); raw != "" {
		verified := raw == "true"
		filter.Verified = &verified
	}

	reports, err := c.incidentStorage.List(g.Request.Context(), filter)
	if err != nil {
		logging.Log.Errorf("INCIDENT: failed to list reports: %v", err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not list incident reports"))
		return
	}

	counts := models.IncidentCounts{
		ByStatus:   make(map[string]int),
		BySeverity: make(map[string]int),
	}
	for _, report := range reports {
		counts.ByStatus[string(report.Status)]++
		counts.BySeverity[string(report.Severity)]++
		if report.Verified {
			counts.Verified++
		} else {
			counts.Unverified++
		}
	}

	total := len(reports)
	offset, _ := strconv.Atoi(g.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(g.DefaultQuery("limit", "50"))
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 50
	}
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := reports[offset:end]

	enrich := g.Query("enrich") == "true"
	records := make([]models.IncidentRecord, 0, len(page))
	for _, report := range page {
		record := models.IncidentRecord{IncidentReport: report}
		if enrich && report.IPFSHash != "" {
			var pinned storage.IncidentReport
			if err := c.pinner.FetchJSON(g.Request.Context(), report.IPFSHash, &pinned); err != nil {
				logging.Log.Warnf("INCIDENT: failed to fetch pinned payload %s: %v", report.IPFSHash, err)
				record.Degraded = true
			} else {
				// keep local id/status/verification, take content from the pin
				if pinned.Title != "" {
					report.Title = pinned.Title
				}
				if pinned.Description != "" {
					report.Description = pinned.Description
				}
				if pinned.Location != "" {
					report.Location = pinned.Location
				}
			}
		}
		records = append(records, record)
	}

	g.JSON(http.StatusOK, &models.IncidentListResponse{
		Success:   true,
		Total:     total,
		Counts:    counts,
		Incidents: records,
	})
}

// update godoc
// @Security AdminToken
// @Summary Update an incident report
// @Description Partial update of status, verified flag, notes and assignee
// @Tags incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident id"
// @Param patch body models.IncidentUpdateRequest true "Fields to update"
// @Success 200 {object} storage.IncidentReport
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/incidents/{id} [put]
func (c *IncidentController) update(g *gin.Context) {
	var req models.IncidentUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.NewError("invalid request format"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		g.JSON(http.StatusBadRequest, models.NewValidationErrors(errs))
		return
	}

	report, err := c.incidentStorage.Get(g.Request.Context(), g.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			g.JSON(http.StatusNotFound, models.NewError("incident report not found"))
			return
		}
		logging.Log.Errorf("INCIDENT: failed to load report %s: %v", g.Param("id"), err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not load incident report"))
		return
	}

	if req.Status != nil {
		report.Status = storage.IncidentStatus(*req.Status)
	}
	if req.Verified != nil {
		report.Verified = *req.Verified
	}
	if req.Notes != nil {
		report.Notes = c.sanitizer.Sanitize(*req.Notes)
	}
	if req.AssignedTo != nil {
		report.AssignedTo = *req.AssignedTo
	}

	if err := c.incidentStorage.Update(g.Request.Context(), report); err != nil {
		logging.Log.Errorf("INCIDENT: failed to update report %s: %v", report.ID, err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not update incident report"))
		return
	}
	g.JSON(http.StatusOK, report)
}

// delete godoc
// @Security AdminToken
// @Summary Delete an incident report
// @Tags incidents
// @Produce json
// @Param id path string true "Incident id"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/incidents/{id} [delete]
func (c *IncidentController) delete(g *gin.Context) {
	id := g.Param("id")
	if err := c.incidentStorage.Delete(g.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			g.JSON(http.StatusNotFound, models.NewError("incident report not found"))
			return
		}
		logging.Log.Errorf("INCIDENT: failed to delete report %s: %v", id, err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not delete incident report"))
		return
	}
	logging.Log.Infof("INCIDENT: deleted report %s", id)
	g.JSON(http.StatusOK, &models.MessageResponse{Success: true, Message: "incident report deleted"})
}

// fetchPinned godoc
// @Summary Fetch pinned content by content id
// @Description Direct passthrough from the pinning provider gateway
// @Tags incidents
// @Param cid path string true "Content id"
// @Success 200
// @Failure 502 {object} models.ErrorResponse
// @Router /api/incidents/ipfs/{cid} [get]
func (c *IncidentController) fetchPinned(g *gin.Context) {
	raw, contentType, err := c.pinner.Fetch(g.Request.Context(), g.Param("cid"))
	if err != nil {
		var providerErr *ipfs.ProviderError
		if errors.As(err, &providerErr) {
			g.JSON(http.StatusBadGateway, models.NewError(providerErr.Error()))
			return
		}
		logging.Log.Errorf("INCIDENT: gateway fetch failed: %v", err)
		g.JSON(http.StatusBadGateway, models.NewError("could not fetch pinned content"))
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	g.Data(http.StatusOK, contentType, raw)
}
