package main

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ptm-api/apperrors"
	"ptm-api/models"
	"ptm-api/render"
	"ptm-api/services"
)

const apiVersion = "1.1.8"

// respondError schreibt den passenden Status; 5xx wird geloggt und ohne Details beantwortet.
func respondError(c *gin.Context, log *zap.Logger, msg string, err error) {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		requestLogger(c, log).Error(msg, zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// negotiate prüft den Accept-Header vor jeder Abfrage.
func negotiate(c *gin.Context) (render.Format, bool) {
	format, err := render.Negotiate(c.GetHeader("Accept"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return format, false
	}
	return format, true
}

// respond liefert payload als JSON oder table als CSV.
func respond(c *gin.Context, log *zap.Logger, format render.Format, payload any, table func() render.Table) {
	if format != render.CSV {
		c.JSON(http.StatusOK, payload)
		return
	}
	var buf bytes.Buffer
	if err := table().WriteCSV(&buf); err != nil {
		requestLogger(c, log).Error("CSV rendering failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "rendering error"})
		return
	}
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func setupStatusRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "alive", "version": apiVersion})
	})
}

func setupEntryRoutes(router *gin.Engine, svc *services.PTMService, log *zap.Logger) {
	router.GET("/:id/info", func(c *gin.Context) {
		info, err := svc.Info(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, log, "Info query failed", err)
			return
		}
		c.JSON(http.StatusOK, info)
	})

	router.GET("/search", func(c *gin.Context) {
		format, ok := negotiate(c)
		if !ok {
			return
		}
		term := strings.TrimSpace(c.Query("search_term"))
		if term == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "search_term is required"})
			return
		}
		params, err := searchParams(c, term, false)
		if err != nil {
			respondError(c, log, "Search failed", err)
			return
		}
		search(c, svc, log, format, params)
	})

	// Browse ist eine Suche ohne Begriff, immer mit Paging.
	router.GET("/browse", func(c *gin.Context) {
		format, ok := negotiate(c)
		if !ok {
			return
		}
		params, err := searchParams(c, "", true)
		if err != nil {
			respondError(c, log, "Browse failed", err)
			return
		}
		search(c, svc, log, format, params)
	})

	router.GET("/:id/substrate", func(c *gin.Context) {
		format, ok := negotiate(c)
		if !ok {
			return
		}
		forms, err := svc.SubstrateEvents(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, log, "Substrate events failed", err)
			return
		}
		respond(c, log, format, services.EventsBySubForm(forms), func() render.Table {
			return render.SubstrateEvents(forms)
		})
	})

	router.GET("/:id/proteoforms", func(c *gin.Context) {
		format, ok := negotiate(c)
		if !ok {
			return
		}
		items, err := svc.Proteoforms(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, log, "Proteoform query failed", err)
			return
		}
		respond(c, log, format, items, func() render.Table { return render.Proteoforms(items) })
	})

	router.GET("/:id/proteoformsppi", func(c *gin.Context) {
		format, ok := negotiate(c)
		if !ok {
			return
		}
		items, err := svc.ProteoformPPIs(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, log, "Proteoform PPI query failed", err)
			return
		}
		respond(c, log, format, items, func() render.Table { return render.ProteoformPPIs(items) })
	})

	router.GET("/:id/ptmppi", func(c *gin.Context) {
		format, ok := negotiate(c)
		if !ok {
			return
		}
		items, err := svc.PTMPPIs(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, log, "PTM PPI query failed", err)
			return
		}
		respond(c, log, format, items, func() render.Table { return render.PTMPPIs(items) })
	})
}

// searchParams liest die gemeinsamen Parameter von /search und /browse.
func searchParams(c *gin.Context, term string, forcePaging bool) (services.SearchParams, error) {
	p := services.SearchParams{
		Term:     term,
		TermType: c.Query("term_type"),
		Role:     c.Query("role"),
		PTMTypes: c.QueryArray("ptm_type"),
	}
	if p.TermType == "" {
		return p, apperrors.Rejectf("term_type is required")
	}
	if p.Role == "" {
		return p, apperrors.Rejectf("role is required")
	}

	for _, raw := range c.QueryArray("organism") {
		code, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return p, apperrors.Rejectf("invalid organism %s", raw)
		}
		p.Organisms = append(p.Organisms, code)
	}

	p.Paginate = forcePaging
	if v := c.Query("paginate"); v != "" && !forcePaging {
		paginate, err := strconv.ParseBool(v)
		if err != nil {
			return p, apperrors.Rejectf("invalid paginate %s", v)
		}
		p.Paginate = paginate
	}
	if !p.Paginate {
		return p, nil
	}

	var err error
	if p.Start, err = intParam(c, "start_index"); err != nil {
		return p, err
	}
	if p.End, err = intParam(c, "end_index"); err != nil {
		return p, err
	}
	return p, nil
}

func intParam(c *gin.Context, name string) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return 0, apperrors.Rejectf("%s is required", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, apperrors.Rejectf("invalid %s %s", name, raw)
	}
	return v, nil
}

func search(c *gin.Context, svc *services.PTMService, log *zap.Logger, format render.Format, p services.SearchParams) {
	results, total, err := svc.Search(c.Request.Context(), p)
	if err != nil {
		respondError(c, log, "Search query failed", err)
		return
	}
	c.Header("count", strconv.Itoa(total))
	respond(c, log, format, results, func() render.Table { return render.SearchResults(results) })
}

func setupBatchRoutes(router *gin.Engine, svc *services.PTMService, log *zap.Logger) {
	router.POST("/batch_ptm_enzymes", func(c *gin.Context) {
		format, ok := negotiate(c)
		if !ok {
			return
		}
		var subs []models.QuerySubstrate
		if err := c.ShouldBindJSON(&subs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		events, err := svc.BatchEnzymes(c.Request.Context(), subs)
		if err != nil {
			respondError(c, log, "Batch enzyme query failed", err)
			return
		}
		respond(c, log, format, events, func() render.Table { return render.BatchEvents(events) })
	})

	router.POST("/batch_ptm_ppi", func(c *gin.Context) {
		format, ok := negotiate(c)
		if !ok {
			return
		}
		var subs []models.QuerySubstrate
		if err := c.ShouldBindJSON(&subs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		items, err := svc.BatchPPI(c.Request.Context(), subs)
		if err != nil {
			respondError(c, log, "Batch PPI query failed", err)
			return
		}
		respond(c, log, format, items, func() render.Table { return render.BatchPPIs(items) })
	})
}

func setupStatisticsRoutes(router *gin.Engine, stats *services.StatisticsService, log *zap.Logger) {
	router.GET("/statistics", func(c *gin.Context) {
		data, err := stats.Current(c.Request.Context())
		if err != nil {
			respondError(c, log, "Statistics unavailable", err)
			return
		}
		c.Data(http.StatusOK, "application/json", data)
	})
}

func setupMSARoutes(router *gin.Engine, aligner *services.AlignmentService, log *zap.Logger) {
	router.GET("/:id/msa", func(c *gin.Context) {
		alignments, err := aligner.Align(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, log, "Alignment failed", err)
			return
		}
		c.JSON(http.StatusOK, alignments)
	})
}
