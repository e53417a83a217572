package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindforge/collective-mind/core"
	"github.com/mindforge/collective-mind/registry"
	"github.com/mindforge/collective-mind/storage"
)

// Handler serves the observability endpoints for the minds running in this
// process. Reads only; the coordination protocol itself never goes through
// HTTP.
type Handler struct {
	registry  *registry.Registry
	artifacts *storage.ArtifactRepository
}

func New(reg *registry.Registry, artifacts *storage.ArtifactRepository) *Handler {
	return &Handler{registry: reg, artifacts: artifacts}
}

// GetStatus returns the live status of every registered mind.
func (h *Handler) GetStatus(c *gin.Context) {
	type mindStatus struct {
		Name           string                  `json:"name"`
		Specialization string                  `json:"specialization"`
		Phase          core.Phase              `json:"phase"`
		Mood           string                  `json:"mood"`
		Generation     int                     `json:"generation"`
		DaysElapsed    int                     `json:"days_elapsed"`
		TasksCompleted int                     `json:"tasks_completed"`
		KnownPeers     int                     `json:"known_peers"`
		Personality    core.PersonalityProfile `json:"personality"`
	}

	var statuses []mindStatus
	for _, m := range h.registry.All() {
		statuses = append(statuses, mindStatus{
			Name:           m.Name(),
			Specialization: m.Specialization(),
			Phase:          m.Phase(),
			Mood:           m.Mood(),
			Generation:     m.Generation(),
			DaysElapsed:    m.DaysElapsed(),
			TasksCompleted: m.TasksCompleted(),
			KnownPeers:     m.Relationships().Count(),
			Personality:    m.Personality(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"minds": statuses})
}

// GetRelationships returns the peer bookkeeping of one mind.
func (h *Handler) GetRelationships(c *gin.Context) {
	m := h.registry.Get(c.Param("mind"))
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown mind"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mind":          m.Name(),
		"relationships": m.Relationships().Snapshot(),
	})
}

// GetWorkLog returns the persisted work records of one mind.
func (h *Handler) GetWorkLog(c *gin.Context) {
	name := c.Param("mind")
	if h.registry.Get(name) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown mind"})
		return
	}
	records, err := h.artifacts.WorkRecords(name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mind": name, "work": records})
}

// GetStandups returns the persisted standup reports of one mind.
func (h *Handler) GetStandups(c *gin.Context) {
	name := c.Param("mind")
	if h.registry.Get(name) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown mind"})
		return
	}
	reports, err := h.artifacts.Standups(name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mind": name, "standups": reports})
}

// SetPhase advances a mind's mission phase. This is the mission-control
// entry point; minds never transition themselves.
func (h *Handler) SetPhase(c *gin.Context) {
	var req struct {
		Phase core.Phase `json:"phase"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phase request"})
		return
	}

	m := h.registry.Get(c.Param("mind"))
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown mind"})
		return
	}
	if !m.SetPhase(req.Phase) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown phase"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mind": m.Name(), "phase": req.Phase})
}
