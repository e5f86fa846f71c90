package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Marcelmutsaarts/Dialink/store"
	"github.com/Marcelmutsaarts/Dialink/utils"
)

// StatsController exposes dataset totals.
type StatsController struct {
	store *store.Store
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(st *store.Store) *StatsController {
	return &StatsController{store: st}
}

// GetStats returns user, post and comment totals.
func (s *StatsController) GetStats(ctx *gin.Context) {
	utils.Success(ctx, s.store.Totals())
}
