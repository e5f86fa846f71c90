package main

import (
	"time"

	"github.com/Marcelmutsaarts/Dialink/config"
	"github.com/Marcelmutsaarts/Dialink/moderation"
	"github.com/Marcelmutsaarts/Dialink/routes"
	"github.com/Marcelmutsaarts/Dialink/store"
	"github.com/Marcelmutsaarts/Dialink/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	var rewriter moderation.TextRewriter
	switch {
	case cfg.ModerationDisabled:
		utils.Sugar.Warn("moderation disabled by configuration, comments will be stored as submitted")
	case cfg.ModerationAPIKey == "":
		utils.Sugar.Warn("no moderation API key configured, comments will be stored as submitted")
	default:
		rewriter = moderation.NewOpenAIRewriter(cfg.ModerationAPIKey, cfg.ModerationBaseURL, cfg.ModerationModel, cfg.ModerationTemperature)
	}
	moderator := moderation.NewModerator(rewriter, time.Duration(cfg.ModerationTimeoutSec)*time.Second, utils.Sugar)

	st := store.New(cfg.DataFile, moderator, utils.Sugar)
	if err := st.Load(); err != nil {
		utils.Sugar.Fatalf("failed to load dataset: %v", err)
	}

	r := routes.SetupRouter(st)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
