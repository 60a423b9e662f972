package handlers

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/assistantcoach/coach-api/internal/dataset"
	"github.com/assistantcoach/coach-api/internal/grid"
	"github.com/assistantcoach/coach-api/internal/logic"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

type Config struct {
	Store       *dataset.Store
	Grid        *grid.Client
	Logger      *zap.Logger
	DefaultGame string
	// Services
	Analysis logic.AnalysisService
	Review   logic.ReviewService
}

type Handler struct {
	store       *dataset.Store
	grid        *grid.Client
	logger      *zap.SugaredLogger
	validator   *validator.Validate
	defaultGame string
	analysis    logic.AnalysisService
	review      logic.ReviewService
}

func New(cfg Config) *Handler {
	if cfg.DefaultGame == "" {
		cfg.DefaultGame = "valorant"
	}
	return &Handler{
		store:       cfg.Store,
		grid:        cfg.Grid,
		logger:      cfg.Logger.Sugar(),
		validator:   validator.New(),
		defaultGame: cfg.DefaultGame,
		analysis:    cfg.Analysis,
		review:      cfg.Review,
	}
}
