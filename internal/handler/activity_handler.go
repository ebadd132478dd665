package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Esmaay/atlas-activity/internal/dto"
	"github.com/Esmaay/atlas-activity/internal/service"
	"github.com/Esmaay/atlas-activity/internal/utils"
)

// ActivityHandler serves the presented activity feed endpoints.
type ActivityHandler struct {
	service  service.ActivityViewService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewActivityHandler constructs the handler instance.
func NewActivityHandler(service service.ActivityViewService, validate *validator.Validate, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service:  service,
		validate: validate,
		logger:   logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register wires the activity feed routes.
func (h *ActivityHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Get("/groups", h.groups)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	req := dto.ActivityPageRequest{Page: page, PageSize: pageSize}
	if err := h.validate.Struct(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid pagination parameters")
	}

	result, err := h.service.ListPage(c.Context(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch activity page")
		return utils.SendError(c, fiber.StatusBadGateway, "failed to fetch activities")
	}

	if result.CacheHit {
		c.Set("X-Cache-Hit", "true")
	} else {
		c.Set("X-Cache-Hit", "false")
	}

	return utils.OK(c, result, "activities retrieved", map[string]bool{"cache_hit": result.CacheHit})
}

func (h *ActivityHandler) groups(c *fiber.Ctx) error {
	result, err := h.service.Groups(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch groups")
		return utils.SendError(c, fiber.StatusBadGateway, "failed to fetch groups")
	}

	return utils.SendSuccess(c, "groups retrieved", result)
}
