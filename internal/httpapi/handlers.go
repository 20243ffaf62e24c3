package httpapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sandpiper-dev/igdbmatch/internal/facade"
	"github.com/sandpiper-dev/igdbmatch/internal/webhookingress"
)

// Handler holds the query façade and the webhook ingress, exposing the
// four HTTP routes this service serves.
type Handler struct {
	facade  *facade.Facade
	ingress *webhookingress.Ingress
}

// New builds a Handler.
func New(f *facade.Facade, ingress *webhookingress.Ingress) *Handler {
	return &Handler{facade: f, ingress: ingress}
}

// Register mounts the four routes on router, following localnerve-jam-build-propsdb's
// api := app.Group(...) style.
func (h *Handler) Register(router fiber.Router) {
	igdb := router.Group("/igdb")
	igdb.Get("/game/:id", h.getGame)
	igdb.Post("/search", h.search)
	igdb.Post("/metadata", h.metadata)
	igdb.Post("/webhooks/:entity/:method", h.webhook)
}

// getGame handles GET /igdb/game/{id}.
// @Summary Get a game by id
// @Tags IGDB
// @Produce json
// @Param id path int true "Game id"
// @Success 200 {object} dataResponse
// @Router /igdb/game/{id} [get]
func (h *Handler) getGame(c *fiber.Ctx) error {
	id, _ := strconv.ParseUint(c.Params("id"), 10, 64)
	game, err := h.facade.GetGame(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return sendData(c, game)
}

type searchRequest struct {
	SearchTerm string `json:"SearchTerm"`
}

// search handles POST /igdb/search.
// @Summary Search for games by title
// @Tags IGDB
// @Accept json
// @Produce json
// @Param body body searchRequest true "Search term"
// @Success 200 {object} dataResponse
// @Router /igdb/search [post]
func (h *Handler) search(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, "Missing search data.")
	}
	games, err := h.facade.Search(c.Context(), req.SearchTerm)
	if err != nil {
		return handleError(c, err)
	}
	return sendData(c, games)
}

type metadataRequest struct {
	Name        string `json:"Name"`
	ReleaseYear int    `json:"ReleaseYear"`
	LibraryId   string `json:"LibraryId"`
	GameId      string `json:"GameId"`
}

// metadata handles POST /igdb/metadata.
// @Summary Resolve a fuzzy metadata request to a single game
// @Tags IGDB
// @Accept json
// @Produce json
// @Param body body metadataRequest true "Metadata request"
// @Success 200 {object} dataResponse
// @Router /igdb/metadata [post]
func (h *Handler) metadata(c *fiber.Ctx) error {
	var req metadataRequest
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, "Missing metadata data.")
	}
	game, err := h.facade.GetMetadata(c.Context(), facade.MetadataRequest{
		Name:        req.Name,
		ReleaseYear: req.ReleaseYear,
		LibraryId:   req.LibraryId,
		GameId:      req.GameId,
	})
	if err != nil {
		return handleError(c, err)
	}
	return sendData(c, game)
}

// webhook handles POST /igdb/webhooks/{entity}/{method}.
// @Summary Receive an upstream change event
// @Tags IGDB
// @Accept json
// @Param entity path string true "Entity name"
// @Param method path string true "create, update, or delete"
// @Param X-Secret header string true "Shared webhook secret"
// @Success 200
// @Router /igdb/webhooks/{entity}/{method} [post]
func (h *Handler) webhook(c *fiber.Ctx) error {
	entity := c.Params("entity")
	method := c.Params("method")
	secret := c.Get("X-Secret")

	if err := h.ingress.Handle(c.Context(), entity, method, secret, c.Body()); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
