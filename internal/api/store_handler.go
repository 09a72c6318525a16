package api

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"store-rating-service/internal/repository"
	"store-rating-service/internal/service"
)

type StoreHandler struct {
	storeService service.StoreService
	validate     *validator.Validate
}

func NewStoreHandler(storeService service.StoreService) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
		validate:     newValidator(),
	}
}

type RateStoreRequest struct {
	Value int `json:"value" validate:"required,min=1,max=5"`
}

func listingParams(c *fiber.Ctx) (page, limit int, sortBy, order string) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit, c.Query("sortBy"), c.Query("order")
}

func (h *StoreHandler) ListStores(c *fiber.Ctx) error {
	viewerID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	filter := repository.StoreFilter{
		Name:    c.Query("name"),
		Address: c.Query("address"),
	}
	page, limit, sortBy, order := listingParams(c)

	result, err := h.storeService.ListForViewer(c.Context(), viewerID, filter, page, limit, sortBy, order)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error listing stores", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch stores"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *StoreHandler) RateStore(c *fiber.Ctx) error {
	storeIDStr := c.Params("id")
	storeID, err := uuid.Parse(storeIDStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid store ID format"})
	}

	userID, err := GetUserIDFromClaims(c)

	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	var req RateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	err = h.storeService.RateStore(c.Context(), userID, storeID, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrRatingOutOfRange):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			slog.ErrorContext(c.UserContext(), "Error rating store", slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not submit rating"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Rating submitted successfully"})
}

func (h *StoreHandler) OwnerDashboard(c *fiber.Ctx) error {
	ownerID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	page, limit, sortBy, order := listingParams(c)

	dashboard, err := h.storeService.GetOwnerDashboard(c.Context(), ownerID, page, limit, sortBy, order)
	if err != nil {
		if errors.Is(err, service.ErrNoOwnedStore) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		slog.ErrorContext(c.UserContext(), "Error building owner dashboard", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch dashboard"})
	}

	return c.Status(fiber.StatusOK).JSON(dashboard)
}
