package api

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"

	"store-rating-service/internal/repository"
	"store-rating-service/internal/service"
)

type AdminHandler struct {
	adminService service.AdminService
	validate     *validator.Validate
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		validate:     newValidator(),
	}
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Address  string `json:"address" validate:"max=400"`
	Role     string `json:"role" validate:"required,oneof=NORMAL_USER STORE_OWNER SYSTEM_ADMIN"`
}

type CreateStoreRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=60"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address" validate:"max=400"`
	OwnerName     string `json:"ownerName" validate:"required,min=2,max=60"`
	OwnerEmail    string `json:"ownerEmail" validate:"required,email"`
	OwnerPassword string `json:"ownerPassword" validate:"required,password"`
	OwnerAddress  string `json:"ownerAddress" validate:"max=400"`
}

func conflictOr500(c *fiber.Ctx, err error) error {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
	}

	slog.ErrorContext(c.UserContext(), "Admin operation failed", slog.String("error", err.Error()))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var request CreateUserRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	user, err := h.adminService.CreateUser(c.Context(), service.NewUserInput{
		Name:     request.Name,
		Email:    request.Email,
		Password: request.Password,
		Address:  request.Address,
		Role:     request.Role,
	})
	if err != nil {
		return conflictOr500(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"userId":  user.ID,
		"role":    user.Role,
	})
}

func (h *AdminHandler) CreateStore(c *fiber.Ctx) error {
	var request CreateStoreRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	store, err := h.adminService.CreateStore(c.Context(), service.NewStoreInput{
		Name:    request.Name,
		Email:   request.Email,
		Address: request.Address,
		Owner: service.NewUserInput{
			Name:     request.OwnerName,
			Email:    request.OwnerEmail,
			Password: request.OwnerPassword,
			Address:  request.OwnerAddress,
		},
	})
	if err != nil {
		return conflictOr500(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Store and owner created successfully",
		"storeId": store.ID,
		"ownerId": store.OwnerID,
	})
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	filter := repository.UserFilter{
		Name:    c.Query("name"),
		Email:   c.Query("email"),
		Address: c.Query("address"),
		Role:    c.Query("role"),
	}
	page, limit, sortBy, order := listingParams(c)

	result, err := h.adminService.ListUsers(c.Context(), filter, page, limit, sortBy, order)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error listing users", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch users"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AdminHandler) ListStores(c *fiber.Ctx) error {
	filter := repository.StoreFilter{
		Name:    c.Query("name"),
		Email:   c.Query("email"),
		Address: c.Query("address"),
	}
	page, limit, sortBy, order := listingParams(c)

	result, err := h.adminService.ListStores(c.Context(), filter, page, limit, sortBy, order)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error listing stores", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch stores"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AdminHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.adminService.GetDashboardStats(c.Context())
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error fetching dashboard stats", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch stats"})
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
