package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-rating-api/internal/core/ports"
)

// AdminHandler handles the admin-only dashboard and account management.
type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// DashboardStats returns the user/store/rating counters.
//
// @Summary      Admin dashboard counters
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardStats
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/dashboard-stats [get]
func (h *AdminHandler) DashboardStats(c echo.Context) error {
	stats, err := h.adminService.DashboardStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// ListStores returns all stores with their average rating.
//
// @Summary      List stores
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        sortField      query  string  false  "name|email|address|rating"
// @Param        sortDirection  query  string  false  "asc|desc"
// @Param        name           query  string  false  "substring filter"
// @Param        email          query  string  false  "substring filter"
// @Param        address        query  string  false  "substring filter"
// @Success      200  {array}   ports.StoreWithRating
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/stores [get]
func (h *AdminHandler) ListStores(c echo.Context) error {
	filter := ports.StoreListFilter{
		Name:    c.QueryParam("name"),
		Email:   c.QueryParam("email"),
		Address: c.QueryParam("address"),
		Sort: ports.ParseSort(c.QueryParam("sortField"), c.QueryParam("sortDirection"),
			ports.SortByName, ports.SortByEmail, ports.SortByAddress, ports.SortByRating),
	}

	stores, err := h.adminService.ListStores(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stores)
}

// CreateStore creates a store account.
//
// @Summary      Create a store
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createStoreRequest  true  "Store details"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/admin/stores [post]
func (h *AdminHandler) CreateStore(c echo.Context) error {
	var req createStoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.adminService.CreateStore(c.Request().Context(), ports.CreateAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createdResponse{Message: "Store added successfully", ID: id})
}

// ListUsers returns all accounts, any role.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        sortField      query  string  false  "name|email|address|role"
// @Param        sortDirection  query  string  false  "asc|desc"
// @Param        name           query  string  false  "substring filter"
// @Param        email          query  string  false  "substring filter"
// @Param        address        query  string  false  "substring filter"
// @Param        role           query  string  false  "exact role filter"
// @Success      200  {array}   ports.UserWithRating
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	filter := ports.UserListFilter{
		Name:    c.QueryParam("name"),
		Email:   c.QueryParam("email"),
		Address: c.QueryParam("address"),
		Role:    c.QueryParam("role"),
		Sort: ports.ParseSort(c.QueryParam("sortField"), c.QueryParam("sortDirection"),
			ports.SortByName, ports.SortByEmail, ports.SortByAddress, ports.SortByRole),
	}

	users, err := h.adminService.ListUsers(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser creates an account with any valid role.
//
// @Summary      Create a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.adminService.CreateUser(c.Request().Context(), ports.CreateAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createdResponse{Message: "User added successfully", ID: id})
}
