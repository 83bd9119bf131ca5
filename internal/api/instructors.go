package api

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tatamelab/tatame/internal/ctxutil"
	"github.com/tatamelab/tatame/internal/db"
	"github.com/tatamelab/tatame/internal/models"
)

type InstructorHandler struct {
	DB *sql.DB
}

func (h *InstructorHandler) List(c echo.Context) error {
	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	list, err := db.ListInstructors(ctx, h.DB)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *InstructorHandler) Create(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
		Belt string `json:"belt"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "nome obrigatório")
	}
	if req.Belt == "" {
		req.Belt = "preta"
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	id, err := db.CreateInstructor(ctx, h.DB, models.Instructor{Name: req.Name, Belt: req.Belt})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": id})
}
