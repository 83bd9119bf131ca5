package api

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tatamelab/tatame/internal/ctxutil"
	"github.com/tatamelab/tatame/internal/db"
	"github.com/tatamelab/tatame/internal/models"
)

type ClassHandler struct {
	DB *sql.DB
}

type classPayload struct {
	Name         string `json:"name"`
	Schedule     string `json:"schedule"`
	IsFree       bool   `json:"is_free"`
	Capacity     int    `json:"capacity"`
	InstructorID *int64 `json:"instructor_id"`
}

func (h *ClassHandler) List(c echo.Context) error {
	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	classes, err := db.ListClasses(ctx, h.DB)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, classes)
}

func (h *ClassHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	class, err := db.GetClassByID(ctx, h.DB, id)
	if err != nil {
		return err
	}
	if class == nil {
		return echo.NewHTTPError(http.StatusNotFound, "turma não encontrada")
	}
	return c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) Create(c echo.Context) error {
	var req classPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" || req.Schedule == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "nome e horário são obrigatórios")
	}
	if req.Capacity <= 0 {
		req.Capacity = 30
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	id, err := db.CreateClass(ctx, h.DB, models.ClassOffering{
		Name:         req.Name,
		Schedule:     req.Schedule,
		IsFree:       req.IsFree,
		Capacity:     req.Capacity,
		InstructorID: req.InstructorID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": id})
}

func (h *ClassHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req classPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	class, err := db.GetClassByID(ctx, h.DB, id)
	if err != nil {
		return err
	}
	if class == nil {
		return echo.NewHTTPError(http.StatusNotFound, "turma não encontrada")
	}
	if req.Name != "" {
		class.Name = req.Name
	}
	if req.Schedule != "" {
		class.Schedule = req.Schedule
	}
	if req.Capacity > 0 {
		class.Capacity = req.Capacity
	}
	class.IsFree = req.IsFree
	class.InstructorID = req.InstructorID

	if err := db.UpdateClass(ctx, h.DB, *class); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, class)
}
