package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tatamelab/tatame/internal/ctxutil"
	"github.com/tatamelab/tatame/internal/db"
	"github.com/tatamelab/tatame/internal/notify"
)

type EnrollmentHandler struct {
	DB       *sql.DB
	Notifier *notify.Telegram
}

type enrollPayload struct {
	StudentID int64 `json:"student_id"`
	ClassID   int64 `json:"class_id"`
}

func (h *EnrollmentHandler) ListByStudent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	list, err := db.ListEnrollments(ctx, h.DB, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Create: matrícula direta. Segunda matrícula regular é barrada pelo banco e
// devolve 409 com orientação para abrir solicitação.
func (h *EnrollmentHandler) Create(c echo.Context) error {
	var req enrollPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.StudentID == 0 || req.ClassID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "student_id e class_id são obrigatórios")
	}
	if err := selfOrAdmin(c, req.StudentID); err != nil {
		return err
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	id, err := db.CreateEnrollment(ctx, h.DB, req.StudentID, req.ClassID)
	if err != nil {
		if errors.Is(err, db.ErrRegularEnrollmentExists) {
			return echo.NewHTTPError(http.StatusConflict,
				"você já tem uma matrícula regular; envie uma solicitação em /enrollment-requests")
		}
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": id})
}

func (h *EnrollmentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	if err := db.DeleteEnrollment(ctx, h.DB, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EnrollmentHandler) CreateRequest(c echo.Context) error {
	var req enrollPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.StudentID == 0 || req.ClassID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "student_id e class_id são obrigatórios")
	}
	if err := selfOrAdmin(c, req.StudentID); err != nil {
		return err
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	id, err := db.CreateEnrollmentRequest(ctx, h.DB, req.StudentID, req.ClassID)
	if err != nil {
		return err
	}

	// alerta administrativo é melhor-esforço
	if h.Notifier != nil {
		student, _ := db.GetStudentByID(ctx, h.DB, req.StudentID)
		class, _ := db.GetClassByID(ctx, h.DB, req.ClassID)
		if student != nil && class != nil {
			h.Notifier.EnrollmentRequested(student.Name, class.Name)
		}
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": id})
}

func (h *EnrollmentHandler) ListPending(c echo.Context) error {
	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	list, err := db.ListPendingEnrollmentRequests(ctx, h.DB)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *EnrollmentHandler) Approve(c echo.Context) error { return h.decide(c, true) }
func (h *EnrollmentHandler) Reject(c echo.Context) error  { return h.decide(c, false) }

func (h *EnrollmentHandler) decide(c echo.Context, approve bool) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	adminID, err := currentUser(c)
	if err != nil {
		return err
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	if err := db.DecideEnrollmentRequest(ctx, h.DB, id, adminID, approve); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "solicitação não encontrada ou já decidida")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
