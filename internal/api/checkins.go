package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tatamelab/tatame/internal/achievements"
	"github.com/tatamelab/tatame/internal/checkin"
	"github.com/tatamelab/tatame/internal/ctxutil"
	"github.com/tatamelab/tatame/internal/db"
	"github.com/tatamelab/tatame/internal/logging"
)

type CheckinHandler struct {
	DB        *sql.DB
	Svc       *checkin.Service
	Evaluator *achievements.Evaluator
	Log       *logging.Log
	Loc       *time.Location
}

// Availability responde se o check-in está liberado AGORA para a turma,
// sempre no fuso de referência da academia: dois alunos em fusos diferentes
// veem a mesma janela.
func (h *CheckinHandler) Availability(c echo.Context) error {
	classID, err := strconv.ParseInt(c.QueryParam("class_id"), 10, 64)
	if err != nil || classID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "class_id inválido")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	class, err := db.GetClassByID(ctx, h.DB, classID)
	if err != nil {
		return err
	}
	if class == nil {
		return echo.NewHTTPError(http.StatusNotFound, "turma não encontrada")
	}

	dec := checkin.Availability(class.Schedule, time.Now().In(h.Loc))
	return c.JSON(http.StatusOK, dec)
}

type checkinPayload struct {
	ClassID    int64  `json:"class_id"`
	SubclassID *int64 `json:"subclass_id"`
}

func (h *CheckinHandler) Register(c echo.Context) error {
	studentID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req checkinPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.ClassID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "class_id é obrigatório")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	res, err := h.Svc.Register(ctx, studentID, req.ClassID, req.SubclassID)
	if err != nil {
		return err
	}

	if res.Recorded && h.Evaluator != nil {
		if err := h.Evaluator.OnCheckin(ctx, studentID); err != nil {
			// conquista atrasada não pode derrubar o check-in
			h.Log.Sugar.Warnw("avaliação de conquistas falhou", "student_id", studentID, "err", err)
		}
	}

	status := http.StatusCreated
	if !res.Recorded {
		status = http.StatusOK
	}
	return c.JSON(status, res)
}
