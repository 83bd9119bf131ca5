package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tatamelab/tatame/internal/ctxutil"
	"github.com/tatamelab/tatame/internal/db"
	"github.com/tatamelab/tatame/internal/models"
	"github.com/tatamelab/tatame/internal/ranking"
)

type StudentHandler struct {
	DB  *sql.DB
	Loc *time.Location
}

type studentPayload struct {
	Name          string `json:"name"`
	Belt          string `json:"belt"`
	WeeklyGoal    int    `json:"weekly_goal"`
	PaymentDueDay *int   `json:"payment_due_day"`
}

func (h *StudentHandler) List(c echo.Context) error {
	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	onlyActive := c.QueryParam("all") == ""
	students, err := db.ListStudents(ctx, h.DB, onlyActive)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, students)
}

func (h *StudentHandler) Create(c echo.Context) error {
	var req studentPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "nome obrigatório")
	}
	if err := validGoal(req.WeeklyGoal, true); err != nil {
		return err
	}
	if err := validDueDay(req.PaymentDueDay); err != nil {
		return err
	}
	if req.Belt == "" {
		req.Belt = "branca"
	}
	if req.WeeklyGoal == 0 {
		req.WeeklyGoal = 3 // sem matrícula ainda: padrão
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	id, err := db.CreateStudent(ctx, h.DB, models.Student{
		Name:          req.Name,
		Belt:          req.Belt,
		WeeklyGoal:    req.WeeklyGoal,
		PaymentDueDay: req.PaymentDueDay,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": id})
}

func (h *StudentHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	s, err := db.GetStudentByID(ctx, h.DB, id)
	if err != nil {
		return err
	}
	if s == nil {
		return echo.NewHTTPError(http.StatusNotFound, "aluno não encontrado")
	}
	return c.JSON(http.StatusOK, s)
}

// Update: aluno edita o próprio perfil; admin edita qualquer um.
// weekly_goal = 0 pede recálculo do padrão a partir das matrículas.
func (h *StudentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := selfOrAdmin(c, id); err != nil {
		return err
	}

	var req studentPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := validGoal(req.WeeklyGoal, true); err != nil {
		return err
	}
	if err := validDueDay(req.PaymentDueDay); err != nil {
		return err
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	s, err := db.GetStudentByID(ctx, h.DB, id)
	if err != nil {
		return err
	}
	if s == nil {
		return echo.NewHTTPError(http.StatusNotFound, "aluno não encontrado")
	}

	if req.Name != "" {
		s.Name = req.Name
	}
	if req.Belt != "" {
		s.Belt = req.Belt
	}
	s.PaymentDueDay = req.PaymentDueDay
	if req.WeeklyGoal > 0 {
		s.WeeklyGoal = req.WeeklyGoal
	} else {
		enrollments, err := db.ListEnrollments(ctx, h.DB, id)
		if err != nil {
			return err
		}
		s.WeeklyGoal = ranking.DefaultWeeklyGoal(enrollments)
	}

	if err := db.UpdateStudent(ctx, h.DB, *s); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *StudentHandler) Deactivate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	if err := db.DeactivateStudent(ctx, h.DB, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *StudentHandler) Achievements(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	list, err := db.ListAchievementProgress(ctx, h.DB, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id inválido")
	}
	return id, nil
}

func selfOrAdmin(c echo.Context, studentID int64) error {
	ctx := c.Request().Context()
	if role, _ := ctxutil.Role(ctx); role == "admin" {
		return nil
	}
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	if uid != studentID {
		return echo.NewHTTPError(http.StatusForbidden, "sem permissão")
	}
	return nil
}

func validGoal(g int, zeroOK bool) error {
	if g == 0 && zeroOK {
		return nil
	}
	if g < 1 || g > 7 {
		return echo.NewHTTPError(http.StatusBadRequest, "weekly_goal deve estar entre 1 e 7")
	}
	return nil
}

func validDueDay(d *int) error {
	if d == nil {
		return nil
	}
	if *d < 1 || *d > 31 {
		return echo.NewHTTPError(http.StatusBadRequest, "payment_due_day deve estar entre 1 e 31")
	}
	return nil
}
