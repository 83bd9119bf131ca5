package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tatamelab/tatame/internal/ctxutil"
	"github.com/tatamelab/tatame/internal/db"
	"github.com/tatamelab/tatame/internal/ranking"
)

type RankingHandler struct {
	DB    *sql.DB
	Loc   *time.Location
	Cache *ranking.WeeklyCache
}

// Weekly: ranking de engajamento da semana corrente (segunda até agora).
// Serve do cache quando ninguém treinou nem postou desde o último cálculo.
func (h *RankingHandler) Weekly(c echo.Context) error {
	now := time.Now().In(h.Loc)
	weekStart := ranking.WeekStart(now)

	if h.Cache != nil {
		if entries, ok := h.Cache.Get(weekStart); ok {
			return c.JSON(http.StatusOK, map[string]any{
				"week_start": weekStart.Format("2006-01-02"),
				"entries":    entries,
			})
		}
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	attendance, err := db.ListAttendanceSince(ctx, h.DB, weekStart)
	if err != nil {
		return err
	}
	posts, err := db.ListTrainingPostsSince(ctx, h.DB, weekStart)
	if err != nil {
		return err
	}

	entries := ranking.Aggregate(attendance, posts, ranking.DefaultScoring())
	if h.Cache != nil {
		h.Cache.Put(weekStart, entries)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"week_start": weekStart.Format("2006-01-02"),
		"entries":    entries,
	})
}

// History: ranking congelado de uma semana encerrada (?week=YYYY-MM-DD,
// padrão semana passada). Vem da foto tirada pelo job na virada da semana.
func (h *RankingHandler) History(c echo.Context) error {
	now := time.Now().In(h.Loc)
	weekStart := ranking.WeekStart(now).AddDate(0, 0, -7)
	if s := c.QueryParam("week"); s != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s, h.Loc)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "week inválido (use YYYY-MM-DD)")
		}
		weekStart = ranking.WeekStart(parsed)
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	rows, err := db.ListRankingSnapshot(ctx, h.DB, weekStart)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "sem ranking congelado para essa semana")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"week_start": weekStart.Format("2006-01-02"),
		"entries":    rows,
	})
}

// StudentProgress: meta semanal do aluno e dias já concluídos.
func (h *RankingHandler) StudentProgress(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	now := time.Now().In(h.Loc)
	weekStart := ranking.WeekStart(now)

	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	student, err := db.GetStudentByID(ctx, h.DB, id)
	if err != nil {
		return err
	}
	if student == nil {
		return echo.NewHTTPError(http.StatusNotFound, "aluno não encontrado")
	}
	attendance, err := db.ListAttendanceByStudent(ctx, h.DB, id, weekStart)
	if err != nil {
		return err
	}

	prog := ranking.Progress(student.WeeklyGoal, attendance, h.Loc)
	return c.JSON(http.StatusOK, map[string]any{
		"week_start": weekStart.Format("2006-01-02"),
		"goal":       prog.Goal,
		"done":       prog.Done,
		"goal_met":   prog.GoalMet,
		"days":       daysAsStrings(prog),
	})
}

func daysAsStrings(p ranking.WeekProgress) []string {
	names := []string{"domingo", "segunda", "terça", "quarta", "quinta", "sexta", "sábado"}
	out := []string{}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if p.Days[wd] {
			out = append(out, names[int(wd)])
		}
	}
	return out
}
