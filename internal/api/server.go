// Package api expõe a aplicação via REST (echo). Autenticação custom está
// fora do escopo: a identidade chega pronta do gateway nos cabeçalhos
// X-User-ID / X-User-Role e aqui só se aplica autorização por papel.
package api

import (
	"database/sql"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/tatamelab/tatame/internal/achievements"
	"github.com/tatamelab/tatame/internal/checkin"
	"github.com/tatamelab/tatame/internal/config"
	"github.com/tatamelab/tatame/internal/logging"
	"github.com/tatamelab/tatame/internal/notify"
	"github.com/tatamelab/tatame/internal/ranking"
	"github.com/tatamelab/tatame/internal/realtime"
)

type Deps struct {
	DB        *sql.DB
	Cfg       *config.Config
	Log       *logging.Log
	Hub       *realtime.Hub
	Checkin   *checkin.Service
	Evaluator *achievements.Evaluator
	Notifier  *notify.Telegram
	RankCache *ranking.WeeklyCache
}

func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(requestLogger(d.Log))
	e.Use(countRequests())
	e.Use(identity())

	registerRoutes(e, d)
	return e
}

func registerRoutes(e *echo.Echo, d Deps) {
	std := &StudentHandler{DB: d.DB, Loc: d.Cfg.Location}
	cls := &ClassHandler{DB: d.DB}
	ins := &InstructorHandler{DB: d.DB}
	enr := &EnrollmentHandler{DB: d.DB, Notifier: d.Notifier}
	chk := &CheckinHandler{DB: d.DB, Svc: d.Checkin, Evaluator: d.Evaluator, Log: d.Log, Loc: d.Cfg.Location}
	feed := &FeedHandler{DB: d.DB, Hub: d.Hub, Evaluator: d.Evaluator, Log: d.Log, Loc: d.Cfg.Location}
	rank := &RankingHandler{DB: d.DB, Loc: d.Cfg.Location, Cache: d.RankCache}
	rep := &ReportHandler{DB: d.DB, Loc: d.Cfg.Location}
	hea := &HealthHandler{DB: d.DB}

	e.GET("/healthz", hea.Healthz)
	e.GET("/metrics", hea.Metrics)

	e.GET("/students", std.List, requireRole("admin", "instructor"))
	e.POST("/students", std.Create, requireRole("admin"))
	e.GET("/students/:id", std.Get)
	e.PUT("/students/:id", std.Update)
	e.DELETE("/students/:id", std.Deactivate, requireRole("admin"))
	e.GET("/students/:id/progress", rank.StudentProgress)
	e.GET("/students/:id/achievements", std.Achievements)
	e.GET("/students/:id/enrollments", enr.ListByStudent)

	e.GET("/classes", cls.List)
	e.GET("/classes/:id", cls.Get)
	e.POST("/classes", cls.Create, requireRole("admin"))
	e.PUT("/classes/:id", cls.Update, requireRole("admin"))

	e.GET("/instructors", ins.List)
	e.POST("/instructors", ins.Create, requireRole("admin"))

	e.POST("/enrollments", enr.Create)
	e.DELETE("/enrollments/:id", enr.Delete, requireRole("admin"))
	e.POST("/enrollment-requests", enr.CreateRequest)
	e.GET("/enrollment-requests/pending", enr.ListPending, requireRole("admin"))
	e.POST("/enrollment-requests/:id/approve", enr.Approve, requireRole("admin"))
	e.POST("/enrollment-requests/:id/reject", enr.Reject, requireRole("admin"))

	e.GET("/checkins/availability", chk.Availability)
	e.POST("/checkins", chk.Register)

	e.GET("/feed", feed.List)
	e.POST("/posts", feed.CreatePost)
	e.POST("/posts/:id/reactions", feed.React)
	e.DELETE("/posts/:id/reactions", feed.Unreact)
	e.GET("/posts/:id/comments", feed.ListComments)
	e.POST("/posts/:id/comments", feed.Comment)

	e.GET("/ranking/weekly", rank.Weekly)
	e.GET("/ranking/history", rank.History)

	e.GET("/reports/financial.xlsx", rep.Financial, requireRole("admin"))
	e.POST("/payments", rep.UpsertPayment, requireRole("admin"))
	e.POST("/payments/:id/paid", rep.MarkPaid, requireRole("admin"))
}

// Start sobe o servidor; o chamador cuida do shutdown.
func Start(e *echo.Echo, addr string) error {
	e.Server.ReadTimeout = 15 * time.Second
	e.Server.WriteTimeout = 30 * time.Second
	return e.Start(addr)
}
