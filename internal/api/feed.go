package api

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tatamelab/tatame/internal/achievements"
	"github.com/tatamelab/tatame/internal/ctxutil"
	"github.com/tatamelab/tatame/internal/db"
	"github.com/tatamelab/tatame/internal/logging"
	"github.com/tatamelab/tatame/internal/metrics"
	"github.com/tatamelab/tatame/internal/models"
	"github.com/tatamelab/tatame/internal/realtime"
)

type FeedHandler struct {
	DB        *sql.DB
	Hub       *realtime.Hub
	Evaluator *achievements.Evaluator
	Log       *logging.Log
	Loc       *time.Location
}

// List: feed dos últimos 7 dias por padrão; ?since=YYYY-MM-DD para mais.
func (h *FeedHandler) List(c echo.Context) error {
	since := time.Now().In(h.Loc).AddDate(0, 0, -7)
	if s := c.QueryParam("since"); s != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s, h.Loc)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "since inválido (use YYYY-MM-DD)")
		}
		since = parsed
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	posts, err := db.ListTrainingPostsSince(ctx, h.DB, since)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

type postPayload struct {
	PhotoRef string `json:"photo_ref"`
	Caption  string `json:"caption"`
}

func (h *FeedHandler) CreatePost(c echo.Context) error {
	studentID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req postPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	today := time.Now().In(h.Loc)
	id, err := db.InsertTrainingPost(ctx, h.DB, models.TrainingPost{
		StudentID: studentID,
		PostDate:  today,
		PhotoRef:  req.PhotoRef,
		Caption:   req.Caption,
	})
	if err != nil {
		if errors.Is(err, db.ErrDuplicateDay) {
			return c.JSON(http.StatusOK, map[string]any{
				"created": false,
				"message": "Você já postou seu treino de hoje.",
			})
		}
		return err
	}

	metrics.FeedPosts.Inc()
	if h.Hub != nil {
		h.Hub.Publish(realtime.Change{Table: "training_posts", Op: realtime.OpInsert})
	}
	if h.Evaluator != nil {
		if err := h.Evaluator.OnPost(ctx, studentID); err != nil {
			h.Log.Sugar.Warnw("avaliação de conquistas falhou", "student_id", studentID, "err", err)
		}
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": id, "created": true})
}

type reactionPayload struct {
	Emoji string `json:"emoji"`
}

func (h *FeedHandler) React(c echo.Context) error {
	studentID, err := currentUser(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c)
	if err != nil {
		return err
	}
	var req reactionPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Emoji == "" {
		req.Emoji = "💪"
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	if err := db.InsertReaction(ctx, h.DB, models.Reaction{
		PostID:    postID,
		StudentID: studentID,
		Emoji:     req.Emoji,
	}); err != nil {
		return err
	}
	if h.Hub != nil {
		h.Hub.Publish(realtime.Change{Table: "reactions", Op: realtime.OpInsert})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FeedHandler) Unreact(c echo.Context) error {
	studentID, err := currentUser(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c)
	if err != nil {
		return err
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	if err := db.DeleteReaction(ctx, h.DB, postID, studentID); err != nil {
		return err
	}
	if h.Hub != nil {
		h.Hub.Publish(realtime.Change{Table: "reactions", Op: realtime.OpDelete})
	}
	return c.NoContent(http.StatusNoContent)
}

type commentPayload struct {
	Body string `json:"body"`
}

func (h *FeedHandler) ListComments(c echo.Context) error {
	postID, err := pathID(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	comments, err := db.ListComments(ctx, h.DB, postID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

func (h *FeedHandler) Comment(c echo.Context) error {
	studentID, err := currentUser(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c)
	if err != nil {
		return err
	}
	var req commentPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Body == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "comentário vazio")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request().Context())
	defer cancel()

	id, err := db.InsertComment(ctx, h.DB, models.Comment{
		PostID:    postID,
		StudentID: studentID,
		Body:      req.Body,
	})
	if err != nil {
		return err
	}
	if h.Hub != nil {
		h.Hub.Publish(realtime.Change{Table: "comments", Op: realtime.OpInsert})
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": id})
}
