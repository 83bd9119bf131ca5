package models

import "time"

// TrainingPost: um post por aluno por dia (índice único no banco).
// PhotoRef é uma referência opaca ao bucket de storage, nunca os bytes.
type TrainingPost struct {
	ID        int64     `db:"id"`
	StudentID int64     `db:"student_id"`
	PostDate  time.Time `db:"post_date"`
	PhotoRef  string    `db:"photo_ref"`
	Caption   string    `db:"caption"`
	CreatedAt time.Time `db:"created_at"`

	StudentName   string `db:"student_name"`
	ReactionCount int    `db:"reaction_count"`
	CommentCount  int    `db:"comment_count"`
}

type Reaction struct {
	ID        int64     `db:"id"`
	PostID    int64     `db:"post_id"`
	StudentID int64     `db:"student_id"`
	Emoji     string    `db:"emoji"`
	CreatedAt time.Time `db:"created_at"`
}

type Comment struct {
	ID        int64     `db:"id"`
	PostID    int64     `db:"post_id"`
	StudentID int64     `db:"student_id"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`

	StudentName string `db:"student_name"`
}
