package models

import "time"

// AttendanceRecord: no banco há índice único (student_id, class_id, dia);
// violação é tratada como "já fez check-in hoje", não como erro.
type AttendanceRecord struct {
	ID         int64     `db:"id"`
	StudentID  int64     `db:"student_id"`
	ClassID    int64     `db:"class_id"`
	SubclassID *int64    `db:"subclass_id"`
	CheckedAt  time.Time `db:"checked_at"`
}
