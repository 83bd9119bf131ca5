package models

import "time"

type ClassOffering struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Schedule     string `db:"schedule"` // texto livre, ex.: "Segunda e Quarta, 19h-20h"
	IsFree       bool   `db:"is_free"`
	Capacity     int    `db:"capacity"`
	InstructorID *int64 `db:"instructor_id"`
}

type Enrollment struct {
	ID        int64     `db:"id"`
	StudentID int64     `db:"student_id"`
	ClassID   int64     `db:"class_id"`
	CreatedAt time.Time `db:"created_at"`

	// preenchido por JOIN quando necessário
	ClassName string `db:"class_name"`
	Schedule  string `db:"schedule"`
	IsFree    bool   `db:"is_free"`
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// EnrollmentRequest: matrícula regular extra passa por aprovação,
// nunca é criada direto.
type EnrollmentRequest struct {
	ID        int64         `db:"id"`
	StudentID int64         `db:"student_id"`
	ClassID   int64         `db:"class_id"`
	Status    RequestStatus `db:"status"`
	DecidedBy *int64        `db:"decided_by"`
	DecidedAt *time.Time    `db:"decided_at"`
	CreatedAt time.Time     `db:"created_at"`

	StudentName string `db:"student_name"`
	ClassName   string `db:"class_name"`
}
