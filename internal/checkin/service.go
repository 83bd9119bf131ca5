package checkin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tatamelab/tatame/internal/db"
	"github.com/tatamelab/tatame/internal/metrics"
	"github.com/tatamelab/tatame/internal/models"
	"github.com/tatamelab/tatame/internal/realtime"
)

type Service struct {
	DB  *sql.DB
	Hub *realtime.Hub
	Loc *time.Location

	// Now é substituível nos testes; nil = time.Now.
	Now func() time.Time
}

type Result struct {
	Decision    Decision
	Recorded    bool
	AlreadyDone bool
	RecordID    int64
}

// Register aplica a política de janela e grava a presença. Check-in duplicado
// no dia NÃO é erro: volta AlreadyDone=true com mensagem amistosa.
func (s *Service) Register(ctx context.Context, studentID, classID int64, subclassID *int64) (*Result, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	now = now.In(s.Loc)

	class, err := db.GetClassByID(ctx, s.DB, classID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, fmt.Errorf("turma %d não existe", classID)
	}

	dec := Availability(class.Schedule, now)
	if !dec.Available {
		metrics.CheckinsDenied.WithLabelValues(string(dec.Reason)).Inc()
		return &Result{Decision: dec}, nil
	}

	id, err := db.InsertAttendance(ctx, s.DB, models.AttendanceRecord{
		StudentID:  studentID,
		ClassID:    classID,
		SubclassID: subclassID,
		CheckedAt:  now,
	}, now)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateDay) {
			dec.Message = "Você já fez check-in nessa turma hoje. Até amanhã!"
			return &Result{Decision: dec, AlreadyDone: true}, nil
		}
		return nil, err
	}

	metrics.CheckinsTotal.Inc()
	if s.Hub != nil {
		s.Hub.Publish(realtime.Change{Table: "attendance", Op: realtime.OpInsert})
	}
	return &Result{Decision: dec, Recorded: true, RecordID: id}, nil
}
