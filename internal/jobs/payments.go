package jobs

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/tatamelab/tatame/internal/ctxutil"
	"github.com/tatamelab/tatame/internal/db"
	"github.com/tatamelab/tatame/internal/notify"
)

// OverduePaymentsScan varre mensalidades vencidas do mês e avisa o chat
// administrativo. Roda uma vez por dia; reenvio diário é aceitável porque o
// alerta some quando o pagamento é registrado.
func OverduePaymentsScan(database *sql.DB, loc *time.Location, tg *notify.Telegram, sugar *zap.SugaredLogger) Job {
	return func(ctx context.Context) error {
		ctx, cancel := ctxutil.WithDBTimeout(ctx)
		defer cancel()

		overdue, err := db.ListOverduePayments(ctx, database, time.Now().In(loc))
		if err != nil {
			return err
		}
		if len(overdue) == 0 {
			return nil
		}
		names := make([]string, 0, len(overdue))
		for _, p := range overdue {
			names = append(names, p.StudentName)
		}
		sugar.Infow("mensalidades atrasadas", "count", len(names))
		if tg != nil {
			tg.PaymentsOverdue(names)
		}
		return nil
	}
}
