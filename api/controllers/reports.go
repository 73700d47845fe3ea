package controllers

import (
	"net/http"

	"github.com/procurehub/procurehub-backend/api/responses"
	"github.com/procurehub/procurehub-backend/internal/reports"
	"github.com/procurehub/procurehub-backend/pkg/logger"
)

// GetReports computes the procurement snapshot fresh on each call.
func GetReports(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		report, err := svc.Snapshot(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
