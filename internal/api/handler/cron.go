package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsflow-api/internal/scheduler"
	"github.com/vfg2006/adsflow-api/pkg/apiErrors"
)

// CronJobServices agrupa os agendadores expostos pela API
type CronJobServices struct {
	DashboardRefreshService *scheduler.DashboardRefreshService
}

// RunCronJob dispara manualmente um job agendado
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jobType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		logrus.WithField("type", jobType).Info("INIT - RunCronJob")

		switch jobType {
		case "dashboard_refresh":
			services.DashboardRefreshService.TriggerManualSync()

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de job desconhecido", map[string]any{
				"type": jobType,
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": "started",
			"type":   jobType,
		})
	})
}

// GetCronStatus retorna o status dos agendadores
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{
			"dashboard_refresh": services.DashboardRefreshService.GetStatus(),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}
