// Package metrics define los contadores prometheus del servicio.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginsTotal cuenta los intentos de login por resultado ("ok"/"fallo").
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nuppy_logins_total",
		Help: "Intentos de login, etiquetados por resultado.",
	}, []string{"resultado"})

	// CalculosTotal cuenta las corridas del motor de factores vía HTTP.
	CalculosTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nuppy_calculos_factores_total",
		Help: "Cálculos de factores ejecutados.",
	})

	// LogsTotal cuenta las entradas de auditoría escritas.
	LogsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nuppy_logs_auditoria_total",
		Help: "Entradas de auditoría registradas.",
	})
)
