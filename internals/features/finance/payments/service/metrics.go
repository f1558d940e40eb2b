package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	paymentsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "schoolku",
		Subsystem: "fees",
		Name:      "payments_recorded_total",
		Help:      "Payments accepted into the ledger, by source.",
	}, []string{"source"})

	monthConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "schoolku",
		Subsystem: "fees",
		Name:      "month_conflicts_total",
		Help:      "Payment attempts rejected because a month was already paid or claimed.",
	}, []string{"source"})

	gatewaySignatureRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "schoolku",
		Subsystem: "fees",
		Name:      "gateway_signature_rejected_total",
		Help:      "Gateway notifications with an invalid signature.",
	})

	ordersExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "schoolku",
		Subsystem: "fees",
		Name:      "gateway_orders_expired_total",
		Help:      "Gateway orders moved to failed by the reaper.",
	})
)
