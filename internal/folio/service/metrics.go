package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Redemption outcomes, used as the "outcome" label.
const (
	outcomeRedirect = "redirect"
	outcomeMissing  = "missing_token"
	outcomeInvalid  = "invalid_token"
	outcomeNotFound = "not_found"
	outcomeIssued   = "issued"
)

var (
	linksIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "folio_links_issued_total",
		Help: "Download link tokens signed.",
	})
	linkRedemptionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_link_redemptions_total",
		Help: "Download link redemptions by outcome.",
	}, []string{"outcome"})
	downloadRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_download_requests_total",
		Help: "Download ticket requests by outcome.",
	}, []string{"outcome"})
	linkRevocationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "folio_link_revocations_total",
		Help: "Download links revoked by an operator.",
	})
	revocationLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_revocation_lookups_total",
		Help: "Revocation checks by where they were answered (cache, store, skip).",
	}, []string{"source"})
	catalogResources = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "folio_catalog_resources",
		Help: "Resources in the current catalog snapshot.",
	})
)
