package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestSubmissions counts submitted requests by kind and outcome.
	RequestSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventdesk_request_submissions_total",
		Help: "Total number of request submissions by kind and outcome",
	}, []string{"kind", "outcome"})

	// StatusTransitions counts review decisions by resulting status.
	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventdesk_status_transitions_total",
		Help: "Total number of request status transitions by new status",
	}, []string{"status"})

	// RequestDeletions counts hard deletes performed by reviewers.
	RequestDeletions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventdesk_request_deletions_total",
		Help: "Total number of requests hard-deleted by reviewers",
	})

	// ParticipantInvites counts participant invitations.
	ParticipantInvites = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventdesk_participant_invites_total",
		Help: "Total number of participant invitations",
	})

	// UploadBytes records the size of accepted attachment uploads.
	UploadBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "eventdesk_upload_bytes",
		Help:    "Size in bytes of accepted attachment uploads",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	})
)
