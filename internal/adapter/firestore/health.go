package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// HealthCheck implements ports.HealthChecker for Firestore.
type HealthCheck struct {
	client *firestore.Client
}

// NewHealthCheck creates a Firestore health checker.
func NewHealthCheck(client *firestore.Client) *HealthCheck {
	return &HealthCheck{client: client}
}

// Ping issues the cheapest possible read to verify connectivity and
// credentials. An empty database is healthy.
func (h *HealthCheck) Ping(ctx context.Context) error {
	_, err := h.client.Collections(ctx).Next()
	if err == iterator.Done {
		return nil
	}
	return err
}

// Name returns the dependency name.
func (h *HealthCheck) Name() string {
	return "firestore"
}
