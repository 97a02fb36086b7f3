package firestore

import (
	"context"
	"encoding/json"
	"fmt"

	"stripe-checkout-bridge/config"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// serviceAccount is the minimal credentials JSON the Google auth stack
// accepts, assembled from the discrete config fields.
type serviceAccount struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

func credentialsJSON(cfg config.FirestoreConfig) ([]byte, error) {
	return json.Marshal(serviceAccount{
		Type:        "service_account",
		ProjectID:   cfg.ProjectID,
		ClientEmail: cfg.ClientEmail,
		PrivateKey:  cfg.PrivateKeyPEM(),
		TokenURI:    "https://oauth2.googleapis.com/token",
	})
}

// NewClient creates a Firestore client from service-account config. The
// client is constructed once at startup and shared across requests.
func NewClient(ctx context.Context, cfg config.FirestoreConfig) (*firestore.Client, error) {
	creds, err := credentialsJSON(cfg)
	if err != nil {
		return nil, fmt.Errorf("assembling firestore credentials: %w", err)
	}
	client, err := firestore.NewClient(ctx, cfg.ProjectID, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	return client, nil
}
