// Package firebase bootstraps the Google clients shared by the Firestore,
// Cloud Storage and Auth adapters from a single service account.
package firebase

import (
	"context"
	"fmt"
	"strings"

	fb "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/noah-isme/portfolio-api/pkg/config"
)

// ClientOptions returns the credential options for cfg. Inline JSON wins over a file path;
// with neither set the clients fall back to application default credentials.
func ClientOptions(cfg config.FirebaseConfig) []option.ClientOption {
	if creds := strings.TrimSpace(cfg.CredentialsJSON); creds != "" {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	if path := strings.TrimSpace(cfg.CredentialsFile); path != "" {
		return []option.ClientOption{option.WithCredentialsFile(path)}
	}
	return nil
}

// NewApp initialises a Firebase app bound to the configured project and bucket.
func NewApp(ctx context.Context, cfg config.FirebaseConfig, bucket string) (*fb.App, error) {
	app, err := fb.NewApp(ctx, &fb.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: bucket,
	}, ClientOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	return app, nil
}
