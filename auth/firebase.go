package auth

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

// NewFirebaseAuthClient builds the Firebase Auth client from
// FIREBASE_CREDENTIALS_JSON and FIREBASE_PROJECT_ID. Constructed once in
// main and passed to everything that verifies tokens or manages users.
func NewFirebaseAuthClient(ctx context.Context) (*fbauth.Client, error) {
	credsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	if credsJSON == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_JSON must be set")
	}
	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID must be set")
	}

	opt := option.WithCredentialsJSON([]byte(credsJSON))
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("initializing Firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting Firebase Auth client: %w", err)
	}
	return client, nil
}
