package middleware

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

type FirebaseAuthConfig struct {
	ProjectID       string
	CredentialsFile string
	CredentialsJSON string
}

func (c FirebaseAuthConfig) clientOptions() []option.ClientOption {
	opts := make([]option.ClientOption, 0, 1)
	switch {
	case c.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(c.CredentialsJSON)))
	case c.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(c.CredentialsFile))
	}
	return opts
}

// NewFirebaseApp initializes the Admin SDK. Without explicit credentials it
// falls back to Application Default Credentials.
func NewFirebaseApp(ctx context.Context, cfg FirebaseAuthConfig) (*firebase.App, error) {
	var conf *firebase.Config
	if cfg.ProjectID != "" {
		conf = &firebase.Config{ProjectID: cfg.ProjectID}
	}
	app, err := firebase.NewApp(ctx, conf, cfg.clientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	return app, nil
}

func NewFirebaseAuthClient(ctx context.Context, cfg FirebaseAuthConfig) (*auth.Client, error) {
	app, err := NewFirebaseApp(ctx, cfg)
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}
	return client, nil
}

// FirebaseVerifier accepts Firebase ID tokens.
type FirebaseVerifier struct {
	Client *auth.Client
}

func (v FirebaseVerifier) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	if v.Client == nil {
		return nil, ErrInvalidToken
	}
	tok, err := v.Client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return firebaseIdentity(tok.UID, tok.Claims), nil
}

// firebaseIdentity keeps the email claim only once Firebase has verified it;
// lookupUser resolves staff accounts by that address.
func firebaseIdentity(uid string, claims map[string]interface{}) *Identity {
	id := &Identity{UserID: uid}
	if verified, _ := claims["email_verified"].(bool); verified {
		id.Email, _ = claims["email"].(string)
	}
	return id
}
