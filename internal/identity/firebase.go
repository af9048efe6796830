// AngelaMos | 2026
// firebase.go

package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/yembez/quittancesimple/internal/config"
)

type FirebaseProvider struct {
	client *auth.Client
}

func NewFirebaseProvider(
	ctx context.Context,
	cfg config.FirebaseConfig,
) (*FirebaseProvider, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(
		ctx,
		&firebase.Config{ProjectID: cfg.ProjectID},
		opts...,
	)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth client: %w", err)
	}

	return &FirebaseProvider{client: client}, nil
}

func (p *FirebaseProvider) CreateIdentity(
	ctx context.Context,
	email, password string,
) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		EmailVerified(false)

	record, err := p.client.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", fmt.Errorf("create identity: %w", ErrEmailExists)
		}
		return "", fmt.Errorf("create identity: %v: %w", err, ErrProvider)
	}

	return record.UID, nil
}

var _ Provider = (*FirebaseProvider)(nil)
