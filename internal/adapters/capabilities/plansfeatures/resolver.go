package plansfeatures

import (
	"context"
	"errors"
	"strings"
)

// Resolver responde capabilities del usuario del dispositivo.
type Resolver struct {
	client   *Client
	userID   string
	allowAll bool
}

// NewResolver crea un resolver. Con allowAll todo devuelve true sin llamar
// a upstream (modo dev).
func NewResolver(client *Client, userID string, allowAll bool) *Resolver {
	return &Resolver{
		client:   client,
		userID:   strings.TrimSpace(userID),
		allowAll: allowAll,
	}
}

func (r *Resolver) Has(ctx context.Context, capability string) (bool, error) {
	capability = strings.TrimSpace(capability)
	if capability == "" {
		return false, errors.New("capability required")
	}
	if r.allowAll {
		return true, nil
	}
	if r.client == nil || !r.client.IsConfigured() {
		return false, ErrPlansNotConfigured
	}

	resp, err := r.client.GetCapabilities(ctx, r.userID)
	if err != nil {
		return false, err
	}
	return resp.Capabilities[capability], nil
}
