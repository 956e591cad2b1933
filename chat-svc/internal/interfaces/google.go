package interfaces

import (
	"context"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/dto"
)

// GoogleVerifier builds the consent URL and turns an authorization code into a
// verified identity.
type GoogleVerifier interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*dto.GoogleIdentity, error)
}
