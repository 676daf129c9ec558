package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dukerupert/dukanam/internal/model"
)

// Destinations a notification can lead to.
const (
	PathHelp        = "/help"
	PathStoreOrders = "/store-orders"
	PathOrders      = "/orders"
)

// AdminUserPath is the admin page for one user.
func AdminUserPath(userID int64) string {
	return "/admin/users/" + strconv.FormatInt(userID, 10)
}

// ProfileRequests looks up the profile change request a notification refers to.
type ProfileRequests interface {
	ProfileRequest(ctx context.Context, requestID int64) (*model.ProfileChangeRequest, error)
}

// Router picks where to send the user after a notification is opened.
type Router struct {
	requests ProfileRequests
}

func NewRouter(requests ProfileRequests) *Router {
	return &Router{requests: requests}
}

// Destination applies the rules in order: a linked profile request goes to
// the requesting user's admin page, a support ticket message goes to help,
// and anything else goes to the role's order list.
func (r *Router) Destination(ctx context.Context, n model.Notification, role model.Role) (string, error) {
	switch {
	case n.RelatedProfileRequestID != nil:
		req, err := r.requests.ProfileRequest(ctx, *n.RelatedProfileRequestID)
		if err != nil {
			return "", fmt.Errorf("resolve profile request: %w", err)
		}
		return AdminUserPath(req.User.UserID), nil
	case strings.Contains(n.Message, "Support Ticket"):
		return PathHelp, nil
	case role == model.RoleStoreOwner:
		return PathStoreOrders, nil
	default:
		return PathOrders, nil
	}
}
