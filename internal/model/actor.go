package model

import (
	"errors"
	"fmt"
)

// ActorKind distinguishes the three identity classes a request can carry.
type ActorKind string

const (
	ActorUser      ActorKind = "user"
	ActorGuest     ActorKind = "guest"
	ActorAnonymous ActorKind = "anonymous"
)

// Actor is the resolved identity performing a request: an authenticated
// user, an anonymous visitor with a client-generated guest id, or nobody.
type Actor struct {
	Kind    ActorKind
	UserID  int64
	GuestID string
}

// UserActor returns an authenticated actor.
func UserActor(userID int64) Actor {
	return Actor{Kind: ActorUser, UserID: userID}
}

// GuestActor returns an anonymous actor identified by a client-supplied id.
func GuestActor(guestID string) Actor {
	return Actor{Kind: ActorGuest, GuestID: guestID}
}

// AnonymousActor returns an actor with no identity at all.
func AnonymousActor() Actor {
	return Actor{Kind: ActorAnonymous}
}

// Key derives the canonical storage identifier used for engagement rows.
// The fixed prefixes keep the user and guest namespaces disjoint even when
// the underlying values collide: "user_42" never equals "guest_42".
// Anonymous actors have no key.
func (a Actor) Key() string {
	switch a.Kind {
	case ActorUser:
		return fmt.Sprintf("user_%d", a.UserID)
	case ActorGuest:
		return "guest_" + a.GuestID
	default:
		return ""
	}
}

// ErrGuestIDRequired is returned when an unauthenticated caller engages
// with a post without supplying a guest identifier.
var ErrGuestIDRequired = errors.New("guest id required for unauthenticated engagement")
