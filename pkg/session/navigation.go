package session

import "fmt"

// Destination is a logical page of the storefront.
type Destination string

const (
	Landing Destination = "landing"
	Login   Destination = "login"
	App     Destination = "app"
)

func ParseDestination(s string) (Destination, error) {
	switch d := Destination(s); d {
	case Landing, Login, App:
		return d, nil
	}
	return "", fmt.Errorf("unknown destination %q", s)
}

// Route resolves where a request for dest actually lands. The application
// view requires a logged-in session.
func Route(dest Destination, user UserSession) Destination {
	switch {
	case dest == App && !user.IsLoggedIn:
		return Login
	case dest == Login && user.IsLoggedIn:
		return App
	default:
		return dest
	}
}
