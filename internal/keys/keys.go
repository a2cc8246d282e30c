// Package keys encodes hierarchical entity keys as opaque websafe
// strings. A key is a parent→child path of Kind:ID elements; the
// encoded form is the base64url encoding of the path. Raw storage IDs
// never cross the API boundary without this encoding.
package keys

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Entity kinds appearing in key paths.
const (
	KindProfile    = "Profile"
	KindConference = "Conference"
	KindSession    = "Session"
)

// ErrInvalidKey is returned when a websafe key cannot be decoded or its
// path does not match the expected kinds.
var ErrInvalidKey = errors.New("invalid key")

// Element is one Kind:ID step of a key path.
type Element struct {
	Kind string
	ID   string
}

// Key is a hierarchical entity key: the last element identifies the
// entity, preceding elements are its ancestors.
type Key struct {
	Path []Element
}

// ForConference returns the key of a conference under its organizer's
// profile.
func ForConference(organizerID, conferenceID string) Key {
	return Key{Path: []Element{
		{Kind: KindProfile, ID: organizerID},
		{Kind: KindConference, ID: conferenceID},
	}}
}

// ForSession returns the key of a session under its conference.
func ForSession(conferenceID, sessionID string) Key {
	return Key{Path: []Element{
		{Kind: KindConference, ID: conferenceID},
		{Kind: KindSession, ID: sessionID},
	}}
}

// Encode returns the websafe form of the key.
func (k Key) Encode() string {
	parts := make([]string, 0, len(k.Path))
	for _, e := range k.Path {
		parts = append(parts, e.Kind+":"+e.ID)
	}
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Join(parts, "/")))
}

// Decode parses a websafe key back into its path.
func Decode(websafe string) (Key, error) {
	raw, err := base64.RawURLEncoding.DecodeString(websafe)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	parts := strings.Split(string(raw), "/")
	k := Key{Path: make([]Element, 0, len(parts))}
	for _, p := range parts {
		kind, id, ok := strings.Cut(p, ":")
		if !ok || kind == "" || id == "" {
			return Key{}, fmt.Errorf("%w: malformed path element %q", ErrInvalidKey, p)
		}
		k.Path = append(k.Path, Element{Kind: kind, ID: id})
	}
	return k, nil
}

// DecodeConference decodes a websafe conference key and returns the
// organizer's profile ID and the conference ID.
func DecodeConference(websafe string) (organizerID, conferenceID string, err error) {
	k, err := Decode(websafe)
	if err != nil {
		return "", "", err
	}
	if len(k.Path) != 2 || k.Path[0].Kind != KindProfile || k.Path[1].Kind != KindConference {
		return "", "", fmt.Errorf("%w: not a conference key", ErrInvalidKey)
	}
	return k.Path[0].ID, k.Path[1].ID, nil
}

// DecodeSession decodes a websafe session key and returns the parent
// conference ID and the session ID.
func DecodeSession(websafe string) (conferenceID, sessionID string, err error) {
	k, err := Decode(websafe)
	if err != nil {
		return "", "", err
	}
	if len(k.Path) != 2 || k.Path[0].Kind != KindConference || k.Path[1].Kind != KindSession {
		return "", "", fmt.Errorf("%w: not a session key", ErrInvalidKey)
	}
	return k.Path[0].ID, k.Path[1].ID, nil
}
