package domain

import "context"

// Profile is the mutable user profile whose weight changes drive the weight
// history aggregate.
type Profile struct {
	Weight    float64 `json:"weight"`
	Height    float64 `json:"height"`
	UpdatedAt int64   `json:"updatedAt"`
}

// ProfileRepository is the port for profile persistence. Get returns
// (nil, nil) when no profile exists yet.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	SetProfile(ctx context.Context, userID string, p Profile) error
}
