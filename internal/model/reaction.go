package model

// Reaction is a like or dislike cast by an account on a video.
type Reaction string

const (
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
)

// Opposite returns the mutually exclusive reaction.
func (r Reaction) Opposite() Reaction {
	if r == ReactionLike {
		return ReactionDislike
	}
	return ReactionLike
}

// Valid reports whether r is a known reaction.
func (r Reaction) Valid() bool {
	return r == ReactionLike || r == ReactionDislike
}

// ReactionResponse is the API response after a reaction.
type ReactionResponse struct {
	Like    int64 `json:"like"`
	Dislike int64 `json:"dislike"`
}
