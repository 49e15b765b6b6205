package service

import (
	"net/mail"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/model"
)

// Field limits matching the database schema.
const (
	MaxUserNameLen    = 64
	MaxEmailLen       = 254
	MaxChannelNameLen = 100
	MaxTitleLen       = 150
	MaxDescriptionLen = 2000
	MaxCommentLen     = 1000
)

var linkRe = regexp.MustCompile(`^https?://.+`)

// NormalizeEmail lowercases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	if len(email) > MaxEmailLen {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func tooLong(s string, limit int) bool {
	return utf8.RuneCountInString(s) > limit
}

// ValidCategory reports whether c is one of the closed video categories.
func ValidCategory(c string) bool {
	return slices.Contains(model.Categories, c)
}

func parseID(raw, message string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, validation(message)
	}
	return id, nil
}

func validateTitle(title string) error {
	if title == "" {
		return validation("Title is required")
	}
	if tooLong(title, MaxTitleLen) {
		return validation("Title must be at most 150 characters")
	}
	return nil
}

func validateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return validation("Description is required")
	}
	if tooLong(description, MaxDescriptionLen) {
		return validation("Description must be at most 2000 characters")
	}
	return nil
}

func validateLink(link, message string) error {
	if !linkRe.MatchString(link) {
		return validation(message)
	}
	return nil
}

func validateCategory(category string) error {
	if !ValidCategory(category) {
		return validation("Invalid category. Must be one of: " + strings.Join(model.Categories, ", "))
	}
	return nil
}

// normalizeVideoPatch trims text fields in place and validates every field
// that is set.
func normalizeVideoPatch(p *model.VideoPatch) error {
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		p.Title = &t
		if err := validateTitle(t); err != nil {
			return err
		}
	}
	if p.Description != nil {
		if err := validateDescription(*p.Description); err != nil {
			return err
		}
	}
	if p.Thumbnail != nil {
		t := strings.TrimSpace(*p.Thumbnail)
		p.Thumbnail = &t
		if err := validateLink(t, "Invalid thumbnail URL format."); err != nil {
			return err
		}
	}
	if p.VideoLink != nil {
		l := strings.TrimSpace(*p.VideoLink)
		p.VideoLink = &l
		if err := validateLink(l, "Invalid video URL format."); err != nil {
			return err
		}
	}
	if p.Category != nil {
		if err := validateCategory(*p.Category); err != nil {
			return err
		}
	}
	return nil
}

// FoldTitle case-folds s for case-insensitive title matching.
func FoldTitle(s string) string {
	return cases.Fold().String(s)
}

// FilterByTitle keeps the videos whose title contains term, ignoring case.
// An empty term returns the input unchanged.
func FilterByTitle(videos []model.Video, term string) []model.Video {
	term = FoldTitle(strings.TrimSpace(term))
	if term == "" {
		return videos
	}
	filtered := make([]model.Video, 0, len(videos))
	for _, v := range videos {
		if strings.Contains(FoldTitle(v.Title), term) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}
