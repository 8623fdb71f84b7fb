package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"gyansetu/internal/models"
	"gyansetu/internal/repository"
)

const (
	DefaultLanguage = "en"
	DefaultTheme    = "system"
)

var supportedLanguages = []language.Tag{
	language.English,
	language.Hindi,
	language.Kannada,
	language.Spanish,
	language.Tamil,
	language.Telugu,
	language.Bengali,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

var supportedThemes = map[string]bool{"light": true, "dark": true, "system": true}

type PreferenceService interface {
	Get(ctx context.Context, userID string) (*models.Preferences, error)
	Update(ctx context.Context, userID, lang, theme string) (*models.Preferences, error)
}

type preferenceService struct {
	prefRepo repository.PreferenceRepository
}

func NewPreferenceService(prefRepo repository.PreferenceRepository) PreferenceService {
	return &preferenceService{prefRepo: prefRepo}
}

// ResolveLanguage maps a BCP 47 tag to the closest supported language.
func ResolveLanguage(tag string) (string, error) {
	parsed, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return "", fmt.Errorf("%w: language %q", ErrInvalidField, tag)
	}
	_, index, _ := languageMatcher.Match(parsed)
	return supportedLanguages[index].String(), nil
}

func (s *preferenceService) Get(ctx context.Context, userID string) (*models.Preferences, error) {
	prefs, err := s.prefRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &models.Preferences{UserID: userID, Language: DefaultLanguage, Theme: DefaultTheme}, nil
		}
		return nil, err
	}
	return prefs, nil
}

// Update changes the non-empty fields and keeps the rest.
func (s *preferenceService) Update(ctx context.Context, userID, lang, theme string) (*models.Preferences, error) {
	prefs, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if lang != "" {
		resolved, err := ResolveLanguage(lang)
		if err != nil {
			return nil, err
		}
		prefs.Language = resolved
	}

	if theme != "" {
		theme = strings.ToLower(strings.TrimSpace(theme))
		if !supportedThemes[theme] {
			return nil, ErrUnsupportedTheme
		}
		prefs.Theme = theme
	}

	if err := s.prefRepo.Save(ctx, prefs); err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}
	return prefs, nil
}
