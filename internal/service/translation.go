package service

import (
	"context"
	"errors"

	"github.com/BloggingApp/microblog-service/internal/dto"
	"github.com/BloggingApp/microblog-service/internal/translate"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

type translationService struct {
	logger     *zap.Logger
	translator translate.Translator
}

func newTranslationService(logger *zap.Logger, translator translate.Translator) Translation {
	return &translationService{
		logger:     logger,
		translator: translator,
	}
}

func (s *translationService) Translate(ctx context.Context, input dto.TranslateRequest) (string, error) {
	if _, err := language.Parse(input.DestLanguage); err != nil {
		return "", ErrInvalidLanguage
	}
	if input.SourceLanguage != "" {
		if _, err := language.Parse(input.SourceLanguage); err != nil {
			return "", ErrInvalidLanguage
		}
	}

	if s.translator == nil {
		return "", ErrTranslationUnavailable
	}

	text, err := s.translator.Translate(ctx, input.Text, input.SourceLanguage, input.DestLanguage)
	if err != nil {
		if errors.Is(err, translate.ErrNotConfigured) {
			return "", ErrTranslationUnavailable
		}

		s.logger.Sugar().Errorf("failed to translate text: %s", err.Error())
		return "", ErrTranslationFailed
	}

	return text, nil
}
