package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	e "github.com/ariebrainware/cosec-marketplace/errs"
	"github.com/ariebrainware/cosec-marketplace/model"
	"go.uber.org/zap"
)

type MessageInput struct {
	Name    string `json:"name" example:"Nur Aisyah"`
	Email   string `json:"email" example:"aisyah@example.com"`
	Subject string `json:"subject,omitempty" example:"Annual return question"`
	Message string `json:"message" example:"Can you file for a dormant company?"`
}

type MessageService struct {
	store  Store
	logger *zap.Logger
}

func NewMessageService(store Store, logger *zap.Logger) *MessageService {
	return &MessageService{store: store, logger: logger.Named("message_service")}
}

func (s *MessageService) SubmitMessage(ctx context.Context, in MessageInput) (*model.ContactMessage, error) {
	msg := &model.ContactMessage{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}
	switch {
	case msg.Name == "":
		return nil, fmt.Errorf("%w: name is required", e.ErrValidation)
	case msg.Email == "":
		return nil, fmt.Errorf("%w: email is required", e.ErrValidation)
	case msg.Message == "":
		return nil, fmt.Errorf("%w: message is required", e.ErrValidation)
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return nil, fmt.Errorf("%w: email is not valid", e.ErrValidation)
	}

	if err := s.store.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}
	return msg, nil
}

func (s *MessageService) ListMessages(ctx context.Context, unreadOnly bool, limit, offset int) ([]model.ContactMessage, int64, error) {
	msgs, total, err := s.store.ListMessages(ctx, unreadOnly, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, total, nil
}

func (s *MessageService) MarkMessageRead(ctx context.Context, id uint) error {
	if err := s.store.MarkMessageRead(ctx, id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return fmt.Errorf("message %d: %w", id, err)
		}
		return fmt.Errorf("failed to mark message read: %w", err)
	}
	return nil
}

func (s *MessageService) DeleteMessage(ctx context.Context, id uint) error {
	if err := s.store.DeleteMessage(ctx, id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return fmt.Errorf("message %d: %w", id, err)
		}
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}
