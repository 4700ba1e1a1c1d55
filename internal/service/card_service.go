package service

import (
	"context"
	"errors"

	"kanny/internal/model"
	"kanny/internal/repository"

	"github.com/google/uuid"
)

type CardService struct {
	cards   repository.CardRepositoryInterface
	columns repository.ColumnRepositoryInterface
	boards  repository.BoardRepositoryInterface
}

func NewCardService(cards repository.CardRepositoryInterface, columns repository.ColumnRepositoryInterface, boards repository.BoardRepositoryInterface) *CardService {
	return &CardService{cards: cards, columns: columns, boards: boards}
}

// Create appends a card at the end of the column.
func (s *CardService) Create(ctx context.Context, columnID uuid.UUID, title string, description *string, userID uuid.UUID) (*model.Card, error) {
	column, err := s.columns.GetByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, ErrColumnNotFound
	}

	board, err := s.boards.GetByID(ctx, column.BoardID)
	if err != nil {
		return nil, err
	}
	if board == nil || board.UserID != userID {
		return nil, ErrColumnNotFound
	}

	position, err := s.cards.NextPosition(ctx, columnID)
	if err != nil {
		return nil, err
	}

	card := &model.Card{
		ID:          uuid.New(),
		ColumnID:    columnID,
		Title:       title,
		Description: description,
		Position:    position,
	}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *CardService) Update(ctx context.Context, cardID uuid.UUID, title string, description *string, userID uuid.UUID) (*model.Card, error) {
	card, err := s.authorize(ctx, cardID, userID)
	if err != nil {
		return nil, err
	}

	card.Title = title
	card.Description = description
	if err := s.cards.Update(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *CardService) Delete(ctx context.Context, cardID, userID uuid.UUID) error {
	if _, err := s.authorize(ctx, cardID, userID); err != nil {
		return err
	}
	if err := s.cards.DeleteAndResequence(ctx, cardID); err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return ErrCardNotFound
		}
		return err
	}
	return nil
}

// Move relocates a card to position within targetColumnID. The card and the
// target column must both resolve, through their boards, to userID; the
// position re-sequencing itself is a single store transaction.
func (s *CardService) Move(ctx context.Context, cardID, targetColumnID uuid.UUID, position int, userID uuid.UUID) error {
	if _, err := s.authorize(ctx, cardID, userID); err != nil {
		return err
	}

	target, err := s.columns.GetByID(ctx, targetColumnID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrTargetColumnNotFound
	}
	board, err := s.boards.GetByID(ctx, target.BoardID)
	if err != nil {
		return err
	}
	if board == nil || board.UserID != userID {
		return ErrTargetColumnNotFound
	}

	if err := s.cards.Move(ctx, cardID, targetColumnID, position); err != nil {
		switch {
		case errors.Is(err, repository.ErrCardNotFound):
			return ErrCardNotFound
		case errors.Is(err, repository.ErrInvalidPosition):
			return ErrInvalidPosition
		}
		return err
	}
	return nil
}

// authorize resolves the card and verifies the card -> column -> board ->
// owner chain. Any break, including another user's card, reads as not found.
func (s *CardService) authorize(ctx context.Context, cardID, userID uuid.UUID) (*model.Card, error) {
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, ErrCardNotFound
	}

	column, err := s.columns.GetByID(ctx, card.ColumnID)
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, ErrCardNotFound
	}

	board, err := s.boards.GetByID(ctx, column.BoardID)
	if err != nil {
		return nil, err
	}
	if board == nil || board.UserID != userID {
		return nil, ErrCardNotFound
	}
	return card, nil
}
