package service

import (
	"context"
	"errors"

	"kanny/internal/model"
	"kanny/internal/repository"

	"github.com/google/uuid"
)

type ColumnService struct {
	columns repository.ColumnRepositoryInterface
	boards  repository.BoardRepositoryInterface
}

func NewColumnService(columns repository.ColumnRepositoryInterface, boards repository.BoardRepositoryInterface) *ColumnService {
	return &ColumnService{columns: columns, boards: boards}
}

func (s *ColumnService) Create(ctx context.Context, boardID uuid.UUID, name string, userID uuid.UUID) (*model.Column, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil || board.UserID != userID {
		return nil, ErrBoardNotFound
	}

	position, err := s.columns.NextPosition(ctx, boardID)
	if err != nil {
		return nil, err
	}

	column := &model.Column{
		ID:       uuid.New(),
		BoardID:  boardID,
		Name:     name,
		Position: position,
	}
	if err := s.columns.Create(ctx, column); err != nil {
		return nil, err
	}
	return column, nil
}

func (s *ColumnService) Update(ctx context.Context, columnID uuid.UUID, name string, userID uuid.UUID) (*model.Column, error) {
	column, err := s.authorize(ctx, columnID, userID)
	if err != nil {
		return nil, err
	}

	column.Name = name
	if err := s.columns.Update(ctx, column); err != nil {
		return nil, err
	}
	return column, nil
}

func (s *ColumnService) Delete(ctx context.Context, columnID, userID uuid.UUID) error {
	if _, err := s.authorize(ctx, columnID, userID); err != nil {
		return err
	}
	if err := s.columns.DeleteAndResequence(ctx, columnID); err != nil {
		if errors.Is(err, repository.ErrColumnNotFound) {
			return ErrColumnNotFound
		}
		return err
	}
	return nil
}

// authorize resolves the column and verifies the column -> board -> owner
// chain. Any break, including another user's column, reads as not found.
func (s *ColumnService) authorize(ctx context.Context, columnID, userID uuid.UUID) (*model.Column, error) {
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
	return column, nil
}
