package service

import (
	"context"

	"kanny/internal/model"
	"kanny/internal/repository"

	"github.com/google/uuid"
)

const defaultBoardName = "Kanny"

func defaultColumns() []model.Column {
	return []model.Column{
		{ID: uuid.New(), Name: "To Do", Position: 0},
		{ID: uuid.New(), Name: "In Progress", Position: 1},
		{ID: uuid.New(), Name: "Completed", Position: 2},
	}
}

type BoardService struct {
	boards repository.BoardRepositoryInterface
}

func NewBoardService(boards repository.BoardRepositoryInterface) *BoardService {
	return &BoardService{boards: boards}
}

func (s *BoardService) GetBoards(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	return s.boards.GetOwned(ctx, userID)
}

func (s *BoardService) GetBoard(ctx context.Context, boardID, userID uuid.UUID) (*model.Board, error) {
	board, err := s.boards.GetByIDWithChildren(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil || board.UserID != userID {
		return nil, ErrBoardNotFound
	}
	return board, nil
}

// GetOrCreateBoard returns the user's board, provisioning a default one with
// the three standard columns on first access. A board that somehow lost all
// its columns gets the defaults backfilled.
func (s *BoardService) GetOrCreateBoard(ctx context.Context, userID uuid.UUID) (*model.Board, error) {
	board, err := s.boards.FirstOwned(ctx, userID)
	if err != nil {
		return nil, err
	}

	if board == nil {
		board = &model.Board{ID: uuid.New(), UserID: userID, Name: defaultBoardName}
		columns := defaultColumns()
		if err := s.boards.CreateWithColumns(ctx, board, columns); err != nil {
			return nil, err
		}
		board.Columns = columns
		return board, nil
	}

	if len(board.Columns) == 0 {
		columns := defaultColumns()
		for i := range columns {
			columns[i].BoardID = board.ID
		}
		if err := s.boards.CreateColumns(ctx, columns); err != nil {
			return nil, err
		}
		board.Columns = columns
	}
	return board, nil
}

func (s *BoardService) CreateBoard(ctx context.Context, userID uuid.UUID, name string) (*model.Board, error) {
	board := &model.Board{ID: uuid.New(), UserID: userID, Name: name}
	columns := defaultColumns()
	if err := s.boards.CreateWithColumns(ctx, board, columns); err != nil {
		return nil, err
	}
	board.Columns = columns
	return board, nil
}

func (s *BoardService) UpdateBoard(ctx context.Context, boardID, userID uuid.UUID, name string) (*model.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil || board.UserID != userID {
		return nil, ErrBoardNotFound
	}

	board.Name = name
	if err := s.boards.Update(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *BoardService) DeleteBoard(ctx context.Context, boardID, userID uuid.UUID) error {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return err
	}
	if board == nil || board.UserID != userID {
		return ErrBoardNotFound
	}
	return s.boards.Delete(ctx, boardID)
}
