package service_test

import (
	"context"
	"testing"

	"kanny/internal/model"
	"kanny/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestBoardService_GetOrCreateBoard_ProvisionsDefault(t *testing.T) {
	// Arrange
	mockBoards := new(MockBoardRepository)
	boardService := service.NewBoardService(mockBoards)
	userID := uuid.New()

	mockBoards.On("FirstOwned", mock.Anything, userID).Return(nil, nil)

	var createdColumns []model.Column
	mockBoards.On("CreateWithColumns", mock.Anything, mock.AnythingOfType("*model.Board"), mock.AnythingOfType("[]model.Column")).
		Run(func(args mock.Arguments) {
			createdColumns = args.Get(2).([]model.Column)
		}).
		Return(nil)

	// Act
	board, err := boardService.GetOrCreateBoard(context.Background(), userID)

	// Assert: first access provisions the standard three-column board
	assert.NoError(t, err)
	assert.Equal(t, "Kanny", board.Name)
	assert.Equal(t, userID, board.UserID)
	assert.Len(t, createdColumns, 3)
	assert.Equal(t, "To Do", createdColumns[0].Name)
	assert.Equal(t, "In Progress", createdColumns[1].Name)
	assert.Equal(t, "Completed", createdColumns[2].Name)
	for i, column := range createdColumns {
		assert.Equal(t, i, column.Position)
	}
	assert.Equal(t, createdColumns, board.Columns)
	mockBoards.AssertExpectations(t)
}

func TestBoardService_GetOrCreateBoard_ReturnsExisting(t *testing.T) {
	// Arrange
	mockBoards := new(MockBoardRepository)
	boardService := service.NewBoardService(mockBoards)
	userID := uuid.New()

	existing := &model.Board{
		ID:     uuid.New(),
		UserID: userID,
		Name:   "My Board",
		Columns: []model.Column{
			{ID: uuid.New(), Name: "Backlog", Position: 0},
		},
	}
	mockBoards.On("FirstOwned", mock.Anything, userID).Return(existing, nil)

	// Act
	board, err := boardService.GetOrCreateBoard(context.Background(), userID)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, existing, board)
	mockBoards.AssertNotCalled(t, "CreateWithColumns", mock.Anything, mock.Anything, mock.Anything)
	mockBoards.AssertNotCalled(t, "CreateColumns", mock.Anything, mock.Anything)
}

func TestBoardService_GetOrCreateBoard_BackfillsColumns(t *testing.T) {
	// Arrange
	mockBoards := new(MockBoardRepository)
	boardService := service.NewBoardService(mockBoards)
	userID := uuid.New()

	existing := &model.Board{ID: uuid.New(), UserID: userID, Name: "Empty"}
	mockBoards.On("FirstOwned", mock.Anything, userID).Return(existing, nil)

	var backfilled []model.Column
	mockBoards.On("CreateColumns", mock.Anything, mock.AnythingOfType("[]model.Column")).
		Run(func(args mock.Arguments) {
			backfilled = args.Get(1).([]model.Column)
		}).
		Return(nil)

	// Act
	board, err := boardService.GetOrCreateBoard(context.Background(), userID)

	// Assert: the defaults are recreated against the existing board
	assert.NoError(t, err)
	assert.Len(t, board.Columns, 3)
	assert.Len(t, backfilled, 3)
	for _, column := range backfilled {
		assert.Equal(t, existing.ID, column.BoardID)
	}
}

func TestBoardService_GetBoard_OtherUsersBoard(t *testing.T) {
	// Arrange
	mockBoards := new(MockBoardRepository)
	boardService := service.NewBoardService(mockBoards)

	owner := uuid.New()
	intruder := uuid.New()
	board := &model.Board{ID: uuid.New(), UserID: owner, Name: "Private"}
	mockBoards.On("GetByIDWithChildren", mock.Anything, board.ID).Return(board, nil)

	// Act
	got, err := boardService.GetBoard(context.Background(), board.ID, intruder)

	// Assert: someone else's board is indistinguishable from a missing one
	assert.ErrorIs(t, err, service.ErrBoardNotFound)
	assert.Nil(t, got)
}

func TestBoardService_DeleteBoard(t *testing.T) {
	// Arrange
	mockBoards := new(MockBoardRepository)
	boardService := service.NewBoardService(mockBoards)

	userID := uuid.New()
	board := &model.Board{ID: uuid.New(), UserID: userID, Name: "Done with this"}
	mockBoards.On("GetByID", mock.Anything, board.ID).Return(board, nil)
	mockBoards.On("Delete", mock.Anything, board.ID).Return(nil)

	// Act
	err := boardService.DeleteBoard(context.Background(), board.ID, userID)

	// Assert
	assert.NoError(t, err)
	mockBoards.AssertExpectations(t)
}

func TestBoardService_DeleteBoard_NotFound(t *testing.T) {
	// Arrange
	mockBoards := new(MockBoardRepository)
	boardService := service.NewBoardService(mockBoards)

	boardID := uuid.New()
	mockBoards.On("GetByID", mock.Anything, boardID).Return(nil, nil)

	// Act
	err := boardService.DeleteBoard(context.Background(), boardID, uuid.New())

	// Assert
	assert.ErrorIs(t, err, service.ErrBoardNotFound)
	mockBoards.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
