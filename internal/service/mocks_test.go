package service_test

import (
	"context"

	"kanny/internal/auth"
	"kanny/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByFirebaseUID(ctx context.Context, uid string) (*model.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) CreateWithColumns(ctx context.Context, board *model.Board, columns []model.Column) error {
	args := m.Called(ctx, board, columns)
	return args.Error(0)
}

func (m *MockBoardRepository) CreateColumns(ctx context.Context, columns []model.Column) error {
	args := m.Called(ctx, columns)
	return args.Error(0)
}

func (m *MockBoardRepository) GetOwned(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Board), args.Error(1)
}

func (m *MockBoardRepository) FirstOwned(ctx context.Context, userID uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Board), args.Error(1)
}

func (m *MockBoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Board), args.Error(1)
}

func (m *MockBoardRepository) GetByIDWithChildren(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Board), args.Error(1)
}

func (m *MockBoardRepository) Update(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockColumnRepository struct {
	mock.Mock
}

func (m *MockColumnRepository) Create(ctx context.Context, column *model.Column) error {
	args := m.Called(ctx, column)
	return args.Error(0)
}

func (m *MockColumnRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Column), args.Error(1)
}

func (m *MockColumnRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	args := m.Called(ctx, boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Column), args.Error(1)
}

func (m *MockColumnRepository) Update(ctx context.Context, column *model.Column) error {
	args := m.Called(ctx, column)
	return args.Error(0)
}

func (m *MockColumnRepository) DeleteAndResequence(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockColumnRepository) NextPosition(ctx context.Context, boardID uuid.UUID) (int, error) {
	args := m.Called(ctx, boardID)
	return args.Int(0), args.Error(1)
}

type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Create(ctx context.Context, card *model.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Card), args.Error(1)
}

func (m *MockCardRepository) GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Card, error) {
	args := m.Called(ctx, columnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Card), args.Error(1)
}

func (m *MockCardRepository) Update(ctx context.Context, card *model.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) DeleteAndResequence(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCardRepository) Move(ctx context.Context, cardID, targetColumnID uuid.UUID, position int) error {
	args := m.Called(ctx, cardID, targetColumnID, position)
	return args.Error(0)
}

func (m *MockCardRepository) NextPosition(ctx context.Context, columnID uuid.UUID) (int, error) {
	args := m.Called(ctx, columnID)
	return args.Int(0), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(ctx context.Context, userID uuid.UUID) (*auth.TokenPair, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenPair), args.Error(1)
}

func (m *MockTokenIssuer) Redeem(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenPair), args.Error(1)
}

func (m *MockTokenIssuer) Revoke(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

type MockIdentityVerifier struct {
	mock.Mock
}

func (m *MockIdentityVerifier) Verify(ctx context.Context, idToken string) (*auth.ExternalIdentity, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.ExternalIdentity), args.Error(1)
}
