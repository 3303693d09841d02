package services

import (
	"context"
	"errors"
	"testing"

	"canteen-service/internal/domain"
	"canteen-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMenuService_Create(t *testing.T) {
	tests := []struct {
		name          string
		session       domain.Session
		price         int64
		setupMocks    func(*mocks.MockMenuRepository)
		expectedError error
	}{
		{
			name:    "price within bound",
			session: StaffSession(),
			price:   75,
			setupMocks: func(repo *mocks.MockMenuRepository) {
				repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.MenuItem")).Return(nil)
			},
		},
		{
			name:    "price at lower bound",
			session: StaffSession(),
			price:   50,
			setupMocks: func(repo *mocks.MockMenuRepository) {
				repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.MenuItem")).Return(nil)
			},
		},
		{
			name:          "price below bound rejected",
			session:       StaffSession(),
			price:         49,
			setupMocks:    func(*mocks.MockMenuRepository) {},
			expectedError: &domain.PriceOutOfRangeError{},
		},
		{
			name:          "price above bound rejected",
			session:       StaffSession(),
			price:         101,
			setupMocks:    func(*mocks.MockMenuRepository) {},
			expectedError: &domain.PriceOutOfRangeError{},
		},
		{
			name:          "customers cannot mutate the menu",
			session:       CustomerSession(),
			price:         75,
			setupMocks:    func(*mocks.MockMenuRepository) {},
			expectedError: domain.ErrForbidden,
		},
		{
			name:    "store failure",
			session: StaffSession(),
			price:   75,
			setupMocks: func(repo *mocks.MockMenuRepository) {
				repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.MenuItem")).Return(errors.New("duplicate entry"))
			},
			expectedError: &domain.PersistenceError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockMenuRepository)
			tt.setupMocks(mockRepo)

			service := NewMenuService(mockRepo)
			item, err := service.Create(context.Background(), tt.session, domain.MenuItem{
				Name:        "Samosa",
				Price:       tt.price,
				IsVeg:       true,
				IsAvailable: true,
			})

			switch tt.expectedError.(type) {
			case nil:
				assert.NoError(t, err)
				assert.NotNil(t, item)
				assert.NotEmpty(t, item.ID)
				assert.Equal(t, tt.price, item.Price)
			case *domain.PriceOutOfRangeError:
				var priceErr *domain.PriceOutOfRangeError
				assert.ErrorAs(t, err, &priceErr)
				assert.Nil(t, item)
				mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			case *domain.PersistenceError:
				var persistErr *domain.PersistenceError
				assert.ErrorAs(t, err, &persistErr)
				assert.Nil(t, item)
			default:
				assert.ErrorIs(t, err, tt.expectedError.(error))
				assert.Nil(t, item)
				mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestMenuService_Update(t *testing.T) {
	t.Run("price bound applies to updates too", func(t *testing.T) {
		mockRepo := new(mocks.MockMenuRepository)

		service := NewMenuService(mockRepo)
		err := service.Update(context.Background(), StaffSession(), domain.MenuItem{ID: "m1", Name: "Tea", Price: 120})

		var priceErr *domain.PriceOutOfRangeError
		assert.ErrorAs(t, err, &priceErr)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("valid update", func(t *testing.T) {
		mockRepo := new(mocks.MockMenuRepository)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.MenuItem")).Return(nil)

		service := NewMenuService(mockRepo)
		err := service.Update(context.Background(), StaffSession(), domain.MenuItem{ID: "m1", Name: "Tea", Price: 60, IsAvailable: false})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestMenuService_Delete(t *testing.T) {
	t.Run("staff can delete", func(t *testing.T) {
		mockRepo := new(mocks.MockMenuRepository)
		mockRepo.On("Delete", mock.Anything, "m1").Return(nil)

		service := NewMenuService(mockRepo)
		assert.NoError(t, service.Delete(context.Background(), StaffSession(), "m1"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("customers cannot delete", func(t *testing.T) {
		mockRepo := new(mocks.MockMenuRepository)

		service := NewMenuService(mockRepo)
		assert.ErrorIs(t, service.Delete(context.Background(), CustomerSession(), "m1"), domain.ErrForbidden)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestMenuService_List(t *testing.T) {
	mockRepo := new(mocks.MockMenuRepository)
	items := []domain.MenuItem{
		{ID: "m1", Name: "Samosa", Price: 50, IsAvailable: true},
		{ID: "m2", Name: "Tea", Price: 60, IsAvailable: true},
	}
	mockRepo.On("List", mock.Anything, true).Return(items, nil)

	service := NewMenuService(mockRepo)
	got, err := service.List(context.Background(), true)

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	mockRepo.AssertExpectations(t)
}
