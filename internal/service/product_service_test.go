package service

import (
	"testing"

	apperrors "homestagram-backend/internal/errors"
	"homestagram-backend/internal/model"

	"github.com/stretchr/testify/assert"
)

// TestGetProductDetail 测试商品详情组装
func TestGetProductDetail(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo)

	mockRepo.On("FindByID", 3).Return(&model.Product{
		ID:           3,
		Name:         "원목 의자",
		Price:        45000.4,
		ThumbnailURL: "https://example.com/chair.jpg",
	}, nil)
	mockRepo.On("ListImages", 3).Return([]string{
		"https://example.com/chair-1.jpg",
		"https://example.com/chair-2.jpg",
	}, nil)
	mockRepo.On("ListOptions", 3).Return([]model.ProductOptionDetail{
		{ColorName: "walnut", Stock: 7},
		{ColorName: "oak", Stock: 0},
	}, nil)

	detail, err := service.GetProductDetail(3)
	assert.NoError(t, err)
	assert.Equal(t, "원목 의자", detail.Title)
	assert.Equal(t, 45000, detail.Price)
	assert.Len(t, detail.Images, 2)
	assert.Len(t, detail.Options, 2)
	assert.Equal(t, "walnut", detail.Options[0].ColorName)
	mockRepo.AssertExpectations(t)
}

// TestGetProductDetailNotFound 商品不存在时返回专用错误码
func TestGetProductDetailNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo)

	mockRepo.On("FindByID", 404).Return(nil, nil)

	_, err := service.GetProductDetail(404)
	assert.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	assert.True(t, ok)
	assert.Equal(t, apperrors.MsgProductNotFound, appErr.Message)
}
