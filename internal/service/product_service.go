package service

import (
	"math"

	"homestagram-backend/internal/errors"
	"homestagram-backend/internal/model"
	"homestagram-backend/internal/repository/interfaces"
)

// ProductService 处理商品目录相关的业务逻辑
type ProductService struct {
	productRepo interfaces.ProductRepository
}

// NewProductService 创建一个新的 ProductService 实例
func NewProductService(productRepo interfaces.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// GetProductDetail 返回商品详情：基本信息、附加图片与 (颜色, 库存) 选项
func (s *ProductService) GetProductDetail(id int) (*model.ProductDetail, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New(errors.ErrProductNotFound, errors.MsgProductNotFound)
	}

	images, err := s.productRepo.ListImages(id)
	if err != nil {
		return nil, err
	}

	options, err := s.productRepo.ListOptions(id)
	if err != nil {
		return nil, err
	}

	return &model.ProductDetail{
		Title:   product.Name,
		Price:   int(math.Round(product.Price)),
		URL:     product.ThumbnailURL,
		Images:  images,
		Options: options,
	}, nil
}

// ProductServiceInterface 供处理器和测试使用
type ProductServiceInterface interface {
	GetProductDetail(id int) (*model.ProductDetail, error)
}

// 确保 ProductService 实现了 ProductServiceInterface
var _ ProductServiceInterface = (*ProductService)(nil)
