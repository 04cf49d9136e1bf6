package interfaces

import "homestagram-backend/internal/model"

// ProductRepository 定义了商品目录相关的数据库操作接口
type ProductRepository interface {
	FindByID(id int) (*model.Product, error)
	ListImages(productID int) ([]string, error)
	ListOptions(productID int) ([]model.ProductOptionDetail, error)
	FindOptionByID(id int) (*model.ProductOption, error)
}
