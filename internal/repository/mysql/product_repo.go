package mysql

import (
	"database/sql"

	"homestagram-backend/internal/model"
	"homestagram-backend/internal/util"

	"go.uber.org/zap"
)

// productRepository 实现了 ProductRepository 接口
type productRepository struct {
	db *sql.DB
}

// NewProductRepository 创建一个新的 productRepository 实例
func NewProductRepository(db *sql.DB) *productRepository {
	return &productRepository{db}
}

// FindByID 通过ID查找商品，不存在时返回 (nil, nil)
func (r *productRepository) FindByID(id int) (*model.Product, error) {
	var product model.Product
	err := r.db.QueryRow(
		`SELECT id, name, price, thumbnail_url FROM products WHERE id = ?`, id).Scan(
		&product.ID, &product.Name, &product.Price, &product.ThumbnailURL,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListImages 返回商品的全部附加图片地址
func (r *productRepository) ListImages(productID int) ([]string, error) {
	rows, err := r.db.Query(
		`SELECT image_url FROM product_images WHERE product_id = ? ORDER BY id ASC`, productID)
	if err != nil {
		util.Logger.Error("获取商品图片失败", zap.Error(err), zap.Int("product_id", productID))
		return nil, err
	}
	defer rows.Close()

	images := []string{}
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		images = append(images, url)
	}
	return images, rows.Err()
}

// ListOptions 返回商品的 (颜色, 库存) 选项列表
func (r *productRepository) ListOptions(productID int) ([]model.ProductOptionDetail, error) {
	query := `
        SELECT c.name, po.stock
        FROM product_options po
        JOIN colors c ON po.color_id = c.id
        WHERE po.product_id = ?
        ORDER BY po.id ASC`

	rows, err := r.db.Query(query, productID)
	if err != nil {
		util.Logger.Error("获取商品选项失败", zap.Error(err), zap.Int("product_id", productID))
		return nil, err
	}
	defer rows.Close()

	options := []model.ProductOptionDetail{}
	for rows.Next() {
		var opt model.ProductOptionDetail
		if err := rows.Scan(&opt.ColorName, &opt.Stock); err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

// FindOptionByID 通过ID查找商品选项，不存在时返回 (nil, nil)
func (r *productRepository) FindOptionByID(id int) (*model.ProductOption, error) {
	var option model.ProductOption
	err := r.db.QueryRow(
		`SELECT id, product_id, color_id, stock FROM product_options WHERE id = ?`, id).Scan(
		&option.ID, &option.ProductID, &option.ColorID, &option.Stock,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &option, nil
}
