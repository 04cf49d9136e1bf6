package model

// Product 是商品目录条目
type Product struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	ThumbnailURL string  `json:"thumbnail_url"`
}

// ProductImage 是商品的附加图片
type ProductImage struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	ImageURL  string `json:"image_url"`
}

// Color 是商品选项的颜色
type Color struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductOption 是商品的 (颜色, 库存) 选项
type ProductOption struct {
	ID        int `json:"id"`
	ProductID int `json:"product_id"`
	ColorID   int `json:"color_id"`
	Stock     int `json:"stock"`
}

// ProductOptionDetail 是商品详情中的选项条目
type ProductOptionDetail struct {
	ColorName string `json:"color_name"`
	Stock     int    `json:"product_stocks"`
}

// ProductDetail 是商品详情的响应结构
type ProductDetail struct {
	Title   string                `json:"product_title"`
	Price   int                   `json:"product_price"`
	URL     string                `json:"url"`
	Images  []string              `json:"product_images"`
	Options []ProductOptionDetail `json:"product_option"`
}
