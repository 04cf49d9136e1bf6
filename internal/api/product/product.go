package product

import (
	"net/http"
	"strconv"

	"homestagram-backend/internal/errors"
	"homestagram-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductHandler 处理商品目录相关的HTTP请求
type ProductHandler struct {
	productService service.ProductServiceInterface
}

// NewProductHandler 创建一个新的 ProductHandler 实例
func NewProductHandler(productService service.ProductServiceInterface) *ProductHandler {
	return &ProductHandler{productService}
}

// GetProductDetail 返回商品详情
func (h *ProductHandler) GetProductDetail(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrKeyError, errors.MsgKeyError, err))
		return
	}

	detail, err := h.productService.GetProductDetail(productID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}
