package user

import (
	"net/http"

	"homestagram-backend/internal/errors"
	"homestagram-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler 处理关注与购买历史相关的HTTP请求
type UserHandler struct {
	userService service.UserServiceInterface
}

// NewUserHandler 创建一个新的 UserHandler 实例
func NewUserHandler(userService service.UserServiceInterface) *UserHandler {
	return &UserHandler{userService}
}

// ToggleFollow 切换对目标用户的关注状态
func (h *UserHandler) ToggleFollow(c *gin.Context) {
	var followData struct {
		UserID int `json:"user_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&followData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrKeyError, errors.MsgKeyError, err))
		return
	}

	followerID := c.GetInt("user_id")
	followed, err := h.userService.ToggleFollow(followerID, followData.UserID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	if followed {
		c.JSON(http.StatusOK, gin.H{"MESSAGE": "FOLLOWED"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"MESSAGE": "UNFOLLOWED"})
}

// ListFollowing 返回当前用户关注的用户列表
func (h *UserHandler) ListFollowing(c *gin.Context) {
	userID := c.GetInt("user_id")

	following, err := h.userService.ListFollowing(userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": following})
}

// CreatePurchase 追加一条购买流水
func (h *UserHandler) CreatePurchase(c *gin.Context) {
	var purchaseData struct {
		ProductID    int    `json:"product_id" binding:"required"`
		Price        int    `json:"price" binding:"required"`
		PayerID      string `json:"payerID" binding:"required"`
		PaymentID    string `json:"paymentID" binding:"required"`
		PaymentToken string `json:"paymentToken" binding:"required"`
	}

	if err := c.ShouldBindJSON(&purchaseData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrKeyError, errors.MsgKeyError, err))
		return
	}

	userID := c.GetInt("user_id")
	err := h.userService.CreatePurchase(userID, service.PurchaseInput{
		ProductOptionID: purchaseData.ProductID,
		Price:           purchaseData.Price,
		PayerID:         purchaseData.PayerID,
		PaymentID:       purchaseData.PaymentID,
		PaymentToken:    purchaseData.PaymentToken,
	})
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"MESSAGE": "CREATED"})
}

// ListPurchases 返回当前用户的购买历史
func (h *UserHandler) ListPurchases(c *gin.Context) {
	userID := c.GetInt("user_id")

	purchases, err := h.userService.ListPurchaseHistory(userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"RESPONSE": purchases})
}
