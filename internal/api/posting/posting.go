package posting

import (
	"encoding/json"
	"net/http"
	"strconv"

	"homestagram-backend/internal/errors"
	"homestagram-backend/internal/service"
	"homestagram-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PostingHandler 处理帖子与动态流相关的HTTP请求
type PostingHandler struct {
	postingService service.PostingServiceInterface
}

// NewPostingHandler 创建一个新的 PostingHandler 实例
func NewPostingHandler(postingService service.PostingServiceInterface) *PostingHandler {
	return &PostingHandler{postingService}
}

// tagListPayload 对应多部分表单 list 字段中的 JSON。
// 指针字段用于区分缺键与零值，缺键按 KEY_ERROR 处理。
type tagListPayload struct {
	Tags []struct {
		XX        *int `json:"xx"`
		YY        *int `json:"yy"`
		ProductID *int `json:"product_id"`
	} `json:"tags"`
}

// CreatePosting 处理创建帖子请求（多部分表单）
func (h *PostingHandler) CreatePosting(c *gin.Context) {
	content := c.PostForm("content")
	designType := c.PostForm("design_type")

	// 图片缺失由服务层统一报 IMAGE_EMPTY
	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	tags := []service.TagInput{}
	if list := c.PostForm("list"); list != "" {
		var payload tagListPayload
		if err := json.Unmarshal([]byte(list), &payload); err != nil {
			util.Logger.Warn("标注列表解析失败", zap.Error(err))
			errors.HandleError(c, errors.Wrap(errors.ErrKeyError, errors.MsgKeyError, err))
			return
		}
		for _, t := range payload.Tags {
			if t.XX == nil || t.YY == nil || t.ProductID == nil {
				errors.HandleError(c, errors.New(errors.ErrKeyError, errors.MsgKeyError))
				return
			}
			tags = append(tags, service.TagInput{XX: *t.XX, YY: *t.YY, ProductID: *t.ProductID})
		}
	}

	input := service.CreatePostingInput{
		UserID:     c.GetInt("user_id"),
		Content:    content,
		DesignType: designType,
		Image:      image,
		Tags:       tags,
	}

	if err := h.postingService.CreatePosting(input); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"MESSAGE": "POSTING_SUCCESS"})
}

// PublicFeed 返回公开动态流，follow/bookmark 恒为 false
func (h *PostingHandler) PublicFeed(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	feed, err := h.postingService.LoadFeed(0, page)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

// PrivateFeed 返回带浏览者收藏/关注状态的动态流
func (h *PostingHandler) PrivateFeed(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	userID := c.GetInt("user_id")

	feed, err := h.postingService.LoadFeed(userID, page)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}
