package posting

import (
	"net/http"
	"strconv"

	"homestagram-backend/internal/errors"

	"github.com/gin-gonic/gin"
)

// ToggleBookmark 切换当前用户对帖子的收藏状态
func (h *PostingHandler) ToggleBookmark(c *gin.Context) {
	postingID, err := strconv.Atoi(c.Param("posting_id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrKeyError, errors.MsgKeyError, err))
		return
	}

	userID := c.GetInt("user_id")
	created, err := h.postingService.ToggleBookmark(postingID, userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	if created {
		c.JSON(http.StatusCreated, gin.H{"MESSAGE": "BOOKMARK_CREATED"})
		return
	}
	// 204 不允许响应体，删除结果仅以状态码表达
	c.Status(http.StatusNoContent)
}

// ListBookmarks 返回当前用户收藏的帖子列表
func (h *PostingHandler) ListBookmarks(c *gin.Context) {
	userID := c.GetInt("user_id")

	bookmarks, err := h.postingService.ListBookmarks(userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"LIST": bookmarks})
}
