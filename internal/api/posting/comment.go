package posting

import (
	"net/http"
	"strconv"

	"homestagram-backend/internal/errors"

	"github.com/gin-gonic/gin"
)

// CreateComment 在帖子下创建评论
func (h *PostingHandler) CreateComment(c *gin.Context) {
	postingID, err := strconv.Atoi(c.Param("posting_id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrKeyError, errors.MsgKeyError, err))
		return
	}

	var commentData struct {
		Content string `json:"content" binding:"required,max=200"`
	}
	if err := c.ShouldBindJSON(&commentData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrKeyError, errors.MsgKeyError, err))
		return
	}

	userID := c.GetInt("user_id")
	comment, err := h.postingService.CreateComment(postingID, userID, commentData.Content)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"MESSAGE": "COMMENT_CREATED", "comment_id": comment.ID})
}

// UpdateComment 修改评论内容，仅作者本人可操作
func (h *PostingHandler) UpdateComment(c *gin.Context) {
	commentID, err := strconv.Atoi(c.Param("comment_id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrKeyError, errors.MsgKeyError, err))
		return
	}

	var commentData struct {
		Content string `json:"content" binding:"required,max=200"`
	}
	if err := c.ShouldBindJSON(&commentData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrKeyError, errors.MsgKeyError, err))
		return
	}

	userID := c.GetInt("user_id")
	if err := h.postingService.UpdateComment(commentID, userID, commentData.Content); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"MESSAGE": "UPDATED"})
}

// DeleteComment 删除评论，仅作者本人可操作
func (h *PostingHandler) DeleteComment(c *gin.Context) {
	commentID, err := strconv.Atoi(c.Param("comment_id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrKeyError, errors.MsgKeyError, err))
		return
	}

	userID := c.GetInt("user_id")
	if err := h.postingService.DeleteComment(commentID, userID); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"MESSAGE": "DELETED"})
}
