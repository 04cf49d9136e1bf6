package posting

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "homestagram-backend/internal/errors"
	"homestagram-backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestCreateComment 测试创建评论处理器
func TestCreateComment(t *testing.T) {
	mockService := new(MockPostingService)
	handler := NewPostingHandler(mockService)

	router := gin.New()
	router.POST("/postings/:posting_id/comment", asUser(1), handler.CreateComment)

	userID := 1
	mockService.On("CreateComment", 3, 1, "멋진 방이네요").Return(
		&model.Comment{ID: 9, PostingID: 3, UserID: &userID, Content: "멋진 방이네요"}, nil)

	body := []byte(`{"content": "멋진 방이네요"}`)
	req, _ := http.NewRequest("POST", "/postings/3/comment", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "COMMENT_CREATED", response["MESSAGE"])
	assert.Equal(t, float64(9), response["comment_id"])
	mockService.AssertExpectations(t)

	// 空内容在绑定阶段被拒绝
	req, _ = http.NewRequest("POST", "/postings/3/comment", bytes.NewBuffer([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, apperrors.MsgKeyError, response["MESSAGE"])
}

// TestUpdateComment 测试修改评论处理器
func TestUpdateComment(t *testing.T) {
	mockService := new(MockPostingService)
	handler := NewPostingHandler(mockService)

	router := gin.New()
	router.PATCH("/postings/comment/:comment_id", asUser(1), handler.UpdateComment)

	// 作者本人修改成功
	mockService.On("UpdateComment", 9, 1, "수정된 내용").Return(nil)

	body := []byte(`{"content": "수정된 내용"}`)
	req, _ := http.NewRequest("PATCH", "/postings/comment/9", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "UPDATED", response["MESSAGE"])
	mockService.AssertExpectations(t)

	// 评论不存在时返回404
	mockService.On("UpdateComment", 404, 1, mock.Anything).Return(
		apperrors.New(apperrors.ErrCommentNotFound, apperrors.MsgCommentNotFound))

	req, _ = http.NewRequest("PATCH", "/postings/comment/404", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, apperrors.MsgCommentNotFound, response["MESSAGE"])
}

// TestDeleteComment 测试删除评论处理器
func TestDeleteComment(t *testing.T) {
	mockService := new(MockPostingService)
	handler := NewPostingHandler(mockService)

	router := gin.New()
	router.DELETE("/postings/comment/:comment_id", asUser(2), handler.DeleteComment)

	// 非作者删除被拒绝
	mockService.On("DeleteComment", 9, 2).Return(
		apperrors.New(apperrors.ErrForbidden, apperrors.MsgForbidden)).Once()

	req, _ := http.NewRequest("DELETE", "/postings/comment/9", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, apperrors.MsgForbidden, response["MESSAGE"])

	// 作者本人删除成功
	mockService.On("DeleteComment", 9, 2).Return(nil).Once()

	req, _ = http.NewRequest("DELETE", "/postings/comment/9", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "DELETED", response["MESSAGE"])
	mockService.AssertExpectations(t)
}
