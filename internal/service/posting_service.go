package service

import (
	"mime/multipart"
	"strings"

	"homestagram-backend/config"
	"homestagram-backend/internal/errors"
	"homestagram-backend/internal/model"
	"homestagram-backend/internal/repository/interfaces"
	"homestagram-backend/internal/storage"
	"homestagram-backend/internal/util"

	"go.uber.org/zap"
)

// TagInput 是创建帖子时的单个商品标注
type TagInput struct {
	XX        int
	YY        int
	ProductID int
}

// CreatePostingInput 是创建帖子工作流的入参
type CreatePostingInput struct {
	UserID     int
	Content    string
	DesignType string
	Image      *multipart.FileHeader
	Tags       []TagInput
}

// PostingService 处理帖子、动态流、收藏与评论的业务逻辑
type PostingService struct {
	postingRepo interfaces.PostingRepository
	storage     storage.Storage
}

// NewPostingService 创建一个新的 PostingService 实例
func NewPostingService(postingRepo interfaces.PostingRepository, storage storage.Storage) *PostingService {
	return &PostingService{
		postingRepo: postingRepo,
		storage:     storage,
	}
}

// CreatePosting 执行创建帖子工作流：
// 校验入参，帖子行与标注行在同一事务中提交，随后上传图片。
// 上传发生在提交之后，失败时数据库中的 URL 会悬空，由离线巡检处理。
func (s *PostingService) CreatePosting(input CreatePostingInput) error {
	if input.Image == nil {
		return errors.New(errors.ErrImageEmpty, errors.MsgImageEmpty)
	}

	designType, err := s.postingRepo.FindDesignTypeByName(input.DesignType)
	if err != nil {
		return err
	}
	if designType == nil {
		return errors.New(errors.ErrDesignTypeNotFound, errors.MsgDesignTypeNotFound)
	}

	// 存储键与公开地址在写库前确定，保证 URL 可预先计算
	uploadKey := util.GenerateUploadKey(input.Image.Filename)
	imageURL := strings.TrimRight(config.AppConfig.StorageBaseURL, "/") + "/" + uploadKey

	userID := input.UserID
	posting := &model.Posting{
		Content:      input.Content,
		UserID:       &userID,
		ImageURL:     imageURL,
		DesignTypeID: designType.ID,
	}

	tags := make([]*model.Tag, 0, len(input.Tags))
	for _, t := range input.Tags {
		tags = append(tags, &model.Tag{
			ProductID: t.ProductID,
			XX:        t.XX,
			YY:        t.YY,
		})
	}

	if err := s.postingRepo.CreatePosting(posting, tags); err != nil {
		return err
	}

	if _, err := s.storage.UploadFile(input.Image, uploadKey); err != nil {
		util.Logger.Error("图片上传失败，帖子已提交，URL悬空",
			zap.Error(err),
			zap.Int("posting_id", posting.ID),
			zap.String("upload_key", uploadKey))
		return err
	}

	return nil
}

// LoadFeed 组装一页动态流。viewerID 为 0 时是公开流，
// follow/bookmark 恒为 false；否则按浏览者自身状态填充。
func (s *PostingService) LoadFeed(viewerID, page int) (*model.FeedPage, error) {
	if page < 1 {
		page = 1
	}

	items, err := s.postingRepo.ListFeedPage(page, model.FeedPageSize)
	if err != nil {
		return nil, err
	}

	postingIDs := make([]int, 0, len(items))
	authorIDs := make([]int, 0, len(items))
	for _, item := range items {
		postingIDs = append(postingIDs, item.ID)
		if item.UserID != nil {
			authorIDs = append(authorIDs, *item.UserID)
		}
	}

	comments, err := s.postingRepo.ListCommentsByPostingIDs(postingIDs)
	if err != nil {
		return nil, err
	}
	tags, err := s.postingRepo.ListTagsByPostingIDs(postingIDs)
	if err != nil {
		return nil, err
	}

	bookmarked := map[int]bool{}
	followed := map[int]bool{}
	if viewerID != 0 {
		if bookmarked, err = s.postingRepo.BookmarkedPostingIDs(viewerID, postingIDs); err != nil {
			return nil, err
		}
		if followed, err = s.postingRepo.FollowedAuthorIDs(viewerID, authorIDs); err != nil {
			return nil, err
		}
	}

	feed := model.FeedPage{Postings: make([]model.FeedItem, 0, len(items))}
	for _, item := range items {
		if c, ok := comments[item.ID]; ok {
			item.Comments = c
		}
		if t, ok := tags[item.ID]; ok {
			item.Tags = t
		}
		item.Bookmark = bookmarked[item.ID]
		if item.UserID != nil {
			item.Follow = followed[*item.UserID]
		}
		feed.Postings = append(feed.Postings, *item)
	}

	total, err := s.postingRepo.CountPostings()
	if err != nil {
		return nil, err
	}
	feed.HasNext = page*model.FeedPageSize < total

	return &feed, nil
}

// ToggleBookmark 切换收藏，返回切换后是否处于收藏状态
func (s *PostingService) ToggleBookmark(postingID, userID int) (bool, error) {
	exists, err := s.postingRepo.Exists(postingID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, errors.New(errors.ErrPostingNotFound, errors.MsgPostingNotFound)
	}

	created, err := s.postingRepo.ToggleBookmark(postingID, userID)
	if err != nil {
		return false, err
	}

	util.Logger.Info("收藏状态已切换",
		zap.Int("posting_id", postingID),
		zap.Int("user_id", userID),
		zap.Bool("bookmarked", created))
	return created, nil
}

// ListBookmarks 返回用户收藏的帖子列表
func (s *PostingService) ListBookmarks(userID int) ([]*model.BookmarkItem, error) {
	return s.postingRepo.ListBookmarks(userID)
}

// CreateComment 在帖子下创建评论
func (s *PostingService) CreateComment(postingID, userID int, content string) (*model.Comment, error) {
	exists, err := s.postingRepo.Exists(postingID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.New(errors.ErrPostingNotFound, errors.MsgPostingNotFound)
	}

	comment := &model.Comment{
		PostingID: postingID,
		UserID:    &userID,
		Content:   content,
	}
	if err := s.postingRepo.CreateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// UpdateComment 修改评论内容，仅作者本人可操作
func (s *PostingService) UpdateComment(commentID, userID int, content string) error {
	comment, err := s.postingRepo.FindCommentByID(commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return errors.New(errors.ErrCommentNotFound, errors.MsgCommentNotFound)
	}
	if comment.UserID == nil || *comment.UserID != userID {
		return errors.New(errors.ErrForbidden, errors.MsgForbidden)
	}

	return s.postingRepo.UpdateComment(commentID, content)
}

// DeleteComment 删除评论，仅作者本人可操作
func (s *PostingService) DeleteComment(commentID, userID int) error {
	comment, err := s.postingRepo.FindCommentByID(commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return errors.New(errors.ErrCommentNotFound, errors.MsgCommentNotFound)
	}
	if comment.UserID == nil || *comment.UserID != userID {
		return errors.New(errors.ErrForbidden, errors.MsgForbidden)
	}

	return s.postingRepo.DeleteComment(commentID)
}

// PostingServiceInterface 供处理器和测试使用
type PostingServiceInterface interface {
	CreatePosting(input CreatePostingInput) error
	LoadFeed(viewerID, page int) (*model.FeedPage, error)
	ToggleBookmark(postingID, userID int) (bool, error)
	ListBookmarks(userID int) ([]*model.BookmarkItem, error)
	CreateComment(postingID, userID int, content string) (*model.Comment, error)
	UpdateComment(commentID, userID int, content string) error
	DeleteComment(commentID, userID int) error
}

// 确保 PostingService 实现了 PostingServiceInterface
var _ PostingServiceInterface = (*PostingService)(nil)
