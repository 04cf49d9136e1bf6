package interfaces

import "homestagram-backend/internal/model"

// PostingRepository 定义了帖子、标注、评论与收藏相关的数据库操作接口
type PostingRepository interface {
	CreatePosting(posting *model.Posting, tags []*model.Tag) error
	Exists(id int) (bool, error)
	FindDesignTypeByName(name string) (*model.DesignType, error)

	CountPostings() (int, error)
	ListFeedPage(page, pageSize int) ([]*model.FeedItem, error)
	ListCommentsByPostingIDs(postingIDs []int) (map[int][]model.FeedComment, error)
	ListTagsByPostingIDs(postingIDs []int) (map[int][]model.FeedTag, error)
	BookmarkedPostingIDs(userID int, postingIDs []int) (map[int]bool, error)
	FollowedAuthorIDs(followerID int, authorIDs []int) (map[int]bool, error)

	ToggleBookmark(postingID, userID int) (bool, error)
	ListBookmarks(userID int) ([]*model.BookmarkItem, error)

	CreateComment(comment *model.Comment) error
	FindCommentByID(id int) (*model.Comment, error)
	UpdateComment(id int, content string) error
	DeleteComment(id int) error
}
