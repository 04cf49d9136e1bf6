package mysql

import (
	"database/sql"
	"fmt"
	"math"
	"strings"

	"homestagram-backend/internal/model"
	"homestagram-backend/internal/util"

	"go.uber.org/zap"
)

// postingRepository 实现了 PostingRepository 接口
type postingRepository struct {
	db *sql.DB
}

// NewPostingRepository 创建一个新的 postingRepository 实例
func NewPostingRepository(db *sql.DB) *postingRepository {
	return &postingRepository{db}
}

// CreatePosting 在一个事务中写入帖子及其全部标注。
// 标注引用了不存在的商品时外键约束使整个事务回滚，不会留下半成品帖子。
func (r *postingRepository) CreatePosting(posting *model.Posting, tags []*model.Tag) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO postings (content, user_id, image_url, design_type_id, created_at, updated_at)
              VALUES (?, ?, ?, ?, NOW(), NOW())`
	result, err := tx.Exec(query, posting.Content, posting.UserID, posting.ImageURL, posting.DesignTypeID)
	if err != nil {
		util.Logger.Error("创建帖子失败", zap.Error(err))
		return err
	}

	postingID, err := result.LastInsertId()
	if err != nil {
		util.Logger.Error("获取新帖子ID失败", zap.Error(err))
		return err
	}
	posting.ID = int(postingID)

	// 批量插入标注
	if len(tags) > 0 {
		query = `INSERT INTO tags (posting_id, product_id, xx, yy) VALUES (?, ?, ?, ?)`
		for _, tag := range tags {
			tag.PostingID = posting.ID
			if _, err := tx.Exec(query, tag.PostingID, tag.ProductID, tag.XX, tag.YY); err != nil {
				util.Logger.Error("插入帖子标注失败", zap.Error(err),
					zap.Int("posting_id", posting.ID), zap.Int("product_id", tag.ProductID))
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		util.Logger.Error("提交事务失败", zap.Error(err))
		return err
	}

	util.Logger.Info("帖子创建成功", zap.Int("posting_id", posting.ID), zap.Int("tag_count", len(tags)))
	return nil
}

// Exists 判断帖子是否存在
func (r *postingRepository) Exists(id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM postings WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}

// FindDesignTypeByName 按名称查找类目，不存在时返回 (nil, nil)
func (r *postingRepository) FindDesignTypeByName(name string) (*model.DesignType, error) {
	var dt model.DesignType
	err := r.db.QueryRow(`SELECT id, name FROM design_types WHERE name = ?`, name).Scan(&dt.ID, &dt.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &dt, nil
}

// CountPostings 返回帖子总数
func (r *postingRepository) CountPostings() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM postings`).Scan(&count)
	return count, err
}

// ListFeedPage 返回一页帖子，按创建时间倒序，ID倒序兜底保证顺序稳定。
// 评论、标注与收藏状态由独立的 IN 查询补齐，避免逐行查询。
func (r *postingRepository) ListFeedPage(page, pageSize int) ([]*model.FeedItem, error) {
	offset := (page - 1) * pageSize
	query := `
        SELECT p.id, p.user_id, u.nickname, p.image_url, p.content,
               DATE_FORMAT(p.created_at, '%Y-%m-%d'), p.design_type_id
        FROM postings p
        LEFT JOIN users u ON p.user_id = u.id
        ORDER BY p.created_at DESC, p.id DESC
        LIMIT ? OFFSET ?`

	rows, err := r.db.Query(query, pageSize, offset)
	if err != nil {
		util.Logger.Error("获取动态流页失败", zap.Error(err), zap.Int("page", page))
		return nil, err
	}
	defer rows.Close()

	items := []*model.FeedItem{}
	for rows.Next() {
		var item model.FeedItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Nickname, &item.ImageURL,
			&item.Content, &item.Date, &item.DesignType,
		); err != nil {
			return nil, err
		}
		item.Comments = []model.FeedComment{}
		item.Tags = []model.FeedTag{}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// ListCommentsByPostingIDs 一次查询取回多个帖子的全部评论
func (r *postingRepository) ListCommentsByPostingIDs(postingIDs []int) (map[int][]model.FeedComment, error) {
	result := make(map[int][]model.FeedComment)
	if len(postingIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`
        SELECT c.posting_id, c.id, c.content, DATE_FORMAT(c.created_at, '%%Y-%%m-%%d'), u.nickname
        FROM comments c
        LEFT JOIN users u ON c.user_id = u.id
        WHERE c.posting_id IN (%s)
        ORDER BY c.id ASC`, placeholders(len(postingIDs)))

	rows, err := r.db.Query(query, intArgs(postingIDs)...)
	if err != nil {
		util.Logger.Error("获取评论列表失败", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var postingID int
		var c model.FeedComment
		if err := rows.Scan(&postingID, &c.ID, &c.Content, &c.Date, &c.Nickname); err != nil {
			return nil, err
		}
		result[postingID] = append(result[postingID], c)
	}
	return result, rows.Err()
}

// ListTagsByPostingIDs 一次查询取回多个帖子的全部标注及关联商品信息
func (r *postingRepository) ListTagsByPostingIDs(postingIDs []int) (map[int][]model.FeedTag, error) {
	result := make(map[int][]model.FeedTag)
	if len(postingIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`
        SELECT t.posting_id, t.id, t.product_id, t.xx, t.yy, p.name, p.price, p.thumbnail_url
        FROM tags t
        JOIN products p ON t.product_id = p.id
        WHERE t.posting_id IN (%s)
        ORDER BY t.id ASC`, placeholders(len(postingIDs)))

	rows, err := r.db.Query(query, intArgs(postingIDs)...)
	if err != nil {
		util.Logger.Error("获取标注列表失败", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var postingID int
		var t model.FeedTag
		var price float64
		if err := rows.Scan(&postingID, &t.ID, &t.ProductID, &t.XX, &t.YY, &t.Title, &price, &t.Thumbnail); err != nil {
			return nil, err
		}
		// 价格取整展示
		t.Price = int(math.Round(price))
		result[postingID] = append(result[postingID], t)
	}
	return result, rows.Err()
}

// BookmarkedPostingIDs 返回给定帖子中被该用户收藏的子集
func (r *postingRepository) BookmarkedPostingIDs(userID int, postingIDs []int) (map[int]bool, error) {
	result := make(map[int]bool)
	if len(postingIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(
		`SELECT posting_id FROM bookmarks WHERE user_id = ? AND posting_id IN (%s)`,
		placeholders(len(postingIDs)))

	args := append([]interface{}{userID}, intArgs(postingIDs)...)
	rows, err := r.db.Query(query, args...)
	if err != nil {
		util.Logger.Error("获取收藏状态失败", zap.Error(err), zap.Int("user_id", userID))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var postingID int
		if err := rows.Scan(&postingID); err != nil {
			return nil, err
		}
		result[postingID] = true
	}
	return result, rows.Err()
}

// FollowedAuthorIDs 返回给定作者中被该用户关注的子集
func (r *postingRepository) FollowedAuthorIDs(followerID int, authorIDs []int) (map[int]bool, error) {
	result := make(map[int]bool)
	if len(authorIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(
		`SELECT followed_id FROM follows WHERE follower_id = ? AND followed_id IN (%s)`,
		placeholders(len(authorIDs)))

	args := append([]interface{}{followerID}, intArgs(authorIDs)...)
	rows, err := r.db.Query(query, args...)
	if err != nil {
		util.Logger.Error("获取关注状态失败", zap.Error(err), zap.Int("follower_id", followerID))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var followedID int
		if err := rows.Scan(&followedID); err != nil {
			return nil, err
		}
		result[followedID] = true
	}
	return result, rows.Err()
}

// ToggleBookmark 切换收藏：不存在则创建并返回 true，已存在则删除并返回 false。
// 与 ToggleFollow 相同，事务加唯一键约束防止并发写入重复行。
func (r *postingRepository) ToggleBookmark(postingID, userID int) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var id int
	err = tx.QueryRow(
		`SELECT id FROM bookmarks WHERE posting_id = ? AND user_id = ? FOR UPDATE`,
		postingID, userID).Scan(&id)

	switch {
	case err == sql.ErrNoRows:
		if _, err := tx.Exec(
			`INSERT INTO bookmarks (posting_id, user_id, created_at) VALUES (?, ?, NOW())`,
			postingID, userID); err != nil {
			util.Logger.Error("创建收藏失败", zap.Error(err),
				zap.Int("posting_id", postingID), zap.Int("user_id", userID))
			return false, err
		}
		if err := tx.Commit(); err != nil {
			return false, err
		}
		return true, nil
	case err != nil:
		return false, err
	default:
		if _, err := tx.Exec(`DELETE FROM bookmarks WHERE id = ?`, id); err != nil {
			util.Logger.Error("删除收藏失败", zap.Error(err), zap.Int("bookmark_id", id))
			return false, err
		}
		if err := tx.Commit(); err != nil {
			return false, err
		}
		return false, nil
	}
}

// ListBookmarks 返回用户收藏的帖子列表
func (r *postingRepository) ListBookmarks(userID int) ([]*model.BookmarkItem, error) {
	query := `
        SELECT p.id, u.nickname, p.image_url
        FROM bookmarks b
        JOIN postings p ON b.posting_id = p.id
        LEFT JOIN users u ON p.user_id = u.id
        WHERE b.user_id = ?
        ORDER BY b.id DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		util.Logger.Error("获取收藏列表失败", zap.Error(err), zap.Int("user_id", userID))
		return nil, err
	}
	defer rows.Close()

	bookmarks := []*model.BookmarkItem{}
	for rows.Next() {
		var item model.BookmarkItem
		if err := rows.Scan(&item.PostingID, &item.PostingUsername, &item.PostingImageURL); err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, &item)
	}
	return bookmarks, rows.Err()
}

// CreateComment 创建评论
func (r *postingRepository) CreateComment(comment *model.Comment) error {
	query := `INSERT INTO comments (posting_id, user_id, content, created_at, updated_at)
              VALUES (?, ?, ?, NOW(), NOW())`
	result, err := r.db.Exec(query, comment.PostingID, comment.UserID, comment.Content)
	if err != nil {
		util.Logger.Error("创建评论失败", zap.Error(err), zap.Int("posting_id", comment.PostingID))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	comment.ID = int(id)

	util.Logger.Info("评论创建成功", zap.Int("comment_id", comment.ID))
	return nil
}

// FindCommentByID 通过ID查找评论，不存在时返回 (nil, nil)
func (r *postingRepository) FindCommentByID(id int) (*model.Comment, error) {
	query := `SELECT id, posting_id, user_id, content, created_at, updated_at
              FROM comments WHERE id = ?`
	var comment model.Comment
	err := r.db.QueryRow(query, id).Scan(
		&comment.ID, &comment.PostingID, &comment.UserID, &comment.Content,
		&comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// UpdateComment 更新评论内容
func (r *postingRepository) UpdateComment(id int, content string) error {
	_, err := r.db.Exec(`UPDATE comments SET content = ?, updated_at = NOW() WHERE id = ?`, content, id)
	if err != nil {
		util.Logger.Error("更新评论失败", zap.Error(err), zap.Int("comment_id", id))
	}
	return err
}

// DeleteComment 删除评论
func (r *postingRepository) DeleteComment(id int) error {
	_, err := r.db.Exec(`DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		util.Logger.Error("删除评论失败", zap.Error(err), zap.Int("comment_id", id))
	}
	return err
}

// placeholders 生成 IN 子句的占位符串
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func intArgs(ids []int) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
