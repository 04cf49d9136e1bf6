package model

import "time"

// Posting 结构体表示帖子模型。用户被删除后 user_id 置空。
type Posting struct {
	ID           int       `json:"id"`
	Content      string    `json:"content"`
	UserID       *int      `json:"user_id"`
	ImageURL     string    `json:"image_url"`
	DesignTypeID int       `json:"design_type_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Tag 是锚定在帖子图片坐标上的商品标注。
// 坐标按两个整数列存储，不再使用 "(x, y)" 字符串。
type Tag struct {
	ID        int `json:"id"`
	PostingID int `json:"posting_id"`
	ProductID int `json:"product_id"`
	XX        int `json:"xx"`
	YY        int `json:"yy"`
}

// Comment 表示帖子下的评论
type Comment struct {
	ID        int       `json:"id"`
	PostingID int       `json:"posting_id"`
	UserID    *int      `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DesignType 是帖子的封闭类目标签
type DesignType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// FeedComment 是动态流中内嵌的评论条目
type FeedComment struct {
	ID       int     `json:"id"`
	Content  string  `json:"content"`
	Date     string  `json:"date"`
	Nickname *string `json:"nickname"`
}

// FeedTag 是动态流中内嵌的商品标注条目
type FeedTag struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	XX        int    `json:"xx"`
	YY        int    `json:"yy"`
	Title     string `json:"title"`
	Price     int    `json:"price"`
	Thumbnail string `json:"thumbnail"`
}

// FeedItem 是动态流中的一条帖子及其聚合数据
type FeedItem struct {
	ID         int           `json:"id"`
	UserID     *int          `json:"user_id"`
	Nickname   *string       `json:"nickname"`
	ImageURL   string        `json:"image_url"`
	Content    string        `json:"content"`
	Date       string        `json:"date"`
	DesignType int           `json:"design_type"`
	Comments   []FeedComment `json:"comments"`
	Tags       []FeedTag     `json:"tags"`
	Follow     bool          `json:"follow"`
	Bookmark   bool          `json:"bookmark"`
}

// FeedPage 是分页后的动态流响应
type FeedPage struct {
	Postings []FeedItem `json:"postings"`
	HasNext  bool       `json:"has_next"`
}

// FeedPageSize 是动态流固定的页大小
const FeedPageSize = 5
