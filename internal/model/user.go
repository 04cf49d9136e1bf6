package model

import "time"

// User 结构体表示用户模型。昵称在完成引导前为空。
type User struct {
	ID         int       `json:"id"`
	Nickname   *string   `json:"nickname"`
	KakaoID    int64     `json:"-"`
	KakaoEmail string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// HasNickname 判断用户是否已完成昵称设置
func (u *User) HasNickname() bool {
	return u.Nickname != nil && *u.Nickname != ""
}

// Follow 表示有向的关注关系
type Follow struct {
	ID         int       `json:"id"`
	FollowerID int       `json:"follower_id"`
	FollowedID int       `json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// FollowedUser 是关注列表的响应条目
type FollowedUser struct {
	ID       int     `json:"id"`
	Nickname *string `json:"nickname"`
}

// Bookmark 表示用户收藏的帖子
type Bookmark struct {
	ID        int       `json:"id"`
	PostingID int       `json:"posting_id"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BookmarkItem 是收藏列表的响应条目
type BookmarkItem struct {
	PostingID       int     `json:"posting_id"`
	PostingUsername *string `json:"posting_username"`
	PostingImageURL string  `json:"posting_image_url"`
}

// PurchaseHistory 是只追加的购买流水
type PurchaseHistory struct {
	ID                 int       `json:"id"`
	UserID             int       `json:"user_id"`
	ProductOptionID    int       `json:"product_option_id"`
	Quantity           int       `json:"quantity"`
	Price              int       `json:"price"`
	PaypalPayerID      string    `json:"paypal_payer_id"`
	PaypalPaymentID    string    `json:"paypal_payment_id"`
	PaypalPaymentToken string    `json:"paypal_payment_token"`
	PurchasedAt        time.Time `json:"purchased_at"`
}

// PurchaseItem 是购买历史的响应条目
type PurchaseItem struct {
	Price        int    `json:"price"`
	Date         string `json:"date"`
	Product      string `json:"product"`
	ProductID    int    `json:"product_id"`
	ProductImage string `json:"product_image"`
}
