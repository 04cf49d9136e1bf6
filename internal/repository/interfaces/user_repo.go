package interfaces

import "homestagram-backend/internal/model"

// UserRepository 定义了用户、关注与购买流水相关的数据库操作接口
type UserRepository interface {
	FindByID(id int) (*model.User, error)
	FindByNickname(nickname string) (*model.User, error)
	GetOrCreateByKakao(kakaoID int64, kakaoEmail string) (*model.User, bool, error)
	UpdateNickname(userID int, nickname string) error
	Exists(id int) (bool, error)

	ToggleFollow(followerID, followedID int) (bool, error)
	ListFollowing(userID int) ([]*model.FollowedUser, error)

	CreatePurchase(purchase *model.PurchaseHistory) error
	ListPurchases(userID int) ([]*model.PurchaseItem, error)
}
