package mysql

import (
	"database/sql"
	"fmt"

	"homestagram-backend/internal/model"
	"homestagram-backend/internal/util"

	"go.uber.org/zap"
)

// userRepository 实现了 UserRepository 接口
type userRepository struct {
	db *sql.DB
}

// NewUserRepository 创建一个新的 userRepository 实例
func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db}
}

// FindByID 通过ID查找用户，不存在时返回 (nil, nil)
func (r *userRepository) FindByID(id int) (*model.User, error) {
	query := `SELECT id, nickname, kakao_id, kakao_email, created_at, updated_at
              FROM users WHERE id = ?`
	var user model.User
	err := r.db.QueryRow(query, id).Scan(
		&user.ID, &user.Nickname, &user.KakaoID, &user.KakaoEmail,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByNickname 通过昵称查找用户，不存在时返回 (nil, nil)
func (r *userRepository) FindByNickname(nickname string) (*model.User, error) {
	query := `SELECT id, nickname, kakao_id, kakao_email, created_at, updated_at
              FROM users WHERE nickname = ?`
	var user model.User
	err := r.db.QueryRow(query, nickname).Scan(
		&user.ID, &user.Nickname, &user.KakaoID, &user.KakaoEmail,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetOrCreateByKakao 按 kakao_id 查找用户，不存在则创建。
// 幂等：同一外部身份重复登录得到同一本地用户。
// Kakao 侧邮箱变更时同步本地记录，kakao_id 上的唯一键保证不会产生第二个账号。
func (r *userRepository) GetOrCreateByKakao(kakaoID int64, kakaoEmail string) (*model.User, bool, error) {
	query := `SELECT id, nickname, kakao_id, kakao_email, created_at, updated_at
              FROM users WHERE kakao_id = ?`
	var user model.User
	err := r.db.QueryRow(query, kakaoID).Scan(
		&user.ID, &user.Nickname, &user.KakaoID, &user.KakaoEmail,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err == nil {
		if user.KakaoEmail != kakaoEmail {
			if _, err := r.db.Exec(
				`UPDATE users SET kakao_email = ?, updated_at = NOW() WHERE id = ?`,
				kakaoEmail, user.ID); err != nil {
				util.Logger.Error("同步用户邮箱失败", zap.Error(err), zap.Int("user_id", user.ID))
				return nil, false, err
			}
			util.Logger.Info("用户邮箱已同步", zap.Int("user_id", user.ID))
			user.KakaoEmail = kakaoEmail
		}
		return &user, false, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, err
	}

	result, err := r.db.Exec(
		`INSERT INTO users (kakao_id, kakao_email, created_at, updated_at) VALUES (?, ?, NOW(), NOW())`,
		kakaoID, kakaoEmail)
	if err != nil {
		util.Logger.Error("创建用户失败", zap.Error(err), zap.Int64("kakao_id", kakaoID))
		return nil, false, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, false, err
	}

	user = model.User{ID: int(id), KakaoID: kakaoID, KakaoEmail: kakaoEmail}
	util.Logger.Info("用户创建成功", zap.Int("user_id", user.ID))
	return &user, true, nil
}

// UpdateNickname 设置用户昵称
func (r *userRepository) UpdateNickname(userID int, nickname string) error {
	_, err := r.db.Exec(`UPDATE users SET nickname = ?, updated_at = NOW() WHERE id = ?`, nickname, userID)
	if err != nil {
		util.Logger.Error("更新昵称失败", zap.Error(err), zap.Int("user_id", userID))
	}
	return err
}

// Exists 判断用户是否存在
func (r *userRepository) Exists(id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}

// ToggleFollow 切换关注关系：不存在则创建并返回 true，已存在则删除并返回 false。
// 事务加唯一键约束保证并发切换不会写入重复边。
func (r *userRepository) ToggleFollow(followerID, followedID int) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var id int
	err = tx.QueryRow(
		`SELECT id FROM follows WHERE follower_id = ? AND followed_id = ? FOR UPDATE`,
		followerID, followedID).Scan(&id)

	switch {
	case err == sql.ErrNoRows:
		if _, err := tx.Exec(
			`INSERT INTO follows (follower_id, followed_id, created_at) VALUES (?, ?, NOW())`,
			followerID, followedID); err != nil {
			util.Logger.Error("创建关注失败", zap.Error(err),
				zap.Int("follower_id", followerID), zap.Int("followed_id", followedID))
			return false, err
		}
		if err := tx.Commit(); err != nil {
			return false, err
		}
		return true, nil
	case err != nil:
		return false, err
	default:
		if _, err := tx.Exec(`DELETE FROM follows WHERE id = ?`, id); err != nil {
			util.Logger.Error("删除关注失败", zap.Error(err), zap.Int("follow_id", id))
			return false, err
		}
		if err := tx.Commit(); err != nil {
			return false, err
		}
		return false, nil
	}
}

// ListFollowing 返回用户关注的所有用户
func (r *userRepository) ListFollowing(userID int) ([]*model.FollowedUser, error) {
	query := `
        SELECT u.id, u.nickname
        FROM users u
        JOIN follows f ON u.id = f.followed_id
        WHERE f.follower_id = ?
        ORDER BY f.created_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		util.Logger.Error("获取关注列表失败", zap.Error(err), zap.Int("user_id", userID))
		return nil, err
	}
	defer rows.Close()

	following := []*model.FollowedUser{}
	for rows.Next() {
		var u model.FollowedUser
		if err := rows.Scan(&u.ID, &u.Nickname); err != nil {
			return nil, err
		}
		following = append(following, &u)
	}
	return following, rows.Err()
}

// CreatePurchase 追加一条购买流水
func (r *userRepository) CreatePurchase(purchase *model.PurchaseHistory) error {
	query := `INSERT INTO purchase_histories
              (user_id, product_option_id, quantity, price, paypal_payer_id, paypal_payment_id, paypal_payment_token, purchased_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, NOW())`
	result, err := r.db.Exec(query,
		purchase.UserID, purchase.ProductOptionID, purchase.Quantity, purchase.Price,
		purchase.PaypalPayerID, purchase.PaypalPaymentID, purchase.PaypalPaymentToken)
	if err != nil {
		util.Logger.Error("创建购买流水失败", zap.Error(err), zap.Int("user_id", purchase.UserID))
		return fmt.Errorf("failed to create purchase: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	purchase.ID = int(id)

	util.Logger.Info("购买流水创建成功",
		zap.Int("purchase_id", purchase.ID),
		zap.Int("user_id", purchase.UserID))
	return nil
}

// ListPurchases 返回用户的购买历史，按流水ID倒序
func (r *userRepository) ListPurchases(userID int) ([]*model.PurchaseItem, error) {
	query := `
        SELECT ph.price, DATE_FORMAT(ph.purchased_at, '%Y-%m-%d'), p.name, p.id, p.thumbnail_url
        FROM purchase_histories ph
        JOIN product_options po ON ph.product_option_id = po.id
        JOIN products p ON po.product_id = p.id
        WHERE ph.user_id = ?
        ORDER BY ph.id DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		util.Logger.Error("获取购买历史失败", zap.Error(err), zap.Int("user_id", userID))
		return nil, err
	}
	defer rows.Close()

	purchases := []*model.PurchaseItem{}
	for rows.Next() {
		var item model.PurchaseItem
		if err := rows.Scan(&item.Price, &item.Date, &item.Product, &item.ProductID, &item.ProductImage); err != nil {
			return nil, err
		}
		purchases = append(purchases, &item)
	}
	return purchases, rows.Err()
}
