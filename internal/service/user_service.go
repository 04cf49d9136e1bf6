package service

import (
	"context"

	"homestagram-backend/internal/errors"
	"homestagram-backend/internal/identity"
	"homestagram-backend/internal/model"
	"homestagram-backend/internal/repository/interfaces"
	"homestagram-backend/internal/util"

	"go.uber.org/zap"
)

// KakaoResolver 是身份提供方适配器的接口，便于测试替换
type KakaoResolver interface {
	Resolve(ctx context.Context, accessToken string) (*identity.Profile, error)
}

// SignInResult 是社交登录的响应数据
type SignInResult struct {
	Token    string  `json:"token"`
	UserID   int     `json:"user_id"`
	Nickname *string `json:"nickname"`
	Email    string  `json:"email"`
}

// PurchaseInput 是创建购买流水的入参
type PurchaseInput struct {
	ProductOptionID int
	Price           int
	PayerID         string
	PaymentID       string
	PaymentToken    string
}

// UserService 处理与用户相关的业务逻辑
type UserService struct {
	userRepo    interfaces.UserRepository
	productRepo interfaces.ProductRepository
	kakao       KakaoResolver
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(userRepo interfaces.UserRepository, productRepo interfaces.ProductRepository, kakao KakaoResolver) *UserService {
	return &UserService{
		userRepo:    userRepo,
		productRepo: productRepo,
		kakao:       kakao,
	}
}

// SignIn 用 Kakao 访问令牌换取本地会话。
// 同一外部身份重复登录返回同一本地用户（幂等 get_or_create）。
func (s *UserService) SignIn(ctx context.Context, accessToken string) (*SignInResult, error) {
	profile, err := s.kakao.Resolve(ctx, accessToken)
	if err != nil {
		util.Logger.Error("解析Kakao用户信息失败", zap.Error(err))
		return nil, errors.Wrap(errors.ErrInvalidKakaoToken, errors.MsgInvalidKakaoToken, err)
	}

	if profile.ID == 0 {
		return nil, errors.New(errors.ErrInvalidKakaoToken, errors.MsgInvalidKakaoToken)
	}

	if profile.Email == "" {
		// 账号未同意提供邮箱时需要引导用户补充授权
		if profile.EmailNeedsAgreement {
			return nil, errors.New(errors.ErrNeedEmailAgreement, errors.MsgNeedEmailAgreement)
		}
		return nil, errors.New(errors.ErrInvalidKakaoToken, errors.MsgInvalidKakaoToken)
	}

	user, created, err := s.userRepo.GetOrCreateByKakao(profile.ID, profile.Email)
	if err != nil {
		return nil, err
	}
	if created {
		util.Logger.Info("首次社交登录，已创建用户", zap.Int("user_id", user.ID))
	}

	token, err := util.GenerateToken(user.ID)
	if err != nil {
		util.Logger.Error("生成令牌失败", zap.Error(err), zap.Int("user_id", user.ID))
		return nil, err
	}

	return &SignInResult{
		Token:    token,
		UserID:   user.ID,
		Nickname: user.Nickname,
		Email:    user.KakaoEmail,
	}, nil
}

// RegisterNickname 设置用户昵称。昵称被其他用户占用时返回冲突；
// 重复设置为自己已有的值视为成功。
func (s *UserService) RegisterNickname(userID int, nickname string) error {
	existing, err := s.userRepo.FindByNickname(nickname)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != userID {
		return errors.New(errors.ErrNicknameExists, errors.MsgNicknameExists)
	}

	return s.userRepo.UpdateNickname(userID, nickname)
}

// GetUserByID 通过ID获取用户信息
func (s *UserService) GetUserByID(id int) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, errors.MsgUserNotFound)
	}
	return user, nil
}

// ToggleFollow 切换关注关系，返回切换后是否处于关注状态
func (s *UserService) ToggleFollow(followerID, targetID int) (bool, error) {
	exists, err := s.userRepo.Exists(targetID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, errors.New(errors.ErrUserNotFound, errors.MsgUserNotFound)
	}

	followed, err := s.userRepo.ToggleFollow(followerID, targetID)
	if err != nil {
		return false, err
	}

	util.Logger.Info("关注状态已切换",
		zap.Int("follower_id", followerID),
		zap.Int("target_id", targetID),
		zap.Bool("followed", followed))
	return followed, nil
}

// ListFollowing 返回用户关注的用户列表
func (s *UserService) ListFollowing(userID int) ([]*model.FollowedUser, error) {
	return s.userRepo.ListFollowing(userID)
}

// CreatePurchase 追加一条购买流水，数量固定为 1
func (s *UserService) CreatePurchase(userID int, input PurchaseInput) error {
	option, err := s.productRepo.FindOptionByID(input.ProductOptionID)
	if err != nil {
		return err
	}
	if option == nil {
		return errors.New(errors.ErrProductNotFound, errors.MsgProductNotFound)
	}

	purchase := &model.PurchaseHistory{
		UserID:             userID,
		ProductOptionID:    option.ID,
		Quantity:           1,
		Price:              input.Price,
		PaypalPayerID:      input.PayerID,
		PaypalPaymentID:    input.PaymentID,
		PaypalPaymentToken: input.PaymentToken,
	}
	return s.userRepo.CreatePurchase(purchase)
}

// ListPurchaseHistory 返回用户的购买历史
func (s *UserService) ListPurchaseHistory(userID int) ([]*model.PurchaseItem, error) {
	return s.userRepo.ListPurchases(userID)
}

// UserServiceInterface 供处理器和测试使用
type UserServiceInterface interface {
	SignIn(ctx context.Context, accessToken string) (*SignInResult, error)
	RegisterNickname(userID int, nickname string) error
	GetUserByID(id int) (*model.User, error)
	ToggleFollow(followerID, targetID int) (bool, error)
	ListFollowing(userID int) ([]*model.FollowedUser, error)
	CreatePurchase(userID int, input PurchaseInput) error
	ListPurchaseHistory(userID int) ([]*model.PurchaseItem, error)
}

// 确保 UserService 实现了 UserServiceInterface
var _ UserServiceInterface = (*UserService)(nil)
