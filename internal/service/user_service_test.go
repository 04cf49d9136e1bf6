package service

import (
	"context"
	"errors"
	"os"
	"testing"

	"homestagram-backend/config"
	apperrors "homestagram-backend/internal/errors"
	"homestagram-backend/internal/identity"
	"homestagram-backend/internal/model"
	"homestagram-backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	util.InitLogger("error")
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.StorageBaseURL = "https://homestagram.s3.ap-northeast-2.amazonaws.com"
	os.Exit(m.Run())
}

// MockUserRepository 是 UserRepository 接口的模拟实现
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(id int) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByNickname(nickname string) (*model.User, error) {
	args := m.Called(nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetOrCreateByKakao(kakaoID int64, kakaoEmail string) (*model.User, bool, error) {
	args := m.Called(kakaoID, kakaoEmail)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.Bool(1), args.Error(2)
}

func (m *MockUserRepository) UpdateNickname(userID int, nickname string) error {
	args := m.Called(userID, nickname)
	return args.Error(0)
}

func (m *MockUserRepository) Exists(id int) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ToggleFollow(followerID, followedID int) (bool, error) {
	args := m.Called(followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ListFollowing(userID int) ([]*model.FollowedUser, error) {
	args := m.Called(userID)
	return args.Get(0).([]*model.FollowedUser), args.Error(1)
}

func (m *MockUserRepository) CreatePurchase(purchase *model.PurchaseHistory) error {
	args := m.Called(purchase)
	return args.Error(0)
}

func (m *MockUserRepository) ListPurchases(userID int) ([]*model.PurchaseItem, error) {
	args := m.Called(userID)
	return args.Get(0).([]*model.PurchaseItem), args.Error(1)
}

// MockProductRepository 是 ProductRepository 接口的模拟实现
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(id int) (*model.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) ListImages(productID int) ([]string, error) {
	args := m.Called(productID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductRepository) ListOptions(productID int) ([]model.ProductOptionDetail, error) {
	args := m.Called(productID)
	return args.Get(0).([]model.ProductOptionDetail), args.Error(1)
}

func (m *MockProductRepository) FindOptionByID(id int) (*model.ProductOption, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductOption), args.Error(1)
}

// MockKakaoResolver 是 KakaoResolver 接口的模拟实现
type MockKakaoResolver struct {
	mock.Mock
}

func (m *MockKakaoResolver) Resolve(ctx context.Context, accessToken string) (*identity.Profile, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Profile), args.Error(1)
}

// TestSignIn 测试社交登录功能
func TestSignIn(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockProductRepo := new(MockProductRepository)
	mockKakao := new(MockKakaoResolver)
	service := NewUserService(mockRepo, mockProductRepo, mockKakao)

	nickname := "tester"
	user := &model.User{ID: 1, Nickname: &nickname, KakaoID: 12345, KakaoEmail: "tester@example.com"}

	// 测试已有用户登录
	mockKakao.On("Resolve", mock.Anything, "valid-token").Return(
		&identity.Profile{ID: 12345, Email: "tester@example.com"}, nil)
	mockRepo.On("GetOrCreateByKakao", int64(12345), "tester@example.com").Return(user, false, nil)

	result, err := service.SignIn(context.Background(), "valid-token")
	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, 1, result.UserID)
	assert.Equal(t, "tester@example.com", result.Email)
	mockRepo.AssertExpectations(t)

	// 签出的令牌应能被校验回同一用户
	userID, err := util.ValidateToken(result.Token)
	assert.NoError(t, err)
	assert.Equal(t, 1, userID)
}

// TestSignInIdempotent 同一外部身份重复登录返回同一本地用户
func TestSignInIdempotent(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockKakao := new(MockKakaoResolver)
	service := NewUserService(mockRepo, new(MockProductRepository), mockKakao)

	user := &model.User{ID: 7, KakaoID: 999, KakaoEmail: "repeat@example.com"}
	nickname := "repeat"
	user.Nickname = &nickname

	mockKakao.On("Resolve", mock.Anything, "token").Return(
		&identity.Profile{ID: 999, Email: "repeat@example.com"}, nil)
	mockRepo.On("GetOrCreateByKakao", int64(999), "repeat@example.com").Return(user, false, nil)

	first, err := service.SignIn(context.Background(), "token")
	assert.NoError(t, err)
	second, err := service.SignIn(context.Background(), "token")
	assert.NoError(t, err)
	assert.Equal(t, first.UserID, second.UserID)
}

// TestSignInInvalidKakaoToken 测试无效的外部令牌
func TestSignInInvalidKakaoToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockKakao := new(MockKakaoResolver)
	service := NewUserService(mockRepo, new(MockProductRepository), mockKakao)

	// 上游调用失败
	mockKakao.On("Resolve", mock.Anything, "bad-token").Return(nil, errors.New("unauthorized"))

	_, err := service.SignIn(context.Background(), "bad-token")
	assert.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	assert.True(t, ok)
	assert.Equal(t, apperrors.MsgInvalidKakaoToken, appErr.Message)

	// 上游返回了空画像
	mockKakao.On("Resolve", mock.Anything, "empty-profile").Return(&identity.Profile{}, nil)
	_, err = service.SignIn(context.Background(), "empty-profile")
	assert.Error(t, err)
}

// TestSignInNeedEmailAgreement 账号未同意提供邮箱时返回专用错误码
func TestSignInNeedEmailAgreement(t *testing.T) {
	mockKakao := new(MockKakaoResolver)
	service := NewUserService(new(MockUserRepository), new(MockProductRepository), mockKakao)

	mockKakao.On("Resolve", mock.Anything, "no-email").Return(
		&identity.Profile{ID: 555, EmailNeedsAgreement: true}, nil)

	_, err := service.SignIn(context.Background(), "no-email")
	assert.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	assert.True(t, ok)
	assert.Equal(t, apperrors.MsgNeedEmailAgreement, appErr.Message)
}

// TestRegisterNickname 测试昵称注册功能
func TestRegisterNickname(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, new(MockProductRepository), new(MockKakaoResolver))

	// 测试成功设置
	mockRepo.On("FindByNickname", "fresh").Return(nil, nil)
	mockRepo.On("UpdateNickname", 1, "fresh").Return(nil)

	err := service.RegisterNickname(1, "fresh")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// 测试昵称被其他用户占用
	taken := "taken"
	mockRepo.On("FindByNickname", "taken").Return(&model.User{ID: 2, Nickname: &taken}, nil)

	err = service.RegisterNickname(1, "taken")
	assert.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	assert.True(t, ok)
	assert.Equal(t, apperrors.MsgNicknameExists, appErr.Message)

	// 重复设置为自己已有的昵称视为成功
	mine := "mine"
	mockRepo.On("FindByNickname", "mine").Return(&model.User{ID: 1, Nickname: &mine}, nil)
	mockRepo.On("UpdateNickname", 1, "mine").Return(nil)

	err = service.RegisterNickname(1, "mine")
	assert.NoError(t, err)
}

// TestToggleFollow 测试关注切换功能
func TestToggleFollow(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, new(MockProductRepository), new(MockKakaoResolver))

	// 第一次切换建立关注
	mockRepo.On("Exists", 2).Return(true, nil)
	mockRepo.On("ToggleFollow", 1, 2).Return(true, nil).Once()

	followed, err := service.ToggleFollow(1, 2)
	assert.NoError(t, err)
	assert.True(t, followed)

	// 第二次切换取消关注
	mockRepo.On("ToggleFollow", 1, 2).Return(false, nil).Once()
	followed, err = service.ToggleFollow(1, 2)
	assert.NoError(t, err)
	assert.False(t, followed)

	// 目标用户不存在
	mockRepo.On("Exists", 999).Return(false, nil)
	_, err = service.ToggleFollow(1, 999)
	assert.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	assert.True(t, ok)
	assert.Equal(t, apperrors.MsgUserNotFound, appErr.Message)
}

// TestCreatePurchase 测试创建购买流水功能
func TestCreatePurchase(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockProductRepo := new(MockProductRepository)
	service := NewUserService(mockRepo, mockProductRepo, new(MockKakaoResolver))

	input := PurchaseInput{
		ProductOptionID: 10,
		Price:           45000,
		PayerID:         "PAYER-1",
		PaymentID:       "PAY-1",
		PaymentToken:    "TOKEN-1",
	}

	// 测试成功创建，数量固定为 1
	mockProductRepo.On("FindOptionByID", 10).Return(&model.ProductOption{ID: 10, ProductID: 3}, nil)
	mockRepo.On("CreatePurchase", mock.MatchedBy(func(p *model.PurchaseHistory) bool {
		return p.UserID == 1 && p.ProductOptionID == 10 && p.Quantity == 1 && p.Price == 45000
	})).Return(nil)

	err := service.CreatePurchase(1, input)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// 商品选项不存在
	mockProductRepo.On("FindOptionByID", 404).Return(nil, nil)
	input.ProductOptionID = 404
	err = service.CreatePurchase(1, input)
	assert.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	assert.True(t, ok)
	assert.Equal(t, apperrors.MsgProductNotFound, appErr.Message)
}
