package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Profile 是身份提供方返回的用户画像
type Profile struct {
	ID                  int64
	Email               string
	EmailNeedsAgreement bool
}

// Client 封装对 Kakao 用户信息接口的一次性出站调用，不重试也不缓存
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient 创建一个新的 Kakao 客户端
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

type kakaoAccount struct {
	Email               string `json:"email"`
	EmailNeedsAgreement bool   `json:"email_needs_agreement"`
}

type kakaoUserResponse struct {
	ID           int64        `json:"id"`
	KakaoAccount kakaoAccount `json:"kakao_account"`
}

// Resolve 用外部签发的访问令牌换取用户画像
func (c *Client) Resolve(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/user/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求Kakao用户信息失败: %w", err)
	}
	defer resp.Body.Close()

	var body kakaoUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("解析Kakao响应失败: %w", err)
	}

	return &Profile{
		ID:                  body.ID,
		Email:               body.KakaoAccount.Email,
		EmailNeedsAgreement: body.KakaoAccount.EmailNeedsAgreement,
	}, nil
}
