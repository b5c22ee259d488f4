// Package auth 实现认证与用户管理业务逻辑
// 密码使用 bcrypt 存储；刷新令牌的 tokenID 存 Redis 实现单点互踢
package auth

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tak_portal_server/internal/dao/mysql/repository"
	myredis "tak_portal_server/internal/dao/redis"
	"tak_portal_server/internal/dto/request"
	"tak_portal_server/internal/dto/respond"
	"tak_portal_server/internal/model"
	"tak_portal_server/pkg/constants"
	"tak_portal_server/pkg/errorx"
	myjwt "tak_portal_server/pkg/util/jwt"
	"tak_portal_server/pkg/util/random"
)

// authService 认证业务逻辑实现
type authService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewAuthService 构造函数
func NewAuthService(repos *repository.Repositories, cacheService myredis.AsyncCacheService) *authService {
	return &authService{
		repos: repos,
		cache: cacheService,
	}
}

func refreshTokenKey(userUuid string) string {
	return "refresh_token_" + userUuid
}

// issueTokens 签发令牌对并把 refresh tokenID 写入 Redis
// 旧的 tokenID 被覆盖，同一账号只有最后一次登录的刷新令牌有效
func (s *authService) issueTokens(user *model.UserInfo) (*respond.LoginRespond, error) {
	accessToken, err := myjwt.GenerateAccessToken(user.Uuid)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "签发访问令牌失败")
	}
	refreshToken, tokenID, err := myjwt.GenerateRefreshToken(user.Uuid)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "签发刷新令牌失败")
	}

	if err := s.cache.Set(context.Background(), refreshTokenKey(user.Uuid), tokenID,
		time.Hour*constants.REFRESH_TOKEN_EXPIRY_HOURS); err != nil {
		zap.L().Error("写入刷新令牌失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return &respond.LoginRespond{
		UserId:       user.Uuid,
		Username:     user.Username,
		Callsign:     user.Callsign,
		IsAdmin:      user.IsAdmin,
		IsRadioAdmin: user.IsRadioAdmin,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Login 密码登录
func (s *authService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := s.repos.User.FindByUsername(req.Username)
	if err != nil {
		if errorx.IsNotFound(err) {
			// 不区分"用户不存在"和"密码错误"，避免账号探测
			return nil, errorx.New(errorx.CodeInvalidPassword, "用户名或密码错误")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errorx.New(errorx.CodeInvalidPassword, "用户名或密码错误")
	}

	return s.issueTokens(user)
}

// RefreshToken 用刷新令牌换取新的令牌对
// 校验 token 类型和 Redis 里的 tokenID，换发后旧刷新令牌立即失效
func (s *authService) RefreshToken(req request.RefreshTokenRequest) (*respond.LoginRespond, error) {
	claims, err := myjwt.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, errorx.New(errorx.CodeUnauthorized, "刷新令牌无效或已过期")
	}
	if claims.Subject != "refresh_token" || claims.TokenID == "" {
		return nil, errorx.New(errorx.CodeUnauthorized, "令牌类型错误")
	}

	storedTokenID, err := s.cache.Get(context.Background(), refreshTokenKey(claims.UserID))
	if err != nil {
		zap.L().Error("读取刷新令牌失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if storedTokenID == "" || storedTokenID != claims.TokenID {
		return nil, errorx.New(errorx.CodeUnauthorized, "刷新令牌已失效，请重新登录")
	}

	user, err := s.repos.User.FindByUuid(claims.UserID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUnauthorized, "用户不存在")
		}
		return nil, err
	}

	return s.issueTokens(user)
}

// CreateUser 创建用户
func (s *authService) CreateUser(req request.CreateUserRequest) (*respond.UserInfoRespond, error) {
	if _, err := s.repos.User.FindByUsername(req.Username); err == nil {
		return nil, errorx.Newf(errorx.CodeUserExist, "用户名 %s 已存在", req.Username)
	} else if !errorx.IsNotFound(err) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "密码加密失败")
	}

	user := model.UserInfo{
		Uuid:         fmt.Sprintf("U%s", random.GetNowAndLenRandomString(11)),
		Username:     req.Username,
		Password:     string(hashed),
		Callsign:     req.Callsign,
		Role:         req.Role,
		IsAdmin:      req.IsAdmin,
		IsRadioAdmin: req.IsRadioAdmin,
	}
	if err := s.repos.User.Create(&user); err != nil {
		return nil, err
	}

	return &respond.UserInfoRespond{
		UserId:       user.Uuid,
		Username:     user.Username,
		Callsign:     user.Callsign,
		Role:         user.Role,
		IsAdmin:      user.IsAdmin,
		IsRadioAdmin: user.IsRadioAdmin,
	}, nil
}

// GetUserInfo 获取单个用户信息
func (s *authService) GetUserInfo(uuid string) (*respond.UserInfoRespond, error) {
	user, err := s.repos.User.FindByUuid(uuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeUserNotExist, "用户 %s 不存在", uuid)
		}
		return nil, err
	}
	return &respond.UserInfoRespond{
		UserId:       user.Uuid,
		Username:     user.Username,
		Callsign:     user.Callsign,
		Role:         user.Role,
		IsAdmin:      user.IsAdmin,
		IsRadioAdmin: user.IsRadioAdmin,
	}, nil
}
