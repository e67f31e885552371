package util

import (
	"sync"
	"time"

	"nexuscrm/config"
	"nexuscrm/logutils"
	"nexuscrm/model"

	jwt "github.com/golang-jwt/jwt/v5"
)

type TokenConf struct {
	AccessTokenExpiryHour  int
	RefreshTokenExpiryHour int
	AccessTokenSecret      string
	RefreshTokenSecret     string
}

func NewTokenConf() *TokenConf {
	auth := config.GetConfig().Auth
	return &TokenConf{
		AccessTokenExpiryHour:  auth.AccessTokenExpiryHour,
		RefreshTokenExpiryHour: auth.RefreshTokenExpiryHour,
		AccessTokenSecret:      auth.AccessTokenSecret,
		RefreshTokenSecret:     auth.RefreshTokenSecret,
	}
}

type (
	JWTClaims struct {
		UserID   uint       `json:"ui"`
		Username string     `json:"un"`
		Role     model.Role `json:"rp"`
		jwt.RegisteredClaims
	}
	JWTMessage struct {
		UserID   uint       `json:"userID"`   // User ID
		Username string     `json:"username"` // Display name
		Role     model.Role `json:"role"`     // Role in platform (e.g. user, admin)
	}
)

type TokenManager struct {
	accessSecret    string
	refreshSecret   string
	accessTokenTTL  int
	refreshTokenTTL int
}

var (
	once     sync.Once
	tokenMgr *TokenManager
)

func GetTokenMgr() *TokenManager {
	once.Do(func() {
		tokenConfig := NewTokenConf()
		tokenMgr = NewTokenManager(tokenConfig.AccessTokenSecret,
			tokenConfig.RefreshTokenSecret,
			tokenConfig.AccessTokenExpiryHour,
			tokenConfig.RefreshTokenExpiryHour,
		)
	})
	return tokenMgr
}

func NewTokenManager(accessSecret, refreshSecret string, accessTokenTTL, refreshTokenTTL int) *TokenManager {
	return &TokenManager{
		accessSecret,
		refreshSecret,
		accessTokenTTL,
		refreshTokenTTL,
	}
}

func (tm *TokenManager) createToken(msg *JWTMessage, secret string, ttl int) (string, error) {
	expiresAt := time.Now().Add(time.Hour * time.Duration(ttl))

	claims := &JWTClaims{
		UserID:   msg.UserID,
		Username: msg.Username,
		Role:     msg.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// CreateTokens creates a new access token and a new refresh token,
// each signed with its own secret.
func (tm *TokenManager) CreateTokens(msg *JWTMessage) (
	accessToken string, refreshToken string, err error) {
	accessToken, err = tm.createToken(msg, tm.accessSecret, tm.accessTokenTTL)
	if err != nil {
		logutils.Log.Error(err)
		return "", "", err
	}
	refreshToken, err = tm.createToken(msg, tm.refreshSecret, tm.refreshTokenTTL)
	if err != nil {
		logutils.Log.Error(err)
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (tm *TokenManager) checkToken(requestToken, secret string) (JWTMessage, error) {
	claims := JWTClaims{}
	_, err := jwt.ParseWithClaims(requestToken, &claims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	return JWTMessage{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, err
}

func (tm *TokenManager) CheckToken(requestToken string) (JWTMessage, error) {
	return tm.checkToken(requestToken, tm.accessSecret)
}

func (tm *TokenManager) CheckRefreshToken(requestToken string) (JWTMessage, error) {
	return tm.checkToken(requestToken, tm.refreshSecret)
}
