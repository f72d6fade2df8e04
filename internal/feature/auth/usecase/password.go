package usecase

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// splitEncoding は "{id}encoded" 形式のパスワード値をエンコーディングIDと本体に分割します。
// プレフィックスがない場合、IDは空文字列です。
func splitEncoding(stored string) (id, encoded string) {
	if !strings.HasPrefix(stored, "{") {
		return "", stored
	}
	end := strings.Index(stored, "}")
	if end < 0 {
		return "", stored
	}
	return stored[1:end], stored[end+1:]
}

// passwordMatches は保存済みのパスワード値と平文パスワードを比較します。
// {bcrypt} とプレフィックスなしはbcrypt、{noop} は平文比較として扱います。
// 未知のエンコーディングは常に不一致です。
func passwordMatches(stored, raw string) bool {
	id, encoded := splitEncoding(stored)
	switch id {
	case "", "bcrypt":
		return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(raw)) == nil
	case "noop":
		return subtle.ConstantTimeCompare([]byte(encoded), []byte(raw)) == 1
	default:
		return false
	}
}

// EncodeBcrypt はmembers.pwd列に格納できる {bcrypt} 形式の値を生成します。
func EncodeBcrypt(raw string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return "{bcrypt}" + string(hashed), nil
}
