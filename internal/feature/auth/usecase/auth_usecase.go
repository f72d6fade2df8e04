package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"employee_directory/internal/feature/auth/domain"
	"employee_directory/internal/feature/auth/domain/entity"
)

// CredentialStore resolves a username to its stored credentials and granted roles.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CredentialStore interface {
	// FindMember returns the password value and active flag for username.
	// It returns ErrMemberNotFound if there is no such member.
	FindMember(ctx context.Context, username string) (*entity.Member, error)

	// FindRoles returns every role granted to username. An empty result is not an error.
	FindRoles(ctx context.Context, username string) ([]entity.Role, error)
}

// TokenSigner signs and verifies the session cookie value.
// Following Go convention: the interface is defined by the consumer (usecase), not the provider (platform/jwt).
type TokenSigner interface {
	// GenerateToken returns a signed token naming the session.
	GenerateToken(sessionID, username string) (string, error)

	// ParseToken verifies token and returns the session ID it names.
	ParseToken(token string) (string, error)
}

// ClientInfo describes the client that is logging in.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	members    CredentialStore
	sessions   SessionRepository
	tokens     TokenSigner
	sessionTTL time.Duration
	now        func() time.Time
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(members CredentialStore, sessions SessionRepository, tokens TokenSigner, sessionTTL time.Duration) *authUsecase {
	return &authUsecase{
		members:    members,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// Authenticate はユーザー名とパスワードを資格情報ストアで検証し、プリンシパルを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Authenticate(ctx context.Context, username, password string) (*entity.Principal, error) {
	member, err := u.members.FindMember(ctx, username)
	if err != nil && !errors.Is(err, ErrMemberNotFound) {
		return nil, fmt.Errorf("lookup member: %w", err)
	}

	stored := dummyHash
	if member != nil {
		stored = member.Password
	}
	matched := passwordMatches(stored, password)

	if member == nil || !matched {
		return nil, domain.ErrInvalidCredentials
	}
	if !member.Active {
		return nil, domain.ErrAccountDisabled
	}

	roles, err := u.members.FindRoles(ctx, member.Username)
	if err != nil {
		return nil, fmt.Errorf("lookup roles: %w", err)
	}
	if len(roles) == 0 {
		return nil, domain.ErrInvalidCredentials
	}

	return &entity.Principal{Username: member.Username, Roles: roles}, nil
}

// Login は認証に成功したプリンシパルのセッションを作成し、署名済みのセッショントークンを返します。
func (u *authUsecase) Login(ctx context.Context, username, password string, client ClientInfo) (string, *entity.Principal, error) {
	principal, err := u.Authenticate(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	now := u.now()
	session := &entity.Session{
		ID:        uuid.NewString(),
		Username:  principal.Username,
		Roles:     principal.Roles,
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := u.tokens.GenerateToken(session.ID, session.Username)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, principal, nil
}

// ResolveSession はセッショントークンを検証し、セッションに紐づくプリンシパルを返します。
// リクエストごとにセッションストアを参照し、失効・期限切れを検出します。
func (u *authUsecase) ResolveSession(ctx context.Context, token string) (*entity.Principal, error) {
	sessionID, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSessionToken, err)
	}

	session, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsRevoked() {
		return nil, ErrSessionRevoked
	}
	if session.IsExpiredAt(u.now()) {
		return nil, ErrSessionExpired
	}
	return session.Principal(), nil
}

// Logout はセッションを失効させます。
// 既に存在しないセッションや不正なトークンはエラーとしません。
func (u *authUsecase) Logout(ctx context.Context, token string) error {
	sessionID, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil
	}
	if err := u.sessions.Revoke(ctx, sessionID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}
