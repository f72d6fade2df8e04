// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"employee_directory/internal/feature/auth/domain/entity"
	"employee_directory/internal/feature/auth/usecase"
)

// 資格情報ストアに対する既定のクエリ。どちらもユーザー名を1つだけバインドします。
const (
	DefaultUsersByUsernameQuery       = "select userid,pwd,active from members where userid=?"
	DefaultAuthoritiesByUsernameQuery = "select userid,role from roles where userid=?"
)

// credentialGorm はCredentialStoreインターフェースのGORM実装です。
// members / roles テーブルは外部所有で、このシステムからは読み取りのみ行います。
type credentialGorm struct {
	db               *gorm.DB
	usersQuery       string
	authoritiesQuery string
}

var _ usecase.CredentialStore = (*credentialGorm)(nil)

// NewCredentialStore は指定されたクエリでcredentialGormを生成します。
// 空文字列のクエリは既定値に置き換えます。
// usersQuery は (userid, pwd, active)、authoritiesQuery は (userid, role) の列を返す必要があります。
func NewCredentialStore(db *gorm.DB, usersQuery, authoritiesQuery string) *credentialGorm {
	if usersQuery == "" {
		usersQuery = DefaultUsersByUsernameQuery
	}
	if authoritiesQuery == "" {
		authoritiesQuery = DefaultAuthoritiesByUsernameQuery
	}
	return &credentialGorm{
		db:               db,
		usersQuery:       usersQuery,
		authoritiesQuery: authoritiesQuery,
	}
}

// FindMember はユーザー名でパスワードと有効フラグを取得します。
// 複数行が返る場合は先頭の行を使います。
func (r *credentialGorm) FindMember(ctx context.Context, username string) (*entity.Member, error) {
	rows, err := r.db.WithContext(ctx).Raw(r.usersQuery, username).Rows()
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query members: %w", err)
		}
		return nil, usecase.ErrMemberNotFound
	}

	var (
		m        entity.Member
		password sql.NullString
	)
	if err := rows.Scan(&m.Username, &password, &m.Active); err != nil {
		return nil, fmt.Errorf("scan member: %w", err)
	}
	m.Password = password.String
	return &m, nil
}

// FindRoles はユーザー名に付与されたロールをすべて取得します。
func (r *credentialGorm) FindRoles(ctx context.Context, username string) ([]entity.Role, error) {
	rows, err := r.db.WithContext(ctx).Raw(r.authoritiesQuery, username).Rows()
	if err != nil {
		return nil, fmt.Errorf("query roles: %w", err)
	}
	defer rows.Close()

	var roles []entity.Role
	for rows.Next() {
		var userid, role string
		if err := rows.Scan(&userid, &role); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		if parsed := entity.ParseRole(role); parsed != "" {
			roles = append(roles, parsed)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query roles: %w", err)
	}
	return roles, nil
}
