// Package adapters はemployeeフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"employee_directory/internal/feature/employee/domain/entity"
	"employee_directory/internal/feature/employee/usecase"
)

// employeeGorm はEmployeeRepositoryインターフェースのGORM実装です。
// MySQL / PostgreSQL / SQLite のいずれのダイアレクトでも動作します。
type employeeGorm struct {
	db *gorm.DB
}

var _ usecase.EmployeeRepository = (*employeeGorm)(nil)

// NewEmployeeRepository は指定されたDB接続でemployeeGormの新しいインスタンスを生成します。
func NewEmployeeRepository(db *gorm.DB) *employeeGorm {
	return &employeeGorm{db: db}
}

// FindAll はID昇順ですべての社員を返します。
func (r *employeeGorm) FindAll(ctx context.Context) ([]entity.Employee, error) {
	var employees []entity.Employee
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// FindByID はIDで社員を取得します。
// 社員が存在しない場合、usecase.ErrEmployeeNotFoundを返します。
func (r *employeeGorm) FindByID(ctx context.Context, id int) (*entity.Employee, error) {
	var e entity.Employee
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Save はIDが0なら新規作成してIDを採番し、それ以外は既存行をその場で更新します。
// 既存行がない場合は挿入せずにusecase.ErrEmployeeNotFoundを返します。
func (r *employeeGorm) Save(ctx context.Context, e *entity.Employee) error {
	if e.IsNew() {
		return r.db.WithContext(ctx).Create(e).Error
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.Employee{}).Where("id = ?", e.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return usecase.ErrEmployeeNotFound
		}
		return tx.Model(&entity.Employee{}).
			Where("id = ?", e.ID).
			Updates(map[string]any{
				"first_name": e.FirstName,
				"last_name":  e.LastName,
				"email":      e.Email,
			}).Error
	})
}

// DeleteByID はIDで社員を削除します。
// 対象行がない場合、usecase.ErrEmployeeNotFoundを返します。
func (r *employeeGorm) DeleteByID(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Employee{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrEmployeeNotFound
	}
	return nil
}
