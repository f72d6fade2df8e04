package usecase

import (
	"context"
	"fmt"

	"employee_directory/internal/feature/employee/domain/entity"
)

// EmployeeRepository abstracts the persistence layer for employee records.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type EmployeeRepository interface {
	// FindAll returns every employee ordered by ID.
	FindAll(ctx context.Context) ([]entity.Employee, error)

	// FindByID returns the employee with the given ID.
	// It returns ErrEmployeeNotFound if the employee does not exist.
	FindByID(ctx context.Context, id int) (*entity.Employee, error)

	// Save inserts the employee when its ID is zero and assigns the new ID.
	// Otherwise it updates the existing row in place, returning ErrEmployeeNotFound if there is none.
	Save(ctx context.Context, e *entity.Employee) error

	// DeleteByID removes the employee with the given ID.
	// It returns ErrEmployeeNotFound if the employee does not exist.
	DeleteByID(ctx context.Context, id int) error
}

// EmployeeUsecase provides the employee directory operations.
type EmployeeUsecase struct {
	repo EmployeeRepository
}

// NewEmployeeUsecase creates a new EmployeeUsecase with the given repository.
func NewEmployeeUsecase(r EmployeeRepository) *EmployeeUsecase {
	return &EmployeeUsecase{repo: r}
}

// List returns all employees.
func (u *EmployeeUsecase) List(ctx context.Context) ([]entity.Employee, error) {
	employees, err := u.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

// NewEmployee は追加フォームにバインドする空の社員を返します。
func (u *EmployeeUsecase) NewEmployee() *entity.Employee {
	return &entity.Employee{}
}

// Get はIDで社員を取得します。
// 存在しないIDの場合はErrEmployeeNotFoundを返します。
func (u *EmployeeUsecase) Get(ctx context.Context, id int) (*entity.Employee, error) {
	if id <= 0 {
		return nil, ErrEmployeeNotFound
	}
	return u.repo.FindByID(ctx, id)
}

// Save は社員を検証してから保存（upsert）します。
// 検証に失敗した場合は *ValidationError を返し、ストレージへの書き込みは行いません。
func (u *EmployeeUsecase) Save(ctx context.Context, e *entity.Employee) error {
	if violations := ValidateEmployee(e); len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	if e.ID < 0 {
		return ErrEmployeeNotFound
	}
	return u.repo.Save(ctx, e)
}

// Delete はIDで社員を削除します。
func (u *EmployeeUsecase) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrEmployeeNotFound
	}
	return u.repo.DeleteByID(ctx, id)
}
