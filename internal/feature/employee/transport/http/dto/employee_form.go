// Package dto はemployeeフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "employee_directory/internal/feature/employee/domain/entity"

// EmployeeForm は保存フォームの入力を表します。
// id が空または0の場合は新規登録として扱われます。
type EmployeeForm struct {
	ID        int    `form:"id"`
	FirstName string `form:"firstName"`
	LastName  string `form:"lastName"`
	Email     string `form:"email"`
}

// ToEntity converts the form into an employee record.
func (f EmployeeForm) ToEntity() *entity.Employee {
	return &entity.Employee{
		ID:        f.ID,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
	}
}

// EmployeeIDReq carries the employee.id parameter of the update form and delete requests.
type EmployeeIDReq struct {
	ID int `form:"employee.id"`
}
