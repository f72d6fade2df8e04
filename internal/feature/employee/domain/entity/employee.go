// Package entity はemployeeフィーチャーのドメインモデルを定義します。
package entity

// Employee は社員名簿の1レコードを表します。
// IDはストアが採番し、一度割り当てられた後は変更されません。
// ID が 0 のレコードは未保存として扱われます。
type Employee struct {
	ID        int    `gorm:"column:id;primaryKey;autoIncrement"`
	FirstName string `gorm:"column:first_name;size:255"`
	LastName  string `gorm:"column:last_name;size:255"`
	Email     string `gorm:"column:email;size:255"`
}

// TableName returns the table name for GORM.
func (Employee) TableName() string {
	return "employee"
}

// IsNew reports whether the employee has not been assigned an identity yet.
func (e *Employee) IsNew() bool {
	return e.ID == 0
}
