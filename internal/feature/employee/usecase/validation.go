package usecase

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"employee_directory/internal/feature/employee/domain/entity"
)

// フォームのフィールド名。再描画時のエラー表示キーとしても使います。
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
)

// emailPattern は local@domain.tld 形式のメールアドレスにマッチします。
var emailPattern = regexp.MustCompile(`^[\w\-.]+@([\w-]+\.)+[\w-]{2,4}$`)

// employeeRules は保存時に検証する制約をタグで宣言します。
type employeeRules struct {
	FirstName string `validate:"min=2"`
	LastName  string `validate:"min=2"`
	Email     string `validate:"emailpattern"`
}

var ruleFields = map[string]Violation{
	"FirstName": {Field: FieldFirstName, Message: "First name should be minimum 2 chars"},
	"LastName":  {Field: FieldLastName, Message: "Last name should be minimum 2 chars"},
	"Email":     {Field: FieldEmail, Message: "Enter valid email"},
}

var employeeValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("emailpattern", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register emailpattern validation: %v", err))
	}
	return v
})

// Violation はフィールド単位の検証エラーです。
type Violation struct {
	Field   string
	Message string
}

// Violations は検証エラーの一覧です。宣言順に並びます。
type Violations []Violation

// For returns the first message recorded for field, or "" when the field is valid.
func (vs Violations) For(field string) string {
	for _, v := range vs {
		if v.Field == field {
			return v.Message
		}
	}
	return ""
}

// Has reports whether field has at least one violation.
func (vs Violations) Has(field string) bool {
	return vs.For(field) != ""
}

// ValidationError は保存が検証で拒否されたことを表します。
type ValidationError struct {
	Violations Violations
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ValidateEmployee は社員レコードを保存前の制約で検証し、違反の一覧を返します。
// 違反がなければ nil を返します。
func ValidateEmployee(e *entity.Employee) Violations {
	rules := employeeRules{
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
	}
	err := employeeValidator().Struct(rules)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError only happens on programmer error
		panic(err)
	}

	var out Violations
	for _, fe := range fieldErrs {
		if v, ok := ruleFields[fe.StructField()]; ok {
			out = append(out, v)
		}
	}
	return out
}
