// Package handler はemployeeフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"employee_directory/internal/feature/employee/domain/entity"
	"employee_directory/internal/feature/employee/transport/http/dto"
	"employee_directory/internal/feature/employee/usecase"
	"employee_directory/internal/platform/security"
	"employee_directory/internal/platform/view"
)

// EmployeeUsecase は社員名簿のユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type EmployeeUsecase interface {
	List(ctx context.Context) ([]entity.Employee, error)
	NewEmployee() *entity.Employee
	Get(ctx context.Context, id int) (*entity.Employee, error)
	Save(ctx context.Context, e *entity.Employee) error
	Delete(ctx context.Context, id int) error
}

// EmployeeHandler は社員名簿のHTTPリクエストを処理し、HTMLビューを描画します。
type EmployeeHandler struct {
	uc EmployeeUsecase
}

// NewEmployeeHandler は新しい EmployeeHandler を作成します。
func NewEmployeeHandler(uc EmployeeUsecase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// List は社員一覧ページを描画します。
func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.uc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, view.EmployeeList, gin.H{
		"Employees": employees,
		"Principal": security.PrincipalFrom(c),
	})
}

// ShowFormForAdd は空の社員フォームを描画します。
func (h *EmployeeHandler) ShowFormForAdd(c *gin.Context) {
	h.renderForm(c, http.StatusOK, h.uc.NewEmployee(), nil)
}

// ShowFormForUpdate は employee.id で指定された社員を読み込んでフォームを描画します。
// - employee.id が数値でない場合は400
// - 社員が存在しない場合は404
func (h *EmployeeHandler) ShowFormForUpdate(c *gin.Context) {
	var req dto.EmployeeIDReq
	if err := c.ShouldBindQuery(&req); err != nil {
		slog.Warn("invalid employee id", "error", err, "remote_addr", c.ClientIP())
		renderError(c, http.StatusBadRequest, "Invalid employee id.")
		return
	}
	emp, err := h.uc.Get(c.Request.Context(), req.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.renderForm(c, http.StatusOK, emp, nil)
}

// Save はフォームの内容を保存（upsert）します。
// 検証エラーの場合は入力値とエラーメッセージ付きでフォームを再描画し、成功時は一覧へリダイレクトします。
func (h *EmployeeHandler) Save(c *gin.Context) {
	var form dto.EmployeeForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("invalid employee form", "error", err, "remote_addr", c.ClientIP())
		renderError(c, http.StatusBadRequest, "Invalid employee form.")
		return
	}
	emp := form.ToEntity()

	err := h.uc.Save(c.Request.Context(), emp)
	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		h.renderForm(c, http.StatusOK, emp, verr.Violations)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	slog.Info("employee saved", "id", emp.ID, "by", username(c))
	c.Redirect(http.StatusFound, "/employees")
}

// Delete は employee.id で指定された社員を削除し、一覧へリダイレクトします。
func (h *EmployeeHandler) Delete(c *gin.Context) {
	var req dto.EmployeeIDReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("invalid employee id", "error", err, "remote_addr", c.ClientIP())
		renderError(c, http.StatusBadRequest, "Invalid employee id.")
		return
	}
	if err := h.uc.Delete(c.Request.Context(), req.ID); err != nil {
		h.fail(c, err)
		return
	}

	slog.Info("employee deleted", "id", req.ID, "by", username(c))
	c.Redirect(http.StatusFound, "/employees")
}

func (h *EmployeeHandler) renderForm(c *gin.Context, status int, emp *entity.Employee, violations usecase.Violations) {
	c.HTML(status, view.EmployeeForm, gin.H{
		"Employee":   emp,
		"Violations": violations,
		"Principal":  security.PrincipalFrom(c),
	})
}

// fail maps a usecase error onto an error page.
func (h *EmployeeHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, usecase.ErrEmployeeNotFound) {
		slog.Info("employee not found", "path", c.Request.URL.Path, "query", c.Request.URL.RawQuery)
		renderError(c, http.StatusNotFound, "Employee not found.")
		return
	}
	slog.Error("employee operation failed", "error", err, "path", c.Request.URL.Path)
	renderError(c, http.StatusInternalServerError, "An internal error occurred.")
}

func renderError(c *gin.Context, status int, message string) {
	c.HTML(status, view.Error, gin.H{
		"Status":    status,
		"Title":     http.StatusText(status),
		"Message":   message,
		"Principal": security.PrincipalFrom(c),
	})
}

func username(c *gin.Context) string {
	if p := security.PrincipalFrom(c); p != nil {
		return p.Username
	}
	return ""
}
