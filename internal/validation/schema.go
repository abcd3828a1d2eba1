package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// IssueSeparator 连接多条校验错误，调用方拿到一条包含全部问题的字符串。
const IssueSeparator = ", "

// Messages 以 "字段.规则"（如 "title.min"）为键，给出面向用户的错误描述。
type Messages map[string]string

// Error 汇总一次校验中的全部问题，顺序与结构体字段顺序一致。
type Error struct {
	Issues []string
}

func (e *Error) Error() string {
	return strings.Join(e.Issues, IssueSeparator)
}

// Schema 将 validate 标签规则与资源自己的错误文案组合起来。
type Schema struct {
	validate *validator.Validate
	messages Messages
}

var engine = newEngine()

func newEngine() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	if err := v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(fmt.Sprintf("register date validation: %v", err))
	}
	return v
}

// NewSchema 创建使用给定错误文案的 Schema。
func NewSchema(messages Messages) *Schema {
	return &Schema{validate: engine, messages: messages}
}

// Check 校验 payload，全部通过返回 nil，否则返回 *Error。
func (s *Schema) Check(payload any) error {
	err := s.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	issues := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, s.message(fe))
	}
	return &Error{Issues: issues}
}

func (s *Schema) message(fe validator.FieldError) string {
	field := fe.Field()
	if msg, ok := s.messages[field+"."+fe.Tag()]; ok {
		return msg
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "date":
		return fmt.Sprintf("%s must be a valid date", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
