// Package validation configures gin's validator and turns its errors into
// per-field English messages.
package validation

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/guregu/null/v6"
)

var (
	once     sync.Once
	setupErr error
	trans    ut.Translator
)

// Setup registers translations, json field names and null.* type support on
// gin's binding engine. Safe to call more than once.
func Setup() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			setupErr = errors.New("validation: unexpected binding engine")
			return
		}
		setupErr = configure(v)
	})
	return setupErr
}

func configure(v *validator.Validate) error {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ = uni.GetTranslator("en")

	if err := entranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return fmt.Errorf("failed to register translations: %w", err)
	}

	// Report json names so messages match the request payload
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	v.RegisterCustomTypeFunc(
		ParseNullable,
		null.Bool{},
		null.Float{},
		null.Int{},
		null.String{},
		null.Time{},
	)
	return nil
}

// Workaround for omitnil not working with "untyped nil"
// https://github.com/go-playground/validator/issues/1209#issuecomment-1892359649
var nilValue *struct{}

// ParseNullable implements validator.CustomTypeFunc
func ParseNullable(field reflect.Value) any {
	if nullValue, ok := field.Interface().(driver.Valuer); ok {
		if val, err := nullValue.Value(); err == nil {
			if val == nil {
				return nilValue
			}
			return val
		}
	}
	return nil
}

// Messages maps each failing field to a readable message. It returns nil
// when err is not a validation error.
func Messages(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if msg, ok := CustomMessage(field)[fe.Tag()]; ok {
			out[field] = msg
			continue
		}
		if trans != nil {
			out[field] = fe.Translate(trans)
			continue
		}
		out[field] = fmt.Sprintf("%s failed on the '%s' rule", field, fe.Tag())
	}
	return out
}
