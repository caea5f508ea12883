package request

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Calendar blocks carry a closed set of reasons so downstream reporting can
// group them.
var blockReasons = map[string]struct{}{
	"host_block":  {},
	"maintenance": {},
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("blockreason", func(fl validator.FieldLevel) bool {
			_, ok := blockReasons[fl.Field().String()]
			return ok
		})
	}
}
