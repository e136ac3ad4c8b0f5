package constants

import (
	"github.com/go-playground/validator/v10"
)

// ContextKey is the type for all context values set by the framework.
type ContextKey int

const (
	AppKey ContextKey = iota
	PoolKey
	TxKey
	LoggerKey
	ParamsKey
	SessionKey
	UserKey
)

// Validate is the shared validator instance used by DTOs.
var Validate = validator.New()
