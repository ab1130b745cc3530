// Package validation validates structs with go-playground/validator tags.
//
// Field names in messages follow the mapstructure tag (falling back to the
// json tag, then snake_case), so errors point at the config key a user
// would edit:
//
//	type Config struct {
//	    Mode string `mapstructure:"mode" validate:"required,oneof=heuristic llm"`
//	}
//	err := validation.Validate(cfg) // "mode: must be one of: heuristic llm"
package validation
