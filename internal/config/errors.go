package config

import "github.com/ayoisaiah/ultradian/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errPrompt = &apperr.Error{
		Message: "user prompt failed",
	}

	errInvalidColor = &apperr.Error{
		Message: "%s color must be a valid hex color code (e.g. #FF0000), got %s",
	}

	errInvalidDuration = &apperr.Error{
		Message: "%s duration must be between %d and %d minutes, got %d",
	}

	errInvalidCycles = &apperr.Error{
		Message: "cycles must be between %d and %d, got %d",
	}

	errInvalidStorage = &apperr.Error{
		Message: "storage must be one of %v, got %q",
	}

	errInvalidBaseURL = &apperr.Error{
		Message: "api base url must be an absolute http(s) url, got %q",
	}
)

var (
	// ErrInvalidDuration is returned for segment lengths out of range.
	ErrInvalidDuration = errInvalidDuration
	// ErrInvalidCycles is returned for cycle counts out of range.
	ErrInvalidCycles = errInvalidCycles
)
