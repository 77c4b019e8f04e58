package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Tag     string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	// Generate custom message based on tag
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "min":
		return fmt.Sprintf("%s must be at least", e.Field)
	case "max":
		return fmt.Sprintf("%s must be at most", e.Field)
	case "oneof":
		return fmt.Sprintf("%s must be one of", e.Field)
	case "":
		return fmt.Sprintf("%s failed validation", e.Field)
	default:
		return fmt.Sprintf("%s failed validation", e.Field)
	}
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// Validator provides configuration validation.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	validate := validator.New()

	// Register custom validation functions
	if err := registerAllValidators(validate); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	return &Validator{validate: validate}, nil
}

// ValidateConfig validates a configuration struct.
func (v *Validator) ValidateConfig(config *Config) error {
	// Check for nil config first
	if config == nil {
		return ValidationErrors{
			ValidationError{
				Field:   "config",
				Tag:     "required",
				Value:   nil,
				Message: "config is nil",
			},
		}
	}

	err := v.validate.Struct(config)
	if err == nil {
		// Perform additional custom validations if struct validation passes
		if customErrors := v.validateCustomRules(config); len(customErrors) > 0 {
			return customErrors
		}
		return nil
	}

	// Convert validator errors to our custom error format
	var validationErrors ValidationErrors

	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range errs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   e.Field(),
				Tag:     e.Tag(),
				Value:   e.Value(),
				Message: getValidationMessage(e),
			})
		}
	} else {
		validationErrors = append(validationErrors, ValidationError{
			Message: err.Error(),
		})
	}

	// Perform additional custom validations
	if customErrors := v.validateCustomRules(config); len(customErrors) > 0 {
		validationErrors = append(validationErrors, customErrors...)
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

// validateCustomRules performs additional custom validation rules.
func (v *Validator) validateCustomRules(config *Config) ValidationErrors {
	var errors ValidationErrors

	// Check for nil config
	if config == nil {
		errors = append(errors, ValidationError{
			Field:   "config",
			Tag:     "required",
			Value:   nil,
			Message: "config cannot be nil",
		})
		return errors
	}

	// Validate engine configuration consistency
	if errs := v.validateEngineConfig(&config.Engine); len(errs) > 0 {
		errors = append(errors, errs...)
	}

	// Validate gene pool configuration
	if errs := v.validatePoolConfig(&config.Pool); len(errs) > 0 {
		errors = append(errors, errs...)
	}

	// Validate logging configuration
	if errs := v.validateLoggingConfig(&config.Logging); len(errs) > 0 {
		errors = append(errors, errs...)
	}

	return errors
}

// validateEngineConfig validates engine configuration.
func (v *Validator) validateEngineConfig(config *EngineConfig) ValidationErrors {
	var errors ValidationErrors

	// Validate swap bound ordering
	if config.MaxSwaps < config.MinSwaps {
		errors = append(errors, ValidationError{
			Field:   "Engine.MaxSwaps",
			Value:   config.MaxSwaps,
			Message: fmt.Sprintf("max swaps (%d) must not be below min swaps (%d)", config.MaxSwaps, config.MinSwaps),
		})
	}

	return errors
}

// validatePoolConfig validates gene pool configuration.
func (v *Validator) validatePoolConfig(config *PoolConfig) ValidationErrors {
	var errors ValidationErrors

	if config.Path == "" {
		return errors
	}

	inferred := formatForExtension(filepath.Ext(config.Path))

	if config.Format == "" {
		if inferred == "" {
			errors = append(errors, ValidationError{
				Field:   "Pool.Path",
				Value:   config.Path,
				Message: fmt.Sprintf("cannot infer pool format from extension of %s; set pool.format explicitly", config.Path),
			})
		}
		return errors
	}

	// Validate that an explicit format agrees with a recognized extension
	if inferred != "" && inferred != config.Format {
		errors = append(errors, ValidationError{
			Field:   "Pool.Format",
			Value:   config.Format,
			Message: fmt.Sprintf("pool format '%s' does not match extension of %s", config.Format, config.Path),
		})
	}

	return errors
}

// formatForExtension maps a pool file extension to its format name.
func formatForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return "yaml"
	case ".ini":
		return "ini"
	default:
		return ""
	}
}

// validateLoggingConfig validates logging configuration.
func (v *Validator) validateLoggingConfig(config *LoggingConfig) ValidationErrors {
	var errors ValidationErrors

	// Validate log outputs
	for i, output := range config.Outputs {
		if errs := v.validateLogOutput(i, &output); len(errs) > 0 {
			errors = append(errors, errs...)
		}
	}

	return errors
}

// validateLogOutput validates a log output configuration.
func (v *Validator) validateLogOutput(index int, output *LogOutputConfig) ValidationErrors {
	var errors ValidationErrors

	// Validate file output
	if output.Type == "file" {
		if output.FilePath == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("Logging.Outputs[%d].FilePath", index),
				Message: "file path is required for file output",
			})
		} else {
			// Validate that the directory path is valid
			dir := filepath.Dir(output.FilePath)
			if !filepath.IsAbs(dir) {
				errors = append(errors, ValidationError{
					Field:   fmt.Sprintf("Logging.Outputs[%d].FilePath", index),
					Message: "log file path must be absolute",
				})
			}
		}
	}

	return errors
}

// registerAllValidators registers all custom validators.
func registerAllValidators(validate *validator.Validate) error {
	validators := map[string]validator.Func{
		"file_path":   validateFilePath,
		"log_level":   validateLogLevel,
		"output_type": validateOutputType,
		"pool_format": validatePoolFormat,
	}

	for name, fn := range validators {
		if err := validate.RegisterValidation(name, fn); err != nil {
			return fmt.Errorf("failed to register validator '%s': %w", name, err)
		}
	}

	return nil
}

// validateFilePath validates file paths.
func validateFilePath(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "" {
		return true // Allow empty paths
	}
	// Check if it's an absolute path
	return filepath.IsAbs(path)
}

// validateLogLevel validates log levels.
func validateLogLevel(fl validator.FieldLevel) bool {
	level := fl.Field().String()
	validLevels := []string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}
	for _, valid := range validLevels {
		if level == valid {
			return true
		}
	}
	return false
}

// validateOutputType validates output types.
func validateOutputType(fl validator.FieldLevel) bool {
	outputType := fl.Field().String()
	validTypes := []string{"console", "file"}
	for _, valid := range validTypes {
		if outputType == valid {
			return true
		}
	}
	return false
}

// validatePoolFormat validates gene pool file formats.
func validatePoolFormat(fl validator.FieldLevel) bool {
	format := fl.Field().String()
	if format == "" {
		return true // Format may be inferred from the file extension
	}
	validFormats := []string{"yaml", "ini"}
	for _, valid := range validFormats {
		if format == valid {
			return true
		}
	}
	return false
}

// getValidationMessage returns a human-readable validation message.
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
	case "file_path":
		return fmt.Sprintf("%s must be a valid file path", e.Field())
	default:
		return fmt.Sprintf("%s failed validation", e.Field())
	}
}

// Global validator instance.
var (
	globalValidator *Validator
	validatorOnce   sync.Once
)

// GetValidator returns the global validator instance.
func GetValidator() *Validator {
	validatorOnce.Do(func() {
		var err error
		globalValidator, err = NewValidator()
		if err != nil {
			panic(fmt.Sprintf("failed to create global validator: %v", err))
		}
	})
	return globalValidator
}

// ValidateConfiguration validates a configuration using the global validator.
func ValidateConfiguration(config *Config) error {
	return GetValidator().ValidateConfig(config)
}
