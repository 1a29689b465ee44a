package config

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"

	"github.com/mithrel/perktable/pkg/api"
)

// OutputModes lists the accepted values of output.mode.
var OutputModes = []any{"markdown", "pretty", "json"}

// CheckConfigValidity reports every invalid option at once.
func CheckConfigValidity(v *viper.Viper) error {
	source := strings.TrimSpace(v.GetString("data_dir")) + strings.TrimSpace(v.GetString("bundle"))
	start := v.GetString("readme.start_marker")
	end := v.GetString("readme.end_marker")

	errs := validation.Errors{
		"data_dir": validation.Validate(source,
			validation.Required.Error("data_dir or bundle is required")),
		"columns": validation.Validate(v.GetStringSlice("columns"),
			validation.Required.Error("at least one column is required"),
			validation.By(func(value any) error {
				_, err := api.ParseColumns(value.([]string))
				return err
			})),
		"readme.path": validation.Validate(strings.TrimSpace(v.GetString("readme.path")),
			validation.Required.Error("readme.path is required")),
		"readme.start_marker": validation.Validate(strings.TrimSpace(start),
			validation.Required.Error("readme.start_marker is required")),
		"readme.end_marker": validation.Validate(strings.TrimSpace(end),
			validation.Required.Error("readme.end_marker is required"),
			validation.By(func(any) error {
				if strings.TrimSpace(start) == strings.TrimSpace(end) {
					return errors.New("readme markers must differ")
				}
				return nil
			})),
		"output.mode": validation.Validate(v.GetString("output.mode"),
			validation.In(OutputModes...).Error("output.mode must be markdown, pretty or json")),
		"preview.word_wrap": validation.Validate(v.GetInt("preview.word_wrap"),
			validation.Required.Error("preview.word_wrap must be greater than 0"),
			validation.Min(1).Error("preview.word_wrap must be greater than 0")),
		"log.level": validation.Validate(strings.ToLower(v.GetString("log.level")),
			validation.In("debug", "info", "warn", "error").Error("log.level must be debug, info, warn or error")),
		"log.format": validation.Validate(v.GetString("log.format"),
			validation.In("console", "json").Error("log.format must be console or json")),
	}
	return errs.Filter()
}
