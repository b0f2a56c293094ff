package filing

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"digitalium/internal/config"
	models "digitalium/internal/domain/models/filing"
)

var noSlashes = regexp.MustCompile(`^[^/]+$`)

// nameRules returns the validation rules shared by folder names.
func nameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.Length(1, config.MaxFolderNameLength),
		validation.Match(noSlashes).Error("folder name cannot contain slashes"),
	}
}

// colorRule validates that a color belongs to the fixed palette.
var colorRule = validation.By(func(value interface{}) error {
	color, _ := value.(models.FolderColor)
	if color == "" {
		return nil // defaulted by the service
	}
	if !color.Valid() {
		return validation.NewError("validation_color", "color is not in the folder palette")
	}
	return nil
})

// categoryRule validates that a category is a known archive domain.
var categoryRule = validation.By(func(value interface{}) error {
	category, _ := value.(models.ArchiveCategory)
	if !category.Valid() {
		return validation.NewError("validation_category", "unknown archive category")
	}
	return nil
})

// retentionRule validates retention years: >= 0 or the indefinite sentinel.
// A nil request field is skipped by ozzo and defaulted from the category
// policy table instead.
var retentionRule = validation.By(func(value interface{}) error {
	years, ok := value.(int)
	if !ok {
		return nil
	}
	if years < 0 && years != models.RetentionIndefinite {
		return validation.NewError("validation_retention", "retention years must be >= 0 or indefinite")
	}
	return nil
})
