package validator

import (
	"github.com/go-playground/validator/v10"

	"buildlink_backend/internal/models"
)

// registerCustomRules adds domain-specific validation tags.
func registerCustomRules(v *validator.Validate) {
	// milestone_pct: value must be one of the fixed checkpoint percentages.
	_ = v.RegisterValidation("milestone_pct", func(fl validator.FieldLevel) bool {
		return models.ValidMilestonePercentage(int(fl.Field().Int()))
	})

	// sender_kind: one of customer, worker, company.
	_ = v.RegisterValidation("sender_kind", func(fl validator.FieldLevel) bool {
		return models.ValidSenderKind(models.SenderKind(fl.Field().String()))
	})
}
