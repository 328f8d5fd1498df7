package service

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"gadict/internal/domain"
	"gadict/internal/domain/models"
	"gadict/internal/domain/services"
)

// requireRole rejects actors below the minimum role for an operation
func requireRole(actor services.Actor, min models.Role) error {
	if !actor.Role.HasAtLeast(min) {
		return fmt.Errorf("requires at least %s role: %w", min, domain.ErrForbidden)
	}
	return nil
}

// inValues adapts a typed enum slice to validation.In's variadic form
func inValues[T any](values []T) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// requiredWhen applies validation.Required only when cond holds
func requiredWhen(cond bool) validation.Rule {
	if cond {
		return validation.Required
	}
	return validation.Skip
}
