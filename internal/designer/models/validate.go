package models

import (
	"fmt"

	"room-designer/internal/common/validation"

	"github.com/go-playground/validator/v10"
)

func init() {
	validation.MustRegister("furniture_type", func(fl validator.FieldLevel) bool {
		return FurnitureType(fl.Field().String()).Valid()
	})
}

// Validate checks a room that arrives from outside the store (import, storage).
func (r Room) Validate() error {
	if err := validation.Validator().Struct(r); err != nil {
		return fmt.Errorf("invalid room: %w", err)
	}
	seen := make(map[string]struct{}, len(r.Furniture))
	for _, f := range r.Furniture {
		if _, dup := seen[f.ID]; dup {
			return fmt.Errorf("invalid room: duplicate furniture id %s", f.ID)
		}
		seen[f.ID] = struct{}{}
	}
	return nil
}

// Validate checks the patch's colours and name length.
func (p FurniturePatch) Validate() error {
	if err := validation.Validator().Struct(p); err != nil {
		return fmt.Errorf("invalid furniture patch: %w", err)
	}
	return nil
}

func (p RoomPatch) Validate() error {
	if err := validation.Validator().Struct(p); err != nil {
		return fmt.Errorf("invalid room patch: %w", err)
	}
	return nil
}
