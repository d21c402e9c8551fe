// Package booking implements the checkout wizard: the ordered list of steps a
// traveller walks through and the rules for moving between them.
//
// Steps are derived from the wanted categories on every call and never
// stored, except for the wizard's pointer to the current one.
package booking

import "github.com/Agmahima/TravelEase/internal/models"

// ComputeSteps returns confirmation, then each wanted category in the fixed
// order transportation, hotels, cabs, then payment.
func ComputeSteps(wanted models.CategoriesWanted) []models.BookingStep {
	steps := make([]models.BookingStep, 0, len(models.Categories)+2)
	steps = append(steps, models.StepConfirmation)
	for _, c := range models.Categories {
		if wanted.Wants(c) {
			steps = append(steps, c.Step())
		}
	}
	return append(steps, models.StepPayment)
}

// CurrentIndex returns the position of current in steps or -1.
func CurrentIndex(steps []models.BookingStep, current models.BookingStep) int {
	for i, s := range steps {
		if s == current {
			return i
		}
	}
	return -1
}

func CanAdvance(current models.BookingStep, sel models.BookingSelection) bool {
	switch current {
	case models.StepConfirmation:
		return sel.CategoriesWanted.Any()
	case models.StepTransportation:
		return satisfied(sel, models.CategoryTransportation)
	case models.StepHotels:
		return satisfied(sel, models.CategoryHotels)
	case models.StepCabs:
		return satisfied(sel, models.CategoryCabs)
	case models.StepPayment:
		return true
	}
	return false
}

func satisfied(sel models.BookingSelection, c models.Category) bool {
	return !sel.CategoriesWanted.Wants(c) || sel.Selected.Has(c)
}

// Advance returns the next step, or current unchanged when blocked or already
// at the last step.
func Advance(steps []models.BookingStep, current models.BookingStep, sel models.BookingSelection) models.BookingStep {
	idx := CurrentIndex(steps, current)
	if idx < 0 || idx >= len(steps)-1 || !CanAdvance(current, sel) {
		return current
	}
	return steps[idx+1]
}

// Retreat returns the previous step. At the first step it returns current and
// exit=true: the caller should leave the wizard.
func Retreat(steps []models.BookingStep, current models.BookingStep) (models.BookingStep, bool) {
	idx := CurrentIndex(steps, current)
	if idx <= 0 {
		return current, true
	}
	return steps[idx-1], false
}

// Reconcile restarts from confirmation when current is not in steps.
func Reconcile(steps []models.BookingStep, current models.BookingStep) models.BookingStep {
	if CurrentIndex(steps, current) < 0 {
		return models.StepConfirmation
	}
	return current
}
