package booking

import (
	"reflect"
	"testing"

	"github.com/Agmahima/TravelEase/internal/models"
)

func allWanted() []models.CategoriesWanted {
	var out []models.CategoriesWanted
	for mask := 0; mask < 8; mask++ {
		out = append(out, models.CategoriesWanted{
			Transportation: mask&1 != 0,
			Hotels:         mask&2 != 0,
			Cabs:           mask&4 != 0,
		})
	}
	return out
}

func TestComputeStepsShape(t *testing.T) {
	order := map[models.BookingStep]int{
		models.StepTransportation: 0,
		models.StepHotels:         1,
		models.StepCabs:           2,
	}

	for _, wanted := range allWanted() {
		steps := ComputeSteps(wanted)
		if steps[0] != models.StepConfirmation {
			t.Fatalf("%+v: first step %s", wanted, steps[0])
		}
		if steps[len(steps)-1] != models.StepPayment {
			t.Fatalf("%+v: last step %s", wanted, steps[len(steps)-1])
		}

		middle := steps[1 : len(steps)-1]
		count := 0
		for _, c := range models.Categories {
			if wanted.Wants(c) {
				count++
			}
		}
		if len(middle) != count {
			t.Fatalf("%+v: expected %d middle steps, got %v", wanted, count, middle)
		}
		for i := 1; i < len(middle); i++ {
			if order[middle[i-1]] >= order[middle[i]] {
				t.Fatalf("%+v: steps out of order %v", wanted, middle)
			}
		}

		if again := ComputeSteps(wanted); !reflect.DeepEqual(steps, again) {
			t.Fatalf("%+v: not deterministic: %v vs %v", wanted, steps, again)
		}
	}
}

func TestCanAdvanceConfirmation(t *testing.T) {
	for _, wanted := range allWanted() {
		sel := models.BookingSelection{CategoriesWanted: wanted}
		got := CanAdvance(models.StepConfirmation, sel)
		if got != wanted.Any() {
			t.Fatalf("%+v: CanAdvance(confirmation) = %v", wanted, got)
		}
	}
}

func TestCanAdvanceCategorySteps(t *testing.T) {
	sel := models.BookingSelection{CategoriesWanted: models.CategoriesWanted{Transportation: true, Hotels: true, Cabs: true}}

	for _, step := range []models.BookingStep{models.StepTransportation, models.StepHotels, models.StepCabs} {
		if CanAdvance(step, sel) {
			t.Fatalf("%s: advanced without a selection", step)
		}
	}
	if !CanAdvance(models.StepPayment, sel) {
		t.Fatal("payment must always allow advance")
	}

	sel.Selected.Flight = &models.FlightOffer{ID: "f1"}
	sel.Selected.Hotel = &models.SelectedHotel{Nights: 1}
	sel.Selected.Cab = &models.SelectedCab{Days: 1}
	for _, step := range []models.BookingStep{models.StepTransportation, models.StepHotels, models.StepCabs} {
		if !CanAdvance(step, sel) {
			t.Fatalf("%s: blocked despite a selection", step)
		}
	}

	unwanted := models.BookingSelection{}
	if !CanAdvance(models.StepHotels, unwanted) {
		t.Fatal("unwanted category must not block")
	}
}

func TestAdvanceAndRetreat(t *testing.T) {
	sel := models.BookingSelection{CategoriesWanted: models.CategoriesWanted{Hotels: true}}
	steps := ComputeSteps(sel.CategoriesWanted)

	cur := Advance(steps, models.StepConfirmation, sel)
	if cur != models.StepHotels {
		t.Fatalf("expected hotels, got %s", cur)
	}
	if blocked := Advance(steps, cur, sel); blocked != models.StepHotels {
		t.Fatalf("expected no-op when blocked, got %s", blocked)
	}

	sel.Selected.Hotel = &models.SelectedHotel{}
	cur = Advance(steps, cur, sel)
	if cur != models.StepPayment {
		t.Fatalf("expected payment, got %s", cur)
	}
	if last := Advance(steps, cur, sel); last != models.StepPayment {
		t.Fatalf("expected no-op at last step, got %s", last)
	}

	prev, exit := Retreat(steps, cur)
	if exit || prev != models.StepHotels {
		t.Fatalf("expected hotels without exit, got %s %v", prev, exit)
	}
	first, exit := Retreat(steps, models.StepConfirmation)
	if !exit || first != models.StepConfirmation {
		t.Fatalf("expected exit signal at first step, got %s %v", first, exit)
	}
}

func TestCurrentIndexAndReconcile(t *testing.T) {
	steps := ComputeSteps(models.CategoriesWanted{Cabs: true})
	if CurrentIndex(steps, models.StepHotels) != -1 {
		t.Fatal("expected -1 for missing step")
	}
	if CurrentIndex(steps, models.StepCabs) != 1 {
		t.Fatal("expected cabs at index 1")
	}
	if Reconcile(steps, models.StepHotels) != models.StepConfirmation {
		t.Fatal("expected restart from confirmation")
	}
	if Reconcile(steps, models.StepCabs) != models.StepCabs {
		t.Fatal("expected current step kept")
	}
}
