package booking

import "github.com/Agmahima/TravelEase/internal/models"

// Fence tracks offer fetches for one category. Each fetch is stamped with a
// new generation; only the response carrying the latest generation is kept.
type Fence struct {
	Generation uint64 `json:"generation"`
	InFlight   bool   `json:"inFlight"`
	Loaded     bool   `json:"loaded"`
	Err        string `json:"error,omitempty"`
}

type Fences struct {
	Transportation Fence `json:"transportation"`
	Hotels         Fence `json:"hotels"`
	Cabs           Fence `json:"cabs"`
}

func (f Fences) Get(c models.Category) Fence {
	switch c {
	case models.CategoryTransportation:
		return f.Transportation
	case models.CategoryHotels:
		return f.Hotels
	case models.CategoryCabs:
		return f.Cabs
	}
	return Fence{}
}

func (f Fences) with(c models.Category, fence Fence) Fences {
	switch c {
	case models.CategoryTransportation:
		f.Transportation = fence
	case models.CategoryHotels:
		f.Hotels = fence
	case models.CategoryCabs:
		f.Cabs = fence
	}
	return f
}

// NeedsFetch reports whether a fetch should start. Loaded data is reused
// unless force is set. A fetch still in flight does not block a new one; the
// new generation supersedes it.
func (w Wizard) NeedsFetch(c models.Category, force bool) bool {
	return force || !w.Fences.Get(c).Loaded
}

// BeginFetch stamps a new generation for c and returns it with the updated
// wizard. Any response for an older generation is now stale.
func (w Wizard) BeginFetch(c models.Category) (Wizard, uint64) {
	f := w.Fences.Get(c)
	f.Generation++
	f.InFlight = true
	f.Err = ""
	w.Fences = w.Fences.with(c, f)
	return w, f.Generation
}

// CompleteFetch records the outcome of the fetch stamped gen. accepted is false
// when a newer fetch has started since, in which case the wizard is returned
// unchanged and the caller must discard the response.
func (w Wizard) CompleteFetch(c models.Category, gen uint64, fetchErr error) (Wizard, bool) {
	f := w.Fences.Get(c)
	if gen != f.Generation {
		return w, false
	}
	f.InFlight = false
	if fetchErr != nil {
		f.Loaded = false
		f.Err = fetchErr.Error()
	} else {
		f.Loaded = true
		f.Err = ""
	}
	w.Fences = w.Fences.with(c, f)
	return w, true
}

// Invalidate forgets loaded offers for c so the next visit searches again.
// The generation moves on, so a fetch already in flight completes as stale.
func (w Wizard) Invalidate(c models.Category) Wizard {
	f := w.Fences.Get(c)
	f.Generation++
	f.InFlight = false
	f.Loaded = false
	f.Err = ""
	w.Fences = w.Fences.with(c, f)
	return w
}
