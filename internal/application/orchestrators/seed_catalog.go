package orchestrators

import (
	"context"
	"log/slog"

	catalogDomain "habitloop/internal/domain/catalog"
)

// CatalogStoreForSeed defines the store interface needed by SeedCatalog.
type CatalogStoreForSeed interface {
	Save(ctx context.Context, c catalogDomain.Catalog) error
	Exists() bool
}

// SeedCatalogDeps holds dependencies for SeedCatalog.
type SeedCatalogDeps struct {
	CatalogStore CatalogStoreForSeed
}

// ExecuteSeedCatalog writes the default two-week program if no catalog file
// exists yet. An existing file, even an empty or broken one, is left alone.
// POST: A catalog file exists
func ExecuteSeedCatalog(ctx context.Context, deps SeedCatalogDeps) error {
	if deps.CatalogStore.Exists() {
		return nil
	}
	if err := deps.CatalogStore.Save(ctx, defaultCatalog()); err != nil {
		return err
	}
	slog.Info("catalog_event", "event", "catalog_seeded", "weeks", 2)
	return nil
}

// defaultCatalog is the starter program shipped with a fresh install.
func defaultCatalog() catalogDomain.Catalog {
	return catalogDomain.Catalog{Weeks: map[string][][]string{
		"1": {
			{"Drink warm water on waking", "5 min morning light", "Optional: note fasting glucose"},
			{"5-min walk after lunch", "Swap sweet chai for unsweetened tea", "Plate 50/25/25 at main meal"},
			{"Add cinnamon to a snack", "Yogurt + cucumber or peanuts", "Extra 500 ml water today"},
			{"Reduce rice by 25% (smaller cup)", "Start meal with salad/veggies", "5-min walk after dinner"},
			{"Dal with extra veggies", "Use ghee instead of refined oil", "Sleep 30 min earlier"},
			{"Try a millet (ragi/bajra) once", "Add protein: paneer or eggs", "Hydration check: pale urine"},
			{"Review the week", "Prepare next week's shopping list", "Gentle 10-min walk"},
		},
		"2": {
			{"5-min walk after 2 meals", "Track steps (manual)", "Stretch calves 2×"},
			{"Chair sit-to-stand 2×10", "Slow chewing (10+ chews/bite)", "Add raw veg before carbs"},
			{"Swap fruit juice for whole fruit", "Salt lassi unsweetened", "Sleep routine: fixed hour"},
			{"Veg stir-fry in ghee", "Half-plate veggies at lunch", "Breathing 3×1 min"},
			{"Egg bhurji or paneer bhurji", "Spices: fenugreek + turmeric", "Post-dinner stroll"},
			{"Try brown rice or millet", "Protein at breakfast", "Hydration timer 3×"},
			{"Reflect: best habit", "Plan 2 easy dinners", "10-min walk with family"},
		},
	}}
}
