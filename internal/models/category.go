package models

// Category classifies a problem into one of a fixed set of help areas.
type Category string

const (
	CategoryEducation Category = "education"
	CategoryLegal     Category = "legal"
	CategoryHousing   Category = "housing"
	CategoryHealth    Category = "health"
	CategoryDisaster  Category = "disaster"
	CategoryBusiness  Category = "business"
	CategoryCommunity Category = "community"
	CategorySafety    Category = "safety"
	CategoryEssential Category = "essential"
	CategoryOther     Category = "other"
)

var categoryLabels = map[Category]string{
	CategoryEducation: "Education & Teaching",
	CategoryLegal:     "Legal Assistance",
	CategoryHousing:   "Housing & Shelter",
	CategoryHealth:    "Healthcare & Medical",
	CategoryDisaster:  "Disaster Relief",
	CategoryBusiness:  "Business & Employment",
	CategoryCommunity: "Community Development",
	CategorySafety:    "Safety & Protection",
	CategoryEssential: "Essential Supplies",
	CategoryOther:     "Other",
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display name of the category, or the raw value if unknown.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Categories returns all known categories in display order.
func Categories() []Category {
	return []Category{
		CategoryEducation,
		CategoryLegal,
		CategoryHousing,
		CategoryHealth,
		CategoryDisaster,
		CategoryBusiness,
		CategoryCommunity,
		CategorySafety,
		CategoryEssential,
		CategoryOther,
	}
}
