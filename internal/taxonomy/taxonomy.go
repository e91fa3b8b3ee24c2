// Package taxonomy holds the fixed category → interest mapping used to render
// selection menus and to validate classifier output. Loaded once per process,
// read-only afterwards.
package taxonomy

var categories = []string{
	"Искусство",
	"История",
	"Наука и техника",
	"Архитектура и быт",
	"Литература и музыка",
}

var interests = map[string][]string{
	"Искусство": {
		"Живопись",
		"Скульптура",
		"Графика",
		"Декоративно-прикладное искусство",
		"Современное искусство",
	},
	"История": {
		"Археология",
		"Военная история",
		"Краеведение",
		"Этнография",
		"Нумизматика",
	},
	"Наука и техника": {
		"Космонавтика",
		"Авиация",
		"Железнодорожный транспорт",
		"Естествознание",
		"Техника",
	},
	"Архитектура и быт": {
		"Архитектура",
		"Усадьбы",
		"Народный быт",
		"Религия",
	},
	"Литература и музыка": {
		"Литература",
		"Музыка",
		"Театр",
		"Кино",
	},
}

var known = func() map[string]struct{} {
	m := make(map[string]struct{})
	for _, labels := range interests {
		for _, label := range labels {
			m[label] = struct{}{}
		}
	}
	return m
}()

// Categories returns all categories in display order.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// Interests returns the interest labels of a category in menu order,
// or nil for an unknown category.
func Interests(category string) []string {
	labels, ok := interests[category]
	if !ok {
		return nil
	}
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// Vocabulary returns every interest label, in category order then menu order.
func Vocabulary() []string {
	var out []string
	for _, category := range categories {
		out = append(out, interests[category]...)
	}
	return out
}

// Known reports whether label is part of the controlled vocabulary.
func Known(label string) bool {
	_, ok := known[label]
	return ok
}
