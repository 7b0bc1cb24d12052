package catalog

import "strings"

// NormalizeFuelTypes splits a raw fuel-type label into cleaned components.
//
// Raw labels delimit multiple fuels with "_ " or " & " and occasionally
// join two fuels with a slash. Each component is title-cased word by word
// and a trailing "Pv" qualifier is dropped, so "solar pv_ battery" becomes
// ["Solar", "Battery"] and "Solar & Wind/Storage" becomes
// ["Solar", "Wind/Storage"].
func NormalizeFuelTypes(raw string) []string {
	rep := strings.ReplaceAll(raw, "_ ", "_")
	rep = strings.ReplaceAll(rep, " & ", "_")
	rep = strings.ReplaceAll(rep, "/", " / ")

	parts := strings.Split(rep, "_")
	out := make([]string, 0, len(parts))

	for _, part := range parts {
		words := strings.Fields(part)
		for i, w := range words {
			words[i] = capitalize(w)
		}

		cleaned := strings.Join(words, " ")
		cleaned = strings.ReplaceAll(cleaned, " / ", "/")
		cleaned = strings.ReplaceAll(cleaned, " Pv", "")

		out = append(out, cleaned)
	}

	return out
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}

// matchesFuelTypes reports whether a facility's fuel types satisfy the
// filter. Exclusive requires the exact set; otherwise any overlap counts.
func matchesFuelTypes(facility *Facility, want []string, exclusive bool) bool {
	if len(want) == 0 {
		return true
	}

	if exclusive {
		have := uniqueSet(facility.FuelTypes)
		wanted := uniqueSet(want)
		if len(have) != len(wanted) {
			return false
		}
		for ft := range wanted {
			if !have[ft] {
				return false
			}
		}
		return true
	}

	have := uniqueSet(facility.FuelTypes)
	for _, ft := range want {
		if have[ft] {
			return true
		}
	}
	return false
}

// FilterFuelTypes returns the records whose fuel types satisfy the filter.
// With exclusive set, only records carrying exactly the wanted set pass;
// otherwise any overlap passes.
func FilterFuelTypes(records []*Facility, want []string, exclusive bool) []*Facility {
	var out []*Facility
	for _, r := range records {
		if matchesFuelTypes(r, want, exclusive) {
			out = append(out, r)
		}
	}
	return out
}

func uniqueSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
