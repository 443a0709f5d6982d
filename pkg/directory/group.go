package directory

import (
	"huangye/pkg/model"
)

// Directory is the fully grouped company list.
type Directory struct {
	Cities []CityGroup
	Total  int
}

// CityGroup is one city's section.
type CityGroup struct {
	Name       string
	Count      int
	Industries []IndustryGroup
}

// IndustryGroup is one industry within a city. For the food industry the
// companies live in Categories; for every other industry in Companies.
type IndustryGroup struct {
	Name       string
	Count      int
	Companies  []model.Company
	Categories []CategoryGroup
}

// CategoryGroup is one food category bucket.
type CategoryGroup struct {
	Name      string
	Companies []model.Company
}

// Build groups companies by city, industry and food category. Pinned cities
// come first in the given priority order; all other cities and every group
// within a city keep first-seen order, so identical input yields identical
// output.
func Build(companies []model.Company, pinnedCities []string) *Directory {
	cityOrder := make([]string, 0)
	cityIndex := make(map[string]int)

	byCity := make(map[string][]model.Company)
	for _, c := range companies {
		city := c.City
		if city == "" {
			city = DefaultCity
		}
		if _, seen := cityIndex[city]; !seen {
			cityIndex[city] = len(cityOrder)
			cityOrder = append(cityOrder, city)
		}
		byCity[city] = append(byCity[city], c)
	}

	dir := &Directory{Total: len(companies)}

	for _, city := range orderCities(cityOrder, pinnedCities) {
		members := byCity[city]
		group := CityGroup{
			Name:       city,
			Count:      len(members),
			Industries: buildIndustries(members),
		}
		dir.Cities = append(dir.Cities, group)
	}

	return dir
}

// orderCities moves pinned cities to the front in pin order; everything
// else keeps its first-seen position.
func orderCities(firstSeen, pinned []string) []string {
	present := make(map[string]bool, len(firstSeen))
	for _, city := range firstSeen {
		present[city] = true
	}

	isPinned := make(map[string]bool, len(pinned))
	ordered := make([]string, 0, len(firstSeen))
	for _, city := range pinned {
		if present[city] {
			isPinned[city] = true
			ordered = append(ordered, city)
		}
	}
	for _, city := range firstSeen {
		if !isPinned[city] {
			ordered = append(ordered, city)
		}
	}
	return ordered
}

func buildIndustries(companies []model.Company) []IndustryGroup {
	order := make([]string, 0)
	index := make(map[string]int)
	byIndustry := make(map[string][]model.Company)

	for _, c := range companies {
		industry := c.Industry
		if industry == "" {
			industry = DefaultIndustry
		}
		if _, seen := index[industry]; !seen {
			index[industry] = len(order)
			order = append(order, industry)
		}
		byIndustry[industry] = append(byIndustry[industry], c)
	}

	groups := make([]IndustryGroup, 0, len(order))
	for _, industry := range order {
		members := byIndustry[industry]
		group := IndustryGroup{
			Name:  industry,
			Count: len(members),
		}
		if industry == FoodIndustry {
			group.Categories = buildCategories(members)
		} else {
			group.Companies = members
		}
		groups = append(groups, group)
	}
	return groups
}

// buildCategories partitions food companies into the fixed taxonomy.
// Category order is the taxonomy order; empty buckets are omitted.
func buildCategories(companies []model.Company) []CategoryGroup {
	byCategory := make(map[string][]model.Company)
	for _, c := range companies {
		cat := Classify(&c)
		byCategory[cat] = append(byCategory[cat], c)
	}

	groups := make([]CategoryGroup, 0, len(FoodCategories))
	for _, cat := range FoodCategories {
		if members, ok := byCategory[cat]; ok {
			groups = append(groups, CategoryGroup{Name: cat, Companies: members})
		}
	}
	return groups
}
