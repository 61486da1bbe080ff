package backend

import "strings"

// MenuItem is a canteen dish with the nutrients the engine scores.
type MenuItem struct {
	Name     string
	Calories int
	Sugar    int
	Protein  int
	Sodium   int
	Carbs    int
}

var defaultMenu = []MenuItem{
	{Name: "Margherita Pizza", Calories: 650, Sugar: 8, Protein: 15, Sodium: 1200, Carbs: 80},
	{Name: "Fresh Green Salad", Calories: 150, Sugar: 2, Protein: 5, Sodium: 150, Carbs: 10},
	{Name: "Gourmet Burger", Calories: 850, Sugar: 12, Protein: 35, Sodium: 1500, Carbs: 60},
	{Name: "Ramen Noodles", Calories: 550, Sugar: 4, Protein: 20, Sodium: 1800, Carbs: 70},
	{Name: "Falafel Wrap", Calories: 420, Sugar: 3, Protein: 12, Sodium: 800, Carbs: 50},
	{Name: "Sushi Platter", Calories: 350, Sugar: 5, Protein: 18, Sodium: 900, Carbs: 45},
	{Name: "Chocolate Cake", Calories: 520, Sugar: 45, Protein: 6, Sodium: 300, Carbs: 65},
	{Name: "Grilled Salmon", Calories: 400, Sugar: 0, Protein: 42, Sodium: 400, Carbs: 0},
	{Name: "Quinoa Bowl", Calories: 320, Sugar: 2, Protein: 14, Sodium: 200, Carbs: 45},
	{Name: "French Fries", Calories: 450, Sugar: 1, Protein: 4, Sodium: 800, Carbs: 60},
	{Name: "Pepperoni Pizza", Calories: 800, Sugar: 10, Protein: 30, Sodium: 1600, Carbs: 90},
	{Name: "Pasta Carbonara", Calories: 700, Sugar: 5, Protein: 25, Sodium: 1100, Carbs: 75},
	{Name: "Fried Chicken", Calories: 900, Sugar: 2, Protein: 40, Sodium: 1400, Carbs: 40},
	{Name: "Double Cheese Burger", Calories: 1100, Sugar: 15, Protein: 50, Sodium: 1800, Carbs: 70},
	{Name: "Donut Assortment", Calories: 580, Sugar: 48, Protein: 6, Sodium: 420, Carbs: 75},
	{Name: "Sweet Iced Tea", Calories: 180, Sugar: 42, Protein: 0, Sodium: 30, Carbs: 45},
}

func findItem(menu []MenuItem, name string) (MenuItem, bool) {
	for _, it := range menu {
		if strings.EqualFold(it.Name, strings.TrimSpace(name)) {
			return it, true
		}
	}
	return MenuItem{}, false
}

// score rates an item from 0 to 100. The development backend keeps no
// clinical profile, so penalties come from general nutrient thresholds.
func score(it MenuItem) (int, []string) {
	s := 95
	var penalties []string

	switch {
	case it.Sugar > 20:
		s -= 50
		penalties = append(penalties, "High Sugar Content")
	case it.Sugar > 10:
		s -= 20
		penalties = append(penalties, "Moderate Sugar")
	}
	switch {
	case it.Sodium > 1500:
		s -= 50
		penalties = append(penalties, "Critical Sodium Levels")
	case it.Sodium > 800:
		s -= 20
		penalties = append(penalties, "High Sodium Levels")
	}
	switch {
	case it.Calories > 800:
		s -= 40
		penalties = append(penalties, "High Calorie Density")
	case it.Calories > 500:
		s -= 20
		penalties = append(penalties, "Moderately High Calories")
	}

	if it.Protein > 20 {
		s += 5
	}
	if it.Sugar < 5 {
		s += 5
	}
	return max(0, min(100, s)), penalties
}
