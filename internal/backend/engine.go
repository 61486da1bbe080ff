// Package backend holds the chatbot reply engine of the development API.
package backend

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/ports"
)

type intent string

const (
	intentGreeting       intent = "greeting"
	intentFoodSafety     intent = "food_safety"
	intentRecommendation intent = "recommendation"
	intentNutrition      intent = "nutrition_query"
	intentDiseaseAdvice  intent = "disease_advice"
	intentOrderStatus    intent = "order_status"
	intentAnalytics      intent = "analytics"
	intentGeneral        intent = "general_chat"
)

type intentRule struct {
	intent   intent
	patterns []*regexp.Regexp
}

// Rules are matched in order; the first hit wins.
var intentRules = []intentRule{
	{intentGreeting, compile(`\bhi\b`, `\bhello\b`, `\bhey\b`, `\bstart\b`, `\bwake up\b`)},
	{intentFoodSafety, compile(`is (.+?) safe`, `can i eat (.+)`, `is (.+?) good for me`, `should i eat (.+)`)},
	{intentRecommendation, compile(`what should i eat`, `suggest`, `recommend`, `i'?m hungry`, `lunch options`, `dinner options`)},
	{intentNutrition, compile(`how much sugar`, `calories in`, `nutrition info`, `is (.+?) healthy`)},
	{intentDiseaseAdvice, compile(`diabetes`, `blood pressure`, `sugar level`, `hypertension`)},
	{intentOrderStatus, compile(`where is my order`, `order status`, `track order`)},
	{intentAnalytics, compile(`sugar intake`, `my stats`, `health report`, `analysis`, `analytics`)},
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

var (
	greetings = []string{
		"Hello! I'm your Health Assistant. How can I help you today?",
		"Hi there! I'm here to help you make healthy food choices at the canteen.",
		"Greetings. I have your health profile loaded. What would you like to check?",
	}
	fallbacks = []string{
		"I'm not sure about that. Try asking 'Is this food safe for me?' or 'Recommend a healthy lunch'.",
		"I didn't quite catch that. You can ask me about food nutrition or your health stats.",
		"Could you rephrase that? I'm tuned to help with nutrition and health-risk queries.",
	}
	junkWords = []string{"burger", "pizza", "fries", "soda", "cake", "sweets", "donut"}
)

// Engine answers chatbot queries with canned, rule-based replies.
type Engine struct {
	menu  []MenuItem
	pick  func(n int) int
	clock func() time.Time
}

var _ ports.ReplyEngine = (*Engine)(nil)

func NewEngine() *Engine {
	return &Engine{menu: defaultMenu, pick: rand.Intn, clock: time.Now}
}

// Reply never fails; unknown messages get a fallback with suggestions.
func (e *Engine) Reply(_ context.Context, user *domain.User, message string) ports.ReplyDocument {
	msg := strings.ToLower(strings.TrimSpace(message))
	kind, groups := detectIntent(msg)

	doc := ports.ReplyDocument{
		Type:  "text",
		Text:  fallbacks[e.pick(len(fallbacks))],
		Chips: []string{"Suggest Lunch", "My Analytics", "Is Pizza Safe?"},
	}

	switch kind {
	case intentGreeting:
		doc.Text = greetings[e.pick(len(greetings))]
		doc.Chips = []string{"Suggest Lunch", "Health Stats", "Is Pasta Safe?"}
	case intentFoodSafety:
		food := "that food"
		if len(groups) > 0 && groups[0] != "" {
			food = groups[0]
		}
		doc = e.foodSafety(food)
	case intentRecommendation:
		doc = e.recommendation()
	case intentAnalytics:
		doc.Text = "Browsing your analytics... You've maintained an average Health Score of 88/100 this week. Your sugar intake is down by 8%!"
		doc.Chips = []string{"Full Report", "Suggestions"}
	case intentDiseaseAdvice:
		doc.Text = "You haven't listed any chronic conditions in your profile, which is great! I recommend a balanced diet high in fiber for long-term health."
		doc.Chips = []string{"Suggest Meal", "My Limits"}
	}

	if user != nil && !user.ProfileCompleted && kind == intentGreeting {
		doc.Chips = append(doc.Chips, "Complete Profile")
	}
	return enrich(msg, doc)
}

func detectIntent(msg string) (intent, []string) {
	for _, rule := range intentRules {
		for _, re := range rule.patterns {
			if m := re.FindStringSubmatch(msg); m != nil {
				return rule.intent, m[1:]
			}
		}
	}
	return intentGeneral, nil
}

func (e *Engine) foodSafety(food string) ports.ReplyDocument {
	food = strings.TrimRight(strings.TrimSpace(food), "?!. ")
	item, ok := findItem(e.menu, food)
	if !ok {
		return genericSafety(food)
	}

	s, penalties := score(item)
	var label, color, icon, reason string
	switch {
	case s >= 80:
		label, color, icon = "SAFE", "green", "shield"
		reason = "Excellent choice! This aligns perfectly with your health profile and nutritional targets."
	case s >= 50:
		label, color, icon = "CAUTION", "orange", "alert-triangle"
		reason = fmt.Sprintf("Caution recommended. %s. Consider a half-portion or a lower alternative.", strings.Join(penalties, ". "))
	default:
		label, color, icon = "DANGER", "red", "alert-triangle"
		reason = fmt.Sprintf("High Risk Alert: %s. This item significantly conflicts with your clinical profile.", strings.Join(penalties, ". "))
	}

	chips := []string{"Add to Tray", "Nutrition Facts"}
	if label == "DANGER" {
		chips = []string{"Find Safer Option", "Why is this risky?"}
	}

	return ports.ReplyDocument{
		Type: "explanation",
		Text: fmt.Sprintf("Analysis for '%s': Classified as **%s** (%d/100). %s", item.Name, label, s, reason),
		ExplanationCard: &ports.CardDocument{
			Title: item.Name + " Analysis",
			Chips: []ports.ChipDocument{
				{Label: "Health Score", Value: fmt.Sprintf("%d/100", s), Type: "impact", Color: color, Icon: icon},
				{Label: "Risk Assessment", Value: label, Type: "nutrient", Color: "blue", Icon: "activity"},
			},
			RuleID: fmt.Sprintf("HYBRID-AI-%04d", 1000+e.pick(9000)),
		},
		Chips: chips,
	}
}

func genericSafety(food string) ports.ReplyDocument {
	label := "SAFE"
	reason := "I don't have the exact nutrition data, but it seems moderately safe."
	for _, w := range junkWords {
		if strings.Contains(food, w) {
			label = "DANGER"
			reason = "Generally high in junk fats/sugars."
			break
		}
	}
	return ports.ReplyDocument{
		Type:            "explanation",
		Text:            fmt.Sprintf("Generic Analysis for '%s': Classified as **%s**. %s", food, label, reason),
		ExplanationCard: &ports.CardDocument{Title: titleCase(food), Chips: []ports.ChipDocument{}},
		Chips:           []string{"Try common menu items"},
	}
}

func (e *Engine) recommendation() ports.ReplyDocument {
	meal := "Healthy Snack"
	switch h := e.clock().Hour(); {
	case h >= 11 && h <= 15:
		meal = "Lunch"
	case h >= 17 && h <= 22:
		meal = "Dinner"
	}
	return ports.ReplyDocument{
		Type: "explanation",
		Text: fmt.Sprintf("I've analyzed the menu for your **%s**. Based on your profile, here is my top pick:", meal),
		ExplanationCard: &ports.CardDocument{
			Title: "Mediterranean Quinoa Bowl",
			Chips: []ports.ChipDocument{
				{Label: "Match Score", Value: "98%", Type: "impact", Color: "green", Icon: "check-circle"},
				{Label: "Benefit", Value: "Optimal protein-to-carb ratio for sustained energy.", Type: "nutrient", Color: "blue", Icon: "sparkles"},
			},
			RuleID: "REC-AI-001",
		},
		Chips: []string{"Order Now", "Why this?", "Other options"},
	}
}

// enrich replaces text and card for the showcase dishes.
func enrich(msg string, doc ports.ReplyDocument) ports.ReplyDocument {
	switch {
	case strings.Contains(msg, "pasta") || strings.Contains(msg, "quinoa"):
		doc.Type = "explanation"
		doc.Text = "I recommended the **Quinoa Bowl** because its low glycemic index (GI: 53) aligns with your health management profile."
		doc.ExplanationCard = &ports.CardDocument{
			Title: "Why this recommendation?",
			Chips: []ports.ChipDocument{
				{Label: "Glycemic Control", Value: "Low GI (53) prevents spikes", Type: "impact", Color: "green", Icon: "trending-down"},
				{Label: "Sodium Alert", Value: "Low sodium (200mg)", Type: "warning", Color: "orange", Icon: "alert-triangle"},
			},
			RuleID: "NUTRI-882 • Conf: 98%",
		}
	case strings.Contains(msg, "chicken") || strings.Contains(msg, "salad"):
		doc.Type = "explanation"
		doc.Text = "The **Grilled Salmon** or **Fresh Green Salad** are excellent choices! They have high fiber and protein content which is excellent for your sugar management."
		doc.ExplanationCard = &ports.CardDocument{
			Title: "Macro Comparison",
			Chips: []ports.ChipDocument{
				{Label: "Impact", Value: "Stable Glucose", Type: "impact", Color: "green", Icon: "activity"},
				{Label: "Fiber", Value: "7.2g / serving", Type: "nutrient", Color: "blue", Icon: "bar-chart-3"},
			},
			RuleID: "NUTRI-901 • Conf: 95%",
		}
	}
	return doc
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
