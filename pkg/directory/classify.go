// Package directory turns the flat company list into the grouped, counted
// view the listing pages render: city, then industry, then (for food
// businesses) a fixed category taxonomy.
package directory

import (
	"strings"

	"huangye/pkg/model"
)

// Grouping defaults for records missing a city or industry.
const (
	DefaultCity     = "未分类城市"
	DefaultIndustry = "其他"
)

// FoodIndustry is the industry that gets category sub-partitioning.
const FoodIndustry = "餐饮与服务"

// FoodCategories is the fixed category taxonomy, in display order.
var FoodCategories = []string{"中餐", "火锅", "面馆", "烧烤", "饮品", "超市"}

// categoryRule matches keywords against name+summary. Rules are evaluated
// in order; the order is load-bearing (a noodle-and-bbq place is a noodle
// shop because the noodle rule comes first).
type categoryRule struct {
	category string
	keywords []string
}

var categoryRules = []categoryRule{
	{"火锅", []string{"火锅", "串串", "麻辣烫", "冒菜"}},
	{"面馆", []string{"面", "米线", "米粉", "粉"}},
	{"烧烤", []string{"烧烤", "烤肉", "烤串", "烤鱼"}},
	{"饮品", []string{"奶茶", "饮品", "咖啡", "茶饮", "果汁"}},
	{"超市", []string{"超市", "商店", "便利", "食品店", "杂货"}},
}

// Classify returns the food category for a company: the explicit category
// field when it names a known bucket, otherwise the first keyword rule that
// matches name+summary, otherwise the generic 中餐 bucket.
func Classify(c *model.Company) string {
	if c.Category != "" {
		for _, known := range FoodCategories {
			if c.Category == known {
				return known
			}
		}
	}

	haystack := c.Name + c.Summary
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.category
			}
		}
	}

	return "中餐"
}
