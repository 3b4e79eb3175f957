package services

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

var nonSlugChars = regexp.MustCompile(`[^\w-]+`)

// Slugify lowercases a name, turns spaces into hyphens and strips special
// characters. Used verbatim for stores and categories, whose names are
// unique already.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	return nonSlugChars.ReplaceAllString(slug, "")
}

// ProductSlug derives a product slug with a bounded random suffix. The
// suffix only reduces collision probability; the unique index on the slug
// field is the actual backstop.
func ProductSlug(name string) string {
	return fmt.Sprintf("%s-%d", Slugify(name), rand.Intn(1000))
}

// GenerateSKU builds a stock keeping unit from the creation timestamp and
// a bounded random suffix. Same collision caveat as ProductSlug.
func GenerateSKU() string {
	return fmt.Sprintf("SKU-%d-%04d", time.Now().UnixMilli(), rand.Intn(10000))
}

// GenerateOrderNumber derives a customer-facing order number from the
// checkout timestamp, e.g. ORD-1738245678901. Concurrent checkouts within
// the same millisecond can collide; orders are additionally keyed by id.
func GenerateOrderNumber() string {
	return fmt.Sprintf("ORD-%d", time.Now().UnixMilli())
}
