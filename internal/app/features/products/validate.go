// internal/app/features/products/validate.go
package products

import (
	"fmt"
	"strings"
	"unicode/utf8"

	productstore "github.com/dalemusser/pmhub/internal/app/store/products"
	"github.com/dalemusser/pmhub/internal/app/system/apierr"
	"github.com/dalemusser/pmhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/pmhub/internal/app/system/inputval"
	"github.com/dalemusser/pmhub/internal/app/system/normalize"
	"github.com/dalemusser/pmhub/internal/domain/models"
)

const (
	maxNameLen        = 200
	maxCategoryLen    = 100
	maxDescriptionLen = 5000
)

func plain(field, raw string, max int) (string, error) {
	v := normalize.Name(htmlsanitize.PlainText(raw))
	if utf8.RuneCountInString(v) > max {
		return "", apierr.Validation(fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	return v, nil
}

func checkImageURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if !inputval.IsValidHTTPURL(raw) {
		return "", apierr.Validation("Image URL must be an http or https URL")
	}
	return raw, nil
}

// buildPatch validates in. With requireAll set, the fields a new product
// needs must all be present.
func buildPatch(in productInput, requireAll bool) (productstore.Patch, error) {
	var p productstore.Patch

	if requireAll && (in.Name == nil || in.Price == nil || in.Description == nil || in.Category == nil) {
		return p, apierr.Validation("Name, price, description, and category are required")
	}

	if in.Name != nil {
		name, err := plain("Name", *in.Name, maxNameLen)
		if err != nil {
			return p, err
		}
		if name == "" {
			return p, apierr.Validation("Name cannot be empty")
		}
		p.Name = &name
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return p, apierr.Validation("Price cannot be negative")
		}
		p.Price = in.Price
	}
	if in.Description != nil {
		desc := htmlsanitize.Sanitize(*in.Description)
		if desc == "" {
			return p, apierr.Validation("Description cannot be empty")
		}
		if utf8.RuneCountInString(desc) > maxDescriptionLen {
			return p, apierr.Validation(fmt.Sprintf("Description must be at most %d characters", maxDescriptionLen))
		}
		p.Description = &desc
	}
	if in.Category != nil {
		cat, err := plain("Category", *in.Category, maxCategoryLen)
		if err != nil {
			return p, err
		}
		if cat == "" {
			return p, apierr.Validation("Category cannot be empty")
		}
		p.Category = &cat
	}
	if in.ImageURL != nil {
		u, err := checkImageURL(*in.ImageURL)
		if err != nil {
			return p, err
		}
		p.ImageURL = &u
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return p, apierr.Validation("Stock quantity cannot be negative")
		}
		p.StockQuantity = in.StockQuantity
		// Stock availability follows the quantity unless set explicitly.
		if in.InStock == nil {
			avail := *in.StockQuantity > 0
			p.InStock = &avail
		}
	}
	if in.InStock != nil {
		p.InStock = in.InStock
	}
	return p, nil
}

// newProduct builds a product from a validated create patch.
func newProduct(p productstore.Patch) models.Product {
	out := models.Product{
		Name:        *p.Name,
		Price:       *p.Price,
		Description: *p.Description,
		Category:    *p.Category,
	}
	if p.ImageURL != nil {
		out.ImageURL = *p.ImageURL
	}
	if p.StockQuantity != nil {
		out.StockQuantity = *p.StockQuantity
	}
	if p.InStock != nil {
		out.InStock = *p.InStock
	}
	return out
}
