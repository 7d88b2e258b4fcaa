// Package legacy talks to the group's historical dealer-management system.
// Its API returns inconsistently shaped JSON: one or two levels of "data"
// nesting, French and English field names mixed per endpoint, and numbers
// that arrive as strings. Everything entering the rest of the application
// passes through the normalizer in this file first.
package legacy

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"dealerdesk/internal/domain/pricing"
)

// Candidate source keys per canonical field, tried in priority order. The
// first key present and non-null wins.
var (
	keysID          = []string{"id", "identifiant"}
	keysName        = []string{"name", "nom", "libelle", "label"}
	keysActive      = []string{"active", "actif", "isActive", "enabled"}
	keysImage       = []string{"imageUrl", "image", "urlImage"}
	keysBrandRef    = []string{"brandId", "idMarque", "marqueId"}
	keysModelRef    = []string{"modelId", "idModele", "modeleId"}
	keysBranchRef   = []string{"idFiliale", "branchId", "filialeId"}
	keysPrice       = []string{"averageSalePrice", "prixDeVente", "prixMoyenVente", "price", "prix"}
	keysRateDirect  = []string{"marginRateDirect", "tmDirect", "tauxMargeDirect"}
	keysRateInterGr = []string{"marginRateInterGroup", "tmInterGroupe", "tauxMargeIntergroupe"}
)

// pick returns the first present, non-nil value among the candidate keys.
func pick(obj map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// toNumber coerces v to a finite float64, falling back to def for missing,
// empty, non-numeric or non-finite values.
func toNumber(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return def
		}
		return n
	case float32:
		return toNumber(float64(n), def)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return def
		}
		return toNumber(f, def)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return def
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil {
			return def
		}
		return toNumber(f, def)
	default:
		return def
	}
}

// toNullableNumber is toNumber for optional fields: absence stays nil
// instead of collapsing to zero.
func toNullableNumber(v any) *float64 {
	if v == nil {
		return nil
	}
	sentinel := math.Inf(-1)
	f := toNumber(v, sentinel)
	if f == sentinel {
		return nil
	}
	return &f
}

// toText renders ids that arrive as numbers or strings into a stable string
// form. Numeric ids keep their integer spelling (12, not 12.000000).
func toText(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case json.Number:
		return s.String()
	default:
		return ""
	}
}

func toBool(v any, def bool) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "oui", "yes":
			return true
		case "false", "0", "non", "no":
			return false
		}
	}
	return def
}

func toDecimal(v any) decimal.Decimal {
	return decimal.NewFromFloat(toNumber(v, 0))
}

// asObject returns raw as a JSON object, or nil for any other shape.
func asObject(raw any) map[string]any {
	obj, _ := raw.(map[string]any)
	return obj
}

func fieldText(obj map[string]any, keys []string) string {
	v, ok := pick(obj, keys)
	if !ok {
		return ""
	}
	return toText(v)
}

func fieldDecimal(obj map[string]any, keys []string) decimal.Decimal {
	v, ok := pick(obj, keys)
	if !ok {
		return decimal.Decimal{}
	}
	return toDecimal(v)
}

func fieldBool(obj map[string]any, keys []string, def bool) bool {
	v, ok := pick(obj, keys)
	if !ok {
		return def
	}
	return toBool(v, def)
}

// NormalizeBrand builds a brand-level catalog node from a raw payload object.
// Non-object input yields a zero-valued node; normalization never fails.
func NormalizeBrand(raw any) pricing.Node {
	return normalizeNode(raw, pricing.TargetBrand, nil)
}

// NormalizeModel builds a model-level node. The parent brand id is taken from
// the payload when present, else from the request context.
func NormalizeModel(raw any, brandID string) pricing.Node {
	return normalizeNode(raw, pricing.TargetModel, func(obj map[string]any, n *pricing.Node) {
		n.ParentID = fieldText(obj, keysBrandRef)
		if n.ParentID == "" {
			n.ParentID = brandID
		}
		n.BrandID = n.ParentID
	})
}

// NormalizeVersion builds a version-level node. The brand id on a version is
// advisory only; the authoritative chain runs through the parent model.
func NormalizeVersion(raw any, modelID string) pricing.Node {
	return normalizeNode(raw, pricing.TargetVersion, func(obj map[string]any, n *pricing.Node) {
		n.ParentID = fieldText(obj, keysModelRef)
		if n.ParentID == "" {
			n.ParentID = modelID
		}
		n.BrandID = fieldText(obj, keysBrandRef)
	})
}

func normalizeNode(raw any, level pricing.Target, extra func(map[string]any, *pricing.Node)) pricing.Node {
	node := pricing.Node{Level: level}
	obj := asObject(raw)
	if obj == nil {
		return node
	}

	node.ID = fieldText(obj, keysID)
	node.Name = fieldText(obj, keysName)
	node.Active = fieldBool(obj, keysActive, true)
	node.Price = fieldDecimal(obj, keysPrice)
	node.MarginRateDirect = fieldDecimal(obj, keysRateDirect)
	node.MarginRateInterGroup = fieldDecimal(obj, keysRateInterGr)

	if extra != nil {
		extra(obj, &node)
	}
	return node
}

// NormalizeSaleType builds a sale type from a raw payload object.
func NormalizeSaleType(raw any) pricing.SaleType {
	obj := asObject(raw)
	if obj == nil {
		return pricing.SaleType{}
	}
	return pricing.SaleType{
		ID:   fieldText(obj, keysID),
		Name: fieldText(obj, keysName),
	}
}

// BranchID extracts the optional branch reference, which the backend sends
// absent, as a string or as a number depending on the endpoint.
func BranchID(raw any) *float64 {
	obj := asObject(raw)
	if obj == nil {
		return nil
	}
	v, ok := pick(obj, keysBranchRef)
	if !ok {
		return nil
	}
	return toNullableNumber(v)
}

// ImageURL extracts the optional image reference.
func ImageURL(raw any) string {
	obj := asObject(raw)
	if obj == nil {
		return ""
	}
	return fieldText(obj, keysImage)
}

// Pagination is the canonical page descriptor rebuilt from whatever count
// fields the backend supplied.
type Pagination struct {
	Page         int `json:"page"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
	TotalPages   int `json:"totalPages"`
}

var keysTotalRecords = []string{"totalRecords", "totalCount", "total", "nbTotal"}
var keysTotalPages = []string{"totalPages", "pageCount", "nbPages"}
var keysPage = []string{"page", "currentPage", "pageNumber"}
var keysPageSize = []string{"pageSize", "limit", "perPage"}

// NormalizePage unwraps up to two levels of "data" nesting, locates the item
// array, and rebuilds the pagination descriptor. A bare array is accepted as
// a single full page. Never fails: unrecognizable payloads yield an empty
// page with the fallback descriptor.
func NormalizePage(payload any, fallbackPage, fallbackPageSize int) ([]any, Pagination) {
	page := Pagination{Page: fallbackPage, PageSize: fallbackPageSize}
	if page.Page <= 0 {
		page.Page = 1
	}
	if page.PageSize <= 0 {
		page.PageSize = 1
	}

	items, meta := locateItems(payload)

	if meta != nil {
		if v, ok := pick(meta, keysPage); ok {
			if n := int(toNumber(v, 0)); n > 0 {
				page.Page = n
			}
		}
		if v, ok := pick(meta, keysPageSize); ok {
			if n := int(toNumber(v, 0)); n > 0 {
				page.PageSize = n
			}
		}
		if v, ok := pick(meta, keysTotalRecords); ok {
			page.TotalRecords = int(toNumber(v, 0))
		} else {
			page.TotalRecords = len(items)
		}
		if v, ok := pick(meta, keysTotalPages); ok && int(toNumber(v, 0)) > 0 {
			page.TotalPages = int(toNumber(v, 0))
		} else {
			page.TotalPages = ceilPages(page.TotalRecords, page.PageSize)
		}
		return items, page
	}

	page.TotalRecords = len(items)
	page.TotalPages = ceilPages(page.TotalRecords, page.PageSize)
	if page.TotalPages == 0 {
		page.TotalPages = 1
	}
	if len(items) > 0 && len(items) <= page.PageSize {
		// A bare array is the whole result set.
		page.TotalPages = 1
	}
	return items, page
}

// locateItems digs the item array out of the payload and returns the object
// carrying the pagination counters, when one exists.
func locateItems(payload any) ([]any, map[string]any) {
	if arr, ok := payload.([]any); ok {
		return arr, nil
	}

	obj := asObject(payload)
	if obj == nil {
		return nil, nil
	}

	inner := obj["data"]
	if arr, ok := inner.([]any); ok {
		return arr, paginationMeta(obj)
	}

	if innerObj := asObject(inner); innerObj != nil {
		if arr, ok := innerObj["data"].([]any); ok {
			meta := paginationMeta(innerObj)
			if meta == nil {
				meta = paginationMeta(obj)
			}
			return arr, meta
		}
	}
	return nil, nil
}

// paginationMeta finds the counter-bearing object: a dedicated "pagination"
// block when present, else the wrapper itself when it carries counters.
func paginationMeta(obj map[string]any) map[string]any {
	if p := asObject(obj["pagination"]); p != nil {
		return p
	}
	if _, ok := pick(obj, keysTotalRecords); ok {
		return obj
	}
	if _, ok := pick(obj, keysPage); ok {
		return obj
	}
	return nil
}

func ceilPages(totalRecords, pageSize int) int {
	if totalRecords <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalRecords + pageSize - 1) / pageSize
}
