package query

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Clés réservées, jamais interprétées comme filtres.
var reservedKeys = map[string]bool{
	"page":    true,
	"limit":   true,
	"sort":    true,
	"fields":  true,
	"keyword": true,
}

// rangeKey capture la grammaire structurée champ[opérateur], ex: price[gte]=50.
// Triplets champ/opérateur/valeur explicites : pas de réécriture textuelle,
// un champ qui s'appellerait "gte" reste un champ.
var rangeKey = regexp.MustCompile(`^([A-Za-z_][\w.]*)\[(gte|gt|lte|lt)\]$`)

// Features construit filtre, tri, projection et pagination d'une requête
// de liste à partir des paramètres d'URL.
type Features struct {
	params       url.Values
	searchFields []string
}

func New(params url.Values) *Features {
	return &Features{params: params, searchFields: []string{"title"}}
}

// Search définit les champs couverts par ?keyword (par défaut "title",
// le produit cherche aussi dans la description).
func (f *Features) Search(fields ...string) *Features {
	if len(fields) > 0 {
		f.searchFields = fields
	}
	return f
}

// Filter fusionne le filtre de base (routes imbriquées), les égalités,
// les plages champ[gte|gt|lte|lt] et la recherche par mot-clé.
func (f *Features) Filter(base bson.M) bson.M {
	filter := bson.M{}
	for k, v := range base {
		filter[k] = v
	}

	for key, values := range f.params {
		if reservedKeys[key] || len(values) == 0 {
			continue
		}

		if m := rangeKey.FindStringSubmatch(key); m != nil {
			field, op := m[1], "$"+m[2]
			sub, ok := filter[field].(bson.M)
			if !ok {
				sub = bson.M{}
				filter[field] = sub
			}
			sub[op] = coerce(values[0])
			continue
		}

		filter[key] = coerce(values[0])
	}

	if keyword := f.params.Get("keyword"); keyword != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
		if len(f.searchFields) == 1 {
			filter[f.searchFields[0]] = pattern
		} else {
			or := make([]bson.M, 0, len(f.searchFields))
			for _, field := range f.searchFields {
				or = append(or, bson.M{field: pattern})
			}
			filter["$or"] = or
		}
	}

	return filter
}

// FindOptions applique skip/limit, tri et projection.
func (f *Features) FindOptions() *options.FindOptions {
	page, limit := f.pageAndLimit()

	opts := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetSort(f.sort())

	if projection := f.projection(); projection != nil {
		opts.SetProjection(projection)
	}

	return opts
}

// Pagination est le résumé renvoyé avec chaque liste.
type Pagination struct {
	CurrentPage   int64  `json:"currentPage"`
	PageSize      int64  `json:"pageSize"`
	NumberOfPages int64  `json:"numberOfPages"`
	NextPage      *int64 `json:"nextPage,omitempty"`
	PreviousPage  *int64 `json:"previousPage,omitempty"`
}

// Paginate calcule le résumé à partir du total de documents, compté
// APRÈS application du filtre (sinon le résumé ne colle pas aux résultats).
func (f *Features) Paginate(total int64) Pagination {
	page, limit := f.pageAndLimit()

	p := Pagination{
		CurrentPage:   page,
		PageSize:      limit,
		NumberOfPages: int64(math.Ceil(float64(total) / float64(limit))),
	}

	if page*limit < total {
		next := page + 1
		p.NextPage = &next
	}
	if (page-1)*limit > 0 {
		prev := page - 1
		p.PreviousPage = &prev
	}

	return p
}

func (f *Features) pageAndLimit() (int64, int64) {
	page := parsePositive(f.params.Get("page"), DefaultPage)
	limit := parsePositive(f.params.Get("limit"), DefaultLimit)
	return page, limit
}

func (f *Features) sort() bson.D {
	raw := f.params.Get("sort")
	if raw == "" {
		return bson.D{{Key: "createdAt", Value: -1}}
	}

	sort := bson.D{}
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		direction := 1
		if strings.HasPrefix(field, "-") {
			direction = -1
			field = field[1:]
		}
		sort = append(sort, bson.E{Key: field, Value: direction})
	}

	if len(sort) == 0 {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	return sort
}

func (f *Features) projection() bson.D {
	raw := f.params.Get("fields")
	if raw == "" {
		return nil
	}

	projection := bson.D{}
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		projection = append(projection, bson.E{Key: field, Value: 1})
	}

	if len(projection) == 0 {
		return nil
	}
	return projection
}

// parsePositive retombe sur la valeur par défaut pour tout ce qui n'est
// pas un entier strictement positif.
func parsePositive(raw string, fallback int64) int64 {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// coerce essaie ObjectID puis nombre puis booléen, sinon garde la chaîne.
// Les identifiants doivent devenir des ObjectID : Mongo ne met jamais en
// correspondance une chaîne hex avec un ObjectID stocké.
func coerce(raw string) interface{} {
	if oid, err := primitive.ObjectIDFromHex(raw); err == nil {
		return oid
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}
