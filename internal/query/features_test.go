package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFilterRangeGrammar(t *testing.T) {
	params := url.Values{}
	params.Set("price[gte]", "50")
	params.Set("price[lte]", "100")
	params.Set("ratingsAverage[gt]", "4")

	filter := New(params).Filter(nil)

	price, ok := filter["price"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 50.0, price["$gte"])
	assert.Equal(t, 100.0, price["$lte"])

	rating, ok := filter["ratingsAverage"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 4.0, rating["$gt"])
}

func TestFilterEqualityCoercion(t *testing.T) {
	params := url.Values{}
	params.Set("color", "rouge")
	params.Set("sold", "12")
	params.Set("isPaid", "true")

	filter := New(params).Filter(nil)

	assert.Equal(t, "rouge", filter["color"])
	assert.Equal(t, 12.0, filter["sold"])
	assert.Equal(t, true, filter["isPaid"])
}

// Un identifiant hex dans un filtre d'égalité doit devenir un ObjectID,
// sinon il ne correspond jamais aux références stockées.
func TestFilterCoercesObjectIDs(t *testing.T) {
	oid := primitive.NewObjectID()
	params := url.Values{}
	params.Set("product", oid.Hex())

	filter := New(params).Filter(nil)

	assert.Equal(t, oid, filter["product"])
}

func TestFilterIgnoresReservedKeys(t *testing.T) {
	params := url.Values{}
	params.Set("page", "3")
	params.Set("limit", "5")
	params.Set("sort", "-price")
	params.Set("fields", "title,price")
	params.Set("color", "rouge")

	filter := New(params).Filter(nil)

	assert.Equal(t, bson.M{"color": "rouge"}, filter)
}

// Un champ littéralement nommé "gte" reste une égalité, la grammaire
// n'opère que sur la forme champ[opérateur].
func TestFilterFieldNamedLikeOperator(t *testing.T) {
	params := url.Values{}
	params.Set("gte", "10")

	filter := New(params).Filter(nil)

	assert.Equal(t, 10.0, filter["gte"])
}

func TestFilterMergesBaseFilter(t *testing.T) {
	oid := primitive.NewObjectID()
	params := url.Values{}
	params.Set("ratings", "5")

	filter := New(params).Filter(bson.M{"product": oid})

	assert.Equal(t, oid, filter["product"])
	assert.Equal(t, 5.0, filter["ratings"])
}

func TestFilterKeywordSingleField(t *testing.T) {
	params := url.Values{}
	params.Set("keyword", "chaise")

	filter := New(params).Filter(nil)

	pattern, ok := filter["title"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "chaise", pattern.Pattern)
	assert.Equal(t, "i", pattern.Options)
}

func TestFilterKeywordMultiField(t *testing.T) {
	params := url.Values{}
	params.Set("keyword", "chaise")

	filter := New(params).Search("title", "description").Filter(nil)

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 2)
	assert.Contains(t, or[0], "title")
	assert.Contains(t, or[1], "description")
}

// Les métacaractères regex du mot-clé sont neutralisés.
func TestFilterKeywordQuotesMeta(t *testing.T) {
	params := url.Values{}
	params.Set("keyword", "c++ (pro)")

	filter := New(params).Filter(nil)

	pattern := filter["title"].(primitive.Regex)
	assert.Equal(t, `c\+\+ \(pro\)`, pattern.Pattern)
}

func TestFindOptionsSkipAndLimit(t *testing.T) {
	params := url.Values{}
	params.Set("page", "3")
	params.Set("limit", "5")

	opts := New(params).FindOptions()

	assert.Equal(t, int64(10), *opts.Skip)
	assert.Equal(t, int64(5), *opts.Limit)
}

func TestFindOptionsSort(t *testing.T) {
	params := url.Values{}
	params.Set("sort", "-price, title")

	opts := New(params).FindOptions()

	sort, ok := opts.Sort.(bson.D)
	require.True(t, ok)
	assert.Equal(t, bson.D{{Key: "price", Value: -1}, {Key: "title", Value: 1}}, sort)
}

func TestFindOptionsDefaultSort(t *testing.T) {
	opts := New(url.Values{}).FindOptions()

	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, opts.Sort)
}

func TestFindOptionsProjection(t *testing.T) {
	params := url.Values{}
	params.Set("fields", "title,price")

	opts := New(params).FindOptions()

	projection, ok := opts.Projection.(bson.D)
	require.True(t, ok)
	assert.Equal(t, bson.D{{Key: "title", Value: 1}, {Key: "price", Value: 1}}, projection)
}

func TestPaginateMiddlePage(t *testing.T) {
	params := url.Values{}
	params.Set("page", "2")
	params.Set("limit", "10")

	p := New(params).Paginate(42)

	assert.Equal(t, int64(2), p.CurrentPage)
	assert.Equal(t, int64(10), p.PageSize)
	assert.Equal(t, int64(5), p.NumberOfPages)
	require.NotNil(t, p.NextPage)
	assert.Equal(t, int64(3), *p.NextPage)
	require.NotNil(t, p.PreviousPage)
	assert.Equal(t, int64(1), *p.PreviousPage)
}

func TestPaginateFirstAndLastPage(t *testing.T) {
	first := New(url.Values{"page": {"1"}, "limit": {"10"}}).Paginate(42)
	assert.Nil(t, first.PreviousPage)
	assert.NotNil(t, first.NextPage)

	last := New(url.Values{"page": {"5"}, "limit": {"10"}}).Paginate(42)
	assert.Nil(t, last.NextPage)
	assert.NotNil(t, last.PreviousPage)
}

func TestPaginateDefaultsOnJunkInput(t *testing.T) {
	params := url.Values{}
	params.Set("page", "0")
	params.Set("limit", "abc")

	p := New(params).Paginate(7)

	assert.Equal(t, int64(DefaultPage), p.CurrentPage)
	assert.Equal(t, int64(DefaultLimit), p.PageSize)
	assert.Equal(t, int64(1), p.NumberOfPages)
}

func TestPaginateEmptyResult(t *testing.T) {
	p := New(url.Values{}).Paginate(0)

	assert.Equal(t, int64(0), p.NumberOfPages)
	assert.Nil(t, p.NextPage)
	assert.Nil(t, p.PreviousPage)
}
