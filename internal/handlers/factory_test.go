package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"eshop_back_end/internal/models"
)

// Une date envoyée en chaîne JSON doit repartir typée vers Mongo, sinon
// les comparaisons $gt sur l'expiration ne matchent plus jamais.
func TestApplyPartialCoercesDates(t *testing.T) {
	f := NewFactory[models.Coupon]("coupon", nil)
	current := &models.Coupon{
		ID:       primitive.NewObjectID(),
		Name:     "SOLDES",
		Expire:   time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		Discount: 20,
	}

	out, err := f.applyPartial(current, bson.M{"expire": "2027-03-01T00:00:00Z"})
	require.NoError(t, err)

	expire, ok := out["expire"].(primitive.DateTime)
	require.True(t, ok, "expire doit être une date BSON, pas une chaîne")
	assert.True(t, expire.Time().Equal(time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)))
}

// Les invariants de champ valent aussi en mise à jour.
func TestApplyPartialRejectsOutOfRangeRatings(t *testing.T) {
	f := NewFactory[models.Review]("avis", nil)
	current := &models.Review{
		ID:      primitive.NewObjectID(),
		Ratings: 4,
		User:    primitive.NewObjectID(),
		Product: primitive.NewObjectID(),
	}

	_, err := f.applyPartial(current, bson.M{"ratings": 99.0})
	assert.Error(t, err)

	out, err := f.applyPartial(current, bson.M{"ratings": 5.0})
	require.NoError(t, err)
	assert.Equal(t, 5.0, out["ratings"])
}

func TestApplyPartialRejectsBadFieldType(t *testing.T) {
	f := NewFactory[models.Coupon]("coupon", nil)
	current := &models.Coupon{
		Name:     "SOLDES",
		Expire:   time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		Discount: 20,
	}

	_, err := f.applyPartial(current, bson.M{"discount": "vingt"})
	assert.Error(t, err)
}

// Les champs masqués en JSON (mot de passe) survivent à la revalidation et
// ne fuient pas dans le $set.
func TestApplyPartialKeepsHiddenFields(t *testing.T) {
	f := NewFactory[models.User]("utilisateur", nil)
	current := &models.User{
		ID:       primitive.NewObjectID(),
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "$argon2id$v=19$m=32768,t=1,p=4$abc$def",
		Role:     models.RoleUser,
	}

	out, err := f.applyPartial(current, bson.M{"phone": "0470112233"})
	require.NoError(t, err)

	assert.Equal(t, bson.M{"phone": "0470112233"}, out)
}

func TestReadProjectionStripsHiddenFields(t *testing.T) {
	f := NewFactory[models.User]("utilisateur", nil,
		Hide[models.User]("password", "passwordResetCode"))

	p := f.readProjection(bson.D{{Key: "password", Value: 1}, {Key: "name", Value: 1}})
	assert.Equal(t, bson.D{{Key: "name", Value: 1}}, p)
}

// Ne demander QUE des champs cachés retombe sur l'exclusion par défaut.
func TestReadProjectionAllHiddenFallsBack(t *testing.T) {
	f := NewFactory[models.User]("utilisateur", nil,
		Hide[models.User]("password"))

	p := f.readProjection(bson.D{{Key: "password", Value: 1}})
	assert.Equal(t, bson.D{{Key: "password", Value: 0}}, p)
}

func TestReadProjectionDefaultExclusion(t *testing.T) {
	f := NewFactory[models.User]("utilisateur", nil,
		Hide[models.User]("password"))

	p := f.readProjection(nil)
	assert.Equal(t, bson.D{{Key: "password", Value: 0}}, p)
}

func TestReadProjectionNoHiddenPassesThrough(t *testing.T) {
	f := NewFactory[models.Brand]("marque", nil)

	requested := bson.D{{Key: "name", Value: 1}}
	assert.Equal(t, requested, f.readProjection(requested))
	assert.Nil(t, f.readProjection(nil))
}
