package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eshop_back_end/internal/database"
	"eshop_back_end/internal/query"
	"eshop_back_end/internal/utils"
)

// Clé du contexte gin portant le filtre de base d'une route imbriquée
// (ex: les avis d'un produit).
const ctxBaseFilter = "filterObj"

// SetBaseFilter pose un filtre de base pour le GetAll qui suit.
func SetBaseFilter(c *gin.Context, filter bson.M) {
	c.Set(ctxBaseFilter, filter)
}

func baseFilter(c *gin.Context) bson.M {
	if v, ok := c.Get(ctxBaseFilter); ok {
		if filter, ok := v.(bson.M); ok {
			return filter
		}
	}
	return bson.M{}
}

// Lookup décrit l'expansion d'un champ référence au GetOne.
type Lookup struct {
	From         string // collection cible
	LocalField   string
	ForeignField string // "_id" si vide
	As           string
	Single       bool // référence simple (dé-tableautée) ou liste
}

type stamper interface{ Stamp(time.Time) }
type idSetter interface{ SetID(primitive.ObjectID) }

// Factory produit les cinq opérations CRUD génériques d'une ressource.
// Les effets de bord propres à chaque entité (slug, recalcul de notes,
// nettoyage en cascade) sont des listes de hooks explicites, invoquées
// par la fabrique elle-même.
type Factory[T any] struct {
	name         string
	coll         func() *mongo.Collection
	searchFields []string
	hidden       []string
	lookups      []Lookup
	beforeCreate []func(*gin.Context, *T) error
	beforeUpdate []func(*gin.Context, bson.M) error
	beforeDelete []func(*gin.Context, primitive.ObjectID) error
	afterSave    []func(context.Context, *T) error
	afterDelete  []func(context.Context, *T) error
}

type Option[T any] func(*Factory[T])

func WithSearch[T any](fields ...string) Option[T] {
	return func(f *Factory[T]) { f.searchFields = fields }
}

func WithLookup[T any](l Lookup) Option[T] {
	return func(f *Factory[T]) { f.lookups = append(f.lookups, l) }
}

// Hide exclut des champs des réponses de lecture. Les réponses passent par
// bson.M (pour respecter ?fields), les tags json:"-" des structs ne
// s'appliquent donc pas ici.
func Hide[T any](fields ...string) Option[T] {
	return func(f *Factory[T]) { f.hidden = append(f.hidden, fields...) }
}

// BeforeCreate s'exécute sur le document lié, avant insertion.
func BeforeCreate[T any](h func(*gin.Context, *T) error) Option[T] {
	return func(f *Factory[T]) { f.beforeCreate = append(f.beforeCreate, h) }
}

// BeforeUpdate s'exécute sur le corps partiel ($set), avant écriture.
func BeforeUpdate[T any](h func(*gin.Context, bson.M) error) Option[T] {
	return func(f *Factory[T]) { f.beforeUpdate = append(f.beforeUpdate, h) }
}

// BeforeDelete s'exécute avant suppression (contrôles de propriété).
func BeforeDelete[T any](h func(*gin.Context, primitive.ObjectID) error) Option[T] {
	return func(f *Factory[T]) { f.beforeDelete = append(f.beforeDelete, h) }
}

// AfterSave s'exécute après création ET mise à jour : une écriture directe
// ne doit jamais contourner les effets de bord (recalcul des notes, etc).
func AfterSave[T any](h func(context.Context, *T) error) Option[T] {
	return func(f *Factory[T]) { f.afterSave = append(f.afterSave, h) }
}

// AfterDelete s'exécute après suppression, avec le document supprimé.
func AfterDelete[T any](h func(context.Context, *T) error) Option[T] {
	return func(f *Factory[T]) { f.afterDelete = append(f.afterDelete, h) }
}

func NewFactory[T any](name string, coll func() *mongo.Collection, opts ...Option[T]) *Factory[T] {
	f := &Factory[T]{name: name, coll: coll, searchFields: []string{"title"}}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateOne insère un document depuis le corps de la requête. 201 {data}.
func (f *Factory[T]) CreateOne(c *gin.Context) {
	doc := new(T)
	if err := c.ShouldBindJSON(doc); err != nil {
		utils.AbortValidation(c, err)
		return
	}

	for _, hook := range f.beforeCreate {
		if err := hook(c, doc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	now := time.Now()
	if s, ok := any(doc).(stamper); ok {
		s.Stamp(now)
	}
	if s, ok := any(doc).(idSetter); ok {
		s.SetID(primitive.NewObjectID())
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	if _, err := f.coll().InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Ce %s existe déjà", f.name)})
			return
		}
		log.Printf("❌ Erreur création %s: %v", f.name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	f.runAfterSave(doc)

	c.JSON(http.StatusCreated, gin.H{"data": doc})
}

// readProjection combine la projection demandée (?fields) avec les champs
// cachés : un champ caché ne sort jamais, même demandé explicitement.
func (f *Factory[T]) readProjection(requested interface{}) interface{} {
	if len(f.hidden) == 0 {
		return requested
	}

	hidden := make(map[string]bool, len(f.hidden))
	exclusion := bson.D{}
	for _, field := range f.hidden {
		hidden[field] = true
		exclusion = append(exclusion, bson.E{Key: field, Value: 0})
	}

	inclusion, ok := requested.(bson.D)
	if !ok || len(inclusion) == 0 {
		return exclusion
	}

	kept := bson.D{}
	for _, e := range inclusion {
		if !hidden[e.Key] {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		return exclusion
	}
	return kept
}

// GetAll liste avec filtre/recherche/tri/projection/pagination.
// Le total est compté APRÈS application du filtre.
func (f *Factory[T]) GetAll(c *gin.Context) {
	features := query.New(c.Request.URL.Query()).Search(f.searchFields...)
	filter := features.Filter(baseFilter(c))

	ctx, cancel := database.Ctx()
	defer cancel()

	total, err := f.coll().CountDocuments(ctx, filter)
	if err != nil {
		log.Printf("❌ Erreur comptage %s: %v", f.name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	opts := features.FindOptions()
	if p := f.readProjection(opts.Projection); p != nil {
		opts.SetProjection(p)
	}

	cursor, err := f.coll().Find(ctx, filter, opts)
	if err != nil {
		log.Printf("❌ Erreur lecture %s: %v", f.name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture résultats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":           len(docs),
		"paginationResult": features.Paginate(total),
		"data":             docs,
	})
}

// GetOne récupère par identifiant, avec expansion optionnelle des
// références ($lookup). 404 si absent.
func (f *Factory[T]) GetOne(c *gin.Context) {
	id := c.Param("id")
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	var doc bson.M
	if len(f.lookups) > 0 {
		doc, err = f.findOneExpanded(ctx, oid)
	} else {
		opts := options.FindOne()
		if p := f.readProjection(nil); p != nil {
			opts.SetProjection(p)
		}
		err = f.coll().FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&doc)
	}

	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Aucun document avec cet identifiant: %s !", id)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": doc})
}

func (f *Factory[T]) findOneExpanded(ctx context.Context, oid primitive.ObjectID) (bson.M, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": oid}}},
	}
	for _, l := range f.lookups {
		foreignField := l.ForeignField
		if foreignField == "" {
			foreignField = "_id"
		}
		pipeline = append(pipeline, bson.D{{Key: "$lookup", Value: bson.M{
			"from":         l.From,
			"localField":   l.LocalField,
			"foreignField": foreignField,
			"as":           l.As,
		}}})
		if l.Single {
			pipeline = append(pipeline, bson.D{{Key: "$unwind", Value: bson.M{
				"path":                       "$" + l.As,
				"preserveNullAndEmptyArrays": true,
			}}})
		}
	}

	if len(f.hidden) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$unset", Value: f.hidden}})
	}

	cursor, err := f.coll().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return docs[0], nil
}

// UpdateOne remplace les champs mutables par identifiant, puis rejoue les
// hooks post-écriture. 404 si absent.
func (f *Factory[T]) UpdateOne(c *gin.Context) {
	id := c.Param("id")
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	body := bson.M{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	delete(body, "_id")
	delete(body, "createdAt")
	delete(body, "updatedAt")

	for _, hook := range f.beforeUpdate {
		if err := hook(c, body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	// Le corps partiel est rejoué sur le document existant puis revalidé
	// en entier : les invariants de champ tiennent aussi en mise à jour,
	// et les valeurs repartent typées (dates, ObjectID) vers Mongo.
	current := new(T)
	if err := f.coll().FindOne(ctx, bson.M{"_id": oid}).Decode(current); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Aucun document avec cet identifiant: %s !", id)})
		return
	}

	body, err = f.applyPartial(current, body)
	if err != nil {
		utils.AbortValidation(c, err)
		return
	}
	body["updatedAt"] = time.Now()

	doc := new(T)
	err = f.coll().FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": body},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(doc)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Aucun document avec cet identifiant: %s !", id)})
		return
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Ce %s existe déjà", f.name)})
			return
		}
		log.Printf("❌ Erreur mise à jour %s: %v", f.name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	f.runAfterSave(doc)

	c.JSON(http.StatusOK, gin.H{"data": doc})
}

// applyPartial fusionne le corps partiel sur le document existant, revalide
// le document complet avec les règles de binding, et retourne les champs du
// corps avec leurs valeurs typées.
func (f *Factory[T]) applyPartial(current *T, body bson.M) (bson.M, error) {
	rawCurrent, err := json.Marshal(current)
	if err != nil {
		return nil, err
	}

	merged := map[string]interface{}{}
	if err := json.Unmarshal(rawCurrent, &merged); err != nil {
		return nil, err
	}
	for k, v := range body {
		merged[k] = v
	}

	rawMerged, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}

	updated := new(T)
	if err := json.Unmarshal(rawMerged, updated); err != nil {
		return nil, fmt.Errorf("types de champs invalides: %w", err)
	}

	// Les champs masqués en JSON (mot de passe, codes de réinitialisation)
	// ne survivent pas à l'aller-retour : on les restaure avant validation.
	copyHiddenJSONFields(current, updated)

	if err := binding.Validator.ValidateStruct(updated); err != nil {
		return nil, err
	}

	rawBSON, err := bson.Marshal(updated)
	if err != nil {
		return nil, err
	}
	var typed bson.M
	if err := bson.Unmarshal(rawBSON, &typed); err != nil {
		return nil, err
	}

	out := bson.M{}
	for k := range body {
		if v, ok := typed[k]; ok {
			out[k] = v
		} else {
			out[k] = body[k]
		}
	}
	return out, nil
}

func copyHiddenJSONFields(src, dst interface{}) {
	sv := reflect.ValueOf(src).Elem()
	dv := reflect.ValueOf(dst).Elem()
	if sv.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < sv.NumField(); i++ {
		if sv.Type().Field(i).Tag.Get("json") == "-" && dv.Field(i).CanSet() {
			dv.Field(i).Set(sv.Field(i))
		}
	}
}

// DeleteOne supprime par identifiant et déclenche le nettoyage en cascade.
// 404 si absent, 204 sinon.
func (f *Factory[T]) DeleteOne(c *gin.Context) {
	id := c.Param("id")
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	for _, hook := range f.beforeDelete {
		if err := hook(c, oid); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	doc := new(T)
	err = f.coll().FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(doc)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Aucun document avec cet identifiant: %s !", id)})
		return
	}
	if err != nil {
		log.Printf("❌ Erreur suppression %s: %v", f.name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	for _, hook := range f.afterDelete {
		if err := hook(context.Background(), doc); err != nil {
			log.Printf("⚠️ Erreur hook post-suppression %s: %v", f.name, err)
		}
	}

	c.Status(http.StatusNoContent)
}

func (f *Factory[T]) runAfterSave(doc *T) {
	for _, hook := range f.afterSave {
		if err := hook(context.Background(), doc); err != nil {
			log.Printf("⚠️ Erreur hook post-écriture %s: %v", f.name, err)
		}
	}
}
