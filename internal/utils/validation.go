package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError est une erreur de validation agrégée, champ par champ.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors transforme les erreurs de binding gin/validator en
// liste d'erreurs par champ pour une réponse 400 unique.
func ValidationErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   strings.ToLower(fe.Field()[:1]) + fe.Field()[1:],
			Message: messageFor(fe),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Le champ %s est obligatoire", fe.Field())
	case "email":
		return "Adresse e-mail invalide"
	case "min":
		return fmt.Sprintf("Le champ %s doit valoir au moins %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("Le champ %s ne doit pas dépasser %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("Le champ %s doit être supérieur à %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("Le champ %s ne doit pas dépasser %s", fe.Field(), fe.Param())
	case "ltfield":
		return fmt.Sprintf("Le champ %s doit être inférieur au champ %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("Le champ %s doit être parmi: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("Le champ %s est invalide (%s)", fe.Field(), fe.Tag())
	}
}

// AbortValidation répond 400 avec la liste agrégée des erreurs de champ.
func AbortValidation(c *gin.Context, err error) {
	c.JSON(400, gin.H{"errors": ValidationErrors(err)})
}
