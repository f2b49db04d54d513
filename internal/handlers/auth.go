package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"tamaq_back_end/internal/database"
	"tamaq_back_end/internal/models"
	"tamaq_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/markbates/goth/gothic"
)

type ctxKey string

const ProviderKey ctxKey = "provider"

// BeginAuth démarre le flux OAuth du provider demandé (google, facebook)
func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// CallbackAuth termine le flux OAuth : l'utilisateur est créé au
// premier passage puis reconnu par son email. Retourne un JWT local,
// identique à celui du login classique.
func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := fetchUserByEmail(gothUser.Email)
	if err != nil {
		// premier login : on crée le compte client
		now := time.Now().UTC()
		created := models.User{
			ID:        uuid.NewString(),
			Email:     gothUser.Email,
			FirstName: gothUser.FirstName,
			LastName:  gothUser.LastName,
			Image:     gothUser.AvatarURL,
			Role:      models.RoleClient,
			Provider:  provider,
			CreatedAt: now,
			UpdatedAt: now,
		}

		stmt := database.GetPreparedInsertUser()
		if stmt == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
			return
		}
		if err := stmt.Bind(created.ID, created.Email, created.FirstName, created.LastName,
			created.Image, string(created.Role), created.Phone, created.Password,
			created.Provider, created.CreatedAt, created.UpdatedAt).Exec(); err != nil {
			log.Printf("❌ Erreur création utilisateur OAuth: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
			return
		}
		user = &created
		log.Printf("✅ Utilisateur OAuth créé: %s (%s)", created.Email, provider)
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider": provider,
		"token":    token,
		"user":     user,
	})
}
