package admin

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tamaq_back_end/internal/database"
	"tamaq_back_end/internal/models"
)

// UpdateUserRole change le rôle d'un utilisateur (client, admin,
// courier). Tout autre rôle est rejeté avant écriture.
func UpdateUserRole(c *gin.Context) {
	email := c.Param("email")

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rôle inconnu"})
		return
	}

	usersSession, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Vérifier que l'utilisateur existe
	var existing string
	if err := usersSession.Query(`SELECT email FROM users WHERE email = ?`, email).
		WithContext(c.Request.Context()).Scan(&existing); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}

	if err := usersSession.Query(`UPDATE users SET role = ?, updated_at = ? WHERE email = ?`,
		string(role), time.Now().UTC(), email).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour rôle: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour du rôle"})
		return
	}

	log.Printf("✅ Rôle %s attribué à %s", role, email)
	c.JSON(http.StatusOK, gin.H{
		"message": "Rôle mis à jour avec succès",
		"email":   email,
		"role":    role,
	})
}
