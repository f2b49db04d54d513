package handlers

import (
	"log"
	"net/http"
	"time"

	"tamaq_back_end/internal/database"
	"tamaq_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// GetAddresses liste les adresses d'un utilisateur (?userEmail=)
func GetAddresses(c *gin.Context) {
	userEmail := c.Query("userEmail")
	if userEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userEmail requis"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT id, user_email, address, created_at, updated_at FROM addresses WHERE user_email = ? ALLOW FILTERING`,
		userEmail).WithContext(c.Request.Context()).Iter()

	addresses := []models.Address{}
	var a models.Address
	for iter.Scan(&a.ID, &a.UserEmail, &a.Address, &a.CreatedAt, &a.UpdatedAt) {
		addresses = append(addresses, a)
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération adresses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, addresses)
}

// CreateAddress enregistre une nouvelle adresse de livraison
func CreateAddress(c *gin.Context) {
	var input struct {
		UserEmail string `json:"userEmail" binding:"required,email"`
		Address   string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now().UTC()
	a := models.Address{
		ID:        gocql.TimeUUID(),
		UserEmail: input.UserEmail,
		Address:   input.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := session.Query(`INSERT INTO addresses (id, user_email, address, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.UserEmail, a.Address, a.CreatedAt, a.UpdatedAt).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur création adresse: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création de l'adresse"})
		return
	}

	c.JSON(http.StatusCreated, a)
}

// UpdateAddress modifie le texte d'une adresse existante
func UpdateAddress(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID invalide"})
		return
	}

	var input struct {
		Address string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`UPDATE addresses SET address = ?, updated_at = ? WHERE id = ?`,
		input.Address, time.Now().UTC(), id).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour adresse: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Adresse mise à jour"})
}

// DeleteAddress supprime une adresse
func DeleteAddress(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID invalide"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM addresses WHERE id = ?`, id).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur suppression adresse: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Adresse supprimée"})
}
