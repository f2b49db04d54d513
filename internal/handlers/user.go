package handlers

import (
	"log"
	"net/http"
	"time"

	"tamaq_back_end/internal/database"
	"tamaq_back_end/internal/models"
	"tamaq_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

func fetchUserByEmail(email string) (*models.User, error) {
	stmt := database.GetPreparedGetUserByEmail()
	if stmt == nil {
		return nil, gocql.ErrNoConnections
	}

	var (
		u    models.User
		role string
	)
	if err := stmt.Bind(email).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName,
		&u.Image, &role, &u.Phone, &u.Password, &u.Provider, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = models.Role(role)
	return &u, nil
}

// CreateUser crée un compte local. L'email est la clé : un compte
// existant sur le même email renvoie 409.
func CreateUser(c *gin.Context) {
	var input struct {
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=8"`
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	if _, err := fetchUserByEmail(input.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        uuid.NewString(),
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      models.RoleClient,
		Phone:     input.Phone,
		Password:  hashed,
		Provider:  "local",
		CreatedAt: now,
		UpdatedAt: now,
	}

	stmt := database.GetPreparedInsertUser()
	if stmt == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}
	if err := stmt.Bind(user.ID, user.Email, user.FirstName, user.LastName, user.Image,
		string(user.Role), user.Phone, user.Password, user.Provider, user.CreatedAt, user.UpdatedAt).Exec(); err != nil {
		log.Printf("❌ Erreur création utilisateur: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	log.Printf("✅ Utilisateur créé: %s", user.Email)
	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

// Login authentifie un compte local et retourne un JWT
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	user, err := fetchUserByEmail(input.Email)
	if err != nil || user.Provider != "local" || !utils.VerifyPassword(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// GetUserByEmail — lecture directe via la clé primaire
func GetUserByEmail(c *gin.Context) {
	email := c.Param("email")

	user, err := fetchUserByEmail(email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUserByID retrouve un utilisateur par son id (la table est clé
// email, donc filtrage côté serveur)
func GetUserByID(c *gin.Context) {
	id := c.Param("id")

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var (
		u    models.User
		role string
	)
	if err := session.Query(`SELECT id, email, first_name, last_name, image, role, phone, provider, created_at, updated_at
		FROM users WHERE id = ? ALLOW FILTERING`, id).
		WithContext(c.Request.Context()).Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Image, &role, &u.Phone, &u.Provider, &u.CreatedAt, &u.UpdatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}
	u.Role = models.Role(role)

	c.JSON(http.StatusOK, u)
}

// GetUsersByRole liste les utilisateurs d'un rôle donné (ex: courier)
func GetUsersByRole(c *gin.Context) {
	roleParam := c.Param("role")
	if _, err := models.ParseRole(roleParam); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rôle inconnu"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT id, email, first_name, last_name, image, role, phone, provider, created_at, updated_at
		FROM users WHERE role = ? ALLOW FILTERING`, roleParam).
		WithContext(c.Request.Context()).Iter()

	users := []models.User{}
	var (
		u    models.User
		role string
	)
	for iter.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Image, &role, &u.Phone, &u.Provider, &u.CreatedAt, &u.UpdatedAt) {
		u.Role = models.Role(role)
		users = append(users, u)
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération utilisateurs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUsers liste les utilisateurs, filtrable par rôle (?role=courier)
func GetUsers(c *gin.Context) {
	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	roleFilter := c.Query("role")
	if roleFilter != "" {
		if _, err := models.ParseRole(roleFilter); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rôle inconnu"})
			return
		}
	}

	iter := session.Query(`SELECT id, email, first_name, last_name, image, role, phone, provider, created_at, updated_at FROM users`).
		WithContext(c.Request.Context()).Iter()

	users := []models.User{}
	var (
		u    models.User
		role string
	)
	for iter.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Image, &role, &u.Phone, &u.Provider, &u.CreatedAt, &u.UpdatedAt) {
		u.Role = models.Role(role)
		if roleFilter != "" && role != roleFilter {
			continue
		}
		users = append(users, u)
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération utilisateurs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": len(users),
	})
}

// UpdateUser met à jour le profil. L'email (clé) et le rôle ne sont
// pas modifiables ici — le rôle passe par la route admin.
func UpdateUser(c *gin.Context) {
	email := c.Param("email")

	var input struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Phone     *string `json:"phone"`
		Image     *string `json:"image"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	user, err := fetchUserByEmail(email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Image != nil {
		user.Image = *input.Image
	}
	user.UpdatedAt = time.Now().UTC()

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`UPDATE users SET first_name = ?, last_name = ?, phone = ?, image = ?, updated_at = ? WHERE email = ?`,
		user.FirstName, user.LastName, user.Phone, user.Image, user.UpdatedAt, email).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour utilisateur: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser supprime le compte par email
func DeleteUser(c *gin.Context) {
	email := c.Param("email")

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM users WHERE email = ?`, email).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur suppression utilisateur: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Compte supprimé"})
}
