package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lavibaby/shop/internal/events"
	"github.com/lavibaby/shop/internal/models"
)

func currentUserID(c echo.Context) (uint, error) {
	id, ok := c.Get("userID").(uint)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "faça login para continuar")
	}
	return id, nil
}

func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "usuário não encontrado")
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe merges profile fields. Email and role are not editable here: the
// role in particular can never be self-escalated.
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req struct {
		Name       *string         `json:"name"`
		Phone      *string         `json:"phone"`
		Document   *string         `json:"document"`
		Address    *models.Address `json:"address"`
		Newsletter *bool           `json:"newsletter"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "usuário não encontrado")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Document != nil {
		user.Document = *req.Document
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Newsletter != nil {
		user.Newsletter = *req.Newsletter
	}

	if err := h.DB.Save(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{
		"type":   "profile_updated",
		"userID": user.ID,
	})
	h.Notifier.Publish(events.AuthEvent{Type: events.AuthProfileUpdated, UserID: user.ID, Role: user.Role})

	return c.JSON(http.StatusOK, user)
}
