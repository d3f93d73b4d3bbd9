package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"doit/internal/model"
	"doit/internal/repository"
	"doit/internal/validation"
)

type ListHandler struct {
	listRepo repository.ListRepositoryInterface
}

func NewListHandler(listRepo repository.ListRepositoryInterface) *ListHandler {
	return &ListHandler{listRepo: listRepo}
}

// Index shows the lists of the authenticated user in creation order.
func (h *ListHandler) Index(c *gin.Context) {
	userID, username, ok := currentUser(c)
	if !ok {
		renderForbidden(c)
		return
	}

	lists, err := h.listRepo.GetOwned(c.Request.Context(), userID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"user":          username,
		"list_of_lists": lists,
		"notifications": takeFlashes(c),
	})
}

func (h *ListHandler) NewForm(c *gin.Context) {
	if _, _, ok := currentUser(c); !ok {
		renderForbidden(c)
		return
	}

	c.HTML(http.StatusOK, "list_form.html", gin.H{
		"page_title": "New List",
		"action":     "/lists/new",
		"error":      "",
		"name":       "",
	})
}

func (h *ListHandler) Create(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		renderForbidden(c)
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.HTML(http.StatusOK, "list_form.html", gin.H{
			"page_title": "New List",
			"action":     "/lists/new",
			"error":      validation.MsgFieldRequired,
			"name":       "",
		})
		return
	}

	list := &model.List{
		ID:     uuid.New(),
		Name:   name,
		UserID: userID,
	}

	if err := h.listRepo.Create(c.Request.Context(), list); err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	flash(c, "List "+name+" created successfully")
	c.Redirect(http.StatusFound, "/")
}

// loadOwned fetches a list and enforces ownership. A list belonging to
// someone else is indistinguishable from a missing one.
func (h *ListHandler) loadOwned(c *gin.Context, userID uuid.UUID) *model.List {
	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		renderNotFound(c)
		return nil
	}

	list, err := h.listRepo.GetByID(c.Request.Context(), listID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")
		return nil
	}
	if list == nil || list.UserID != userID {
		renderNotFound(c)
		return nil
	}
	return list
}

func (h *ListHandler) EditForm(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		renderForbidden(c)
		return
	}

	list := h.loadOwned(c, userID)
	if list == nil {
		return
	}

	c.HTML(http.StatusOK, "list_form.html", gin.H{
		"page_title": "Edit List " + list.Name,
		"action":     "/lists/" + list.ID.String() + "/edit",
		"name":       list.Name,
	})
}

func (h *ListHandler) Edit(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		renderForbidden(c)
		return
	}

	list := h.loadOwned(c, userID)
	if list == nil {
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.HTML(http.StatusOK, "list_form.html", gin.H{
			"page_title": "Edit List " + list.Name,
			"action":     "/lists/" + list.ID.String() + "/edit",
			"error":      validation.MsgFieldRequired,
			"name":       list.Name,
		})
		return
	}

	list.Name = name
	if err := h.listRepo.Update(c.Request.Context(), list); err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	flash(c, "List "+name+" Edited")
	c.Redirect(http.StatusFound, "/")
}

func (h *ListHandler) DeleteConfirm(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		renderForbidden(c)
		return
	}

	list := h.loadOwned(c, userID)
	if list == nil {
		return
	}

	c.HTML(http.StatusOK, "list_confirm_delete.html", gin.H{"list": list})
}

func (h *ListHandler) Delete(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		renderForbidden(c)
		return
	}

	list := h.loadOwned(c, userID)
	if list == nil {
		return
	}

	if err := h.listRepo.Delete(c.Request.Context(), list.ID); err != nil {
		if errors.Is(err, repository.ErrListHasTasks) {
			c.HTML(http.StatusOK, "list_confirm_delete.html", gin.H{
				"list":  list,
				"error": "List still has tasks",
			})
			return
		}
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	flash(c, "List "+list.Name+" deleted successfully")
	c.Redirect(http.StatusFound, "/")
}
