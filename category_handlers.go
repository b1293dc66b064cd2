package main

import (
	"errors"
	"net/http"

	"reportdesk/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func categoryIndexHandler(c *gin.Context) {
	page := queryInt(c, "page", 1)
	pagination, err := categoryService.GetPaginatedList(page)
	if err != nil {
		c.String(http.StatusInternalServerError, "query failed")
		return
	}
	render(c, http.StatusOK, "category_index.html", gin.H{
		"pagination":   pagination,
		"previousPage": pagination.Page - 1,
		"nextPage":     pagination.Page + 1,
	})
}

func categoryShowHandler(c *gin.Context) {
	category, ok := resolveCategory(c)
	if !ok {
		return
	}
	render(c, http.StatusOK, "category_show.html", gin.H{"category": category})
}

func categoryCreateHandler(c *gin.Context) {
	user := currentUser(c)
	if user == nil || !user.IsAdminRole() {
		addFlash(c, "danger", noPermissionMessage)
		redirect(c, "/category")
		return
	}

	if c.Request.Method == http.MethodPost {
		var form categoryForm
		if err := c.ShouldBind(&form); err != nil {
			render(c, http.StatusOK, "category_create.html", gin.H{"form": form, "errors": formErrors(err)})
			return
		}
		category := &models.Category{Name: form.Name, AuthorID: user.ID}
		if err := categoryService.Save(category); err != nil {
			c.String(http.StatusInternalServerError, "save failed")
			return
		}
		addFlash(c, "success", "Created successfully.")
		redirect(c, "/category")
		return
	}

	render(c, http.StatusOK, "category_create.html", gin.H{"form": categoryForm{}})
}

func categoryEditHandler(c *gin.Context) {
	category, ok := resolveCategory(c)
	if !ok {
		return
	}
	user := currentUser(c)
	if user == nil || !user.IsAdminRole() {
		addFlash(c, "danger", noPermissionMessage)
		redirect(c, "/category")
		return
	}

	if c.Request.Method == http.MethodPut {
		var form categoryForm
		if err := c.ShouldBind(&form); err != nil {
			render(c, http.StatusOK, "category_edit.html", gin.H{"category": category, "form": form, "errors": formErrors(err)})
			return
		}
		category.Name = form.Name
		if err := categoryService.Save(category); err != nil {
			c.String(http.StatusInternalServerError, "save failed")
			return
		}
		addFlash(c, "success", "Updated successfully.")
		redirect(c, "/category")
		return
	}

	render(c, http.StatusOK, "category_edit.html", gin.H{"category": category, "form": categoryForm{Name: category.Name}})
}

func categoryDeleteHandler(c *gin.Context) {
	category, ok := resolveCategory(c)
	if !ok {
		return
	}
	if c.Request.Method == http.MethodDelete {
		if !categoryService.Delete(category) {
			addFlash(c, "warning", "Category contains reports and cannot be deleted.")
			redirect(c, "/category")
			return
		}
		addFlash(c, "success", "Deleted successfully.")
		redirect(c, "/category")
		return
	}
	render(c, http.StatusOK, "category_delete.html", gin.H{
		"category":     category,
		"canBeDeleted": categoryService.CanBeDeleted(category),
	})
}

func resolveCategory(c *gin.Context) (*models.Category, bool) {
	id, ok := pathID(c)
	if !ok {
		notFound(c)
		return nil, false
	}
	category, err := categoryService.FindOneByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c)
		} else {
			c.String(http.StatusInternalServerError, "query failed")
		}
		return nil, false
	}
	return category, true
}
